package screens

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/reusee/starconsole/consoles"
	"github.com/reusee/starconsole/transcripts"
)

type Styles struct {
	Prompt    lipgloss.Style
	Command   lipgloss.Style
	Output    lipgloss.Style
	Error     lipgloss.Style
	Plain     lipgloss.Style
	Selection lipgloss.Style
	Caret     lipgloss.Style
	Status    lipgloss.Style

	Keyword lipgloss.Style
	String  lipgloss.Style
	Number  lipgloss.Style
	Comment lipgloss.Style
}

func DefaultStyles() Styles {
	return Styles{
		Prompt:    lipgloss.NewStyle().Foreground(lipgloss.Color("#B22222")),
		Command:   lipgloss.NewStyle().Foreground(lipgloss.Color("#A0522D")),
		Output:    lipgloss.NewStyle(),
		Error:     lipgloss.NewStyle().Foreground(lipgloss.Color("#FF0000")),
		Plain:     lipgloss.NewStyle(),
		Selection: lipgloss.NewStyle().Reverse(true),
		Caret:     lipgloss.NewStyle().Reverse(true),
		Status:    lipgloss.NewStyle().Faint(true),

		Keyword: lipgloss.NewStyle().Foreground(lipgloss.Color("#8B008B")).Bold(true),
		String:  lipgloss.NewStyle().Foreground(lipgloss.Color("#228B22")),
		Number:  lipgloss.NewStyle().Foreground(lipgloss.Color("#1E90FF")),
		Comment: lipgloss.NewStyle().Foreground(lipgloss.Color("#808080")).Italic(true),
	}
}

// tagStyle picks the style of a tag set. Error wins over the others.
func (s Styles) tagStyle(tags transcripts.Tag) lipgloss.Style {
	switch {
	case tags.Has(transcripts.Error):
		return s.Error
	case tags.Has(transcripts.Prompt):
		return s.Prompt
	case tags.Has(transcripts.Command):
		return s.Command
	case tags.Has(transcripts.Output):
		return s.Output
	}
	return s.Plain
}

// cellStyle refines the tag style of command text by its token class.
func (s Styles) cellStyle(tags transcripts.Tag, class tokenClass) lipgloss.Style {
	style := s.tagStyle(tags)
	switch class {
	case classKeyword:
		return s.Keyword.Inherit(style)
	case classString:
		return s.String.Inherit(style)
	case classNumber:
		return s.Number.Inherit(style)
	case classComment:
		return s.Comment.Inherit(style)
	}
	return style
}

type cellKind uint8

const (
	cellText cellKind = iota
	cellSelected
	cellCaret
)

type segment struct {
	text strings.Builder
	tags  transcripts.Tag
	class tokenClass
	kind  cellKind
}

// Render draws a snapshot, returning the content and the line holding the See position.
func (s Styles) Render(snapshot consoles.Snapshot) (string, int) {
	buf := new(strings.Builder)
	seg := new(segment)
	flush := func() {
		if seg.text.Len() == 0 {
			return
		}
		style := s.cellStyle(seg.tags, seg.class)
		switch seg.kind {
		case cellSelected:
			style = style.Inherit(s.Selection)
		case cellCaret:
			style = s.Caret
		}
		buf.WriteString(style.Render(seg.text.String()))
		seg.text.Reset()
	}

	pos := 0
	line := 0
	seeLine := 0
	caretDrawn := false
	for _, run := range snapshot.Runs {
		var classes []tokenClass
		if run.Tags.Has(transcripts.Command) && !run.Tags.Has(transcripts.Error) {
			classes = classify(run.Text)
		}
		i := 0
		for _, r := range run.Text {
			class := classNone
			if i < len(classes) {
				class = classes[i]
			}
			i++
			if pos == snapshot.See {
				seeLine = line
			}
			kind := cellText
			if snapshot.Selected && snapshot.Selection.Contains(pos) {
				kind = cellSelected
			}
			if pos == snapshot.Caret {
				kind = cellCaret
				caretDrawn = true
			}
			if kind != seg.kind || run.Tags != seg.tags || class != seg.class || kind == cellCaret {
				flush()
				seg.kind = kind
				seg.tags = run.Tags
				seg.class = class
			}
			if r == '\n' {
				if kind == cellCaret {
					seg.text.WriteRune(' ')
				}
				flush()
				buf.WriteByte('\n')
				line++
			} else {
				seg.text.WriteRune(r)
			}
			pos++
		}
	}
	if pos <= snapshot.See {
		seeLine = line
	}
	if !caretDrawn {
		flush()
		seg.kind = cellCaret
		seg.class = classNone
		seg.text.WriteRune(' ')
	}
	flush()
	return buf.String(), seeLine
}
