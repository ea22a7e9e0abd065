package transcripts

import (
	"strings"
)

type Gravity uint8

const (
	// LeftGravity marks stay before text inserted at their position.
	LeftGravity Gravity = iota
	// RightGravity marks move past text inserted at their position.
	RightGravity
)

type mark struct {
	pos     int
	gravity Gravity
}

// Transcript is the text of a console: runes with per-rune tags, movable marks and an
// optional selection. It is not safe for concurrent use.
type Transcript struct {
	runes     []rune
	tags      []Tag
	marks     map[string]*mark
	selection Range
	selected  bool
}

func New() *Transcript {
	return &Transcript{
		marks: make(map[string]*mark),
	}
}

func (t *Transcript) Len() int {
	return len(t.runes)
}

func (t *Transcript) Text() string {
	return string(t.runes)
}

func (t *Transcript) String() string {
	return string(t.runes)
}

func (t *Transcript) clamp(pos int) int {
	if pos < 0 {
		return 0
	}
	if pos > len(t.runes) {
		return len(t.runes)
	}
	return pos
}

func (t *Transcript) Slice(from, to int) string {
	from, to = t.clamp(from), t.clamp(to)
	if from >= to {
		return ""
	}
	return string(t.runes[from:to])
}

// At returns the rune at pos, or 0 when pos is out of range.
func (t *Transcript) At(pos int) rune {
	if pos < 0 || pos >= len(t.runes) {
		return 0
	}
	return t.runes[pos]
}

// Insert inserts text at pos with the given tags and returns the number of runes inserted.
func (t *Transcript) Insert(pos int, text string, tags Tag) int {
	rs := []rune(text)
	n := len(rs)
	if n == 0 {
		return 0
	}
	pos = t.clamp(pos)

	runes := make([]rune, 0, len(t.runes)+n)
	runes = append(runes, t.runes[:pos]...)
	runes = append(runes, rs...)
	runes = append(runes, t.runes[pos:]...)
	t.runes = runes

	newTags := make([]Tag, 0, len(t.tags)+n)
	newTags = append(newTags, t.tags[:pos]...)
	for range n {
		newTags = append(newTags, tags)
	}
	newTags = append(newTags, t.tags[pos:]...)
	t.tags = newTags

	for _, m := range t.marks {
		if m.pos > pos || (m.pos == pos && m.gravity == RightGravity) {
			m.pos += n
		}
	}

	if t.selected {
		if pos <= t.selection.From {
			t.selection.From += n
			t.selection.To += n
		} else if pos < t.selection.To {
			t.selection.To += n
		}
	}

	return n
}

// Delete removes runes in [from, to).
func (t *Transcript) Delete(from, to int) {
	from, to = t.clamp(from), t.clamp(to)
	if from >= to {
		return
	}
	n := to - from
	t.runes = append(t.runes[:from], t.runes[to:]...)
	t.tags = append(t.tags[:from], t.tags[to:]...)

	shift := func(pos int) int {
		if pos >= to {
			return pos - n
		}
		if pos > from {
			return from
		}
		return pos
	}
	for _, m := range t.marks {
		m.pos = shift(m.pos)
	}
	if t.selected {
		t.selection.From = shift(t.selection.From)
		t.selection.To = shift(t.selection.To)
		if t.selection.From >= t.selection.To {
			t.selected = false
			t.selection = Range{}
		}
	}
}

// Reset erases all text. Marks move to the start and the selection is cleared.
func (t *Transcript) Reset() {
	t.runes = t.runes[:0]
	t.tags = t.tags[:0]
	for _, m := range t.marks {
		m.pos = 0
	}
	t.selected = false
	t.selection = Range{}
}

func (t *Transcript) SetMark(name string, pos int, gravity Gravity) {
	pos = t.clamp(pos)
	if m, ok := t.marks[name]; ok {
		m.pos = pos
		m.gravity = gravity
		return
	}
	t.marks[name] = &mark{
		pos:     pos,
		gravity: gravity,
	}
}

// MoveMark moves an existing mark, keeping its gravity.
func (t *Transcript) MoveMark(name string, pos int) {
	m, ok := t.marks[name]
	if !ok {
		t.SetMark(name, pos, RightGravity)
		return
	}
	m.pos = t.clamp(pos)
}

// Mark returns the mark position, or 0 for unknown marks.
func (t *Transcript) Mark(name string) int {
	if m, ok := t.marks[name]; ok {
		return m.pos
	}
	return 0
}

func (t *Transcript) SetSelection(from, to int) {
	from, to = t.clamp(from), t.clamp(to)
	if from > to {
		from, to = to, from
	}
	if from == to {
		t.ClearSelection()
		return
	}
	t.selection = Range{From: from, To: to}
	t.selected = true
}

func (t *Transcript) Selection() (Range, bool) {
	return t.selection, t.selected
}

func (t *Transcript) ClearSelection() {
	t.selected = false
	t.selection = Range{}
}

func (t *Transcript) SelectedText() string {
	if !t.selected {
		return ""
	}
	return t.Slice(t.selection.From, t.selection.To)
}

// Lines splits the text on newlines. An empty transcript has one empty line.
func (t *Transcript) Lines() []string {
	return strings.Split(string(t.runes), "\n")
}

// LineOf returns the zero-based line number of pos.
func (t *Transcript) LineOf(pos int) int {
	pos = t.clamp(pos)
	line := 0
	for _, r := range t.runes[:pos] {
		if r == '\n' {
			line++
		}
	}
	return line
}

// LineCol returns the zero-based line and column of pos.
func (t *Transcript) LineCol(pos int) (line, col int) {
	pos = t.clamp(pos)
	return t.LineOf(pos), pos - t.LineStart(pos)
}

func (t *Transcript) LineStart(pos int) int {
	pos = t.clamp(pos)
	for pos > 0 && t.runes[pos-1] != '\n' {
		pos--
	}
	return pos
}

func (t *Transcript) LineEnd(pos int) int {
	pos = t.clamp(pos)
	for pos < len(t.runes) && t.runes[pos] != '\n' {
		pos++
	}
	return pos
}

// LastLine returns the text after the final newline.
func (t *Transcript) LastLine() string {
	end := len(t.runes)
	return string(t.runes[t.LineStart(end):end])
}

// PosOf converts a line and column back to a position, clamping both.
func (t *Transcript) PosOf(line, col int) int {
	pos := 0
	for l := 0; l < line; l++ {
		next := t.LineEnd(pos)
		if next >= len(t.runes) {
			return next
		}
		pos = next + 1
	}
	end := t.LineEnd(pos)
	if col < 0 {
		col = 0
	}
	return min(pos+col, end)
}
