package transcripts

import "strings"

// Tag is a set of annotations carried by each rune of a transcript.
type Tag uint8

const (
	Prompt Tag = 1 << iota
	Command
	Output
	Error
)

func (t Tag) Has(tag Tag) bool {
	return tag != 0 && t&tag == tag
}

func (t Tag) String() string {
	if t == 0 {
		return "none"
	}
	var names []string
	for _, info := range []struct {
		tag  Tag
		name string
	}{
		{Prompt, "prompt"},
		{Command, "cmd"},
		{Output, "output"},
		{Error, "error"},
	} {
		if t.Has(info.tag) {
			names = append(names, info.name)
		}
	}
	return strings.Join(names, "|")
}

type Range struct {
	From int
	To   int
}

func (r Range) Len() int {
	return r.To - r.From
}

func (r Range) Contains(pos int) bool {
	return pos >= r.From && pos < r.To
}

// Run is a maximal stretch of runes sharing the same tags.
type Run struct {
	Text string
	Tags Tag
}
