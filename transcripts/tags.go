package transcripts

func (t *Transcript) TagsAt(pos int) Tag {
	if pos < 0 || pos >= len(t.tags) {
		return 0
	}
	return t.tags[pos]
}

func (t *Transcript) HasTag(pos int, tag Tag) bool {
	return t.TagsAt(pos).Has(tag)
}

func (t *Transcript) TagAdd(tag Tag, from, to int) {
	from, to = t.clamp(from), t.clamp(to)
	for i := from; i < to; i++ {
		t.tags[i] |= tag
	}
}

func (t *Transcript) TagRemove(tag Tag, from, to int) {
	from, to = t.clamp(from), t.clamp(to)
	for i := from; i < to; i++ {
		t.tags[i] &^= tag
	}
}

// TagRanges returns the runs carrying tag, in order. Adjacent tagged runes form one range.
func (t *Transcript) TagRanges(tag Tag) (ret []Range) {
	start := -1
	for i, tags := range t.tags {
		if tags.Has(tag) {
			if start < 0 {
				start = i
			}
			continue
		}
		if start >= 0 {
			ret = append(ret, Range{From: start, To: i})
			start = -1
		}
	}
	if start >= 0 {
		ret = append(ret, Range{From: start, To: len(t.tags)})
	}
	return
}

// TagPrevRange returns the nearest range of tag that starts strictly before pos.
func (t *Transcript) TagPrevRange(tag Tag, pos int) (Range, bool) {
	var ret Range
	found := false
	for _, r := range t.TagRanges(tag) {
		if r.From >= pos {
			break
		}
		ret = r
		found = true
	}
	return ret, found
}

// RangeAt returns the range of tag with From <= pos <= To.
func (t *Transcript) RangeAt(tag Tag, pos int) (Range, bool) {
	for _, r := range t.TagRanges(tag) {
		if r.From > pos {
			break
		}
		if pos <= r.To {
			return r, true
		}
	}
	return Range{}, false
}

// Runs splits the text into maximal runs of equal tags.
func (t *Transcript) Runs() (ret []Run) {
	start := 0
	for i := 1; i <= len(t.runes); i++ {
		if i < len(t.runes) && t.tags[i] == t.tags[start] {
			continue
		}
		if i > start {
			ret = append(ret, Run{
				Text: string(t.runes[start:i]),
				Tags: t.tags[start],
			})
		}
		start = i
	}
	return
}
