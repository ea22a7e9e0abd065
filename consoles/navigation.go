package consoles

// Left moves the caret one rune back.
func (c *Console) Left() {
	c.moveCaret(func(caret int) int {
		return caret - 1
	})
}

func (c *Console) Right() {
	c.moveCaret(func(caret int) int {
		return caret + 1
	})
}

// Home moves to the start of the editable line, or of the current line in history.
func (c *Console) Home() {
	c.moveCaret(func(caret int) int {
		if limit := c.limit(); caret >= limit {
			return limit
		}
		return c.text.LineStart(caret)
	})
}

func (c *Console) End() {
	c.moveCaret(c.text.LineEnd)
}

// Down moves to the same column of the next line.
func (c *Console) Down() {
	c.moveCaret(func(caret int) int {
		line, col := c.text.LineCol(caret)
		return c.text.PosOf(line+1, col)
	})
}

func (c *Console) SetCaret(pos int) {
	c.moveCaret(func(int) int {
		return pos
	})
}

func (c *Console) moveCaret(fn func(caret int) int) {
	c.lock()
	c.text.ClearSelection()
	c.setCaret(fn(c.caret()))
	c.unlock()
	c.changed()
}

// ExtendSelection moves the caret by delta runes, growing or shrinking the selection anchored
// where the caret was when the selection started.
func (c *Console) ExtendSelection(delta int) {
	c.lock()
	caret := c.caret()
	anchor := caret
	if sel, ok := c.text.Selection(); ok {
		if sel.From == caret {
			anchor = sel.To
		} else {
			anchor = sel.From
		}
	}
	c.setCaret(caret + delta)
	c.text.SetSelection(anchor, c.caret())
	c.unlock()
	c.changed()
}

func (c *Console) Select(from, to int) {
	c.lock()
	c.text.SetSelection(from, to)
	c.unlock()
	c.changed()
}

func (c *Console) ClearSelection() {
	c.lock()
	c.text.ClearSelection()
	c.unlock()
	c.changed()
}

func (c *Console) SelectedText() string {
	c.lock()
	defer c.unlock()
	return c.text.SelectedText()
}
