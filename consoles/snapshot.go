package consoles

import "github.com/reusee/starconsole/transcripts"

// Snapshot is a consistent view of a console for rendering.
type Snapshot struct {
	Runs      []transcripts.Run
	Len       int
	Caret     int
	Limit     int
	Selection transcripts.Range
	Selected  bool
	// See is the position that should be scrolled into view
	See   int
	State State
}

func (c *Console) Snapshot() Snapshot {
	c.lock()
	defer c.unlock()
	sel, ok := c.text.Selection()
	return Snapshot{
		Runs:      c.text.Runs(),
		Len:       c.text.Len(),
		Caret:     c.caret(),
		Limit:     c.limit(),
		Selection: sel,
		Selected:  ok,
		See:       c.see,
		State:     c.state,
	}
}
