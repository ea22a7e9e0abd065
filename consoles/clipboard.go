package consoles

import "github.com/atotto/clipboard"

type Clipboard interface {
	WriteAll(text string) error
}

// SystemClipboard is the clipboard of the desktop session.
type SystemClipboard struct{}

var _ Clipboard = SystemClipboard{}

func (SystemClipboard) WriteAll(text string) error {
	return clipboard.WriteAll(text)
}
