package display

import (
	"github.com/muesli/reflow/wordwrap"
)

const DefaultWidth = 80

// Wrap word-wraps outbound text to DefaultWidth for terminal clients.
func Wrap(text string) string {
	return wordwrap.String(text, DefaultWidth)
}
