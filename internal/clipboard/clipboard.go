// Package clipboard puts yanked text on the system clipboard.
package clipboard

import (
	"errors"
	"fmt"

	"github.com/atotto/clipboard"
)

// ErrUnavailable means no system clipboard tool could be found.
var ErrUnavailable = errors.New("no system clipboard")

// System writes to the system clipboard.
type System struct{}

// SetText replaces the clipboard contents with text.
func (System) SetText(text string) error {
	if clipboard.Unsupported {
		return ErrUnavailable
	}
	if err := clipboard.WriteAll(text); err != nil {
		return fmt.Errorf("write clipboard: %w", err)
	}
	return nil
}

// Memory keeps the last text in memory. It stands in for the system
// clipboard in tests and when none exists.
type Memory struct {
	Text string
}

func (m *Memory) SetText(text string) error {
	m.Text = text
	return nil
}
