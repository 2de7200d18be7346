package rdf

import "fmt"

// Locator pinpoints where a log message or error occurred, matching
// the {file, uri, line, column, byte} tuple attached to every message
// on the log channel (spec §3). Unknown coordinates use -1, not a
// pointer/Option, since the zero value of Locator is already "nothing
// known" except for the int fields defaulting to 0 rather than -1 —
// callers should build locators through NewLocator or set fields
// explicitly rather than relying on the zero value.
type Locator struct {
	File   string
	URI    string
	Line   int
	Column int
	Byte   int64
}

// NewLocator returns a Locator with every coordinate set to the
// "unknown" sentinel.
func NewLocator() Locator {
	return Locator{Line: -1, Column: -1, Byte: -1}
}

func (l Locator) String() string {
	name := l.File
	if name == "" {
		name = l.URI
	}
	if name == "" && l.Line < 0 && l.Column < 0 {
		return ""
	}
	if name == "" {
		name = "-"
	}
	line := "?"
	if l.Line >= 0 {
		line = fmt.Sprintf("%d", l.Line)
	}
	col := "?"
	if l.Column >= 0 {
		col = fmt.Sprintf("%d", l.Column)
	}
	return fmt.Sprintf("%s:%s:%s", name, line, col)
}
