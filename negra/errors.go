package negra

import (
	"errors"
	"fmt"
	"strings"
)

// ErrMalformedTree is returned when the node rows of a sentence do not form a tree.
var ErrMalformedTree = errors.New("malformed sentence tree")

// FormatError identifies a corpus line that does not fit the column layout.
type FormatError struct {
	File   string
	Line   int
	Text   string
	Reason string
}

func (e *FormatError) Error() string {
	file := e.File
	if file == "" {
		file = "<input>"
	}
	return fmt.Sprintf("%s:%d: %s: %q", file, e.Line, e.Reason, e.Text)
}

type MissingColumnError struct {
	Columns []ColumnType
}

func (e *MissingColumnError) Error() string {
	names := make([]string, len(e.Columns))
	for i, column := range e.Columns {
		names[i] = string(column)
	}
	return fmt.Sprintf("corpus has no %s column", strings.Join(names, ", "))
}
