package negra

import (
	"fmt"
	"strings"
)

type ColumnType string

const (
	Words   ColumnType = "words"   // word form
	Lemma   ColumnType = "lemma"   // lemma
	POS     ColumnType = "pos"     // part-of-speech tag, phrase label for nodes
	Morph   ColumnType = "morph"   // morphological tag
	Edge    ColumnType = "edge"    // grammatical function
	Parent  ColumnType = "parent"  // parent node in the sentence tree
	SecEdge ColumnType = "secedge" // secondary edges as label/parent pairs
	Comment ColumnType = "comment" // annotator comment starting with %%
)

// ColumnTypes lists every supported column.
var ColumnTypes = []ColumnType{Words, Lemma, POS, Morph, Edge, Parent, SecEdge, Comment}

var (
	// DefaultColumns is the layout of export format 4.
	DefaultColumns = MustColumnMap(Words, Lemma, POS, Morph, Edge, Parent, SecEdge, Comment)
	// TaggedColumns reads plain word/tag files.
	TaggedColumns = MustColumnMap(Words, POS)
)

// ColumnMap assigns column types to field positions of a corpus line.
type ColumnMap struct {
	columns []ColumnType
	index   map[ColumnType]int
}

func isTrailing(column ColumnType) bool {
	return column == SecEdge || column == Comment
}

func supported(column ColumnType) bool {
	for _, c := range ColumnTypes {
		if c == column {
			return true
		}
	}
	return false
}

// NewColumnMap builds a map from columns in field order. The words column is
// required; secedge and comment, if present, must come last (in that order).
func NewColumnMap(columns ...ColumnType) (ColumnMap, error) {
	m := ColumnMap{
		columns: make([]ColumnType, len(columns)),
		index:   make(map[ColumnType]int, len(columns)),
	}
	copy(m.columns, columns)

	seenTrailing := false
	for i, column := range columns {
		if !supported(column) {
			return ColumnMap{}, fmt.Errorf("column %q is not supported", column)
		}
		if _, dup := m.index[column]; dup {
			return ColumnMap{}, fmt.Errorf("column %q is listed twice", column)
		}
		if isTrailing(column) {
			seenTrailing = true
		} else if seenTrailing {
			return ColumnMap{}, fmt.Errorf("column %q follows a trailing column", column)
		}
		if column == SecEdge {
			if _, hasComment := m.index[Comment]; hasComment {
				return ColumnMap{}, fmt.Errorf("column %q must precede %q", SecEdge, Comment)
			}
		}
		m.index[column] = i
	}

	if _, ok := m.index[Words]; !ok {
		return ColumnMap{}, fmt.Errorf("column %q is required", Words)
	}
	return m, nil
}

func MustColumnMap(columns ...ColumnType) ColumnMap {
	m, err := NewColumnMap(columns...)
	if err != nil {
		panic(err)
	}
	return m
}

// ParseColumns builds a ColumnMap from column names as found in config files.
func ParseColumns(names []string) (ColumnMap, error) {
	columns := make([]ColumnType, len(names))
	for i, name := range names {
		columns[i] = ColumnType(strings.ToLower(strings.TrimSpace(name)))
	}
	return NewColumnMap(columns...)
}

func (m ColumnMap) Columns() []ColumnType {
	columns := make([]ColumnType, len(m.columns))
	copy(columns, m.columns)
	return columns
}

func (m ColumnMap) Index(column ColumnType) (int, bool) {
	i, ok := m.index[column]
	return i, ok
}

func (m ColumnMap) Has(column ColumnType) bool {
	_, ok := m.index[column]
	return ok
}

// Require fails with a *MissingColumnError listing the absent columns.
func (m ColumnMap) Require(columns ...ColumnType) error {
	var missing []ColumnType
	for _, column := range columns {
		if !m.Has(column) {
			missing = append(missing, column)
		}
	}
	if len(missing) > 0 {
		return &MissingColumnError{Columns: missing}
	}
	return nil
}

// Positional is the number of fields every row must have.
func (m ColumnMap) Positional() int {
	n := 0
	for _, column := range m.columns {
		if !isTrailing(column) {
			n++
		}
	}
	return n
}

func (m ColumnMap) String() string {
	names := make([]string, len(m.columns))
	for i, column := range m.columns {
		names[i] = string(column)
	}
	return strings.Join(names, " ")
}
