package negra

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"experimentallabor.de/gertag/types"
)

const commentPrefix = "%%"

var nodeIDPattern = regexp.MustCompile(`^#[0-9]+$`)

// row is either a terminal token or a non-terminal node.
type row struct {
	token *types.Token
	node  *types.Node
}

func (m ColumnMap) field(fields []string, column ColumnType) string {
	i, ok := m.index[column]
	if !ok || i >= len(fields) {
		return ""
	}
	return fields[i]
}

// parseRow splits a line into fields and maps them to a token or a node.
func (m ColumnMap) parseRow(line string, lineNo int) (row, error) {
	fields := strings.Fields(line)
	var comment string
	for i, f := range fields {
		if strings.HasPrefix(f, commentPrefix) {
			comment = strings.TrimSpace(strings.TrimPrefix(strings.Join(fields[i:], " "), commentPrefix))
			fields = fields[:i]
			break
		}
	}

	if positional := m.Positional(); len(fields) < positional {
		return row{}, fmt.Errorf("expected at least %d columns, got %d", positional, len(fields))
	}

	parent := 0
	if m.Has(Parent) {
		value := m.field(fields, Parent)
		p, err := strconv.Atoi(value)
		if err != nil || p < 0 {
			return row{}, fmt.Errorf("parent %q is not a node number", value)
		}
		parent = p
	}

	var secEdges []types.SecEdge
	if i, ok := m.index[SecEdge]; ok && i < len(fields) {
		rest := fields[i:]
		if len(rest)%2 != 0 {
			return row{}, errors.New("secondary edges must come in label/parent pairs")
		}
		for j := 0; j < len(rest); j += 2 {
			p, err := strconv.Atoi(rest[j+1])
			if err != nil {
				return row{}, fmt.Errorf("secondary parent %q is not a node number", rest[j+1])
			}
			secEdges = append(secEdges, types.SecEdge{Label: rest[j], Parent: p})
		}
	}

	word := m.field(fields, Words)
	if nodeIDPattern.MatchString(word) {
		id, err := strconv.Atoi(word[1:])
		if err != nil {
			return row{}, fmt.Errorf("node id %q is not a number", word)
		}
		return row{node: &types.Node{
			ID:     id,
			Label:  m.field(fields, POS),
			Morph:  m.field(fields, Morph),
			Edge:   m.field(fields, Edge),
			Parent: parent,
			Line:   lineNo,
		}}, nil
	}

	return row{token: &types.Token{
		Word:     word,
		Lemma:    m.field(fields, Lemma),
		Tag:      m.field(fields, POS),
		Morph:    m.field(fields, Morph),
		Edge:     m.field(fields, Edge),
		Parent:   parent,
		SecEdges: secEdges,
		Comment:  comment,
		Line:     lineNo,
	}}, nil
}
