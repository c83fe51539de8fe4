package negra

import (
	"fmt"

	"experimentallabor.de/gertag/types"
)

// DefaultTopLabel labels the root of sentences without non-terminal nodes.
const DefaultTopLabel = "S"

// ChunkTree builds the constituency tree of a sentence from its parent
// column. The last node attached to 0 is the root; tokens and other nodes
// attached to 0 hang directly below it. A sentence without nodes becomes a
// flat tree labelled topLabel.
func ChunkTree(sent *types.Sentence, topLabel string) (*types.Tree, error) {
	if len(sent.Nodes) == 0 {
		root := &types.Tree{Label: topLabel}
		for _, token := range sent.Tokens {
			root.Append(types.NewLeaf(token.Word, token.Tag))
		}
		return root, nil
	}

	top := -1
	for i := len(sent.Nodes) - 1; i >= 0; i-- {
		if sent.Nodes[i].Parent == 0 {
			top = sent.Nodes[i].ID
			break
		}
	}
	if top < 0 {
		return nil, fmt.Errorf("%w: sentence %s has no root node", ErrMalformedTree, sent.ID)
	}

	trees := make(map[int]*types.Tree, len(sent.Nodes))
	parents := make(map[int]int, len(sent.Nodes))
	for _, node := range sent.Nodes {
		if _, dup := trees[node.ID]; dup {
			return nil, fmt.Errorf("%w: node #%d is defined twice", ErrMalformedTree, node.ID)
		}
		trees[node.ID] = &types.Tree{Label: node.Label}
		parent := node.Parent
		if parent == 0 && node.ID != top {
			parent = top
		}
		parents[node.ID] = parent
	}
	for _, node := range sent.Nodes {
		id := node.ID
		for steps := 0; id != top; steps++ {
			parent := parents[id]
			if _, ok := trees[parent]; !ok {
				return nil, fmt.Errorf("%w: node #%d points to unknown parent %d", ErrMalformedTree, id, parent)
			}
			if steps >= len(sent.Nodes) {
				return nil, fmt.Errorf("%w: cycle through node #%d", ErrMalformedTree, node.ID)
			}
			id = parent
		}
	}

	attached := map[int]bool{top: true}
	// attach links a node and its unattached ancestors into the tree, so
	// that nodes appear in the order of their first leaf.
	attach := func(id int) {
		for !attached[id] {
			parent := parents[id]
			trees[parent].Append(trees[id])
			attached[id] = true
			id = parent
		}
	}

	for _, token := range sent.Tokens {
		parent := token.Parent
		if parent == 0 {
			parent = top
		}
		tree, ok := trees[parent]
		if !ok {
			return nil, fmt.Errorf("%w: token %q on line %d points to unknown parent %d",
				ErrMalformedTree, token.Word, token.Line, parent)
		}
		attach(parent)
		tree.Append(types.NewLeaf(token.Word, token.Tag))
	}
	return trees[top], nil
}
