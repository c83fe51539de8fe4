package types

import "strings"

// Tree is a constituency tree. Inner nodes carry a Label and Children,
// leaves carry a Leaf and no children.
type Tree struct {
	Label    string
	Children []*Tree
	Leaf     *TaggedToken
}

func NewLeaf(word string, tag string) *Tree {
	return &Tree{Leaf: &TaggedToken{Word: word, Tag: tag}}
}

func (tree *Tree) IsLeaf() bool {
	return tree.Leaf != nil
}

func (tree *Tree) Append(child *Tree) {
	tree.Children = append(tree.Children, child)
}

func (tree *Tree) Leaves() []TaggedToken {
	var leaves []TaggedToken
	tree.walkLeaves(func(leaf TaggedToken) {
		leaves = append(leaves, leaf)
	})
	return leaves
}

func (tree *Tree) walkLeaves(visit func(TaggedToken)) {
	if tree.IsLeaf() {
		visit(*tree.Leaf)
		return
	}
	for _, child := range tree.Children {
		child.walkLeaves(visit)
	}
}

func (tree *Tree) Height() int {
	if tree.IsLeaf() {
		return 1
	}
	height := 0
	for _, child := range tree.Children {
		if h := child.Height(); h > height {
			height = h
		}
	}
	return height + 1
}

// String renders the tree in bracketed notation: (S (NP Das/ART Haus/NN)).
func (tree *Tree) String() string {
	var sb strings.Builder
	tree.write(&sb)
	return sb.String()
}

func (tree *Tree) write(sb *strings.Builder) {
	if tree.IsLeaf() {
		sb.WriteString(tree.Leaf.Word)
		sb.WriteByte('/')
		sb.WriteString(tree.Leaf.Tag)
		return
	}
	sb.WriteByte('(')
	sb.WriteString(tree.Label)
	for _, child := range tree.Children {
		sb.WriteByte(' ')
		child.write(sb)
	}
	sb.WriteByte(')')
}
