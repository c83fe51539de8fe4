package negra

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"experimentallabor.de/gertag/types"
	"github.com/stretchr/testify/require"
)

func TestChunkTreeExample(t *testing.T) {
	columns := MustColumnMap(Words, Lemma, POS, Parent)
	input := "#BOS 1\n" +
		"The\tthe\tDET\t500\n" +
		"house\thouse\tN\t500\n" +
		"is\tbe\tV\t501\n" +
		"red\tred\tADJ\t501\n" +
		".\t.\t.\t0\n" +
		"#500\t--\tNP\t502\n" +
		"#501\t--\tVP\t502\n" +
		"#502\t--\tS\t0\n" +
		"#EOS 1\n"

	sents, scanner := scanAll(t, input, WithColumns(columns))
	require.NoError(t, scanner.Err())
	require.Len(t, sents, 1)

	tree, err := ChunkTree(sents[0], DefaultTopLabel)
	require.NoError(t, err)
	require.Equal(t, "(S (NP The/DET house/N) (VP is/V red/ADJ) ./.)", tree.String())
	require.Equal(t, sents[0].Tagged(), tree.Leaves())
	require.Equal(t, 3, tree.Height())
}

func TestChunkedSents(t *testing.T) {
	reader := exportReader(t)
	trees, err := reader.ChunkedSents("sample.export")
	require.NoError(t, err)
	require.Len(t, trees, 2)
	require.Equal(t, "(S (NP Das/ART Haus/NN) ist/VAFIN rot/ADJD ./$.)", trees[0].String())
	require.Equal(t, "(S Er/PPER läuft/VVFIN)", trees[1].String())
}

func TestChunkTreeWithoutNodes(t *testing.T) {
	reader, err := NewReader(filepath.Join("testdata", "export"), []string{"more/second.export"}, WithTopLabel("ROOT"))
	require.NoError(t, err)
	trees, err := reader.ChunkedSents()
	require.NoError(t, err)
	require.Equal(t, "(ROOT Ja/PTKANT !/$.)", trees[0].String())
}

func TestChunkTreeMalformed(t *testing.T) {
	sentence := func(tokens []*types.Token, nodes ...*types.Node) *types.Sentence {
		return &types.Sentence{ID: "1", Tokens: tokens, Nodes: nodes}
	}
	token := &types.Token{Word: "a", Tag: "X", Parent: 500}

	tests := []struct {
		name string
		sent *types.Sentence
	}{
		{"no root", sentence([]*types.Token{token}, &types.Node{ID: 500, Label: "NP", Parent: 501})},
		{"unknown node parent", sentence([]*types.Token{token},
			&types.Node{ID: 500, Label: "NP", Parent: 509},
			&types.Node{ID: 501, Label: "S", Parent: 0})},
		{"unknown token parent", sentence([]*types.Token{{Word: "a", Tag: "X", Parent: 777}},
			&types.Node{ID: 500, Label: "S", Parent: 0})},
		{"cycle", sentence([]*types.Token{token},
			&types.Node{ID: 500, Label: "NP", Parent: 501},
			&types.Node{ID: 501, Label: "VP", Parent: 500},
			&types.Node{ID: 502, Label: "S", Parent: 0})},
		{"duplicate node", sentence([]*types.Token{token},
			&types.Node{ID: 500, Label: "NP", Parent: 0},
			&types.Node{ID: 500, Label: "S", Parent: 0})},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ChunkTree(tt.sent, DefaultTopLabel)
			require.True(t, errors.Is(err, ErrMalformedTree), "got %v", err)
			require.True(t, strings.HasPrefix(err.Error(), ErrMalformedTree.Error()))
		})
	}
}
