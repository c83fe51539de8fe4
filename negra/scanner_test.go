package negra

import (
	"errors"
	"strings"
	"testing"

	"experimentallabor.de/gertag/types"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func scanAll(t *testing.T, input string, opts ...Option) ([]*types.Sentence, *Scanner) {
	t.Helper()
	scanner := NewScanner(strings.NewReader(input), opts...)
	var sents []*types.Sentence
	for scanner.Scan() {
		sents = append(sents, scanner.Sentence())
	}
	return sents, scanner
}

func taggedOf(sents []*types.Sentence) [][]types.TaggedToken {
	out := make([][]types.TaggedToken, len(sents))
	for i, sent := range sents {
		out[i] = sent.Tagged()
	}
	return out
}

func TestScanPlainTaggedBlock(t *testing.T) {
	sents, scanner := scanAll(t, "Das\tART\nHaus\tNN\n\n", WithColumns(TaggedColumns))
	require.NoError(t, scanner.Err())

	expected := [][]types.TaggedToken{{{Word: "Das", Tag: "ART"}, {Word: "Haus", Tag: "NN"}}}
	if diff := cmp.Diff(expected, taggedOf(sents)); diff != "" {
		t.Errorf("unexpected sentences (-want +got):\n%s", diff)
	}
}

func TestScanBlockCount(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		tokens []int
	}{
		{"empty", "", nil},
		{"only blank lines", "\n\n\n", nil},
		{"no trailing newline", "a\tX", []int{1}},
		{"several blank lines between", "a\tX\n\n\n\nb\tY\nc\tZ\n", []int{1, 2}},
		{"three blocks", "a\tX\n\nb\tY\n\nc\tZ\n\n", []int{1, 1, 1}},
		{"comments ignored", "%% header\na\tX\n%% inner\nb\tY\n", []int{2}},
		{"marked blocks", "#BOS 1\na\tX\n#EOS 1\n#BOS 2\nb\tY\nc\tZ\n#EOS 2\n", []int{1, 2}},
		{"blank lines inside marked block", "#BOS 1\na\tX\n\nb\tY\n#EOS 1\n", []int{2}},
		{"empty marked block", "#BOS 1\n#EOS 1\n", nil},
		{"plain then marked", "a\tX\nd\tW\n#BOS 7\nb\tY\n#EOS 7\n", []int{2, 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sents, scanner := scanAll(t, tt.input, WithColumns(TaggedColumns))
			require.NoError(t, scanner.Err())
			var tokens []int
			for _, sent := range sents {
				tokens = append(tokens, len(sent.Tokens))
			}
			require.Equal(t, tt.tokens, tokens)
		})
	}
}

func TestScanExportFile(t *testing.T) {
	input := "#FORMAT 4\n" +
		"#BOT WORDTAG\n0\tART\tdeterminer\n#EOT WORDTAG\n" +
		"#BOS 12 2 1070544990 0\n" +
		"Das\tder\tART\tNom.Sg.Neut\tNK\t500\n" +
		"Haus\tHaus\tNN\tNom.Sg.Neut\tNK\t500\tRE\t501\t%% check\n" +
		"#500\t--\tNP\t--\tSB\t0\n" +
		"#EOS 12\n"

	sents, scanner := scanAll(t, input)
	require.NoError(t, scanner.Err())
	require.Len(t, sents, 1)

	sent := sents[0]
	require.Equal(t, "12", sent.ID)
	require.Equal(t, 5, sent.Line)
	require.Equal(t, []string{"Das", "Haus"}, sent.Words())

	haus := sent.Tokens[1]
	require.Equal(t, "Haus", haus.Lemma)
	require.Equal(t, "Nom.Sg.Neut", haus.Morph)
	require.Equal(t, "NK", haus.Edge)
	require.Equal(t, 500, haus.Parent)
	require.Equal(t, []types.SecEdge{{Label: "RE", Parent: 501}}, haus.SecEdges)
	require.Equal(t, "check", haus.Comment)
	require.Equal(t, 7, haus.Line)

	require.Len(t, sent.Nodes, 1)
	node := sent.Nodes[0]
	require.Equal(t, 500, node.ID)
	require.Equal(t, "NP", node.Label)
	require.Equal(t, "SB", node.Edge)
}

func TestScanStrictErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		line  int
	}{
		{"too few columns", "#BOS 1\nDas\tder\tART\n#EOS 1\n", 2},
		{"bad parent", "#BOS 1\nDas\tder\tART\t--\tNK\tfive\n#EOS 1\n", 2},
		{"odd secondary edges", "#BOS 1\nDas\tder\tART\t--\tNK\t0\tRE\n#EOS 1\n", 2},
		{"stray end marker", "#EOS 1\n", 1},
		{"end marker inside plain block", "Das\tder\tART\t--\tNK\t0\n#EOS 1\nHaus\tHaus\tNN\t--\tNK\t0\n", 2},
		{"nested begin marker", "#BOS 1\nDas\tder\tART\t--\tNK\t0\n#BOS 2\n", 3},
		{"unterminated sentence", "#BOS 1\nDas\tder\tART\t--\tNK\t0\n", 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, scanner := scanAll(t, tt.input)
			err := scanner.Err()
			require.Error(t, err)

			var formatErr *FormatError
			require.True(t, errors.As(err, &formatErr))
			require.Equal(t, tt.line, formatErr.Line)
			require.Contains(t, err.Error(), "<input>")
		})
	}
}

func TestScanSkipMalformed(t *testing.T) {
	input := "#BOS 1\nDas\tder\tART\t--\tNK\t0\nkaputt\n#EOS 1\n" +
		"#EOS 9\n" +
		"#BOS 2\nEr\ter\tPPER\t--\tSB\t0\n"

	sents, scanner := scanAll(t, input, SkipMalformed())
	require.NoError(t, scanner.Err())
	require.Equal(t, 3, scanner.Skipped())
	require.Len(t, sents, 2)
	require.Equal(t, []string{"Das"}, sents[0].Words())
	require.Equal(t, []string{"Er"}, sents[1].Words())

	sents, scanner = scanAll(t, "a\tX\n#EOS 1\nb\tY\n\n", WithColumns(TaggedColumns), SkipMalformed())
	require.NoError(t, scanner.Err())
	require.Equal(t, 1, scanner.Skipped())
	require.Equal(t, [][]types.TaggedToken{{{Word: "a", Tag: "X"}, {Word: "b", Tag: "Y"}}}, taggedOf(sents))
}

func TestScanStopsAfterError(t *testing.T) {
	scanner := NewScanner(strings.NewReader("#EOS\na\tb\tc\td\te\t0\n"))
	require.False(t, scanner.Scan())
	require.Error(t, scanner.Err())
	require.False(t, scanner.Scan())
	require.Nil(t, scanner.Sentence())
}

func TestScanCustomMarkers(t *testing.T) {
	opts := []Option{
		WithColumns(TaggedColumns),
		WithSentenceMarkers(regexpMust(t, `^<s>$`), regexpMust(t, `^</s>$`)),
	}
	sents, scanner := scanAll(t, "<s>\nJa\tPTKANT\n</s>\n<s>\nNein\tPTKANT\n</s>\n", opts...)
	require.NoError(t, scanner.Err())
	require.Len(t, sents, 2)
	require.Equal(t, "2", sents[1].ID)
}
