package negra

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"experimentallabor.de/gertag/types"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func exportReader(t *testing.T, opts ...Option) *Reader {
	t.Helper()
	reader, err := NewReader(filepath.Join("testdata", "export"), []string{"**/*.export"}, opts...)
	require.NoError(t, err)
	return reader
}

func TestReaderFileIDs(t *testing.T) {
	reader := exportReader(t)
	ids, err := reader.FileIDs()
	require.NoError(t, err)
	require.Equal(t, []string{"more/second.export", "sample.export"}, ids)

	reader, err = NewReader("testdata", []string{"export/sample.export", "export/*.export", "missing.txt"})
	require.NoError(t, err)
	ids, err = reader.FileIDs()
	require.NoError(t, err)
	require.Equal(t, []string{"export/sample.export", "missing.txt"}, ids)
}

func TestNewReaderRejectsBadPatterns(t *testing.T) {
	_, err := NewReader("testdata", nil)
	require.Error(t, err)

	_, err = NewReader("testdata", []string{"[unclosed"})
	require.Error(t, err)
}

func TestReaderTaggedSents(t *testing.T) {
	reader := exportReader(t)
	sents, err := reader.TaggedSents("sample.export")
	require.NoError(t, err)

	expected := [][]types.TaggedToken{
		{
			{Word: "Das", Tag: "ART"},
			{Word: "Haus", Tag: "NN"},
			{Word: "ist", Tag: "VAFIN"},
			{Word: "rot", Tag: "ADJD"},
			{Word: ".", Tag: "$."},
		},
		{
			{Word: "Er", Tag: "PPER"},
			{Word: "läuft", Tag: "VVFIN"},
		},
	}
	if diff := cmp.Diff(expected, sents); diff != "" {
		t.Errorf("unexpected sentences (-want +got):\n%s", diff)
	}
}

func TestReaderViews(t *testing.T) {
	reader := exportReader(t)

	words, err := reader.Words()
	require.NoError(t, err)
	require.Equal(t, []string{"Ja", "!", "Das", "Haus", "ist", "rot", ".", "Er", "läuft"}, words)

	sents, err := reader.Sents()
	require.NoError(t, err)
	require.Len(t, sents, 3)

	tagged, err := reader.TaggedWords("more/second.export")
	require.NoError(t, err)
	require.Equal(t, []types.TaggedToken{{Word: "Ja", Tag: "PTKANT"}, {Word: "!", Tag: "$."}}, tagged)

	lemmas, err := reader.LemmatisedWords("sample.export")
	require.NoError(t, err)
	require.Equal(t, types.Pair{Word: "läuft", Value: "laufen"}, lemmas[len(lemmas)-1])

	lemmaSents, err := reader.LemmatisedSents("sample.export")
	require.NoError(t, err)
	require.Len(t, lemmaSents, 2)
	require.Equal(t, types.Pair{Word: "Das", Value: "der"}, lemmaSents[0][0])

	morph, err := reader.MorphologicalSents("sample.export")
	require.NoError(t, err)
	require.Equal(t, types.Pair{Word: "ist", Value: "3.Sg.Pres.Ind"}, morph[0][2])

	morphWords, err := reader.MorphologicalWords("sample.export")
	require.NoError(t, err)
	require.Len(t, morphWords, 7)
}

func TestReaderChunkedWords(t *testing.T) {
	reader := exportReader(t)
	chunks, err := reader.ChunkedWords("sample.export")
	require.NoError(t, err)

	var rendered []string
	for _, chunk := range chunks {
		rendered = append(rendered, chunk.String())
	}
	expected := []string{"(NP Das/ART Haus/NN)", "ist/VAFIN", "rot/ADJD", "./$.", "Er/PPER", "läuft/VVFIN"}
	if diff := cmp.Diff(expected, rendered); diff != "" {
		t.Errorf("unexpected chunks (-want +got):\n%s", diff)
	}
	require.False(t, chunks[0].IsLeaf())
	require.True(t, chunks[1].IsLeaf())

	chunks, err = reader.ChunkedWords("more/second.export")
	require.NoError(t, err)
	require.Len(t, chunks, 2)
	require.Equal(t, "Ja/PTKANT", chunks[0].String())
}

func TestReaderIsRestartable(t *testing.T) {
	reader := exportReader(t)
	first, err := reader.TaggedSents()
	require.NoError(t, err)
	second, err := reader.TaggedSents()
	require.NoError(t, err)
	require.Equal(t, first, second)
}

func TestReaderMissingColumns(t *testing.T) {
	reader, err := NewReader(filepath.Join("testdata", "tagged"), []string{"*.txt"}, WithColumns(TaggedColumns))
	require.NoError(t, err)

	_, err = reader.LemmatisedSents()
	var missing *MissingColumnError
	require.True(t, errors.As(err, &missing))
	require.Equal(t, []ColumnType{Lemma}, missing.Columns)

	_, err = reader.ChunkedSents()
	require.True(t, errors.As(err, &missing))
	require.Equal(t, []ColumnType{Parent}, missing.Columns)

	_, err = reader.ChunkedWords()
	require.True(t, errors.As(err, &missing))
	require.Equal(t, []ColumnType{Parent}, missing.Columns)

	sents, err := reader.TaggedSents()
	require.NoError(t, err)
	require.Len(t, sents, 2)
}

func TestReaderEmptyCorpus(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "empty.export"), nil, 0o644))

	reader, err := NewReader(dir, []string{"*.export"})
	require.NoError(t, err)
	sents, err := reader.Sents()
	require.NoError(t, err)
	require.Empty(t, sents)

	reader, err = NewReader(dir, []string{"*.nothing"})
	require.NoError(t, err)
	sents, err = reader.Sents()
	require.NoError(t, err)
	require.Empty(t, sents)
}

func TestIteratorStats(t *testing.T) {
	reader := exportReader(t)
	it, err := reader.Open()
	require.NoError(t, err)
	defer it.Close()

	var ids []string
	for it.Next() {
		ids = append(ids, it.Sentence().File+"#"+it.Sentence().ID)
	}
	require.NoError(t, it.Err())
	require.Equal(t, []string{"more/second.export#3", "sample.export#1", "sample.export#2"}, ids)
	require.Equal(t, Stats{Files: 2, Sentences: 3, Tokens: 9}, it.Stats())
}

func TestIteratorReportsFileAndLine(t *testing.T) {
	reader, err := NewReader("testdata", []string{"broken.txt"}, WithColumns(TaggedColumns))
	require.NoError(t, err)

	_, err = reader.Sents()
	var formatErr *FormatError
	require.True(t, errors.As(err, &formatErr))
	require.Equal(t, "broken.txt", formatErr.File)
	require.Equal(t, 4, formatErr.Line)

	reader, err = NewReader("testdata", []string{"broken.txt"}, WithColumns(TaggedColumns), SkipMalformed())
	require.NoError(t, err)
	it, err := reader.Open()
	require.NoError(t, err)
	count := 0
	for it.Next() {
		count++
	}
	require.NoError(t, it.Err())
	require.Equal(t, 2, count)
	require.Equal(t, 1, it.Stats().Skipped)
}

func TestIteratorMissingFile(t *testing.T) {
	reader, err := NewReader("testdata", []string{"missing.txt"})
	require.NoError(t, err)
	_, err = reader.Sents()
	require.True(t, errors.Is(err, os.ErrNotExist))
}

func TestEachStopsOnCallbackError(t *testing.T) {
	reader := exportReader(t)
	stop := errors.New("stop")
	seen := 0
	err := reader.Each(func(*types.Sentence) error {
		seen++
		return stop
	})
	require.True(t, errors.Is(err, stop))
	require.Equal(t, 1, seen)
}

func TestNewReaderFromConfig(t *testing.T) {
	cfg := types.CorpusConfig{
		Root:    filepath.Join("testdata", "tagged"),
		Files:   []string{"*.txt"},
		Columns: []string{"words", "pos"},
	}
	reader, err := NewReaderFromConfig(cfg)
	require.NoError(t, err)
	require.Equal(t, "words pos", reader.Columns().String())

	words, err := reader.Words()
	require.NoError(t, err)
	require.Equal(t, []string{"Der", "Hund", "läuft", ".", "Die", "Katze", "schläft", "."}, words)

	cfg.Columns = []string{"words", "colour"}
	_, err = NewReaderFromConfig(cfg)
	require.Error(t, err)

	cfg.Columns = nil
	cfg.BeginMarker = "("
	_, err = NewReaderFromConfig(cfg)
	require.Error(t, err)
}
