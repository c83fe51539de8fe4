package pos

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGermanFeatureDetectorFirstToken(t *testing.T) {
	detector := NewGermanFeatureDetector()
	features := detector.Detect([]string{"Der", "Hund", "läuft"}, 0, nil)

	require.Equal(t, SentenceBegin, features["prevtag"])
	require.Equal(t, SentenceBegin, features["prevprevtag"])
	require.Equal(t, SentenceBegin, features["prevword"])
	require.Equal(t, "true", features["capitalized"])
	require.Equal(t, "false", features["capitalized.inner"])
	require.Equal(t, "Hund", features["nextword"])
	require.Equal(t, SentenceBegin+"+Der", features["prevtag+word"])
	require.Equal(t, SentenceBegin+"+Der", features["prevprevtag+word"])
}

func TestGermanFeatureDetectorEveryPosition(t *testing.T) {
	detector := NewGermanFeatureDetector()
	sentences := [][]string{
		{"Ja"},
		{"Der", "Hund", "läuft"},
		{"Die", "Straße", "in", "Baden-Württemberg", "ist", "3,5", "km", "lang", "."},
	}
	for _, tokens := range sentences {
		for i := range tokens {
			features := detector.Detect(tokens, i, nil)
			require.Equal(t, tokens[i], features["word"])
			require.NotEmpty(t, features["shape"])
		}
	}
}

func TestGermanFeatureDetectorLastToken(t *testing.T) {
	detector := NewGermanFeatureDetector()
	features := detector.Detect([]string{"Der", "Hund", "läuft"}, 2, []string{"ART", "NN"})

	require.Equal(t, SentenceEnd, features["nextword"])
	require.Equal(t, "NN", features["prevtag"])
	require.Equal(t, "ART", features["prevprevtag"])
	require.Equal(t, "ART+NN", features["prevprevtag+prevtag"])
	require.Equal(t, "ART+läuft", features["prevprevtag+word"])
	require.Equal(t, "Hund+läuft", features["prevword+word"])
	require.Equal(t, "t", features["suffix1"])
	require.Equal(t, "uft", features["suffix3"])
	require.Equal(t, "äuft", features["suffix4"])
	require.Equal(t, "false", features["capitalized"])
}

func TestGermanFeatureDetectorNounCue(t *testing.T) {
	detector := NewGermanFeatureDetector()
	features := detector.Detect([]string{"Der", "Hund", "läuft"}, 1, []string{"ART"})
	require.Equal(t, "true", features["capitalized.inner"])
}

func TestGermanFeatureDetectorIsTotal(t *testing.T) {
	detector := NewGermanFeatureDetector()
	tokens := []string{"Der", "Hund"}

	require.NotPanics(t, func() {
		detector.Detect(tokens, 1, nil)
		detector.Detect(tokens, 5, nil)
		detector.Detect(tokens, -1, nil)
		detector.Detect(nil, 0, nil)
	})

	features := detector.Detect(tokens, 1, nil)
	require.Equal(t, SentenceBegin, features["prevtag"])
}

func TestGermanFeatureDetectorDeterministic(t *testing.T) {
	detector := NewGermanFeatureDetector()
	tokens := []string{"Die", "Katze", "schläft", "."}
	history := []string{"ART", "NN"}
	require.Equal(t, detector.Detect(tokens, 2, history), detector.Detect(tokens, 2, history))
}

func TestShape(t *testing.T) {
	cases := map[string]string{
		"1998":              ShapeNumber,
		"3,5":               ShapeNumber,
		".5":                ShapeNumber,
		".":                 ShapePunct,
		"--":                ShapePunct,
		"Haus":              ShapeUpcase,
		"Baden-Württemberg": ShapeUpcase,
		"ÖTV":               ShapeUpcase,
		"läuft":             ShapeDowncase,
		"größer":            ShapeDowncase,
		"3D":                ShapeNumber,
		"1990er":            ShapeNumber,
		"3.":                ShapeNumber,
		",5x":               ShapeOther,
		"Élan":              ShapeMixedcase,
		"":                  ShapeOther,
	}
	for word, want := range cases {
		require.Equal(t, want, Shape(word), "shape of %q", word)
	}
}
