package negra

import (
	"regexp"

	"github.com/rs/zerolog"
)

var (
	DefaultBeginMarker = regexp.MustCompile(`^#BOS(\s|$)`)
	DefaultEndMarker   = regexp.MustCompile(`^#EOS(\s|$)`)
)

type config struct {
	columns       ColumnMap
	bos           *regexp.Regexp
	eos           *regexp.Regexp
	skipMalformed bool
	topLabel      string
	log           zerolog.Logger
}

func defaultConfig() config {
	return config{
		columns:  DefaultColumns,
		bos:      DefaultBeginMarker,
		eos:      DefaultEndMarker,
		topLabel: DefaultTopLabel,
		log:      zerolog.Nop(),
	}
}

type Option func(*config)

func WithColumns(columns ColumnMap) Option {
	return func(cfg *config) {
		cfg.columns = columns
	}
}

// WithSentenceMarkers replaces the #BOS/#EOS patterns. Nil keeps the default.
func WithSentenceMarkers(bos *regexp.Regexp, eos *regexp.Regexp) Option {
	return func(cfg *config) {
		if bos != nil {
			cfg.bos = bos
		}
		if eos != nil {
			cfg.eos = eos
		}
	}
}

// SkipMalformed drops malformed lines instead of failing. Dropped lines are
// counted and logged at warn level.
func SkipMalformed() Option {
	return func(cfg *config) {
		cfg.skipMalformed = true
	}
}

// WithTopLabel sets the root label of chunk trees built from sentences
// without non-terminal nodes.
func WithTopLabel(label string) Option {
	return func(cfg *config) {
		cfg.topLabel = label
	}
}

func WithLogger(log zerolog.Logger) Option {
	return func(cfg *config) {
		cfg.log = log
	}
}

func newConfig(opts []Option) config {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}
