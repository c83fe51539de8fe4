package negra

import (
	"bufio"
	"io"
	"regexp"
	"strconv"
	"strings"

	"experimentallabor.de/gertag/types"
)

const maxLineLength = 1024 * 1024

var (
	tableStart = regexp.MustCompile(`^#BOT(\s|$)`)
	tableEnd   = regexp.MustCompile(`^#EOT(\s|$)`)
	directive  = regexp.MustCompile(`^#(FORMAT|BOT|EOT)(\s|$)`)
)

// Scanner reads sentences from a single corpus stream, one per Scan call.
//
// Sentences are either enclosed in #BOS/#EOS lines or, outside of such
// markers, separated by blank lines. Lines starting with %% are comments,
// #BOT/#EOT tables and #FORMAT lines of export files are skipped.
type Scanner struct {
	lines   *bufio.Scanner
	cfg     config
	file    string
	lineNo  int
	ordinal int

	sent    *types.Sentence
	pending *types.Sentence
	inTable bool

	err     error
	skipped int
}

func NewScanner(r io.Reader, opts ...Option) *Scanner {
	return newScanner(r, newConfig(opts), "")
}

func newScanner(r io.Reader, cfg config, file string) *Scanner {
	lines := bufio.NewScanner(r)
	lines.Buffer(make([]byte, 0, 64*1024), maxLineLength)
	return &Scanner{
		lines: lines,
		cfg:   cfg,
		file:  file,
	}
}

// Scan advances to the next sentence. It returns false at the end of the
// input or on the first error.
func (s *Scanner) Scan() bool {
	s.sent = nil
	if s.err != nil {
		return false
	}

	current := s.pending
	marked := current != nil
	s.pending = nil

	for s.lines.Scan() {
		s.lineNo++
		text := s.lines.Text()
		line := strings.TrimSpace(text)

		if s.inTable {
			if tableEnd.MatchString(line) {
				s.inTable = false
			}
			continue
		}
		if strings.HasPrefix(line, commentPrefix) {
			continue
		}

		switch {
		case current != nil && marked:
			switch {
			case s.cfg.eos.MatchString(line):
				if len(current.Tokens) > 0 {
					s.sent = current
					return true
				}
				current = nil
			case s.cfg.bos.MatchString(line):
				if !s.malformed(text, "sentence "+current.ID+" is not terminated") {
					return false
				}
				current = s.begin(line)
			case line == "":
			default:
				if !s.addRow(current, text) {
					return false
				}
			}

		case current != nil:
			switch {
			case line == "":
				if len(current.Tokens) > 0 {
					s.sent = current
					return true
				}
				current = nil
			case s.cfg.bos.MatchString(line):
				s.pending = s.begin(line)
				if len(current.Tokens) > 0 {
					s.sent = current
					return true
				}
				current, marked = s.pending, true
				s.pending = nil
			case s.cfg.eos.MatchString(line):
				if !s.malformed(text, "end of sentence without beginning") {
					return false
				}
			default:
				if !s.addRow(current, text) {
					return false
				}
			}

		default:
			switch {
			case line == "":
			case s.cfg.bos.MatchString(line):
				current, marked = s.begin(line), true
			case s.cfg.eos.MatchString(line):
				if !s.malformed(text, "end of sentence without beginning") {
					return false
				}
			case tableStart.MatchString(line):
				s.inTable = true
			case directive.MatchString(line):
			default:
				current, marked = s.beginPlain(), false
				if !s.addRow(current, text) {
					return false
				}
			}
		}
	}

	if err := s.lines.Err(); err != nil {
		s.err = err
		return false
	}

	if current == nil || len(current.Tokens) == 0 {
		return false
	}
	if marked && !s.malformed("", "sentence "+current.ID+" is not terminated") {
		return false
	}
	s.sent = current
	return true
}

func (s *Scanner) begin(line string) *types.Sentence {
	s.ordinal++
	id := strconv.Itoa(s.ordinal)
	if fields := strings.Fields(line); len(fields) > 1 {
		id = fields[1]
	}
	return &types.Sentence{ID: id, File: s.file, Line: s.lineNo}
}

func (s *Scanner) beginPlain() *types.Sentence {
	s.ordinal++
	return &types.Sentence{ID: strconv.Itoa(s.ordinal), File: s.file, Line: s.lineNo}
}

func (s *Scanner) addRow(sent *types.Sentence, text string) bool {
	r, err := s.cfg.columns.parseRow(text, s.lineNo)
	if err != nil {
		return s.malformed(text, err.Error())
	}
	if r.node != nil {
		sent.Nodes = append(sent.Nodes, r.node)
	} else {
		sent.Tokens = append(sent.Tokens, r.token)
	}
	return true
}

// malformed applies the error policy. It reports whether scanning may go on.
func (s *Scanner) malformed(text string, reason string) bool {
	if s.cfg.skipMalformed {
		s.skipped++
		s.cfg.log.Warn().
			Str("file", s.file).
			Int("line", s.lineNo).
			Str("reason", reason).
			Msg("Skipping malformed line")
		return true
	}
	s.err = &FormatError{File: s.file, Line: s.lineNo, Text: text, Reason: reason}
	return false
}

func (s *Scanner) Sentence() *types.Sentence {
	return s.sent
}

func (s *Scanner) Err() error {
	return s.err
}

// Skipped is the number of malformed lines dropped so far.
func (s *Scanner) Skipped() int {
	return s.skipped
}
