// Package corpus runs a token transformer over a semicolon-delimited corpus
// and writes the transformed lines as CSV.
package corpus

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"

	"github.com/hazyhaar/alsatian-transform/pkg/tokenize"
	"github.com/hazyhaar/alsatian-transform/pkg/transform"
)

// Policy decides what happens to a corpus line without a text field.
type Policy string

const (
	// Abort stops the run at the first malformed line.
	Abort Policy = "abort"
	// Skip logs the line and moves on; its ID is not reused.
	Skip Policy = "skip"
)

// ParsePolicy validates a policy name. The empty string means Abort.
func ParsePolicy(s string) (Policy, error) {
	switch p := Policy(strings.ToLower(strings.TrimSpace(s))); p {
	case "":
		return Abort, nil
	case Abort, Skip:
		return p, nil
	default:
		return "", fmt.Errorf("unknown malformed-line policy %q (want abort or skip)", s)
	}
}

// ErrMalformedLine marks a corpus line with fewer than two fields.
var ErrMalformedLine = errors.New("malformed corpus line")

// LineError reports a malformed line by its 1-based position.
type LineError struct {
	Line   int
	Fields int
}

func (e *LineError) Error() string {
	return fmt.Sprintf("line %d: %v: %d field(s), need at least 2", e.Line, ErrMalformedLine, e.Fields)
}

func (e *LineError) Unwrap() error { return ErrMalformedLine }

// TextField returns the free-text field (index 1) of a corpus line
// "id;text;...". The line is trimmed before splitting.
func TextField(line string) (string, int, bool) {
	fields := strings.Split(strings.TrimSpace(line), ";")
	if len(fields) < 2 {
		return "", len(fields), false
	}
	return fields[1], len(fields), true
}

// Options configures a Processor.
type Options struct {
	// WrapWidth wraps output text; 0 disables wrapping.
	WrapWidth   int
	OnMalformed Policy
	Logger      *zerolog.Logger
}

// Stats counts what a run did.
type Stats struct {
	Lines   int
	Rows    int
	Skipped int
}

// Processor turns corpus lines into output rows. It holds no per-line state.
type Processor struct {
	tok    tokenize.Tokenizer
	tr     transform.TokenTransformer
	opts   Options
	logger *zerolog.Logger
}

var nop = zerolog.Nop()

// NewProcessor wires a tokenizer and a token transformer.
func NewProcessor(tok tokenize.Tokenizer, tr transform.TokenTransformer, opts Options) *Processor {
	if opts.OnMalformed == "" {
		opts.OnMalformed = Abort
	}
	logger := opts.Logger
	if logger == nil {
		logger = &nop
	}
	return &Processor{tok: tok, tr: tr, opts: opts, logger: logger}
}

// TransformText tokenizes text, transforms every token, joins the result
// and wraps it.
func (p *Processor) TransformText(text string) string {
	tokens := transform.Apply(p.tr, p.tok.Tokenize(text).Strings())
	return transform.Wrap(transform.Join(tokens), p.opts.WrapWidth)
}

// Run reads the corpus from r and writes one CSV row per line to w, with the
// line's position as ID. Rows written before an abort are flushed.
func (p *Processor) Run(r io.Reader, w io.Writer) (Stats, error) {
	var st Stats

	out, err := NewWriter(w)
	if err != nil {
		return st, err
	}
	defer out.Flush()

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1<<20)
	for sc.Scan() {
		st.Lines++
		text, n, ok := TextField(sc.Text())
		if !ok {
			lerr := &LineError{Line: st.Lines, Fields: n}
			if p.opts.OnMalformed == Skip {
				st.Skipped++
				p.logger.Warn().Int("line", st.Lines).Msg("malformed corpus line skipped")
				continue
			}
			return st, lerr
		}

		if err := out.Write(Row{ID: st.Lines, Text: p.TransformText(text)}); err != nil {
			return st, err
		}
		st.Rows++
	}
	if err := sc.Err(); err != nil {
		return st, fmt.Errorf("read corpus: %w", err)
	}
	return st, out.Flush()
}

// RunFiles runs the processor from corpusPath to a new CSV file at outputPath.
func (p *Processor) RunFiles(corpusPath, outputPath string) (Stats, error) {
	in, err := os.Open(corpusPath)
	if err != nil {
		return Stats{}, fmt.Errorf("open corpus: %w", err)
	}
	defer in.Close()

	out, err := os.Create(outputPath)
	if err != nil {
		return Stats{}, fmt.Errorf("create output: %w", err)
	}
	defer out.Close()

	st, err := p.Run(in, out)
	if err != nil {
		return st, err
	}
	if err := out.Close(); err != nil {
		return st, fmt.Errorf("close output: %w", err)
	}
	p.logger.Debug().
		Str("corpus", corpusPath).
		Str("output", outputPath).
		Int("rows", st.Rows).
		Int("skipped", st.Skipped).
		Msg("corpus processed")
	return st, nil
}
