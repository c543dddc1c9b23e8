package schematable

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"
	"unicode/utf8"

	"github.com/dustin/go-humanize"

	"github.com/jmylchreest/schemamd/internal/logger"
)

// StdioPath selects stdin for the input path or stdout for the output path.
const StdioPath = "-"

// ErrInvalidUTF8 is returned when the input is not valid UTF-8 text.
var ErrInvalidUTF8 = errors.New("input is not valid UTF-8")

// Converter turns an export document into a Markdown table.
// A Converter holds no per-run state and may be shared.
type Converter struct {
	extractor Extractor
	rowMarker string
	stdin     io.Reader
	stdout    io.Writer
}

// Option configures a Converter.
type Option func(*Converter)

// WithExtractor sets the field extraction strategy.
func WithExtractor(e Extractor) Option {
	return func(c *Converter) {
		if e != nil {
			c.extractor = e
		}
	}
}

// WithRowMarker overrides the literal string that separates rows.
func WithRowMarker(marker string) Option {
	return func(c *Converter) {
		if marker != "" {
			c.rowMarker = marker
		}
	}
}

// WithStdio sets the reader and writer used for the "-" path.
func WithStdio(in io.Reader, out io.Writer) Option {
	return func(c *Converter) {
		c.stdin = in
		c.stdout = out
	}
}

// New creates a Converter. Without options it uses the pattern extractor
// and DefaultRowMarker.
func New(opts ...Option) *Converter {
	c := &Converter{
		extractor: NewRegexExtractor(),
		rowMarker: DefaultRowMarker,
		stdin:     os.Stdin,
		stdout:    os.Stdout,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Parse splits doc into row chunks and extracts one Row per chunk, in order.
func (c *Converter) Parse(doc string) Table {
	chunks := Split(doc, c.rowMarker)
	rows := make([]Row, 0, len(chunks))

	for i, chunk := range chunks {
		row := c.extractor.Extract(chunk)
		if row.IsEmpty() {
			logger.Debug("row chunk has no fields", "index", i)
		}
		rows = append(rows, row)
	}

	return Table{Rows: rows}
}

// Convert renders doc as a Markdown table and returns it with the number
// of data rows.
func (c *Converter) Convert(doc string) (string, int) {
	table := c.Parse(doc)
	return table.Markdown(), table.Len()
}

// Convert renders doc with the default converter.
func Convert(doc string) string {
	out, _ := New().Convert(doc)
	return out
}

// Result describes a completed file conversion.
type Result struct {
	Rows        int
	InputBytes  int
	OutputBytes int
	Duration    time.Duration
}

// ConvertFile reads inputPath, converts it and writes the table to
// outputPath, replacing any existing file. Read and write failures are
// returned; nothing is retried.
func (c *Converter) ConvertFile(ctx context.Context, inputPath, outputPath string) (Result, error) {
	start := time.Now()

	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	doc, err := c.readInput(inputPath)
	if err != nil {
		return Result{}, err
	}
	logger.Debug("input loaded",
		"path", inputPath,
		"size", humanize.Bytes(uint64(len(doc))),
		"extractor", c.extractor.Name())

	out, rows := c.Convert(doc)

	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	if err := c.writeOutput(outputPath, out); err != nil {
		return Result{}, err
	}

	result := Result{
		Rows:        rows,
		InputBytes:  len(doc),
		OutputBytes: len(out),
		Duration:    time.Since(start),
	}
	logger.Info("converted rows",
		"rows", result.Rows,
		"output", outputPath,
		"size", humanize.Bytes(uint64(result.OutputBytes)),
		"duration", result.Duration)

	return result, nil
}

// ConvertFile converts inputPath to outputPath with a converter built from opts.
func ConvertFile(ctx context.Context, inputPath, outputPath string, opts ...Option) (Result, error) {
	return New(opts...).ConvertFile(ctx, inputPath, outputPath)
}

func (c *Converter) readInput(path string) (string, error) {
	if path == StdioPath {
		data, err := io.ReadAll(c.stdin)
		if err != nil {
			return "", fmt.Errorf("reading stdin: %w", err)
		}
		if !utf8.Valid(data) {
			return "", fmt.Errorf("reading stdin: %w", ErrInvalidUTF8)
		}
		return string(data), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading input %s: %w", path, err)
	}
	if !utf8.Valid(data) {
		return "", fmt.Errorf("reading input %s: %w", path, ErrInvalidUTF8)
	}
	return string(data), nil
}

func (c *Converter) writeOutput(path, content string) error {
	if path == StdioPath {
		if _, err := io.WriteString(c.stdout, content); err != nil {
			return fmt.Errorf("writing stdout: %w", err)
		}
		return nil
	}

	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return fmt.Errorf("writing output %s: %w", path, err)
	}
	return nil
}
