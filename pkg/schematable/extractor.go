package schematable

import (
	"fmt"
	"regexp"
	"strings"
)

// Extractor pulls the four row fields out of a single row chunk.
// Implementations must not fail: a field that cannot be found is left empty.
type Extractor interface {
	// Extract returns the row found in chunk.
	Extract(chunk string) Row

	// Name returns the extraction strategy for logging.
	Name() string
}

// Strategy names an Extractor implementation.
type Strategy string

const (
	StrategyRegex Strategy = "regex"
	StrategyDOM   Strategy = "dom"
)

// NewExtractor returns the extractor for the named strategy.
func NewExtractor(strategy Strategy) (Extractor, error) {
	switch strategy {
	case StrategyRegex, "":
		return NewRegexExtractor(), nil
	case StrategyDOM:
		return NewDOMExtractor(), nil
	default:
		return nil, fmt.Errorf("unsupported extraction strategy: %s", strategy)
	}
}

// All patterns run in (?s) mode because a single cell is often spread over
// several lines of markup.
//
// RE2's \s is ASCII only; anySpace also accepts Unicode separators such as
// NBSP, NEL and the C0 information separators that exports put between tags.
const anySpace = `(?:\s|\p{Z}|\x{85}|[\x{1c}-\x{1f}])*`

var (
	columnNamePattern  = regexp.MustCompile(`(?s)class="` + ColumnNameMarker + `".*?<span>(.*?)</span>`)
	fieldNamePattern   = regexp.MustCompile(`(?s)class="` + FieldNameMarker + `".*?<span>(.*?)</span>`)
	dataTypePattern    = regexp.MustCompile(`(?s)class="` + DataTypeMarker + `".*?>` + anySpace + `<a.*?>(.*?)</a>`)
	descriptionPattern = regexp.MustCompile(`(?s)class="` + DescriptionMarker + `".*?<div>(.*?)</div>`)
)

// RegexExtractor finds each field with an independent pattern search over
// the raw chunk. The first match anywhere in the chunk wins. Captured values
// are trimmed and interior line breaks are folded into one space, so a
// multi-line value still renders as a single table line.
type RegexExtractor struct{}

// NewRegexExtractor creates the pattern based extractor.
func NewRegexExtractor() *RegexExtractor {
	return &RegexExtractor{}
}

// Extract searches chunk for each of the four fields.
func (e *RegexExtractor) Extract(chunk string) Row {
	return Row{
		ColumnName:   firstGroup(columnNamePattern, chunk),
		Description:  firstGroup(descriptionPattern, chunk),
		APIFieldName: firstGroup(fieldNamePattern, chunk),
		DataType:     firstGroup(dataTypePattern, chunk),
	}
}

// Name returns the strategy name.
func (e *RegexExtractor) Name() string {
	return string(StrategyRegex)
}

func firstGroup(re *regexp.Regexp, s string) string {
	m := re.FindStringSubmatch(s)
	if m == nil {
		return ""
	}
	return normalize(m[1])
}

var lineBreak = regexp.MustCompile(`[ \t]*(?:\r\n|\r|\n)\s*`)

// normalize trims a captured value and folds interior line breaks into a
// single space so the value fits in one table line.
func normalize(s string) string {
	s = strings.TrimSpace(s)
	if !strings.ContainsAny(s, "\r\n") {
		return s
	}
	return lineBreak.ReplaceAllString(s, " ")
}
