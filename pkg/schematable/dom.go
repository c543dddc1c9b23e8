package schematable

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/jmylchreest/schemamd/internal/logger"
)

// DOMExtractor parses each chunk into a node tree and walks it with CSS
// selectors instead of matching raw text. Marker attributes must match the
// class attribute exactly, the same as the pattern extractor. Text is taken
// from the node, so entities are decoded and nested inline tags are dropped.
type DOMExtractor struct{}

// NewDOMExtractor creates the tree based extractor.
func NewDOMExtractor() *DOMExtractor {
	return &DOMExtractor{}
}

// Extract walks the parsed chunk for each of the four fields.
func (e *DOMExtractor) Extract(chunk string) Row {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(chunk))
	if err != nil {
		logger.Debug("chunk parse failed", "error", err)
		return Row{}
	}

	return Row{
		ColumnName:   firstText(doc.Find(markerSelector(ColumnNameMarker) + " span")),
		Description:  firstText(innermostDivs(doc.Find(markerSelector(DescriptionMarker) + " div"))),
		APIFieldName: firstText(doc.Find(markerSelector(FieldNameMarker) + " span")),
		DataType:     firstText(doc.Find(markerSelector(DataTypeMarker) + " a")),
	}
}

// Name returns the strategy name.
func (e *DOMExtractor) Name() string {
	return string(StrategyDOM)
}

func markerSelector(marker string) string {
	return `[class="` + marker + `"]`
}

// innermostDivs keeps the divs that do not wrap another div. The description
// text sits in the deepest block of the collapsed section.
func innermostDivs(s *goquery.Selection) *goquery.Selection {
	return s.FilterFunction(func(_ int, div *goquery.Selection) bool {
		return div.Find("div").Length() == 0
	})
}

func firstText(s *goquery.Selection) string {
	if s.Length() == 0 {
		return ""
	}
	return normalize(s.First().Text())
}
