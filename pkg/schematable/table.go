// Package schematable converts an HTML schema table export into a Markdown table.
//
// The export is a flat page in which every table row starts with the row
// marker attribute. Each row carries four cells identified by field marker
// classes: the column name, the API field name, the data type and a
// collapsed description section. The package splits the document on the row
// marker, extracts the four fields from each chunk and renders a fixed
// four-column pipe table:
//
//	| Column Name | Description | API Field Name | Data Type |
//	|---|---|---|---|
//	| Revenue | Total revenue in USD | revenue_usd | NUMBER |
//
// Missing fields never fail a conversion; they render as empty cells.
package schematable

import (
	"strings"
)

// DefaultRowMarker separates one table row from the next in the export.
const DefaultRowMarker = `class="forge-table-row forge-table-body__row"`

// Field marker classes that identify the cell holding each field.
const (
	ColumnNameMarker  = "schema-column-name-cell"
	FieldNameMarker   = "schema-column-field-name-cell"
	DataTypeMarker    = "schema-column-data-type-cell"
	DescriptionMarker = "collapsed-text-section"
)

const (
	headerLine         = "| Column Name | Description | API Field Name | Data Type |"
	separatorLine      = "|---|---|---|---|"
	markdownCellBorder = "|"
)

// Row is one extracted table row. Fields that could not be found are empty.
type Row struct {
	ColumnName   string
	Description  string
	APIFieldName string
	DataType     string
}

// Cells returns the row values in output column order.
func (r Row) Cells() [4]string {
	return [4]string{r.ColumnName, r.Description, r.APIFieldName, r.DataType}
}

// IsEmpty reports whether none of the four fields were found.
func (r Row) IsEmpty() bool {
	return r == Row{}
}

// Table is the ordered list of rows extracted from one document.
type Table struct {
	Rows []Row
}

// Len returns the number of data rows.
func (t Table) Len() int {
	return len(t.Rows)
}

// Markdown renders the table as a pipe table.
// Lines are joined with "\n" and there is no trailing newline, so the
// output always has exactly Len()+2 lines.
func (t Table) Markdown() string {
	var sb strings.Builder

	sb.WriteString(headerLine)
	sb.WriteString("\n")
	sb.WriteString(separatorLine)

	for _, row := range t.Rows {
		sb.WriteString("\n")
		writeRow(&sb, row)
	}

	return sb.String()
}

// Cell text is written as-is; pipes inside a value are not escaped.
func writeRow(sb *strings.Builder, row Row) {
	for _, cell := range row.Cells() {
		sb.WriteString(markdownCellBorder)
		sb.WriteString(" ")
		sb.WriteString(cell)
		sb.WriteString(" ")
	}
	sb.WriteString(markdownCellBorder)
}

// Split partitions doc on every occurrence of marker and drops the segment
// before the first marker. Chunks keep their document order. A document
// without the marker, or an empty marker, yields no chunks.
func Split(doc, marker string) []string {
	if marker == "" {
		return nil
	}

	parts := strings.Split(doc, marker)
	if len(parts) < 2 {
		return nil
	}

	return parts[1:]
}
