// Package domain provides shared domain types for the gherkit engine.
// These types are used across all internal packages to ensure consistent
// data structures.
//
// This package follows strict import rules:
//   - CAN import: internal/constants, internal/errors, standard library
//   - MUST NOT import: any other internal packages
package domain

import "strings"

// Keyword is the registration and step keyword category (Given/When/Then/
// And/But). It is advisory metadata only: the engine never matches on it and
// it never participates in pattern uniqueness. All keywords are treated
// identically during matching.
type Keyword string

// Step keyword constants. The set is closed; And and But inherit no special
// meaning inside the engine.
const (
	Given Keyword = "Given"
	When  Keyword = "When"
	Then  Keyword = "Then"
	And   Keyword = "And"
	But   Keyword = "But"
)

// Keywords lists every recognized keyword in the order a parser should try
// them.
//
//nolint:gochecknoglobals // Read-only lookup table
var Keywords = []Keyword{Given, When, Then, And, But}

// Table is an attached table of strings. The first row is the header; its
// cells form the column-name signature used for table transform lookup.
// Tables are produced by the parser and consumed read-only.
type Table struct {
	// Rows holds every row including the header. Cells are raw strings; the
	// engine performs no implicit coercion.
	Rows [][]string
}

// Columns returns the header row, or nil for an empty table.
func (t *Table) Columns() []string {
	if t == nil || len(t.Rows) == 0 {
		return nil
	}
	return t.Rows[0]
}

// Body returns the rows after the header.
func (t *Table) Body() [][]string {
	if t == nil || len(t.Rows) < 2 {
		return nil
	}
	return t.Rows[1:]
}

// Signature returns the comma-delimited column-name signature used to match
// table transform rules (e.g. "name,age").
func (t *Table) Signature() string {
	return strings.Join(t.Columns(), ",")
}

// DocString is an attached multiline block of text.
type DocString struct {
	// Content is the block text with the delimiter indentation stripped.
	Content string

	// MediaType is the optional annotation after the opening delimiter
	// (e.g. "json"). Informational only.
	MediaType string
}

// Step is a single immutable scenario step: a line of text plus an optional
// attached table or doc string. Produced by the parser; consumed read-only by
// the engine.
type Step struct {
	// Keyword is the keyword category the step was written with.
	Keyword Keyword

	// Text is the step line with the keyword stripped. Matching runs against
	// this text exactly as written, case-sensitively.
	Text string

	// Table is the attached data table, if any. At most one of Table and
	// DocString is set.
	Table *Table

	// DocString is the attached block text, if any.
	DocString *DocString
}

// Scenario is an ordered sequence of steps executed as one unit.
type Scenario struct {
	// Feature is the name of the enclosing feature, for reporting.
	Feature string

	// Name is the scenario name as written in the feature file.
	Name string

	// Tags holds the tag names attached to the scenario, including tags
	// inherited from the feature.
	Tags []string

	// Steps is the ordered step list, background steps first.
	Steps []Step
}
