// Package gherkin parses feature files into scenarios the engine can run.
//
// The dialect is deliberately small: Feature, Background, Scenario, steps
// with Given/When/Then/And/But keywords, data tables, doc strings, comments,
// and tags. Scenario Outlines are not supported. The engine itself never
// sees feature files; it consumes the []domain.Scenario this package
// produces.
package gherkin

import (
	"bufio"
	"io"
	"os"
	"strings"

	"github.com/gherkit/gherkit/internal/domain"
	gherkiterrors "github.com/gherkit/gherkit/internal/errors"
)

// Section keyword prefixes recognized by the parser.
const (
	featurePrefix    = "Feature:"
	backgroundPrefix = "Background:"
	scenarioPrefix   = "Scenario:"
	docStringFence   = `"""`
	commentPrefix    = "#"
)

// Feature is a parsed feature file.
type Feature struct {
	// Name is the feature name after the Feature: keyword.
	Name string

	// Path is the source path, when parsed from a file.
	Path string

	// Tags holds feature-level tags, also inherited by every scenario.
	Tags []string

	// Scenarios holds the parsed scenarios, background steps prepended.
	Scenarios []domain.Scenario
}

// parser holds the line-by-line parse state for one feature file.
type parser struct {
	name    string
	feature *Feature
	line    int

	pendingTags []string
	background  []domain.Step
	scenario    *domain.Scenario
	lastStep    *domain.Step

	// inBackground is true between Background: and the next section.
	inBackground bool
}

// Parse reads one feature from r. name identifies the source in errors.
func Parse(r io.Reader, name string) (*Feature, error) {
	p := &parser{name: name}

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		p.line++
		if err := p.consume(scanner, scanner.Text()); err != nil {
			return nil, err
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, gherkiterrors.Wrapf(err, "read %s", name)
	}

	if p.feature == nil {
		return nil, p.errorf("missing Feature: header")
	}
	p.finishScenario()
	return p.feature, nil
}

// ParseFile reads one feature from the file at path.
func ParseFile(path string) (*Feature, error) {
	f, err := os.Open(path) //nolint:gosec // Feature paths come from the user's own invocation
	if err != nil {
		return nil, gherkiterrors.Wrapf(err, "open %s", path)
	}
	defer func() { _ = f.Close() }()

	feature, err := Parse(f, path)
	if err != nil {
		return nil, err
	}
	feature.Path = path
	return feature, nil
}

// consume handles one raw input line.
func (p *parser) consume(scanner *bufio.Scanner, raw string) error {
	trimmed := strings.TrimSpace(raw)

	switch {
	case trimmed == "" || strings.HasPrefix(trimmed, commentPrefix):
		return nil

	case strings.HasPrefix(trimmed, "@"):
		return p.consumeTags(trimmed)

	case strings.HasPrefix(trimmed, featurePrefix):
		return p.consumeFeature(trimmed)

	case strings.HasPrefix(trimmed, backgroundPrefix):
		return p.consumeBackground()

	case strings.HasPrefix(trimmed, scenarioPrefix):
		return p.consumeScenario(trimmed)

	case strings.HasPrefix(trimmed, "|"):
		return p.consumeTableRow(trimmed)

	case strings.HasPrefix(trimmed, docStringFence):
		return p.consumeDocString(scanner, raw, trimmed)

	default:
		if kw, text, ok := splitKeyword(trimmed); ok {
			return p.consumeStep(kw, text)
		}
		// Free text directly under the Feature: header is a description and
		// is ignored. Anywhere else it is a parse error.
		if p.feature != nil && p.scenario == nil && !p.inBackground {
			return nil
		}
		return p.errorf("unexpected line %q", trimmed)
	}
}

func (p *parser) consumeTags(trimmed string) error {
	for _, field := range strings.Fields(trimmed) {
		if !strings.HasPrefix(field, "@") || len(field) == 1 {
			return p.errorf("malformed tag %q", field)
		}
		p.pendingTags = append(p.pendingTags, strings.TrimPrefix(field, "@"))
	}
	return nil
}

func (p *parser) consumeFeature(trimmed string) error {
	if p.feature != nil {
		return p.errorf("multiple Feature: headers")
	}
	p.feature = &Feature{
		Name: strings.TrimSpace(strings.TrimPrefix(trimmed, featurePrefix)),
		Tags: p.pendingTags,
	}
	p.pendingTags = nil
	return nil
}

func (p *parser) consumeBackground() error {
	if p.feature == nil {
		return p.errorf("Background: before Feature:")
	}
	if len(p.feature.Scenarios) > 0 || p.scenario != nil {
		return p.errorf("Background: must precede every Scenario:")
	}
	p.inBackground = true
	p.lastStep = nil
	return nil
}

func (p *parser) consumeScenario(trimmed string) error {
	if p.feature == nil {
		return p.errorf("Scenario: before Feature:")
	}
	p.finishScenario()
	p.inBackground = false
	p.scenario = &domain.Scenario{
		Feature: p.feature.Name,
		Name:    strings.TrimSpace(strings.TrimPrefix(trimmed, scenarioPrefix)),
		Tags:    append(append([]string{}, p.feature.Tags...), p.pendingTags...),
	}
	p.pendingTags = nil
	p.lastStep = nil
	return nil
}

func (p *parser) consumeStep(kw domain.Keyword, text string) error {
	if text == "" {
		return p.errorf("step with empty text")
	}
	step := domain.Step{Keyword: kw, Text: text}

	switch {
	case p.inBackground:
		p.background = append(p.background, step)
		p.lastStep = &p.background[len(p.background)-1]
	case p.scenario != nil:
		p.scenario.Steps = append(p.scenario.Steps, step)
		p.lastStep = &p.scenario.Steps[len(p.scenario.Steps)-1]
	default:
		return p.errorf("step outside Background: or Scenario:")
	}
	return nil
}

func (p *parser) consumeTableRow(trimmed string) error {
	if p.lastStep == nil {
		return p.errorf("table row without a preceding step")
	}

	inner := strings.TrimSuffix(strings.TrimPrefix(trimmed, "|"), "|")
	cells := strings.Split(inner, "|")
	row := make([]string, len(cells))
	for i, cell := range cells {
		row[i] = strings.TrimSpace(cell)
	}

	if p.lastStep.Table == nil {
		p.lastStep.Table = &domain.Table{}
	}
	p.lastStep.Table.Rows = append(p.lastStep.Table.Rows, row)
	return nil
}

// consumeDocString reads the fenced block following the current step. The
// opening fence's indentation is stripped from every content line.
func (p *parser) consumeDocString(scanner *bufio.Scanner, raw, trimmed string) error {
	if p.lastStep == nil {
		return p.errorf("doc string without a preceding step")
	}

	indent := raw[:strings.Index(raw, docStringFence)]
	mediaType := strings.TrimSpace(strings.TrimPrefix(trimmed, docStringFence))

	var lines []string
	for scanner.Scan() {
		p.line++
		content := scanner.Text()
		if strings.TrimSpace(content) == docStringFence {
			p.lastStep.DocString = &domain.DocString{
				Content:   strings.Join(lines, "\n"),
				MediaType: mediaType,
			}
			return nil
		}
		lines = append(lines, strings.TrimPrefix(content, indent))
	}
	return p.errorf("unterminated doc string")
}

// finishScenario appends the in-progress scenario, background steps first.
func (p *parser) finishScenario() {
	if p.scenario == nil {
		return
	}
	if len(p.background) > 0 {
		combined := make([]domain.Step, 0, len(p.background)+len(p.scenario.Steps))
		combined = append(combined, p.background...)
		combined = append(combined, p.scenario.Steps...)
		p.scenario.Steps = combined
	}
	p.feature.Scenarios = append(p.feature.Scenarios, *p.scenario)
	p.scenario = nil
	p.lastStep = nil
}

func (p *parser) errorf(format string, args ...any) error {
	prefix := gherkiterrors.Wrapf(gherkiterrors.ErrParseFeature, "%s:%d", p.name, p.line)
	return gherkiterrors.Wrapf(prefix, format, args...)
}

// splitKeyword splits a step line into its keyword and text. Returns ok=false
// when the line does not begin with a recognized keyword.
func splitKeyword(line string) (domain.Keyword, string, bool) {
	for _, kw := range domain.Keywords {
		prefix := string(kw) + " "
		if strings.HasPrefix(line, prefix) {
			return kw, strings.TrimSpace(strings.TrimPrefix(line, prefix)), true
		}
	}
	return "", "", false
}
