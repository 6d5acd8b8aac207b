// Package snippet generates Go step-definition stubs for undefined steps.
package snippet

import (
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/gherkit/gherkit/internal/domain"
)

var (
	quotedValueRe = regexp.MustCompile(`"[^"]*"`)
	numberRe      = regexp.MustCompile(`\d+`)
	identCharsRe  = regexp.MustCompile(`[^a-zA-Z0-9 ]+`)

	titleCaser = cases.Title(language.English) //nolint:gochecknoglobals // Stateless caser reused across calls
)

// Stub is one generated step-definition skeleton.
type Stub struct {
	// Keyword is the keyword category the undefined step was written with.
	Keyword domain.Keyword

	// Pattern is the suggested full-text pattern, with quoted values and
	// numbers generalized into capture groups.
	Pattern string

	// FuncName is the suggested handler name derived from the step text.
	FuncName string
}

// ForRun collects stubs for every top-level undefined step in a run.
// Undefined classifications escalated out of chained steps are excluded;
// they are not the feature author's to define. Stubs are deduplicated by
// pattern, in first-seen order.
func ForRun(run *domain.RunResult) []Stub {
	var steps []domain.Step
	for _, sc := range run.Scenarios {
		for _, step := range sc.Steps {
			if step.Status == domain.StatusUndefined && !step.FromChain {
				steps = append(steps, domain.Step{Keyword: step.Keyword, Text: step.Text})
			}
		}
	}
	return ForSteps(steps)
}

// ForSteps generates one stub per distinct suggested pattern.
func ForSteps(steps []domain.Step) []Stub {
	var stubs []Stub
	seen := make(map[string]bool)

	for _, step := range steps {
		pattern := suggestPattern(step.Text)
		if seen[pattern] {
			continue
		}
		seen[pattern] = true
		stubs = append(stubs, Stub{
			Keyword:  step.Keyword,
			Pattern:  pattern,
			FuncName: suggestFuncName(step.Text),
		})
	}
	return stubs
}

// Render formats stubs as compilable Go source the user can paste into their
// step definitions.
func Render(stubs []Stub) string {
	if len(stubs) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString("// Paste these stubs into your step definitions:\n")
	for _, stub := range stubs {
		fmt.Fprintf(&b, `
func %s(ctx context.Context, args []gherkit.Arg) (any, error) {
	return nil, gherkit.Pending("not yet implemented")
}
`, stub.FuncName)
	}
	b.WriteString("\n")
	for _, stub := range stubs {
		keyword := stub.Keyword
		if keyword == "" {
			keyword = domain.Given
		}
		fmt.Fprintf(&b, "steps.Register(gherkit.%s, `%s`, %s)\n", keyword, stub.Pattern, stub.FuncName)
	}
	return b.String()
}

// suggestPattern turns a literal step text into an anchored pattern with
// quoted values and bare numbers generalized into capture groups.
func suggestPattern(text string) string {
	pattern := regexp.QuoteMeta(text)
	pattern = quotedValueRe.ReplaceAllString(pattern, `"([^"]*)"`)
	pattern = replaceNumbersOutsideGroups(pattern)
	return "^" + pattern + "$"
}

// replaceNumbersOutsideGroups generalizes digit runs without touching the
// capture groups already substituted for quoted values.
func replaceNumbersOutsideGroups(pattern string) string {
	parts := strings.Split(pattern, `"([^"]*)"`)
	for i, part := range parts {
		parts[i] = numberRe.ReplaceAllString(part, `(\d+)`)
	}
	return strings.Join(parts, `"([^"]*)"`)
}

// suggestFuncName derives a lowerCamelCase identifier from the step text.
func suggestFuncName(text string) string {
	cleaned := identCharsRe.ReplaceAllString(text, " ")
	words := strings.Fields(cleaned)
	if len(words) == 0 {
		return "undefinedStep"
	}

	var b strings.Builder
	for i, word := range words {
		if i == 0 {
			b.WriteString(strings.ToLower(word))
			continue
		}
		b.WriteString(titleCaser.String(strings.ToLower(word)))
	}
	name := b.String()
	if name[0] >= '0' && name[0] <= '9' {
		name = "step" + titleCaser.String(name)
	}
	return name
}
