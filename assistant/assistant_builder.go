package assistant

import "strings"

// AssistantOption is a functional option for configuring an Assistant.
type AssistantOption func(*assistantImpl)

// WithRules replaces the default rules. An empty slice keeps the defaults.
//
// Parameters:
//   - rules: rules in match order
//
// Returns:
//   - AssistantOption: functional option to set the rules
func WithRules(rules []Rule) AssistantOption {
	return func(a *assistantImpl) {
		if len(rules) > 0 {
			a.rules = rules
		}
	}
}

// WithFallback sets the no-match reply format. The first %s receives the input; every other %
// is printed literally, and a format without %s is used verbatim.
//
// Parameters:
//   - format: reply format, %s receives the user's text
//
// Returns:
//   - AssistantOption: functional option to set the fallback
func WithFallback(format string) AssistantOption {
	return func(a *assistantImpl) {
		if format == "" {
			return
		}
		a.fallback = fallbackFormat(format)
	}
}

// WithIDGenerator replaces the uuid-based response id source.
//
// Parameters:
//   - gen: function returning a fresh id
//
// Returns:
//   - AssistantOption: functional option to set the id generator
func WithIDGenerator(gen func() string) AssistantOption {
	return func(a *assistantImpl) {
		if gen != nil {
			a.newID = gen
		}
	}
}

// fallbackFormat turns a user-written fallback into a Sprintf format taking exactly one string:
// the first %s receives the input and every other % is literal.
func fallbackFormat(text string) string {
	before, after, found := strings.Cut(text, "%s")
	before = strings.ReplaceAll(before, "%", "%%")
	if !found {
		return before + "%.0s"
	}
	return before + "%s" + strings.ReplaceAll(after, "%", "%%")
}
