// Package assistant implements the rule-based chat helper that answers questions and moves the
// user between screens.
package assistant

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/tarasmobil/taras-mobil/router"
)

var (
	// ErrEmptyMessage is returned for blank input.
	ErrEmptyMessage = errors.New("empty message")
	// ErrInvalidRule is returned by ValidateRules and NewAssistant options for malformed rules.
	ErrInvalidRule = errors.New("invalid assistant rule")
)

// Response is one assistant answer.
type Response struct {
	ID       string
	Text     string
	Rule     string        // name of the matched rule, empty for the fallback
	Navigate router.Screen // screen to show, empty for none
}

// Assistant answers user messages by keyword rules.
type Assistant interface {
	// Respond picks the first rule whose keyword occurs in the lowercased, trimmed input.
	// Without a match the fallback reply echoes the input.
	//
	// Parameters:
	//   - text: the user's message
	//
	// Returns:
	//   - Response: the reply and optional navigation target
	//   - error: ErrEmptyMessage if text is blank
	Respond(text string) (Response, error)

	// Rules returns a copy of the active rules in match order.
	//
	// Returns:
	//   - []Rule: the rules
	Rules() []Rule

	// SetRules replaces the active rules after validating them.
	//
	// Parameters:
	//   - rules: the new rules
	//
	// Returns:
	//   - error: ErrInvalidRule if any rule is malformed; the old rules stay active
	SetRules(rules []Rule) error
}

// assistantImpl implements Assistant.
type assistantImpl struct {
	mu       *sync.Mutex
	rules    []Rule
	fallback string
	newID    func() string
}

// Compile-time interface compliance check
var _ Assistant = &assistantImpl{}

// NewAssistant creates an assistant with DefaultRules.
//
// Parameters:
//   - options: functional options to configure the assistant
//
// Returns:
//   - Assistant: the newly created assistant
//   - error: ErrInvalidRule if WithRules supplied malformed rules
func NewAssistant(options ...AssistantOption) (Assistant, error) {
	a := &assistantImpl{
		mu:       &sync.Mutex{},
		rules:    DefaultRules,
		fallback: DefaultFallback,
		newID:    uuid.NewString,
	}
	for _, opt := range options {
		opt(a)
	}
	if err := ValidateRules(a.rules); err != nil {
		return nil, err
	}
	a.rules = cloneRules(a.rules)
	return a, nil
}

func (a *assistantImpl) Respond(text string) (Response, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return Response{}, ErrEmptyMessage
	}
	input := strings.ToLower(trimmed)

	a.mu.Lock()
	defer a.mu.Unlock()

	for _, r := range a.rules {
		if r.matches(input) {
			return Response{ID: a.newID(), Text: r.Reply, Rule: r.Name, Navigate: r.Navigate}, nil
		}
	}
	// Echoes the trimmed input, not the raw text.
	return Response{ID: a.newID(), Text: fmt.Sprintf(a.fallback, trimmed)}, nil
}

func (a *assistantImpl) Rules() []Rule {
	a.mu.Lock()
	defer a.mu.Unlock()
	return cloneRules(a.rules)
}

func (a *assistantImpl) SetRules(rules []Rule) error {
	if err := ValidateRules(rules); err != nil {
		return err
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	a.rules = cloneRules(rules)
	return nil
}

func cloneRules(rules []Rule) []Rule {
	out := make([]Rule, len(rules))
	for i, r := range rules {
		r.Keywords = append([]string(nil), r.Keywords...)
		out[i] = r
	}
	return out
}
