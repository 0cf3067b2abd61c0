package assistant

import (
	"fmt"
	"strings"

	"github.com/tarasmobil/taras-mobil/router"
)

// Rule maps keywords to a canned reply and an optional screen change.
type Rule struct {
	Name     string        `yaml:"name"`
	Keywords []string      `yaml:"keywords"`
	Reply    string        `yaml:"reply"`
	Navigate router.Screen `yaml:"navigate,omitempty"`
}

// Greeting is the first assistant message of every conversation.
const Greeting = "Hello! I'm the TarasMobil assistant. I can take you around the app and answer " +
	"questions. What can I do for you?"

// DefaultFallback is the reply format used when no rule matches; %s is the user's text.
const DefaultFallback = `I understood: "%s". Could you ask something more specific? ` +
	"You can ask about Home, Disease Detection, Timetable or Settings."

// DefaultRules are checked in order; the first rule with a matching keyword wins.
// Turkish keywords are kept alongside the English ones.
var DefaultRules = []Rule{
	{
		Name:     "home",
		Keywords: []string{"ana sayfa", "home", "3d"},
		Reply:    "I took you to Home. Drag the field to rotate it and tap it to change its color.",
		Navigate: router.Home,
	},
	{
		Name:     "disease",
		Keywords: []string{"hastalık", "disease", "kamera", "camera"},
		Reply:    "I took you to Disease Detection. You can scan plants with the camera there.",
		Navigate: router.Disease,
	},
	{
		Name:     "settings",
		Keywords: []string{"ayarlar", "settings"},
		Reply:    "I took you to Settings. You can change the theme and sign out there.",
		Navigate: router.Settings,
	},
	{
		Name:     "timetable",
		Keywords: []string{"çizelge", "timetable"},
		Reply:    "I took you to the Timetable. Your scheduled tasks will live here.",
		Navigate: router.Timetable,
	},
	{
		Name:     "help",
		Keywords: []string{"nasıl", "how"},
		Reply: "TarasMobil is a digital twin platform for farming. Inspect the 3D field on Home, " +
			"scan plants in Disease Detection, follow tasks in the Timetable and manage your " +
			"preferences in Settings.",
	},
}

// matches reports whether the lowercased input contains any of the rule's keywords.
func (r Rule) matches(input string) bool {
	for _, k := range r.Keywords {
		if k = strings.ToLower(strings.TrimSpace(k)); k != "" && strings.Contains(input, k) {
			return true
		}
	}
	return false
}

// ValidateRules checks that every rule has a reply, at least one non-blank keyword and a known
// navigation target (or none).
//
// Parameters:
//   - rules: the rules to check
//
// Returns:
//   - error: ErrInvalidRule wrapped with the offending rule's position and name
func ValidateRules(rules []Rule) error {
	for i, r := range rules {
		if strings.TrimSpace(r.Reply) == "" {
			return fmt.Errorf("%w: rule %d (%s) has no reply", ErrInvalidRule, i, r.Name)
		}
		keyword := false
		for _, k := range r.Keywords {
			if strings.TrimSpace(k) != "" {
				keyword = true
				break
			}
		}
		if !keyword {
			return fmt.Errorf("%w: rule %d (%s) has no keywords", ErrInvalidRule, i, r.Name)
		}
		if r.Navigate != "" && !r.Navigate.Valid() {
			return fmt.Errorf("%w: rule %d (%s): %w", ErrInvalidRule, i, r.Name, router.ErrUnknownScreen)
		}
	}
	return nil
}
