package assistant

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/tarasmobil/taras-mobil/router"
)

func newTestAssistant(t *testing.T, options ...AssistantOption) Assistant {
	t.Helper()
	a, err := NewAssistant(append([]AssistantOption{WithIDGenerator(func() string { return "id" })}, options...)...)
	if err != nil {
		t.Fatalf("NewAssistant: %v", err)
	}
	return a
}

func TestRespondDefaultRules(t *testing.T) {
	a := newTestAssistant(t)

	tests := []struct {
		in       string
		rule     string
		navigate router.Screen
	}{
		{"Take me HOME please", "home", router.Home},
		{"show the 3D field", "home", router.Home},
		{"ana sayfa", "home", router.Home},
		{"  Disease scan  ", "disease", router.Disease},
		{"kamera aç", "disease", router.Disease},
		{"open settings", "settings", router.Settings},
		{"ayarlar", "settings", router.Settings},
		{"timetable", "timetable", router.Timetable},
		{"çizelge", "timetable", router.Timetable},
		{"how does this work?", "help", ""},
		{"nasıl kullanılır", "help", ""},
		// First match wins: home is checked before settings.
		{"home settings", "home", router.Home},
	}
	for _, tt := range tests {
		resp, err := a.Respond(tt.in)
		if err != nil {
			t.Fatalf("Respond(%q): %v", tt.in, err)
		}
		if resp.Rule != tt.rule || resp.Navigate != tt.navigate {
			t.Errorf("Respond(%q) = rule %q nav %q, want %q %q", tt.in, resp.Rule, resp.Navigate, tt.rule, tt.navigate)
		}
		if resp.ID != "id" || resp.Text == "" {
			t.Errorf("Respond(%q) returned id %q text %q", tt.in, resp.ID, resp.Text)
		}
	}
}

func TestRespondFallbackEchoesInput(t *testing.T) {
	a := newTestAssistant(t)
	resp, err := a.Respond("  What is the weather?  ")
	if err != nil {
		t.Fatal(err)
	}
	if resp.Rule != "" || resp.Navigate != "" {
		t.Fatalf("fallback matched rule %q", resp.Rule)
	}
	if !strings.Contains(resp.Text, `"What is the weather?"`) {
		t.Fatalf("fallback text %q does not echo the input", resp.Text)
	}
}

func TestRespondEmpty(t *testing.T) {
	a := newTestAssistant(t)
	for _, in := range []string{"", "   ", "\n\t"} {
		if _, err := a.Respond(in); !errors.Is(err, ErrEmptyMessage) {
			t.Errorf("Respond(%q) err = %v, want ErrEmptyMessage", in, err)
		}
	}
}

func TestCustomRulesAndFallback(t *testing.T) {
	a := newTestAssistant(t,
		WithRules([]Rule{{Name: "water", Keywords: []string{"Irrigate"}, Reply: "Watering."}}),
		WithFallback("No idea, 100%"),
	)
	if resp, _ := a.Respond("please irrigate"); resp.Rule != "water" {
		t.Fatalf("custom rule not matched: %+v", resp)
	}
	if resp, _ := a.Respond("home"); resp.Text != "No idea, 100%" {
		t.Fatalf("fallback = %q", resp.Text)
	}
}

func TestFallbackPercentSigns(t *testing.T) {
	cases := []struct {
		format string
		want   string
	}{
		{"100% sure, %s", `100% sure, wheat`},
		{"%s and %s", "wheat and %s"},
		{"%d%% of %s", "%d%% of wheat"},
		{"no echo 50%", "no echo 50%"},
	}
	for _, c := range cases {
		a := newTestAssistant(t, WithFallback(c.format))
		resp, err := a.Respond("  wheat ")
		if err != nil {
			t.Fatalf("Respond: %v", err)
		}
		if resp.Text != c.want {
			t.Errorf("fallback %q = %q, want %q", c.format, resp.Text, c.want)
		}
	}
}

func TestValidateRules(t *testing.T) {
	bad := [][]Rule{
		{{Name: "a", Keywords: []string{"x"}}},
		{{Name: "b", Keywords: []string{" "}, Reply: "r"}},
		{{Name: "c", Keywords: []string{"x"}, Reply: "r", Navigate: "profile"}},
	}
	for _, rules := range bad {
		if err := ValidateRules(rules); !errors.Is(err, ErrInvalidRule) {
			t.Errorf("ValidateRules(%+v) = %v, want ErrInvalidRule", rules, err)
		}
	}
	if err := ValidateRules(DefaultRules); err != nil {
		t.Fatalf("default rules invalid: %v", err)
	}

	if _, err := NewAssistant(WithRules(bad[0])); !errors.Is(err, ErrInvalidRule) {
		t.Fatalf("NewAssistant accepted a bad rule: %v", err)
	}

	a := newTestAssistant(t)
	if err := a.SetRules(bad[2]); !errors.Is(err, router.ErrUnknownScreen) {
		t.Fatalf("SetRules err = %v, want ErrUnknownScreen in chain", err)
	}
	if len(a.Rules()) != len(DefaultRules) {
		t.Fatal("failed SetRules replaced the rules")
	}
}

func TestRulesReturnsCopy(t *testing.T) {
	a := newTestAssistant(t)
	rules := a.Rules()
	rules[0].Keywords[0] = "mutated"
	if a.Rules()[0].Keywords[0] == "mutated" {
		t.Fatal("Rules exposed internal state")
	}
}

func TestConversationDelaysReplies(t *testing.T) {
	start := time.Unix(1000, 0)
	c := NewConversation(newTestAssistant(t), start)

	if got := c.Messages(); len(got) != 1 || got[0].Role != RoleAssistant || got[0].Text != Greeting {
		t.Fatalf("conversation not seeded with greeting: %+v", got)
	}

	if _, err := c.Send("go home", start); err != nil {
		t.Fatal(err)
	}
	if _, err := c.Send("  ", start); !errors.Is(err, ErrEmptyMessage) {
		t.Fatalf("blank Send err = %v", err)
	}
	if !c.Typing() || c.Len() != 2 {
		t.Fatalf("after Send: typing %v len %d", c.Typing(), c.Len())
	}

	if got := c.Update(start.Add(DefaultReplyDelay - time.Millisecond)); len(got) != 0 {
		t.Fatalf("reply released early: %+v", got)
	}
	got := c.Update(start.Add(DefaultReplyDelay))
	if len(got) != 1 || got[0].Navigate != router.Home {
		t.Fatalf("released = %+v, want one home reply", got)
	}
	msgs := c.Messages()
	if len(msgs) != 3 || msgs[2].Role != RoleAssistant || msgs[1].Text != "go home" {
		t.Fatalf("history = %+v", msgs)
	}
	if c.Typing() {
		t.Fatal("still typing after release")
	}
}

func TestConversationReleasesInOrderAndBounds(t *testing.T) {
	start := time.Unix(0, 0)
	c := NewConversation(newTestAssistant(t), start, WithReplyDelay(0), WithMaxMessages(3))
	_, _ = c.Send("settings", start)
	_, _ = c.Send("timetable", start)

	got := c.Update(start)
	if len(got) != 2 || got[0].Navigate != router.Settings || got[1].Navigate != router.Timetable {
		t.Fatalf("release order = %+v", got)
	}
	msgs := c.Messages()
	if len(msgs) != 3 || msgs[0].Text != "timetable" {
		t.Fatalf("bounded history = %+v", msgs)
	}
}
