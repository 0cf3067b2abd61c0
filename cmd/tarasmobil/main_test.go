package main

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/crypto/bcrypt"

	"github.com/tarasmobil/taras-mobil/assistant"
	"github.com/tarasmobil/taras-mobil/config"
	"github.com/tarasmobil/taras-mobil/router"
	"github.com/tarasmobil/taras-mobil/theme"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := newRoot()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestHashPassword(t *testing.T) {
	out, err := execute(t, "hash-password", "--cost", "4", "hunter2")
	if err != nil {
		t.Fatalf("hash-password: %v", err)
	}
	hash := strings.TrimSpace(out)
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte("hunter2")); err != nil {
		t.Fatalf("printed hash does not match: %v", err)
	}
}

func TestConfigInitAndCheck(t *testing.T) {
	path := filepath.Join(t.TempDir(), "conf", "tarasmobil.yaml")
	if _, err := execute(t, "config", "init", path); err != nil {
		t.Fatalf("config init: %v", err)
	}
	if _, err := execute(t, "config", "init", path); err == nil {
		t.Fatal("second init overwrote without --force")
	}
	out, err := execute(t, "--config", path, "config", "check")
	if err != nil {
		t.Fatalf("config check: %v", err)
	}
	if !strings.HasPrefix(out, "ok: 420x860") {
		t.Fatalf("check output = %q", out)
	}
}

func TestLoadConfigFlagsOverride(t *testing.T) {
	flags := &rootFlags{}
	root := newRoot()
	if err := root.ParseFlags([]string{"--dark", "--uncapped", "--mute"}); err != nil {
		t.Fatalf("ParseFlags: %v", err)
	}
	flags.dark, flags.uncapped, flags.mute = true, true, true
	cfg, err := loadConfig(root, flags)
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if cfg.Theme != config.ThemeDark || cfg.PresentMode != config.PresentUncapped || !cfg.Mute {
		t.Fatalf("cfg = %+v", cfg)
	}
	if th := newTheme(cfg); th.Mode() != theme.ModeDark {
		t.Fatalf("theme mode = %s", th.Mode())
	}
}

func TestDetectorFollowsConfig(t *testing.T) {
	cfg := config.Default()
	cfg.CameraPermission = config.PermissionDeny
	d := newDetector(cfg)
	state, err := d.Request(t.Context())
	if err != nil || state.String() != "denied" {
		t.Fatalf("Request = %s, %v", state, err)
	}
}

func TestChatModelNavigatesOnReply(t *testing.T) {
	as, err := assistant.NewAssistant()
	if err != nil {
		t.Fatalf("NewAssistant: %v", err)
	}
	m := newChatModel(as, 0)
	m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	for _, r := range "timetable" {
		m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if m.input.Value() != "" {
		t.Fatalf("input not reset: %q", m.input.Value())
	}
	m.Update(chatPollMsg(time.Now().Add(time.Second)))

	if got := m.router.Current(); got != router.Timetable {
		t.Fatalf("screen = %s, want %s", got, router.Timetable)
	}
	if m.conv.Len() != 3 {
		t.Fatalf("messages = %d, want 3", m.conv.Len())
	}
	if !strings.Contains(m.View(), "-> Timetable") {
		t.Fatal("navigation note missing from view")
	}
}
