package theme

import "testing"

func TestToggleSwitchesSchemes(t *testing.T) {
	th := New(false)
	if th.Colors() != Light {
		t.Fatal("light theme does not use the light scheme")
	}
	if !th.Toggle() || !th.Dark() {
		t.Fatal("Toggle did not enable dark mode")
	}
	if th.Colors() != Dark {
		t.Fatal("dark theme does not use the dark scheme")
	}
	if th.Mode() != ModeDark {
		t.Fatalf("Mode() = %v, want dark", th.Mode())
	}
}

func TestOverrideBeatsSystem(t *testing.T) {
	th := New(true)
	th.SetMode(ModeLight)
	th.SetSystemDark(false)
	th.SetSystemDark(true)
	if th.Dark() {
		t.Fatal("system change leaked through a light override")
	}

	th.Reset()
	if !th.Dark() || th.Mode() != ModeSystem {
		t.Fatal("Reset did not return to the system preference")
	}
	th.SetSystemDark(false)
	if th.Dark() {
		t.Fatal("system mode ignored a system change")
	}
}

func TestOnChangeFiresOnlyOnResolvedChange(t *testing.T) {
	th := New(true)
	var calls []bool
	th.OnChange(func(dark bool) { calls = append(calls, dark) })

	th.SetDark(true) // system already dark
	th.SetDark(false)
	th.Toggle()
	th.Reset() // system is dark, still dark

	if len(calls) != 2 || calls[0] != false || calls[1] != true {
		t.Fatalf("listener calls = %v, want [false true]", calls)
	}
}

func TestListenerMayReadTheme(t *testing.T) {
	th := New(false)
	var seen bool
	th.OnChange(func(bool) { seen = th.Dark() })
	th.Toggle()
	if !seen {
		t.Fatal("listener saw stale mode")
	}
}

func TestModeString(t *testing.T) {
	for m, want := range map[Mode]string{ModeSystem: "system", ModeLight: "light", ModeDark: "dark", Mode(9): "unknown"} {
		if got := m.String(); got != want {
			t.Errorf("Mode(%d).String() = %q, want %q", m, got, want)
		}
	}
}
