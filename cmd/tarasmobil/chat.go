package main

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/tarasmobil/taras-mobil/assistant"
	"github.com/tarasmobil/taras-mobil/router"
)

const chatPollInterval = 100 * time.Millisecond

var (
	chatTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#06B6D4"))
	userStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFFFFF")).Background(lipgloss.Color("#06B6D4")).Padding(0, 1)
	botStyle       = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#0F172A", Dark: "#F1F5F9"}).Background(lipgloss.AdaptiveColor{Light: "#F1F5F9", Dark: "#334155"}).Padding(0, 1)
	noteStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#64748B")).Italic(true)
)

func chatCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "chat",
		Short: "Talk to the assistant in the terminal",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, flags)
			if err != nil {
				return err
			}
			as, err := newAssistant(cfg)
			if err != nil {
				return err
			}
			delay, err := cfg.ReplyDelay()
			if err != nil {
				return err
			}
			m := newChatModel(as, delay)
			_, err = tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(cmd.Context())).Run()
			return err
		},
	}
}

type chatPollMsg time.Time

type chatKeyMap struct {
	Quit   key.Binding
	Send   key.Binding
	Scroll key.Binding
}

var chatKeys = chatKeyMap{
	Quit:   key.NewBinding(key.WithKeys("ctrl+c", "esc"), key.WithHelp("esc", "quit")),
	Send:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "send")),
	Scroll: key.NewBinding(key.WithKeys("pgup", "pgdown"), key.WithHelp("pgup/pgdn", "scroll")),
}

func (k chatKeyMap) help() string {
	parts := make([]string, 0, 3)
	for _, b := range []key.Binding{k.Send, k.Scroll, k.Quit} {
		h := b.Help()
		parts = append(parts, h.Key+" "+h.Desc)
	}
	return strings.Join(parts, "  ")
}

// chatModel mirrors the in-app chat panel: replies arrive after the delay and navigation
// requests move a router that stands in for the app's screens.
type chatModel struct {
	conv    *assistant.Conversation
	router  router.Router
	input   textinput.Model
	history viewport.Model
	notes   map[string]string // reply ID -> navigation note
	width   int
	height  int
	ready   bool
}

func newChatModel(as assistant.Assistant, delay time.Duration) *chatModel {
	input := textinput.New()
	input.Placeholder = "Type a message..."
	input.Prompt = "> "
	input.CharLimit = 200
	input.Focus()

	return &chatModel{
		conv:   assistant.NewConversation(as, time.Now(), assistant.WithReplyDelay(delay)),
		router: router.NewRouter(router.WithInitialScreen(router.Home)),
		input:  input,
		notes:  make(map[string]string),
	}
}

func poll() tea.Cmd {
	return tea.Tick(chatPollInterval, func(t time.Time) tea.Msg {
		return chatPollMsg(t)
	})
}

func (m *chatModel) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, poll())
}

func (m *chatModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		h := max(msg.Height-5, 1)
		if !m.ready {
			m.history = viewport.New(msg.Width, h)
			m.ready = true
		} else {
			m.history.Width, m.history.Height = msg.Width, h
		}
		m.input.Width = msg.Width - 4
		m.refresh()

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, chatKeys.Quit):
			return m, tea.Quit
		case key.Matches(msg, chatKeys.Send):
			if _, err := m.conv.Send(m.input.Value(), time.Now()); err == nil {
				m.input.Reset()
				m.refresh()
			}
			return m, nil
		case key.Matches(msg, chatKeys.Scroll):
			var cmd tea.Cmd
			m.history, cmd = m.history.Update(msg)
			return m, cmd
		}

	case chatPollMsg:
		released := m.conv.Update(time.Time(msg))
		for _, r := range released {
			if r.Navigate == "" {
				continue
			}
			if err := m.router.Navigate(r.Navigate); err == nil {
				m.notes[r.ID] = "-> " + r.Navigate.Header()
			}
		}
		if len(released) > 0 {
			m.refresh()
		}
		return m, poll()
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

// refresh re-renders the history and scrolls to the newest message.
func (m *chatModel) refresh() {
	if !m.ready {
		return
	}
	bubbleW := max(m.width*3/4, 10)
	var b strings.Builder
	for _, msg := range m.conv.Messages() {
		if msg.Role == assistant.RoleUser {
			line := userStyle.MaxWidth(bubbleW).Render(msg.Text)
			b.WriteString(lipgloss.PlaceHorizontal(m.width, lipgloss.Right, line))
		} else {
			b.WriteString(botStyle.Width(min(bubbleW, lipgloss.Width(msg.Text)+2)).Render(msg.Text))
			if note, ok := m.notes[msg.ID]; ok {
				b.WriteString("\n" + noteStyle.Render(note))
			}
		}
		b.WriteString("\n\n")
	}
	if m.conv.Typing() {
		b.WriteString(noteStyle.Render("typing..."))
	}
	m.history.SetContent(b.String())
	m.history.GotoBottom()
}

func (m *chatModel) View() string {
	if !m.ready {
		return "loading..."
	}
	title := chatTitleStyle.Render("Assistant") + noteStyle.Render("  on "+m.router.Current().Header())
	return lipgloss.JoinVertical(lipgloss.Left, title, m.history.View(), "", m.input.View(), noteStyle.Render(chatKeys.help()))
}
