package assistant

import (
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Role tells who wrote a message.
type Role int

const (
	RoleUser Role = iota
	RoleAssistant
)

func (r Role) String() string {
	if r == RoleUser {
		return "user"
	}
	return "assistant"
}

// Message is one entry in the chat history.
type Message struct {
	ID   string
	Role Role
	Text string
	Time time.Time
}

// DefaultReplyDelay is how long the assistant "types" before its reply appears.
const DefaultReplyDelay = 600 * time.Millisecond

// DefaultMaxMessages bounds the stored history.
const DefaultMaxMessages = 200

type pending struct {
	due      time.Time
	response Response
}

// Conversation is the chat history plus the assistant replies that are still being typed.
// Replies are released by Update, which the app calls from its tick loop, so nothing here
// starts goroutines or timers.
type Conversation struct {
	mu        *sync.Mutex
	assistant Assistant
	delay     time.Duration
	max       int
	messages  []Message
	pending   []pending
}

// NewConversation creates a conversation seeded with the greeting.
//
// Parameters:
//   - a: the assistant that answers user messages
//   - now: timestamp for the greeting
//   - options: functional options to configure the conversation
//
// Returns:
//   - *Conversation: the newly created conversation
func NewConversation(a Assistant, now time.Time, options ...ConversationOption) *Conversation {
	c := &Conversation{
		mu:        &sync.Mutex{},
		assistant: a,
		delay:     DefaultReplyDelay,
		max:       DefaultMaxMessages,
	}
	for _, opt := range options {
		opt(c)
	}
	c.messages = append(c.messages, Message{ID: uuid.NewString(), Role: RoleAssistant, Text: Greeting, Time: now})
	return c
}

// Send records the user's message and schedules the assistant's reply for now + delay.
// The text is kept as typed; the response is computed immediately so rule errors surface here.
//
// Parameters:
//   - text: the user's message
//   - now: current time
//
// Returns:
//   - Message: the stored user message
//   - error: ErrEmptyMessage if text is blank
func (c *Conversation) Send(text string, now time.Time) (Message, error) {
	if strings.TrimSpace(text) == "" {
		return Message{}, ErrEmptyMessage
	}
	resp, err := c.assistant.Respond(text)
	if err != nil {
		return Message{}, err
	}

	msg := Message{ID: uuid.NewString(), Role: RoleUser, Text: text, Time: now}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.append(msg)
	c.pending = append(c.pending, pending{due: now.Add(c.delay), response: resp})
	return msg, nil
}

// Update releases every reply that is due at now, in send order.
//
// Parameters:
//   - now: current time
//
// Returns:
//   - []Response: the released responses; callers act on their Navigate field
func (c *Conversation) Update(now time.Time) []Response {
	c.mu.Lock()
	defer c.mu.Unlock()

	n := 0
	for n < len(c.pending) && !now.Before(c.pending[n].due) {
		n++
	}
	if n == 0 {
		return nil
	}

	released := make([]Response, 0, n)
	for _, p := range c.pending[:n] {
		c.append(Message{ID: p.response.ID, Role: RoleAssistant, Text: p.response.Text, Time: p.due})
		released = append(released, p.response)
	}
	c.pending = append(c.pending[:0], c.pending[n:]...)
	return released
}

// Typing reports whether a reply is still pending.
func (c *Conversation) Typing() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.pending) > 0
}

// Messages returns a copy of the history, oldest first.
func (c *Conversation) Messages() []Message {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]Message(nil), c.messages...)
}

// Len returns the number of stored messages.
func (c *Conversation) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.messages)
}

func (c *Conversation) append(m Message) {
	c.messages = append(c.messages, m)
	if over := len(c.messages) - c.max; over > 0 {
		c.messages = append(c.messages[:0], c.messages[over:]...)
	}
}

// ConversationOption is a functional option for configuring a Conversation.
type ConversationOption func(*Conversation)

// WithReplyDelay sets the typing delay. Negative values are treated as 0.
func WithReplyDelay(d time.Duration) ConversationOption {
	return func(c *Conversation) {
		c.delay = max(d, 0)
	}
}

// WithMaxMessages bounds the history; the oldest messages are dropped first.
func WithMaxMessages(n int) ConversationOption {
	return func(c *Conversation) {
		c.max = max(n, 1)
	}
}
