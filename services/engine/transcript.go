package engine

import (
	"sync"
	"time"

	"travelorbit/models"
)

// Transcript is the ordered, append-only message log for one session. It is
// the only channel through which the engine speaks; presentation markup is
// someone else's job.
type Transcript struct {
	mu       sync.Mutex
	messages []models.ChatMessage
}

func NewTranscript() *Transcript {
	return &Transcript{}
}

func (t *Transcript) append(msg models.ChatMessage) {
	msg.Timestamp = time.Now().UTC()
	t.mu.Lock()
	t.messages = append(t.messages, msg)
	t.mu.Unlock()
}

func (t *Transcript) User(text string) {
	t.append(models.ChatMessage{Author: models.AuthorUser, Text: text})
}

func (t *Transcript) Prompt(text string) {
	t.append(models.ChatMessage{Author: models.AuthorSystem, Kind: models.KindPrompt, Text: text})
}

func (t *Transcript) Confirm(text string) {
	t.append(models.ChatMessage{Author: models.AuthorSystem, Kind: models.KindConfirmation, Text: text})
}

func (t *Transcript) Error(text string) {
	t.append(models.ChatMessage{Author: models.AuthorSystem, Kind: models.KindError, Text: text})
}

// Directive appends structured data for the presentation layer to draw.
func (t *Transcript) Directive(kind models.DirectiveKind, data interface{}, text string) {
	t.append(models.ChatMessage{
		Author:    models.AuthorSystem,
		Kind:      models.KindRenderDirective,
		Text:      text,
		Directive: &models.RenderDirective{Kind: kind, Data: data},
	})
}

// Messages returns a copy of the full log in order.
func (t *Transcript) Messages() []models.ChatMessage {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]models.ChatMessage, len(t.messages))
	copy(out, t.messages)
	return out
}

// Since returns messages appended at or after index n, for incremental
// polling clients.
func (t *Transcript) Since(n int) []models.ChatMessage {
	t.mu.Lock()
	defer t.mu.Unlock()
	if n < 0 {
		n = 0
	}
	if n >= len(t.messages) {
		return nil
	}
	out := make([]models.ChatMessage, len(t.messages)-n)
	copy(out, t.messages[n:])
	return out
}

func (t *Transcript) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.messages)
}

func (t *Transcript) replace(messages []models.ChatMessage) {
	t.mu.Lock()
	t.messages = messages
	t.mu.Unlock()
}
