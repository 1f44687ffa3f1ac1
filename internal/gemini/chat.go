package gemini

import (
	"context"

	"github.com/google/uuid"

	"github.com/nayansarkar10/CompititivePricingAI/internal/models"
)

// ChatSession is a persistent conversational session. Each Send carries
// the accumulated history so the model keeps prior turns as context.
// Sessions are not safe for concurrent use; the wizard issues one request
// at a time.
type ChatSession struct {
	ID       string
	client   *Client
	base     Request
	history  []Content
	Messages []models.ChatMessage
}

// StartChat creates a new chat session seeded with the given request
// settings (system instruction, search capability). Any previous session
// held by the caller is simply dropped; there is no merge.
func (c *Client) StartChat(base Request) *ChatSession {
	session := &ChatSession{
		ID:     uuid.NewString(),
		client: c,
		base:   base,
	}
	c.logger.Debug().Str("session", session.ID).Msg("started chat session")
	return session
}

// Send appends a user turn, issues the request with full history, and
// records the model's reply as the next turn.
func (s *ChatSession) Send(ctx context.Context, text string) (string, error) {
	turn := Content{Role: "user", Parts: []Part{{Text: text}}}
	contents := append(append([]Content{}, s.history...), turn)

	req := s.base
	req.Contents = contents

	reply, err := s.client.GenerateContent(ctx, req)
	if err != nil {
		return "", err
	}

	s.history = append(s.history, turn, Content{Role: "model", Parts: []Part{{Text: reply}}})
	s.Messages = append(s.Messages,
		models.ChatMessage{ID: uuid.NewString(), Role: "user", Text: text},
		models.ChatMessage{ID: uuid.NewString(), Role: "model", Text: reply},
	)
	return reply, nil
}

// History returns the accumulated wire-format turns
func (s *ChatSession) History() []Content {
	return s.history
}
