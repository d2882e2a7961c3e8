// Package assistant wraps the chat model's streaming API as a live session
// with an explicit stop path. Audio capture and playback stay on the client;
// the server side is conversation plumbing only.
package assistant

import (
	"context"
	"errors"
	"io"
	"strings"
	"sync"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
)

// ErrClosed is returned by Send after Close.
var ErrClosed = errors.New("assistant session closed")

const defaultSystemPrompt = "You are a friendly, concise live sales assistant. Keep answers short enough to be spoken aloud."

type Session struct {
	chatModel model.BaseChatModel

	mu      sync.Mutex
	history []*schema.Message
	closed  bool
	cancel  context.CancelFunc
}

// Open starts a session. The persona, when non-empty, is appended to the
// system prompt so answers match the signed-in user's context.
func Open(chatModel model.BaseChatModel, persona string) *Session {
	system := defaultSystemPrompt
	if persona != "" {
		system += " The user you are assisting: " + persona
	}
	return &Session{
		chatModel: chatModel,
		history:   []*schema.Message{{Role: schema.System, Content: system}},
	}
}

// Send streams the reply to one utterance chunk by chunk through emit, then
// records the full exchange in the session history. emit is called on the
// caller's goroutine; returning an error from it aborts the stream.
func (s *Session) Send(ctx context.Context, text string, emit func(chunk string) error) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrClosed
	}
	ctx, s.cancel = context.WithCancel(ctx)
	messages := append([]*schema.Message{}, s.history...)
	messages = append(messages, &schema.Message{Role: schema.User, Content: text})
	s.mu.Unlock()

	reader, err := s.chatModel.Stream(ctx, messages)
	if err != nil {
		return err
	}
	defer reader.Close()

	var full strings.Builder
	for {
		chunk, err := reader.Recv()
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}
		full.WriteString(chunk.Content)
		if err := emit(chunk.Content); err != nil {
			return err
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}
	s.history = append(s.history,
		&schema.Message{Role: schema.User, Content: text},
		&schema.Message{Role: schema.Assistant, Content: full.String()},
	)
	return nil
}

// Close tears the session down: any in-flight stream is cancelled and
// further Sends fail with ErrClosed.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	if s.cancel != nil {
		s.cancel()
	}
	s.history = nil
}
