// Package ai generates the simulated assistant replies.
package ai

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/fake"
)

// Thinking-delay bounds for a reply.
const (
	DefaultMinDelay = 2 * time.Second
	DefaultMaxDelay = 5 * time.Second
)

// cannedReplies are the stock responses the simulated assistant cycles
// through. The provider behind the Responder is swappable; nothing outside
// this package knows the replies are canned.
var cannedReplies = []string{
	"That's an interesting question! Let me think about that...",
	"I understand what you're asking. Here's my perspective on that topic.",
	"Great question! Based on my knowledge, I can help you with that.",
	"I see what you mean. Let me provide some insights on this.",
	"That's a fascinating topic! Here's what I think about it...",
	"I appreciate you sharing that with me. Let me respond thoughtfully.",
	"That's a complex question that deserves a detailed answer.",
	"I'm glad you asked! This is something I can definitely help with.",
	"Interesting perspective! Let me share my thoughts on this.",
	"I understand your concern. Here's how I would approach this...",
}

const disclaimer = "I'm a simulated AI assistant, so my responses are generated for demonstration purposes. In a real application, this would connect to an actual AI service like Gemini or ChatGPT."

// Reply is one generated assistant response.
type Reply struct {
	Content   string
	Timestamp time.Time
}

// Responder wraps a langchaingo model behind the reply contract the UI
// depends on. The default model is a fake that serves canned replies after a
// randomized thinking delay.
type Responder struct {
	llm      llms.Model
	minDelay time.Duration
	maxDelay time.Duration
}

// Option configures a Responder.
type Option func(*Responder)

// WithDelays overrides the thinking-delay bounds.
func WithDelays(lo, hi time.Duration) Option {
	return func(r *Responder) {
		r.minDelay = lo
		r.maxDelay = hi
	}
}

// WithModel swaps the underlying langchaingo model, e.g. for a real
// provider.
func WithModel(m llms.Model) Option {
	return func(r *Responder) { r.llm = m }
}

// New creates a Responder over the canned-reply fake, shuffled so runs
// don't always open with the same line.
func New(opts ...Option) *Responder {
	replies := make([]string, len(cannedReplies))
	copy(replies, cannedReplies)
	rand.Shuffle(len(replies), func(i, j int) {
		replies[i], replies[j] = replies[j], replies[i]
	})

	r := &Responder{
		llm:      fake.NewFakeLLM(replies),
		minDelay: DefaultMinDelay,
		maxDelay: DefaultMaxDelay,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Respond simulates thinking, then generates a reply to the user's text.
func (r *Responder) Respond(ctx context.Context, userText string) (*Reply, error) {
	if err := r.think(ctx); err != nil {
		return nil, err
	}

	content, err := llms.GenerateFromSinglePrompt(ctx, r.llm, userText)
	if err != nil {
		return nil, fmt.Errorf("generate reply: %w", err)
	}

	return &Reply{
		Content:   content + "\n\n" + disclaimer,
		Timestamp: time.Now().UTC(),
	}, nil
}

// think sleeps for a randomized delay within the configured bounds,
// honoring cancellation.
func (r *Responder) think(ctx context.Context) error {
	delay := r.minDelay
	if r.maxDelay > r.minDelay {
		delay += rand.N(r.maxDelay - r.minDelay)
	}
	if delay <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(delay)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
