package sim

import (
	"log/slog"
	"math/rand"
	"strings"
	"time"

	"gramlite/internal/config"
	"gramlite/internal/lib/sl"
)

// openers is the fixed pool of canned conversational openers.
var openers = []string{
	"That's an interesting point!",
	"I see what you mean.",
	"Thanks for sharing that.",
	"Let me think about that for a moment.",
	"Good question!",
	"I hadn't considered it that way before.",
	"That makes a lot of sense.",
	"Tell me more about that.",
}

// greetings are the tokens that switch the reply to a greeting clause.
var greetings = []string{"hello", "hi", "hey", "good morning", "good evening", "greetings"}

const (
	greetingClause = "Nice to hear from you! How can I help today?"
	fillerClause   = "Is there anything else you'd like to talk about?"
)

// Simulator produces plausible asynchronous replies for AI chats without
// a real inference backend. Generate never fails and never returns an
// empty string; it blocks for a random delay inside the configured window
// to make the conversation feel live.
type Simulator struct {
	minDelay time.Duration
	maxDelay time.Duration
	log      *slog.Logger
}

// New creates a simulator with the reply window from the config.
func New(conf *config.Config, logger *slog.Logger) *Simulator {
	return NewWithWindow(
		time.Duration(conf.Reply.MinDelayMs)*time.Millisecond,
		time.Duration(conf.Reply.MaxDelayMs)*time.Millisecond,
		logger,
	)
}

// NewWithWindow creates a simulator with an explicit delay window.
// The window is normalized so min <= max and both are non-negative.
func NewWithWindow(min, max time.Duration, logger *slog.Logger) *Simulator {
	if min < 0 {
		min = 0
	}
	if max < min {
		max = min
	}
	return &Simulator{
		minDelay: min,
		maxDelay: max,
		log:      logger.With(sl.Module("sim")),
	}
}

// Generate blocks for a randomized delay and returns a canned reply to
// the input text. Concurrent calls are independent of each other.
func (s *Simulator) Generate(input string) string {
	delay := s.minDelay
	if window := s.maxDelay - s.minDelay; window > 0 {
		delay += time.Duration(rand.Int63n(int64(window)))
	}
	time.Sleep(delay)

	reply := s.compose(input)
	s.log.Debug("generated reply",
		slog.Duration("delay", delay),
		slog.Int("reply_len", len(reply)),
	)
	return reply
}

func (s *Simulator) compose(input string) string {
	opener := openers[rand.Intn(len(openers))]
	if containsGreeting(input) {
		return opener + " " + greetingClause
	}
	return opener + " " + fillerClause
}

func containsGreeting(input string) bool {
	lower := strings.ToLower(input)
	for _, g := range greetings {
		if strings.Contains(lower, g) {
			return true
		}
	}
	return false
}
