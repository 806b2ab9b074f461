// Package session owns one MAYA conversation: its history, its agents and
// the side effects a turn asks for.
package session

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/Conceptual-Machines/maya-agents-go/agents"
	"github.com/Conceptual-Machines/maya-agents-go/agents/coordination"
	"github.com/Conceptual-Machines/maya-agents-go/config"
	"github.com/Conceptual-Machines/maya-agents-go/conversation"
	"github.com/Conceptual-Machines/maya-agents-go/models"
	"github.com/Conceptual-Machines/maya-agents-go/music"
	"github.com/Conceptual-Machines/maya-agents-go/prompt"
	"github.com/Conceptual-Machines/maya-agents-go/transcript"
	"github.com/getsentry/sentry-go"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const (
	// FallbackGreeting is used when the greeting model call fails
	FallbackGreeting = "👋 Welcome! I'm MAYA, your Music Assistant.\nI'm here to help you with anything music-related.\nHow can I assist you today?"

	nothingToSave = "No conversation to save. Start a new chat first!"
)

// Options tune a Session. Zero values fall back to defaults.
type Options struct {
	OutputDir      string
	GreetingBudget time.Duration
	Clock          func() time.Time
}

// Session serializes turns for one user. Handle, StartNewChat and
// SaveConversation are safe to call from several goroutines.
type Session struct {
	mu sync.Mutex

	id           string
	store        *conversation.Store
	orchestrator *coordination.Orchestrator
	greeter      coordination.Specialist
	sink         transcript.Sink
	prompts      *prompt.MayaPromptBuilder

	outputDir      string
	greetingBudget time.Duration
	now            func() time.Time
}

// New creates a session. greeter is the agent asked for welcome messages.
func New(orchestrator *coordination.Orchestrator, greeter coordination.Specialist, sink transcript.Sink, opts Options) *Session {
	if opts.OutputDir == "" {
		opts.OutputDir = "outputs"
	}
	if opts.GreetingBudget == 0 {
		opts.GreetingBudget = config.DefaultBudgets().Greeting
	}
	if opts.Clock == nil {
		opts.Clock = time.Now
	}
	return &Session{
		id:             uuid.NewString(),
		store:          conversation.NewStore(),
		orchestrator:   orchestrator.WithClock(opts.Clock),
		greeter:        greeter,
		sink:           sink,
		prompts:        prompt.NewMayaPromptBuilder(),
		outputDir:      opts.OutputDir,
		greetingBudget: opts.GreetingBudget,
		now:            opts.Clock,
	}
}

// NewFromConfig builds the crew, orchestrator and transcript sink from configuration
func NewFromConfig(ctx context.Context, cfg *config.Config) (*Session, error) {
	crew, err := agents.NewCrewFromConfig(ctx, cfg)
	if err != nil {
		return nil, err
	}
	sink, err := transcript.NewSinkFromConfig(cfg)
	if err != nil {
		return nil, err
	}
	orchestrator := coordination.NewOrchestrator(crew, cfg.Budgets)
	return New(orchestrator, crew.Advisor, sink, Options{
		OutputDir:      cfg.OutputDir,
		GreetingBudget: cfg.Budgets.Greeting,
	}), nil
}

// ID returns the session identifier
func (s *Session) ID() string {
	return s.id
}

// History returns a copy of the committed exchanges
func (s *Session) History() []conversation.Exchange {
	return s.store.History()
}

// Handle runs one user turn and executes any command or effect it produces
func (s *Session) Handle(ctx context.Context, input string) models.Response {
	s.mu.Lock()
	defer s.mu.Unlock()

	result := s.orchestrator.Run(ctx, s.store, input)

	switch result.Command {
	case coordination.CommandNew:
		return s.startNewChatLocked(ctx)
	case coordination.CommandSave:
		return models.Response{Message: s.saveConversationLocked(), Timestamp: s.now()}
	}

	if result.Err != nil {
		sentry.AddBreadcrumb(&sentry.Breadcrumb{
			Category: "session",
			Message:  fmt.Sprintf("Turn failed in session %s", s.id),
			Level:    sentry.LevelError,
			Data:     map[string]interface{}{"session_id": s.id, "decision": result.Decision.String()},
		})
		return result.Response()
	}

	s.applyEffects(result.Effects)
	return result.Response()
}

// StartNewChat clears the history and returns a fresh greeting
func (s *Session) StartNewChat(ctx context.Context) models.Response {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.startNewChatLocked(ctx)
}

func (s *Session) startNewChatLocked(ctx context.Context) models.Response {
	s.store.Clear()
	log.Info().Str("session", s.id).Msg("🆕 New chat started")
	return models.Response{Message: s.greeting(ctx), Timestamp: s.now()}
}

// Greeting asks the advisor for a welcome message without touching history
func (s *Session) Greeting(ctx context.Context) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.greeting(ctx)
}

func (s *Session) greeting(ctx context.Context) string {
	out, err := s.greeter.Execute(ctx, agents.Task{
		Description:    s.prompts.GreetingTask(),
		ExpectedOutput: "A welcoming greeting message",
		MaxTime:        s.greetingBudget,
	})
	out = strings.TrimSpace(out)
	if err != nil || out == "" {
		log.Error().Err(err).Msg("Error generating greeting")
		return FallbackGreeting
	}
	return out
}

// SaveConversation writes the full history through the sink
func (s *Session) SaveConversation() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saveConversationLocked()
}

func (s *Session) saveConversationLocked() string {
	history := s.store.History()
	if len(history) == 0 {
		return nothingToSave
	}

	now := s.now()
	path := transcript.ConversationPath(s.outputDir, now)
	if err := s.sink.WriteFile(path, transcript.FormatConversation(now, history)); err != nil {
		log.Error().Err(err).Msg("Error saving conversation")
		return fmt.Sprintf("Error saving conversation: %v", err)
	}
	log.Info().Str("path", path).Msg("💾 Conversation saved")
	return fmt.Sprintf("Conversation saved successfully to %s", path)
}

// applyEffects runs turn side effects. Failures are logged and never reach the reply.
func (s *Session) applyEffects(effects []coordination.Effect) {
	for _, effect := range effects {
		switch effect.Kind {
		case coordination.EffectSaveCreative:
			now := s.now()
			path := transcript.CreativePath(s.outputDir, now)
			if err := s.sink.WriteFile(path, transcript.FormatCreative(now, annotateChords(effect.Content))); err != nil {
				log.Error().Err(err).Msg("Error saving creative output")
				continue
			}
			log.Info().Str("path", path).Msg("🎵 Creative output saved")
		}
	}
}

// annotateChords appends MIDI voicings when the content carries a chord progression
func annotateChords(content string) string {
	chords := music.ExtractProgression(content)
	if len(chords) == 0 {
		return content
	}
	log.Debug().Strs("chords", chords).Msg("🎹 Voicing chord progression")
	return content + "\n\n" + music.VoicingTable(chords)
}
