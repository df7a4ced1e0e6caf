// Package guide sequences the two-phase screen assistance pipeline:
// Analyze sends a screenshot to the vision model and caches what it said;
// Act turns one chosen action into concrete instruction steps with on-screen
// coordinates resolved via OCR.
package guide

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/screenguide/screenguide/internal/gemini"
	"github.com/screenguide/screenguide/internal/models"
	"github.com/screenguide/screenguide/internal/ocr"
	"github.com/screenguide/screenguide/internal/ollama"
	"github.com/screenguide/screenguide/internal/openai"
	"github.com/screenguide/screenguide/internal/parse"
	"github.com/screenguide/screenguide/internal/providers"
	"github.com/screenguide/screenguide/internal/storage"
)

// ErrSessionNotFound means Act referenced an unknown or evicted session id.
// The caller should re-run Analyze.
var ErrSessionNotFound = errors.New("guide: session not found")

// ModelCallError wraps a failure of the model capability itself. It is
// surfaced to the caller and never retried here.
type ModelCallError struct {
	Phase string // "analyze" or "act"
	Err   error
}

func (e *ModelCallError) Error() string {
	return fmt.Sprintf("guide: model call failed during %s: %v", e.Phase, e.Err)
}

func (e *ModelCallError) Unwrap() error {
	return e.Err
}

// Service is the pipeline orchestrator.
type Service struct {
	provider    providers.Provider
	store       *storage.SessionStore
	locator     *ocr.Locator
	model       string
	temperature float64
}

// NewService wires the orchestrator. The store is injected so the HTTP layer
// can read sessions through the same instance.
func NewService(provider providers.Provider, store *storage.SessionStore, locator *ocr.Locator, model string) *Service {
	return &Service{
		provider:    provider,
		store:       store,
		locator:     locator,
		model:       model,
		temperature: 0.1,
	}
}

// NewProviderFromEnv selects the provider and model from SCREENGUIDE_PROVIDER
// and the per-provider model variables, with CLI flags taking precedence.
func NewProviderFromEnv(providerName, model string) (providers.Provider, string, error) {
	if providerName == "" {
		providerName = os.Getenv("SCREENGUIDE_PROVIDER")
		if providerName == "" {
			providerName = "openai"
		}
	}
	if model == "" {
		model = defaultModel(providerName)
	}

	switch providerName {
	case "openai":
		return openai.New(), model, nil
	case "ollama":
		return ollama.New(), model, nil
	case "gemini":
		return gemini.New(), model, nil
	default:
		return nil, "", fmt.Errorf("unsupported provider: %s", providerName)
	}
}

func defaultModel(provider string) string {
	switch provider {
	case "openai":
		model := os.Getenv("OPENAI_MODEL")
		if model == "" {
			return "gpt-4o-mini"
		}
		return model
	case "ollama":
		model := os.Getenv("OLLAMA_MODEL")
		if model == "" {
			return "mistral-small3.2:24b"
		}
		return model
	case "gemini":
		model := os.Getenv("GEMINI_MODEL")
		if model == "" {
			return "gemini-2.0-flash"
		}
		return model
	default:
		return ""
	}
}

// Analyze is phase 1: submit the screenshot to the vision model, parse the
// reply into a ProgramAnalysis and store it as a new session.
func (s *Service) Analyze(ctx context.Context, image []byte) (*models.Session, error) {
	reply, err := s.provider.CompleteWithImage(ctx, providers.Config{
		Model:       s.model,
		Temperature: s.temperature,
		Prompt:      analysisPrompt,
	}, image)
	if err != nil {
		return nil, &ModelCallError{Phase: "analyze", Err: err}
	}

	analysis := parse.ParseAnalysis(reply)
	capture := models.NewScreenCapture(image)
	session := s.store.Put(capture, analysis)

	slog.Info("Screenshot analyzed",
		"session_id", session.ID,
		"program", orUnknown(analysis.Name, "?"),
		"actions", len(analysis.Actions))
	return session, nil
}

// Act is phase 2: turn one chosen action into instruction steps, resolving
// each step's first quoted element to screen coordinates via OCR. It may be
// called repeatedly against the same session for different actions.
func (s *Service) Act(ctx context.Context, sessionID, action string) ([]models.InstructionStep, error) {
	session, ok := s.store.Get(sessionID)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, sessionID)
	}

	withScreenshot := session.Capture != nil && len(session.Capture.Data) > 0

	prompt, err := buildInstructionPrompt(session.Analysis.Name, session.Analysis.Location, action, withScreenshot)
	if err != nil {
		return nil, fmt.Errorf("build instruction prompt: %w", err)
	}

	config := providers.Config{Model: s.model, Temperature: s.temperature, Prompt: prompt}

	var reply string
	if withScreenshot {
		reply, err = s.provider.CompleteWithImage(ctx, config, session.Capture.Data)
	} else {
		reply, err = s.provider.Complete(ctx, config)
	}
	if err != nil {
		return nil, &ModelCallError{Phase: "act", Err: err}
	}

	steps := parse.ExtractSteps(reply)
	if withScreenshot && s.locator != nil {
		s.resolveCoordinates(ctx, session.Capture.Data, steps)
	}

	slog.Info("Instructions generated", "session_id", sessionID, "action", action, "steps", len(steps))
	return steps, nil
}

// resolveCoordinates fills in each step's highlight point from its first
// quoted element. The screenshot is scanned once and every step is matched
// against the same word list. A failed scan leaves all steps unresolved; an
// element that is simply not on screen only leaves its own step unresolved.
func (s *Service) resolveCoordinates(ctx context.Context, image []byte, steps []models.InstructionStep) {
	words, err := s.locator.Scan(ctx, image)
	if err != nil {
		slog.Warn("OCR scan failed, steps left unresolved", "error", err)
		return
	}

	for i := range steps {
		if len(steps[i].QuotedElements) == 0 {
			continue
		}
		element := steps[i].QuotedElements[0]

		point, err := s.locator.Match(element, words)
		if err != nil {
			slog.Debug("Element not found on screen", "element", element)
			continue
		}
		steps[i].Coordinates = &point
	}
}
