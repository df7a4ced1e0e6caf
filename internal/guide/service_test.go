package guide

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/screenguide/screenguide/internal/models"
	"github.com/screenguide/screenguide/internal/ocr"
	"github.com/screenguide/screenguide/internal/providers"
	"github.com/screenguide/screenguide/internal/storage"
)

func parseAnalysisFixture() models.ProgramAnalysis {
	name := "Notepad"
	location := "blank document"
	return models.ProgramAnalysis{Name: &name, Location: &location, Actions: []string{"Save file"}}
}

// scriptedProvider replays canned replies and records what it was asked.
type scriptedProvider struct {
	replies    []string
	err        error
	calls      int
	prompts    []string
	imagesSent int
	textOnly   int
	lastConfig providers.Config
	lastImage  []byte
}

func (p *scriptedProvider) next() string {
	if p.calls-1 < len(p.replies) {
		return p.replies[p.calls-1]
	}
	return p.replies[len(p.replies)-1]
}

func (p *scriptedProvider) Complete(ctx context.Context, config providers.Config) (string, error) {
	p.calls++
	p.textOnly++
	p.prompts = append(p.prompts, config.Prompt)
	p.lastConfig = config
	if p.err != nil {
		return "", p.err
	}
	return p.next(), nil
}

func (p *scriptedProvider) CompleteWithImage(ctx context.Context, config providers.Config, image []byte) (string, error) {
	p.calls++
	p.imagesSent++
	p.prompts = append(p.prompts, config.Prompt)
	p.lastConfig = config
	p.lastImage = image
	if p.err != nil {
		return "", p.err
	}
	return p.next(), nil
}

type fakeRecognizer struct {
	words []ocr.Word
	err   error
	calls int
}

func (f *fakeRecognizer) Recognize(ctx context.Context, image []byte) ([]ocr.Word, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.words, nil
}

const analysisReply = `Name: "Notepad"
Location: "blank document"
Action: "Save file"`

const instructionReply = `Click "File" menu
Click "Save As"`

func newTestService(p providers.Provider, rec ocr.Recognizer) (*Service, *storage.SessionStore) {
	store := storage.New()
	var locator *ocr.Locator
	if rec != nil {
		locator = ocr.NewLocator(rec)
	}
	return NewService(p, store, locator, "test-model"), store
}

func TestAnalyzeThenAct(t *testing.T) {
	provider := &scriptedProvider{replies: []string{analysisReply, instructionReply}}
	recognizer := &fakeRecognizer{words: []ocr.Word{
		{Text: "File", Left: 10, Top: 5, Width: 40, Height: 20},
	}}
	svc, _ := newTestService(provider, recognizer)

	session, err := svc.Analyze(context.Background(), []byte("screenshot"))
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}
	if session.Analysis.Name == nil || *session.Analysis.Name != "Notepad" {
		t.Errorf("Name = %v, want Notepad", session.Analysis.Name)
	}
	if session.Analysis.Location == nil || *session.Analysis.Location != "blank document" {
		t.Errorf("Location = %v, want blank document", session.Analysis.Location)
	}
	if !reflect.DeepEqual(session.Analysis.Actions, []string{"Save file"}) {
		t.Errorf("Actions = %v, want [Save file]", session.Analysis.Actions)
	}

	steps, err := svc.Act(context.Background(), session.ID, "Save file")
	if err != nil {
		t.Fatalf("Act() error = %v", err)
	}
	if len(steps) != 2 {
		t.Fatalf("got %d steps, want 2", len(steps))
	}
	if !reflect.DeepEqual(steps[0].QuotedElements, []string{"File"}) {
		t.Errorf("steps[0].QuotedElements = %v, want [File]", steps[0].QuotedElements)
	}
	if !reflect.DeepEqual(steps[1].QuotedElements, []string{"Save As"}) {
		t.Errorf("steps[1].QuotedElements = %v, want [Save As]", steps[1].QuotedElements)
	}

	// "File" is on screen, "Save As" is not.
	if steps[0].Coordinates == nil {
		t.Fatal("steps[0].Coordinates = nil, want resolved point")
	}
	if steps[0].Coordinates.X != 30 || steps[0].Coordinates.Y != 15 {
		t.Errorf("steps[0] center = (%d, %d), want (30, 15)", steps[0].Coordinates.X, steps[0].Coordinates.Y)
	}
	if steps[1].Coordinates != nil {
		t.Errorf("steps[1].Coordinates = %v, want nil", steps[1].Coordinates)
	}

	if provider.imagesSent != 2 {
		t.Errorf("imagesSent = %d, want 2 (both phases ground on the screenshot)", provider.imagesSent)
	}
	if string(provider.lastImage) != "screenshot" {
		t.Error("act phase did not attach the session's cached capture")
	}
	if provider.lastConfig.Model != "test-model" {
		t.Errorf("model = %q, want test-model", provider.lastConfig.Model)
	}
	if !strings.Contains(provider.prompts[1], "Notepad") || !strings.Contains(provider.prompts[1], "Save file") {
		t.Errorf("instruction prompt missing analysis context: %q", provider.prompts[1])
	}
}

func TestActIsRepeatable(t *testing.T) {
	provider := &scriptedProvider{replies: []string{analysisReply, instructionReply}}
	svc, _ := newTestService(provider, &fakeRecognizer{})

	session, err := svc.Analyze(context.Background(), []byte("screenshot"))
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}

	first, err := svc.Act(context.Background(), session.ID, "Save file")
	if err != nil {
		t.Fatalf("first Act() error = %v", err)
	}
	second, err := svc.Act(context.Background(), session.ID, "Save file")
	if err != nil {
		t.Fatalf("second Act() error = %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Errorf("repeated Act() differs:\nfirst:  %+v\nsecond: %+v", first, second)
	}
}

func TestActUnknownSession(t *testing.T) {
	provider := &scriptedProvider{replies: []string{instructionReply}}
	svc, _ := newTestService(provider, nil)

	_, err := svc.Act(context.Background(), "missing", "Save file")
	if !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("Act() error = %v, want ErrSessionNotFound", err)
	}
	if provider.calls != 0 {
		t.Error("model must not be called for an unknown session")
	}
}

func TestActTextOnlyFallback(t *testing.T) {
	provider := &scriptedProvider{replies: []string{instructionReply}}
	svc, store := newTestService(provider, &fakeRecognizer{words: []ocr.Word{
		{Text: "File", Left: 0, Top: 0, Width: 10, Height: 10},
	}})

	// A session whose capture is gone falls back to the text-only prompt.
	session := store.Put(nil, parseAnalysisFixture())

	steps, err := svc.Act(context.Background(), session.ID, "Save file")
	if err != nil {
		t.Fatalf("Act() error = %v", err)
	}
	if provider.textOnly != 1 || provider.imagesSent != 0 {
		t.Errorf("expected the text-only model call, got textOnly=%d imagesSent=%d", provider.textOnly, provider.imagesSent)
	}
	for i, step := range steps {
		if step.Coordinates != nil {
			t.Errorf("steps[%d].Coordinates = %v, want nil without a screenshot", i, step.Coordinates)
		}
	}
}

func TestActScansScreenshotOnce(t *testing.T) {
	provider := &scriptedProvider{replies: []string{analysisReply, instructionReply}}
	recognizer := &fakeRecognizer{words: []ocr.Word{
		{Text: "File", Left: 10, Top: 5, Width: 40, Height: 20},
		{Text: "Save As", Left: 10, Top: 40, Width: 60, Height: 20},
	}}
	svc, _ := newTestService(provider, recognizer)

	session, err := svc.Analyze(context.Background(), []byte("screenshot"))
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}

	steps, err := svc.Act(context.Background(), session.ID, "Save file")
	if err != nil {
		t.Fatalf("Act() error = %v", err)
	}
	if len(steps) != 2 {
		t.Fatalf("got %d steps, want 2", len(steps))
	}
	for i, step := range steps {
		if step.Coordinates == nil {
			t.Errorf("steps[%d].Coordinates = nil, want resolved point", i)
		}
	}
	if recognizer.calls != 1 {
		t.Errorf("Recognize called %d times, want 1 per Act regardless of step count", recognizer.calls)
	}
}

func TestAnalyzeModelFailure(t *testing.T) {
	provider := &scriptedProvider{err: errors.New("timeout")}
	svc, _ := newTestService(provider, nil)

	_, err := svc.Analyze(context.Background(), []byte("screenshot"))

	var mcErr *ModelCallError
	if !errors.As(err, &mcErr) {
		t.Fatalf("Analyze() error = %v, want *ModelCallError", err)
	}
	if mcErr.Phase != "analyze" {
		t.Errorf("Phase = %q, want analyze", mcErr.Phase)
	}
}

func TestActOCRFailureLeavesStepsUnresolved(t *testing.T) {
	provider := &scriptedProvider{replies: []string{analysisReply, instructionReply}}
	recognizer := &fakeRecognizer{err: &ocr.ImageReadError{Err: errors.New("corrupt image")}}
	svc, _ := newTestService(provider, recognizer)

	session, err := svc.Analyze(context.Background(), []byte("screenshot"))
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}

	steps, err := svc.Act(context.Background(), session.ID, "Save file")
	if err != nil {
		t.Fatalf("Act() must not fail on an OCR error, got %v", err)
	}
	if len(steps) != 2 {
		t.Fatalf("got %d steps, want 2", len(steps))
	}
	for i, step := range steps {
		if step.Coordinates != nil {
			t.Errorf("steps[%d].Coordinates = %v, want nil after OCR failure", i, step.Coordinates)
		}
	}
}

func TestAnalyzeWithUnparsableReply(t *testing.T) {
	provider := &scriptedProvider{replies: []string{"I cannot tell what program this is."}}
	svc, _ := newTestService(provider, nil)

	session, err := svc.Analyze(context.Background(), []byte("screenshot"))
	if err != nil {
		t.Fatalf("Analyze() error = %v, lenient parsing must not fail", err)
	}
	if session.Analysis.Name != nil || session.Analysis.Location != nil {
		t.Errorf("expected nil name/location, got %+v", session.Analysis)
	}
	if len(session.Analysis.Actions) != 0 {
		t.Errorf("Actions = %v, want empty", session.Analysis.Actions)
	}
}

func TestNewProviderFromEnv(t *testing.T) {
	t.Setenv("SCREENGUIDE_PROVIDER", "")
	t.Setenv("OPENAI_MODEL", "")
	t.Setenv("GEMINI_MODEL", "")

	_, model, err := NewProviderFromEnv("", "")
	if err != nil {
		t.Fatalf("NewProviderFromEnv() error = %v", err)
	}
	if model != "gpt-4o-mini" {
		t.Errorf("default model = %q, want gpt-4o-mini", model)
	}

	_, model, err = NewProviderFromEnv("gemini", "custom-model")
	if err != nil {
		t.Fatalf("NewProviderFromEnv(gemini) error = %v", err)
	}
	if model != "custom-model" {
		t.Errorf("model = %q, want custom-model", model)
	}

	if _, _, err := NewProviderFromEnv("mystery", ""); err == nil {
		t.Error("expected an error for an unsupported provider")
	}
}
