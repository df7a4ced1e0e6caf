package ocr

import (
	"context"
	"errors"
	"strings"

	"github.com/screenguide/screenguide/internal/models"
)

// ErrNoMatch is the expected outcome when no recognized region contains the
// query. Callers must treat it as a valid result, not a fault.
var ErrNoMatch = errors.New("ocr: no matching text region")

// Extra pixels added around the located element so the highlight ring does
// not hug the text.
const highlightPadding = 10

// Matcher picks the matching word for a query out of the recognized regions.
// It reports false when nothing matches.
type Matcher func(query string, words []Word) (Word, bool)

// SubstringMatcher accepts the first region whose recognized text contains
// the query, case-insensitively. Deliberately permissive: partial-word
// matches count, which tolerates OCR noise at the cost of precision.
func SubstringMatcher(query string, words []Word) (Word, bool) {
	q := strings.ToLower(query)
	for _, w := range words {
		if strings.TrimSpace(w.Text) == "" {
			continue
		}
		if strings.Contains(strings.ToLower(w.Text), q) {
			return w, true
		}
	}
	return Word{}, false
}

// ExactFirstMatcher prefers an exact case-insensitive match and falls back to
// substring containment only when no region matches exactly.
func ExactFirstMatcher(query string, words []Word) (Word, bool) {
	q := strings.ToLower(query)
	for _, w := range words {
		if strings.ToLower(strings.TrimSpace(w.Text)) == q {
			return w, true
		}
	}
	return SubstringMatcher(query, words)
}

// Locator resolves a UI element name to a highlight point on a screenshot.
type Locator struct {
	recognizer Recognizer
	matcher    Matcher
}

// NewLocator returns a Locator using the default substring matching policy.
func NewLocator(recognizer Recognizer) *Locator {
	return &Locator{recognizer: recognizer, matcher: SubstringMatcher}
}

// WithMatcher replaces the matching policy.
func (l *Locator) WithMatcher(m Matcher) *Locator {
	l.matcher = m
	return l
}

// Scan runs a single OCR pass over the image and returns the recognized
// regions. Callers resolving several queries against the same screenshot
// should Scan once and Match per query. Returns an *ImageReadError when the
// image itself cannot be processed.
func (l *Locator) Scan(ctx context.Context, image []byte) ([]Word, error) {
	words, err := l.recognizer.Recognize(ctx, image)
	if err != nil {
		var imgErr *ImageReadError
		if errors.As(err, &imgErr) {
			return nil, err
		}
		return nil, &ImageReadError{Err: err}
	}
	return words, nil
}

// Match returns the center point and highlight radius of the first region in
// words matching query, or ErrNoMatch when nothing matches.
func (l *Locator) Match(query string, words []Word) (models.Point, error) {
	word, ok := l.matcher(query, words)
	if !ok {
		return models.Point{}, ErrNoMatch
	}

	radius := word.Width
	if word.Height > radius {
		radius = word.Height
	}

	return models.Point{
		X:      word.Left + word.Width/2,
		Y:      word.Top + word.Height/2,
		Radius: radius/2 + highlightPadding,
	}, nil
}

// Locate runs OCR over the image and returns the highlight point of the first
// region matching query. Convenience for single-query callers; equivalent to
// Scan followed by Match.
func (l *Locator) Locate(ctx context.Context, image []byte, query string) (models.Point, error) {
	words, err := l.Scan(ctx, image)
	if err != nil {
		return models.Point{}, err
	}
	return l.Match(query, words)
}
