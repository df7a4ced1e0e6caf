package models

import (
	"bytes"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"log/slog"
	"time"
)

// ScreenCapture is an immutable screenshot buffer plus its pixel dimensions.
// The buffer is shared between the model call and the OCR pass and must not
// be modified after creation.
type ScreenCapture struct {
	Data   []byte `json:"-"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// NewScreenCapture wraps raw image bytes, recording the pixel dimensions.
// Dimensions stay zero when the image header cannot be decoded; the capture
// itself is still usable as an opaque payload for the model call.
func NewScreenCapture(data []byte) *ScreenCapture {
	capture := &ScreenCapture{Data: data}

	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		slog.Warn("Failed to decode image dimensions", "error", err)
		return capture
	}

	capture.Width = cfg.Width
	capture.Height = cfg.Height
	return capture
}

// ProgramAnalysis is what the vision model said about one screenshot: the
// program shown, where the user currently is within it, and a short list of
// plausible next actions. Name and Location are nil when the model reply did
// not contain them. Actions preserve the model's order, duplicates included.
type ProgramAnalysis struct {
	Name     *string  `json:"name"`
	Location *string  `json:"location"`
	Actions  []string `json:"actions"`
}

// Session binds one analyzed screenshot to its derived ProgramAnalysis.
// Sessions are immutable once stored; re-analyzing the same physical screen
// produces a new Session with a new ID.
type Session struct {
	ID        string          `json:"id"`
	Capture   *ScreenCapture  `json:"capture,omitempty"`
	Analysis  ProgramAnalysis `json:"analysis"`
	CreatedAt time.Time       `json:"created_at"`
}

// Point is a highlight target on the screenshot: the center of a located UI
// element plus the radius of the ring to draw around it.
type Point struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Radius int `json:"radius"`
}

// InstructionStep is one line of a generated instruction sequence.
// QuotedElements holds every UI element name the model wrapped in double
// quotes, in appearance order. Coordinates is resolved from the first quoted
// element via OCR; nil means unresolved (no screenshot, or no OCR match).
type InstructionStep struct {
	Text           string   `json:"text"`
	QuotedElements []string `json:"quoted_elements"`
	Coordinates    *Point   `json:"coordinates"`
}
