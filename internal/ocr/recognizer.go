// Package ocr locates text on a screenshot so the UI can draw a highlight at
// the right spot. Recognition itself is delegated to a Recognizer; this
// package owns the matching policy and the center/radius geometry.
package ocr

import (
	"context"
	"fmt"
)

// Word is one recognized text region with its bounding box in pixels.
type Word struct {
	Text   string
	Left   int
	Top    int
	Width  int
	Height int
}

// Recognizer runs a full-image OCR pass.
type Recognizer interface {
	Recognize(ctx context.Context, image []byte) ([]Word, error)
}

// ImageReadError means the recognition engine could not process the image at
// all (corrupt file, unreadable format). It is distinct from a query simply
// not matching any region, which is ErrNoMatch.
type ImageReadError struct {
	Err error
}

func (e *ImageReadError) Error() string {
	return fmt.Sprintf("ocr: cannot read image: %v", e.Err)
}

func (e *ImageReadError) Unwrap() error {
	return e.Err
}
