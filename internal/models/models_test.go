package models

import (
	"bytes"
	"encoding/json"
	"image"
	"image/png"
	"testing"
)

func TestNewScreenCapture(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 320, 200))
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode fixture: %v", err)
	}

	capture := NewScreenCapture(buf.Bytes())

	if capture.Width != 320 || capture.Height != 200 {
		t.Errorf("dimensions = %dx%d, want 320x200", capture.Width, capture.Height)
	}
	if !bytes.Equal(capture.Data, buf.Bytes()) {
		t.Error("capture does not own the original bytes")
	}
}

func TestNewScreenCaptureUndecodable(t *testing.T) {
	capture := NewScreenCapture([]byte("not an image"))

	if capture.Width != 0 || capture.Height != 0 {
		t.Errorf("dimensions = %dx%d, want 0x0 for undecodable input", capture.Width, capture.Height)
	}
	if len(capture.Data) == 0 {
		t.Error("capture must still hold the opaque payload")
	}
}

func TestInstructionStepJSONNullCoordinates(t *testing.T) {
	step := InstructionStep{Text: "Press Ctrl+S", QuotedElements: []string{}}

	data, err := json.Marshal(step)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if !bytes.Contains(data, []byte(`"coordinates":null`)) {
		t.Errorf("unresolved coordinates must serialize as null, got %s", data)
	}
}

func TestProgramAnalysisJSONNullFields(t *testing.T) {
	data, err := json.Marshal(ProgramAnalysis{Actions: []string{}})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	for _, want := range []string{`"name":null`, `"location":null`, `"actions":[]`} {
		if !bytes.Contains(data, []byte(want)) {
			t.Errorf("serialized analysis missing %s: %s", want, data)
		}
	}
}
