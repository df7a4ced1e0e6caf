package ocr

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"strconv"
	"strings"
)

// TesseractRecognizer shells out to the tesseract binary and parses its TSV
// output. The binary path comes from TESSERACT_CMD, defaulting to whatever
// "tesseract" resolves to on PATH.
type TesseractRecognizer struct {
	cmd string
}

// NewTesseractRecognizer builds a recognizer from the environment.
func NewTesseractRecognizer() *TesseractRecognizer {
	cmd := os.Getenv("TESSERACT_CMD")
	if cmd == "" {
		cmd = "tesseract"
	}
	return &TesseractRecognizer{cmd: cmd}
}

// Recognize runs a full-image OCR pass. Any failure of the engine itself is
// reported as an *ImageReadError.
func (t *TesseractRecognizer) Recognize(ctx context.Context, image []byte) ([]Word, error) {
	cmd := exec.CommandContext(ctx, t.cmd, "stdin", "stdout", "tsv")
	cmd.Stdin = bytes.NewReader(image)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return nil, &ImageReadError{Err: fmt.Errorf("tesseract: %w: %s", err, strings.TrimSpace(stderr.String()))}
	}

	words := parseTSV(stdout.String())
	slog.Debug("OCR pass complete", "words", len(words))
	return words, nil
}

// Tesseract TSV rows at this level are individual words; lower levels are
// pages, blocks, paragraphs and lines.
const tsvWordLevel = 5

// parseTSV extracts word boxes from tesseract's TSV output. The expected
// columns are: level page_num block_num par_num line_num word_num left top
// width height conf text. Rows that do not fit are skipped.
func parseTSV(output string) []Word {
	var words []Word

	lines := strings.Split(output, "\n")
	for i, line := range lines {
		if i == 0 {
			continue // header row
		}
		fields := strings.Split(line, "\t")
		if len(fields) < 12 {
			continue
		}

		level, err := strconv.Atoi(fields[0])
		if err != nil || level != tsvWordLevel {
			continue
		}

		text := strings.TrimSpace(fields[11])
		if text == "" {
			continue
		}

		left, err1 := strconv.Atoi(fields[6])
		top, err2 := strconv.Atoi(fields[7])
		width, err3 := strconv.Atoi(fields[8])
		height, err4 := strconv.Atoi(fields[9])
		if err1 != nil || err2 != nil || err3 != nil || err4 != nil {
			continue
		}

		words = append(words, Word{
			Text:   text,
			Left:   left,
			Top:    top,
			Width:  width,
			Height: height,
		})
	}

	return words
}
