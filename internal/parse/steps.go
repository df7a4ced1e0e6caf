package parse

import (
	"regexp"
	"strings"

	"github.com/screenguide/screenguide/internal/models"
)

// Models are told not to number their instructions, but many do anyway.
// These characters are stripped from the front of every line.
const enumerationChars = "- 0123456789.\t"

var quotedRe = regexp.MustCompile(`"([^"]+)"`)

// ExtractSteps splits a multi-line instruction reply into discrete steps.
// Each non-empty line becomes one step, in the model's line order, with
// leading numbering/bullet noise stripped. Every substring the model wrapped
// in double quotes is captured as a UI element name; with an odd number of
// quotes only the fully paired substrings are kept. Coordinates are left nil
// for the orchestrator to resolve.
func ExtractSteps(reply string) []models.InstructionStep {
	steps := []models.InstructionStep{}

	for _, line := range strings.Split(reply, "\n") {
		text := strings.TrimSpace(strings.TrimLeft(line, enumerationChars))
		if text == "" {
			continue
		}

		elements := []string{}
		for _, m := range quotedRe.FindAllStringSubmatch(text, -1) {
			elements = append(elements, m[1])
		}

		steps = append(steps, models.InstructionStep{
			Text:           text,
			QuotedElements: elements,
		})
	}

	return steps
}
