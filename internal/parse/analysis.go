// Package parse extracts structured data from the free-text replies of the
// vision model. The model is untrusted prose: anything that does not match
// the expected template resolves to nil/empty values, never to an error.
package parse

import (
	"regexp"

	"github.com/screenguide/screenguide/internal/models"
)

// The analysis reply is expected to contain lines of the form
//
//	Name: "<program name>"
//	Location: "<location path>"
//	Action: "<action>"
//
// in any order. First match wins for Name and Location; every Action match
// is collected in order. Values cannot span lines: an unterminated quote
// leaves its line malformed instead of swallowing the next line's text.
var (
	nameRe     = regexp.MustCompile(`Name:\s*"([^"\n]+)"`)
	locationRe = regexp.MustCompile(`Location:\s*"([^"\n]+)"`)
	actionRe   = regexp.MustCompile(`Action:\s*"([^"\n]+)"`)
)

// ParseAnalysis pulls program name, location and the action list out of a raw
// model reply. Missing fields are nil (or an empty action list), not errors.
func ParseAnalysis(reply string) models.ProgramAnalysis {
	var analysis models.ProgramAnalysis

	if m := nameRe.FindStringSubmatch(reply); m != nil {
		analysis.Name = &m[1]
	}
	if m := locationRe.FindStringSubmatch(reply); m != nil {
		analysis.Location = &m[1]
	}

	actions := []string{}
	for _, m := range actionRe.FindAllStringSubmatch(reply, -1) {
		actions = append(actions, m[1])
	}
	analysis.Actions = actions

	return analysis
}
