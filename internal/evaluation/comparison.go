package evaluation

import (
	"github.com/screenguide/screenguide/internal/models"
	"github.com/screenguide/screenguide/internal/parse"
)

// CaseResult is the per-case outcome of a dataset run.
type CaseResult struct {
	Name        string  `yaml:"name"          json:"name"`
	Score       float64 `yaml:"score"         json:"score"`
	NameOK      bool    `yaml:"name_ok"       json:"name_ok"`
	LocationOK  bool    `yaml:"location_ok"   json:"location_ok"`
	ActionScore float64 `yaml:"action_score"  json:"action_score"`
}

// StepCaseResult is the per-case outcome for an instruction reply.
type StepCaseResult struct {
	Name  string  `yaml:"name"  json:"name"`
	Score float64 `yaml:"score" json:"score"`
}

// Report aggregates a dataset run.
type Report struct {
	Cases        []CaseResult     `yaml:"cases"                json:"cases"`
	StepCases    []StepCaseResult `yaml:"step_cases,omitempty" json:"step_cases,omitempty"`
	AverageScore float64          `yaml:"average_score"        json:"average_score"`
	Passed       int              `yaml:"passed"               json:"passed"`
	Total        int              `yaml:"total"                json:"total"`
}

// Field weights: the action list carries the most signal, because it drives
// what the user is offered next.
const (
	nameWeight     = 0.3
	locationWeight = 0.2
	actionWeight   = 0.5
)

// A case passes when every field parsed exactly.
const passScore = 1.0

// Run replays every case's reply through the parser and scores the result
// against the expected fields.
func Run(ds *Dataset) *Report {
	report := &Report{Cases: make([]CaseResult, 0, len(ds.Cases))}

	var sum float64
	for _, c := range ds.Cases {
		result := scoreCase(c)
		report.Cases = append(report.Cases, result)
		sum += result.Score
		if result.Score >= passScore {
			report.Passed++
		}
	}
	for _, c := range ds.StepCases {
		score := ScoreSteps(c)
		report.StepCases = append(report.StepCases, StepCaseResult{Name: c.Name, Score: score})
		sum += score
		if score >= passScore {
			report.Passed++
		}
	}

	report.Total = len(ds.Cases) + len(ds.StepCases)
	if report.Total > 0 {
		report.AverageScore = sum / float64(report.Total)
	}
	return report
}

func scoreCase(c Case) CaseResult {
	analysis := parse.ParseAnalysis(c.Reply)

	result := CaseResult{
		Name:        c.Name,
		NameOK:      fieldMatches(analysis.Name, c.Expected.Name),
		LocationOK:  fieldMatches(analysis.Location, c.Expected.Location),
		ActionScore: actionListScore(analysis.Actions, c.Expected.Actions),
	}

	if result.NameOK {
		result.Score += nameWeight
	}
	if result.LocationOK {
		result.Score += locationWeight
	}
	result.Score += actionWeight * result.ActionScore

	return result
}

// fieldMatches treats an empty expectation as "the parser must return nil".
func fieldMatches(got *string, want string) bool {
	if want == "" {
		return got == nil
	}
	return got != nil && *got == want
}

// actionListScore is the fraction of expected actions found at the right
// position; order matters because it is the order shown to the user.
func actionListScore(got, want []string) float64 {
	if len(want) == 0 {
		if len(got) == 0 {
			return 1.0
		}
		return 0.0
	}

	matched := 0
	for i, action := range want {
		if i < len(got) && got[i] == action {
			matched++
		}
	}

	score := float64(matched) / float64(len(want))
	if len(got) > len(want) {
		// Extra parsed actions dilute the score.
		score *= float64(len(want)) / float64(len(got))
	}
	return score
}

// Steps evaluation: the same idea applied to instruction replies.

// StepCase is one recorded instruction reply with its expected extraction.
type StepCase struct {
	Name     string     `yaml:"name"`
	Reply    string     `yaml:"reply"`
	Expected []StepSpec `yaml:"expected"`
}

// StepSpec is one expected instruction step.
type StepSpec struct {
	Text     string   `yaml:"text"`
	Elements []string `yaml:"elements"`
}

// ScoreSteps reports the fraction of expected steps that the extractor
// reproduced exactly (text and quoted elements, in order).
func ScoreSteps(c StepCase) float64 {
	steps := parse.ExtractSteps(c.Reply)
	if len(c.Expected) == 0 {
		if len(steps) == 0 {
			return 1.0
		}
		return 0.0
	}

	matched := 0
	for i, want := range c.Expected {
		if i >= len(steps) {
			break
		}
		if stepMatches(steps[i], want) {
			matched++
		}
	}

	score := float64(matched) / float64(len(c.Expected))
	if len(steps) > len(c.Expected) {
		score *= float64(len(c.Expected)) / float64(len(steps))
	}
	return score
}

func stepMatches(got models.InstructionStep, want StepSpec) bool {
	if got.Text != want.Text {
		return false
	}
	if len(got.QuotedElements) != len(want.Elements) {
		return false
	}
	for i, el := range want.Elements {
		if got.QuotedElements[i] != el {
			return false
		}
	}
	return true
}
