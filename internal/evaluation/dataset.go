// Package evaluation scores the structured-text contract against recorded
// model replies. Prompt wording drifts over time; replaying a dataset of real
// replies through the parser shows whether the contract still holds before it
// breaks at runtime.
package evaluation

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Case is one recorded model reply with the fields a correct parse extracts.
type Case struct {
	Name     string   `yaml:"name"`
	Reply    string   `yaml:"reply"`
	Expected Expected `yaml:"expected"`
}

// Expected is the ground truth for one case. An empty Name/Location means the
// parser is expected to return nil for that field.
type Expected struct {
	Name     string   `yaml:"name"`
	Location string   `yaml:"location"`
	Actions  []string `yaml:"actions"`
}

// Dataset is a yaml file of analysis-reply cases, optionally with
// instruction-reply cases alongside.
type Dataset struct {
	Cases     []Case     `yaml:"cases"`
	StepCases []StepCase `yaml:"step_cases"`
}

// LoadDataset reads and validates a dataset file.
func LoadDataset(path string) (*Dataset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read dataset: %w", err)
	}

	var ds Dataset
	if err := yaml.Unmarshal(data, &ds); err != nil {
		return nil, fmt.Errorf("parse dataset: %w", err)
	}

	if len(ds.Cases) == 0 && len(ds.StepCases) == 0 {
		return nil, fmt.Errorf("dataset %s contains no cases", path)
	}
	for i, c := range ds.Cases {
		if c.Reply == "" {
			return nil, fmt.Errorf("case %d (%s) has an empty reply", i, c.Name)
		}
	}
	for i, c := range ds.StepCases {
		if c.Reply == "" {
			return nil, fmt.Errorf("step case %d (%s) has an empty reply", i, c.Name)
		}
	}

	return &ds, nil
}
