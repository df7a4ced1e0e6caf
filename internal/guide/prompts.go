package guide

import (
	"strings"
	"text/template"
)

// The prompts below are the other half of the contract implemented by
// internal/parse: the analysis prompt dictates the Name:/Location:/Action:
// template the parser matches, and the instruction prompts dictate the
// one-step-per-line, element-names-in-quotes format the extractor splits.
// Tests in prompts_test.go keep the two sides from drifting apart.

const analysisPrompt = `You are a UI expert looking at a screenshot of some desktop program.

Respond in exactly this format:
Name: "put here the name of the program"
Location: "put here the current location within the program shown on the screenshot. For example: home_page -> settings"
then the top 5 possible actions the user could perform next, each on its own line in the format:
Action: "the action"

Strictly follow the quoting in the response template.
No explanations, no extra text.`

var instructionTmpl = template.Must(template.New("instructions").Parse(
	`You are a UI expert analyzing a screenshot of {{.Program}}.

Current location: {{.Location}}
Required action: {{.Action}}

Based on the visible UI elements in the screenshot, provide a step-by-step instruction to complete this action.

IMPORTANT:
- One action/click per line
- Wrap the exact name of every button, menu item or field in double quotes, exactly as it appears in the UI
- Include typing instructions if text input is needed (e.g. Type "filename" in the "File name" field)
- Use imperative form (Click, Type, Select, etc.)
- Do NOT include explanations, step numbers or bullet points
- Start directly with the first action

Example format:
Click "File" menu
Click "Save As"
Type "document_name" in the "File name" field
Select "PDF" from the format dropdown
Click "Save"`))

var instructionTextOnlyTmpl = template.Must(template.New("instructions_text_only").Parse(
	`You are a UI expert. Generate step-by-step instructions for completing this action.

Program: {{.Program}}
Current location: {{.Location}}
Action needed: {{.Action}}

Provide clear, precise instructions:
- One action per line
- Wrap the exact name of every button, menu item or field in double quotes
- Use imperative form (Click, Type, Select, etc.)
- Do NOT include explanations, numbers or bullet points

Start directly with the first action.`))

type promptContext struct {
	Program  string
	Location string
	Action   string
}

// orUnknown substitutes a placeholder when the analysis phase could not
// determine a field; the model still produces usable instructions from the
// action text alone.
func orUnknown(s *string, placeholder string) string {
	if s == nil || *s == "" {
		return placeholder
	}
	return *s
}

func buildInstructionPrompt(name, location *string, action string, withScreenshot bool) (string, error) {
	pctx := promptContext{
		Program:  orUnknown(name, "an unknown program"),
		Location: orUnknown(location, "unknown"),
		Action:   action,
	}

	tmpl := instructionTextOnlyTmpl
	if withScreenshot {
		tmpl = instructionTmpl
	}

	var sb strings.Builder
	if err := tmpl.Execute(&sb, pctx); err != nil {
		return "", err
	}
	return sb.String(), nil
}
