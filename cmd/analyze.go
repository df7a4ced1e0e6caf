package cmd

import (
	"fmt"
	"os"

	"github.com/screenguide/screenguide/internal/capture"
	"github.com/screenguide/screenguide/internal/guide"
	"github.com/screenguide/screenguide/internal/models"
	"github.com/screenguide/screenguide/internal/ocr"
	"github.com/screenguide/screenguide/internal/output"
	"github.com/screenguide/screenguide/internal/storage"
	"github.com/spf13/cobra"
)

// analyzeResult is the CLI output of the analyze command.
type analyzeResult struct {
	SessionID string                   `yaml:"session_id" json:"session_id"`
	Name      *string                  `yaml:"name"       json:"name"`
	Location  *string                  `yaml:"location"   json:"location"`
	Actions   []string                 `yaml:"actions"    json:"actions"`
	Action    string                   `yaml:"action,omitempty" json:"action,omitempty"`
	Steps     []models.InstructionStep `yaml:"steps,omitempty"  json:"steps,omitempty"`
	Saved     string                   `yaml:"saved,omitempty"  json:"saved,omitempty"`
}

func newAnalyzeCmd() *cobra.Command {
	var imagePath string
	var action string
	var providerName string
	var model string
	var format string
	var screenshotsDir string

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Analyze a screenshot and optionally generate instructions for one action",
		Long: `Runs phase 1 of the pipeline against a screenshot: what program is shown,
where the user currently is, and the top plausible next actions.

With --image the screenshot is read from a file; without it the primary
display is captured and saved under the screenshots directory. With --action
the command continues straight into phase 2 and prints the instruction steps
with resolved coordinates.`,
		Example: `  # Capture the screen and describe it
  screenguide analyze

  # Analyze a saved screenshot and get instructions for an action
  screenguide analyze --image shot.png --action "Save file" --format json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			var imageData []byte
			var savedPath string
			var err error

			if imagePath != "" {
				imageData, err = os.ReadFile(imagePath)
				if err != nil {
					return fmt.Errorf("read image: %w", err)
				}
			} else {
				imageData, err = capture.New().Capture(cmd.Context())
				if err != nil {
					return err
				}
				savedPath, err = capture.SaveToDir(screenshotsDir, imageData)
				if err != nil {
					return err
				}
			}

			provider, model, err := guide.NewProviderFromEnv(providerName, model)
			if err != nil {
				return err
			}

			store := storage.New()
			locator := ocr.NewLocator(ocr.NewTesseractRecognizer())
			service := guide.NewService(provider, store, locator, model)

			session, err := service.Analyze(cmd.Context(), imageData)
			if err != nil {
				return err
			}

			result := analyzeResult{
				SessionID: session.ID,
				Name:      session.Analysis.Name,
				Location:  session.Analysis.Location,
				Actions:   session.Analysis.Actions,
				Saved:     savedPath,
			}

			if action != "" {
				steps, err := service.Act(cmd.Context(), session.ID, action)
				if err != nil {
					return err
				}
				result.Action = action
				result.Steps = steps
			}

			return output.Print(output.Format(format), result)
		},
	}

	cmd.Flags().StringVarP(&imagePath, "image", "i", "", "Path to a screenshot (captures the primary display when omitted)")
	cmd.Flags().StringVarP(&action, "action", "a", "", "Action to generate instructions for after analysis")
	cmd.Flags().StringVar(&providerName, "provider", "", "LLM provider: openai, ollama or gemini")
	cmd.Flags().StringVar(&model, "model", "", "Model name (defaults per provider)")
	cmd.Flags().StringVarP(&format, "format", "f", "yaml", "Output format: yaml or json")
	cmd.Flags().StringVar(&screenshotsDir, "screenshots-dir", "screenshots", "Directory for captured screenshots")

	return cmd
}
