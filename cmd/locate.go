package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/screenguide/screenguide/internal/models"
	"github.com/screenguide/screenguide/internal/ocr"
	"github.com/screenguide/screenguide/internal/output"
	"github.com/screenguide/screenguide/internal/overlay"
	"github.com/spf13/cobra"
)

// locateResult is the CLI output of the locate command.
type locateResult struct {
	Query string        `yaml:"query"            json:"query"`
	Found bool          `yaml:"found"            json:"found"`
	Point *models.Point `yaml:"point,omitempty"  json:"point,omitempty"`
	Mark  string        `yaml:"mark,omitempty"   json:"mark,omitempty"`
}

func newLocateCmd() *cobra.Command {
	var imagePath string
	var query string
	var markPath string
	var exactFirst bool
	var format string

	cmd := &cobra.Command{
		Use:   "locate",
		Short: "Find a text element on a screenshot via OCR",
		Long: `Runs OCR over a screenshot and reports the center point and highlight
radius of the first text region containing the query. A missing element is a
normal outcome, reported as found: false.`,
		Example: `  # Where is the Save button?
  screenguide locate --image shot.png --query Save

  # Write a marked copy of the screenshot
  screenguide locate --image shot.png --query Save --mark marked.png`,
		RunE: func(cmd *cobra.Command, args []string) error {
			imageData, err := os.ReadFile(imagePath)
			if err != nil {
				return fmt.Errorf("read image: %w", err)
			}

			locator := ocr.NewLocator(ocr.NewTesseractRecognizer())
			if exactFirst {
				locator = locator.WithMatcher(ocr.ExactFirstMatcher)
			}

			result := locateResult{Query: query}

			point, err := locator.Locate(cmd.Context(), imageData, query)
			switch {
			case errors.Is(err, ocr.ErrNoMatch):
				// found stays false
			case err != nil:
				return err
			default:
				result.Found = true
				result.Point = &point

				if markPath != "" {
					marked, err := overlay.MarkPoint(imageData, point)
					if err != nil {
						return err
					}
					if err := os.WriteFile(markPath, marked, 0644); err != nil {
						return fmt.Errorf("write marked image: %w", err)
					}
					result.Mark = markPath
				}
			}

			return output.Print(output.Format(format), result)
		},
	}

	cmd.Flags().StringVarP(&imagePath, "image", "i", "", "Path to the screenshot")
	cmd.Flags().StringVarP(&query, "query", "q", "", "Text to locate (case-insensitive substring)")
	cmd.Flags().StringVar(&markPath, "mark", "", "Write a copy of the screenshot with the highlight ring to this path")
	cmd.Flags().BoolVar(&exactFirst, "exact-first", false, "Prefer exact matches before substring containment")
	cmd.Flags().StringVarP(&format, "format", "f", "yaml", "Output format: yaml or json")
	_ = cmd.MarkFlagRequired("image")
	_ = cmd.MarkFlagRequired("query")

	return cmd
}
