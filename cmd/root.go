package cmd

import (
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "screenguide",
		Short: "Screen assistant that explains what is on screen and how to act on it",
		Long: `ScreenGuide looks at a screenshot with a vision-capable LLM, tells you what
program you are in and what you could do next, then turns a chosen action into
literal click-by-click instructions with on-screen coordinates resolved via OCR.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Load .env file if present (ignore errors)
			_ = godotenv.Load()
		},
	}

	// Add subcommands
	cmd.AddCommand(newServeCmd())
	cmd.AddCommand(newAnalyzeCmd())
	cmd.AddCommand(newLocateCmd())
	cmd.AddCommand(newEvalCmd())

	return cmd
}
