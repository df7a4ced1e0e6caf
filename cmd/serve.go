package cmd

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/screenguide/screenguide/internal/guide"
	"github.com/screenguide/screenguide/internal/handlers"
	"github.com/screenguide/screenguide/internal/ocr"
	"github.com/screenguide/screenguide/internal/storage"
	"github.com/spf13/cobra"
)

func newServeCmd() *cobra.Command {
	var port string
	var providerName string
	var model string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the screen assistant API server",
		Long: `Starts the ScreenGuide HTTP API on the specified port.

Clients POST a screenshot to /api/analyze to learn which program is shown,
where the user is, and what they could do next. Picking an action via
/api/sessions/{id}/act returns step-by-step instructions with on-screen
coordinates resolved through OCR.`,
		Example: `  # Start server on default port 8888
  screenguide serve

  # Start server on custom port with Gemini
  screenguide serve --port 3000 --provider gemini`,
		RunE: func(cmd *cobra.Command, args []string) error {
			provider, model, err := guide.NewProviderFromEnv(providerName, model)
			if err != nil {
				return err
			}

			store := storage.New()
			locator := ocr.NewLocator(ocr.NewTesseractRecognizer())
			service := guide.NewService(provider, store, locator, model)
			handler := handlers.New(store, service)

			// Set up routes
			mux := http.NewServeMux()
			mux.HandleFunc("/api/analyze", handler.HandleAnalyze)
			mux.HandleFunc("/api/sessions", handler.HandleSessions)
			mux.HandleFunc("/api/sessions/", handler.HandleSessionDetail)
			mux.HandleFunc("/healthcheck", func(w http.ResponseWriter, r *http.Request) {
				if _, err := w.Write([]byte("OK")); err != nil {
					slog.Error("Unable to write healthcheck", "err", err)
				}
			})

			addr := ":" + port
			server := &http.Server{
				Addr:    addr,
				Handler: mux,
			}

			// Start server in goroutine
			serverErr := make(chan error, 1)
			go func() {
				slog.Info("ScreenGuide API available", "addr", addr, "url", "http://localhost"+addr, "model", model)
				if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					serverErr <- err
				}
			}()

			// Wait for context cancellation (Ctrl+C) or server error
			select {
			case <-cmd.Context().Done():
				slog.Info("Shutting down server...")
				// Give server 5 seconds to shut down gracefully
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := server.Shutdown(shutdownCtx); err != nil {
					slog.Error("Server shutdown failed", "err", err)
					return err
				}
				slog.Info("Server stopped")
				return nil
			case err := <-serverErr:
				return err
			}
		},
	}

	cmd.Flags().StringVarP(&port, "port", "p", "8888", "Port to listen on")
	cmd.Flags().StringVar(&providerName, "provider", "", "LLM provider: openai, ollama or gemini (default from SCREENGUIDE_PROVIDER)")
	cmd.Flags().StringVar(&model, "model", "", "Model name (defaults per provider)")

	return cmd
}
