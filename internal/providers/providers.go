package providers

import (
	"context"
)

// Config represents the configuration for an LLM provider
type Config struct {
	Model       string
	Temperature float64
	Prompt      string
}

// Provider defines the interface for a vision-capable LLM provider.
// Complete is the text-only variant used when no screenshot is available.
type Provider interface {
	Complete(ctx context.Context, config Config) (string, error)
	CompleteWithImage(ctx context.Context, config Config, image []byte) (string, error)
}
