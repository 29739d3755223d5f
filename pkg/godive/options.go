package godive

import (
	"context"

	"github.com/sirupsen/logrus"

	internalopts "github.com/godivelog/godive/internal/options"
)

// AnalyzeOptions configures decoding.
type AnalyzeOptions struct {
	// Family forces a specific driver instead of probing.
	Family string
	// Logger receives human-readable diagnostics from the drivers.
	// Decoding stays silent when nil.
	Logger *logrus.Entry
}

func (opts AnalyzeOptions) toInternal(ctx context.Context) context.Context {
	return internalopts.WithLogger(ctx, opts.Logger)
}
