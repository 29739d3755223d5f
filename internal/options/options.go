package options

import (
	"context"
	"io"

	"github.com/sirupsen/logrus"
)

type loggerKey struct{}

// WithLogger stores the diagnostic logger inside the context. Drivers
// report decoding problems through it before returning an error.
func WithLogger(ctx context.Context, log *logrus.Entry) context.Context {
	if log == nil {
		return ctx
	}
	return context.WithValue(ctx, loggerKey{}, log)
}

// Logger retrieves the diagnostic logger from context, falling back to
// a silent one so library code never has to nil-check.
func Logger(ctx context.Context) *logrus.Entry {
	if v := ctx.Value(loggerKey{}); v != nil {
		if log, ok := v.(*logrus.Entry); ok {
			return log
		}
	}
	return discard
}

var discard = func() *logrus.Entry {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return logrus.NewEntry(log)
}()
