// Package godive decodes raw memory dumps retrieved from dive
// computers into summary fields and a time-ordered sample stream.
package godive

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"
	"unicode"

	"github.com/godivelog/godive/internal/divelog"
	"github.com/godivelog/godive/internal/driver"
	_ "github.com/godivelog/godive/internal/driver/cressigoa" // register driver
)

// Sample is re-exported so consumers need only this package.
type Sample = divelog.Sample

// Result captures the outcome of a decoded dive dump.
type Result struct {
	Driver    string
	RawHex    string
	ByteCount int
	Fields    map[string]any
	Samples   []Sample
}

// String renders a human-readable summary of the result. The sample
// stream is summarised by its length; iterate Samples for the events.
func (r Result) String() string {
	summary := map[string]any{
		"driver":       r.Driver,
		"byte_count":   r.ByteCount,
		"sample_count": len(r.Samples),
	}
	if len(r.Fields) > 0 {
		summary["fields"] = r.Fields
	}
	data, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return fmt.Sprintf("driver: %s bytes:%d (marshal error: %v)", r.Driver, r.ByteCount, err)
	}
	return string(data)
}

// AnalyzeHex decodes a hex-encoded dump, selects a driver, and
// returns the decoded dive.
func AnalyzeHex(ctx context.Context, raw string) (Result, error) {
	return AnalyzeHexWithOptions(ctx, raw, AnalyzeOptions{})
}

// AnalyzeHexWithOptions decodes a hex-encoded dump with custom options.
func AnalyzeHexWithOptions(ctx context.Context, raw string, opts AnalyzeOptions) (Result, error) {
	data, err := decodeHex(raw)
	if err != nil {
		return Result{}, err
	}
	result, err := Analyze(ctx, data, opts)
	result.RawHex = strings.ToUpper(stripWhitespace(raw))
	return result, err
}

// Analyze selects a driver for the raw dump and decodes it. When no
// driver detects the dump the result keeps Driver "unknown" and no
// error is returned; a forced family that is not registered is an
// error.
func Analyze(ctx context.Context, data []byte, opts AnalyzeOptions) (Result, error) {
	ctx = opts.toInternal(ctx)

	result := Result{
		Driver:    "unknown",
		ByteCount: len(data),
	}

	var (
		drv driver.Driver
		err error
	)
	if opts.Family != "" {
		drv, err = driver.LookupFamily(opts.Family)
		if err != nil {
			return result, err
		}
	} else {
		drv, err = driver.Lookup(data)
		if err != nil {
			return result, nil
		}
	}

	fields, samples, err := drv.Process(ctx, data)
	if err != nil {
		return result, err
	}
	result.Driver = drv.Name()
	result.Fields = fields
	result.Samples = samples
	return result, nil
}

func decodeHex(input string) ([]byte, error) {
	clean := stripWhitespace(input)
	if strings.HasPrefix(clean, "0X") || strings.HasPrefix(clean, "0x") {
		clean = clean[2:]
	}
	if len(clean)%2 != 0 {
		return nil, fmt.Errorf("hex dump must contain an even number of digits, got %d", len(clean))
	}
	decoded := make([]byte, len(clean)/2)
	if _, err := hex.Decode(decoded, []byte(clean)); err != nil {
		return nil, fmt.Errorf("decode hex: %w", err)
	}
	return decoded, nil
}

func stripWhitespace(s string) string {
	builder := strings.Builder{}
	builder.Grow(len(s))
	for _, r := range s {
		if unicode.IsSpace(r) || r == '|' || r == '_' {
			continue
		}
		builder.WriteRune(r)
	}
	return builder.String()
}
