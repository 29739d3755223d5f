package godive

import (
	"context"
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/godivelog/godive/internal/divelog"
	"github.com/godivelog/godive/internal/testutil"
)

func TestCressiGoaGolden(t *testing.T) {
	fixtures := []string{
		"scuba_two_mixes",
		"freedive_short",
	}
	for _, name := range fixtures {
		t.Run(name, func(t *testing.T) {
			hexStr := testutil.LoadHex(t, "cressigoa/"+name+".hex")
			result, err := AnalyzeHex(context.Background(), hexStr)
			require.NoError(t, err)
			require.Equal(t, "cressi_goa", result.Driver)

			var expected map[string]any
			testutil.LoadJSON(t, "cressigoa/"+name+".json", &expected)
			require.Equal(t, "", diffMaps(expected, result.Fields))
		})
	}
}

func TestCressiGoaGoldenSamples(t *testing.T) {
	hexStr := testutil.LoadHex(t, "cressigoa/scuba_two_mixes.hex")
	result, err := AnalyzeHex(context.Background(), hexStr)
	require.NoError(t, err)

	want := []Sample{
		{Type: divelog.SampleTime, Time: 5000},
		{Type: divelog.SampleTemperature, Temperature: 18.5},
		{Type: divelog.SampleDepth, Depth: 15.0},
		{Type: divelog.SampleGasMix, Mix: 0},
		{Type: divelog.SampleTime, Time: 10000},
		{Type: divelog.SampleDepth, Depth: 30.0},
		{Type: divelog.SampleTime, Time: 15000},
		{Type: divelog.SampleDepth, Depth: 14.0},
		{Type: divelog.SampleGasMix, Mix: 1},
		{Type: divelog.SampleTime, Time: 20000},
		{Type: divelog.SampleDepth, Depth: 0.0},
		{Type: divelog.SampleTime, Time: 27000},
		{Type: divelog.SampleDepth, Depth: 0.0},
		{Type: divelog.SampleTime, Time: 32000},
		{Type: divelog.SampleDepth, Depth: 5.0},
		{Type: divelog.SampleGasMix, Mix: 0},
	}
	require.Equal(t, want, result.Samples)

	// Time samples must be non-decreasing.
	last := uint32(0)
	for _, s := range result.Samples {
		if s.Type != divelog.SampleTime {
			continue
		}
		require.GreaterOrEqual(t, s.Time, last)
		last = s.Time
	}
}

func TestCressiGoaGoldenFreediveSamples(t *testing.T) {
	hexStr := testutil.LoadHex(t, "cressigoa/freedive_short.hex")
	result, err := AnalyzeHex(context.Background(), hexStr)
	require.NoError(t, err)

	want := []Sample{
		{Type: divelog.SampleTime, Time: 2000},
		{Type: divelog.SampleDepth, Depth: 5.0},
		{Type: divelog.SampleTime, Time: 4000},
		{Type: divelog.SampleDepth, Depth: 12.5},
		{Type: divelog.SampleTime, Time: 6000},
		{Type: divelog.SampleDepth, Depth: 0.0},
	}
	require.Equal(t, want, result.Samples)
}

func diffMaps(expected, actual map[string]any) string {
	if len(expected) != len(actual) {
		return fmt.Sprintf("len mismatch expected %d actual %d\nexpected %v\nactual %v", len(expected), len(actual), expected, actual)
	}
	for k, v := range expected {
		av, ok := actual[k]
		if !ok {
			return fmt.Sprintf("missing key %s", k)
		}
		switch ev := v.(type) {
		case float64:
			avFloat, ok := av.(float64)
			if !ok || math.Abs(ev-avFloat) > 1e-6 {
				return fmt.Sprintf("key %s mismatch expected %v got %v", k, v, av)
			}
		default:
			if fmt.Sprintf("%v", v) != fmt.Sprintf("%v", av) {
				return fmt.Sprintf("key %s mismatch expected %v got %v", k, v, av)
			}
		}
	}
	return ""
}
