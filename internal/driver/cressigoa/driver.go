package cressigoa

import (
	"context"
	"fmt"
	"math"

	"github.com/godivelog/godive/internal/divelog"
	"github.com/godivelog/godive/internal/driver"
)

const family = "cressi_goa"

func init() {
	driver.Register(Driver{})
}

// Driver plugs the Goa parser into the driver registry.
type Driver struct{}

// Name returns the canonical family name.
func (Driver) Name() string { return family }

// Detect replays the cheap length-prefix checks so the registry can
// probe a dump without building parser state.
func (Driver) Detect(data []byte) bool {
	if len(data) < 2 {
		return false
	}
	idLen := int(data[0])
	logbookLen := int(data[1])
	if idLen < minIDLen || logbookLen < minLogbookLen {
		return false
	}
	if len(data) < 2+idLen+logbookLen {
		return false
	}
	return int(data[2+idLen+2]) < len(layouts)
}

// Process decodes the dump into a field map and the sample stream.
// Fields a dive mode does not record are left out of the map.
func (Driver) Process(ctx context.Context, data []byte) (map[string]any, []divelog.Sample, error) {
	p, err := NewParser(ctx, data)
	if err != nil {
		return nil, nil, err
	}

	mode, err := p.DiveMode()
	if err != nil {
		return nil, nil, err
	}

	fields := map[string]any{
		"_":         "dive",
		"family":    family,
		"datetime":  p.Datetime().String(),
		"dive_mode": mode.String(),
	}
	if v, err := p.Divetime(); err == nil {
		fields["divetime_s"] = float64(v)
	}
	if v, err := p.MaxDepth(); err == nil {
		fields["max_depth_m"] = v
	}
	if v, err := p.AvgDepth(); err == nil {
		fields["avg_depth_m"] = v
	}
	if v, err := p.TemperatureMin(); err == nil {
		fields["min_temperature_c"] = v
	}
	if v, err := p.Atmospheric(); err == nil {
		fields["atmospheric_bar"] = v
	}

	n := p.GasMixCount()
	fields["gasmix_count"] = float64(n)
	for i := 0; i < n; i++ {
		mix, err := p.GasMix(i)
		if err != nil {
			return nil, nil, err
		}
		fields[fmt.Sprintf("gasmix_%d_o2_pct", i)] = roundTo(mix.Oxygen*100, 1)
	}

	var samples []divelog.Sample
	p.Samples(func(s divelog.Sample) {
		samples = append(samples, s)
	})

	return fields, samples, nil
}

func roundTo(value float64, decimals int) float64 {
	pow := math.Pow10(decimals)
	return math.Round(value*pow) / pow
}
