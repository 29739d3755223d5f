// Package divelog holds the vocabulary shared between dive-computer
// drivers and their consumers: field and sample identifiers, decoded
// value types, and the error taxonomy surfaced by the drivers.
package divelog

import "fmt"

// FieldType identifies a summary field of a decoded dive.
type FieldType int

const (
	FieldDivetime FieldType = iota
	FieldMaxDepth
	FieldAvgDepth
	FieldTemperatureMin
	FieldAtmospheric
	FieldGasMixCount
	FieldGasMix
	FieldDiveMode
)

func (f FieldType) String() string {
	switch f {
	case FieldDivetime:
		return "divetime"
	case FieldMaxDepth:
		return "maxdepth"
	case FieldAvgDepth:
		return "avgdepth"
	case FieldTemperatureMin:
		return "temperature_min"
	case FieldAtmospheric:
		return "atmospheric"
	case FieldGasMixCount:
		return "gasmix_count"
	case FieldGasMix:
		return "gasmix"
	case FieldDiveMode:
		return "dive_mode"
	default:
		return fmt.Sprintf("unknown field (%d)", int(f))
	}
}

// SampleType tags the value carried by a Sample.
type SampleType int

const (
	SampleTime SampleType = iota
	SampleDepth
	SampleTemperature
	SampleGasMix
)

func (s SampleType) String() string {
	switch s {
	case SampleTime:
		return "time"
	case SampleDepth:
		return "depth"
	case SampleTemperature:
		return "temperature"
	case SampleGasMix:
		return "gasmix"
	default:
		return fmt.Sprintf("unknown sample (%d)", int(s))
	}
}

// Sample is one decoded telemetry event. Only the field matching Type
// is meaningful.
type Sample struct {
	Type        SampleType
	Time        uint32  // milliseconds, SampleTime
	Depth       float64 // metres, SampleDepth
	Temperature float64 // degrees Celsius, SampleTemperature
	Mix         int     // gas mix index, SampleGasMix
}

func (s Sample) String() string {
	switch s.Type {
	case SampleTime:
		return fmt.Sprintf("time=%dms", s.Time)
	case SampleDepth:
		return fmt.Sprintf("depth=%.1fm", s.Depth)
	case SampleTemperature:
		return fmt.Sprintf("temperature=%.1fC", s.Temperature)
	case SampleGasMix:
		return fmt.Sprintf("gasmix=%d", s.Mix)
	default:
		return fmt.Sprintf("sample type %d", int(s.Type))
	}
}

// Usage describes what a gas mix is designated for.
type Usage int

const UsageNone Usage = 0

// GasMix is a breathing-gas composition expressed as fractions.
type GasMix struct {
	Oxygen   float64
	Helium   float64
	Nitrogen float64
	Usage    Usage
}

// DiveMode is the public operating mode of a dive.
type DiveMode int

const (
	ModeOpenCircuit DiveMode = iota
	ModeGauge
	ModeFreedive
)

func (m DiveMode) String() string {
	switch m {
	case ModeOpenCircuit:
		return "open_circuit"
	case ModeGauge:
		return "gauge"
	case ModeFreedive:
		return "freedive"
	default:
		return fmt.Sprintf("unknown mode (%d)", int(m))
	}
}

// Datetime is the dive start moment as stored by the device. The
// format carries no seconds and no timezone, so neither is invented
// here; Second is always 0.
type Datetime struct {
	Year   int
	Month  int
	Day    int
	Hour   int
	Minute int
	Second int
}

func (d Datetime) String() string {
	return fmt.Sprintf("%04d-%02d-%02d %02d:%02d", d.Year, d.Month, d.Day, d.Hour, d.Minute)
}
