// Package cressigoa decodes memory dumps downloaded from Cressi Goa
// dive computers into summary fields and a time-ordered sample stream.
//
// A dump starts with two length-prefix bytes, followed by an opaque
// identification section, the logbook section (which carries the
// dive-mode code), the mode-specific header the layout offsets apply
// to, and finally the packed 2-byte sample records.
package cressigoa

import (
	"context"
	"encoding/binary"
	"fmt"

	"github.com/godivelog/godive/internal/divelog"
	"github.com/godivelog/godive/internal/options"
)

const (
	minIDLen      = 9
	minLogbookLen = 23
	ngasmixes     = 2
)

// Parser holds the immutable state computed when a dump is validated.
// It never copies or mutates the underlying buffer; the caller must
// keep it unchanged for the parser's lifetime. All methods are
// read-only, so a Parser is safe for concurrent use.
type Parser struct {
	data       []byte
	layout     *layout
	headerSize int // bytes from buffer start to the mode-specific header
	mode       int
}

// NewParser validates the dump prefix, selects the dive-mode layout,
// and returns an immutable parser over the buffer. Any validation
// failure is reported through the diagnostic logger in ctx and aborts
// construction with an error wrapping divelog.ErrDataFormat.
func NewParser(ctx context.Context, data []byte) (*Parser, error) {
	log := options.Logger(ctx)

	if len(data) < 2 {
		log.Errorf("invalid dive length (%d)", len(data))
		return nil, fmt.Errorf("%w: dump too short (%d bytes)", divelog.ErrDataFormat, len(data))
	}

	idLen := int(data[0])
	logbookLen := int(data[1])
	if idLen < minIDLen || logbookLen < minLogbookLen {
		log.Errorf("invalid id or logbook length (%d %d)", idLen, logbookLen)
		return nil, fmt.Errorf("%w: id/logbook length prefix (%d, %d)", divelog.ErrDataFormat, idLen, logbookLen)
	}

	if len(data) < 2+idLen+logbookLen {
		log.Errorf("invalid dive length (%d)", len(data))
		return nil, fmt.Errorf("%w: dump shorter than its prefix sections (%d bytes)", divelog.ErrDataFormat, len(data))
	}

	logbook := data[2+idLen:]
	mode := int(logbook[2])
	if mode >= len(layouts) {
		log.Errorf("invalid dive mode (%d)", mode)
		return nil, fmt.Errorf("%w: dive mode code %d", divelog.ErrDataFormat, mode)
	}

	l := &layouts[mode]
	headerSize := 2 + idLen + logbookLen
	if len(data) < headerSize+l.headerSize {
		log.Errorf("invalid dive length (%d)", len(data))
		return nil, fmt.Errorf("%w: dump shorter than the %s header (%d bytes)", divelog.ErrDataFormat, modeName(mode), len(data))
	}

	return &Parser{
		data:       data,
		layout:     l,
		headerSize: headerSize,
		mode:       mode,
	}, nil
}

func modeName(mode int) string {
	switch mode {
	case modeScuba:
		return "scuba"
	case modeNitrox:
		return "nitrox"
	case modeFreedive:
		return "freedive"
	case modeGauge:
		return "gauge"
	default:
		return fmt.Sprintf("mode %d", mode)
	}
}

// header returns the mode-specific section the layout offsets apply to.
func (p *Parser) header() []byte {
	return p.data[p.headerSize:]
}

func (p *Parser) u16(off offset, field divelog.FieldType) (uint16, error) {
	if !off.present {
		return 0, fmt.Errorf("%w: %s", divelog.ErrUnsupported, field)
	}
	return binary.LittleEndian.Uint16(p.header()[off.pos:]), nil
}

// Datetime returns the dive start moment. Seconds are not recorded by
// the device and stay zero.
func (p *Parser) Datetime() divelog.Datetime {
	d := p.header()[p.layout.datetime:]
	return divelog.Datetime{
		Year:   int(binary.LittleEndian.Uint16(d)),
		Month:  int(d[2]),
		Day:    int(d[3]),
		Hour:   int(d[4]),
		Minute: int(d[5]),
	}
}

// Divetime returns the dive duration in seconds.
func (p *Parser) Divetime() (uint32, error) {
	v, err := p.u16(p.layout.divetime, divelog.FieldDivetime)
	return uint32(v), err
}

// MaxDepth returns the maximum depth in metres.
func (p *Parser) MaxDepth() (float64, error) {
	v, err := p.u16(p.layout.maxdepth, divelog.FieldMaxDepth)
	return float64(v) / 10.0, err
}

// AvgDepth returns the average depth in metres.
func (p *Parser) AvgDepth() (float64, error) {
	v, err := p.u16(p.layout.avgdepth, divelog.FieldAvgDepth)
	return float64(v) / 10.0, err
}

// TemperatureMin returns the minimum water temperature in degrees
// Celsius.
func (p *Parser) TemperatureMin() (float64, error) {
	v, err := p.u16(p.layout.temperature, divelog.FieldTemperatureMin)
	return float64(v) / 10.0, err
}

// Atmospheric returns the surface pressure in bar.
func (p *Parser) Atmospheric() (float64, error) {
	v, err := p.u16(p.layout.atmospheric, divelog.FieldAtmospheric)
	return float64(v) / 1000.0, err
}

// GasMixCount returns the number of configured gas mixes. Modes
// without a gas-mix table report zero; this never fails.
func (p *Parser) GasMixCount() int {
	if !p.layout.gasmix.present {
		return 0
	}
	data := p.header()
	n := 0
	for i := 0; i < ngasmixes; i++ {
		// The second byte of each slot holds the oxygen percentage;
		// an empty slot ends the table.
		if data[p.layout.gasmix.pos+2*i+1] == 0 {
			break
		}
		n++
	}
	return n
}

// GasMix returns the gas mix stored in slot i.
func (p *Parser) GasMix(i int) (divelog.GasMix, error) {
	if i < 0 || i >= p.GasMixCount() {
		return divelog.GasMix{}, fmt.Errorf("%w: gas mix %d", divelog.ErrUnsupported, i)
	}
	o2 := float64(p.header()[p.layout.gasmix.pos+2*i+1]) / 100.0
	return divelog.GasMix{
		Oxygen:   o2,
		Helium:   0.0,
		Nitrogen: 1.0 - o2,
		Usage:    divelog.UsageNone,
	}, nil
}

// DiveMode maps the stored mode code to the public enumeration.
func (p *Parser) DiveMode() (divelog.DiveMode, error) {
	switch p.mode {
	case modeScuba, modeNitrox:
		return divelog.ModeOpenCircuit, nil
	case modeGauge:
		return divelog.ModeGauge, nil
	case modeFreedive:
		return divelog.ModeFreedive, nil
	default:
		return 0, fmt.Errorf("%w: stored dive mode %d", divelog.ErrDataFormat, p.mode)
	}
}

// Field dispatches a summary-field request over the shared field
// enumeration. The flag selects the slot for FieldGasMix and is
// ignored otherwise.
func (p *Parser) Field(ft divelog.FieldType, flag int) (any, error) {
	switch ft {
	case divelog.FieldDivetime:
		return p.Divetime()
	case divelog.FieldMaxDepth:
		return p.MaxDepth()
	case divelog.FieldAvgDepth:
		return p.AvgDepth()
	case divelog.FieldTemperatureMin:
		return p.TemperatureMin()
	case divelog.FieldAtmospheric:
		return p.Atmospheric()
	case divelog.FieldGasMixCount:
		return p.GasMixCount(), nil
	case divelog.FieldGasMix:
		return p.GasMix(flag)
	case divelog.FieldDiveMode:
		return p.DiveMode()
	default:
		return nil, fmt.Errorf("%w: %s", divelog.ErrUnsupported, ft)
	}
}
