package cressigoa

// Dive-mode codes stored at offset 2 of the logbook section.
const (
	modeScuba    = 0
	modeNitrox   = 1
	modeFreedive = 2
	modeGauge    = 3
)

// offset locates a summary field within the mode-specific header.
// Fields a mode does not record carry the zero value.
type offset struct {
	pos     int
	present bool
}

func at(pos int) offset { return offset{pos: pos, present: true} }

// layout describes where the summary fields of one dive mode live,
// relative to the start of the mode-specific header.
type layout struct {
	headerSize  int // fixed length of the mode-specific header
	datetime    int // recorded in every mode
	divetime    offset
	gasmix      offset
	atmospheric offset
	maxdepth    offset
	avgdepth    offset
	temperature offset
}

// layouts is indexed by the dive-mode code. SCUBA and NITROX dives
// share one header format; FREEDIVE and GAUGE use shorter ones that
// omit the gas-mix table.
var layouts = [...]layout{
	modeScuba: {
		headerSize:  92,
		datetime:    12,
		divetime:    at(20),
		gasmix:      at(26),
		atmospheric: at(30),
		maxdepth:    at(73),
		avgdepth:    at(75),
		temperature: at(77),
	},
	modeNitrox: {
		headerSize:  92,
		datetime:    12,
		divetime:    at(20),
		gasmix:      at(26),
		atmospheric: at(30),
		maxdepth:    at(73),
		avgdepth:    at(75),
		temperature: at(77),
	},
	modeFreedive: {
		headerSize:  38,
		datetime:    12,
		divetime:    at(20),
		maxdepth:    at(23),
		temperature: at(25),
	},
	modeGauge: {
		headerSize:  40,
		datetime:    12,
		divetime:    at(20),
		atmospheric: at(22),
		maxdepth:    at(24),
		avgdepth:    at(26),
		temperature: at(28),
	},
}
