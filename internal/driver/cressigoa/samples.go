package cressigoa

import (
	"encoding/binary"

	"github.com/godivelog/godive/internal/divelog"
)

// Record types packed into the low two bits of each 2-byte sample
// record. The two depth types decode identically; the device emits
// both.
const (
	recDepth       = 0
	recDepth2      = 1
	recTime        = 2
	recTemperature = 3
)

const (
	depthMask = 0x07FF // payload bits 0-10: depth in 1/10 m
	mixBit    = 0x0800 // payload bit 11: active gas-mix selector
)

// SampleIterator is a single forward pass over the packed sample
// records. Each record can complete a burst of samples, so the
// iterator keeps a small queue and hands them out one per Next call.
// It is not restartable; create a new one to decode again.
type SampleIterator struct {
	data   []byte // sample record region
	offset int

	interval uint32 // seconds advanced per depth tick
	gaschg   bool   // emit gas-change samples (scuba/nitrox only)

	elapsed     uint32 // seconds
	depth       uint16 // 1/10 m
	mix         int
	prevMix     int // -1 until the first gas-change emission
	temperature uint16
	haveTemp    bool

	queue []divelog.Sample
	head  int
}

// SampleIterator returns a fresh pass over the dive's sample records.
func (p *Parser) SampleIterator() *SampleIterator {
	interval := uint32(5)
	if p.mode == modeFreedive {
		interval = 2
	}
	return &SampleIterator{
		data:     p.data[p.headerSize+p.layout.headerSize:],
		interval: interval,
		gaschg:   p.mode == modeScuba || p.mode == modeNitrox,
		prevMix:  -1,
		queue:    make([]divelog.Sample, 0, 6),
	}
}

// Next returns the next sample in strict time order. The second
// return value is false once the record region is exhausted; a
// trailing odd byte is ignored without error.
func (it *SampleIterator) Next() (divelog.Sample, bool) {
	for it.head == len(it.queue) {
		if it.offset+2 > len(it.data) {
			return divelog.Sample{}, false
		}
		raw := binary.LittleEndian.Uint16(it.data[it.offset:])
		it.offset += 2
		it.decode(raw)
	}
	s := it.queue[it.head]
	it.head++
	return s, true
}

func (it *SampleIterator) decode(raw uint16) {
	it.queue = it.queue[:0]
	it.head = 0

	typ := raw & 0x0003
	value := raw >> 2

	switch typ {
	case recDepth, recDepth2:
		it.depth = value & depthMask
		it.mix = int(value&mixBit) >> 11
		it.elapsed += it.interval
		it.complete()

	case recTemperature:
		// Rides along with the next completed sample.
		it.temperature = value
		it.haveTemp = true

	case recTime:
		surftime := uint32(value)
		if surftime > it.interval {
			// A surface interval longer than one tick: bridge the
			// gap with a synthesized surfaced point one tick in.
			surftime -= it.interval
			it.elapsed += it.interval
			it.push(divelog.Sample{Type: divelog.SampleTime, Time: it.elapsed * 1000})
			it.push(divelog.Sample{Type: divelog.SampleDepth, Depth: 0.0})
		}
		it.elapsed += surftime
		it.depth = 0
		it.complete()
	}
}

// complete emits one burst. Consumers rely on the fixed order: time,
// pending temperature, depth, then a gas change if the selector moved.
func (it *SampleIterator) complete() {
	it.push(divelog.Sample{Type: divelog.SampleTime, Time: it.elapsed * 1000})
	if it.haveTemp {
		it.push(divelog.Sample{Type: divelog.SampleTemperature, Temperature: float64(it.temperature) / 10.0})
		it.haveTemp = false
	}
	it.push(divelog.Sample{Type: divelog.SampleDepth, Depth: float64(it.depth) / 10.0})
	if it.gaschg && it.mix != it.prevMix {
		it.push(divelog.Sample{Type: divelog.SampleGasMix, Mix: it.mix})
		it.prevMix = it.mix
	}
}

func (it *SampleIterator) push(s divelog.Sample) {
	it.queue = append(it.queue, s)
}

// Samples walks the whole sample region, invoking fn once per sample
// in strict time order. The region is always consumed to the end.
func (p *Parser) Samples(fn func(divelog.Sample)) {
	it := p.SampleIterator()
	for {
		s, ok := it.Next()
		if !ok {
			return
		}
		if fn != nil {
			fn(s)
		}
	}
}
