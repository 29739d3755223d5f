package cressigoa

import (
	"context"
	"testing"

	"github.com/godivelog/godive/internal/divelog"
)

func rec(typ, value uint16) []byte {
	return u16(value<<2 | typ)
}

func depthRec(tenths uint16, mix uint16) []byte {
	return rec(recDepth, tenths|mix<<11)
}

func collect(t *testing.T, mode byte, samples []byte) []divelog.Sample {
	t.Helper()
	p, err := NewParser(context.Background(), buildDump(t, mode, nil, samples))
	if err != nil {
		t.Fatalf("NewParser: %v", err)
	}
	var out []divelog.Sample
	p.Samples(func(s divelog.Sample) {
		out = append(out, s)
	})
	return out
}

func assertSamples(t *testing.T, got, want []divelog.Sample) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("got %d samples, want %d\ngot: %v", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("sample %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestSingleDepthRecord(t *testing.T) {
	got := collect(t, modeScuba, depthRec(150, 0))
	assertSamples(t, got, []divelog.Sample{
		{Type: divelog.SampleTime, Time: 5000},
		{Type: divelog.SampleDepth, Depth: 15.0},
		{Type: divelog.SampleGasMix, Mix: 0},
	})
}

func TestDepthTypesAliased(t *testing.T) {
	a := collect(t, modeGauge, rec(recDepth, 150))
	b := collect(t, modeGauge, rec(recDepth2, 150))
	assertSamples(t, b, a)
}

func TestTemperatureRidesNextSample(t *testing.T) {
	var recs []byte
	recs = append(recs, rec(recTemperature, 185)...)
	recs = append(recs, depthRec(150, 0)...)
	recs = append(recs, depthRec(160, 0)...)
	got := collect(t, modeScuba, recs)
	assertSamples(t, got, []divelog.Sample{
		{Type: divelog.SampleTime, Time: 5000},
		{Type: divelog.SampleTemperature, Temperature: 18.5},
		{Type: divelog.SampleDepth, Depth: 15.0},
		{Type: divelog.SampleGasMix, Mix: 0},
		{Type: divelog.SampleTime, Time: 10000},
		{Type: divelog.SampleDepth, Depth: 16.0},
	})
}

func TestSurfaceGapSynthesizesBridge(t *testing.T) {
	got := collect(t, modeGauge, rec(recTime, 12))
	assertSamples(t, got, []divelog.Sample{
		{Type: divelog.SampleTime, Time: 5000},
		{Type: divelog.SampleDepth, Depth: 0.0},
		{Type: divelog.SampleTime, Time: 12000},
		{Type: divelog.SampleDepth, Depth: 0.0},
	})
}

func TestSurfaceWithinOneTick(t *testing.T) {
	got := collect(t, modeGauge, rec(recTime, 4))
	assertSamples(t, got, []divelog.Sample{
		{Type: divelog.SampleTime, Time: 4000},
		{Type: divelog.SampleDepth, Depth: 0.0},
	})
}

func TestGasMixChangeDetection(t *testing.T) {
	var recs []byte
	recs = append(recs, depthRec(100, 0)...)
	recs = append(recs, depthRec(110, 1)...)
	recs = append(recs, depthRec(120, 1)...)
	recs = append(recs, depthRec(130, 0)...)
	got := collect(t, modeNitrox, recs)
	assertSamples(t, got, []divelog.Sample{
		{Type: divelog.SampleTime, Time: 5000},
		{Type: divelog.SampleDepth, Depth: 10.0},
		{Type: divelog.SampleGasMix, Mix: 0},
		{Type: divelog.SampleTime, Time: 10000},
		{Type: divelog.SampleDepth, Depth: 11.0},
		{Type: divelog.SampleGasMix, Mix: 1},
		{Type: divelog.SampleTime, Time: 15000},
		{Type: divelog.SampleDepth, Depth: 12.0},
		{Type: divelog.SampleTime, Time: 20000},
		{Type: divelog.SampleDepth, Depth: 13.0},
		{Type: divelog.SampleGasMix, Mix: 0},
	})
}

func TestFreediveIntervalAndNoGasSamples(t *testing.T) {
	var recs []byte
	recs = append(recs, depthRec(50, 0)...)
	recs = append(recs, depthRec(125, 1)...)
	got := collect(t, modeFreedive, recs)
	assertSamples(t, got, []divelog.Sample{
		{Type: divelog.SampleTime, Time: 2000},
		{Type: divelog.SampleDepth, Depth: 5.0},
		{Type: divelog.SampleTime, Time: 4000},
		{Type: divelog.SampleDepth, Depth: 12.5},
	})
}

func TestTrailingBytesIgnored(t *testing.T) {
	recs := append(depthRec(150, 0), 0xFF)
	got := collect(t, modeGauge, recs)
	assertSamples(t, got, []divelog.Sample{
		{Type: divelog.SampleTime, Time: 5000},
		{Type: divelog.SampleDepth, Depth: 15.0},
	})

	if got := collect(t, modeGauge, []byte{0xFF}); len(got) != 0 {
		t.Errorf("lone trailing byte produced samples: %v", got)
	}
	if got := collect(t, modeGauge, nil); len(got) != 0 {
		t.Errorf("empty sample region produced samples: %v", got)
	}
}

func TestIteratorMatchesCallback(t *testing.T) {
	var recs []byte
	recs = append(recs, rec(recTemperature, 185)...)
	recs = append(recs, depthRec(150, 0)...)
	recs = append(recs, rec(recTime, 12)...)
	recs = append(recs, depthRec(50, 1)...)

	p, err := NewParser(context.Background(), buildDump(t, modeScuba, nil, recs))
	if err != nil {
		t.Fatalf("NewParser: %v", err)
	}

	var walked []divelog.Sample
	p.Samples(func(s divelog.Sample) {
		walked = append(walked, s)
	})

	it := p.SampleIterator()
	var pulled []divelog.Sample
	for {
		s, ok := it.Next()
		if !ok {
			break
		}
		pulled = append(pulled, s)
	}
	assertSamples(t, pulled, walked)

	// A fresh iterator restarts from the top of the region.
	it = p.SampleIterator()
	first, ok := it.Next()
	if !ok || first != walked[0] {
		t.Errorf("fresh iterator starts at %v, want %v", first, walked[0])
	}
}
