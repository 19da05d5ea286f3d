package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
)

// NoiseBurstGenerator is a decaying noise crackle over a low rumble
type NoiseBurstGenerator struct {
	sr   beep.SampleRate
	pos  int
	seed int64
}

// NewNoiseBurstGenerator creates an explosion generator; equal seeds give equal output
func NewNoiseBurstGenerator(sr beep.SampleRate, seed int64) *NoiseBurstGenerator {
	return &NoiseBurstGenerator{sr: sr, seed: seed}
}

func (g *NoiseBurstGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		t := float64(g.pos) / float64(g.sr)
		envelope := math.Exp(-t * 6)

		g.seed = (g.seed*1103515245 + 12345) & 0x7fffffff
		noise := float64(g.seed)/float64(0x7fffffff)*2 - 1
		rumble := 0.3 * math.Sin(2*math.Pi*55*t)

		sample := envelope * (0.35*noise + rumble)
		samples[i][0] = sample
		samples[i][1] = sample
		g.pos++
	}
	return len(samples), true
}

func (g *NoiseBurstGenerator) Err() error {
	return nil
}

// ThudGenerator is a short sine whose pitch falls as it fades
type ThudGenerator struct {
	sr   beep.SampleRate
	freq float64
	pos  int
}

// NewThudGenerator creates a landing thud starting at freq Hz
func NewThudGenerator(sr beep.SampleRate, freq float64) *ThudGenerator {
	return &ThudGenerator{sr: sr, freq: freq}
}

func (g *ThudGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		t := float64(g.pos) / float64(g.sr)
		envelope := math.Exp(-t * 30)
		f := g.freq * (1 - 0.5*math.Min(t*8, 1))

		sample := 0.4 * envelope * math.Sin(2*math.Pi*f*t)
		samples[i][0] = sample
		samples[i][1] = sample
		g.pos++
	}
	return len(samples), true
}

func (g *ThudGenerator) Err() error {
	return nil
}

// BuzzGenerator generates a low-pitch buzz sound
type BuzzGenerator struct {
	sr   beep.SampleRate
	freq float64
	pos  int
}

// NewBuzzGenerator creates a buzz at freq Hz with its first two harmonics
func NewBuzzGenerator(sr beep.SampleRate, freq float64) *BuzzGenerator {
	return &BuzzGenerator{sr: sr, freq: freq}
}

func (g *BuzzGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		t := float64(g.pos) / float64(g.sr)

		sample := 0.3 * math.Sin(2*math.Pi*g.freq*t)
		sample += 0.15 * math.Sin(2*math.Pi*g.freq*2*t)
		sample += 0.075 * math.Sin(2*math.Pi*g.freq*3*t)

		// 20ms attack
		envelope := math.Min(t/0.02, 1.0)
		sample *= envelope * 0.5

		samples[i][0] = sample
		samples[i][1] = sample
		g.pos++
	}
	return len(samples), true
}

func (g *BuzzGenerator) Err() error {
	return nil
}

// ChirpGenerator sweeps linearly from one frequency to another
type ChirpGenerator struct {
	sr       beep.SampleRate
	from, to float64
	length   float64
	pos      int
}

// NewChirpGenerator creates a rising tone sweeping from..to Hz over d
func NewChirpGenerator(sr beep.SampleRate, from, to float64, d time.Duration) *ChirpGenerator {
	return &ChirpGenerator{sr: sr, from: from, to: to, length: d.Seconds()}
}

func (g *ChirpGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	k := (g.to - g.from) / g.length
	for i := range samples {
		t := float64(g.pos) / float64(g.sr)
		// phase of a linear sweep is the integral of frequency
		phase := 2 * math.Pi * (g.from*t + k*t*t/2)
		envelope := math.Max(0, 1-t/g.length)

		sample := 0.25 * envelope * math.Sin(phase)
		samples[i][0] = sample
		samples[i][1] = sample
		g.pos++
	}
	return len(samples), true
}

func (g *ChirpGenerator) Err() error {
	return nil
}
