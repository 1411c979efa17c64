// Package audio synthesizes the map's event sounds. It implements the
// engine's Notifier interface; the simulation never touches it directly.
package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

const sampleRate = beep.SampleRate(44100)

// Synth plays short generated tones for simulation events. All methods are
// no-ops until Init succeeds, so a machine without audio still runs.
type Synth struct {
	ready bool
}

// NewSynth returns an uninitialized synthesizer.
func NewSynth() *Synth {
	return &Synth{}
}

// Init opens the speaker. Call once at startup.
func (s *Synth) Init() error {
	if s.ready {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(time.Millisecond*50)); err != nil {
		return err
	}
	s.ready = true
	return nil
}

// Collision plays a low thud when the ship hits the containment ring.
func (s *Synth) Collision() {
	if !s.ready {
		return
	}
	buf := tone(85, 0.22, 0.5)
	// A touch of noise on top so it reads as an impact, not a hum.
	for i := range buf {
		decay := 1 - float64(i)/float64(len(buf))
		buf[i] += (hash01(i) - 0.5) * 0.15 * decay * decay
	}
	speaker.Play(newClip(buf))
}

// AutopilotEngaged plays a rising two-note chime.
func (s *Synth) AutopilotEngaged() {
	if !s.ready {
		return
	}
	buf := append(tone(660, 0.12, 0.3), tone(880, 0.18, 0.3)...)
	speaker.Play(newClip(buf))
}

// tone renders a sine of the given frequency and duration with a quick
// attack and linear release.
func tone(freq, dur, gain float64) []float64 {
	n := sampleRate.N(time.Duration(dur * float64(time.Second)))
	buf := make([]float64, n)
	attack := n / 20
	for i := range buf {
		v := math.Sin(2 * math.Pi * freq * float64(i) / float64(sampleRate)) * gain
		if i < attack {
			v *= float64(i) / float64(attack)
		}
		v *= 1 - float64(i)/float64(n)
		buf[i] = v
	}
	return buf
}

// hash01 gives cheap deterministic noise in [0, 1).
func hash01(i int) float64 {
	h := uint32(i) * 2654435761
	h ^= h >> 16
	return float64(h%10000) / 10000
}

// clip streams a mono buffer to both channels once, then reports drained.
type clip struct {
	samples []float64
	pos     int
}

func newClip(samples []float64) *clip {
	return &clip{samples: samples}
}

func (c *clip) Stream(out [][2]float64) (int, bool) {
	if c.pos >= len(c.samples) {
		return 0, false
	}
	n := 0
	for i := range out {
		if c.pos >= len(c.samples) {
			break
		}
		v := c.samples[c.pos]
		out[i][0] = v
		out[i][1] = v
		c.pos++
		n++
	}
	return n, true
}

func (c *clip) Err() error {
	return nil
}
