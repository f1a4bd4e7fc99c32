// Package audio synthesizes the game's sound effects with beep.
package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"

	"github.com/tomz197/planewar/internal/game"
)

// Sound is a synthesized effect.
type Sound int

const (
	SoundShot Sound = iota
	SoundExplosion
	SoundHit
	SoundLevelUp
	SoundGameOver
)

// Effect durations
const (
	shotDuration      = 60 * time.Millisecond
	explosionDuration = 300 * time.Millisecond
	hitDuration       = 200 * time.Millisecond
	levelNoteDuration = 90 * time.Millisecond
	gameOverDuration  = 700 * time.Millisecond
	attack            = 5 * time.Millisecond
)

// SoundFor maps a gameplay event to its effect.
func SoundFor(e game.Event) (Sound, bool) {
	switch e {
	case game.EventShot:
		return SoundShot, true
	case game.EventKill:
		return SoundExplosion, true
	case game.EventPlayerHit:
		return SoundHit, true
	case game.EventLevelUp:
		return SoundLevelUp, true
	case game.EventGameOver:
		return SoundGameOver, true
	}
	return 0, false
}

// waveType selects the oscillator shape.
type waveType int

const (
	waveSine waveType = iota
	waveSquare
	waveNoise
)

// oscillator produces a fixed-length tone whose frequency slides linearly
// from freq to endFreq.
type oscillator struct {
	freq, endFreq float64
	phase         float64
	pos, total    int
	wave          waveType
	rate          beep.SampleRate
	seed          uint32
}

func newOscillator(freq, endFreq float64, d time.Duration, wave waveType, rate beep.SampleRate) *oscillator {
	return &oscillator{
		freq:    freq,
		endFreq: endFreq,
		total:   rate.N(d),
		wave:    wave,
		rate:    rate,
		seed:    0x9e3779b9,
	}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.pos >= o.total {
			return i, i > 0
		}

		var val float64
		switch o.wave {
		case waveSine:
			val = math.Sin(2 * math.Pi * o.phase)
		case waveSquare:
			val = 1
			if o.phase >= 0.5 {
				val = -1
			}
		case waveNoise:
			// xorshift keeps the noise reproducible in tests
			o.seed ^= o.seed << 13
			o.seed ^= o.seed >> 17
			o.seed ^= o.seed << 5
			val = float64(o.seed)/math.MaxUint32*2 - 1
		}
		samples[i][0] = val
		samples[i][1] = val

		t := float64(o.pos) / float64(o.total)
		freq := o.freq + (o.endFreq-o.freq)*t
		o.phase += freq / float64(o.rate)
		o.phase -= math.Floor(o.phase)
		o.pos++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// envelope applies a linear attack and an exponential decay.
type envelope struct {
	streamer beep.Streamer
	pos      int
	attack   int
	decay    float64 // Per-sample multiplier after the attack
	level    float64
}

func newEnvelope(s beep.Streamer, attackTime, d time.Duration, rate beep.SampleRate) *envelope {
	// Decay to about -60dB by the end of d.
	n := rate.N(d)
	if n < 1 {
		n = 1
	}
	return &envelope{
		streamer: s,
		attack:   rate.N(attackTime),
		decay:    math.Pow(0.001, 1/float64(n)),
		level:    1,
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)
	for i := 0; i < n; i++ {
		vol := e.level
		if e.pos < e.attack {
			vol = float64(e.pos) / float64(e.attack)
		} else {
			e.level *= e.decay
		}
		samples[i][0] *= vol
		samples[i][1] *= vol
		e.pos++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// withVolume scales s linearly; vol <= 0 silences it.
func withVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}

// NewStreamer builds a fresh one-shot streamer for sound at the given
// linear volume.
func NewStreamer(sound Sound, rate beep.SampleRate, volume float64) beep.Streamer {
	var s beep.Streamer
	switch sound {
	case SoundShot:
		osc := newOscillator(1200, 600, shotDuration, waveSquare, rate)
		s = withVolume(newEnvelope(osc, attack, shotDuration, rate), 0.25)
	case SoundExplosion:
		noise := newOscillator(0, 0, explosionDuration, waveNoise, rate)
		rumble := newOscillator(90, 40, explosionDuration, waveSine, rate)
		s = beep.Mix(
			withVolume(newEnvelope(noise, attack, explosionDuration, rate), 0.35),
			withVolume(newEnvelope(rumble, attack, explosionDuration, rate), 0.4),
		)
	case SoundHit:
		osc := newOscillator(220, 80, hitDuration, waveSquare, rate)
		s = withVolume(newEnvelope(osc, attack, hitDuration, rate), 0.35)
	case SoundLevelUp:
		notes := []float64{523.25, 659.25, 783.99} // C5 E5 G5
		seq := make([]beep.Streamer, len(notes))
		for i, f := range notes {
			osc := newOscillator(f, f, levelNoteDuration, waveSine, rate)
			seq[i] = newEnvelope(osc, attack, levelNoteDuration, rate)
		}
		s = withVolume(beep.Seq(seq...), 0.4)
	case SoundGameOver:
		osc := newOscillator(440, 110, gameOverDuration, waveSine, rate)
		s = withVolume(newEnvelope(osc, attack, gameOverDuration, rate), 0.5)
	default:
		return nil
	}
	return withVolume(s, volume)
}
