package audio

import (
	"math"
	"math/rand"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// Waveform selects the oscillator shape.
type Waveform int

const (
	WaveSine Waveform = iota
	WaveSquare
	WaveSaw
	WaveNoise
)

// oscillator generates a waveform whose frequency glides exponentially
// from startFreq to endFreq over its lifetime.
type oscillator struct {
	wave       Waveform
	startFreq  float64
	endFreq    float64
	sampleRate float64
	total      int
	pos        int
	phase      float64
	rng        *rand.Rand
}

func newSweep(wave Waveform, from, to float64, d time.Duration, rate beep.SampleRate) *oscillator {
	o := &oscillator{
		wave:       wave,
		startFreq:  from,
		endFreq:    to,
		sampleRate: float64(rate),
		total:      rate.N(d),
	}
	if wave == WaveNoise {
		o.rng = rand.New(rand.NewSource(int64(o.total)))
	}
	return o
}

func newTone(wave Waveform, freq float64, d time.Duration, rate beep.SampleRate) *oscillator {
	return newSweep(wave, freq, freq, d, rate)
}

func (o *oscillator) freqAt(pos int) float64 {
	if o.startFreq == o.endFreq || o.startFreq <= 0 || o.endFreq <= 0 || o.total == 0 {
		return o.startFreq
	}
	t := float64(pos) / float64(o.total)
	return o.startFreq * math.Pow(o.endFreq/o.startFreq, t)
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	if o.pos >= o.total {
		return 0, false
	}
	for i := range samples {
		if o.pos >= o.total {
			break
		}
		var v float64
		switch o.wave {
		case WaveSine:
			v = math.Sin(2 * math.Pi * o.phase)
		case WaveSquare:
			if o.phase < 0.5 {
				v = 1
			} else {
				v = -1
			}
		case WaveSaw:
			v = 2*o.phase - 1
		case WaveNoise:
			v = o.rng.Float64()*2 - 1
		}
		o.phase += o.freqAt(o.pos) / o.sampleRate
		o.phase -= math.Floor(o.phase)

		samples[i][0] = v
		samples[i][1] = v
		o.pos++
		n++
	}
	return n, true
}

func (o *oscillator) Err() error { return nil }

// decayFloor is the gain an exponential decay reaches at the end of its window.
const decayFloor = 0.001

// decay scales a streamer by a gain that falls exponentially from peak to
// decayFloor over the given number of samples. Past the window the gain
// stays at decayFloor.
type decay struct {
	streamer beep.Streamer
	peak     float64
	total    int
	pos      int
}

func newDecay(s beep.Streamer, peak float64, d time.Duration, rate beep.SampleRate) *decay {
	return &decay{streamer: s, peak: peak, total: rate.N(d)}
}

func (d *decay) gain() float64 {
	if d.total <= 0 || d.pos >= d.total {
		return decayFloor
	}
	t := float64(d.pos) / float64(d.total)
	return d.peak * math.Pow(decayFloor/d.peak, t)
}

func (d *decay) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = d.streamer.Stream(samples)
	for i := 0; i < n; i++ {
		g := d.gain()
		samples[i][0] *= g
		samples[i][1] *= g
		d.pos++
	}
	return n, ok
}

func (d *decay) Err() error { return d.streamer.Err() }

// noteEnvelope shapes a melody note: a 10ms attack to 0.3, a slow fall to
// 0.2, then a 50ms release to silence.
type noteEnvelope struct {
	streamer beep.Streamer
	attack   int
	release  int
	total    int
	pos      int
}

func newNoteEnvelope(s beep.Streamer, d time.Duration, rate beep.SampleRate) *noteEnvelope {
	total := rate.N(d)
	attack := rate.N(10 * time.Millisecond)
	release := rate.N(50 * time.Millisecond)
	if attack+release > total {
		attack, release = total/4, total/4
	}
	return &noteEnvelope{streamer: s, attack: attack, release: release, total: total}
}

func (e *noteEnvelope) gain() float64 {
	const peak, sustain = 0.3, 0.2
	releaseStart := e.total - e.release
	switch {
	case e.pos < e.attack:
		return peak * float64(e.pos) / float64(e.attack)
	case e.pos < releaseStart:
		span := releaseStart - e.attack
		if span <= 0 {
			return sustain
		}
		return peak + (sustain-peak)*float64(e.pos-e.attack)/float64(span)
	case e.pos < e.total:
		return sustain * float64(e.total-e.pos) / float64(e.release)
	default:
		return 0
	}
}

func (e *noteEnvelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)
	for i := 0; i < n; i++ {
		g := e.gain()
		samples[i][0] *= g
		samples[i][1] *= g
		e.pos++
	}
	return n, ok
}

func (e *noteEnvelope) Err() error { return e.streamer.Err() }

// lowpass is a one-pole low-pass filter.
type lowpass struct {
	streamer beep.Streamer
	alpha    float64
	prev     [2]float64
}

func newLowpass(s beep.Streamer, cutoff float64, rate beep.SampleRate) *lowpass {
	dt := 1.0 / float64(rate)
	rc := 1.0 / (2 * math.Pi * cutoff)
	return &lowpass{streamer: s, alpha: dt / (rc + dt)}
}

func (l *lowpass) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = l.streamer.Stream(samples)
	for i := 0; i < n; i++ {
		for c := 0; c < 2; c++ {
			l.prev[c] += l.alpha * (samples[i][c] - l.prev[c])
			samples[i][c] = l.prev[c]
		}
	}
	return n, ok
}

func (l *lowpass) Err() error { return l.streamer.Err() }

// newVolume wraps s in a volume effect.
// math.Log2(0) is -Inf, so zero volume is handled as silence.
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol), Silent: false}
}

// Note is one step of a melody.
type Note struct {
	MIDI     int
	Duration time.Duration
}

// NoteFrequency converts a MIDI note number to Hz.
func NoteFrequency(midi int) float64 {
	return 440 * math.Pow(2, float64(midi-69)/12)
}

// BackgroundMelody is the 8-bit loop played during a session.
var BackgroundMelody = []Note{
	{64, 200 * time.Millisecond}, {67, 200 * time.Millisecond}, {71, 200 * time.Millisecond}, {67, 200 * time.Millisecond},
	{64, 200 * time.Millisecond}, {67, 200 * time.Millisecond}, {71, 200 * time.Millisecond}, {76, 300 * time.Millisecond},
	{71, 200 * time.Millisecond}, {67, 200 * time.Millisecond}, {64, 200 * time.Millisecond}, {67, 200 * time.Millisecond},
	{59, 200 * time.Millisecond}, {62, 200 * time.Millisecond}, {67, 300 * time.Millisecond}, {64, 300 * time.Millisecond},
}

// melodyLoop plays notes one after another and wraps around forever.
type melodyLoop struct {
	notes []Note
	rate  beep.SampleRate
	next  int
	cur   beep.Streamer
}

func (m *melodyLoop) Stream(samples [][2]float64) (n int, ok bool) {
	if len(m.notes) == 0 {
		return 0, false
	}
	for n < len(samples) {
		if m.cur == nil {
			note := m.notes[m.next]
			m.next = (m.next + 1) % len(m.notes)
			osc := newTone(WaveSquare, NoteFrequency(note.MIDI), note.Duration, m.rate)
			m.cur = newNoteEnvelope(osc, note.Duration, m.rate)
		}
		sn, sok := m.cur.Stream(samples[n:])
		n += sn
		if !sok || sn == 0 {
			m.cur = nil
		}
	}
	return n, true
}

func (m *melodyLoop) Err() error { return nil }

// Sound effect generators

// CreateExplosionSound mixes a falling sine thump, a burst of noise and a
// short saw crack.
func CreateExplosionSound(cfg *Config) beep.Streamer {
	rate := beep.SampleRate(cfg.SampleRate)

	thump := newDecay(newSweep(WaveSine, 100, 30, 400*time.Millisecond, rate), 1.0, 400*time.Millisecond, rate)
	debris := newDecay(newTone(WaveNoise, 0, 200*time.Millisecond, rate), 0.6, 200*time.Millisecond, rate)
	crack := newDecay(newSweep(WaveSaw, 800, 300, 100*time.Millisecond, rate), 0.3, 100*time.Millisecond, rate)

	return newVolume(beep.Mix(thump, debris, crack), cfg.Volume(SoundExplosion))
}

// CreateFireSound is a quick descending square blip.
func CreateFireSound(cfg *Config) beep.Streamer {
	rate := beep.SampleRate(cfg.SampleRate)
	d := 60 * time.Millisecond
	blip := newDecay(newSweep(WaveSquare, 1200, 600, d, rate), 0.4, d, rate)
	return newVolume(blip, cfg.Volume(SoundFire))
}

// CreateStartSound is a rising three-note arpeggio (C5 E5 G5).
func CreateStartSound(cfg *Config) beep.Streamer {
	rate := beep.SampleRate(cfg.SampleRate)
	d := 90 * time.Millisecond
	var notes []beep.Streamer
	for _, midi := range []int{72, 76, 79} {
		notes = append(notes, newDecay(newTone(WaveSquare, NoteFrequency(midi), d, rate), 0.5, d, rate))
	}
	return newVolume(beep.Seq(notes...), cfg.Volume(SoundStart))
}

// CreateGameOverSound is a long falling saw and sine pair.
func CreateGameOverSound(cfg *Config) beep.Streamer {
	rate := beep.SampleRate(cfg.SampleRate)
	d := 700 * time.Millisecond
	saw := newDecay(newSweep(WaveSaw, 440, 110, d, rate), 0.4, d, rate)
	sine := newDecay(newSweep(WaveSine, 220, 55, d, rate), 0.8, d, rate)
	return newVolume(beep.Mix(saw, sine), cfg.Volume(SoundGameOver))
}

// CreateMusic returns the endless background loop, low-passed at 1100Hz.
func CreateMusic(cfg *Config) beep.Streamer {
	rate := beep.SampleRate(cfg.SampleRate)
	loop := &melodyLoop{notes: BackgroundMelody, rate: rate}
	return newVolume(newLowpass(loop, 1100, rate), cfg.MusicVolume*cfg.MasterVolume)
}

// GetSoundEffect returns the streamer for the given sound, or nil.
func GetSoundEffect(s Sound, cfg *Config) beep.Streamer {
	switch s {
	case SoundExplosion:
		return CreateExplosionSound(cfg)
	case SoundFire:
		return CreateFireSound(cfg)
	case SoundStart:
		return CreateStartSound(cfg)
	case SoundGameOver:
		return CreateGameOverSound(cfg)
	default:
		return nil
	}
}
