package audio

import (
	"math"
	"testing"
	"time"

	"github.com/gopxl/beep"
)

// drain streams s to completion and returns the frame count and peak amplitude.
func drain(t *testing.T, s beep.Streamer, limit int) (int, float64) {
	t.Helper()
	buf := make([][2]float64, 512)
	total, peak := 0, 0.0
	for total < limit {
		n, ok := s.Stream(buf)
		for i := 0; i < n; i++ {
			peak = math.Max(peak, math.Abs(buf[i][0]))
		}
		total += n
		if !ok {
			return total, peak
		}
	}
	t.Fatalf("streamer did not finish within %d frames", limit)
	return total, peak
}

func TestNoteFrequency(t *testing.T) {
	tests := []struct {
		midi     int
		expected float64
	}{
		{69, 440},
		{81, 880},
		{57, 220},
		{60, 261.6256},
	}
	for _, tc := range tests {
		got := NoteFrequency(tc.midi)
		if math.Abs(got-tc.expected) > 0.001 {
			t.Errorf("NoteFrequency(%d) = %f, expected %f", tc.midi, got, tc.expected)
		}
	}
}

func TestOscillatorLength(t *testing.T) {
	rate := beep.SampleRate(44100)
	for _, wave := range []Waveform{WaveSine, WaveSquare, WaveSaw, WaveNoise} {
		osc := newTone(wave, 440, 100*time.Millisecond, rate)
		n, peak := drain(t, osc, rate.N(time.Second))
		if n != rate.N(100*time.Millisecond) {
			t.Errorf("wave %d: streamed %d frames, expected %d", wave, n, rate.N(100*time.Millisecond))
		}
		if peak > 1.0 || peak == 0 {
			t.Errorf("wave %d: peak = %f, expected in (0, 1]", wave, peak)
		}
	}
}

func TestSweepEndpoints(t *testing.T) {
	osc := newSweep(WaveSine, 100, 30, time.Second, beep.SampleRate(1000))
	if got := osc.freqAt(0); got != 100 {
		t.Errorf("freqAt(0) = %f, expected 100", got)
	}
	if got := osc.freqAt(osc.total); math.Abs(got-30) > 1e-9 {
		t.Errorf("freqAt(end) = %f, expected 30", got)
	}
	mid := osc.freqAt(osc.total / 2)
	if mid >= 100 || mid <= 30 {
		t.Errorf("freqAt(mid) = %f, expected between 30 and 100", mid)
	}
}

func TestDecayFalls(t *testing.T) {
	rate := beep.SampleRate(1000)
	d := newDecay(newTone(WaveSquare, 10, time.Second, rate), 1.0, time.Second, rate)
	first := d.gain()
	d.pos = d.total / 2
	mid := d.gain()
	d.pos = d.total
	last := d.gain()
	if !(first > mid && mid > last) {
		t.Errorf("decay gains = %f, %f, %f, expected strictly falling", first, mid, last)
	}
	if last != decayFloor {
		t.Errorf("gain at end = %f, expected %f", last, decayFloor)
	}
}

func TestSoundEffectsFinish(t *testing.T) {
	cfg := DefaultConfig()
	rate := beep.SampleRate(cfg.SampleRate)
	tests := []struct {
		sound Sound
		want  time.Duration
	}{
		{SoundExplosion, 400 * time.Millisecond},
		{SoundFire, 60 * time.Millisecond},
		{SoundStart, 270 * time.Millisecond},
		{SoundGameOver, 700 * time.Millisecond},
	}
	for _, tc := range tests {
		t.Run(tc.sound.String(), func(t *testing.T) {
			s := GetSoundEffect(tc.sound, cfg)
			if s == nil {
				t.Fatal("GetSoundEffect() = nil")
			}
			n, peak := drain(t, s, rate.N(5*time.Second))
			want := rate.N(tc.want)
			if n < want-2 || n > want+rate.N(50*time.Millisecond) {
				t.Errorf("streamed %d frames, expected about %d", n, want)
			}
			if peak == 0 {
				t.Error("sound is silent")
			}
		})
	}
}

func TestGetSoundEffectUnknown(t *testing.T) {
	if s := GetSoundEffect(soundCount, DefaultConfig()); s != nil {
		t.Error("GetSoundEffect() for unknown sound should be nil")
	}
}

func TestMusicLoops(t *testing.T) {
	cfg := DefaultConfig()
	cfg.SampleRate = 8000
	rate := beep.SampleRate(cfg.SampleRate)

	var loopLen time.Duration
	for _, n := range BackgroundMelody {
		loopLen += n.Duration
	}

	music := CreateMusic(cfg)
	buf := make([][2]float64, rate.N(loopLen)*2+100)
	n, ok := music.Stream(buf)
	if !ok || n != len(buf) {
		t.Errorf("Stream() = (%d, %v), expected (%d, true)", n, ok, len(buf))
	}
}

func TestMelodyLoopEmpty(t *testing.T) {
	m := &melodyLoop{rate: beep.SampleRate(8000)}
	n, ok := m.Stream(make([][2]float64, 10))
	if n != 0 || ok {
		t.Errorf("Stream() on empty melody = (%d, %v), expected (0, false)", n, ok)
	}
}

func TestNewVolumeZeroIsSilent(t *testing.T) {
	rate := beep.SampleRate(1000)
	s := newVolume(newTone(WaveSquare, 10, 100*time.Millisecond, rate), 0)
	_, peak := drain(t, s, 1000)
	if peak != 0 {
		t.Errorf("peak = %f, expected 0", peak)
	}
}

func TestEncodePCM(t *testing.T) {
	in := [][2]float64{{1, -1}, {2, -2}, {0, 0.5}}
	out := make([]byte, len(in)*bytesPerFrame)
	encodePCM(in, out)

	sample := func(i int) int16 {
		return int16(uint16(out[i*2]) | uint16(out[i*2+1])<<8)
	}
	expected := []int16{32767, -32767, 32767, -32767, 0, 16383}
	for i, want := range expected {
		if got := sample(i); got != want {
			t.Errorf("sample %d = %d, expected %d", i, got, want)
		}
	}
}
