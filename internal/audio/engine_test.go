package audio

import (
	"testing"

	"github.com/vovakirdan/spacewar/internal/games/spacewar"
)

func TestLoadConfig(t *testing.T) {
	tests := []struct {
		name       string
		env        map[string]string
		enabled    bool
		master     float64
		sampleRate int
	}{
		{"defaults", nil, true, 0.5, DefaultSampleRate},
		{"disabled", map[string]string{"SPACEWAR_AUDIO_ENABLED": "false"}, false, 0.5, DefaultSampleRate},
		{"volume", map[string]string{"SPACEWAR_MASTER_VOLUME": "80"}, true, 0.8, DefaultSampleRate},
		{"volume out of range", map[string]string{"SPACEWAR_MASTER_VOLUME": "150"}, true, 0.5, DefaultSampleRate},
		{"garbage enabled", map[string]string{"SPACEWAR_AUDIO_ENABLED": "maybe"}, true, 0.5, DefaultSampleRate},
		{"sample rate", map[string]string{"SPACEWAR_SAMPLE_RATE": "48000"}, true, 0.5, 48000},
		{"sample rate too low", map[string]string{"SPACEWAR_SAMPLE_RATE": "100"}, true, 0.5, DefaultSampleRate},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv("SPACEWAR_AUDIO_ENABLED", "")
			t.Setenv("SPACEWAR_MASTER_VOLUME", "")
			t.Setenv("SPACEWAR_SAMPLE_RATE", "")
			for k, v := range tc.env {
				t.Setenv(k, v)
			}
			cfg := LoadConfig()
			if cfg.Enabled != tc.enabled {
				t.Errorf("Enabled = %v, expected %v", cfg.Enabled, tc.enabled)
			}
			if cfg.MasterVolume != tc.master {
				t.Errorf("MasterVolume = %v, expected %v", cfg.MasterVolume, tc.master)
			}
			if cfg.SampleRate != tc.sampleRate {
				t.Errorf("SampleRate = %d, expected %d", cfg.SampleRate, tc.sampleRate)
			}
		})
	}
}

func TestConfigVolume(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MasterVolume = 0.5
	cfg.Volumes[SoundFire] = 0.5
	if got := cfg.Volume(SoundFire); got != 0.25 {
		t.Errorf("Volume(SoundFire) = %v, expected 0.25", got)
	}
	delete(cfg.Volumes, SoundStart)
	if got := cfg.Volume(SoundStart); got != 0.5 {
		t.Errorf("Volume(SoundStart) without entry = %v, expected 0.5", got)
	}
}

func TestEngineDisabled(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Enabled = false
	e := NewEngine(cfg, nil)

	if err := e.Start(); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	if !e.Silent() {
		t.Error("disabled engine should be silent")
	}
	if e.Play(SoundExplosion) {
		t.Error("Play() in silent mode should return false")
	}
	e.StartMusic()
	e.PauseMusic(true)
	e.StopMusic()

	if err := e.Start(); err == nil {
		t.Error("second Start() should fail")
	}
	if err := e.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
	if err := e.Close(); err != nil {
		t.Errorf("second Close() error = %v", err)
	}
}

func TestEngineStartTolerant(t *testing.T) {
	e := NewEngine(DefaultConfig(), nil)
	if err := e.Start(); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	defer e.Close()

	if e.Silent() {
		t.Log("no audio backend available, running silent")
		return
	}
	t.Logf("audio backend: %q", e.Backend())
	e.Play(SoundFire)
	e.StartMusic()
	e.PauseMusic(true)
	e.StopMusic()
}

func TestDetectBackend(t *testing.T) {
	backend, err := DetectBackend(DefaultSampleRate)
	if err != nil {
		if err != ErrNoAudioBackend {
			t.Errorf("DetectBackend() error = %v, expected ErrNoAudioBackend", err)
		}
		t.Logf("no backend: %v", err)
		return
	}
	if backend.Path == "" || backend.Name == "" || len(backend.Args) == 0 {
		t.Errorf("DetectBackend() = %+v, expected a complete config", backend)
	}
}

type recordingSink struct {
	played  []Sound
	started int
	stopped int
	paused  []bool
}

func (r *recordingSink) Play(s Sound) bool      { r.played = append(r.played, s); return true }
func (r *recordingSink) StartMusic()            { r.started++ }
func (r *recordingSink) PauseMusic(paused bool) { r.paused = append(r.paused, paused) }
func (r *recordingSink) StopMusic()             { r.stopped++ }

func TestPlayerHandle(t *testing.T) {
	sink := &recordingSink{}
	p := NewPlayer(sink)

	p.Handle([]spacewar.Event{{Kind: spacewar.EventSessionStarted}})
	if sink.started != 1 || len(sink.played) != 1 || sink.played[0] != SoundStart {
		t.Errorf("after start: played=%v started=%d", sink.played, sink.started)
	}

	sink.played = nil
	p.Handle([]spacewar.Event{
		{Kind: spacewar.EventBulletFired},
		{Kind: spacewar.EventExplosion},
		{Kind: spacewar.EventExplosion},
		{Kind: spacewar.EventEnemySpawned},
		{Kind: spacewar.EventPhaseChanged},
	})
	expected := []Sound{SoundFire, SoundExplosion}
	if len(sink.played) != len(expected) {
		t.Fatalf("played = %v, expected %v", sink.played, expected)
	}
	for i := range expected {
		if sink.played[i] != expected[i] {
			t.Errorf("played[%d] = %v, expected %v", i, sink.played[i], expected[i])
		}
	}

	sink.played = nil
	stoppedBefore := sink.stopped
	p.Handle([]spacewar.Event{{Kind: spacewar.EventExplosion}, {Kind: spacewar.EventSessionEnded}})
	if sink.stopped != stoppedBefore+1 {
		t.Errorf("StopMusic calls = %d, expected %d", sink.stopped, stoppedBefore+1)
	}
	if len(sink.played) != 2 || sink.played[1] != SoundGameOver {
		t.Errorf("played = %v, expected [explosion game-over]", sink.played)
	}
}

func TestPlayerSetPaused(t *testing.T) {
	sink := &recordingSink{}
	p := NewPlayer(sink)

	p.SetPaused(false) // no change
	p.SetPaused(true)
	p.SetPaused(true) // no change
	p.SetPaused(false)

	if len(sink.paused) != 2 || !sink.paused[0] || sink.paused[1] {
		t.Errorf("PauseMusic calls = %v, expected [true false]", sink.paused)
	}
}

func TestNilPlayer(t *testing.T) {
	var p *Player
	p.Handle([]spacewar.Event{{Kind: spacewar.EventExplosion}})
	p.SetPaused(true)
}
