package audio

import (
	"os"
	"strconv"
)

const (
	DefaultSampleRate = 44100
	minSampleRate     = 8000
	maxSampleRate     = 96000
)

// Config holds audio settings.
type Config struct {
	Enabled      bool
	MasterVolume float64 // 0.0 - 1.0
	MusicVolume  float64 // 0.0 - 1.0, applied on top of MasterVolume
	SampleRate   int
	Volumes      map[Sound]float64
}

// DefaultConfig returns the default audio configuration.
func DefaultConfig() *Config {
	return &Config{
		Enabled:      true,
		MasterVolume: 0.5,
		MusicVolume:  0.2,
		SampleRate:   DefaultSampleRate,
		Volumes: map[Sound]float64{
			SoundExplosion: 1.0,
			SoundFire:      0.25,
			SoundStart:     0.6,
			SoundGameOver:  0.8,
		},
	}
}

// Volume returns the effective gain for a sound.
func (c *Config) Volume(s Sound) float64 {
	v, ok := c.Volumes[s]
	if !ok {
		v = 1.0
	}
	return v * c.MasterVolume
}

// LoadConfig reads audio settings from the environment:
//
//	SPACEWAR_AUDIO_ENABLED  true/false
//	SPACEWAR_MASTER_VOLUME  0-100
//	SPACEWAR_MUSIC_VOLUME   0-100
//	SPACEWAR_SAMPLE_RATE    8000-96000
//
// Invalid values are ignored and the default is kept.
func LoadConfig() *Config {
	cfg := DefaultConfig()

	if v := os.Getenv("SPACEWAR_AUDIO_ENABLED"); v != "" {
		if enabled, err := strconv.ParseBool(v); err == nil {
			cfg.Enabled = enabled
		}
	}
	if v, ok := percentEnv("SPACEWAR_MASTER_VOLUME"); ok {
		cfg.MasterVolume = v
	}
	if v, ok := percentEnv("SPACEWAR_MUSIC_VOLUME"); ok {
		cfg.MusicVolume = v
	}
	if v := os.Getenv("SPACEWAR_SAMPLE_RATE"); v != "" {
		if rate, err := strconv.Atoi(v); err == nil && rate >= minSampleRate && rate <= maxSampleRate {
			cfg.SampleRate = rate
		}
	}
	return cfg
}

func percentEnv(key string) (float64, bool) {
	v := os.Getenv(key)
	if v == "" {
		return 0, false
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 || n > 100 {
		return 0, false
	}
	return float64(n) / 100.0, true
}
