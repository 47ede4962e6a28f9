package audio

import "errors"

// Sound identifies a one-shot effect.
type Sound int

const (
	SoundExplosion Sound = iota // Enemy or player destroyed
	SoundFire                   // Bullet leaves the ship
	SoundStart                  // Session started
	SoundGameOver               // Session ended
	soundCount
)

func (s Sound) String() string {
	switch s {
	case SoundExplosion:
		return "explosion"
	case SoundFire:
		return "fire"
	case SoundStart:
		return "start"
	case SoundGameOver:
		return "game-over"
	default:
		return "unknown"
	}
}

// BackendType identifies the audio backend
type BackendType int

const (
	BackendPulse BackendType = iota
	BackendPipeWire
	BackendALSA
	BackendSoX
	BackendFFplay
)

// BackendConfig describes a CLI audio backend that reads raw PCM on stdin.
type BackendConfig struct {
	Type BackendType
	Name string
	Path string
	Args []string
}

// Sentinel errors
var (
	ErrNoAudioBackend = errors.New("no compatible audio backend found")
	ErrPipeClosed     = errors.New("audio pipe closed")
)
