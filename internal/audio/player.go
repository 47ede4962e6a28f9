package audio

import "github.com/vovakirdan/spacewar/internal/games/spacewar"

// Sink is what a Player drives. *Engine implements it.
type Sink interface {
	Play(s Sound) bool
	StartMusic()
	PauseMusic(paused bool)
	StopMusic()
}

// Player turns session events into sounds.
type Player struct {
	sink   Sink
	paused bool
}

// NewPlayer creates a player for the given sink.
func NewPlayer(sink Sink) *Player {
	return &Player{sink: sink}
}

// Handle plays the sounds for one tick's worth of events.
// Several explosions in the same tick collapse into one sound.
func (p *Player) Handle(events []spacewar.Event) {
	if p == nil || p.sink == nil {
		return
	}
	exploded := false
	for _, ev := range events {
		switch ev.Kind {
		case spacewar.EventSessionStarted:
			p.paused = false
			p.sink.Play(SoundStart)
			p.sink.StopMusic()
			p.sink.StartMusic()
		case spacewar.EventBulletFired:
			p.sink.Play(SoundFire)
		case spacewar.EventExplosion:
			if !exploded {
				p.sink.Play(SoundExplosion)
				exploded = true
			}
		case spacewar.EventSessionEnded:
			p.sink.StopMusic()
			p.sink.Play(SoundGameOver)
		}
	}
}

// SetPaused keeps the music in step with the session's pause state.
func (p *Player) SetPaused(paused bool) {
	if p == nil || p.sink == nil || p.paused == paused {
		return
	}
	p.paused = paused
	p.sink.PauseMusic(paused)
}
