package spacewar

// Snapshot is a read-only copy of the session for renderers.
// Slices are owned by the snapshot and may be kept across ticks.
type Snapshot struct {
	ViewportW, ViewportH float64

	ElapsedMs        float64
	PhaseElapsedMs   float64
	Phase            Phase
	Warning          bool
	WarningIntensity float64

	Score     int
	HighScore int
	Paused    bool
	Started   bool
	Ended     bool

	Player     Player
	Enemies    []Enemy
	Bullets    []Bullet
	Explosions []Explosion
	Stars      []Star

	FormationActive bool
	FormationCursor int
	FormationLen    int
	Tier            int
}

// Snapshot copies the current state.
func (s *Session) Snapshot() Snapshot {
	settings := s.controller.Compute(s.score, s.phases.phase, s.elapsedMs)

	return Snapshot{
		ViewportW:        s.cfg.Viewport.Width,
		ViewportH:        s.cfg.Viewport.Height,
		ElapsedMs:        s.elapsedMs,
		PhaseElapsedMs:   s.phases.elapsedMs,
		Phase:            s.phases.phase,
		Warning:          s.phases.warning,
		WarningIntensity: s.phases.warningIntensity,
		Score:            s.score,
		HighScore:        s.HighScore(),
		Paused:           s.paused,
		Started:          s.started,
		Ended:            s.ended,
		Player:           s.player,
		Enemies:          append([]Enemy(nil), s.enemies...),
		Bullets:          append([]Bullet(nil), s.bullets...),
		Explosions:       append([]Explosion(nil), s.explosions...),
		Stars:            s.stars.Stars(),
		FormationActive:  s.formation.Active(),
		FormationCursor:  s.formation.Cursor(),
		FormationLen:     s.formation.Len(),
		Tier:             settings.TierIndex,
	}
}
