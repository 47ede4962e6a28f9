package spacewar

// EventKind identifies a discrete trigger emitted by the session.
type EventKind int

const (
	EventSessionStarted EventKind = iota
	EventSessionEnded
	EventExplosion
	EventEnemySpawned
	EventBulletFired
	EventPhaseChanged
	EventFormationStarted
)

func (k EventKind) String() string {
	switch k {
	case EventSessionStarted:
		return "session-started"
	case EventSessionEnded:
		return "session-ended"
	case EventExplosion:
		return "explosion"
	case EventEnemySpawned:
		return "enemy-spawned"
	case EventBulletFired:
		return "bullet-fired"
	case EventPhaseChanged:
		return "phase-changed"
	case EventFormationStarted:
		return "formation-started"
	default:
		return "unknown"
	}
}

// Event is a trigger for collaborators such as audio.
// Only the fields relevant to Kind are set.
type Event struct {
	Kind   EventKind
	X, Y   float64
	Enemy  EnemyKind // EventEnemySpawned
	Phase  Phase     // EventPhaseChanged: the new phase
	Layout Layout    // EventFormationStarted
	Count  int       // EventFormationStarted: number of entries
	Score  int       // EventSessionEnded: final score
}

// TickResult is what a Tick returns to the host.
type TickResult struct {
	Events []Event
	Score  int
	Ended  bool
}

// Has reports whether the result contains an event of the given kind.
func (r TickResult) Has(kind EventKind) bool {
	return r.Count(kind) > 0
}

// Count returns how many events of the given kind the result contains.
func (r TickResult) Count(kind EventKind) int {
	n := 0
	for _, e := range r.Events {
		if e.Kind == kind {
			n++
		}
	}
	return n
}
