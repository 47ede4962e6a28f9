package spacewar

import (
	"math"
	"sort"
)

// Layout names a geometric formation.
type Layout string

const (
	LayoutTriangle Layout = "triangle"
	LayoutGrid     Layout = "grid"
	LayoutVShape   Layout = "v-shape"
	LayoutWave     Layout = "wave"
)

// AllLayouts lists the built-in layouts in a stable order.
var AllLayouts = []Layout{LayoutTriangle, LayoutGrid, LayoutVShape, LayoutWave}

// Entry is one timed spawn of a formation plan.
type Entry struct {
	X, Y        float64
	FireDelayMs float64
	Kind        EnemyKind
}

// spawnY is the top edge used by every layout so enemies enter from above.
const spawnY = -32

// BuildLayout computes the entries of a layout centred in a viewport of width w.
// pick is called once per entry, in entry order, to choose its kind.
// Unknown layouts produce an empty plan. The result is sorted by FireDelayMs.
func BuildLayout(layout Layout, w float64, pick func() EnemyKind) []Entry {
	var plan []Entry
	add := func(x, y, delay float64) {
		plan = append(plan, Entry{X: x, Y: y, FireDelayMs: delay, Kind: pick()})
	}

	switch layout {
	case LayoutTriangle:
		for row := 0; row < 5; row++ {
			n := row + 1
			startX := (w - float64(n*40+(n-1)*10)) / 2
			for i := 0; i < n; i++ {
				add(startX+float64(i*50), spawnY-float64(row*50), float64(300*(row*n+i)))
			}
		}
	case LayoutGrid:
		const rows, cols = 4, 4
		startX := (w - float64(cols*40+(cols-1)*10)) / 2
		for row := 0; row < rows; row++ {
			for col := 0; col < cols; col++ {
				add(startX+float64(col*50), spawnY-float64(row*50), float64(200*(row*cols+col)))
			}
		}
	case LayoutVShape:
		const cols = 7
		center := cols / 2
		startX := (w - cols*40) / 2
		for col := 0; col < cols; col++ {
			row := col - center
			if row < 0 {
				row = -row
			}
			add(startX+float64(col*40), spawnY-float64(row*40), float64(200*col))
		}
	case LayoutWave:
		const cols = 10
		startX := (w - cols*35) / 2
		for col := 0; col < cols; col++ {
			add(startX+float64(col*35), spawnY-math.Sin(float64(col)*0.5)*50, float64(150*col))
		}
	}

	sort.SliceStable(plan, func(i, j int) bool {
		return plan[i].FireDelayMs < plan[j].FireDelayMs
	})
	return plan
}

// Scheduler dispatches the entries of one formation plan as time advances.
// At most one plan is active at a time.
type Scheduler struct {
	plan      []Entry
	cursor    int
	elapsedMs float64
	active    bool
}

// Start activates a plan and resets the cursor and clock.
// An empty plan leaves the scheduler inactive.
func (s *Scheduler) Start(plan []Entry) {
	s.plan = plan
	s.cursor = 0
	s.elapsedMs = 0
	s.active = len(plan) > 0
	if !s.active {
		s.plan = nil
	}
}

// Advance accumulates deltaMs and calls spawn for every entry whose delay
// has been reached, in plan order. The plan is discarded after its last entry.
func (s *Scheduler) Advance(deltaMs float64, spawn func(Entry)) {
	if !s.active {
		return
	}
	s.elapsedMs += deltaMs

	for s.cursor < len(s.plan) && s.plan[s.cursor].FireDelayMs <= s.elapsedMs {
		spawn(s.plan[s.cursor])
		s.cursor++
	}
	if s.cursor >= len(s.plan) {
		s.Reset()
	}
}

// Active reports whether a plan is being dispatched.
func (s *Scheduler) Active() bool {
	return s.active
}

// Cursor returns the index of the next entry to fire.
func (s *Scheduler) Cursor() int {
	return s.cursor
}

// Len returns the length of the current plan.
func (s *Scheduler) Len() int {
	return len(s.plan)
}

// Reset drops any plan.
func (s *Scheduler) Reset() {
	*s = Scheduler{}
}
