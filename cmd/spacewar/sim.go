package main

import (
	"math"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/spacewar/internal/config"
	"github.com/vovakirdan/spacewar/internal/games/spacewar"
)

var (
	flagSimSeconds float64
	flagSimConfig  string
	flagSimPreset  string
)

// autopilotFireMs is how often the autopilot pulls the trigger.
const autopilotFireMs = 250

var simCmd = &cobra.Command{
	Use:   "sim",
	Short: "Run a headless autopilot game",
	Long: `Run the simulation without a display. An autopilot strafes under the
lowest enemy and fires every 250ms until the ship is destroyed or the
time runs out. Phase changes and formations are logged with --verbose.

Examples:
  spacewar sim
  spacewar sim --seconds 300 --seed 42 -v
  spacewar sim --difficulty hard`,
	Args: cobra.NoArgs,
	Run:  runSim,
}

func init() {
	simCmd.Flags().Float64Var(&flagSimSeconds, "seconds", 60, "Simulated seconds to run")
	simCmd.Flags().StringVar(&flagSimConfig, "config", "", "Path to custom game config YAML")
	simCmd.Flags().StringVar(&flagSimPreset, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
}

func runSim(_ *cobra.Command, _ []string) {
	preset, err := config.ParsePreset(flagSimPreset)
	if err != nil {
		fail("%v", err)
	}
	cfg, err := loadConfig(flagSimConfig, preset)
	if err != nil {
		fail("cannot load config: %v", err)
	}

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	start := time.Now()
	rep := simulate(cfg, seed, flagSimSeconds, logger.WithPrefix("session"))
	logger.Info("simulation finished",
		"seed", seed,
		"ticks", rep.Ticks,
		"simulated", time.Duration(rep.ElapsedMs)*time.Millisecond,
		"phase", rep.Phase,
		"tier", rep.Tier+1,
		"score", rep.Score,
		"kills", rep.Kills,
		"shots", rep.Shots,
		"formations", rep.Formations,
		"ended", rep.Ended,
		"wall", time.Since(start).Round(time.Millisecond),
	)
}

// simReport summarises a headless run.
type simReport struct {
	Ticks        int
	ElapsedMs    float64
	Phase        spacewar.Phase
	Tier         int
	Score        int
	Kills        int
	Shots        int
	Spawns       int
	Formations   int
	PhaseChanges int
	Ended        bool
}

// simulate plays one session at 60 Hz with the autopilot.
func simulate(cfg config.SpacewarConfig, seed int64, seconds float64, l *log.Logger) simReport {
	s := spacewar.NewSession(cfg, spacewar.WithSeed(seed), spacewar.WithLogger(l))
	s.Start(0)

	var (
		rep      simReport
		pilot    autopilot
		dt       = 1000.0 / 60.0
		budgetMs = seconds * 1000
	)
	for rep.ElapsedMs < budgetMs && !s.Ended() {
		pilot.steer(s, dt)
		res := s.Tick(dt)
		rep.Ticks++
		rep.ElapsedMs += dt

		for _, ev := range res.Events {
			switch ev.Kind {
			case spacewar.EventBulletFired:
				rep.Shots++
			case spacewar.EventEnemySpawned:
				rep.Spawns++
			case spacewar.EventFormationStarted:
				rep.Formations++
			case spacewar.EventPhaseChanged:
				rep.PhaseChanges++
			case spacewar.EventExplosion:
				rep.Kills++
			}
		}
	}

	snap := s.Snapshot()
	rep.Phase = snap.Phase
	rep.Tier = snap.Tier
	rep.Score = s.FinalScore()
	rep.Ended = s.Ended()
	if rep.Ended {
		rep.Kills-- // the ship's own explosion
	}
	return rep
}

// autopilot strafes under the lowest enemy and fires on a timer.
type autopilot struct {
	sinceShot float64
	sweepLeft bool
}

func (a *autopilot) steer(s *spacewar.Session, dt float64) {
	snap := s.Snapshot()
	p := snap.Player
	px, _ := p.Center()

	target, ok := lowestEnemyX(snap.Enemies)
	if !ok {
		// Sweep between the walls while the field is empty.
		if p.X <= 0 {
			a.sweepLeft = false
		} else if p.Right() >= snap.ViewportW {
			a.sweepLeft = true
		}
		if a.sweepLeft {
			target = 0
		} else {
			target = snap.ViewportW
		}
	}

	const deadZone = 4
	s.SetDirection(spacewar.DirLeft, target < px-deadZone)
	s.SetDirection(spacewar.DirRight, target > px+deadZone)

	a.sinceShot += dt
	if a.sinceShot >= autopilotFireMs {
		if s.Fire() {
			a.sinceShot = 0
		}
	}
}

// lowestEnemyX returns the center x of the enemy nearest the bottom.
func lowestEnemyX(enemies []spacewar.Enemy) (float64, bool) {
	best, bestY := 0.0, math.Inf(-1)
	for _, e := range enemies {
		if e.Y > bestY {
			cx, _ := e.Center()
			best, bestY = cx, e.Y
		}
	}
	return best, len(enemies) > 0
}
