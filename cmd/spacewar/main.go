// spacewar is a vertical arcade shooter for the terminal, a desktop window
// and SSH.
//
// Usage:
//
//	spacewar play             - Play in the terminal
//	spacewar menu             - Start menu with difficulty picker and scoreboard
//	spacewar window           - Play in a desktop window
//	spacewar serve            - Start SSH server for remote play
//	spacewar scores           - Show high scores
//	spacewar sim              - Run a headless autopilot game
//	spacewar config           - Print the default game config
//
// Global flags:
//
//	--fps <rate>    - Set tick rate (default: 60)
//	--seed <value>  - Set RNG seed for reproducible gameplay
//	--db <path>     - Set database path (default: ~/.spacewar/scores.db)
//	--verbose       - Log simulation details
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/spacewar/internal/storage"
)

var (
	// Global flags
	flagFPS     int
	flagSeed    int64
	flagDBPath  string
	flagVerbose bool

	logger *log.Logger
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "spacewar",
	Short: "Spacewar - shoot down waves of descending enemies",
	Long: `Spacewar is a vertical arcade shooter. Steer the ship at the bottom of
the field, shoot the enemies coming down and survive the rush phases.

Available commands:
  play     - Play in the terminal
  menu     - Interactive menu with difficulty picker and scoreboard
  window   - Play in a desktop window
  serve    - Start SSH server for remote play
  scores   - View high scores
  sim      - Run a headless autopilot game
  config   - Print the default game config

Examples:
  spacewar play
  spacewar play --difficulty hard
  spacewar window
  spacewar serve --ssh :2222
  spacewar sim --seconds 120 --seed 42`,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		// .env is optional; real environment variables win.
		_ = godotenv.Load()
		logger = newLogger(flagVerbose)
	},
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", storage.DefaultPath, "Path to scores database")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Enable debug logging")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(windowCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(simCmd)
	rootCmd.AddCommand(configCmd)
}

func newLogger(verbose bool) *log.Logger {
	l := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.Kitchen,
		Prefix:          "spacewar",
	})
	if verbose {
		l.SetLevel(log.DebugLevel)
	}
	return l
}
