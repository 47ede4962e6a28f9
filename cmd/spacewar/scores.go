package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/spacewar/internal/games/spacewar"
	"github.com/vovakirdan/spacewar/internal/storage"
)

var (
	flagScoresLimit int
	flagAllScores   bool
	flagClear       bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show high scores",
	Long: `Display the top spacewar scores and overall statistics.

Examples:
  spacewar scores
  spacewar scores --limit 20
  spacewar scores --all
  spacewar scores --clear`,
	Args: cobra.NoArgs,
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of scores to show")
	scoresCmd.Flags().BoolVar(&flagAllScores, "all", false, "Show every recorded score")
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete all recorded scores")
}

func runScores(_ *cobra.Command, _ []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fail("cannot open scores database: %v", err)
	}
	defer store.Close()

	if flagClear {
		if err := store.ClearScores(spacewar.GameID); err != nil {
			fail("%v", err)
		}
		fmt.Println("Scores cleared.")
		return
	}

	scores, err := listScores(store, flagAllScores, flagScoresLimit)
	if err != nil {
		fail("cannot retrieve scores: %v", err)
	}

	fmt.Println("High Scores - Spacewar")
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Println("Play 'spacewar play' to set the first high score!")
		return
	}

	fmt.Printf("  %-4s  %-8s  %-8s  %-6s  %s\n", "Rank", "Score", "Level", "Time", "Date")
	fmt.Printf("  %-4s  %-8s  %-8s  %-6s  %s\n", "----", "-----", "-----", "----", "----")
	for i, entry := range scores {
		fmt.Printf("  %-4d  %-8d  %-8s  %-6s  %s\n",
			i+1, entry.Score, entry.Difficulty, formatRunTime(entry.DurationMs),
			entry.CreatedAt.Format("2006-01-02 15:04"))
	}

	fmt.Println()
	if stats, err := store.GetGameStats(spacewar.GameID); err == nil {
		fmt.Printf("Best: %d   Games: %d   Average: %.0f   Longest run: %s\n",
			stats.HighScore, stats.GamesCount, stats.AvgScore, formatRunTime(stats.LongestRunMs))
	}
}

// listScores returns the best limit scores, or every score when all is set.
func listScores(store *storage.Store, all bool, limit int) ([]storage.ScoreEntry, error) {
	if all {
		return store.AllScores(spacewar.GameID)
	}
	return store.TopScores(spacewar.GameID, limit)
}

func formatRunTime(ms int64) string {
	s := ms / 1000
	return fmt.Sprintf("%d:%02d", s/60, s%60)
}
