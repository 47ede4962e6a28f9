package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/spacewar/internal/config"
)

var flagInitConfig bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the default game config",
	Long: `Print the built-in game configuration as YAML.

Any subset of these keys can be put in a file and passed with --config,
or saved as ~/.spacewar/configs/spacewar.yaml to apply to every game.

Examples:
  spacewar config > my-spacewar.yaml
  spacewar config --init`,
	Args: cobra.NoArgs,
	Run:  runConfig,
}

func init() {
	configCmd.Flags().BoolVar(&flagInitConfig, "init", false, "Write the defaults to ~/.spacewar/configs/spacewar.yaml")
}

func runConfig(cmd *cobra.Command, _ []string) {
	if !flagInitConfig {
		_, _ = cmd.OutOrStdout().Write(config.GetDefaultYAML())
		return
	}

	path := config.UserConfigPath()
	if path == "" {
		fail("cannot locate home directory")
	}
	if err := writeDefaultConfig(path); err != nil {
		fail("%v", err)
	}
	fmt.Printf("Default config written to %s\n", path)
}

// writeDefaultConfig saves the built-in YAML to path. An existing file is
// left untouched.
func writeDefaultConfig(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%s already exists", path)
	} else if !errors.Is(err, os.ErrNotExist) {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, config.GetDefaultYAML(), 0o644)
}
