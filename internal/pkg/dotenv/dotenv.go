package dotenv

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
)

// Load reads KEY=VALUE pairs from path into the process environment.
// Variables that are already set are left untouched. A missing file is not
// an error, loaded reports whether the file was found.
func Load(path string) (loaded bool, err error) {
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}

	if err := godotenv.Load(path); err != nil {
		return false, fmt.Errorf("load %s: %w", path, err)
	}
	return true, nil
}

// ApplyFlags lets command line flags override the environment:
// --port for PORT and --log-level for LOG_LEVEL.
func ApplyFlags(args []string) error {
	flags := flag.NewFlagSet("orderflow", flag.ContinueOnError)

	var portFlag, levelFlag string
	flags.StringVar(&portFlag, "port", "", "Server port (overrides PORT environment variable)")
	flags.StringVar(&levelFlag, "log-level", "", "Log level (overrides LOG_LEVEL environment variable)")

	if err := flags.Parse(args); err != nil {
		return fmt.Errorf("parse flags: %w", err)
	}

	overrides := map[string]string{
		"PORT":      portFlag,
		"LOG_LEVEL": levelFlag,
	}
	for key, value := range overrides {
		if value == "" {
			continue
		}
		if err := os.Setenv(key, value); err != nil {
			return fmt.Errorf("failed to set %s environment variable: %w", key, err)
		}
	}
	return nil
}
