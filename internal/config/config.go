// Package config provides application configuration.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/alexanderramin/dayframe/internal/domain"
	"github.com/joho/godotenv"
)

// DefaultUserID is used when DAYFRAME_USER is unset; the CLI is single-user.
const DefaultUserID = "default"

// Config holds the settings shared by every command. Model settings live
// in llm.LoadConfig.
type Config struct {
	DBPath   string
	UserID   string
	UserName string
	Location *time.Location
	LogFile  string
}

// Load reads an optional .env file and then DAYFRAME_* environment
// variables. Variables already set in the environment win over the file.
func Load(envFiles ...string) (*Config, error) {
	if err := loadEnvFiles(envFiles); err != nil {
		return nil, err
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("finding home directory: %w", err)
	}
	dataDir := filepath.Join(home, ".dayframe")

	cfg := &Config{
		DBPath:   domain.CoalesceStr(os.Getenv("DAYFRAME_DB"), filepath.Join(dataDir, "dayframe.db")),
		UserID:   domain.CoalesceStr(os.Getenv("DAYFRAME_USER"), DefaultUserID),
		UserName: os.Getenv("DAYFRAME_USER_NAME"),
		LogFile:  domain.CoalesceStr(os.Getenv("DAYFRAME_LOG_FILE"), filepath.Join(dataDir, "dayframe.log")),
		Location: time.Local,
	}

	if tz := os.Getenv("DAYFRAME_TZ"); tz != "" {
		loc, err := time.LoadLocation(tz)
		if err != nil {
			return nil, fmt.Errorf("invalid DAYFRAME_TZ %q: %w", tz, err)
		}
		cfg.Location = loc
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Validate checks that all required configuration fields are set.
func (c *Config) Validate() error {
	if c.DBPath == "" {
		return errors.New("DAYFRAME_DB cannot be empty")
	}
	if c.UserID == "" {
		return errors.New("DAYFRAME_USER cannot be empty")
	}
	return nil
}

// Now returns the current time in the configured location, so calendar
// days follow the user's timezone.
func (c *Config) Now() time.Time {
	return time.Now().In(c.Location)
}

func loadEnvFiles(paths []string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("loading %s: %w", p, err)
		}
	}
	return nil
}
