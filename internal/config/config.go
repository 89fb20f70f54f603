package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

type Config struct {
	Port         string
	DBPath       string
	ArchivePath  string
	APIToken     string
	Timezone     string
	PageSize     int
	ReminderTime string // "HH:MM", morning recording reminder
}

func Load() (*Config, error) {
	pageSize, err := strconv.Atoi(getEnv("DREAM_PAGE_SIZE", "10"))
	if err != nil || pageSize < 1 {
		return nil, fmt.Errorf("DREAM_PAGE_SIZE must be a positive integer")
	}

	cfg := &Config{
		Port:         getEnv("DREAM_PORT", "8080"),
		DBPath:       getEnv("DREAM_DB_PATH", ""),
		ArchivePath:  getEnv("DREAM_ARCHIVE_PATH", ""),
		APIToken:     getEnv("DREAM_API_TOKEN", ""),
		Timezone:     getEnv("DREAM_TIMEZONE", "UTC"),
		PageSize:     pageSize,
		ReminderTime: getEnv("DREAM_REMINDER_TIME", "08:00"),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if c.DBPath == "" {
		return fmt.Errorf("DREAM_DB_PATH is required")
	}
	if c.ArchivePath == "" {
		return fmt.Errorf("DREAM_ARCHIVE_PATH is required")
	}
	if c.APIToken == "" {
		return fmt.Errorf("DREAM_API_TOKEN is required")
	}
	if _, _, err := c.ReminderClock(); err != nil {
		return err
	}
	return nil
}

// ReminderClock parses ReminderTime into hour and minute.
func (c *Config) ReminderClock() (hour, minute int, err error) {
	parts := strings.SplitN(c.ReminderTime, ":", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("DREAM_REMINDER_TIME must be HH:MM, got %q", c.ReminderTime)
	}
	hour, err = strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return 0, 0, fmt.Errorf("DREAM_REMINDER_TIME has invalid hour %q", parts[0])
	}
	minute, err = strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return 0, 0, fmt.Errorf("DREAM_REMINDER_TIME has invalid minute %q", parts[1])
	}
	return hour, minute, nil
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
