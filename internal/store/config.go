package store

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	DatabaseURL string `yaml:"database_url"`
	Matching    struct {
		Method string `yaml:"method"`
	} `yaml:"matching"`
	Report struct {
		Start string `yaml:"start"`
		End   string `yaml:"end"`
	} `yaml:"report"`
	Export struct {
		CSVPath string `yaml:"csv_path"`
	} `yaml:"export"`
}

func (c *Config) Validate() error {
	if c.DatabaseURL == "" {
		return errors.New("database_url cannot be empty")
	}
	if c.Report.Start != "" {
		if _, err := time.Parse("2006-01-02", c.Report.Start); err != nil {
			return fmt.Errorf("invalid report.start '%s': must be YYYY-MM-DD", c.Report.Start)
		}
	}
	if c.Report.End != "" {
		if _, err := time.Parse("2006-01-02", c.Report.End); err != nil {
			return fmt.Errorf("invalid report.end '%s': must be YYYY-MM-DD", c.Report.End)
		}
	}
	return nil
}

func LoadConfig(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, err
	}

	if c.Matching.Method == "" {
		c.Matching.Method = "fifo"
	}
	// Environment wins over the file so deployments can point at another database.
	if url := os.Getenv("DATABASE_URL"); url != "" {
		c.DatabaseURL = url
	}

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &c, nil
}
