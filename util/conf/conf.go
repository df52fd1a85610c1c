package conf

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DEFAULT_BATCH_SIZE = 32
	DEFAULT_WORKERS    = 1
)

// Conf holds the runtime options of the parser. Zero values fall back to
// the defaults applied by Read.
type Conf struct {
	BatchSize          int      `yaml:"batch_size"`
	Workers            int      `yaml:"workers"`
	MaxSteps           int      `yaml:"max_steps"`
	CacheBytes         int      `yaml:"cache_bytes"`
	Labels             []string `yaml:"labels"`
	ShowConsiderations bool     `yaml:"show_considerations"`
}

func Default() *Conf {
	return &Conf{
		BatchSize: DEFAULT_BATCH_SIZE,
		Workers:   DEFAULT_WORKERS,
	}
}

func Read(reader io.Reader) (*Conf, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, err
	}
	c := Default()
	if err := yaml.Unmarshal(data, c); err != nil {
		return nil, fmt.Errorf("unmarshal configuration: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func ReadFile(filename string) (*Conf, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return Read(file)
}

func (c *Conf) Validate() error {
	switch {
	case c.BatchSize < 1:
		return fmt.Errorf("batch_size must be positive, got %d", c.BatchSize)
	case c.Workers < 1:
		return fmt.Errorf("workers must be positive, got %d", c.Workers)
	case c.MaxSteps < 0:
		return fmt.Errorf("max_steps must not be negative, got %d", c.MaxSteps)
	case c.CacheBytes < 0:
		return fmt.Errorf("cache_bytes must not be negative, got %d", c.CacheBytes)
	}
	return nil
}
