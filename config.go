package taxonecs

import (
	"os"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Config holds the tunables that otherwise would have been compiled-in
// fixed constants (teishoku's ChunkSize, MaxComponentTypes). Loaded from
// either TOML or YAML depending on which the deployment already uses.
type Config struct {
	InitialEntityCapacity  int    `toml:"initial_entity_capacity" yaml:"initial_entity_capacity"`
	SchedulerMaxIterations int    `toml:"scheduler_max_iterations" yaml:"scheduler_max_iterations"`
	LogLevel               string `toml:"log_level" yaml:"log_level"`
}

// DefaultConfig returns the baseline configuration that LoadConfigTOML and
// LoadConfigYAML overlay. NewWorld and NewScheduler use the Config they are
// given; NewScheduler alone falls back to a 10000-iteration guard when
// SchedulerMaxIterations is not positive.
func DefaultConfig() Config {
	return Config{
		InitialEntityCapacity:  1024,
		SchedulerMaxIterations: 10000,
		LogLevel:               "info",
	}
}

// LoadConfigTOML reads a Config from a TOML file, starting from
// DefaultConfig and overlaying whatever fields the file sets.
func LoadConfigTOML(path string) (Config, error) {
	cfg := DefaultConfig()
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadConfigYAML reads a Config from a YAML file, starting from
// DefaultConfig and overlaying whatever fields the file sets.
func LoadConfigYAML(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
