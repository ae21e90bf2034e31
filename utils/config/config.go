// Package config loads the tunables shared by the file and stream programs from the environment.
package config

import (
	"github.com/kelseyhightower/envconfig"
	"github.com/spf13/pflag"
	"github.com/ugparu/hevcbs/utils"
	"github.com/ugparu/hevcbs/utils/nal"
)

// Prefix of every environment variable, e.g. HEVCBS_LOG_LEVEL.
const Prefix = "hevcbs"

type Config struct {
	LogLevel   string `split_words:"true" default:"info"`
	ReadSize   int    `split_words:"true" default:"8192"`
	Extension  string `default:"h265"`
	OutputDir  string `split_words:"true" default:"."`
	MaxBatch   int    `split_words:"true" default:"5"`
	StatusAddr string `split_words:"true"`
}

// Load reads the configuration from the environment and validates it.
func Load() (*Config, error) {
	var c Config
	if err := envconfig.Process(Prefix, &c); err != nil {
		return nil, &utils.ConfigError{Msg: err.Error()}
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

func (c *Config) Validate() error {
	switch {
	case c.ReadSize < nal.MinResident:
		return &utils.ConfigError{Msg: "read size must hold at least one start code and header"}
	case c.MaxBatch <= 0:
		return &utils.ConfigError{Msg: "max batch must be positive"}
	case c.Extension == "":
		return &utils.ConfigError{Msg: "extension must not be empty"}
	}
	return nil
}

// Flags returns a flag set whose flags default to the loaded values and override them on Parse.
// Positional arguments stay available through Args.
func (c *Config) Flags(name string) *pflag.FlagSet {
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.StringVar(&c.LogLevel, "log-level", c.LogLevel, "log level (trace, debug, info, warning, error)")
	fs.IntVar(&c.ReadSize, "read-size", c.ReadSize, "file mode scan region size in bytes")
	fs.StringVar(&c.Extension, "extension", c.Extension, "file mode unit file extension")
	fs.StringVar(&c.OutputDir, "output-dir", c.OutputDir, "file mode unit file directory")
	fs.IntVar(&c.MaxBatch, "max-batch", c.MaxBatch, "stream mode units per access unit")
	fs.StringVar(&c.StatusAddr, "status-addr", c.StatusAddr, "stream mode status server address, empty to disable")
	return fs
}

// Parse applies command line flags on top of c and returns the positional arguments.
func (c *Config) Parse(name string, argv []string) ([]string, error) {
	fs := c.Flags(name)
	if err := fs.Parse(argv); err != nil {
		return nil, &utils.ConfigError{Msg: err.Error()}
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return fs.Args(), nil
}
