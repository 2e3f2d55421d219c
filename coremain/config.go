package coremain

import (
	"time"

	"github.com/pmkol/midlist/mlog"
	"github.com/pmkol/midlist/pkg/bench"
)

type Config struct {
	Log     mlog.LogConfig `yaml:"log"`
	Include []string       `yaml:"include"`
	API     APIConfig      `yaml:"api"`
	Bench   bench.Config   `yaml:"bench"`
	Serve   ServeConfig    `yaml:"serve"`

	// Scripts are replayed by the replay command in addition to the
	// files given on the command line.
	Scripts []string `yaml:"scripts"`
}

type APIConfig struct {
	HTTP string `yaml:"http"`
}

type ServeConfig struct {
	// Interval between two bench rounds. Default is 10s.
	Interval time.Duration `yaml:"interval"`
}
