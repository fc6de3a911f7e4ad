package config

import "github.com/ykhdr/hashprobe/internal/logging"

// LogConfig is embedded by command configs to carry the `log-level` node.
type LogConfig struct {
	LogLevel string `kdl:"log-level"`
}

// Level is the parsed log level; an empty or unknown value means info.
func (c *LogConfig) Level() logging.Level {
	return logging.ParseLevel(c.LogLevel)
}

type leveled interface {
	Level() logging.Level
}

// setupLogger installs the global logger at the level cfg asks for and
// returns that level.
func setupLogger(cfg any) logging.Level {
	level := logging.InfoLevel
	if lc, ok := cfg.(leveled); ok {
		level = lc.Level()
	}
	logging.Setup(level)
	return level
}
