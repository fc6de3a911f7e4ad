package config

import (
	"os"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/ykhdr/hashprobe/internal/kdl"
)

const DefaultConfigPath = "./config/config.kdl"

// InitializeConfig loads the config file named by args[0], or the default path
// when args is empty, and sets up logging from it. A missing default file is
// not an error: defaultCfg is used as is.
func InitializeConfig[T any](args []string, defaultCfg T) (*T, error) {
	configPath := DefaultConfigPath
	explicit := false
	if len(args) > 0 && args[0] != "" {
		configPath = args[0]
		explicit = true
	}
	config, err := kdl.Unmarshal[T](configPath, defaultCfg)
	if err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			setupLogger(&defaultCfg)
			log.Debug().Str("path", configPath).Msg("Config file not found, using defaults")
			return &defaultCfg, nil
		}
		return nil, errors.Wrapf(err, "load config %s", configPath)
	}
	setupLogger(&config)
	return &config, nil
}
