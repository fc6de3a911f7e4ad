package config

import (
	"github.com/ykhdr/hashprobe/internal/config"
	"github.com/ykhdr/hashprobe/internal/crack"
	"github.com/ykhdr/hashprobe/internal/dictionary"
	"github.com/ykhdr/hashprobe/internal/store/mongo"
)

type CrackConfig struct {
	ProgressEvery int `kdl:"progress-every"`
	DisplayWidth  int `kdl:"display-width"`
}

type GenerateConfig struct {
	ProgressEvery    int   `kdl:"progress-every"`
	ConfirmThreshold int64 `kdl:"confirm-threshold"`
}

// BruteForceConfig holds the defaults for enumerated candidates when the
// command line does not override them.
type BruteForceConfig struct {
	Chars string `kdl:"chars"`
	Range string `kdl:"range"`
}

type ProbeConfig struct {
	config.LogConfig
	Crack      *CrackConfig      `kdl:"crack"`
	Generate   *GenerateConfig   `kdl:"generate"`
	BruteForce *BruteForceConfig `kdl:"brute-force"`
	MongoDB    *mongo.Config     `kdl:"mongodb"`
}

func DefaultConfig() *ProbeConfig {
	return &ProbeConfig{
		LogConfig: config.LogConfig{LogLevel: "warn"},
		Crack: &CrackConfig{
			ProgressEvery: crack.DefaultProgressEvery,
			DisplayWidth:  crack.DefaultDisplayWidth,
		},
		Generate: &GenerateConfig{
			ProgressEvery:    dictionary.DefaultProgressEvery,
			ConfirmThreshold: 1_000_000,
		},
		BruteForce: &BruteForceConfig{
			Chars: "abcdefghijklmnopqrstuvwxyz0123456789",
			Range: "1-4",
		},
		MongoDB: &mongo.Config{
			Database: mongo.DefaultDatabase,
		},
	}
}

func InitializeConfig(args []string) (*ProbeConfig, error) {
	return config.InitializeConfig[ProbeConfig](args, *DefaultConfig())
}
