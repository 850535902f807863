package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

type LogConfig struct {
	Level    string `mapstructure:"level"`
	Prettify bool   `mapstructure:"prettify"`
}

type BeaconConfig struct {
	Endpoint string `mapstructure:"endpoint"`
}

type ExecutionConfig struct {
	URL string `mapstructure:"url"`
}

type BlobscanConfig struct {
	Endpoint string `mapstructure:"endpoint"`
	Secret   string `mapstructure:"secret"`
}

// RetryConfig parameterizes the exponential backoff applied to transient
// slot processing failures.
type RetryConfig struct {
	InitialIntervalMs int     `mapstructure:"initialIntervalMs"`
	Multiplier        float64 `mapstructure:"multiplier"`
	MaxIntervalMs     int     `mapstructure:"maxIntervalMs"`
	MaxElapsedTimeMs  int     `mapstructure:"maxElapsedTimeMs"`
}

type SyncConfig struct {
	Enabled         bool   `mapstructure:"enabled"`
	FromSlot        uint64 `mapstructure:"fromSlot"`
	UntilSlot       uint64 `mapstructure:"untilSlot"`
	SlotsPerChunk   int    `mapstructure:"slotsPerChunk"`
	ParallelWorkers int    `mapstructure:"parallelWorkers"`
	IntervalMs      int    `mapstructure:"intervalMs"`
}

type HeadTrackerConfig struct {
	IntervalMs int `mapstructure:"intervalMs"`
}

type APIConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Host    string `mapstructure:"host"`
	Port    int    `mapstructure:"port"`
}

type StorageConfig struct {
	Orchestrator StorageConnectionConfig `mapstructure:"orchestrator"`
}

type StorageConnectionConfig struct {
	Redis  *RedisConfig  `mapstructure:"redis"`
	Memory *MemoryConfig `mapstructure:"memory"`
}

type RedisConfig struct {
	Addr      string `mapstructure:"addr"`
	Password  string `mapstructure:"password"`
	DB        int    `mapstructure:"db"`
	PoolSize  int    `mapstructure:"poolSize"`
	KeyPrefix string `mapstructure:"keyPrefix"`
}

type MemoryConfig struct{}

type Config struct {
	Beacon      BeaconConfig      `mapstructure:"beacon"`
	Execution   ExecutionConfig   `mapstructure:"execution"`
	Blobscan    BlobscanConfig    `mapstructure:"blobscan"`
	Retry       RetryConfig       `mapstructure:"retry"`
	Sync        SyncConfig        `mapstructure:"sync"`
	HeadTracker HeadTrackerConfig `mapstructure:"headTracker"`
	API         APIConfig         `mapstructure:"api"`
	Storage     StorageConfig     `mapstructure:"storage"`
	Log         LogConfig         `mapstructure:"log"`
}

var Cfg Config

func LoadConfig(cfgFile string) error {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
		if err := viper.ReadInConfig(); err != nil {
			return fmt.Errorf("error reading config file, %s", err)
		}
	} else {
		viper.SetConfigName("config")
		viper.AddConfigPath("./configs")

		if err := viper.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return fmt.Errorf("error reading config file, %s", err)
			}
		}
	}

	// sets e.g. BEACON_ENDPOINT to beacon.endpoint
	replacer := strings.NewReplacer(".", "_")
	viper.SetEnvKeyReplacer(replacer)

	viper.AutomaticEnv()

	err := viper.Unmarshal(&Cfg)
	if err != nil {
		return fmt.Errorf("error unmarshalling config: %v", err)
	}

	return nil
}
