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

type RPCConfig struct {
	URL            string `mapstructure:"url"`
	Network        string `mapstructure:"network"`
	TimeoutSeconds int    `mapstructure:"timeoutSeconds"`
}

type NavConfig struct {
	URL            string `mapstructure:"url"`
	APIKey         string `mapstructure:"apiKey"`
	Denom          string `mapstructure:"denom"`
	TimeoutSeconds int    `mapstructure:"timeoutSeconds"`
}

type CollectorConfig struct {
	Enabled     bool  `mapstructure:"enabled"`
	Interval    int   `mapstructure:"interval"`
	NavPageSize int   `mapstructure:"navPageSize"`
	SupplyNano  int64 `mapstructure:"supplyNano"`
}

type StorageConfig struct {
	Redis  *RedisConfig  `mapstructure:"redis"`
	Memory *MemoryConfig `mapstructure:"memory"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	PoolSize int    `mapstructure:"poolSize"`
}

type MemoryConfig struct {
	MaxItems int `mapstructure:"maxItems"`
}

type MetricsConfig struct {
	Enabled bool `mapstructure:"enabled"`
	Port    int  `mapstructure:"port"`
}

type Config struct {
	RPC       RPCConfig       `mapstructure:"rpc"`
	Nav       NavConfig       `mapstructure:"nav"`
	Log       LogConfig       `mapstructure:"log"`
	Collector CollectorConfig `mapstructure:"collector"`
	Storage   StorageConfig   `mapstructure:"storage"`
	Metrics   MetricsConfig   `mapstructure:"metrics"`
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

	// sets e.g. RPC_URL to rpc.url
	replacer := strings.NewReplacer(".", "_")
	viper.SetEnvKeyReplacer(replacer)

	viper.AutomaticEnv()

	err := viper.Unmarshal(&Cfg)
	if err != nil {
		return fmt.Errorf("error unmarshalling config: %v", err)
	}

	return nil
}
