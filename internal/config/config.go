package config

import (
	"fmt"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"

	"github.com/lambdaquery/lq/config"
	"github.com/lambdaquery/lq/constants"
	"github.com/lambdaquery/lq/internal/log"
	logPkg "github.com/lambdaquery/lq/log"
)

var (
	// decodeUsingConfigTagOption configures the mapstructure decoder to read the "config" tag.
	decodeUsingConfigTagOption viper.DecoderConfigOption = func(c *mapstructure.DecoderConfig) {
		c.TagName = "config"
		c.IgnoreUntaggedFields = true
	}
)

type viperConfig struct {
	v *viper.Viper
}

func (v *viperConfig) Unmarshal(key string, target any) error {
	return v.v.UnmarshalKey(key, target, decodeUsingConfigTagOption)
}

func newConfig() (config.Config, error) {
	v := viper.NewWithOptions(
		viper.EnvKeyReplacer(strings.NewReplacer(constants.Dot, constants.Underscore)),
		viper.KeyDelimiter(constants.Dot),
		viper.WithLogger(log.NewSLogger("config", 3, logPkg.LevelWarn)),
	)
	v.SetEnvPrefix(constants.EnvKeyPrefix)
	v.AllowEmptyEnv(true)
	v.AutomaticEnv()

	v.SetConfigName("lq")
	v.SetConfigType("toml")
	v.AddConfigPath(".")
	v.AddConfigPath("$" + constants.EnvConfigPath)

	if err := v.ReadInConfig(); err != nil {
		if _, notFound := err.(viper.ConfigFileNotFoundError); !notFound {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	return &viperConfig{v: v}, nil
}
