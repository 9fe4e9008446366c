package main

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"riderdispatch/internal/adapters/out/apiclient"
	"riderdispatch/internal/adapters/out/geo"
	"riderdispatch/internal/rider"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const envPrefix = "RIDER"

var (
	ErrBaseURLIsRequired = errors.New("base url is required (--base-url or RIDER_BASE_URL)")
	ErrTokenIsRequired   = errors.New("token is required (--token or RIDER_TOKEN)")
	ErrRiderIsRequired   = errors.New("rider id is required (--rider-id or RIDER_RIDER_ID)")
)

// cliConfig is resolved from flags, RIDER_* variables and an optional config file,
// in that order of precedence.
type cliConfig struct {
	BaseURL          string        `mapstructure:"base_url"`
	Token            string        `mapstructure:"token"`
	RiderID          string        `mapstructure:"rider_id"`
	Timeout          time.Duration `mapstructure:"timeout"`
	PollInterval     time.Duration `mapstructure:"poll_interval"`
	LocationInterval time.Duration `mapstructure:"location_interval"`
	StartPosition    []float64     `mapstructure:"start_position"`
	JWTSecret        string        `mapstructure:"jwt_secret"`
	Verbose          bool          `mapstructure:"verbose"`
}

// flagKeys maps flag names to config keys.
var flagKeys = map[string]string{
	"base-url":          "base_url",
	"token":             "token",
	"rider-id":          "rider_id",
	"timeout":           "timeout",
	"poll-interval":     "poll_interval",
	"location-interval": "location_interval",
	"start-position":    "start_position",
	"jwt-secret":        "jwt_secret",
	"verbose":           "verbose",
}

func registerFlags(flags *pflag.FlagSet) {
	flags.String("config", "", "config file (default $HOME/.rider.yaml)")
	flags.String("base-url", "http://localhost:8080", "dispatch service base url")
	flags.String("token", "", "bearer token")
	flags.String("rider-id", "", "rider id")
	flags.Duration("timeout", apiclient.DefaultTimeout, "request timeout")
	flags.Duration("poll-interval", rider.DefaultPollInterval, "notification poll interval")
	flags.Duration("location-interval", geo.DefaultInterval, "simulated location update interval")
	flags.String("start-position", "", "simulated start position as lat,lon (random when empty)")
	flags.String("jwt-secret", "", "signing secret for the token command")
	flags.BoolP("verbose", "v", false, "debug logging")
}

func newViper(flags *pflag.FlagSet) (*viper.Viper, error) {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	for name, key := range flagKeys {
		if f := flags.Lookup(name); f != nil {
			if err := v.BindPFlag(key, f); err != nil {
				return nil, err
			}
		}
	}

	configFile, _ := flags.GetString("config")
	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		return v, nil
	}

	v.SetConfigName(".rider")
	v.SetConfigType("yaml")
	v.AddConfigPath("$HOME")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}
	return v, nil
}

func loadConfig(v *viper.Viper) (cliConfig, error) {
	var config cliConfig
	decoderConfigOption := viper.DecoderConfigOption(func(dc *mapstructure.DecoderConfig) {
		dc.DecodeHook = mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		)
	})
	if err := v.Unmarshal(&config, decoderConfigOption); err != nil {
		return cliConfig{}, fmt.Errorf("unable to decode config: %w", err)
	}
	if len(config.StartPosition) != 0 && len(config.StartPosition) != 2 {
		return cliConfig{}, fmt.Errorf("start position must be lat,lon, got %v", config.StartPosition)
	}
	return config, nil
}

func (c cliConfig) requireClient() error {
	if c.BaseURL == "" {
		return ErrBaseURLIsRequired
	}
	if c.Token == "" {
		return ErrTokenIsRequired
	}
	return nil
}

func (c cliConfig) requireRider() error {
	if err := c.requireClient(); err != nil {
		return err
	}
	if c.RiderID == "" {
		return ErrRiderIsRequired
	}
	return nil
}
