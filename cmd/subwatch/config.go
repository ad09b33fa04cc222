package main

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/tinytelemetry/subwatch/internal/model"

	"github.com/spf13/viper"
)

const (
	defaultAPIURL         = model.DefaultBaseURL
	defaultRequestTimeout = model.DefaultRequestTimeout
	defaultTimeFormat     = model.DefaultTimeFormat
	defaultSkin           = model.DefaultSkin
)

// cliConfig holds the monitor's runtime configuration.
type cliConfig struct {
	APIURL         string        `mapstructure:"api-url"`
	RequestTimeout time.Duration `mapstructure:"request-timeout"`
	TimeFormat     string        `mapstructure:"time-format"`
	Skin           string        `mapstructure:"skin"`
	Timezone       string        `mapstructure:"timezone"`
	ConfigPath     string        `mapstructure:"-"` // not from config file

	// Location is resolved from Timezone by validate.
	Location *time.Location `mapstructure:"-"`
}

func loadCLIConfig(configPath string) (cliConfig, error) {
	var cfg cliConfig

	v := viper.New()
	v.SetEnvPrefix("SUBWATCH")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))

	v.SetDefault("api-url", defaultAPIURL)
	v.SetDefault("request-timeout", defaultRequestTimeout)
	v.SetDefault("time-format", defaultTimeFormat)
	v.SetDefault("skin", defaultSkin)
	v.SetDefault("timezone", "")

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return cfg, fmt.Errorf("finding home directory: %w", err)
		}
		v.SetConfigFile(filepath.Join(home, ".config", "subwatch", "config.yml"))
	}

	if err := v.ReadInConfig(); err != nil {
		var configFileNotFound viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFound) && !os.IsNotExist(err) {
			return cfg, err
		}
	} else {
		cfg.ConfigPath = v.ConfigFileUsed()
	}

	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, err
	}
	if err := cfg.validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// validate checks the settings and resolves Location. An empty timezone
// means local time.
func (c *cliConfig) validate() error {
	u, err := url.Parse(c.APIURL)
	if err != nil {
		return fmt.Errorf("invalid api-url %q: %w", c.APIURL, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("invalid api-url %q: want http(s)://host[:port]", c.APIURL)
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("invalid request-timeout: %s", c.RequestTimeout)
	}
	if c.TimeFormat == "" {
		return errors.New("invalid time-format: empty")
	}
	c.Location = time.Local
	if c.Timezone != "" {
		loc, err := time.LoadLocation(c.Timezone)
		if err != nil {
			return fmt.Errorf("invalid timezone %q: %w", c.Timezone, err)
		}
		c.Location = loc
	}
	return nil
}
