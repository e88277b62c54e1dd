package main

import (
	"fmt"
	"strings"

	"github.com/hashicorp/go-multierror"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const envPrefix = "ISETCTL"

type Config struct {
	Bits     int
	Unsigned bool
	Output   string
	LogLevel logrus.Level
}

func addFlags(flags *pflag.FlagSet) {
	flags.String("config", "", "config file")
	flags.Int("bits", 32, "bound width in bits: 8, 16, 32 or 64")
	flags.Bool("unsigned", false, "use unsigned bounds")
	flags.StringP("output", "o", "text", "output format: text, json or yaml")
	flags.String("log-level", "warning", "log level")
}

// setupFlagsAndViper binds the persistent flags of cmd into v. Every key can
// also be set in the config file or as an ISETCTL_ environment variable.
func setupFlagsAndViper(cmd *cobra.Command, v *viper.Viper) error {
	addFlags(cmd.PersistentFlags())

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	return v.BindPFlags(cmd.PersistentFlags())
}

// initConfig reads the config file named by --config, if any.
func initConfig(v *viper.Viper) error {
	configFile := v.GetString("config")
	if configFile == "" {
		return nil
	}
	v.SetConfigFile(configFile)
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("read config %s: %w", configFile, err)
	}
	return nil
}

func newConfig(v *viper.Viper) (*Config, error) {
	c := &Config{
		Bits:     v.GetInt("bits"),
		Unsigned: v.GetBool("unsigned"),
		Output:   v.GetString("output"),
	}

	var confErr error
	switch c.Bits {
	case 8, 16, 32, 64:
	default:
		confErr = multierror.Append(confErr, fmt.Errorf("invalid bits %d", c.Bits))
	}
	switch c.Output {
	case "text", "json", "yaml":
	default:
		confErr = multierror.Append(confErr, fmt.Errorf("invalid output format %q", c.Output))
	}
	level, err := logrus.ParseLevel(v.GetString("log-level"))
	if err != nil {
		confErr = multierror.Append(confErr, err)
	}
	c.LogLevel = level
	if confErr != nil {
		return nil, confErr
	}
	return c, nil
}
