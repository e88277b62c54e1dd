package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

func main() {
	log := logrus.New()
	log.SetOutput(os.Stderr)
	log.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})

	if err := newRootCmd(log, viper.New()).Execute(); err != nil {
		log.Error(err)
		os.Exit(1)
	}
}

func newRootCmd(log *logrus.Logger, v *viper.Viper) *cobra.Command {
	var cfg *Config
	rootCmd := &cobra.Command{
		Use:   "isetctl",
		Short: "interval set calculator",
		Long: `isetctl evaluates operations on sets of integers stored as sorted,
disjoint intervals, e.g. {[1..5][8..9]}.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := initConfig(v); err != nil {
				return err
			}
			c, err := newConfig(v)
			if err != nil {
				return err
			}
			log.SetLevel(c.LogLevel)
			if used := v.ConfigFileUsed(); used != "" {
				log.Infof("using config: %s", used)
			}
			cfg = c
			return nil
		},
	}
	if err := setupFlagsAndViper(rootCmd, v); err != nil {
		panic(err)
	}
	rootCmd.AddCommand(
		evalCmd(log, func() *Config { return cfg }),
		opsCmd(),
	)
	return rootCmd
}

func evalCmd(log *logrus.Logger, config func() *Config) *cobra.Command {
	return &cobra.Command{
		Use:   "eval OPERATION A [B | VALUE]",
		Short: "evaluate an operation on interval sets",
		Example: `  isetctl eval union '{[1..2][5..6]}' '[3..4]'
  isetctl eval --bits 8 --unsigned complement '[0..9]'
  isetctl eval -o json shrink-left '{[4..5][8..8]}' 5`,
		Args:      cobra.RangeArgs(2, 3),
		ValidArgs: operationNames(),
		RunE: func(cmd *cobra.Command, args []string) error {
			c := config()
			log.WithFields(logrus.Fields{
				"op":       args[0],
				"operands": args[1:],
				"bits":     c.Bits,
				"unsigned": c.Unsigned,
			}).Debug("evaluating")

			res, err := evaluateConfig(c, args[0], args[1:])
			if err != nil {
				return fmt.Errorf("%s: %w", args[0], err)
			}
			return render(cmd.OutOrStdout(), c.Output, res)
		},
	}
}

func opsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ops",
		Short: "list the supported operations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ops := operations[int64]()
			for _, name := range operationNames() {
				o := ops[name]
				usage := "A"
				switch o.kind {
				case binary:
					usage = "A B"
				case scalar:
					usage = "A VALUE"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%-28s %-8s %s\n", name, usage, o.help)
			}
			return nil
		},
	}
}

func render(w io.Writer, format string, res any) error {
	switch strings.ToLower(format) {
	case "json":
		return json.NewEncoder(w).Encode(res)
	case "yaml":
		enc := yaml.NewEncoder(w)
		if err := enc.Encode(res); err != nil {
			return err
		}
		return enc.Close()
	default:
		_, err := fmt.Fprintln(w, res)
		return err
	}
}
