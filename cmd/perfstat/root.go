// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/perfstat/statseries"
)

// An app holds the state shared by the commands of one invocation.
type app struct {
	v      *viper.Viper
	stdout io.Writer
	log    *zap.Logger // set once flags are parsed
	pals   statseries.Palettes
}

func newApp(stdout io.Writer) *app {
	return &app{v: viper.New(), stdout: stdout}
}

func (a *app) rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "perfstat",
		Short: "Repair and chart perf stat JSON exports",
		Long: `Perfstat repairs the JSON written by "perf stat -j" and charts the
counters of a branching and a branchless variant of a workload.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}

	// Global flags
	cmd.PersistentFlags().String("config", "", "config `file` (default is ./.perfstat.{toml,yaml})")
	cmd.PersistentFlags().String("log-level", "info", "log `level`: debug, info, warn or error")
	cmd.PersistentFlags().String("palette", "", "TOML `file` overriding the series styles")

	cmd.AddCommand(a.cleanCmd())
	cmd.AddCommand(a.barCmd())
	cmd.AddCommand(a.lineCmd())
	cmd.AddCommand(a.chartsCmd())
	return cmd
}

// setup runs before every command: it reads the configuration, builds
// the logger and loads the palettes.
func (a *app) setup(cmd *cobra.Command, args []string) error {
	if err := a.v.BindPFlags(cmd.Flags()); err != nil {
		return err
	}
	if err := a.initConfig(); err != nil {
		return err
	}

	log, err := initLogger(a.v.GetString("log-level"))
	if err != nil {
		return err
	}
	a.log = log

	a.pals = statseries.DefaultPalettes()
	if path := a.v.GetString("palette"); path != "" {
		if a.pals, err = statseries.LoadPalettes(path); err != nil {
			return err
		}
		a.log.Debug("loaded palettes", zap.String("path", path))
	}
	return nil
}

func (a *app) initConfig() error {
	a.v.SetEnvPrefix("PERFSTAT")
	a.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	a.v.AutomaticEnv()

	if cfgFile := a.v.GetString("config"); cfgFile != "" {
		a.v.SetConfigFile(cfgFile)
		if err := a.v.ReadInConfig(); err != nil {
			return fmt.Errorf("read config: %w", err)
		}
		return nil
	}

	a.v.AddConfigPath(".")
	a.v.SetConfigName(".perfstat")
	var notFound viper.ConfigFileNotFoundError
	if err := a.v.ReadInConfig(); err != nil && !errors.As(err, &notFound) {
		return fmt.Errorf("read config: %w", err)
	}
	return nil
}

func initLogger(level string) (*zap.Logger, error) {
	var zapLevel zap.AtomicLevel
	if err := zapLevel.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("invalid log level: %w", err)
	}

	config := zap.NewProductionConfig()
	config.Level = zapLevel
	config.EncoderConfig.TimeKey = "timestamp"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	return config.Build()
}

// requireString returns the value of the flag or setting key, or an
// error if it is empty.
func (a *app) requireString(key string) (string, error) {
	s := a.v.GetString(key)
	if s == "" {
		return "", fmt.Errorf("missing --%s", key)
	}
	return s, nil
}
