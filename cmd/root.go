// Copyright (c) 2026 John Dewey

// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to
// deal in the Software without restriction, including without limitation the
// rights to use, copy, modify, merge, publish, distribute, sublicense, and/or
// sell copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:

// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.

// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING
// FROM, OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER
// DEALINGS IN THE SOFTWARE.

// Package cmd implements the metascrub command tree.
package cmd

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	masker "github.com/ggwhite/go-masker/v2"
	"github.com/lmittmann/tint"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"

	"github.com/metascrub-io/metascrub/internal/cli"
	"github.com/metascrub-io/metascrub/internal/config"
)

var (
	appConfig  config.Config
	appFs      = afero.NewOsFs()
	logger     = slog.New(slog.NewTextHandler(os.Stdout, nil))
	jsonOutput bool
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "metascrub",
	Short: "Strip embedded metadata from documents and images.",
	Long: `Strip embedded metadata (EXIF, document properties) from JPEG, PNG,
PDF, Word, and spreadsheet files, and record every operation to an
optionally encrypted audit log.

┌┬┐┌─┐┌┬┐┌─┐┌─┐┌─┐┬─┐┬ ┬┌┐
│││├┤  │ ├─┤└─┐│  ├┬┘│ │├┴┐
┴ ┴└─┘ ┴ ┴ ┴└─┘└─┘┴└─└─┘└─┘

https://github.com/metascrub-io/metascrub
`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle interrupt signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
	}()

	err := rootCmd.ExecuteContext(ctx)
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig, initLogger)

	rootCmd.PersistentFlags().BoolP("debug", "d", false, "Enable or disable debug mode")
	rootCmd.PersistentFlags().BoolVarP(&jsonOutput, "json", "j", false, "Enable JSON output")

	rootCmd.PersistentFlags().
		StringP("metascrub-file", "f", "/etc/metascrub/metascrub.yaml", "Path to config file")

	_ = viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	_ = viper.BindPFlag("metascrubFile", rootCmd.PersistentFlags().Lookup("metascrub-file"))
}

func initConfig() {
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	viper.SetConfigType("yaml")
	viper.AutomaticEnv()
	viper.SetEnvPrefix("metascrub")
	viper.SetConfigFile(viper.GetString("metascrubFile"))

	if err := viper.ReadInConfig(); err != nil {
		// A missing default config file is fine; an explicitly requested
		// one is not.
		if rootCmd.PersistentFlags().Changed("metascrub-file") || !os.IsNotExist(err) {
			cli.LogFatal(logger, "failed to read config", err, "metascrubFile", viper.ConfigFileUsed())
		}
	}

	if err := viper.Unmarshal(&appConfig); err != nil {
		cli.LogFatal(logger, "failed to unmarshal config", err, "metascrubFile", viper.ConfigFileUsed())
	}

	err := config.Validate(&appConfig)
	if err != nil {
		cli.LogFatal(logger, "validation failed", err, "metascrubFile", viper.ConfigFileUsed())
	}
}

func initLogger() {
	logLevel := slog.LevelInfo
	if viper.GetBool("debug") {
		logLevel = slog.LevelDebug
	}

	var handler slog.Handler
	if jsonOutput {
		handler = slog.NewJSONHandler(os.Stderr, nil)
	} else {
		handler = tint.NewHandler(os.Stderr, &tint.Options{
			Level:      logLevel,
			TimeFormat: time.Kitchen,
			NoColor:    !term.IsTerminal(int(os.Stdout.Fd())),
		})
	}

	logger = slog.New(handler)

	if viper.GetBool("debug") {
		logMaskedConfig()
	}
}

// logMaskedConfig dumps the loaded configuration once at debug level with
// secret fields masked.
func logMaskedConfig() {
	m := masker.NewMaskerMarshaler()

	masked, err := m.Struct(&appConfig)
	if err != nil {
		logger.Debug("could not mask config for dump", slog.String("error", err.Error()))

		return
	}

	logger.Debug("loaded configuration", slog.Any("config", masked))
}
