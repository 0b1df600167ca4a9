// Package main is the mapgen command. It reads mappable declarations from Go
// packages or a YAML manifest and writes one mapper per pair plus a registry.
//
// Usage:
//
//	mapgen [flags] [packages]
//	mapgen inspect [flags] [packages]
//	mapgen version
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/origadmin/mapgen/internal/config"
	"github.com/origadmin/mapgen/internal/emitter"
	"github.com/origadmin/mapgen/internal/generator"
)

var (
	version   = "0.0.1"
	commit    = ""
	treeState = ""
	date      = ""
	builtBy   = ""
)

// options holds the flags shared by all commands.
type options struct {
	configFile string
	manifest   string
	dir        string
	debug      bool
	logFile    string
	dryRun     bool
	strict     bool
	tags       []string
}

var (
	opts      options
	logWriter io.WriteCloser
)

var rootCmd = &cobra.Command{
	Use:   "mapgen [flags] [packages]",
	Short: config.Description,
	Long: `mapgen generates bidirectional mappers between paired struct types.

A struct is paired with another by a directive in its doc comment:

  //go:mapgen:mappable with=dto.PersonDto
  type Person struct {
      Name string ` + "`mapped:\"FullName\"`" + `
  }

Every pair gets a <Type>Mapper in <package>/mappers, and a Transformer
registry in <package>/generated resolves mappers by type name.
Packages default to ./... relative to --dir.`,
	Args:              cobra.ArbitraryArgs,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setupLogging,
	PersistentPostRun: func(*cobra.Command, []string) { closeLog() },
	RunE:              runGenerate,
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&opts.configFile, "config", "c", "", "Path to a YAML configuration file")
	flags.StringVarP(&opts.manifest, "manifest", "m", "", "Read declarations from a YAML manifest instead of Go packages")
	flags.StringVarP(&opts.dir, "dir", "C", ".", "Directory to resolve packages and the module from")
	flags.BoolVar(&opts.debug, "debug", false, "Enable debug logging")
	flags.StringVar(&opts.logFile, "log-file", "", "Path to a file where logs should be written. If empty, logs go to stderr.")
	flags.BoolVar(&opts.strict, "strict", false, "Fail when field mappings belong to types that are not mappable")
	flags.StringSliceVar(&opts.tags, "tags", nil, "Build tags used when loading packages")
	rootCmd.Flags().BoolVarP(&opts.dryRun, "dry-run", "n", false, "Print generated files instead of writing them")

	rootCmd.AddCommand(versionCmd, inspectCmd)
}

// setupLogging configures the default slog logger from --debug and --log-file.
func setupLogging(*cobra.Command, []string) error {
	var w io.Writer = os.Stderr
	if opts.logFile != "" {
		f, err := os.OpenFile(opts.logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return fmt.Errorf("failed to open log file %s: %w", opts.logFile, err)
		}
		logWriter = f
		w = f
	}

	logLevel := slog.LevelWarn
	if opts.debug {
		logLevel = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: logLevel,
	})))
	return nil
}

func closeLog() {
	if logWriter != nil {
		_ = logWriter.Close()
		logWriter = nil
	}
}

func runGenerate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	src, err := loadSource(cfg, args)
	if err != nil {
		return err
	}

	var sink generator.Sink
	if opts.dryRun {
		sink = emitter.NewWriterSink(cmd.OutOrStdout())
	} else {
		modulePath, moduleDir, err := src.module()
		if err != nil {
			return err
		}
		slog.Debug("Writing into module", "module", modulePath, "dir", moduleDir)
		sink = emitter.NewFileSink(modulePath, moduleDir)
	}

	res, err := generator.NewGenerator(cfg).Run(src, sink)
	if err != nil {
		return err
	}
	if !opts.dryRun {
		fmt.Fprintf(cmd.OutOrStdout(), "%s: generated %d file(s), %d warning(s)\n",
			config.Application, len(res.Units), len(res.Diagnostics.Warnings()))
	}
	slog.Info("mapgen finished successfully.")
	return nil
}

func main() {
	err := rootCmd.Execute()
	closeLog()
	if err != nil {
		slog.Error("mapgen failed", "error", err)
		os.Exit(1)
	}
}
