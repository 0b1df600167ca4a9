package main

import (
	"github.com/spf13/cobra"

	"github.com/origadmin/mapgen/internal/analyzer"
	"github.com/origadmin/mapgen/internal/config"
	"github.com/origadmin/mapgen/internal/emitter"
	"github.com/origadmin/mapgen/internal/manifest"
	"github.com/origadmin/mapgen/internal/model"
)

// loadConfig reads --config, if set, and applies the command-line overrides.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.NewConfig()
	if opts.configFile != "" {
		var err error
		if cfg, err = config.Load(opts.configFile); err != nil {
			return nil, err
		}
	}
	if cmd.Flags().Changed("strict") {
		cfg.Strict = opts.strict
	}
	if len(opts.tags) > 0 {
		cfg.BuildTags = opts.tags
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// source is the declaration source of a run and the module it belongs to.
type source struct {
	model.Source
	analyzer *analyzer.Analyzer
}

func loadSource(cfg *config.Config, patterns []string) (*source, error) {
	if opts.manifest != "" {
		m, err := manifest.Load(opts.manifest)
		if err != nil {
			return nil, err
		}
		return &source{Source: m}, nil
	}

	a := analyzer.NewAnalyzer(cfg)
	if err := a.Load(opts.dir, patterns...); err != nil {
		return nil, err
	}
	return &source{Source: a, analyzer: a}, nil
}

// module returns the module generated files are written into: the module of
// the loaded packages, or the go.mod enclosing --dir.
func (s *source) module() (string, string, error) {
	if s.analyzer != nil {
		if modulePath, moduleDir, ok := s.analyzer.Module(); ok {
			return modulePath, moduleDir, nil
		}
	}
	return emitter.FindModule(opts.dir)
}
