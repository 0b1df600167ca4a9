package main

import (
	"fmt"

	"github.com/davecgh/go-spew/spew"
	"github.com/spf13/cobra"

	"github.com/origadmin/mapgen/internal/emitter"
	"github.com/origadmin/mapgen/internal/generator"
	"github.com/origadmin/mapgen/internal/manifest"
)

var (
	inspectYAML  bool
	inspectUnits bool
)

var inspectCmd = &cobra.Command{
	Use:   "inspect [flags] [packages]",
	Short: "Print the mapping model and its diagnostics without generating code",
	RunE:  runInspect,
}

func init() {
	inspectCmd.Flags().BoolVar(&inspectYAML, "yaml", false, "Print the model as a manifest instead of a dump")
	inspectCmd.Flags().BoolVar(&inspectUnits, "units", false, "Also list the files a generation run would write")
}

func runInspect(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	src, err := loadSource(cfg, args)
	if err != nil {
		return err
	}
	gen := generator.NewGenerator(cfg)
	m, diags, err := gen.BuildModel(src)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if inspectYAML {
		data, err := manifest.Marshal(manifest.FromModel(m))
		if err != nil {
			return fmt.Errorf("failed to marshal model: %w", err)
		}
		if _, err := out.Write(data); err != nil {
			return err
		}
	} else {
		cs := spew.ConfigState{Indent: "  ", DisablePointerAddresses: true, SortKeys: true}
		cs.Fdump(out, m.Specs())
	}
	if len(diags) > 0 {
		fmt.Fprintln(out, diags.String())
	}
	if inspectUnits {
		sink := emitter.NewMemorySink()
		if _, err := gen.Run(src, sink); err != nil {
			return err
		}
		for _, unit := range sink.Units() {
			fmt.Fprintf(out, "%s\t%s\n", unit.Kind, unit.Path())
		}
	}
	return nil
}
