package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/syssam/prefroom/compiler/gen"
	"github.com/syssam/prefroom/compiler/gen/golang"
	"github.com/syssam/prefroom/compiler/load"
)

func newGenerateCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate [schema files...]",
		Short: "Generate preference entities and components",
		Long: `Generate reads the schema files and writes one Go file per entity and
component to the target directory. Files produced by a previous run that are
no longer generated are removed.`,
		Example: `  prefroom generate schema.yaml --target ./prefs --package example.com/app/prefs`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				a.v.Set(cfgKeySchema, args)
			}
			return generate(cmd.Context(), a.v, a.log)
		},
	}
	addGenFlags(cmd)
	return cmd
}

// addGenFlags registers the flags shared by generate and watch. Their names
// match the config keys they override.
func addGenFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringSliceP(cfgKeySchema, "s", nil, "schema files (default: "+defaultSchema+")")
	f.StringP(cfgKeyTarget, "t", "", "output directory (default: "+defaultTarget+")")
	f.StringP(cfgKeyPackage, "p", "", "import path of the output directory")
	f.String(cfgKeyHeader, "", "header comment of generated files")
	f.String(cfgKeyRuntime, "", "import path of the runtime package")
	f.Int(cfgKeyWorkers, 0, "files rendered in parallel (default: GOMAXPROCS)")
}

// generate runs one generation pass over the configured schema files.
func generate(ctx context.Context, v *viper.Viper, log *zap.Logger) error {
	files, err := schemaFiles(v)
	if err != nil {
		return err
	}
	cfg, err := genConfig(v, log)
	if err != nil {
		return err
	}
	schemas := make([]*load.Schema, 0, len(files))
	for _, f := range files {
		s, err := load.Load(f)
		if err != nil {
			return err
		}
		schemas = append(schemas, s)
	}
	g, err := gen.NewGraph(cfg, schemas...)
	if err != nil {
		return err
	}
	log.Debug("graph loaded", zap.Stringer("graph", g), zap.Strings("schema", files))
	if err := golang.Generate(ctx, g); err != nil {
		return fmt.Errorf("generate: %w", err)
	}
	return nil
}
