package main

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/syssam/prefroom/compiler/gen"
	"github.com/syssam/prefroom/compiler/load"
)

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

const defaultEnvFile = ".env"

// app holds the state shared by all subcommands. It is populated by the
// root command's PersistentPreRunE.
type app struct {
	cfgFile string
	envFile string
	verbose bool

	v   *viper.Viper
	log *zap.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}
	cmd := &cobra.Command{
		Use:               "prefroom",
		Short:             "Generate typed preference accessors from schema files",
		Version:           version,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
		PersistentPostRun: func(*cobra.Command, []string) {
			if a.log != nil {
				_ = a.log.Sync()
			}
		},
	}
	cmd.PersistentFlags().StringVar(&a.cfgFile, "config", "", "config file (default: ./prefroom.yaml)")
	cmd.PersistentFlags().StringVar(&a.envFile, "env-file", defaultEnvFile, "dotenv file with PREFROOM_* overrides")
	cmd.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "enable debug logging")

	cmd.AddCommand(newGenerateCmd(a))
	cmd.AddCommand(newWatchCmd(a))
	cmd.AddCommand(newVersionCmd())
	return cmd
}

func (a *app) setup(cmd *cobra.Command, _ []string) error {
	if err := loadEnv(a.envFile, cmd.Flags().Changed("env-file")); err != nil {
		return err
	}
	log, err := newLogger(a.verbose)
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	v, err := loadConfig(a.cfgFile, cmd.Flags())
	if err != nil {
		return err
	}
	a.log, a.v = log, v
	return nil
}

// loadEnv loads a dotenv file into the process environment. A missing file
// is only an error when it was named explicitly.
func loadEnv(path string, explicit bool) error {
	if path == "" {
		return nil
	}
	err := godotenv.Load(path)
	if err == nil || (!explicit && errors.Is(err, fs.ErrNotExist)) {
		return nil
	}
	return fmt.Errorf("load env file: %w", err)
}

func newLogger(verbose bool) (*zap.Logger, error) {
	cfg := zap.NewDevelopmentConfig()
	cfg.DisableStacktrace = true
	cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	cfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}
	return cfg.Build()
}

// exitCode maps an error to the process exit status. Problems the user can
// fix in schema files, configuration or flags exit with exitUserError.
func exitCode(err error) int {
	switch {
	case err == nil:
		return exitSuccess
	case gen.IsSchemaError(err),
		gen.IsConfigError(err),
		gen.IsContractError(err),
		errors.Is(err, load.ErrUnknownFormat),
		errors.Is(err, errUsage):
		return exitUserError
	default:
		return exitSysError
	}
}
