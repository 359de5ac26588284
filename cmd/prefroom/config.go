package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/syssam/prefroom/compiler/gen"
)

const (
	configFileName = "prefroom"
	configFileType = "yaml"
	envPrefix      = "PREFROOM"

	// Config keys. Flags of the same name override them.
	cfgKeySchema  = "schema"
	cfgKeyTarget  = "target"
	cfgKeyPackage = "package"
	cfgKeyHeader  = "header"
	cfgKeyRuntime = "runtime"
	cfgKeyWorkers = "workers"

	defaultSchema = "schema.yaml"
	defaultTarget = "."
)

// errUsage marks invalid command line or configuration input.
var errUsage = errors.New("usage")

// loadConfig reads the config file, PREFROOM_* environment variables and
// the parsed flags, in increasing order of precedence. A missing default
// config file is not an error.
func loadConfig(file string, flags *pflag.FlagSet) (*viper.Viper, error) {
	v := viper.New()
	v.SetDefault(cfgKeySchema, []string{defaultSchema})
	v.SetDefault(cfgKeyTarget, defaultTarget)
	v.SetDefault(cfgKeyHeader, gen.DefaultHeader)
	v.SetDefault(cfgKeyRuntime, gen.DefaultRuntime)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName(configFileName)
		v.SetConfigType(configFileType)
		v.AddConfigPath(".")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if file != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}
	if flags != nil {
		if err := v.BindPFlags(flags); err != nil {
			return nil, fmt.Errorf("bind flags: %w", err)
		}
	}
	return v, nil
}

// schemaFiles returns the configured schema file paths.
func schemaFiles(v *viper.Viper) ([]string, error) {
	var files []string
	for _, f := range v.GetStringSlice(cfgKeySchema) {
		if f = strings.TrimSpace(f); f != "" {
			files = append(files, f)
		}
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("%w: no schema files configured", errUsage)
	}
	return files, nil
}

// genConfig builds the generator configuration from v.
func genConfig(v *viper.Viper, log *zap.Logger) (*gen.Config, error) {
	opts := []gen.Option{
		gen.WithTarget(v.GetString(cfgKeyTarget)),
		gen.WithHeader(v.GetString(cfgKeyHeader)),
		gen.WithRuntime(v.GetString(cfgKeyRuntime)),
		gen.WithWorkers(v.GetInt(cfgKeyWorkers)),
	}
	if pkg := v.GetString(cfgKeyPackage); pkg != "" {
		opts = append(opts, gen.WithPackage(pkg))
	}
	if log != nil {
		opts = append(opts, gen.WithLogger(log))
	}
	return gen.NewConfig(opts...)
}
