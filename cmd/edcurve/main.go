// Command edcurve exposes the Curve25519 engine for inspection and testing.
//
//	edcurve selfcheck
//	edcurve crosscheck --trials 10000 --workers 8
//	edcurve basemul <scalar-hex>
//	edcurve inspect <point-hex> --dump
//	edcurve x25519 <scalar-hex> [u-hex]
//
// Every flag can also be set through the environment with the EDCURVE_
// prefix, e.g. EDCURVE_LOG_LEVEL=debug or EDCURVE_CROSSCHECK_TRIALS=500.
package main

import (
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const envPrefix = "EDCURVE"

func main() {
	// On failure Cobra prints the usage message and error string, so we only
	// need to exit with a non-0 status
	if newRootCmd().Execute() != nil {
		os.Exit(1)
	}
}

// newRootCmd builds the command tree around its own viper instance.
func newRootCmd() *cobra.Command {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))

	root := &cobra.Command{
		Use:          "edcurve",
		Short:        "Curve25519 / Ed25519 group arithmetic toolkit",
		SilenceUsage: true,
	}

	flags := root.PersistentFlags()
	flags.String("log-level", "info", "Log level (debug, info, warn, error)")
	v.BindPFlag("log_level", flags.Lookup("log-level"))

	root.AddCommand(selfcheckCmd(v))
	root.AddCommand(crosscheckCmd(v))
	root.AddCommand(basemulCmd(v))
	root.AddCommand(inspectCmd(v))
	root.AddCommand(x25519Cmd(v))
	return root
}

// newLogger returns a console logger on stderr at the configured level.
func newLogger(v *viper.Viper) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(v.GetString("log_level"))
	if err != nil {
		return nil, errors.Wrap(err, "invalid log level")
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(level)
	cfg.Encoding = "console"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	cfg.Sampling = nil
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}

	logger, err := cfg.Build()
	if err != nil {
		return nil, errors.Wrap(err, "building logger")
	}
	return logger.Named("edcurve"), nil
}
