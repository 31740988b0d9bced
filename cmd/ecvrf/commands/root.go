// Copyright (c) 2020 vechain.org.
// Licensed under the MIT license.

package commands

import (
	"encoding/hex"
	"strings"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/vechain/go-ecvrf/v2"
)

const (
	envPrefix = "ECVRF"

	flagSuite    = "suite"
	flagLogLevel = "log-level"
	flagText     = "text"
)

// env is the state shared by the subcommands of one root command.
type env struct {
	v      *viper.Viper
	suite  *ecvrf.Suite
	logger log.Logger
}

// NewRootCmd returns the ecvrf command with all subcommands attached.
// Flags can also be set from ECVRF_SUITE, ECVRF_LOG_LEVEL and ECVRF_TEXT.
func NewRootCmd() *cobra.Command {
	e := &env{v: viper.New(), logger: log.NewNopLogger()}

	root := &cobra.Command{
		Use:          "ecvrf",
		Short:        "Elliptic curve verifiable random functions",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return e.setup(cmd)
		},
	}
	root.PersistentFlags().String(flagSuite, "secp256k1", "cipher suite, see `ecvrf suites`")
	root.PersistentFlags().String(flagLogLevel, "info", "log level (debug|info|error|none)")
	root.PersistentFlags().Bool(flagText, false, "treat alpha as UTF-8 text instead of hex")

	e.v.SetEnvPrefix(envPrefix)
	e.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	e.v.AutomaticEnv()
	if err := e.v.BindPFlags(root.PersistentFlags()); err != nil {
		panic(err)
	}

	root.AddCommand(
		newSuitesCmd(e),
		newKeygenCmd(e),
		newPubkeyCmd(e),
		newProveCmd(e),
		newVerifyCmd(e),
		newPrecomputeCmd(e),
		newExpandCmd(e),
		newHashCmd(e),
	)
	return root
}

func (e *env) setup(cmd *cobra.Command) error {
	opt, err := allowLevel(e.v.GetString(flagLogLevel))
	if err != nil {
		return err
	}
	logger := log.NewLogfmtLogger(log.NewSyncWriter(cmd.ErrOrStderr()))
	logger = log.With(logger, "ts", log.DefaultTimestampUTC)
	e.logger = level.NewFilter(logger, opt)

	suite, err := ecvrf.SuiteByName(e.v.GetString(flagSuite))
	if err != nil {
		return err
	}
	e.suite = suite
	e.logger = log.With(e.logger, "suite", suite.Name())
	level.Debug(e.logger).Log("msg", "suite selected", "cmd", cmd.Name())
	return nil
}

func allowLevel(lvl string) (level.Option, error) {
	switch strings.ToLower(lvl) {
	case "debug":
		return level.AllowDebug(), nil
	case "info":
		return level.AllowInfo(), nil
	case "error":
		return level.AllowError(), nil
	case "none":
		return level.AllowNone(), nil
	default:
		return nil, errors.Errorf("expected either \"info\", \"debug\", \"error\" or \"none\" log level, given %s", lvl)
	}
}

// decode parses a hex argument.
func decode(name, arg string) ([]byte, error) {
	b, err := hex.DecodeString(strings.TrimPrefix(arg, "0x"))
	if err != nil {
		return nil, errors.Wrapf(err, "invalid %s", name)
	}
	return b, nil
}

// alpha parses the message argument, as hex unless --text is set.
func (e *env) alpha(arg string) ([]byte, error) {
	if e.v.GetBool(flagText) {
		return []byte(arg), nil
	}
	return decode("alpha", arg)
}
