// Copyright (c) 2020 vechain.org.
// Licensed under the MIT license.

package commands

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/go-kit/log/level"
	"github.com/spf13/cobra"

	"github.com/vechain/go-ecvrf/v2"
)

func newSuitesCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "suites",
		Short: "List the supported cipher suites",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tSK\tPK\tPROOF\tBETA")
			for _, s := range ecvrf.Suites() {
				fmt.Fprintf(w, "%s\t%d\t%d\t%d\t%d\n",
					s.Name(), s.SecretKeySize(), s.PublicKeySize(), s.ProofSize(), s.OutputSize())
			}
			return w.Flush()
		},
	}
}

func newKeygenCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "keygen",
		Short: "Generate a random key pair and print the secret and public keys",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sk, pk, err := e.suite.GenerateKey(rand.Reader)
			if err != nil {
				return err
			}
			return printHex(cmd.OutOrStdout(), sk, pk)
		},
	}
}

func newPubkeyCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "pubkey <sk>",
		Short: "Derive the compressed public key of a secret key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sk, err := decode("sk", args[0])
			if err != nil {
				return err
			}
			pk, err := e.suite.PublicKey(sk)
			if err != nil {
				return err
			}
			return printHex(cmd.OutOrStdout(), pk)
		},
	}
}

func newProveCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "prove <sk> <alpha>",
		Short: "Compute the proof pi for alpha",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			sk, err := decode("sk", args[0])
			if err != nil {
				return err
			}
			alpha, err := e.alpha(args[1])
			if err != nil {
				return err
			}
			pi, err := e.suite.Prove(sk, alpha)
			if err != nil {
				return err
			}
			level.Debug(e.logger).Log("msg", "proved", "alpha_len", len(alpha), "pi_len", len(pi))
			return printHex(cmd.OutOrStdout(), pi)
		},
	}
}

func newVerifyCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "verify <pk> <pi> <alpha>",
		Short: "Verify pi and print the VRF output beta",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			pk, pi, alpha, err := e.verifyArgs(args)
			if err != nil {
				return err
			}
			beta, err := e.suite.Verify(pk, pi, alpha)
			if err != nil {
				level.Error(e.logger).Log("msg", "verification failed", "err", err)
				return err
			}
			level.Info(e.logger).Log("msg", "verified")
			return printHex(cmd.OutOrStdout(), beta)
		},
	}
}

func newPrecomputeCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "precompute <pk> <pi> <alpha>",
		Short: "Print U, s*H and c*Gamma as affine coordinates, one per line",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			pk, pi, alpha, err := e.verifyArgs(args)
			if err != nil {
				return err
			}
			w, err := e.suite.Precompute(pk, pi, alpha)
			if err != nil {
				return err
			}
			return printHex(cmd.OutOrStdout(), w[:]...)
		},
	}
}

func newExpandCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "expand <pi>",
		Short: "Print Gamma.x, Gamma.y, c and s of a proof, one per line",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pi, err := decode("pi", args[0])
			if err != nil {
				return err
			}
			expanded, err := e.suite.Expand(pi)
			if err != nil {
				return err
			}
			return printHex(cmd.OutOrStdout(), expanded[:]...)
		},
	}
}

func newHashCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "hash <pi>",
		Short: "Print the VRF output beta of a proof without verifying it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pi, err := decode("pi", args[0])
			if err != nil {
				return err
			}
			beta, err := e.suite.ProofToHash(pi)
			if err != nil {
				return err
			}
			return printHex(cmd.OutOrStdout(), beta)
		},
	}
}

func (e *env) verifyArgs(args []string) (pk, pi, alpha []byte, err error) {
	if pk, err = decode("pk", args[0]); err != nil {
		return
	}
	if pi, err = decode("pi", args[1]); err != nil {
		return
	}
	alpha, err = e.alpha(args[2])
	return
}

func printHex(w io.Writer, values ...[]byte) error {
	for _, v := range values {
		if _, err := fmt.Fprintln(w, hex.EncodeToString(v)); err != nil {
			return err
		}
	}
	return nil
}
