// Copyright (c) 2020 vechain.org.
// Licensed under the MIT license.

// Command ecvrf proves and verifies ECVRF outputs from the command line.
// Keys, proofs and outputs are read and printed as hex.
package main

import (
	"os"

	"github.com/vechain/go-ecvrf/v2/cmd/ecvrf/commands"
)

func main() {
	if err := commands.NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
