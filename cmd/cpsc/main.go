// SPDX-License-Identifier: Apache-2.0
package main

import (
	"os"

	"github.com/fatih/color"
	_ "github.com/tliron/commonlog/simple"

	"cpsir/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		color.Red("%v", err)
		os.Exit(1)
	}
}
