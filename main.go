/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package main

import (
	"context"
	"log"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/humaidq/labwise/cmd"
	"github.com/humaidq/labwise/logging"
)

func main() {
	logging.Init()

	app := &cli.Command{
		Name:  "labwise",
		Usage: "labwise - lab result and supplement wizard",
		Commands: []*cli.Command{
			cmd.CmdStart,
			cmd.CmdSchema,
		},
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}
