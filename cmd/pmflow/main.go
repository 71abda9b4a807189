/*
Copyright © 2025 pmflow authors
SPDX-License-Identifier: Apache-2.0
*/
package main

import (
	// Adjusts GOMAXPROCS to the container CPU quota so the default
	// worker width matches what the runtime can actually schedule.
	_ "go.uber.org/automaxprocs"

	"github.com/pmflow/pmflow/pkg/cli"
)

func main() {
	cli.Execute()
}
