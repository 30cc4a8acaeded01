// Package main provides the sqlbind CLI.
package main

import (
	"os"

	"github.com/leapstack-labs/sqlbind/internal/cli"

	// Register catalog adapters.
	_ "github.com/leapstack-labs/sqlbind/pkg/adapters/duckdb"
	_ "github.com/leapstack-labs/sqlbind/pkg/adapters/postgres"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
