// Package main is the single-binary entrypoint for Moneta.
// Moneta is a local-first budgeting tool — one binary, your data stays home.
package main

import "github.com/moneta-app/moneta/internal/cli"

// version is set at build time via -ldflags.
var version = "dev"

func main() {
	cli.Execute(version)
}
