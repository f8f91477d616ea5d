// Package main is the entry point for the astar CLI.
package main

import "github.com/arcanis/astar-wasm/internal/cli"

func main() {
	cli.Execute()
}
