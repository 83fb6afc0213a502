// Package main is the entry point for the entfix CLI.
package main

import "entfix.dev/pkg/entfix/cmd"

func main() {
	cmd.Execute()
}
