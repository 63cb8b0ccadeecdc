// Package main is the entry point for the stackscan CLI.
package main

import (
	"github.com/huangsam/stackscan/cmd"
	"github.com/huangsam/stackscan/internal/contract"
)

func main() {
	if err := cmd.Execute(); err != nil {
		contract.LogFatal("Error", err)
	}
}
