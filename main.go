// Package main is the entry point for the snapscope CLI.
package main

import "github.com/mouse-blink/snapscope/cmd"

func main() {
	cmd.Execute()
}
