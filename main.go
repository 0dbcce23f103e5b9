// Package main is the entry point for the bindport CLI.
package main

import "bindport.dev/pkg/bindport/cmd"

func main() {
	cmd.Execute()
}
