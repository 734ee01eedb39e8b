package main

import "github.com/codetrackhq/codetrack/cmd"

func main() {
	cmd.Execute()
}
