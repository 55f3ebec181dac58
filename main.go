package main

import "github.com/agentic-research/locedit/cmd"

func main() {
	cmd.Execute()
}
