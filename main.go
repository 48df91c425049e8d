package main

import "github.com/heftdev/heft/cmd"

func main() {
	cmd.Execute()
}
