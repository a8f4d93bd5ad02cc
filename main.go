package main

import "github.com/tradeplumber/oa/cmd"

var version = "0.1.0"

func main() {
	cmd.Version = version
	cmd.Execute()
}
