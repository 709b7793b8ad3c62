package main

import "github.com/khanhnv2901/headercheck/cmd"

var execCmd = cmd.Execute

func main() {
	execCmd()
}
