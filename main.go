package main

import "jsonbench/cmd"

func main() {
	cmd.Execute()
}
