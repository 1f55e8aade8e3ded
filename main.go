package main

import "shireesh.com/cutter/cmd"

func main() {
	cmd.Execute()
}
