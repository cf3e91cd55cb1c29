package main

import "gizindir-panel/cmd"

func main() {
	cmd.Run()
}
