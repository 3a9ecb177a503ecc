package main

import "github.com/neurotica01/crackify/cmd"

func main() {
	cmd.Run()
}
