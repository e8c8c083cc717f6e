package main

import "github.com/iksnae/deepnote-bridge/cmd"

func main() {
	cmd.Execute()
}
