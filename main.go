package main

import "go-cmdgui/cmd/cli"

func main() {
	cli.Execute()
}
