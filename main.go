package main

import "github.com/mferrerdev/gitfolio/cmd"

func main() {
	cmd.Execute()
}
