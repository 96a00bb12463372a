package main

import "github.com/iwtcode/cyclerAdapter/internal/cli"

func main() {
	cli.Execute()
}
