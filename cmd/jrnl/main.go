package main

import "jrnl/internal/cli"

func main() {
	cli.Execute()
}
