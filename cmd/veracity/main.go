package main

import "github.com/agenthands/veracity/internal/cli"

func main() {
	cli.Execute()
}
