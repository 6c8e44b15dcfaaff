package main

import "github.com/mcoot/minesweeper/internal/cli"

func main() {
	cli.Execute()
}
