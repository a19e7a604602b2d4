package main

import "github.com/pfrederiksen/tv-fixtures/internal/cli"

func main() {
	cli.Execute()
}
