package main

import "github.com/adrianmusante/subtitle-engine/internal/cli"

func main() {
	cli.Execute()
}
