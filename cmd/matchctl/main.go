package main

import (
	"github.com/gamearcade/matchserv/internal/cli"
)

func main() {
	cli.Execute()
}
