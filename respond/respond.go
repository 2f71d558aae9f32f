package main

import (
	"os"

	cli "github.com/viant/respond/cmd/respond"
)

func main() {
	cli.Run(os.Args[1:])
}
