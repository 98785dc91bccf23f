package main

import (
	"github.com/rpswager/rpswager/internal/cli"
)

func main() {
	cli.Execute()
}
