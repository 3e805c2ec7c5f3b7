package main

import (
	"github.com/fanchase/chased/cmd"
)

func main() {
	cmd.Execute()
}
