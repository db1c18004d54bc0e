package main

import (
	"github.com/workbench-install/workbench/cmd"
)

func main() {
	cmd.Execute()
}
