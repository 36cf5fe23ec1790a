package main

import (
	"fmt"

	"github.com/aecgames/spielbridge/benchmarks"
)

// main entry point to all the benchmark and explorer commands
func main() {
	rootCommand := benchmarks.GetRootCommand()
	if err := rootCommand.Execute(); err != nil {
		fmt.Println(err)
	}
}
