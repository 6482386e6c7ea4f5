package main

import (
	"fmt"
	"os"
	"time"

	"finsight/internal/cli"
)

func main() {
	cli.LoadEnvFile()
	if err := newRootCmd(&app{now: time.Now}).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
