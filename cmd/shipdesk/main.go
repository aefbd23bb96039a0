package main

import (
	"fmt"
	"os"

	"shipdesk/internal/cli"
	"shipdesk/internal/logger"
)

func main() {
	exitCode := 0
	if err := cli.NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		exitCode = 1
	}

	logger.Sync()
	if exitCode != 0 {
		os.Exit(exitCode)
	}
}
