package main

import (
	"os"

	"github.com/mmynk/splitmonth/cmd/splitctl/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
