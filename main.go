package main

import (
	"os"

	"github.com/yunus25jmi1/personal-Blog-website/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
