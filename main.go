package main

import (
	"log"
	"os"

	"storycraft/cli"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
