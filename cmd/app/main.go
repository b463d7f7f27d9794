package main

import (
	"os"

	"github.com/earcherc/realfoodfinder/cmd"
)

func main() {
	if err := cmd.Run(); err != nil {
		os.Exit(1)
	}
}
