package main

import (
	"fmt"
	"os"

	"github.com/simp-lee/epubtoc/internal/cli"
	"github.com/simp-lee/epubtoc/internal/config"
)

func main() {
	if err := cli.NewRootCmd(config.DefaultPath).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
