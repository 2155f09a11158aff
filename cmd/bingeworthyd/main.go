package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/vmunix/bingeworthy/internal/config"
)

var version = "dev"

func main() {
	configPath := flag.String("config", "", "Path to config file (default: discovered)")
	showVersion := flag.Bool("version", false, "Print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Printf("bingeworthyd %s\n", version)
		os.Exit(0)
	}

	path := *configPath
	if path == "" {
		var err error
		if path, err = config.Discover(); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			if errors.Is(err, config.ErrNotFound) {
				fmt.Fprintf(os.Stderr, "run 'bingeworthy init' to create %s, or set %s\n",
					config.DefaultPath(), config.EnvConfigPath)
			}
			os.Exit(1)
		}
	}

	if err := runServer(path); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
