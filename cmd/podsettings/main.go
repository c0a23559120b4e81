package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/eringen/podsettings"
)

// version is set at build time via ldflags.
var version = "dev"

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "serve":
		if err := runServe(os.Args[2:]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "init":
		if err := runInit(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "version":
		fmt.Printf("podsettings %s\n", version)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func runServe(args []string) error {
	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	configPath := fs.String("config", "podsettings.toml", "path to the TOML config file")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := podsettings.LoadConfig(*configPath)
	if err != nil {
		return err
	}
	if cfg.AdminPassword == "" {
		cfg.AdminPassword = podsettings.EnvOr("ADMIN_PASSWORD", "")
	}
	if cfg.SessionSecret == "" {
		cfg.SessionSecret = podsettings.EnvOr("SESSION_SECRET", "")
	}

	// No templates here: the bare server answers with the JSON field
	// records. Sites embed the library and supply ViewFuncs instead.
	app := podsettings.New(cfg, podsettings.ViewFuncs{})
	defer app.Close()

	fmt.Printf("podsettings listening on %s\n", cfg.Addr)
	return app.Start()
}

func printUsage() {
	fmt.Println(`podsettings - A podcast settings engine built with Go, Echo, and templ

Usage:
  podsettings <command> [arguments]

Commands:
  serve [-config path]   Start the settings server (default config: podsettings.toml)
  init                   Write a starter podsettings.toml in the current directory
  version                Print the podsettings version
  help                   Show this help message

Examples:
  podsettings init
  podsettings serve -config /etc/podsettings.toml`)
}
