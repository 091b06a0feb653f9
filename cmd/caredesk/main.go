package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/caredesk/caredesk/cmd/caredesk/wizard"
	"github.com/caredesk/caredesk/internal/config"
	"github.com/caredesk/caredesk/internal/gateway"
)

// version is set at build time via -ldflags
var version = "dev"

func main() {
	if len(os.Args) < 2 {
		printHelp()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "staff":
		runStaff(os.Args[2:])
	case "visit":
		runVisit(os.Args[2:])
	case "version", "--version":
		fmt.Printf("caredesk %s\n", version)
	case "help", "--help", "-h":
		printHelp()
	default:
		fmt.Fprintf(os.Stderr, "Error: unknown command %q\n\n", os.Args[1])
		printHelp()
		os.Exit(1)
	}
}

func runStaff(args []string) {
	fs := flag.NewFlagSet("staff", flag.ExitOnError)
	configPath := fs.String("config", "", "Load configuration from YAML file")
	editID := fs.String("edit", "", "Edit an existing staff member by id")
	draftPath := fs.String("draft", "", "Resume from a YAML draft file")
	fs.Parse(args)

	if *editID != "" && *draftPath != "" {
		fmt.Fprintln(os.Stderr, "Error: --edit and --draft are mutually exclusive")
		os.Exit(1)
	}

	cfg, client := mustSetup(*configPath)
	log := cfg.Logger()

	err := wizard.RunStaff(context.Background(), client, wizard.StaffOptions{
		EditID:    *editID,
		DraftPath: *draftPath,
		Log:       log,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runVisit(args []string) {
	fs := flag.NewFlagSet("visit", flag.ExitOnError)
	configPath := fs.String("config", "", "Load configuration from YAML file")
	fs.Parse(args)

	cfg, client := mustSetup(*configPath)
	log := cfg.Logger()

	if err := wizard.RunVisit(context.Background(), client, log); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func mustSetup(configPath string) (config.Config, *gateway.Client) {
	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	client, err := gateway.New(cfg.APIURL, cfg.Token, cfg.Timeout, cfg.Logger())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	return cfg, client
}

func printHelp() {
	fmt.Println("caredesk")
	fmt.Println("========")
	fmt.Println()
	fmt.Println("Terminal front desk for hospital staff onboarding and visit charting.")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  caredesk staff [options]    Onboard or edit a staff member")
	fmt.Println("  caredesk visit [options]    Chart an emergency visit")
	fmt.Println("  caredesk version            Show version")
	fmt.Println()
	fmt.Println("Staff options:")
	fmt.Println("  --edit <ID>       Edit an existing staff member")
	fmt.Println("  --draft <FILE>    Resume from a YAML draft")
	fmt.Println("  --config <FILE>   Load configuration from YAML file")
	fmt.Println()
	fmt.Println("Visit options:")
	fmt.Println("  --config <FILE>   Load configuration from YAML file")
	fmt.Println()
	fmt.Println("Configuration:")
	fmt.Println("  CAREDESK_API_URL     Backend base URL (default: http://localhost:8080)")
	fmt.Println("  CAREDESK_TOKEN       Bearer token for the backend")
	fmt.Println("  CAREDESK_LOG_LEVEL   zerolog level (default: info)")
	fmt.Println("  CAREDESK_LOG_FILE    Log destination; stderr when unset")
	fmt.Println()
	fmt.Println("Examples:")
	fmt.Println("  caredesk staff")
	fmt.Println("  caredesk staff --edit 7f3a2e")
	fmt.Println("  caredesk staff --draft staff-draft.yaml")
	fmt.Println("  caredesk visit --config caredesk.yaml")
}
