// Package main is the entry point for the cloud-samples CLI.
//
// Each subcommand is a small console sample: construct a credential,
// call one or two SDK methods, and exit with a code derived from the
// classified outcome.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lmittmann/tint"

	"github.com/anirudhbiyani/cloud-samples/pkg/samples"

	// Import providers to register their samples
	_ "github.com/anirudhbiyani/cloud-samples/pkg/providers/aws"
	_ "github.com/anirudhbiyani/cloud-samples/pkg/providers/azure"
)

const version = "0.1.0"

func main() {
	if err := run(os.Args[1:]); err != nil {
		failure := samples.Classify(err)
		fmt.Fprintf(os.Stderr, "Error: %s\n", failure.Message)
		os.Exit(failure.Outcome.ExitStatus())
	}
}

func run(args []string) error {
	args = setupLogging(args)

	if len(args) == 0 {
		printUsage()
		return nil
	}

	// Setup context with signal handling
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
	}()

	cmd := args[0]
	cmdArgs := args[1:]

	switch cmd {
	case "samples", "list":
		return cmdSamples()
	case "version":
		fmt.Printf("cloud-samples %s\n", version)
		return nil
	case "help", "-h", "--help":
		printUsage()
		return nil
	default:
		sample, err := samples.Get(cmd)
		if err != nil {
			return fmt.Errorf("%w\nRun 'cloud-samples help' for usage", err)
		}
		return sample.Run(ctx, cmdArgs)
	}
}

// setupLogging installs the default logger and strips the verbosity
// flag so samples never see it.
func setupLogging(args []string) []string {
	level := slog.LevelWarn
	rest := args[:0]
	for _, a := range args {
		if a == "-v" || a == "--verbose" {
			level = slog.LevelDebug
			continue
		}
		rest = append(rest, a)
	}

	slog.SetDefault(slog.New(tint.NewHandler(os.Stderr, &tint.Options{
		Level:      level,
		TimeFormat: time.Kitchen,
	})))
	return rest
}

func cmdSamples() error {
	fmt.Println("Available samples:")
	for _, s := range samples.List() {
		fmt.Printf("  %-14s %s\n", s.Name(), s.Description())
	}
	return nil
}

func printUsage() {
	fmt.Println(`cloud-samples - Cloud SDK client samples

Usage:
  cloud-samples <sample> [options]

Samples:
  setup          Provision the resource group, vault, role assignment, and sample secret
  list-groups    List resource groups via the resource-management client
  get-secret     Retrieve a secret from the managed secrets store
  login          Acquire a token interactively and show the signed-in principal
  list-roles     List IAM roles via the AWS SDK

Commands:
  samples        List available samples
  version        Show version information
  help           Show this help message

Common Options:
  --auth <mode>           Credential mode (default, interactive, device-code)
  --tenant <id>           Directory tenant ID
  -v, --verbose           Verbose diagnostics

Setup Options:
  --subscription <id>     Subscription ID (or AZURE_SUBSCRIPTION_ID)
  --config <path>         Setup config file (YAML)
  --resource-group <name> Resource group to create (default: cloud-samples-rg)
  --location <region>     Region (default: eastus)
  --vault-name <name>     Vault name (default: generated)
  --secret-name <name>    Sample secret name (default: sample-secret)
  --summary <path>        Summary file path (default: ~/.cloud-samples/config.json)

Get-Secret Options:
  --name <name>           Secret name (default: from summary file)
  --vault-url <url>       Vault endpoint (or KEY_VAULT_URL, or summary file)

Environment:
  KEY_VAULT_URL           Vault endpoint for get-secret
  AZURE_TENANT_ID         Directory tenant ID
  AZURE_SUBSCRIPTION_ID   Subscription for setup and list-groups

  A .env file in the working directory is loaded when present.

Exit codes:
  0  success
  1  unexpected error
  2  authentication failed
  3  service request failed
  4  invalid configuration

Examples:
  # Provision everything the samples need
  cloud-samples setup --subscription 00000000-0000-0000-0000-000000000000

  # List resource groups with the signed-in identity
  cloud-samples list-groups

  # Read the sample secret written by setup
  cloud-samples get-secret

  # Interactive sign-in with a device code
  cloud-samples login --auth device-code`)
}
