package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
)

const version = "1.0.0"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	if len(args) < 1 {
		printUsage(stdout)
		return nil
	}

	command, rest := args[0], args[1:]

	switch command {
	case "list":
		return listCommand(ctx, rest, stdout, stderr)
	case "get":
		return getCommand(ctx, rest, stdout, stderr)
	case "by-date":
		return byDateCommand(ctx, rest, stdout, stderr)
	case "range":
		return rangeCommand(ctx, rest, stdout, stderr)
	case "by-status":
		return byStatusCommand(ctx, rest, stdout, stderr)
	case "stats":
		return statsCommand(ctx, rest, stdout, stderr)
	case "create":
		return createCommand(ctx, rest, stdout, stderr)
	case "update":
		return updateCommand(ctx, rest, stdout, stderr)
	case "delete":
		return deleteCommand(ctx, rest, stdout, stderr)
	case "version":
		fmt.Fprintf(stdout, "eventctl version %s\n", version)
		return nil
	case "help", "-h", "--help":
		printUsage(stdout)
		return nil
	default:
		fmt.Fprintf(stderr, "Unknown command: %s\n\n", command)
		printUsage(stderr)
		return fmt.Errorf("unknown command: %s", command)
	}
}

func printUsage(w io.Writer) {
	fmt.Fprint(w, `eventctl - command-line client for the event API

USAGE:
    eventctl <command> [options]

COMMANDS:
    list        List events (--search, --status, --sort, --page)
    get         Show one event by id
    by-date     List events on a date (YYYY-MM-DD; --status, --sort time)
    range       List events between two dates, inclusive
    by-status   List events with a status
    stats       Show event counts per status
    create      Create an event
    update      Update an event; unset flags keep the current value
    delete      Delete an event by id
    version     Show CLI version
    help        Show this help message

GLOBAL OPTIONS:
    --base-url   API base URL (default: http://104.248.153.158/event-api/)
    --timeout    Timeout for connect, write and read (e.g. 10s)
    --locale     Message language: id, en (default: id)
    --page-size  Events per page for list (default: 5)
    --log-level  debug, info, warn, error (default: error)
    --output     Output format: table, json (default: table)

EXAMPLES:
    # Upcoming events whose title contains "tech", sorted by time
    eventctl list --status upcoming --search tech --sort time

    # Events in January 2025
    eventctl range 2025-01-01 2025-01-31

    # Create an event
    eventctl create --title "Tech Talk" --date 2025-01-15 --time 14:00 --location "Hall A"

    # Move an event to another room
    eventctl update 42 --location "Hall B"

    # Run against a local stub server
    eventctl list --base-url http://localhost:8090/event-api/
`)
}
