// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"fmt"
	"os"
	"runtime"
	"strings"
)

// Version information (can be overridden at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// Command represents the CLI command to execute.
type Command int

const (
	CmdTUI Command = iota
	CmdChat
	CmdConfig
	CmdVersion
	CmdHelp
	CmdUnknown
)

// Args holds parsed CLI arguments.
type Args struct {
	// Global flags
	Model string
	Delay string
	Quiet bool

	// Command-specific
	Subcommand string

	// Raw args (remaining after flag parsing)
	Raw []string
}

const usageText = `convospace - chat with a simulated AI assistant

Usage:
  convospace [flags] [command]

Commands:
  tui              Full-screen chat (default)
  chat             Line-mode chat with history
  config [show]    Print the effective configuration
  config path      Print the config file path
  config init      Write a default config file
  version          Print version information
  help             Show this help

Flags:
  --model NAME       Model label to start with (gpt-4o, claude-3, llama-3, mistral)
  --delay DURATION   Wait before each reply, e.g. 1.5s
  -q, --quiet        Suppress banners in line-mode chat
  -h, --help         Show this help
  -v, --version      Print version information

Environment:
  CONVOSPACE_API_KEY       API key; replies report whether it is set
  CONVOSPACE_MODEL         Default model
  CONVOSPACE_REPLY_DELAY   Reply delay
  CONVOSPACE_THEME         auto, dark or light
  CONVOSPACE_DEBUG_LOG     Write TUI diagnostics to this file

A .env file in the working directory is read before the environment.

Version: %s
`

// PrintUsage prints the usage/help text.
func PrintUsage() {
	fmt.Printf(usageText, Version)
}

// PrintVersion prints version information.
func PrintVersion() {
	fmt.Printf("convospace version %s\n", Version)
	fmt.Printf("  Git commit: %s\n", GitCommit)
	fmt.Printf("  Build date: %s\n", BuildDate)
	fmt.Printf("  Go version: %s\n", runtime.Version())
}

// Parse parses os.Args.
func Parse() (Command, Args) {
	return ParseArgs(os.Args[1:])
}

// ParseArgs parses argv (without the program name) and returns the command
// and its arguments. Flags may appear before or after the command.
func ParseArgs(argv []string) (Command, Args) {
	remaining, parsedArgs, early := parseGlobalFlags(argv)
	if early != CmdTUI {
		return early, parsedArgs
	}

	if len(remaining) == 0 {
		return CmdTUI, parsedArgs
	}

	cmd := strings.ToLower(remaining[0])
	remaining = remaining[1:]
	parsedArgs.Raw = remaining

	switch cmd {
	case "tui":
		return CmdTUI, parsedArgs
	case "chat":
		return CmdChat, parsedArgs
	case "config":
		if len(remaining) > 0 {
			parsedArgs.Subcommand = strings.ToLower(remaining[0])
		}
		return CmdConfig, parsedArgs
	case "version":
		return CmdVersion, parsedArgs
	case "help":
		return CmdHelp, parsedArgs
	default:
		parsedArgs.Raw = append([]string{cmd}, remaining...)
		return CmdUnknown, parsedArgs
	}
}

// parseGlobalFlags extracts global flags from args and returns remaining
// args. A help or version flag short-circuits to that command.
func parseGlobalFlags(args []string) ([]string, Args, Command) {
	var remaining []string
	var parsedArgs Args
	early := CmdTUI

	for i := 0; i < len(args); i++ {
		arg := args[i]

		switch arg {
		case "-q", "--quiet":
			parsedArgs.Quiet = true
		case "-h", "--help":
			early = CmdHelp
		case "-v", "--version":
			if early == CmdTUI {
				early = CmdVersion
			}
		case "-m", "--model":
			if i+1 < len(args) {
				i++
				parsedArgs.Model = args[i]
			}
		case "--delay":
			if i+1 < len(args) {
				i++
				parsedArgs.Delay = args[i]
			}
		default:
			switch {
			case strings.HasPrefix(arg, "--model="):
				parsedArgs.Model = strings.TrimPrefix(arg, "--model=")
			case strings.HasPrefix(arg, "--delay="):
				parsedArgs.Delay = strings.TrimPrefix(arg, "--delay=")
			default:
				remaining = append(remaining, arg)
			}
		}
	}

	return remaining, parsedArgs, early
}

// =============================================================================
// COMMAND HANDLERS
// =============================================================================

// HandleChat handles the "chat" command.
func HandleChat(args Args) {
	if err := HandleChatCommand(args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// HandleConfig handles the "config" command.
func HandleConfig(args Args) {
	if err := HandleConfigCommand(args, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// HandleVersion handles the "version" command.
func HandleVersion() {
	PrintVersion()
}

// HandleHelp handles the "help" command.
func HandleHelp() {
	PrintUsage()
}

// HandleUnknown reports an unrecognized command and exits with status 2.
func HandleUnknown(args Args) {
	name := ""
	if len(args.Raw) > 0 {
		name = args.Raw[0]
	}
	fmt.Fprintf(os.Stderr, "%s unknown command %q\n\n", ErrorStyle.Render("Error:"), name)
	PrintUsage()
	os.Exit(2)
}
