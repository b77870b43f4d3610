// Command plasmerge provides a command-line interface over the plasmerge
// three-way structural merge engine.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	plasmerge "github.com/plasmerge/plasmerge"
	"github.com/plasmerge/plasmerge/cmd/plasmerge/commands"
	"github.com/plasmerge/plasmerge/internal/cliutil"
	"github.com/plasmerge/plasmerge/internal/mcpserver"
)

// validCommands lists all valid command names for typo suggestions.
var validCommands = []string{"merge", "mcp", "version", "help"}

// levenshteinDistance calculates the minimum edit distance between two strings.
func levenshteinDistance(a, b string) int {
	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
		return len(a)
	}

	matrix := make([][]int, len(a)+1)
	for i := range matrix {
		matrix[i] = make([]int, len(b)+1)
		matrix[i][0] = i
	}
	for j := range len(b) + 1 {
		matrix[0][j] = j
	}

	for i := 1; i <= len(a); i++ {
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			matrix[i][j] = min(
				matrix[i-1][j]+1,      // deletion
				matrix[i][j-1]+1,      // insertion
				matrix[i-1][j-1]+cost, // substitution
			)
		}
	}

	return matrix[len(a)][len(b)]
}

// suggestCommand returns the closest matching command if the edit distance is <= 2.
func suggestCommand(input string) string {
	var bestMatch string
	bestDistance := 3

	for _, cmd := range validCommands {
		dist := levenshteinDistance(input, cmd)
		if dist < bestDistance {
			bestDistance = dist
			bestMatch = cmd
		}
	}

	return bestMatch
}

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]

	switch command {
	case "version", "-v", "--version":
		fmt.Printf("plasmerge %s\n", plasmerge.UserAgent())
	case "help", "-h", "--help":
		printUsage()
	case "merge":
		if err := commands.HandleMerge(os.Args[2:]); err != nil {
			cliutil.Writef(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "mcp":
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		if err := mcpserver.Run(ctx); err != nil {
			cliutil.Writef(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	default:
		cliutil.Writef(os.Stderr, "Unknown command: %s\n", command)
		if suggestion := suggestCommand(command); suggestion != "" {
			cliutil.Writef(os.Stderr, "Did you mean: %s?\n", suggestion)
		}
		cliutil.Writef(os.Stderr, "\n")
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`plasmerge - three-way structural merge for generated UI component sources

Usage:
  plasmerge <command> [options]

Commands:
  merge       Three-way merge a base/edited/new component source
  mcp         Start an MCP server over stdio exposing merge_component
  version     Show version information
  help        Show this help message

Examples:
  plasmerge merge -edited Button.tsx -new Button.tsx.new -o Button.tsx
  plasmerge merge -base Button.base.tsx -edited Button.tsx -new Button.tsx.new -report yaml

Run 'plasmerge <command> -h' for more information on a command.`)
}
