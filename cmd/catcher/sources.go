package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/pose-catcher/internal/registry"
)

var sourcesCmd = &cobra.Command{
	Use:   "sources",
	Short: "List available pose sources",
	Long:  `Shows the pose sources that can drive the basket with --pose-source.`,
	Args:  cobra.NoArgs,
	Run:   runSources,
}

func runSources(_ *cobra.Command, _ []string) {
	sources := registry.List()

	fmt.Println("Available pose sources:")
	fmt.Println()

	maxIDLen := len("none")
	for _, s := range sources {
		maxIDLen = max(maxIDLen, len(s.ID))
	}

	fmt.Printf("  %-*s  %s\n", maxIDLen, "ID", "Description")
	fmt.Printf("  %-*s  %s\n", maxIDLen, "--", "-----------")
	fmt.Printf("  %-*s  %s\n", maxIDLen, "none", "keyboard only")
	for _, s := range sources {
		fmt.Printf("  %-*s  %s\n", maxIDLen, s.ID, s.Description)
	}

	fmt.Println()
	fmt.Println("Run 'catcher play --pose-source <id>' to play with a source.")
}
