package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"slicec/internal/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the compiler version",
	Run: func(_ *cobra.Command, _ []string) {
		fmt.Println("slicec " + version.Version)
	},
}
