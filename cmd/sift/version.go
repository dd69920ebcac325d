package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Printf("sift %s\n", version)
		},
	}

	rootCmd.AddCommand(versionCmd)
}
