package cmd

import (
	"fmt"

	"github.com/alexiusacademia/rcmn/internal/version"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of rcmn",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("rcmn v%s\n", version.Version)
		fmt.Println("Flexural capacity of reinforced concrete beams")
		fmt.Printf("Built %s from %s\n", version.BuildTime, version.GitCommit)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
