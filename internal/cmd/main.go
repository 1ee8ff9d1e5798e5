package cmd

import (
	"log"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// RootCmd represents the base command when called without any subcommands.
var RootCmd = &cobra.Command{
	Use:     "gslc",
	Short:   `gslc`,
	Long:    `gslc materializes a parsed genotype-specification assembly into DNA slices.`,
	Version: "0.1.0",
}

func init() {
	RootCmd.PersistentFlags().StringP("config", "c", "", "user defined config file that overrides the embedded defaults")
	if err := viper.BindPFlag("config", RootCmd.PersistentFlags().Lookup("config")); err != nil {
		log.Fatal(err)
	}
}
