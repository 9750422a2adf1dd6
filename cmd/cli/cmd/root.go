package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "washctl",
	Short: "Washctl is a command line tool for interacting with the washplane platform",
	Long: `washctl is the command-line interface for the washplane car-wash management platform.

Washplane is a multi-tenant service: every car-wash business gets its own
API key, its own service catalog, and its own job queue with daily token
numbers and capacity-aware admission.

Common workflows:

  Onboard a business (platform operator):
    washctl business create --name "Sparkle Wash" --capacity MULTIPLE --max-jobs 3

  Start a wash job:
    washctl job create --customer <customer-id> --car <car-id> --service <service-id>

  Check a job:
    washctl job status <job-id>

  Move a job forward:
    washctl job advance <job-id> --to WASHING

  Cancel a job:
    washctl job cancel <job-id>

  List the service catalog:
    washctl services list

Configuration:
  Set the API endpoint and credentials via environment variables or a config file:
    WASHPLANE_API_URL    API endpoint (default: http://localhost:8080)
    WASHPLANE_TOKEN      Business API key for authentication`,
}

func Execute() error {
	return rootCmd.Execute()
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}

		// Search config in home directory with name ".washctl"
		viper.AddConfigPath(home)
		viper.SetConfigName(".washctl")
		viper.SetConfigType("yaml")
	}

	// Read environment variables that match "WASHPLANE_VARNAME"
	viper.SetEnvPrefix("WASHPLANE")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Println("Using config file:", viper.ConfigFileUsed())
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.washctl.yaml)")

	rootCmd.PersistentFlags().String("url", "http://localhost:8080", "Washplane API URL")
	viper.BindPFlag("url", rootCmd.PersistentFlags().Lookup("url"))

	rootCmd.PersistentFlags().StringP("token", "t", "", "Business API key for authentication")
	viper.BindPFlag("token", rootCmd.PersistentFlags().Lookup("token"))
}
