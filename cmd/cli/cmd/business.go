package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"washplane/pkg/api"
)

var businessCmd = &cobra.Command{
	Use:   "business",
	Short: "Manage businesses (platform operator)",
}

var businessCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Onboard a new car-wash business",
	Long: `Onboard a new business and print its API key.

The key is shown exactly once; store it somewhere safe.

Example:
  washctl business create --name "Sparkle Wash" --capacity SINGLE
  washctl business create --name "Mega Wash" --capacity MULTIPLE --max-jobs 5`,
	Run: func(cmd *cobra.Command, args []string) {
		flags := cmd.Flags()
		name, _ := flags.GetString("name")
		phone, _ := flags.GetString("phone")
		capacity, _ := flags.GetString("capacity")
		maxJobs, _ := flags.GetInt("max-jobs")
		rateLimit, _ := flags.GetInt("rate-limit")
		rateBurst, _ := flags.GetInt("rate-burst")

		url := viper.GetString("url")
		token := viper.GetString("token")

		if token == "" {
			cmd.Println("Admin secret not found. Please set it using the --token flag or the WASHPLANE_TOKEN environment variable")
			return
		}

		if name == "" {
			cmd.Println("Error: --name is required")
			return
		}

		client := NewWashClient(url, token)
		req := api.CreateBusinessRequest{
			Name:              name,
			Phone:             phone,
			Capacity:          capacity,
			MaxConcurrentJobs: maxJobs,
			RateLimit:         rateLimit,
			RateLimitBurst:    rateBurst,
		}

		result, err := client.CreateBusiness(req)
		if err != nil {
			if apiErr, ok := err.(*APIError); ok {
				cmd.Printf("Error (%d): %s\n", apiErr.StatusCode, apiErr.Message)
			} else {
				cmd.Printf("Error: %v\n", err)
			}
			return
		}

		cmd.Printf("✓ Business created!\nID: %s\nName: %s\nAPI Key: %s\n\nSave the API key now; it will not be shown again.\n",
			result.ID, result.Name, result.ApiKey)
	},
}

func init() {
	flags := businessCreateCmd.Flags()
	flags.StringP("name", "n", "", "Name of the business (required)")
	flags.String("phone", "", "Contact phone number (optional)")
	flags.String("capacity", "SINGLE", "Capacity mode: SINGLE or MULTIPLE")
	flags.Int("max-jobs", 1, "Max concurrent jobs (MULTIPLE mode only)")
	flags.Int("rate-limit", 0, "Requests per second for this tenant, 0 for unlimited")
	flags.Int("rate-burst", 0, "Burst size for the rate limiter")

	businessCmd.AddCommand(businessCreateCmd)
	rootCmd.AddCommand(businessCmd)
}
