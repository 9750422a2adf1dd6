package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var servicesCmd = &cobra.Command{
	Use:   "services",
	Short: "Manage the service catalog",
}

var servicesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the business's service catalog",
	Run: func(cmd *cobra.Command, args []string) {
		activeOnly, _ := cmd.Flags().GetBool("active")

		url := viper.GetString("url")
		token := viper.GetString("token")

		if token == "" {
			cmd.Println("API key not found. Please set it using the --token flag or the WASHPLANE_TOKEN environment variable")
			return
		}

		client := NewWashClient(url, token)
		services, err := client.ListServices(activeOnly)
		if err != nil {
			if apiErr, ok := err.(*APIError); ok {
				cmd.Printf("Error (%d): %s\n", apiErr.StatusCode, apiErr.Message)
			} else {
				cmd.Printf("Error: %v\n", err)
			}
			return
		}

		if len(services) == 0 {
			cmd.Println("No services found")
			return
		}

		for _, svc := range services {
			state := colorGreen + "active" + colorReset
			if !svc.IsActive {
				state = colorDim + "inactive" + colorReset
			}
			cmd.Printf("%s  %s%s%s  %s  %d-%d min  [%s]\n",
				svc.ID, colorBold, svc.Name, colorReset, formatPrice(svc.Price), svc.MinTime, svc.MaxTime, state)
		}
	},
}

func init() {
	servicesListCmd.Flags().Bool("active", false, "Only show active services")

	servicesCmd.AddCommand(servicesListCmd)
	rootCmd.AddCommand(servicesCmd)
}
