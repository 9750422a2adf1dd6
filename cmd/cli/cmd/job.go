package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"washplane/pkg/api"
)

var jobCmd = &cobra.Command{
	Use:   "job",
	Short: "Manage wash jobs",
}

var jobCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Start a new wash job",
	Long: `Start a new wash job for a customer's car.

Admission depends on the business capacity: a SINGLE-bay business accepts
one active job at a time, a MULTIPLE-bay business accepts up to its
configured maximum. A rejected job returns the reason without queueing.

Example:
  washctl job create --customer <customer-id> --car <car-id> --service <service-id> --service <service-id>`,
	Run: func(cmd *cobra.Command, args []string) {
		flags := cmd.Flags()
		customerID, _ := flags.GetString("customer")
		carID, _ := flags.GetString("car")
		serviceIDs, _ := flags.GetStringSlice("service")

		url := viper.GetString("url")
		token := viper.GetString("token")

		if token == "" {
			cmd.Println("API key not found. Please set it using the --token flag or the WASHPLANE_TOKEN environment variable")
			return
		}

		if customerID == "" {
			cmd.Println("Error: --customer is required")
			return
		}
		if carID == "" {
			cmd.Println("Error: --car is required")
			return
		}
		if len(serviceIDs) == 0 {
			cmd.Println("Error: --service is required")
			return
		}

		client := NewWashClient(url, token)
		req := api.CreateJobRequest{
			CustomerID: customerID,
			CarID:      carID,
			ServiceIDs: serviceIDs,
		}

		result, err := client.CreateJob(req)
		if err != nil {
			if apiErr, ok := err.(*APIError); ok {
				cmd.Printf("Error (%d): %s\n", apiErr.StatusCode, apiErr.Message)
			} else {
				cmd.Printf("Error: %v\n", err)
			}
			return
		}

		cmd.Printf("✓ Job created!\nID: %s\nToken: %s\nETA: %s\n",
			result.ID, result.TokenNumber, result.EstimatedDelivery.Format("15:04"))
	},
}

var jobStatusCmd = &cobra.Command{
	Use:   "status [job_id]",
	Short: "Get status of a wash job",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		url := viper.GetString("url")
		token := viper.GetString("token")

		if token == "" {
			cmd.Println("API key not found. Please set it using the --token flag or the WASHPLANE_TOKEN environment variable")
			return
		}

		client := NewWashClient(url, token)
		job, err := client.GetJob(args[0])
		if err != nil {
			if apiErr, ok := err.(*APIError); ok {
				cmd.Printf("Error (%d): %s\n", apiErr.StatusCode, apiErr.Message)
			} else {
				cmd.Printf("Error: %v\n", err)
			}
			return
		}

		printJob(cmd, job)
	},
}

var jobAdvanceCmd = &cobra.Command{
	Use:   "advance [job_id]",
	Short: "Move a wash job to a later status",
	Long: `Move a job forward through its lifecycle:
RECEIVED, IN_PROGRESS, WASHING, DRYING, COMPLETED, DELIVERED.

Jobs never move backward, and DELIVERED or CANCELLED jobs are final.

Example:
  washctl job advance <job-id> --to WASHING`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		target, _ := cmd.Flags().GetString("to")

		url := viper.GetString("url")
		token := viper.GetString("token")

		if token == "" {
			cmd.Println("API key not found. Please set it using the --token flag or the WASHPLANE_TOKEN environment variable")
			return
		}

		if target == "" {
			cmd.Println("Error: --to is required")
			return
		}

		client := NewWashClient(url, token)
		job, err := client.UpdateJobStatus(args[0], target)
		if err != nil {
			if apiErr, ok := err.(*APIError); ok {
				cmd.Printf("Error (%d): %s\n", apiErr.StatusCode, apiErr.Message)
			} else {
				cmd.Printf("Error: %v\n", err)
			}
			return
		}

		cmd.Printf("✓ Job %s is now %s\n", job.TokenNumber, colorizeStatus(job.Status))
	},
}

var jobCancelCmd = &cobra.Command{
	Use:   "cancel [job_id]",
	Short: "Cancel a wash job",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		url := viper.GetString("url")
		token := viper.GetString("token")

		if token == "" {
			cmd.Println("API key not found. Please set it using the --token flag or the WASHPLANE_TOKEN environment variable")
			return
		}

		client := NewWashClient(url, token)
		job, err := client.CancelJob(args[0])
		if err != nil {
			if apiErr, ok := err.(*APIError); ok {
				cmd.Printf("Error (%d): %s\n", apiErr.StatusCode, apiErr.Message)
			} else {
				cmd.Printf("Error: %v\n", err)
			}
			return
		}

		cmd.Printf("✓ Job %s cancelled\n", job.TokenNumber)
	},
}

func printJob(cmd *cobra.Command, job *api.JobResponse) {
	icon := statusIcon(job.Status)
	cmd.Printf("%s %sJob Details%s\n", icon, colorBold, colorReset)
	cmd.Println("──────────────────────────────")

	cmd.Printf("%sID:%s         %s\n", colorDim, colorReset, job.ID)
	cmd.Printf("%sToken:%s      %s\n", colorDim, colorReset, job.TokenNumber)
	cmd.Printf("%sStatus:%s     %s\n", colorDim, colorReset, colorizeStatus(job.Status))

	if len(job.Services) > 0 {
		cmd.Printf("%sServices:%s\n", colorDim, colorReset)
		for _, svc := range job.Services {
			cmd.Printf("  - %s (%s)\n", svc.Name, formatPrice(svc.Price))
		}
	}
	cmd.Printf("%sTotal:%s      %s\n", colorDim, colorReset, formatPrice(job.TotalPrice))

	cmd.Printf("%sETA:%s        %s\n", colorDim, colorReset, formatTimeWithRelative(&job.EstimatedDelivery))
	if job.ActualDelivery != nil {
		cmd.Printf("%sDelivered:%s  %s\n", colorDim, colorReset, formatTimeWithRelative(job.ActualDelivery))
	}
}

// ANSI color codes
const (
	colorReset  = "\033[0m"
	colorBold   = "\033[1m"
	colorDim    = "\033[2m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorCyan   = "\033[36m"
)

func statusIcon(status string) string {
	switch status {
	case "DELIVERED":
		return colorGreen + "✓" + colorReset
	case "CANCELLED":
		return colorRed + "✗" + colorReset
	case "IN_PROGRESS", "WASHING", "DRYING":
		return colorYellow + "⏳" + colorReset
	case "RECEIVED":
		return colorCyan + "◯" + colorReset
	case "COMPLETED":
		return colorGreen + "●" + colorReset
	default:
		return "•"
	}
}

func colorizeStatus(status string) string {
	icon := statusIcon(status)
	switch status {
	case "DELIVERED", "COMPLETED":
		return icon + " " + colorGreen + status + colorReset
	case "CANCELLED":
		return icon + " " + colorRed + status + colorReset
	case "IN_PROGRESS", "WASHING", "DRYING":
		return icon + " " + colorYellow + status + colorReset
	case "RECEIVED":
		return icon + " " + colorCyan + status + colorReset
	default:
		return status
	}
}

func formatPrice(cents int64) string {
	return fmt.Sprintf("%d.%02d", cents/100, cents%100)
}

func formatTimeWithRelative(t *time.Time) string {
	if t == nil {
		return "-"
	}
	return fmt.Sprintf("%s %s(%s)%s", t.Format("Mon, 02 Jan 2006 15:04 MST"), colorDim, relativeTime(*t), colorReset)
}

func relativeTime(t time.Time) string {
	duration := time.Until(t)
	suffix := "from now"
	if duration < 0 {
		duration = -duration
		suffix = "ago"
	}

	if duration < time.Minute {
		return fmt.Sprintf("%ds %s", int(duration.Seconds()), suffix)
	} else if duration < time.Hour {
		return fmt.Sprintf("%dm %s", int(duration.Minutes()), suffix)
	} else if duration < 24*time.Hour {
		return fmt.Sprintf("%dh %s", int(duration.Hours()), suffix)
	}
	days := int(duration.Hours() / 24)
	if days == 1 {
		return "1 day " + suffix
	}
	return fmt.Sprintf("%d days %s", days, suffix)
}

func init() {
	jobCreateCmd.Flags().StringP("customer", "C", "", "Customer ID (required)")
	jobCreateCmd.Flags().String("car", "", "Car ID (required)")
	jobCreateCmd.Flags().StringSliceP("service", "s", []string{}, "Service ID, repeatable (required)")

	jobAdvanceCmd.Flags().String("to", "", "Target status (required)")

	jobCmd.AddCommand(jobCreateCmd)
	jobCmd.AddCommand(jobStatusCmd)
	jobCmd.AddCommand(jobAdvanceCmd)
	jobCmd.AddCommand(jobCancelCmd)
	rootCmd.AddCommand(jobCmd)
}
