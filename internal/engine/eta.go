package engine

import (
	"time"

	"washplane/internal/store"
)

// defaultWashDuration applies when a job is created with no services.
const defaultWashDuration = 60 * time.Minute

// ComputeETA returns the estimated delivery time for a job created at now.
// With no services the default duration applies; otherwise the MaxTime
// minutes of every service are summed. A zero MaxTime contributes nothing.
func ComputeETA(services []store.Service, now time.Time) time.Time {
	if len(services) == 0 {
		return now.Add(defaultWashDuration)
	}
	var total int
	for _, svc := range services {
		total += svc.MaxTime
	}
	return now.Add(time.Duration(total) * time.Minute)
}

// TotalPrice sums the snapshot prices of the selected services.
func TotalPrice(services []store.Service) int64 {
	var total int64
	for _, svc := range services {
		total += svc.Price
	}
	return total
}
