package services

import (
	"context"
	"time"
)

// MetricsRecorder is the subset of the CloudWatch client the services use.
type MetricsRecorder interface {
	RecordCount(ctx context.Context, metricName string, dimensions map[string]string) error
}

// recordAsync sends a counter without holding up the request.
func recordAsync(m MetricsRecorder, name string) {
	if m == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = m.RecordCount(ctx, name, map[string]string{"Service": "videojuego-api"})
	}()
}
