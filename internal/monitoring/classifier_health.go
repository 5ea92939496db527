package monitoring

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/sentimenhq/sentimen/internal/clients"
)

const HEALTHCHECK_INTERVAL = 15 * time.Second

// MonitorClassifierHealth probes the remote classifier on a fixed
// interval and records the result. Analyses do not consult this flag —
// they always attempt the remote call and fall back on their own — it
// exists so operators can see degradation before users do.
func MonitorClassifierHealth(ctx context.Context, healthy *atomic.Bool) {
	ticker := time.NewTicker(HEALTHCHECK_INTERVAL)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			isHealthy := clients.GetBertClient().HealthCheck()
			wasHealthy := healthy.Swap(isHealthy)

			if !isHealthy && wasHealthy {
				slog.Warn("[HealthCheck] Classifier became unhealthy; analyses will degrade to local scoring")
			}
			if isHealthy && !wasHealthy {
				slog.Info("[HealthCheck] Classifier recovered")
			}
		}
	}
}
