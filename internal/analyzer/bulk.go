package analyzer

import (
	"context"
	"errors"
	"log/slog"
)

// BulkReport summarizes one bulk-analysis sweep.
type BulkReport struct {
	Processed int `json:"processed"`
	Degraded  int `json:"degraded"`
	Skipped   int `json:"skipped"`
	Failed    int `json:"failed"`
}

// BulkAnalyze runs Analyze over every unprocessed sample, sequentially
// and independently: one sample failing or being claimed elsewhere never
// aborts the sweep. The returned error only reflects the initial
// listing; everything after is accounted for in the report.
func (a *Analyzer) BulkAnalyze(ctx context.Context) (BulkReport, error) {
	var report BulkReport

	samples, err := a.store.UnprocessedSamples(ctx)
	if err != nil {
		return report, err
	}

	for i := range samples {
		outcome, err := a.Analyze(ctx, &samples[i])
		if err != nil {
			if errors.Is(err, ErrInFlight) {
				report.Skipped++
				continue
			}
			slog.Error("[Analyzer] Failed to store analysis during bulk sweep",
				slog.String("sample_id", samples[i].ID),
				slog.String("error", err.Error()))
			report.Failed++
			continue
		}

		report.Processed++
		if outcome.Degraded {
			report.Degraded++
		}
	}

	if report.Degraded > 0 {
		slog.Warn("[Analyzer] Bulk sweep degraded to local scoring",
			slog.Int("degraded", report.Degraded),
			slog.Int("processed", report.Processed))
	}

	return report, nil
}
