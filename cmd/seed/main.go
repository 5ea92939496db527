// seed loads a set of code-mixed development samples and analyzes them
// through the local fallback path, giving a fresh database something to
// chart.
package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/sentimenhq/sentimen/config"
	"github.com/sentimenhq/sentimen/internal/analyzer"
	"github.com/sentimenhq/sentimen/internal/clients"
	"github.com/sentimenhq/sentimen/internal/db"
	"github.com/sentimenhq/sentimen/internal/logging"
	"github.com/sentimenhq/sentimen/internal/models"
)

type seedSample struct {
	content  string
	source   models.SourceType
	platform string
}

var seedSamples = []seedSample{
	{
		content:  "Prabowo dan Gibran sudah satu tahun memimpin Indonesia. Overall, mereka sudah melakukan yang terbaik untuk negara ini. Semoga ke depannya bisa lebih baik lagi!",
		source:   models.SourceSocialMedia,
		platform: "twitter",
	},
	{
		content:  "Setahun sudah tapi masih belum ada perubahan yang signifikan. Economy masih struggling dan banyak masalah yang belum terselesaikan. Very disappointing!",
		source:   models.SourceSocialMedia,
		platform: "facebook",
	},
	{
		content: "Prabowo-Gibran administration sudah berjalan satu tahun. Ada beberapa progress yang bagus, tapi masih ada juga challenges yang perlu diatasi. Let's see how they perform in the next year.",
		source:  models.SourceNews,
	},
	{
		content:  "Wow! Prabowo dan Gibran benar-benar amazing! Mereka sudah berhasil membuat Indonesia lebih baik dalam satu tahun. Semua program mereka sangat helpful dan beneficial untuk masyarakat. I'm so proud of them!",
		source:   models.SourceSocialMedia,
		platform: "instagram",
	},
	{
		content: "The current administration has failed to address key economic issues. Inflation is still high, unemployment rates are concerning, and the overall economic growth is not meeting expectations. This is very concerning for the future of Indonesia.",
		source:  models.SourceNews,
	},
	{
		content: "Setelah satu tahun, saya melihat ada kemajuan dalam beberapa aspek. Namun, masih banyak yang perlu diperbaiki. Overall, saya memberikan rating 7/10 untuk kinerja mereka.",
		source:  models.SourceSurvey,
	},
	{
		content:  "Prabowo dan Gibran telah menunjukkan leadership yang excellent dalam mengatasi berbagai challenges. Their policies have been very effective and the people are starting to see positive results.",
		source:   models.SourceSocialMedia,
		platform: "twitter",
	},
}

func main() {
	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "dev"
	}
	config.LoadEnv(env)
	logging.InitLogger()

	ctx := context.Background()

	pg := clients.GetPostgresClient(ctx)
	defer pg.Close()

	repo := db.NewRepository(pg.DB)
	if err := repo.EnsureSchema(ctx); err != nil {
		slog.Error("[Seed] Failed to ensure schema", slog.String("error", err.Error()))
		os.Exit(1)
	}

	now := time.Now()
	for _, seed := range seedSamples {
		publishedAt := now
		sample := &models.TextSample{
			ID:             uuid.NewString(),
			Content:        seed.content,
			SourceType:     seed.source,
			SourcePlatform: seed.platform,
			PublishedAt:    &publishedAt,
		}
		if err := repo.CreateSample(ctx, sample); err != nil {
			slog.Error("[Seed] Failed to insert sample", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}
	slog.Info("[Seed] Inserted samples", slog.Int("count", len(seedSamples)))

	// no classifier: seeds go through the deterministic local path
	a := analyzer.New(repo, nil, nil, nil)
	report, err := a.BulkAnalyze(ctx)
	if err != nil {
		slog.Error("[Seed] Bulk analysis failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	slog.Info("[Seed] Analyzed seed samples",
		slog.Int("processed", report.Processed),
		slog.Int("failed", report.Failed))
}
