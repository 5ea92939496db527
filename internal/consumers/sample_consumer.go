// Package consumers holds the worker-side Kafka loops.
package consumers

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/confluentinc/confluent-kafka-go/kafka"
	"github.com/google/uuid"

	"github.com/sentimenhq/sentimen/internal/analyzer"
	"github.com/sentimenhq/sentimen/internal/clients/kafka_client"
	"github.com/sentimenhq/sentimen/internal/models"
	"github.com/sentimenhq/sentimen/internal/textproc"
	"github.com/sentimenhq/sentimen/internal/utils"
)

const resultBatchSize = 10

var resultBuffer = utils.NewBatchBuffer[models.SentimentAnalysis](resultBatchSize)

// sampleNamespace keys deterministic sample IDs, so a redelivered
// envelope maps onto the row its first delivery created instead of
// minting a duplicate.
var sampleNamespace = uuid.MustParse("9b1c7a4e-3d52-4f8b-8e6a-2c0d5b7f9a31")

// StartSampleConsumer drains the sample-ingest topic: each message
// becomes a stored TextSample, gets analyzed, and the result is
// re-published for downstream consumers. Offsets are committed only
// after the sample and its analysis are durably stored.
func StartSampleConsumer(ctx context.Context, consumer *kafka.Consumer, store analyzer.Store, a *analyzer.Analyzer) {
	iterator := kafka_client.NewMessageIterator(ctx, consumer)

	for {
		select {
		case <-ctx.Done():
			slog.Warn("[SampleConsumer] Consumer shutting down...")
			flushResults()
			return
		default:
			msg, err := iterator.Next()
			if err != nil {
				if errors.Is(err, context.Canceled) {
					continue
				}
				slog.Warn("[SampleConsumer] Failed to read message",
					slog.String("error", err.Error()))
				continue
			}

			var envelope models.SampleEnvelope
			if err := json.Unmarshal(msg.Value, &envelope); err != nil {
				slog.Error("[SampleConsumer] Dropping undecodable message",
					slog.String("error", err.Error()))
				kafka_client.CommitMessage(consumer, msg)
				continue
			}

			sample, err := ingestSample(ctx, store, envelope)
			if err != nil {
				// leave the offset uncommitted so the message replays
				slog.Error("[SampleConsumer] Failed to store sample",
					slog.String("error", err.Error()))
				continue
			}

			if sample.IsProcessed {
				// redelivery of a sample whose analysis is already stored
				slog.Debug("[SampleConsumer] Skipping already processed sample",
					slog.String("sample_id", sample.ID))
				kafka_client.CommitMessage(consumer, msg)
				continue
			}

			outcome, err := a.Analyze(ctx, sample)
			if err != nil {
				if errors.Is(err, analyzer.ErrInFlight) {
					kafka_client.CommitMessage(consumer, msg)
					continue
				}
				slog.Error("[SampleConsumer] Failed to analyze sample",
					slog.String("sample_id", sample.ID),
					slog.String("error", err.Error()))
				continue
			}

			resultBuffer.Add(*outcome.Analysis)
			if resultBuffer.Size() >= resultBatchSize {
				flushResults()
			}

			kafka_client.CommitMessage(consumer, msg)
		}
	}
}

// sampleID derives a stable ID from the envelope's identifying fields,
// making ingestion idempotent under at-least-once delivery.
func sampleID(envelope models.SampleEnvelope) string {
	key := envelope.Content + "\x00" + envelope.SourcePlatform
	if envelope.PublishedAt != nil {
		key += "\x00" + envelope.PublishedAt.UTC().Format(time.RFC3339Nano)
	}
	return uuid.NewSHA1(sampleNamespace, []byte(key)).String()
}

func ingestSample(ctx context.Context, store analyzer.Store, envelope models.SampleEnvelope) (*models.TextSample, error) {
	content := envelope.Content
	if envelope.Format == "markdown" {
		content = textproc.MarkdownToText(content)
	}

	sourceType := envelope.SourceType
	if !sourceType.Valid() {
		sourceType = models.SourceOther
	}

	sample := &models.TextSample{
		ID:             sampleID(envelope),
		Content:        content,
		SourceType:     sourceType,
		SourcePlatform: envelope.SourcePlatform,
		AuthorID:       envelope.AuthorID,
		AuthorName:     envelope.AuthorName,
		PublishedAt:    envelope.PublishedAt,
		Location:       envelope.Location,
		Metadata:       envelope.Metadata,
	}

	if err := store.CreateSample(ctx, sample); err != nil {
		return nil, err
	}
	return sample, nil
}

func flushResults() {
	batch := resultBuffer.GetAndClear()
	if len(batch) == 0 {
		return
	}

	for _, analysis := range batch {
		if err := kafka_client.Publish(kafka_client.KAFKA_TOPIC_ANALYSIS_RESULTS, analysis.TextSampleID, analysis); err != nil {
			slog.Warn("[SampleConsumer] Failed to publish analysis result",
				slog.String("analysis_id", analysis.ID),
				slog.String("error", err.Error()))
		}
	}

	slog.Info("[SampleConsumer] Published analysis results",
		slog.Int("batch_size", len(batch)))
}
