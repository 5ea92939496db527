package kafka_client

const (
	KAFKA_TOPIC_SAMPLE_INGEST    = "sample-ingest"    // raw text samples from the collectors
	KAFKA_TOPIC_ANALYSIS_RESULTS = "analysis-results" // completed analyses for downstream consumers
)
