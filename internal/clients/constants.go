package clients

import "time"

const (
	USER_AGENT = "sentimen/1.0"

	// Hard ceiling on the single remote classification attempt. On
	// expiry the caller falls back to local scoring immediately; there
	// is no internal retry.
	CLASSIFIER_TIMEOUT = 30 * time.Second

	HEALTHCHECK_TIMEOUT = 5 * time.Second
)
