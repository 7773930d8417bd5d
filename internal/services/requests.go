package services

// Endpoint paths consumed by the dashboard. The base URL in front of them
// is configuration.
const (
	PathDatasetInfo   = "/dataset/info"
	PathProcessedInfo = "/dataset/processed/info"
	PathChanges       = "/dataset/changes"
	PathUpdateData    = "/sensors/update-data"
)
