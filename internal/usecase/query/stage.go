package query

// Stage is a step in the lifecycle of a single query.
type Stage string

// Query lifecycle: RECEIVED -> CLASSIFIED -> {PRODUCT_RESOLVED | FAQ_RESOLVED} -> FORMATTED.
const (
	StageReceived        Stage = "RECEIVED"
	StageClassified      Stage = "CLASSIFIED"
	StageProductResolved Stage = "PRODUCT_RESOLVED"
	StageFAQResolved     Stage = "FAQ_RESOLVED"
	StageFormatted       Stage = "FORMATTED"
)
