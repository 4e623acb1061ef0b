package models

// Submission outcomes recorded for metrics.
const (
	OutcomeCreated         = "created"
	OutcomeUpdated         = "updated"
	OutcomeDuplicatesFound = "duplicates_found"
	OutcomeDeclined        = "declined"
	OutcomeFailed          = "failed"
)

// SubmissionStat is a submission outcome counter row.
type SubmissionStat struct {
	Outcome string `json:"outcome"`
	Count   int64  `json:"count"`
}
