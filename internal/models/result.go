package models

// MutationResult mirrors the store's update counters. A zero ModifiedCount is
// a no-op, not a failure.
type MutationResult struct {
	MatchedCount  int64 `json:"matched_count"`
	ModifiedCount int64 `json:"modified_count"`
}

func (r MutationResult) Changed() bool {
	return r.ModifiedCount > 0
}
