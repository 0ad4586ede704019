package core

import (
	"strings"
	"time"
)

type CheckStatus string

const (
	CheckStatusAvailable CheckStatus = "available"
	CheckStatusTaken     CheckStatus = "taken"
	CheckStatusError     CheckStatus = "error"
)

// Profile is the body the lookup service returns for a registered name.
type Profile struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type CheckResult struct {
	Name         string      `json:"name"`
	Status       CheckStatus `json:"status"`
	ResponseCode int         `json:"response_code,omitempty"`
	ProfileID    string      `json:"profile_id,omitempty"`
	Elapsed      float64     `json:"elapsed,omitempty"`
	Error        string      `json:"error,omitempty"`
	CreatedAt    time.Time   `json:"created_at"`
}

// Available reports whether the name can be registered. Errors count as
// taken so an unconfirmed lookup never yields a false positive.
func (r CheckResult) Available() bool {
	return r.Status == CheckStatusAvailable
}

type ProgressEvent struct {
	Name   string
	Result CheckResult
	Index  int
	Total  int
}

type ETAEvent struct {
	Processed int
	Total     int
	Elapsed   time.Duration
	Remaining time.Duration
}

type RunSummary struct {
	Total     int
	Results   []CheckResult
	Available []string
	StartedAt time.Time
	Elapsed   time.Duration
}

func (s RunSummary) CountByStatus(status CheckStatus) int {
	count := 0
	for _, r := range s.Results {
		if r.Status == status {
			count++
		}
	}
	return count
}

// ClassifyResponse maps one lookup response to a status. Only a 404 carrying
// the not-found marker counts as available; every other shape is taken.
func ClassifyResponse(responseCode int, responseText string) CheckStatus {
	switch {
	case responseCode == 200:
		return CheckStatusTaken
	case responseCode == 404 && strings.Contains(responseText, NotFoundMarker):
		return CheckStatusAvailable
	}
	return CheckStatusTaken
}
