// Package lead defines the core intake domain: the Lead entity, the
// pipeline status vocabulary, and the repository contract the analytics
// services consume.
package lead

import "time"

// Pipeline stages a lead moves through. Won and Lost are terminal.
const (
	StatusNew          = "New"
	StatusContacted    = "Contacted"
	StatusProposalSent = "Proposal Sent"
	StatusWon          = "Won"
	StatusLost         = "Lost"
)

// Stages lists the known pipeline stages in funnel order.
var Stages = []string{StatusNew, StatusContacted, StatusProposalSent, StatusWon, StatusLost}

// Budget bands the intake form offers. Values outside this set are kept
// verbatim on the record but contribute nothing to revenue or scoring.
const (
	Budget1kTo5k   = "$1,000-5,000"
	Budget5kTo10k  = "$5,000-10,000"
	Budget10kTo25k = "$10,000-25,000"
	Budget25kPlus  = "$25,000+"
)

// Lead is one client intake record. Analytics treats it as a read-only
// snapshot row; mutation happens in the intake/admin layer.
type Lead struct {
	ID           string     `json:"id"`
	BusinessName string     `json:"business_name"`
	Website      string     `json:"website,omitempty"`
	BrandStory   string     `json:"brand_story,omitempty"`
	USP          string     `json:"usp,omitempty"`
	Demographics string     `json:"demographics,omitempty"`
	BrandVoice   string     `json:"brand_voice,omitempty"`
	Competitors  string     `json:"competitors,omitempty"`
	Budget       string     `json:"budget,omitempty"`
	Platforms    []string   `json:"platforms"`
	Timeline     string     `json:"timeline,omitempty"`
	Status       string     `json:"status"`
	Priority     string     `json:"priority,omitempty"`
	Notes        string     `json:"notes,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    *time.Time `json:"updated_at,omitempty"`
}

// KnownStatus reports whether status is one of the five pipeline stages.
func KnownStatus(status string) bool {
	for _, s := range Stages {
		if s == status {
			return true
		}
	}
	return false
}

// IsTerminal reports whether status ends the pipeline.
func IsTerminal(status string) bool {
	return status == StatusWon || status == StatusLost
}

// IsActive reports whether status keeps the lead in the open pipeline.
func IsActive(status string) bool {
	return status == StatusNew || status == StatusContacted || status == StatusProposalSent
}
