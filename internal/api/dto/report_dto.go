package dto

import "time"

// CreateReportRequest is the citizen submission payload. Coordinates are
// pointers so missing values are distinguishable from zero.
type CreateReportRequest struct {
	Title       string   `json:"title"`
	IssueType   string   `json:"issue_type"`
	Description string   `json:"description"`
	Latitude    *float64 `json:"latitude"`
	Longitude   *float64 `json:"longitude"`
	ImageURL    string   `json:"image_url"`
	UserID      string   `json:"user_id"`
}

// StatusUpdateRequest is the official-side transition payload.
type StatusUpdateRequest struct {
	Status        string `json:"status"`
	OfficerName   string `json:"officer_name"`
	ETA           string `json:"eta"`
	UpdateMessage string `json:"update_message"`
	UpdatedBy     string `json:"updated_by"`
}

// BoostRequest carries the optional voter identity. It is recorded for the
// event trail only; repeat boosts are not deduplicated.
type BoostRequest struct {
	UserID string `json:"user_id"`
}

// ReportSummary is the listing projection of a report.
type ReportSummary struct {
	ID              string    `json:"id"`
	Title           string    `json:"title"`
	IssueType       string    `json:"issue_type"`
	Status          string    `json:"status"`
	Description     string    `json:"description"`
	Latitude        float64   `json:"latitude"`
	Longitude       float64   `json:"longitude"`
	Timestamp       time.Time `json:"timestamp"`
	ImageURL        string    `json:"image_url"`
	Boosts          int64     `json:"boosts"`
	AssignedTo      string    `json:"assigned_to"`
	AssignedOfficer *string   `json:"assigned_officer"`
	ETA             *string   `json:"eta"`
}

// UpdateEntry is one update-log entry as returned to clients.
type UpdateEntry struct {
	Timestamp time.Time `json:"timestamp"`
	Message   string    `json:"message"`
	Type      string    `json:"type"`
	UpdatedBy string    `json:"updated_by"`
}

// ReportDetail is the full projection including the update log.
type ReportDetail struct {
	ReportSummary
	Updates []UpdateEntry `json:"updates"`
}
