package domain

import (
	"strings"
	"time"
)

// ReportStatus enumerates lifecycle states for civic issue reports.
// The set is flat: any status may follow any other, only membership
// in the set is enforced.
type ReportStatus string

const (
	StatusOpen         ReportStatus = "Open"
	StatusAcknowledged ReportStatus = "Acknowledged"
	StatusInProgress   ReportStatus = "In Progress"
	StatusResolved     ReportStatus = "Resolved"
	StatusClosed       ReportStatus = "Closed"
)

// AllowedStatuses lists every valid report status in display order.
var AllowedStatuses = []ReportStatus{
	StatusOpen,
	StatusAcknowledged,
	StatusInProgress,
	StatusResolved,
	StatusClosed,
}

// Valid reports whether s is a member of the allowed status set.
func (s ReportStatus) Valid() bool {
	for _, candidate := range AllowedStatuses {
		if s == candidate {
			return true
		}
	}
	return false
}

// UpdateType derives the update-log entry type for a transition into s:
// lowercased, spaces replaced with underscores ("In Progress" -> "in_progress").
func (s ReportStatus) UpdateType() string {
	return strings.ReplaceAll(strings.ToLower(string(s)), " ", "_")
}

// IssueType categorizes what kind of civic problem is being reported.
type IssueType string

const (
	IssueRoads          IssueType = "roads"
	IssueInfrastructure IssueType = "infrastructure"
	IssueUtilities      IssueType = "utilities"
	IssueWaste          IssueType = "waste"
	IssueWater          IssueType = "water"
	IssueOther          IssueType = "other"
)

// AllowedIssueTypes lists every valid issue type.
var AllowedIssueTypes = []IssueType{
	IssueRoads,
	IssueInfrastructure,
	IssueUtilities,
	IssueWaste,
	IssueWater,
	IssueOther,
}

// Valid reports whether t is a member of the allowed issue-type set.
func (t IssueType) Valid() bool {
	for _, candidate := range AllowedIssueTypes {
		if t == candidate {
			return true
		}
	}
	return false
}

// ReportUpdate is one entry in a report's append-only update log.
// Entries are never reordered or pruned; the first entry always records
// the creation event.
type ReportUpdate struct {
	Timestamp time.Time `json:"timestamp"`
	Message   string    `json:"message"`
	Type      string    `json:"type"`
	UpdatedBy string    `json:"updated_by"`
}

// Report is the aggregate for citizen-submitted civic issues.
type Report struct {
	ID              string
	Title           string
	Description     string
	IssueType       IssueType
	Status          ReportStatus
	Latitude        float64
	Longitude       float64
	ImageURL        string
	AssignedTo      string
	AssignedOfficer *string
	ETA             *string
	Boosts          int64
	ReportedBy      string
	Updates         []ReportUpdate
	CreatedAt       time.Time
	LastUpdated     *time.Time
}
