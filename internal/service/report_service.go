package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Prajeshh-06/Smart-Civic-Reporter/internal/domain"
	"github.com/Prajeshh-06/Smart-Civic-Reporter/internal/events"
	"github.com/Prajeshh-06/Smart-Civic-Reporter/internal/geo"
	"github.com/Prajeshh-06/Smart-Civic-Reporter/internal/repository"
	apperrors "github.com/Prajeshh-06/Smart-Civic-Reporter/pkg/util"
)

// maxTextLength bounds title and description fields.
const maxTextLength = 500

// systemActor authors synthetic update-log entries.
const systemActor = "system"

// anonymousReporter is recorded when no reporter identity is supplied.
const anonymousReporter = "anonymous"

// WardResolver maps a coordinate to the responsible department.
type WardResolver interface {
	Resolve(lat, lng float64) string
}

// ReportService coordinates the report lifecycle: creation with ward
// assignment, status transitions with their append-only log, boosts and
// administrative deletion.
type ReportService struct {
	reports    repository.ReportRepository
	resolver   WardResolver
	bounds     geo.Bounds
	dispatcher events.Dispatcher
}

// ReportDependencies bundles collaborators for the report service.
type ReportDependencies struct {
	ReportRepo repository.ReportRepository
	Resolver   WardResolver
	Bounds     geo.Bounds
	Dispatcher events.Dispatcher
}

// ReportCreateInput describes a citizen submission. Latitude and longitude
// are pointers so an absent coordinate is distinguishable from zero.
type ReportCreateInput struct {
	Title       string
	IssueType   string
	Description string
	Latitude    *float64
	Longitude   *float64
	ImageURL    string
	ReportedBy  string
}

// StatusUpdateInput describes a requested status transition.
type StatusUpdateInput struct {
	Status        string
	OfficerName   string
	ETA           string
	UpdateMessage string
	UpdatedBy     string
}

// NewReportService constructs the service.
func NewReportService(deps ReportDependencies) *ReportService {
	return &ReportService{
		reports:    deps.ReportRepo,
		resolver:   deps.Resolver,
		bounds:     deps.Bounds,
		dispatcher: deps.Dispatcher,
	}
}

// CreateReport validates a submission, assigns the responsible ward and
// persists the report with its initial "reported" log entry. Ward
// assignment and the bounds check happen exactly once, here; updates never
// re-validate the location.
func (s *ReportService) CreateReport(ctx context.Context, input ReportCreateInput) (*domain.Report, error) {
	if input.IssueType == "" || input.Title == "" || input.Latitude == nil || input.Longitude == nil {
		return nil, apperrors.NewValidationError(
			"Missing required fields: issue_type, title, latitude, longitude", nil)
	}

	issueType := domain.IssueType(input.IssueType)
	if !issueType.Valid() {
		return nil, apperrors.NewValidationError("Invalid issue type", nil)
	}

	lat, lng := *input.Latitude, *input.Longitude
	if !s.bounds.Contains(lat, lng) {
		return nil, apperrors.NewValidationError("Coordinates must be within the service area", nil)
	}

	reportedBy := input.ReportedBy
	if reportedBy == "" {
		reportedBy = anonymousReporter
	}

	report := &domain.Report{
		Title:       sanitizeText(input.Title),
		Description: sanitizeText(input.Description),
		IssueType:   issueType,
		Status:      domain.StatusOpen,
		Latitude:    lat,
		Longitude:   lng,
		ImageURL:    input.ImageURL,
		AssignedTo:  s.resolver.Resolve(lat, lng),
		ReportedBy:  reportedBy,
		Updates: []domain.ReportUpdate{{
			Timestamp: time.Now(),
			Message:   "Issue reported by citizen",
			Type:      "reported",
			UpdatedBy: systemActor,
		}},
	}

	if err := s.reports.Create(ctx, report); err != nil {
		return nil, apperrors.MapError(err)
	}

	s.publishEvent(ctx, events.Event{
		Type:     events.EventReportCreated,
		ReportID: report.ID,
		Actor:    reportedBy,
		Payload: events.ReportCreatedPayload{
			Title:      report.Title,
			IssueType:  report.IssueType,
			AssignedTo: report.AssignedTo,
		},
	})
	return report, nil
}

// GetReport fetches a single report including its full update log.
func (s *ReportService) GetReport(ctx context.Context, id string) (*domain.Report, error) {
	report, err := s.reports.GetByID(ctx, id)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return report, nil
}

// ListReports returns reports under the single-predicate listing plan.
func (s *ReportService) ListReports(ctx context.Context, query repository.ListQuery) ([]domain.Report, error) {
	reports, err := s.reports.List(ctx, query)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return reports, nil
}

// ListWardReports returns a ward's reports ordered by boosts then recency.
func (s *ReportService) ListWardReports(ctx context.Context, ward, status string, limit int) ([]domain.Report, error) {
	var statusFilter *domain.ReportStatus
	if status != "" {
		st := domain.ReportStatus(status)
		statusFilter = &st
	}
	reports, err := s.reports.ListByWard(ctx, ward, statusFilter, limit)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return reports, nil
}

// UpdateStatus transitions a report to the requested status. The status set
// is flat: any allowed status may follow any other. Exactly one update-log
// entry is appended per transition, atomically with the status write.
func (s *ReportService) UpdateStatus(ctx context.Context, id string, input StatusUpdateInput) (domain.ReportStatus, error) {
	status := domain.ReportStatus(input.Status)
	if input.Status == "" || !status.Valid() {
		return "", apperrors.NewValidationError("Invalid or missing status", nil)
	}

	message := input.UpdateMessage
	if message == "" {
		message = "Status changed to " + string(status)
	}
	updatedBy := input.UpdatedBy
	if updatedBy == "" {
		updatedBy = systemActor
	}

	change := repository.StatusChange{
		Status: status,
		Entry: domain.ReportUpdate{
			Timestamp: time.Now(),
			Message:   message,
			Type:      status.UpdateType(),
			UpdatedBy: updatedBy,
		},
	}
	if input.OfficerName != "" {
		officer := input.OfficerName
		change.Officer = &officer
	}
	if input.ETA != "" {
		eta := input.ETA
		change.ETA = &eta
	}

	if err := s.reports.UpdateStatus(ctx, id, change); err != nil {
		return "", apperrors.MapError(err)
	}

	s.publishEvent(ctx, events.Event{
		Type:     events.EventReportStatusChanged,
		ReportID: id,
		Actor:    updatedBy,
		Payload: events.ReportStatusChangedPayload{
			NewStatus: status,
			Message:   message,
		},
	})
	return status, nil
}

// BoostReport increments the report's boost counter by one and returns the
// new count. The increment is a single server-side operation; repeat boosts
// from the same actor are not deduplicated.
func (s *ReportService) BoostReport(ctx context.Context, id, actor string) (int64, error) {
	boosts, err := s.reports.Boost(ctx, id)
	if err != nil {
		return 0, apperrors.MapError(err)
	}
	if actor == "" {
		actor = anonymousReporter
	}
	s.publishEvent(ctx, events.Event{
		Type:     events.EventReportBoosted,
		ReportID: id,
		Actor:    actor,
		Payload:  events.ReportBoostedPayload{Boosts: boosts},
	})
	return boosts, nil
}

// DeleteReport permanently removes a report. The operation is terminal and
// irreversible.
func (s *ReportService) DeleteReport(ctx context.Context, id string) error {
	if err := s.reports.Delete(ctx, id); err != nil {
		return apperrors.MapError(err)
	}
	s.publishEvent(ctx, events.Event{
		Type:     events.EventReportDeleted,
		ReportID: id,
		Actor:    systemActor,
	})
	return nil
}

func (s *ReportService) publishEvent(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	_ = s.dispatcher.Publish(ctx, event)
}

// sanitizeText trims whitespace and truncates to the bounded field length.
// The bound counts characters, not bytes, so multibyte text is never split
// mid-rune.
func sanitizeText(input string) string {
	input = strings.TrimSpace(input)
	runes := []rune(input)
	if len(runes) > maxTextLength {
		return string(runes[:maxTextLength])
	}
	return input
}
