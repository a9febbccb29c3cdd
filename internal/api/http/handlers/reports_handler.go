package handlers

import (
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/Prajeshh-06/Smart-Civic-Reporter/internal/api/dto"
	"github.com/Prajeshh-06/Smart-Civic-Reporter/internal/auth"
	"github.com/Prajeshh-06/Smart-Civic-Reporter/internal/domain"
	"github.com/Prajeshh-06/Smart-Civic-Reporter/internal/repository"
	"github.com/Prajeshh-06/Smart-Civic-Reporter/internal/service"
	apperrors "github.com/Prajeshh-06/Smart-Civic-Reporter/pkg/util"
)

// ReportsHandler manages the report endpoints.
type ReportsHandler struct {
	service *service.ReportService
}

// NewReportsHandler constructs handler.
func NewReportsHandler(reportService *service.ReportService) *ReportsHandler {
	return &ReportsHandler{service: reportService}
}

// Create POST /api/reports.
func (h *ReportsHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateReportRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("Invalid payload", nil)
	}

	// A verified identity takes precedence over the body-supplied user id;
	// neither is required.
	reportedBy := req.UserID
	if identity, ok := auth.IdentityFromContext(c); ok {
		reportedBy = identity.SubjectID
	}

	report, err := h.service.CreateReport(c.Context(), service.ReportCreateInput{
		Title:       req.Title,
		IssueType:   req.IssueType,
		Description: req.Description,
		Latitude:    req.Latitude,
		Longitude:   req.Longitude,
		ImageURL:    req.ImageURL,
		ReportedBy:  reportedBy,
	})
	if err != nil {
		return err
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"success":       true,
		"message":       "Report submitted successfully!",
		"report_id":     report.ID,
		"assigned_ward": report.AssignedTo,
	})
}

// List GET /api/reports.
func (h *ReportsHandler) List(c *fiber.Ctx) error {
	query := repository.ListQuery{
		Status:    c.Query("status"),
		Ward:      c.Query("ward"),
		IssueType: c.Query("issue_type"),
		Limit:     parseInt(c.Query("limit"), repository.DefaultListLimit),
	}

	reports, err := h.service.ListReports(c.Context(), query)
	if err != nil {
		return err
	}

	items := make([]dto.ReportSummary, 0, len(reports))
	for i := range reports {
		items = append(items, reportSummary(&reports[i]))
	}
	return c.JSON(fiber.Map{
		"success": true,
		"reports": items,
		"count":   len(items),
	})
}

// Get GET /api/reports/:id.
func (h *ReportsHandler) Get(c *fiber.Ctx) error {
	report, err := h.service.GetReport(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"success": true,
		"report":  reportDetail(report),
	})
}

// Boost POST /api/reports/:id/boost.
func (h *ReportsHandler) Boost(c *fiber.Ctx) error {
	var req dto.BoostRequest
	_ = c.BodyParser(&req)

	actor := req.UserID
	if identity, ok := auth.IdentityFromContext(c); ok {
		actor = identity.SubjectID
	}

	boosts, err := h.service.BoostReport(c.Context(), c.Params("id"), actor)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"success": true,
		"message": "Issue boosted successfully",
		"boosts":  boosts,
	})
}

// UpdateStatus PUT /api/reports/:id/status.
func (h *ReportsHandler) UpdateStatus(c *fiber.Ctx) error {
	var req dto.StatusUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("Invalid payload", nil)
	}

	status, err := h.service.UpdateStatus(c.Context(), c.Params("id"), service.StatusUpdateInput{
		Status:        req.Status,
		OfficerName:   req.OfficerName,
		ETA:           req.ETA,
		UpdateMessage: req.UpdateMessage,
		UpdatedBy:     req.UpdatedBy,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"success": true,
		"message": "Report status updated to: " + string(status),
	})
}

// ListByWard GET /api/reports/ward/:wardName. Ward names carry spaces; the
// app runs with UnescapePath so the param arrives decoded.
func (h *ReportsHandler) ListByWard(c *fiber.Ctx) error {
	ward := c.Params("wardName")
	limit := parseInt(c.Query("limit"), repository.DefaultWardListLimit)

	reports, err := h.service.ListWardReports(c.Context(), ward, c.Query("status"), limit)
	if err != nil {
		return err
	}

	items := make([]dto.ReportSummary, 0, len(reports))
	for i := range reports {
		items = append(items, reportSummary(&reports[i]))
	}
	return c.JSON(fiber.Map{
		"success": true,
		"ward":    ward,
		"reports": items,
		"count":   len(items),
	})
}

// Delete DELETE /api/reports/:id.
func (h *ReportsHandler) Delete(c *fiber.Ctx) error {
	if err := h.service.DeleteReport(c.Context(), c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"success": true,
		"message": "Report deleted successfully",
	})
}

func parseInt(val string, def int) int {
	if val == "" {
		return def
	}
	parsed, err := strconv.Atoi(val)
	if err != nil || parsed <= 0 {
		return def
	}
	return parsed
}

func reportSummary(report *domain.Report) dto.ReportSummary {
	return dto.ReportSummary{
		ID:              report.ID,
		Title:           report.Title,
		IssueType:       string(report.IssueType),
		Status:          string(report.Status),
		Description:     report.Description,
		Latitude:        report.Latitude,
		Longitude:       report.Longitude,
		Timestamp:       report.CreatedAt,
		ImageURL:        report.ImageURL,
		Boosts:          report.Boosts,
		AssignedTo:      report.AssignedTo,
		AssignedOfficer: report.AssignedOfficer,
		ETA:             report.ETA,
	}
}

func reportDetail(report *domain.Report) dto.ReportDetail {
	updates := make([]dto.UpdateEntry, 0, len(report.Updates))
	for _, entry := range report.Updates {
		updates = append(updates, dto.UpdateEntry{
			Timestamp: entry.Timestamp,
			Message:   entry.Message,
			Type:      entry.Type,
			UpdatedBy: entry.UpdatedBy,
		})
	}
	return dto.ReportDetail{
		ReportSummary: reportSummary(report),
		Updates:       updates,
	}
}
