package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	nethttp "net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/Prajeshh-06/Smart-Civic-Reporter/internal/api/http/handlers"
	"github.com/Prajeshh-06/Smart-Civic-Reporter/internal/auth"
	"github.com/Prajeshh-06/Smart-Civic-Reporter/internal/domain"
	"github.com/Prajeshh-06/Smart-Civic-Reporter/internal/geo"
	"github.com/Prajeshh-06/Smart-Civic-Reporter/internal/observability"
	"github.com/Prajeshh-06/Smart-Civic-Reporter/internal/repository"
	"github.com/Prajeshh-06/Smart-Civic-Reporter/internal/service"
)

// memoryRepo backs the handlers with an in-memory report store.
type memoryRepo struct {
	mu      sync.Mutex
	reports map[string]*domain.Report
	seq     int
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{reports: make(map[string]*domain.Report)}
}

func (m *memoryRepo) Create(ctx context.Context, report *domain.Report) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seq++
	report.ID = fmt.Sprintf("report-%d", m.seq)
	report.CreatedAt = time.Now()
	stored := *report
	m.reports[report.ID] = &stored
	return nil
}

func (m *memoryRepo) GetByID(ctx context.Context, id string) (*domain.Report, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	report, ok := m.reports[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *report
	return &copied, nil
}

func (m *memoryRepo) List(ctx context.Context, query repository.ListQuery) ([]domain.Report, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var result []domain.Report
	for _, report := range m.reports {
		result = append(result, *report)
	}
	return result, nil
}

func (m *memoryRepo) ListByWard(ctx context.Context, ward string, status *domain.ReportStatus, limit int) ([]domain.Report, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var result []domain.Report
	for _, report := range m.reports {
		if report.AssignedTo != ward {
			continue
		}
		if status != nil && report.Status != *status {
			continue
		}
		result = append(result, *report)
	}
	return result, nil
}

func (m *memoryRepo) UpdateStatus(ctx context.Context, id string, change repository.StatusChange) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	report, ok := m.reports[id]
	if !ok {
		return pgx.ErrNoRows
	}
	report.Status = change.Status
	if change.Officer != nil {
		report.AssignedOfficer = change.Officer
	}
	if change.ETA != nil {
		report.ETA = change.ETA
	}
	report.Updates = append(report.Updates, change.Entry)
	return nil
}

func (m *memoryRepo) Boost(ctx context.Context, id string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	report, ok := m.reports[id]
	if !ok {
		return 0, pgx.ErrNoRows
	}
	report.Boosts++
	return report.Boosts, nil
}

func (m *memoryRepo) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.reports[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(m.reports, id)
	return nil
}

func (m *memoryRepo) Stream(ctx context.Context, ward string, fn func(*domain.Report) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, report := range m.reports {
		if ward != "" && report.AssignedTo != ward {
			continue
		}
		if err := fn(report); err != nil {
			return err
		}
	}
	return nil
}

type fixedResolver struct {
	ward string
}

func (r fixedResolver) Resolve(lat, lng float64) string { return r.ward }

const testWard = "Zone 4 - Anna Nagar"

func newTestApp(t *testing.T) (*fiber.App, *memoryRepo) {
	t.Helper()

	repo := newMemoryRepo()
	logger := zap.NewNop()
	metrics := observability.NewMetrics()

	reportSvc := service.NewReportService(service.ReportDependencies{
		ReportRepo: repo,
		Resolver:   fixedResolver{ward: testWard},
		Bounds:     geo.Bounds{North: 13.2544, South: 12.8345, East: 80.3474, West: 80.0955},
	})
	analyticsSvc := service.NewAnalyticsService(repo, nil, 0, logger)

	wardTable := domain.NewWardTable(nil, map[string]string{"12": testWard})
	tokens := auth.NewTokenManager("test-secret", 30)
	identity := auth.NewMiddleware(tokens)

	officerHash, err := auth.HashPassword("ward-office-pass", 4)
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	authSvc := service.NewAuthService(tokens, officerHash)

	app := fiber.New(fiber.Config{UnescapePath: true})
	RegisterMiddlewares(app, logger, metrics, 0)
	RegisterRoutes(app, RouteConfig{
		Health:    handlers.NewHealthHandler("civic-reporter", "test", nil, nil),
		Auth:      handlers.NewAuthHandler(authSvc),
		Reports:   handlers.NewReportsHandler(reportSvc),
		Analytics: handlers.NewAnalyticsHandler(analyticsSvc),
		Wards:     handlers.NewWardsHandler(wardTable),
		Identity:  identity,
	})
	return app, repo
}

func doJSON(t *testing.T, app *fiber.App, method, target string, payload any, headers map[string]string) (int, map[string]any) {
	t.Helper()

	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("marshal payload: %v", err)
		}
		body = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, target, body)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("%s %s: %v", method, target, err)
	}
	defer resp.Body.Close()

	decoded := map[string]any{}
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		t.Fatalf("decode %s %s response: %v", method, target, err)
	}
	return resp.StatusCode, decoded
}

func createReport(t *testing.T, app *fiber.App) string {
	t.Helper()
	status, body := doJSON(t, app, nethttp.MethodPost, "/api/reports", map[string]any{
		"title":      "Streetlight out on 2nd Main Road",
		"issue_type": "utilities",
		"latitude":   13.0827,
		"longitude":  80.2707,
	}, nil)
	if status != nethttp.StatusCreated {
		t.Fatalf("create status = %d, body = %v", status, body)
	}
	id, _ := body["report_id"].(string)
	if id == "" {
		t.Fatalf("create response has no report_id: %v", body)
	}
	return id
}

func TestCreateReportEndpoint(t *testing.T) {
	app, _ := newTestApp(t)

	status, body := doJSON(t, app, nethttp.MethodPost, "/api/reports", map[string]any{
		"title":      "Pothole near bus depot",
		"issue_type": "roads",
		"latitude":   13.0827,
		"longitude":  80.2707,
	}, nil)

	if status != nethttp.StatusCreated {
		t.Fatalf("status = %d, want 201; body %v", status, body)
	}
	if body["success"] != true {
		t.Errorf("success = %v, want true", body["success"])
	}
	if body["message"] != "Report submitted successfully!" {
		t.Errorf("message = %v", body["message"])
	}
	if body["assigned_ward"] != testWard {
		t.Errorf("assigned_ward = %v, want %q", body["assigned_ward"], testWard)
	}
}

func TestCreateReportMissingFields(t *testing.T) {
	app, repo := newTestApp(t)

	status, body := doJSON(t, app, nethttp.MethodPost, "/api/reports", map[string]any{
		"issue_type": "roads",
		"latitude":   13.0827,
		"longitude":  80.2707,
	}, nil)

	if status != nethttp.StatusBadRequest {
		t.Fatalf("status = %d, want 400; body %v", status, body)
	}
	if body["success"] != false {
		t.Errorf("success = %v, want false", body["success"])
	}
	message, _ := body["message"].(string)
	if !strings.Contains(message, "issue_type, title, latitude, longitude") {
		t.Errorf("message %q does not name the required fields", message)
	}
	if len(repo.reports) != 0 {
		t.Errorf("repository has %d reports after rejected create", len(repo.reports))
	}
}

func TestCreateReportIdentityOverridesBodyUser(t *testing.T) {
	app, repo := newTestApp(t)

	tokens := auth.NewTokenManager("test-secret", 30)
	token, _, err := tokens.GenerateToken("citizen-42")
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	status, body := doJSON(t, app, nethttp.MethodPost, "/api/reports", map[string]any{
		"title":      "Overflowing bin",
		"issue_type": "waste",
		"latitude":   13.0,
		"longitude":  80.2,
		"user_id":    "spoofed-user",
	}, map[string]string{"Authorization": "Bearer " + token})
	if status != nethttp.StatusCreated {
		t.Fatalf("status = %d, body %v", status, body)
	}

	id := body["report_id"].(string)
	if repo.reports[id].ReportedBy != "citizen-42" {
		t.Errorf("reported_by = %q, want token subject", repo.reports[id].ReportedBy)
	}
}

func TestUpdateStatusEndpoint(t *testing.T) {
	app, repo := newTestApp(t)
	id := createReport(t, app)

	status, body := doJSON(t, app, nethttp.MethodPut, "/api/reports/"+id+"/status", map[string]any{
		"status": "Resolved",
	}, nil)

	if status != nethttp.StatusOK {
		t.Fatalf("status = %d, body %v", status, body)
	}
	if body["message"] != "Report status updated to: Resolved" {
		t.Errorf("message = %v", body["message"])
	}

	stored := repo.reports[id]
	if stored.Status != domain.StatusResolved {
		t.Errorf("stored status = %q, want Resolved", stored.Status)
	}
	last := stored.Updates[len(stored.Updates)-1]
	if last.Type != "resolved" {
		t.Errorf("trailing entry type = %q, want resolved", last.Type)
	}
}

func TestUpdateStatusInvalid(t *testing.T) {
	app, _ := newTestApp(t)
	id := createReport(t, app)

	status, body := doJSON(t, app, nethttp.MethodPut, "/api/reports/"+id+"/status", map[string]any{
		"status": "Escalated",
	}, nil)

	if status != nethttp.StatusBadRequest {
		t.Fatalf("status = %d, body %v", status, body)
	}
	if body["message"] != "Invalid or missing status" {
		t.Errorf("message = %v", body["message"])
	}
}

func TestBoostEndpoint(t *testing.T) {
	app, _ := newTestApp(t)
	id := createReport(t, app)

	status, body := doJSON(t, app, nethttp.MethodPost, "/api/reports/"+id+"/boost", nil, nil)

	if status != nethttp.StatusOK {
		t.Fatalf("status = %d, body %v", status, body)
	}
	if body["message"] != "Issue boosted successfully" {
		t.Errorf("message = %v", body["message"])
	}
	if boosts, ok := body["boosts"].(float64); !ok || boosts != 1 {
		t.Errorf("boosts = %v, want 1", body["boosts"])
	}
}

func TestGetReportIncludesUpdateLog(t *testing.T) {
	app, _ := newTestApp(t)
	id := createReport(t, app)

	status, body := doJSON(t, app, nethttp.MethodGet, "/api/reports/"+id, nil, nil)
	if status != nethttp.StatusOK {
		t.Fatalf("status = %d, body %v", status, body)
	}

	report, _ := body["report"].(map[string]any)
	if report == nil {
		t.Fatalf("response has no report object: %v", body)
	}
	updates, _ := report["updates"].([]any)
	if len(updates) != 1 {
		t.Fatalf("updates = %v, want the single seeded entry", report["updates"])
	}
	first, _ := updates[0].(map[string]any)
	if first["type"] != "reported" {
		t.Errorf("seeded entry type = %v, want reported", first["type"])
	}
}

func TestGetReportNotFound(t *testing.T) {
	app, _ := newTestApp(t)

	status, body := doJSON(t, app, nethttp.MethodGet, "/api/reports/missing", nil, nil)
	if status != nethttp.StatusNotFound {
		t.Fatalf("status = %d, body %v", status, body)
	}
	if body["message"] != "Report not found" {
		t.Errorf("message = %v", body["message"])
	}
}

func TestWardListingRouteNotShadowed(t *testing.T) {
	app, _ := newTestApp(t)
	createReport(t, app)

	status, body := doJSON(t, app, nethttp.MethodGet, "/api/reports/ward/"+strings.ReplaceAll(testWard, " ", "%20"), nil, nil)
	if status != nethttp.StatusOK {
		t.Fatalf("status = %d, body %v", status, body)
	}
	if body["ward"] != testWard {
		t.Errorf("ward = %v, want %q", body["ward"], testWard)
	}
	if count, _ := body["count"].(float64); count != 1 {
		t.Errorf("count = %v, want 1", body["count"])
	}
}

func TestAnalyticsEndpoint(t *testing.T) {
	app, _ := newTestApp(t)
	createReport(t, app)
	createReport(t, app)

	status, body := doJSON(t, app, nethttp.MethodGet, "/api/analytics", nil, nil)
	if status != nethttp.StatusOK {
		t.Fatalf("status = %d, body %v", status, body)
	}
	analytics, _ := body["analytics"].(map[string]any)
	if analytics == nil {
		t.Fatalf("response has no analytics object: %v", body)
	}
	if total, _ := analytics["total_reports"].(float64); total != 2 {
		t.Errorf("total_reports = %v, want 2", analytics["total_reports"])
	}
	byStatus, _ := analytics["by_status"].(map[string]any)
	if open, _ := byStatus["Open"].(float64); open != 2 {
		t.Errorf("by_status = %v, want 2 Open", byStatus)
	}
}

func TestWardsEndpoint(t *testing.T) {
	app, _ := newTestApp(t)

	status, body := doJSON(t, app, nethttp.MethodGet, "/api/wards", nil, nil)
	if status != nethttp.StatusOK {
		t.Fatalf("status = %d, body %v", status, body)
	}
	wards, _ := body["wards"].([]any)
	if len(wards) != 1 || wards[0] != testWard {
		t.Errorf("wards = %v, want [%q]", body["wards"], testWard)
	}
}

func TestHealthEndpoint(t *testing.T) {
	app, _ := newTestApp(t)

	status, body := doJSON(t, app, nethttp.MethodGet, "/api/health", nil, nil)
	if status != nethttp.StatusOK {
		t.Fatalf("status = %d, body %v", status, body)
	}
	message, _ := body["message"].(string)
	if !strings.HasSuffix(message, "is running") {
		t.Errorf("message = %q", message)
	}
}

func TestUnknownRoute(t *testing.T) {
	app, _ := newTestApp(t)

	status, body := doJSON(t, app, nethttp.MethodGet, "/api/nope", nil, nil)
	if status != nethttp.StatusNotFound {
		t.Fatalf("status = %d, body %v", status, body)
	}
	if body["message"] != "Route not found" {
		t.Errorf("message = %v", body["message"])
	}
}

func TestTokenExchange(t *testing.T) {
	app, repo := newTestApp(t)

	status, body := doJSON(t, app, nethttp.MethodPost, "/api/auth/token", map[string]any{
		"officer_id": "officer-7",
		"password":   "ward-office-pass",
	}, nil)
	if status != nethttp.StatusOK {
		t.Fatalf("status = %d, body %v", status, body)
	}
	token, _ := body["token"].(string)
	if token == "" {
		t.Fatalf("no token in response: %v", body)
	}

	// The issued token is a usable identity for submissions.
	status, created := doJSON(t, app, nethttp.MethodPost, "/api/reports", map[string]any{
		"title":      "Water main leak",
		"issue_type": "water",
		"latitude":   13.0,
		"longitude":  80.2,
	}, map[string]string{"Authorization": "Bearer " + token})
	if status != nethttp.StatusCreated {
		t.Fatalf("create status = %d, body %v", status, created)
	}
	id := created["report_id"].(string)
	if repo.reports[id].ReportedBy != "officer-7" {
		t.Errorf("reported_by = %q, want officer-7", repo.reports[id].ReportedBy)
	}
}

func TestTokenExchangeBadCredentials(t *testing.T) {
	app, _ := newTestApp(t)

	status, body := doJSON(t, app, nethttp.MethodPost, "/api/auth/token", map[string]any{
		"officer_id": "officer-7",
		"password":   "wrong",
	}, nil)
	if status != nethttp.StatusUnauthorized {
		t.Fatalf("status = %d, body %v", status, body)
	}
	if body["message"] != "Invalid credentials" {
		t.Errorf("message = %v", body["message"])
	}
}

func TestDeleteEndpoint(t *testing.T) {
	app, repo := newTestApp(t)
	id := createReport(t, app)

	status, body := doJSON(t, app, nethttp.MethodDelete, "/api/reports/"+id, nil, nil)
	if status != nethttp.StatusOK {
		t.Fatalf("status = %d, body %v", status, body)
	}
	if body["message"] != "Report deleted successfully" {
		t.Errorf("message = %v", body["message"])
	}
	if len(repo.reports) != 0 {
		t.Errorf("repository still holds %d reports after delete", len(repo.reports))
	}
}
