package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/mauromattos-lab/NexusLab/internal/diagnosis"
	"github.com/mauromattos-lab/NexusLab/internal/leadstore"
)

type fakeCaller struct {
	response string
	err      error
}

func (f *fakeCaller) GenerateJSON(context.Context, string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return f.response, nil
}

type fakeLeads struct {
	saved   int
	saveErr error
	rows    []leadstore.Lead
	listErr error
	limit   int
}

func (f *fakeLeads) Save(context.Context, diagnosis.BusinessProfile, diagnosis.DiagnosisResult) error {
	f.saved++
	return f.saveErr
}

func (f *fakeLeads) List(_ context.Context, limit int) ([]leadstore.Lead, error) {
	f.limit = limit
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.rows, nil
}

func (f *fakeLeads) Count(context.Context) (int, error) { return f.saved, nil }

type fakePDF struct {
	markdown string
	err      error
}

func (f *fakePDF) Render(_ context.Context, markdown string) ([]byte, error) {
	f.markdown = markdown
	if f.err != nil {
		return nil, f.err
	}
	return []byte("%PDF-1.4 fake"), nil
}

func newTestServer(caller diagnosis.LLMCaller, leads LeadStore, pdf PDFRenderer) http.Handler {
	engine := diagnosis.NewEngine(caller, diagnosis.DefaultScoringConfig())
	return NewServer(engine, "", leads, pdf, nil)
}

func diagnosisBody() string {
	return `{"data":{"businessType":"appointment_services","companyName":"Clínica Vida","email":"x@y.com","monthlyAppointments":100,"noShowRate":0.2,"ticketPrice":150,"manualCommHours":">3","offHoursResponse":"undefined"}}`
}

func TestDiagnosisMethodNotAllowed(t *testing.T) {
	srv := newTestServer(&fakeCaller{response: "{}"}, nil, nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/diagnosis", nil))
	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("status = %d, want 405", rec.Code)
	}
	if got := rec.Body.String(); got != "Method Not Allowed" {
		t.Fatalf("body = %q, want the plain-text refusal", got)
	}
}

func TestDiagnosisMissingCredential(t *testing.T) {
	srv := NewServer(nil, "OPENAI_API_KEY não configurada", nil, nil, nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/diagnosis", strings.NewReader(diagnosisBody())))
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
	if got := rec.Body.String(); got != "OPENAI_API_KEY não configurada" {
		t.Fatalf("body = %q", got)
	}
}

func TestDiagnosisMissingData(t *testing.T) {
	srv := newTestServer(&fakeCaller{response: "{}"}, nil, nil)
	for _, body := range []string{`{}`, `not json`, `{"data":null}`} {
		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/diagnosis", strings.NewReader(body)))
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("body %q: status = %d, want 400", body, rec.Code)
		}
		if !strings.Contains(rec.Body.String(), "Corpo inválido") {
			t.Fatalf("body %q: error text = %q", body, rec.Body.String())
		}
	}
}

func TestDiagnosisSuccessContract(t *testing.T) {
	leads := &fakeLeads{}
	srv := newTestServer(&fakeCaller{response: `{"potentialTransformationScore": 95, "solutions": []}`}, leads, nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/diagnosis", strings.NewReader(diagnosisBody())))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var result diagnosis.DiagnosisResult
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("decode result: %v", err)
	}
	if result.PotentialTransformationScore < 50 || result.PotentialTransformationScore > 96 {
		t.Fatalf("score %d outside display range", result.PotentialTransformationScore)
	}
	if len(result.Solutions) < 3 || len(result.Solutions) > 4 {
		t.Fatalf("solutions = %d, want 3..4", len(result.Solutions))
	}
	for _, s := range result.Solutions {
		if len(s.Benefits) < 3 || !diagnosis.ValidImpact(s.Impact) {
			t.Fatalf("incomplete solution reached the wire: %+v", s)
		}
	}
	if leads.saved != 1 {
		t.Fatalf("lead saved %d times, want 1", leads.saved)
	}
}

func TestDiagnosisLeadFailureDoesNotFailRequest(t *testing.T) {
	leads := &fakeLeads{saveErr: errors.New("disk full")}
	srv := newTestServer(&fakeCaller{response: "{}"}, leads, nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/diagnosis", strings.NewReader(diagnosisBody())))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 despite lead failure", rec.Code)
	}
}

func TestDiagnosisProviderErrorSurfacesMessage(t *testing.T) {
	srv := newTestServer(&fakeCaller{err: errors.New("openai: status 429")}, nil, nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/diagnosis", strings.NewReader(diagnosisBody())))
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "429") {
		t.Fatalf("provider message lost: %q", rec.Body.String())
	}
}

func TestDiagnosisMalformedModelOutputIs500(t *testing.T) {
	srv := newTestServer(&fakeCaller{response: "sorry, I cannot do that"}, nil, nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/diagnosis", strings.NewReader(diagnosisBody())))
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
}

func TestReportPDF(t *testing.T) {
	pdf := &fakePDF{}
	srv := newTestServer(&fakeCaller{response: "{}"}, nil, pdf)

	body := `{"data":{"companyName":"Clínica Vida","mainBottleneck":"skip"},"result":{"potentialTransformationScore":80,"potentialEconomy":"R$ 10.000/mês","timeRecovered":"8 horas/semana","productivityGain":"25%","implementationTimeframe":"8 semanas","executiveSummary":"Resumo.","solutions":[]}}`
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/report.pdf", strings.NewReader(body)))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/pdf" {
		t.Fatalf("content type = %q", ct)
	}
	if strings.Contains(pdf.markdown, "Principal Gargalo") {
		t.Fatal("skipped bottleneck leaked into the report")
	}
}

func TestReportPDFUnavailable(t *testing.T) {
	srv := newTestServer(&fakeCaller{response: "{}"}, nil, nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/report.pdf", strings.NewReader(`{"data":{},"result":{}}`)))
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want 503", rec.Code)
	}
}

func TestLeadsListing(t *testing.T) {
	leads := &fakeLeads{rows: []leadstore.Lead{
		{ID: 2, Email: "b@y.com", DiagnosisData: "{}", CreatedAt: "2026-08-30T10:00:00Z"},
		{ID: 1, Email: "a@y.com", DiagnosisData: "{}", CreatedAt: "2026-08-29T10:00:00Z"},
	}}
	srv := newTestServer(&fakeCaller{response: "{}"}, leads, nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/leads?limit=2", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	if leads.limit != 2 {
		t.Fatalf("limit passed to store = %d, want 2", leads.limit)
	}
	var payload struct {
		Leads []leadstore.Lead `json:"leads"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode leads: %v", err)
	}
	if len(payload.Leads) != 2 || payload.Leads[0].Email != "b@y.com" {
		t.Fatalf("payload = %+v, want the stored rows newest first", payload.Leads)
	}
}

func TestLeadsListingEmptyIsArray(t *testing.T) {
	srv := newTestServer(&fakeCaller{response: "{}"}, &fakeLeads{}, nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/leads", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"leads":[]`) {
		t.Fatalf("body = %q, want an empty array not null", rec.Body.String())
	}
}

func TestLeadsListingBadLimit(t *testing.T) {
	srv := newTestServer(&fakeCaller{response: "{}"}, &fakeLeads{}, nil)
	for _, q := range []string{"limit=abc", "limit=0", "limit=-5"} {
		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/leads?"+q, nil))
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("query %q: status = %d, want 400", q, rec.Code)
		}
	}
}

func TestLeadsListingUnavailable(t *testing.T) {
	srv := newTestServer(&fakeCaller{response: "{}"}, nil, nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/leads", nil))
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want 503", rec.Code)
	}
}

func TestLeadsListingStoreError(t *testing.T) {
	srv := newTestServer(&fakeCaller{response: "{}"}, &fakeLeads{listErr: errors.New("db locked")}, nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/leads", nil))
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
}

func TestHealth(t *testing.T) {
	srv := newTestServer(&fakeCaller{response: "{}"}, &fakeLeads{}, nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/health", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var payload map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode health: %v", err)
	}
	if payload["ok"] != true || payload["configured"] != true {
		t.Fatalf("payload = %v", payload)
	}
}
