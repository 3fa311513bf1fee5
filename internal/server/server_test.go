package server

import (
	"encoding/json"
	"math"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/iwvelando/finance-calculators/internal/calculator"
	"github.com/iwvelando/finance-calculators/internal/formulas"
	"github.com/iwvelando/finance-calculators/pkg/constants"
	"go.uber.org/zap"
)

func newTestHandler(t *testing.T, maxBodySize int64) http.Handler {
	t.Helper()
	registry, err := formulas.NewRegistry(zap.NewNop())
	if err != nil {
		t.Fatalf("NewRegistry() error = %v", err)
	}
	return NewHandler(zap.NewNop(), registry, maxBodySize, "v1.2.3")
}

func serve(handler http.Handler, method, target, contentType, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	return rr
}

func decodeView(t *testing.T, rr *httptest.ResponseRecorder) calculator.View {
	t.Helper()
	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rr.Code, rr.Body.String())
	}
	var view calculator.View
	if err := json.Unmarshal(rr.Body.Bytes(), &view); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	return view
}

func TestHandleVersion(t *testing.T) {
	rr := serve(newTestHandler(t, 0), http.MethodGet, "/api/version", "", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rr.Code)
	}

	var payload map[string]string
	if err := json.Unmarshal(rr.Body.Bytes(), &payload); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if payload["version"] != "v1.2.3" {
		t.Fatalf("expected version v1.2.3, got %q", payload["version"])
	}

	registry, err := formulas.NewRegistry(nil)
	if err != nil {
		t.Fatalf("NewRegistry() error = %v", err)
	}
	rr = serve(NewHandler(nil, registry, 0, "  "), http.MethodGet, "/api/version", "", "")
	if !strings.Contains(rr.Body.String(), `"dev"`) {
		t.Fatalf("expected blank version to fall back to dev, got %s", rr.Body.String())
	}
}

func TestHandleList(t *testing.T) {
	rr := serve(newTestHandler(t, 0), http.MethodGet, "/api/calculators", "", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rr.Code)
	}

	var summaries []calculatorSummary
	if err := json.Unmarshal(rr.Body.Bytes(), &summaries); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(summaries) != len(formulas.All()) {
		t.Fatalf("expected %d calculators, got %d", len(formulas.All()), len(summaries))
	}
	if summaries[0].ID != "loan" || summaries[0].Category == "" || summaries[0].Summary == "" {
		t.Fatalf("unexpected first summary %+v", summaries[0])
	}
}

func TestHandleDetail(t *testing.T) {
	handler := newTestHandler(t, 0)

	rr := serve(handler, http.MethodGet, "/api/calculators/ebitda", "", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rr.Code)
	}
	var detail calculatorDetail
	if err := json.Unmarshal(rr.Body.Bytes(), &detail); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if detail.ID != "ebitda" || len(detail.Fields) != 3 || len(detail.Outputs) == 0 {
		t.Fatalf("unexpected detail %+v", detail)
	}
	if !strings.Contains(detail.AboutHTML, "<table>") || !strings.Contains(detail.AboutHTML, "<h2>") {
		t.Fatalf("expected rendered heading and table, got %q", detail.AboutHTML)
	}
	cogs := detail.Fields[1]
	if cogs.Name != "cogs" || cogs.Policy != "permissive" || cogs.Kind != "number" || cogs.Default == nil || *cogs.Default != 0 {
		t.Fatalf("unexpected cogs field %+v", cogs)
	}
	if detail.Fields[0].Default != nil {
		t.Fatalf("strict fields should not advertise a default")
	}
	if detail.Outputs[0].Format != "currency" {
		t.Fatalf("expected currency output, got %q", detail.Outputs[0].Format)
	}

	rr = serve(handler, http.MethodGet, "/api/calculators/staking", "", "")
	if !strings.Contains(rr.Body.String(), `"defaultChoice":"daily"`) {
		t.Fatalf("expected staking compounding default, got %s", rr.Body.String())
	}

	rr = serve(handler, http.MethodGet, "/api/calculators/nope", "", "")
	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", rr.Code)
	}
}

func TestHandleEvaluateJSON(t *testing.T) {
	handler := newTestHandler(t, 0)

	rr := serve(handler, http.MethodPost, "/api/calculators/loan/evaluate", "application/json",
		`{"inputs": {"principal": 200000, "annualRate": "6", "termYears": 30}}`)
	view := decodeView(t, rr)
	if got, _ := view.Value("monthlyPayment"); got != "$1,199.10" {
		t.Fatalf("monthlyPayment = %q, expected $1,199.10", got)
	}
	if rr.Header().Get("Content-Type") != "application/json" {
		t.Fatalf("unexpected content type %q", rr.Header().Get("Content-Type"))
	}

	rr = serve(handler, http.MethodPost, "/api/calculators/npv/evaluate", "application/json",
		`{"inputs": {"initialInvestment": "50,000", "discountRate": 8, "cashFlows": [15000, 15000, 15000, 15000, 15000]}}`)
	view = decodeView(t, rr)
	if got, _ := view.Value("npv"); got != "$9,890.65" {
		t.Fatalf("npv = %q, expected $9,890.65", got)
	}

	rr = serve(handler, http.MethodPost, "/api/calculators/loan/evaluate", "application/json",
		`{"inputs": {"principal": 1e5, "annualRate": 5, "termYears": 30}}`)
	view = decodeView(t, rr)
	if got, _ := view.Value("monthlyPayment"); got != "$536.82" {
		t.Fatalf("exponent-form principal gave monthlyPayment %q, expected $536.82", got)
	}
}

func TestHandleEvaluateForm(t *testing.T) {
	form := url.Values{}
	form.Set("principal", "$200,000")
	form.Set("annualRate", "6")
	form.Set("termYears", "30")

	rr := serve(newTestHandler(t, 0), http.MethodPost, "/api/calculators/loan/evaluate",
		"application/x-www-form-urlencoded", form.Encode())
	view := decodeView(t, rr)
	if got, _ := view.Value("numberOfPayments"); got != "360" {
		t.Fatalf("numberOfPayments = %q, expected 360", got)
	}
}

func TestHandleEvaluateValidationFailure(t *testing.T) {
	rr := serve(newTestHandler(t, 0), http.MethodPost, "/api/calculators/loan/evaluate", "application/json",
		`{"inputs": {"principal": "lots", "annualRate": "6", "termYears": ""}}`)
	if rr.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected status 422, got %d: %s", rr.Code, rr.Body.String())
	}

	var resp errorResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Error == "" {
		t.Fatal("expected an error message")
	}
	fields := make(map[string]bool)
	for _, issue := range resp.Issues {
		fields[issue.Field] = true
	}
	if !fields["principal"] || !fields["termYears"] {
		t.Fatalf("expected issues for principal and termYears, got %+v", resp.Issues)
	}
	if strings.Contains(rr.Body.String(), "outputs") {
		t.Fatal("a rejected submission must not carry partial outputs")
	}
}

func TestHandleEvaluateErrors(t *testing.T) {
	tests := []struct {
		name        string
		target      string
		maxBodySize int64
		body        string
		status      int
	}{
		{"Unknown calculator", "/api/calculators/nope/evaluate", 0, `{"inputs": {}}`, http.StatusNotFound},
		{"Malformed JSON", "/api/calculators/loan/evaluate", 0, `{"inputs": `, http.StatusBadRequest},
		{"Unsupported value", "/api/calculators/loan/evaluate", 0, `{"inputs": {"principal": true}}`, http.StatusBadRequest},
		{"Nested list", "/api/calculators/npv/evaluate", 0, `{"inputs": {"cashFlows": [[1, 2]]}}`, http.StatusBadRequest},
		{"Number out of range", "/api/calculators/loan/evaluate", 0, `{"inputs": {"principal": 1e400}}`, http.StatusBadRequest},
		{"Term too long", "/api/calculators/loan/evaluate", 0, `{"inputs": {"principal": 5000, "annualRate": 5, "termYears": 1e6}}`, http.StatusUnprocessableEntity},
		{"Growth overflow", "/api/calculators/time-value-of-money/evaluate", 0, `{"inputs": {"presentValue": 1000, "annualRate": 50, "years": 10000}}`, http.StatusUnprocessableEntity},
		{"Body too large", "/api/calculators/loan/evaluate", 32, `{"inputs": {"principal": "` + strings.Repeat("9", 64) + `"}}`, http.StatusRequestEntityTooLarge},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := serve(newTestHandler(t, tt.maxBodySize), http.MethodPost, tt.target, "application/json", tt.body)
			if rr.Code != tt.status {
				t.Fatalf("expected status %d, got %d: %s", tt.status, rr.Code, rr.Body.String())
			}
			var resp errorResponse
			if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil || resp.Error == "" {
				t.Fatalf("expected JSON error body, got %s", rr.Body.String())
			}
		})
	}
}

func TestHandleEvaluateNonFiniteResult(t *testing.T) {
	registry, err := calculator.NewRegistry(zap.NewNop(), calculator.Spec{
		ID:      "overflow",
		Outputs: []calculator.Output{{Name: "value", Format: calculator.Currency}},
		Evaluate: func(calculator.Inputs) (calculator.Result, error) {
			return calculator.NewResult().Set("value", math.Inf(1)), nil
		},
	})
	if err != nil {
		t.Fatalf("NewRegistry() error = %v", err)
	}

	rr := serve(NewHandler(zap.NewNop(), registry, 0, "test"), http.MethodPost,
		"/api/calculators/overflow/evaluate", "application/json", `{"inputs": {}}`)
	if rr.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected status 422, got %d: %s", rr.Code, rr.Body.String())
	}
	if strings.Contains(rr.Body.String(), "Inf") {
		t.Fatalf("non-finite value leaked into the response: %s", rr.Body.String())
	}
}

func TestMethodNotAllowed(t *testing.T) {
	rr := serve(newTestHandler(t, 0), http.MethodGet, "/api/calculators/loan/evaluate", "", "")
	if rr.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected status 405, got %d", rr.Code)
	}
}

func TestRequestID(t *testing.T) {
	handler := newTestHandler(t, constants.DefaultMaxBodySizeBytes)

	rr := serve(handler, http.MethodGet, "/api/version", "", "")
	generated := rr.Header().Get(RequestIDHeader)
	if _, err := uuid.Parse(generated); err != nil {
		t.Fatalf("expected a generated UUID, got %q", generated)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/calculators/nope", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Header().Get(RequestIDHeader) != "abc-123" {
		t.Fatalf("expected incoming request ID to be reused, got %q", rec.Header().Get(RequestIDHeader))
	}
}
