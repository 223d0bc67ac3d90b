package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Sergey0703/kpfaplus-sub001/internal/application"
)

type fillServiceStub struct {
	result application.FillResult
	err    error
	params application.FillParams
	calls  int
}

func (s *fillServiceStub) Fill(ctx context.Context, params application.FillParams) (application.FillResult, error) {
	s.calls++
	s.params = params
	return s.result, s.err
}

func newFillRouter(service fillService) http.Handler {
	return NewRouter(RouterConfig{Fill: NewFillHandler(service, nil)})
}

func postFill(t *testing.T, handler http.Handler, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/api/fill", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

const validBody = `{"month":"2024-10","employeeId":"emp-1","contractId":"con-1","managerId":"mgr-1","groupId":"grp-1"}`

func TestFillHandler_Completed(t *testing.T) {
	t.Parallel()

	stub := &fillServiceStub{result: application.FillResult{
		Status: application.StatusCompleted, GeneratedCount: 20, SavedCount: 20,
	}}
	rec := postFill(t, newFillRouter(stub), validBody)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body %s", rec.Code, rec.Body.String())
	}

	var result application.FillResult
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if result.Status != application.StatusCompleted || result.SavedCount != 20 {
		t.Fatalf("result = %+v", result)
	}

	if stub.params.EmployeeID != "emp-1" || stub.params.ContractID != "con-1" {
		t.Errorf("params not forwarded: %+v", stub.params)
	}
	if got := stub.params.SelectedMonth.Format("2006-01"); got != "2024-10" {
		t.Errorf("month = %s", got)
	}
}

func TestFillHandler_Blocked(t *testing.T) {
	t.Parallel()

	stub := &fillServiceStub{result: application.FillResult{
		Status:         application.StatusBlocked,
		BlockingReason: "1 of 3 existing records for the period are already processed",
	}}
	rec := postFill(t, newFillRouter(stub), validBody)

	if rec.Code != http.StatusConflict {
		t.Fatalf("status = %d, want 409", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "already processed") {
		t.Fatalf("body lost the blocking reason: %s", rec.Body.String())
	}
}

func TestFillHandler_Partial(t *testing.T) {
	t.Parallel()

	stub := &fillServiceStub{result: application.FillResult{
		Status: application.StatusPartial, GeneratedCount: 10, SavedCount: 9,
		Errors: []application.SaveError{{Title: "Shift", Date: "2024-10-04", Message: "rejected"}},
	}}
	rec := postFill(t, newFillRouter(stub), validBody)

	if rec.Code != http.StatusMultiStatus {
		t.Fatalf("status = %d, want 207", rec.Code)
	}
	var result application.FillResult
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(result.Errors) != 1 || result.SavedCount != 9 {
		t.Fatalf("partial payload incomplete: %+v", result)
	}
}

func TestFillHandler_InvalidInput(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		body string
	}{
		{"malformed json", `{"month":`},
		{"missing employee", `{"month":"2024-10","contractId":"con-1"}`},
		{"bad month", `{"month":"October","employeeId":"emp-1","contractId":"con-1"}`},
		{"bad start of week", `{"month":"2024-10","employeeId":"emp-1","contractId":"con-1","startOfWeekDay":9}`},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			stub := &fillServiceStub{}
			rec := postFill(t, newFillRouter(stub), tc.body)

			if rec.Code != http.StatusUnprocessableEntity && rec.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 4xx", rec.Code)
			}
			if stub.calls != 0 {
				t.Error("invalid request reached the service")
			}
		})
	}
}

func TestFillHandler_ServiceErrors(t *testing.T) {
	t.Parallel()

	t.Run("unknown contract", func(t *testing.T) {
		t.Parallel()

		stub := &fillServiceStub{
			result: application.FillResult{Status: application.StatusFailed},
			err:    application.ErrNotFound,
		}
		rec := postFill(t, newFillRouter(stub), validBody)
		if rec.Code != http.StatusNotFound {
			t.Fatalf("status = %d, want 404", rec.Code)
		}
	})

	t.Run("validation from the service", func(t *testing.T) {
		t.Parallel()

		vErr := &application.ValidationError{FieldErrors: map[string]string{"contractId": "contract is inactive"}}
		stub := &fillServiceStub{
			result: application.FillResult{Status: application.StatusFailed},
			err:    vErr,
		}
		rec := postFill(t, newFillRouter(stub), validBody)
		if rec.Code != http.StatusUnprocessableEntity {
			t.Fatalf("status = %d, want 422", rec.Code)
		}
		if !strings.Contains(rec.Body.String(), "inactive") {
			t.Fatalf("body lost field errors: %s", rec.Body.String())
		}
	})
}

func TestRouter_MethodAndHealth(t *testing.T) {
	t.Parallel()

	handler := newFillRouter(&fillServiceStub{})

	req := httptest.NewRequest(http.MethodGet, "/api/fill", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("GET /api/fill status = %d, want 405", rec.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("GET /healthz status = %d, want 200", rec.Code)
	}
}
