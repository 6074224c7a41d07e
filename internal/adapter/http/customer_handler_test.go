package http

import (
	"encoding/json"
	stdhttp "net/http"
	"testing"

	"loan-portal/internal/domain/customer"
	"loan-portal/internal/usecase/dashboard"
)

func seedCustomer(te *testEnv) string {
	return te.fake.Seed("Customer", map[string]any{
		"name":           "CUST-0001",
		"customer_name":  "Ada Lovelace",
		"customer_type":  "Individual",
		"customer_group": "Individual",
		"territory":      "All Territories",
		"email_id":       "ada@example.com",
	})
}

func TestGetCustomer(t *testing.T) {
	te := newTestEnv(t, tokenCfg())
	id := seedCustomer(te)

	rec := te.do(stdhttp.MethodGet, "/api/customers/"+id, nil, nil)
	wantStatus(t, rec, stdhttp.StatusOK)
	var got customer.Customer
	decode(t, rec, &got)
	if got.Name != id || got.EmailID != "ada@example.com" {
		t.Fatalf("unexpected customer: %+v", got)
	}

	rec = te.do(stdhttp.MethodGet, "/api/customers/CUST-9999", nil, nil)
	wantStatus(t, rec, stdhttp.StatusNotFound)
}

func TestGetCustomer_InvalidID(t *testing.T) {
	te := newTestEnv(t, tokenCfg())
	rec := te.do(stdhttp.MethodGet, "/api/customers/-CUST", nil, nil)
	wantStatus(t, rec, stdhttp.StatusBadRequest)
	if n := len(te.fake.Requests()); n != 0 {
		t.Fatalf("no backend call expected, got %d", n)
	}
}

func TestUpdateCustomer_SendsOnlyGivenFields(t *testing.T) {
	te := newTestEnv(t, tokenCfg())
	id := seedCustomer(te)

	rec := te.do(stdhttp.MethodPut, "/api/customers/"+id, mustJSON(map[string]any{
		"mobile_no":       "+15550199",
		"employment_type": "Contract",
		"monthly_income":  4200.5,
	}), nil)
	wantStatus(t, rec, stdhttp.StatusOK)

	var sent map[string]any
	if err := json.Unmarshal(te.fake.LastRequest().Body, &sent); err != nil {
		t.Fatalf("bad body: %v", err)
	}
	if len(sent) != 3 {
		t.Fatalf("patch should carry exactly the given fields: %v", sent)
	}
	doc := te.fake.Doc("Customer", id)
	if doc["mobile_no"] != "+15550199" || doc["customer_name"] != "Ada Lovelace" {
		t.Fatalf("stored doc: %v", doc)
	}
}

func TestUpdateCustomer_Rejects(t *testing.T) {
	te := newTestEnv(t, tokenCfg())
	id := seedCustomer(te)

	cases := []struct {
		name string
		body map[string]any
	}{
		{"empty", map[string]any{}},
		{"bad email", map[string]any{"email_id": "nope"}},
		{"bad employment", map[string]any{"employment_type": "Astronaut"}},
		{"bad date", map[string]any{"date_of_birth": "10/12/1990"}},
		{"too many decimals", map[string]any{"monthly_income": 10.123}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := te.do(stdhttp.MethodPut, "/api/customers/"+id, mustJSON(tc.body), nil)
			wantStatus(t, rec, stdhttp.StatusUnprocessableEntity)
		})
	}
	if n := te.fake.Count(stdhttp.MethodPut, "/api/resource/Customer"); n != 0 {
		t.Fatalf("no update expected, got %d", n)
	}
}

func TestUpdateCustomer_BackendFails(t *testing.T) {
	te := newTestEnv(t, tokenCfg())
	rec := te.do(stdhttp.MethodPut, "/api/customers/CUST-9999", mustJSON(map[string]any{"nationality": "British"}), nil)
	wantStatus(t, rec, stdhttp.StatusBadGateway)
}

func TestDashboard(t *testing.T) {
	te := newTestEnv(t, tokenCfg())
	id := seedCustomer(te)
	te.fake.Seed("Loan", map[string]any{"customer": id, "loan_status": "Active", "loan_amount": 1000, "remaining_balance": 400})
	te.fake.Seed("Loan", map[string]any{"customer": id, "loan_status": "Completed", "loan_amount": 2000, "remaining_balance": 0})
	te.fake.Seed("Loan", map[string]any{"customer": "CUST-0002", "loan_status": "Active", "loan_amount": 9000, "remaining_balance": 9000})
	te.fake.Seed("Loan Application", map[string]any{"applicant": id, "application_status": "Under Review", "loan_amount": 500})
	te.fake.Seed("Loan Application", map[string]any{"applicant": id, "application_status": "Rejected", "loan_amount": 700})

	rec := te.do(stdhttp.MethodGet, "/api/customers/"+id+"/dashboard", nil, nil)
	wantStatus(t, rec, stdhttp.StatusOK)

	var d dashboard.Dashboard
	decode(t, rec, &d)
	if len(d.ActiveLoans) != 1 || len(d.CompletedLoans) != 1 || len(d.PendingApplications) != 1 {
		t.Fatalf("unexpected grouping: %+v", d)
	}
	if d.TotalBorrowed != 3000 || d.TotalPaid != 2600 {
		t.Fatalf("totals = %v/%v, want 3000/2600", d.TotalBorrowed, d.TotalPaid)
	}
}

func TestDashboard_UnknownCustomer(t *testing.T) {
	te := newTestEnv(t, tokenCfg())
	rec := te.do(stdhttp.MethodGet, "/api/customers/CUST-9999/dashboard", nil, nil)
	wantStatus(t, rec, stdhttp.StatusNotFound)
}
