package api_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"

	"github.com/ndewijer/Portfolio-Tracker-Backend/internal/api"
	"github.com/ndewijer/Portfolio-Tracker-Backend/internal/config"
	"github.com/ndewijer/Portfolio-Tracker-Backend/internal/model"
	"github.com/ndewijer/Portfolio-Tracker-Backend/internal/testutil"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	db := testutil.SetupTestDB(t)

	cfg := &config.Config{CORS: config.CORSConfig{AllowedOrigins: []string{"http://localhost:3000"}}}
	router := api.NewRouter(api.Services{
		System:      testutil.NewTestSystemService(t, db),
		User:        testutil.NewTestUserService(t, db),
		Portfolio:   testutil.NewTestPortfolioService(t, db),
		Investment:  testutil.NewTestInvestmentService(t, db),
		Transaction: testutil.NewTestTransactionService(t, db),
		Performance: testutil.NewTestPerformanceService(t, db),
	}, cfg, zerolog.Nop())

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv
}

func doJSON(t *testing.T, method, url, body string, out any) int {
	t.Helper()

	req, err := http.NewRequest(method, url, bytes.NewBufferString(body))
	if err != nil {
		t.Fatalf("Failed to build request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s failed: %v", method, url, err)
	}
	defer resp.Body.Close()

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			t.Fatalf("Failed to decode %s %s response: %v", method, url, err)
		}
	}
	return resp.StatusCode
}

// TestRouter_Lifecycle drives one user through the whole API.
//
// WHY: The handlers are tested one by one; this checks that the routes,
// URL parameters and middleware are wired to the right handlers.
func TestRouter_Lifecycle(t *testing.T) {
	srv := newTestServer(t)
	base := srv.URL + "/api"

	var user model.UserView
	if code := doJSON(t, http.MethodPost, base+"/user", `{"username":"erin","password":"long-enough"}`, &user); code != http.StatusCreated {
		t.Fatalf("POST /user: expected 201, got %d", code)
	}

	var portfolio model.PortfolioView
	body := `{"userId":"` + user.ID + `","name":"Main","totalValue":"1000"}`
	if code := doJSON(t, http.MethodPost, base+"/portfolio", body, &portfolio); code != http.StatusCreated {
		t.Fatalf("POST /portfolio: expected 201, got %d", code)
	}

	var inv model.InvestmentView
	body = `{"portfolioId":"` + portfolio.ID + `","name":"ETF","amount":"100","currentValue":"100"}`
	if code := doJSON(t, http.MethodPost, base+"/investment", body, &inv); code != http.StatusCreated {
		t.Fatalf("POST /investment: expected 201, got %d", code)
	}

	body = `{"portfolioId":"` + portfolio.ID + `","investmentId":"` + inv.ID + `","transactionType":"buy","amount":"100"}`
	if code := doJSON(t, http.MethodPost, base+"/transaction", body, nil); code != http.StatusCreated {
		t.Fatalf("POST /transaction: expected 201, got %d", code)
	}

	var owned []model.PortfolioView
	if code := doJSON(t, http.MethodGet, base+"/user/"+user.ID+"/portfolios", "", &owned); code != http.StatusOK || len(owned) != 1 {
		t.Errorf("GET /user/{uuid}/portfolios: got %d with %d portfolios", code, len(owned))
	}

	var byInvestment []model.TransactionView
	if code := doJSON(t, http.MethodGet, base+"/investment/"+inv.ID+"/transactions", "", &byInvestment); code != http.StatusOK || len(byInvestment) != 1 {
		t.Errorf("GET /investment/{uuid}/transactions: got %d with %d transactions", code, len(byInvestment))
	}

	var result model.SnapshotResult
	if code := doJSON(t, http.MethodPost, base+"/performance/snapshot?date=2024-08-01", "", &result); code != http.StatusOK || len(result.Recorded) != 1 {
		t.Errorf("POST /performance/snapshot: got %d with %+v", code, result)
	}

	var snapshot model.PerformanceView
	if code := doJSON(t, http.MethodGet, base+"/portfolio/"+portfolio.ID+"/performance/date/2024-08-01", "", &snapshot); code != http.StatusOK {
		t.Errorf("GET performance on date: expected 200, got %d", code)
	}

	if code := doJSON(t, http.MethodDelete, base+"/user/"+user.ID, "", nil); code != http.StatusNoContent {
		t.Errorf("DELETE /user/{uuid}: expected 204, got %d", code)
	}
	if code := doJSON(t, http.MethodGet, base+"/portfolio/"+portfolio.ID, "", nil); code != http.StatusNotFound {
		t.Errorf("GET deleted portfolio: expected 404, got %d", code)
	}
}

func TestRouter_RejectsMalformedIDs(t *testing.T) {
	srv := newTestServer(t)

	for _, path := range []string{
		"/api/user/not-a-uuid",
		"/api/portfolio/not-a-uuid/investments",
		"/api/investment/not-a-uuid",
		"/api/transaction/not-a-uuid",
		"/api/performance/not-a-uuid",
	} {
		t.Run(path, func(t *testing.T) {
			if code := doJSON(t, http.MethodGet, srv.URL+path, "", nil); code != http.StatusBadRequest {
				t.Errorf("Expected 400, got %d", code)
			}
		})
	}
}

func TestRouter_CORSPreflight(t *testing.T) {
	srv := newTestServer(t)

	req, err := http.NewRequest(http.MethodOptions, srv.URL+"/api/portfolio", nil)
	if err != nil {
		t.Fatalf("Failed to build request: %v", err)
	}
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("Preflight failed: %v", err)
	}
	defer resp.Body.Close()

	if got := resp.Header.Get("Access-Control-Allow-Origin"); got != "http://localhost:3000" {
		t.Errorf("Expected allowed origin header, got %q", got)
	}
}

func TestRouter_SystemEndpoints(t *testing.T) {
	srv := newTestServer(t)

	var info model.VersionInfo
	if code := doJSON(t, http.MethodGet, srv.URL+"/api/system/version", "", &info); code != http.StatusOK {
		t.Errorf("Expected 200, got %d", code)
	}
	if code := doJSON(t, http.MethodGet, srv.URL+"/api/system/health", "", nil); code != http.StatusOK {
		t.Errorf("Expected 200, got %d", code)
	}
}
