package handlers

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/ndewijer/Portfolio-Tracker-Backend/internal/api/request"
	"github.com/ndewijer/Portfolio-Tracker-Backend/internal/model"
	"github.com/ndewijer/Portfolio-Tracker-Backend/internal/testutil"
)

func setupPortfolioHandler(t *testing.T) (*PortfolioHandler, *sql.DB) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	return NewPortfolioHandler(testutil.NewTestPortfolioService(t, db)), db
}

func TestPortfolioHandler_Portfolios(t *testing.T) {
	t.Run("returns empty array when no portfolios exist", func(t *testing.T) {
		handler, _ := setupPortfolioHandler(t)

		req := httptest.NewRequest(http.MethodGet, "/api/portfolio", nil)
		w := httptest.NewRecorder()

		handler.Portfolios(w, req)

		if w.Code != http.StatusOK {
			t.Errorf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}
		if w.Body.String() != "[]\n" {
			t.Errorf("Expected empty JSON array, got %q", w.Body.String())
		}
	})

	t.Run("filters by user and active flag", func(t *testing.T) {
		handler, db := setupPortfolioHandler(t)

		alice := testutil.NewUser().Build(t, db)
		bob := testutil.NewUser().Build(t, db)
		wanted := testutil.NewPortfolio(alice.ID).Build(t, db)
		testutil.NewPortfolio(alice.ID).Inactive().Build(t, db)
		testutil.NewPortfolio(bob.ID).Build(t, db)

		req := testutil.NewRequestWithQueryParams(http.MethodGet, "/api/portfolio", map[string]string{
			"userId": alice.ID,
			"active": "true",
		})
		w := httptest.NewRecorder()

		handler.Portfolios(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}

		var response []model.PortfolioView
		//nolint:errcheck // Test assertion - decode failure would cause test to fail anyway
		json.NewDecoder(w.Body).Decode(&response)
		if len(response) != 1 || response[0].ID != wanted.ID {
			t.Errorf("Expected only %s, got %+v", wanted.ID, response)
		}
	})

	t.Run("returns 400 for malformed userId", func(t *testing.T) {
		handler, _ := setupPortfolioHandler(t)

		req := testutil.NewRequestWithQueryParams(http.MethodGet, "/api/portfolio", map[string]string{"userId": "nope"})
		w := httptest.NewRecorder()

		handler.Portfolios(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected 400, got %d: %s", w.Code, w.Body.String())
		}
	})
}

func TestPortfolioHandler_CreatePortfolio(t *testing.T) {
	t.Run("creates portfolio with defaults", func(t *testing.T) {
		handler, db := setupPortfolioHandler(t)
		user := testutil.NewUser().Build(t, db)

		req := testutil.NewJSONRequest(t, http.MethodPost, "/api/portfolio", request.CreatePortfolioRequest{
			UserID: user.ID,
			Name:   "Savings",
		}, nil)
		w := httptest.NewRecorder()

		handler.CreatePortfolio(w, req)

		if w.Code != http.StatusCreated {
			t.Fatalf("Expected 201, got %d: %s", w.Code, w.Body.String())
		}

		var response model.PortfolioView
		//nolint:errcheck // Test assertion - decode failure would cause test to fail anyway
		json.NewDecoder(w.Body).Decode(&response)
		if response.Name != "Savings" || !response.IsActive || !response.TotalValue.IsZero() {
			t.Errorf("Unexpected response: %+v", response)
		}
	})

	t.Run("returns 404 for unknown user", func(t *testing.T) {
		handler, _ := setupPortfolioHandler(t)

		req := testutil.NewJSONRequest(t, http.MethodPost, "/api/portfolio", request.CreatePortfolioRequest{
			UserID: testutil.MakeID(),
			Name:   "Orphan",
		}, nil)
		w := httptest.NewRecorder()

		handler.CreatePortfolio(w, req)

		if w.Code != http.StatusNotFound {
			t.Errorf("Expected 404, got %d: %s", w.Code, w.Body.String())
		}
	})

	t.Run("returns 400 on missing required fields", func(t *testing.T) {
		handler, _ := setupPortfolioHandler(t)

		req := testutil.NewJSONRequest(t, http.MethodPost, "/api/portfolio", `{"description":"no owner"}`, nil)
		w := httptest.NewRecorder()

		handler.CreatePortfolio(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected 400, got %d: %s", w.Code, w.Body.String())
		}
	})
}

func TestPortfolioHandler_UpdateAndDelete(t *testing.T) {
	handler, db := setupPortfolioHandler(t)
	p := testutil.CreatePortfolio(t, db, "Before")
	params := map[string]string{"uuid": p.ID}

	req := testutil.NewJSONRequest(t, http.MethodPut, "/api/portfolio/"+p.ID, `{"totalValue":"2500.50"}`, params)
	w := httptest.NewRecorder()

	handler.UpdatePortfolio(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var response model.PortfolioView
	//nolint:errcheck // Test assertion - decode failure would cause test to fail anyway
	json.NewDecoder(w.Body).Decode(&response)
	if response.Name != "Before" || !response.TotalValue.Equal(decimal.RequireFromString("2500.50")) {
		t.Errorf("Unexpected response: %+v", response)
	}

	w = httptest.NewRecorder()
	handler.GetPortfolio(w, testutil.NewRequestWithURLParams(http.MethodGet, "/api/portfolio/"+p.ID, params))
	if w.Code != http.StatusOK {
		t.Errorf("Expected 200, got %d", w.Code)
	}

	w = httptest.NewRecorder()
	handler.DeletePortfolio(w, testutil.NewRequestWithURLParams(http.MethodDelete, "/api/portfolio/"+p.ID, params))
	if w.Code != http.StatusNoContent {
		t.Errorf("Expected 204, got %d", w.Code)
	}

	w = httptest.NewRecorder()
	handler.GetPortfolio(w, testutil.NewRequestWithURLParams(http.MethodGet, "/api/portfolio/"+p.ID, params))
	if w.Code != http.StatusNotFound {
		t.Errorf("Expected 404 after delete, got %d", w.Code)
	}
}
