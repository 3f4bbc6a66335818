package integration

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/RishiPrasath/time-deposit-take-home-kata/internal/adapter/http/dto"
	"github.com/RishiPrasath/time-deposit-take-home-kata/internal/domain"
)

func TestUpdateBalances(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	ctx := context.Background()
	env := newTestEnv(t, ctx)

	t.Run("accrues interest across deposits in order", func(t *testing.T) {
		env.db.TruncateAll(ctx)

		// ULIDs sort by creation time, so insertion order is accrual order.
		basic := env.db.CreateTestDeposit(ctx, domain.PlanBasic, "1000.00", 45)
		student := env.db.CreateTestDeposit(ctx, domain.PlanStudent, "2000.00", 60)
		premium := env.db.CreateTestDeposit(ctx, domain.PlanPremium, "3000.00", 90)

		r := httptest.NewRequest(http.MethodPut, "/api/v1/time-deposits/updateBalances", nil)
		w := httptest.NewRecorder()

		env.router.ServeHTTP(w, r)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
		}

		var resp dto.UpdateBalancesResponse
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("failed to parse response: %v", err)
		}

		if resp.Status != "success" {
			t.Errorf("expected status success, got %s", resp.Status)
		}
		if resp.UpdatedCount != 3 {
			t.Errorf("expected 3 updated deposits, got %d", resp.UpdatedCount)
		}

		checks := []struct {
			id   string
			want string
		}{
			{basic.ID, "1000.83"},
			{student.ID, "2005.83"},
			{premium.ID, "3018.33"},
		}
		for _, c := range checks {
			got := env.db.GetBalance(ctx, c.id)
			if !got.Equal(decimal.RequireFromString(c.want)) {
				t.Errorf("deposit %s: expected balance %s, got %s", c.id, c.want, got)
			}
		}
	})

	t.Run("deposits under the threshold stay unchanged", func(t *testing.T) {
		env.db.TruncateAll(ctx)

		young := env.db.CreateTestDeposit(ctx, domain.PlanBasic, "1000.00", 30)

		r := httptest.NewRequest(http.MethodPut, "/api/v1/time-deposits/updateBalances", nil)
		w := httptest.NewRecorder()

		env.router.ServeHTTP(w, r)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
		}

		var resp dto.UpdateBalancesResponse
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("failed to parse response: %v", err)
		}
		if resp.UpdatedCount != 0 {
			t.Errorf("expected 0 updated deposits, got %d", resp.UpdatedCount)
		}

		got := env.db.GetBalance(ctx, young.ID)
		if !got.Equal(decimal.RequireFromString("1000.00")) {
			t.Errorf("expected balance unchanged, got %s", got)
		}
	})

	t.Run("empty table succeeds", func(t *testing.T) {
		env.db.TruncateAll(ctx)

		r := httptest.NewRequest(http.MethodPut, "/api/v1/time-deposits/updateBalances", nil)
		w := httptest.NewRecorder()

		env.router.ServeHTTP(w, r)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
		}
	})

	t.Run("list reflects accrued balances after invalidation", func(t *testing.T) {
		env.db.TruncateAll(ctx)

		env.db.CreateTestDeposit(ctx, domain.PlanBasic, "1200.00", 40)

		// Warm the list cache.
		warm := httptest.NewRequest(http.MethodGet, "/api/v1/time-deposits", nil)
		env.router.ServeHTTP(httptest.NewRecorder(), warm)

		r := httptest.NewRequest(http.MethodPut, "/api/v1/time-deposits/updateBalances", nil)
		env.router.ServeHTTP(httptest.NewRecorder(), r)

		list := httptest.NewRequest(http.MethodGet, "/api/v1/time-deposits", nil)
		w := httptest.NewRecorder()
		env.router.ServeHTTP(w, list)

		var resp []*dto.TimeDepositResponse
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("failed to parse response: %v", err)
		}
		if len(resp) != 1 {
			t.Fatalf("expected 1 deposit, got %d", len(resp))
		}
		if !resp[0].Balance.Equal(decimal.RequireFromString("1201.00")) {
			t.Errorf("expected cached list to be invalidated, got balance %s", resp[0].Balance)
		}
	})
}
