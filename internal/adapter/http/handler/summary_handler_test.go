package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/paisavault/paisavault/internal/adapter/http/dto"
	"github.com/paisavault/paisavault/internal/usecase"
)

type summaryServiceStub struct {
	getFn func(ctx context.Context, userID string, ref time.Time) (*usecase.DashboardSummary, error)
}

func (s *summaryServiceStub) GetDashboard(ctx context.Context, userID string, ref time.Time) (*usecase.DashboardSummary, error) {
	return s.getFn(ctx, userID, ref)
}

func TestSummaryHandler_Get(t *testing.T) {
	handler := NewSummaryHandler(&summaryServiceStub{
		getFn: func(ctx context.Context, userID string, ref time.Time) (*usecase.DashboardSummary, error) {
			if userID != "user-1" {
				t.Fatalf("expected user-1, got %s", userID)
			}
			return &usecase.DashboardSummary{
				TotalIncome:   decimal.NewFromInt(1000),
				TotalExpenses: decimal.NewFromInt(200),
				Balance:       decimal.NewFromInt(800),
				GeneratedAt:   time.Now(),
			}, nil
		},
	})

	rec := httptest.NewRecorder()
	handler.Get(rec, authedRequest(http.MethodGet, "/summary", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp dto.SummaryResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if !resp.Balance.Equal(decimal.NewFromInt(800)) {
		t.Fatalf("expected balance 800, got %s", resp.Balance)
	}
}

func TestSummaryHandler_Get_ReferenceDate(t *testing.T) {
	var captured time.Time
	handler := NewSummaryHandler(&summaryServiceStub{
		getFn: func(ctx context.Context, userID string, ref time.Time) (*usecase.DashboardSummary, error) {
			captured = ref
			return &usecase.DashboardSummary{GeneratedAt: time.Now()}, nil
		},
	})

	rec := httptest.NewRecorder()
	handler.Get(rec, authedRequest(http.MethodGet, "/summary?date=2026-03-15", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	want := time.Date(2026, time.March, 15, 0, 0, 0, 0, time.UTC)
	if !captured.Equal(want) {
		t.Fatalf("expected reference date %v, got %v", want, captured)
	}
}

func TestSummaryHandler_Get_BadDate(t *testing.T) {
	handler := NewSummaryHandler(&summaryServiceStub{
		getFn: func(ctx context.Context, userID string, ref time.Time) (*usecase.DashboardSummary, error) {
			t.Fatal("GetDashboard should not be called for a bad date")
			return nil, nil
		},
	})

	rec := httptest.NewRecorder()
	handler.Get(rec, authedRequest(http.MethodGet, "/summary?date=15-03-2026", nil))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}
