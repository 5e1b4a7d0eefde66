package service

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Leganyst/photo-studio/internal/apperr"
	"github.com/Leganyst/photo-studio/internal/calendar"
	"github.com/Leganyst/photo-studio/internal/model"
)

// DashboardStats — сводка для главной страницы студии.
type DashboardStats struct {
	Year  int
	Month time.Month

	ActiveSessions   int64
	SessionsInMonth  int64
	PendingBalance   decimal.Decimal
	MonthlyRevenue   decimal.Decimal // поступления минус возвраты за месяц
	SessionsByStatus map[model.SessionStatus]int64
}

type DashboardService struct {
	deps Deps
}

func NewDashboardService(deps Deps) *DashboardService {
	return &DashboardService{deps: deps.withDefaults()}
}

// Stats aggregates the studio figures for one calendar month. A zero year or
// month means the current one.
func (s *DashboardService) Stats(ctx context.Context, year int, month time.Month) (*DashboardStats, error) {
	now := s.deps.Clock.Now()
	if year == 0 {
		year = now.Year()
	}
	if month == 0 {
		month = now.Month()
	}
	from, to, err := calendar.MonthRange(year, month)
	if err != nil {
		return nil, apperr.InvalidArgument("month", err.Error())
	}

	store := s.deps.Store
	stats := &DashboardStats{Year: year, Month: month}

	if stats.ActiveSessions, err = store.Sessions.CountActive(ctx); err != nil {
		return nil, fmt.Errorf("count active sessions: %w", err)
	}
	if stats.SessionsInMonth, err = store.Sessions.CountCreatedBetween(ctx, from, to); err != nil {
		return nil, fmt.Errorf("count sessions in month: %w", err)
	}
	if stats.PendingBalance, err = store.Sessions.SumPendingBalance(ctx); err != nil {
		return nil, fmt.Errorf("sum pending balance: %w", err)
	}
	if stats.SessionsByStatus, err = store.Sessions.CountByStatus(ctx); err != nil {
		return nil, fmt.Errorf("count by status: %w", err)
	}

	payments, err := store.Payments.ListByDateRange(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("list month payments: %w", err)
	}
	revenue := decimal.Zero
	for _, p := range payments {
		if p.IsRefund() {
			revenue = revenue.Sub(p.Amount)
			continue
		}
		revenue = revenue.Add(p.Amount)
	}
	stats.MonthlyRevenue = revenue.Round(2)

	s.deps.Logger.DebugContext(ctx, "dashboard stats computed",
		"service", "DashboardService", "year", year, "month", int(month))
	return stats, nil
}
