package calendar

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestParseClock(t *testing.T) {
	cases := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"14:00", "14:00", false},
		{"09:05", "09:05", false},
		{"9:30", "09:30", false},
		{"23:59", "23:59", false},
		{"24:00", "", true},
		{"14:60", "", true},
		{"14:00:00", "", true},
		{"2pm", "", true},
		{"", "", true},
	}

	for _, tc := range cases {
		got, err := ParseClock(tc.in)
		if tc.wantErr {
			if !errors.Is(err, ErrInvalidClock) {
				t.Fatalf("ParseClock(%q): expected ErrInvalidClock, got %v", tc.in, err)
			}
			continue
		}
		if err != nil {
			t.Fatalf("ParseClock(%q): unexpected error %v", tc.in, err)
		}
		if got != tc.want {
			t.Fatalf("ParseClock(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestAt(t *testing.T) {
	day := time.Date(2025, 3, 10, 18, 45, 0, 0, time.UTC)
	got, err := At(day, "14:30")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := time.Date(2025, 3, 10, 14, 30, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}

	if _, err := At(day, "bad"); err == nil {
		t.Fatalf("expected error for bad clock")
	}
}

func TestAddDaysAndLaterOf(t *testing.T) {
	day := time.Date(2025, 3, 3, 15, 0, 0, 0, time.UTC)

	if got := AddDays(day, -7); !got.Equal(time.Date(2025, 2, 24, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("AddDays(-7) = %v", got)
	}
	if got := AddDays(day, 5); !got.Equal(time.Date(2025, 3, 8, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("AddDays(5) = %v", got)
	}

	earlier := time.Date(2025, 3, 1, 23, 0, 0, 0, time.UTC)
	if got := LaterOf(earlier, day); !got.Equal(time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("LaterOf = %v", got)
	}
	if got := LaterOf(day, earlier); !got.Equal(time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("LaterOf (swapped) = %v", got)
	}
}

func TestMonthRange(t *testing.T) {
	from, to, err := MonthRange(2024, time.December)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !from.Equal(time.Date(2024, 12, 1, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("from = %v", from)
	}
	if !to.Equal(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("to = %v", to)
	}

	if _, _, err := MonthRange(2024, 13); !errors.Is(err, ErrInvalidMonth) {
		t.Fatalf("expected ErrInvalidMonth, got %v", err)
	}
}

func TestFormatSessionSlot(t *testing.T) {
	day := time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)
	if got := FormatSessionSlot(day, "14:00"); got != "Среда, 15.01.2025, 14:00" {
		t.Fatalf("unexpected format: %q", got)
	}
	if got := FormatSessionSlot(day, ""); got != "Среда, 15.01.2025" {
		t.Fatalf("unexpected format without time: %q", got)
	}
}

func TestNewPage(t *testing.T) {
	p := NewPage([]int{1, 2, 3}, 10, 1, 3)
	if !p.HasNext || p.HasPrev {
		t.Fatalf("first page flags wrong: %+v", p)
	}

	p = NewPage([]int{10}, 10, 4, 3)
	if p.HasNext || !p.HasPrev {
		t.Fatalf("last page flags wrong: %+v", p)
	}

	p = NewPage[int](nil, 0, 0, 0)
	if p.Page != 1 || p.PageSize != DefaultPageSize || p.Items == nil {
		t.Fatalf("defaults not applied: %+v", p)
	}

	limit, offset, page := Bounds(3, 1000)
	if limit != MaxPageSize || offset != 2*MaxPageSize || page != 3 {
		t.Fatalf("Bounds = %d/%d/%d", limit, offset, page)
	}
}

type stubStaffStore struct {
	staff map[int64]*Staff
	roles map[int64]string
	err   error
}

func (s stubStaffStore) FindStaff(_ context.Context, id int64) (*Staff, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.staff[id], nil
}

func (s stubStaffStore) HasRole(_ context.Context, id int64, role string) (bool, error) {
	return s.roles[id] == role, nil
}

func TestValidateStaff(t *testing.T) {
	store := stubStaffStore{
		staff: map[int64]*Staff{
			1: {ID: 1, Name: "Ann", Active: true},
			2: {ID: 2, Name: "Bob", Active: false},
			3: {ID: 3, Name: "Cid", Active: true},
		},
		roles: map[int64]string{1: "photographer", 2: "photographer", 3: "editor"},
	}
	ctx := context.Background()

	if _, err := ValidateStaff(ctx, store, 0, "photographer"); !errors.Is(err, ErrInvalidUserID) {
		t.Fatalf("expected ErrInvalidUserID, got %v", err)
	}
	if _, err := ValidateStaff(ctx, store, 9, "photographer"); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
	if _, err := ValidateStaff(ctx, store, 2, "photographer"); !errors.Is(err, ErrUserInactive) {
		t.Fatalf("expected ErrUserInactive, got %v", err)
	}
	if _, err := ValidateStaff(ctx, store, 3, "photographer"); !errors.Is(err, ErrMissingRole) {
		t.Fatalf("expected ErrMissingRole, got %v", err)
	}
	s, err := ValidateStaff(ctx, store, 1, "photographer")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Name != "Ann" {
		t.Fatalf("unexpected staff: %+v", s)
	}

	boom := errors.New("db down")
	if _, err := ValidateStaff(ctx, stubStaffStore{err: boom}, 1, "photographer"); !errors.Is(err, boom) {
		t.Fatalf("expected store error, got %v", err)
	}
}
