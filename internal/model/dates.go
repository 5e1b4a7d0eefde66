package model

import (
	"time"

	"gorm.io/datatypes"
)

// DateOf truncates t to its calendar day at UTC midnight.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// NewDate builds a date column value from any instant on that day.
func NewDate(t time.Time) datatypes.Date {
	return datatypes.Date(DateOf(t))
}

// NewDatePtr is NewDate for nullable columns.
func NewDatePtr(t time.Time) *datatypes.Date {
	d := NewDate(t)
	return &d
}

// FormatDate renders a date column as YYYY-MM-DD.
func FormatDate(d datatypes.Date) string {
	return time.Time(d).Format(time.DateOnly)
}
