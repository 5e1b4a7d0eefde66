package calendar

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrInvalidClock = errors.New("time must be in HH:MM format")
	ErrInvalidMonth = errors.New("month must be between 1 and 12")
)

// ParseClock проверяет время сессии "HH:MM" и приводит его к двузначному виду.
// Время хранится строкой, занятость зала сравнивается по точному совпадению.
func ParseClock(s string) (string, error) {
	// "9:30" тоже допускаем, но сохраняем как "09:30"
	t, err := time.Parse("15:04", s)
	if err != nil {
		return "", ErrInvalidClock
	}
	return t.Format("15:04"), nil
}

// At совмещает календарный день и время "HH:MM" в момент в UTC.
func At(day time.Time, clock string) (time.Time, error) {
	c, err := ParseClock(clock)
	if err != nil {
		return time.Time{}, err
	}
	t, _ := time.Parse("15:04", c)
	y, m, d := day.Date()
	return time.Date(y, m, d, t.Hour(), t.Minute(), 0, 0, time.UTC), nil
}

func dateOnly(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// AddDays сдвигает календарный день на n дней (n может быть отрицательным).
func AddDays(day time.Time, n int) time.Time {
	return dateOnly(day).AddDate(0, 0, n)
}

// LaterOf возвращает более поздний из двух дней.
func LaterOf(a, b time.Time) time.Time {
	a, b = dateOnly(a), dateOnly(b)
	if a.After(b) {
		return a
	}
	return b
}

// MonthRange возвращает полуинтервал [начало месяца, начало следующего) в UTC.
func MonthRange(year int, month time.Month) (time.Time, time.Time, error) {
	if month < time.January || month > time.December {
		return time.Time{}, time.Time{}, ErrInvalidMonth
	}
	if year < 1 {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid year %d", year)
	}
	start := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 1, 0), nil
}

var ruWeekdays = map[time.Weekday]string{
	time.Monday:    "Понедельник",
	time.Tuesday:   "Вторник",
	time.Wednesday: "Среда",
	time.Thursday:  "Четверг",
	time.Friday:    "Пятница",
	time.Saturday:  "Суббота",
	time.Sunday:    "Воскресенье",
}

// FormatSessionSlot форматирует день и время сессии в человекочитаемую строку:
// "Среда, 15.01.2025, 14:00". Пустое время опускается.
func FormatSessionSlot(day time.Time, clock string) string {
	base := fmt.Sprintf("%s, %s", ruWeekdays[day.Weekday()], day.Format("02.01.2006"))
	if clock == "" {
		return base
	}
	return base + ", " + clock
}
