// Package dateutil разбирает даты в двух календарях (григорианский и
// персидский) и нормализует их к единому внутреннему представлению:
// полночь UTC. Для отображения пользователю даты форматируются в
// персидском календаре.
package dateutil

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	ptime "github.com/yaa110/go-persian-calendar"
)

// GregorianLayout формат григорианской даты на вводе: 2026-02-11
const GregorianLayout = "2006-01-02"

// JalaliLayout формат персидской даты на вводе и выводе: 1404/11/23
const JalaliLayout = "yyyy/MM/dd"

// ErrInvalidDate возвращается, когда строка не является датой ни в одном
// из поддерживаемых календарей
var ErrInvalidDate = errors.New("dateutil: invalid date")

// ParseDate разбирает дату в формате YYYY-MM-DD (григорианский) или
// YYYY/MM/DD (персидский) и возвращает полночь UTC соответствующего
// григорианского дня
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)

	if t, err := time.Parse(GregorianLayout, s); err == nil {
		return DateOnly(t), nil
	}

	parts := strings.Split(s, "/")
	if len(parts) != 3 {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}

	year, err1 := strconv.Atoi(parts[0])
	month, err2 := strconv.Atoi(parts[1])
	day, err3 := strconv.Atoi(parts[2])
	if err1 != nil || err2 != nil || err3 != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	if month < 1 || month > 12 || day < 1 || day > 31 {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}

	pt := ptime.Date(year, ptime.Month(month), day, 0, 0, 0, 0, ptime.Iran())
	// ptime нормализует выход за границы месяца; такой ввод отклоняем
	if pt.Year() != year || int(pt.Month()) != month || pt.Day() != day {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}

	return DateOnly(pt.Time()), nil
}

// FormatJalali возвращает дату в персидском календаре: 1404/11/23
func FormatJalali(t time.Time) string {
	return ptime.New(t).Format(JalaliLayout)
}

// DateOnly обнуляет время, оставляя только дату (полночь UTC)
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Today возвращает сегодняшнюю дату (полночь UTC)
func Today() time.Time {
	return DateOnly(time.Now())
}
