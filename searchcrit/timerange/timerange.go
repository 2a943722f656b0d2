// Package timerange resolves a date token to the interval it denotes.
package timerange

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	scerrors "github.com/nonibytes/searchcrit/searchcrit/errors"
)

var (
	yearRe  = regexp.MustCompile(`^(\d{4})$`)
	monthRe = regexp.MustCompile(`^(\d{4})-(\d{1,2})$`)
	dayRe   = regexp.MustCompile(`^(\d{4})-(\d{1,2})-(\d{1,2})$`)
)

// Parse returns the half-open interval [min, max) covered by token at its own
// precision: a year, a month, or a day. "today" and "yesterday" are resolved
// against now; all instants use now's location.
func Parse(token string, now time.Time) (min, max time.Time, err error) {
	value := strings.ToLower(strings.TrimSpace(token))
	loc := now.Location()

	switch value {
	case "today":
		min = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)
		return min, min.AddDate(0, 0, 1), nil
	case "yesterday":
		max = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)
		return max.AddDate(0, 0, -1), max, nil
	}

	if m := yearRe.FindStringSubmatch(value); m != nil {
		year := atoi(m[1])
		min = time.Date(year, time.January, 1, 0, 0, 0, 0, loc)
		return min, min.AddDate(1, 0, 0), nil
	}

	if m := monthRe.FindStringSubmatch(value); m != nil {
		year, month := atoi(m[1]), atoi(m[2])
		if month < 1 || month > 12 {
			return min, max, scerrors.DateFormatError(token)
		}
		min = time.Date(year, time.Month(month), 1, 0, 0, 0, 0, loc)
		return min, min.AddDate(0, 1, 0), nil
	}

	if m := dayRe.FindStringSubmatch(value); m != nil {
		year, month, day := atoi(m[1]), atoi(m[2]), atoi(m[3])
		min = time.Date(year, time.Month(month), day, 0, 0, 0, 0, loc)
		// time.Date normalizes overflow such as 2021-02-30
		if min.Year() != year || int(min.Month()) != month || min.Day() != day {
			return time.Time{}, time.Time{}, scerrors.DateFormatError(token)
		}
		return min, min.AddDate(0, 0, 1), nil
	}

	return min, max, scerrors.DateFormatError(token)
}

func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}
