package ingest

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
)

var errNoDate = errors.New("date is empty")

var dateLayouts = []string{
	"2006-01-02",
	"02-01-2006",
	"02/01/2006",
	"2006/01/02",
}

var timeSuffixes = []string{"", " 15:04:05", " 15:04", "T15:04:05"}

// ParseDate accepts Excel serial dates and the textual layouts above, with an
// optional time of day that is discarded.
func ParseDate(c Cell) (time.Time, error) {
	if c.Numeric {
		return serialDate(c.Number)
	}
	s := strings.TrimSpace(c.Text)
	if s == "" {
		return time.Time{}, errNoDate
	}
	for _, layout := range dateLayouts {
		for _, suffix := range timeSuffixes {
			if t, err := time.ParseInLocation(layout+suffix, s, time.Local); err == nil {
				return dateOnly(t), nil
			}
		}
	}
	if n, err := strconv.ParseFloat(s, 64); err == nil {
		return serialDate(n)
	}
	return time.Time{}, errors.New("unrecognized date " + strconv.Quote(s))
}

func serialDate(n float64) (time.Time, error) {
	if n <= 0 {
		return time.Time{}, errors.New("invalid date serial")
	}
	t, err := excelize.ExcelDateToTime(n, false)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.Local), nil
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.Local)
}
