// Package calendar groups a LeetCode submission calendar into per-year
// buckets and a rolling "current" bucket covering the last 365 days.
package calendar

import (
	"strconv"
	"time"

	"github.com/SARVESHVARADKAR123/leetproxy/internal/model"
)

const (
	dateLayout = "2006-01-02"
	windowDays = 365
)

// Calendar is the upstream submission calendar: Unix timestamps in seconds,
// string encoded, mapped to the number of submissions on that day.
type Calendar map[string]int

// Stats reports entries Bucket could not place.
type Stats struct {
	Skipped int
}

// Bucket groups cal by UTC calendar year and fills the "current" bucket with
// every day in [today-365d, today]. A day may appear in both a year bucket
// and "current". Malformed timestamp keys and zero counts are skipped.
func Bucket(cal Calendar, today time.Time) model.Progress {
	p, _ := BucketWithStats(cal, today)
	return p
}

// BucketWithStats is Bucket that also reports how many keys were skipped
// because they did not parse as timestamps.
func BucketWithStats(cal Calendar, today time.Time) (model.Progress, Stats) {
	var st Stats

	end := day(today.UTC())
	start := end.AddDate(0, 0, -windowDays)

	progress := model.Progress{}
	current := newBucket()

	for key, count := range cal {
		ts, err := strconv.ParseInt(key, 10, 64)
		if err != nil {
			st.Skipped++
			continue
		}
		if count == 0 {
			continue
		}

		date := day(time.Unix(ts, 0).UTC())
		iso := date.Format(dateLayout)

		year := strconv.Itoa(date.Year())
		b, ok := progress[year]
		if !ok {
			b = newBucket()
		}
		b.Daily[iso] += count
		b.Total += count
		progress[year] = b

		if !date.Before(start) && !date.After(end) {
			current.Daily[iso] += count
			current.Total += count
		}
	}

	progress[model.CurrentBucket] = current
	return progress, st
}

func newBucket() model.YearBucket {
	return model.YearBucket{Daily: map[string]int{}}
}

func day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
