package core

import (
	"strconv"
	"time"

	"github.com/inovacc/craft-stats/internal/encoding"
	"github.com/inovacc/craft-stats/internal/model"
)

// SeriesDateLayout formats the date column, e.g. 2021-Jan-01
const SeriesDateLayout = "2006-Jan-02"

// SeriesStart is the first day of every daily report
var SeriesStart = time.Date(2021, time.January, 1, 0, 0, 0, 0, time.UTC)

// SeriesHeader is the header row of the daily issue reports
var SeriesHeader = []string{"date", "issues", "closed", "age"}

// DataPoint is one day of a daily issue report
type DataPoint struct {
	Date      time.Time
	Open      int  // issues open at 00:00 UTC
	Closed    int  // issues closed during the day
	MedianAge *int // median age in days of the open issues, nil when none are open
}

// CSVRow renders the point as a report row.
func (p DataPoint) CSVRow() []string {
	age := ""
	if p.MedianAge != nil {
		age = strconv.Itoa(*p.MedianAge)
	}

	return []string{
		p.Date.Format(SeriesDateLayout),
		strconv.Itoa(p.Open),
		strconv.Itoa(p.Closed),
		age,
	}
}

// BuildSeries computes one DataPoint per UTC calendar day from start
// through the day containing now, in ascending order. Pass the issues of
// every project to get the pooled series: counts and medians are taken
// over the combined population.
func BuildSeries(issues []*model.Issue, start, now time.Time) []DataPoint {
	first := truncateDay(start)
	last := truncateDay(now)

	if last.Before(first) {
		return nil
	}

	points := make([]DataPoint, 0, int(last.Sub(first)/(24*time.Hour))+1)

	for day := first; !day.After(last); day = day.AddDate(0, 0, 1) {
		points = append(points, dataPointFor(issues, day))
	}

	return points
}

func dataPointFor(issues []*model.Issue, day time.Time) DataPoint {
	var opened []time.Time

	closed := 0

	for _, issue := range issues {
		if issue.IsOpen(day) {
			opened = append(opened, issue.OpenedAt)
		}

		if issue.ClosedOn(day) {
			closed++
		}
	}

	return DataPoint{
		Date:      day,
		Open:      len(opened),
		Closed:    closed,
		MedianAge: MedianAge(opened, day),
	}
}

// WriteSeries replaces the report at path with points.
func WriteSeries(path string, points []DataPoint) error {
	rows := make([][]string, 0, len(points))
	for _, p := range points {
		rows = append(rows, p.CSVRow())
	}

	return encoding.WriteCSV(path, SeriesHeader, rows)
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
