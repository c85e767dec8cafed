package launchpad

import (
	"context"
	"log/slog"
	"strconv"
	"time"

	"github.com/inovacc/craft-stats/internal/application"
	"github.com/inovacc/craft-stats/internal/encoding"
)

// TimestampLayout formats the timestamp column, e.g. 2024-Jan-02 15:04:05
const TimestampLayout = "2006-Jan-02 15:04:05"

// Counts holds the number of bug tasks per status, indexed by Status
type Counts [statusCount]int

// Header returns the report header row.
func Header() []string {
	header := make([]string, 0, statusCount+1)
	header = append(header, "timestamp")

	for _, status := range AllStatuses() {
		header = append(header, status.String())
	}

	return header
}

// Row renders counts taken at ts as a report row.
func (c Counts) Row(ts time.Time) []string {
	row := make([]string, 0, statusCount+1)
	row = append(row, ts.Format(TimestampLayout))

	for _, n := range c {
		row = append(row, strconv.Itoa(n))
	}

	return row
}

// RecordOptions configures Record
type RecordOptions struct {
	Client  *Client
	Project string
	DataDir string

	// Now fixes the row timestamp (default: time.Now)
	Now    func() time.Time
	Logger *slog.Logger
}

// Record fetches the task count of every status and appends one row to
// the project's report, writing the header when the report is new.
func Record(ctx context.Context, opts RecordOptions) (Counts, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	clock := opts.Now
	if clock == nil {
		clock = time.Now
	}

	logger = logger.With(slog.String("project", opts.Project))
	logger.Info("collecting launchpad bug counts")

	ts := clock()

	var counts Counts

	attrs := make([]any, 0, statusCount)

	for _, status := range AllStatuses() {
		n, err := opts.Client.CountTasks(ctx, opts.Project, status)
		if err != nil {
			return counts, err
		}

		counts[status] = n
		attrs = append(attrs, slog.Int(status.Field(), n))
	}

	path := application.LaunchpadCSVFile(opts.DataDir, opts.Project)
	if err := encoding.AppendCSV(path, Header(), [][]string{counts.Row(ts)}); err != nil {
		return counts, err
	}

	logger.Info("recorded launchpad bug counts", append(attrs, slog.String("file", path))...)

	return counts, nil
}
