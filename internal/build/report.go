package build

import (
	"fmt"
	"time"
)

// Status represents the outcome of a build execution.
type Status string

const (
	StatusSuccess Status = "success"
	StatusFailed  Status = "failed"
)

// Report summarizes one Run or Check.
type Report struct {
	Status Status

	// Discovered counts post files found under the content root.
	Discovered int
	Blogs      int
	Abouts     int
	Drafts     int
	// Published counts pages written to the output directory.
	Published int

	AssetsCopied int
	IndexPath    string

	StartTime time.Time
	EndTime   time.Time
	Duration  time.Duration
}

func newReport() *Report {
	return &Report{StartTime: time.Now()}
}

func (r *Report) finish(err error) {
	r.EndTime = time.Now()
	r.Duration = r.EndTime.Sub(r.StartTime)
	r.Status = StatusSuccess
	if err != nil {
		r.Status = StatusFailed
	}
}

// Summary renders a one-line human readable description.
func (r *Report) Summary() string {
	return fmt.Sprintf("%s: %d documents (%d blog, %d about, %d drafts), %d published, %d assets in %s",
		r.Status, r.Discovered, r.Blogs, r.Abouts, r.Drafts, r.Published, r.AssetsCopied, r.Duration.Round(time.Millisecond))
}
