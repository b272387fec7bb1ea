package metrics

import "time"

// ResultLabel enumerates stage result categories for counters.
type ResultLabel string

const (
	ResultSuccess ResultLabel = "success"
	ResultFatal   ResultLabel = "fatal"
)

// BuildOutcomeLabel is the final status of a build.
type BuildOutcomeLabel string

const (
	BuildOutcomeSuccess BuildOutcomeLabel = "success"
	BuildOutcomeFailed  BuildOutcomeLabel = "failed"
)

// DocumentOutcome is what happened to a single source document.
type DocumentOutcome string

const (
	DocumentPublished DocumentOutcome = "published"
	DocumentDraft     DocumentOutcome = "draft"
	DocumentInvalid   DocumentOutcome = "invalid"
)

// Recorder defines observability hooks for build and stage metrics.
type Recorder interface {
	ObserveStageDuration(stage string, d time.Duration)
	ObserveBuildDuration(d time.Duration)
	IncStageResult(stage string, result ResultLabel)
	IncBuildOutcome(outcome BuildOutcomeLabel)
	IncDocument(docType string, outcome DocumentOutcome)
	SetIndexSize(posts, tags, sections int)
}

// NoopRecorder is a Recorder that does nothing (default when metrics not configured).
type NoopRecorder struct{}

func (NoopRecorder) ObserveStageDuration(string, time.Duration) {}
func (NoopRecorder) ObserveBuildDuration(time.Duration)         {}
func (NoopRecorder) IncStageResult(string, ResultLabel)         {}
func (NoopRecorder) IncBuildOutcome(BuildOutcomeLabel)          {}
func (NoopRecorder) IncDocument(string, DocumentOutcome)        {}
func (NoopRecorder) SetIndexSize(int, int, int)                 {}
