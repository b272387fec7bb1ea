package metrics

import (
	"testing"
	"time"
)

var (
	_ Recorder = NoopRecorder{}
	_ Recorder = (*PrometheusRecorder)(nil)
)

func TestNoopRecorder_AcceptsAllCalls(t *testing.T) {
	var r Recorder = NoopRecorder{}
	r.ObserveStageDuration("load", time.Second)
	r.ObserveBuildDuration(time.Second)
	r.IncStageResult("load", ResultSuccess)
	r.IncBuildOutcome(BuildOutcomeSuccess)
	r.IncDocument("blog", DocumentPublished)
	r.SetIndexSize(1, 2, 3)
}
