package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRecordChatOutcome(t *testing.T) {
	outcomes := []string{
		OutcomeOK, OutcomeRefused, OutcomeInvalid,
		OutcomeEmptyResponse, OutcomeProviderError, OutcomeInternal,
	}

	for _, outcome := range outcomes {
		t.Run(outcome, func(t *testing.T) {
			before := testutil.ToFloat64(ChatRequestsTotal.WithLabelValues(outcome))
			RecordChatOutcome(outcome)
			after := testutil.ToFloat64(ChatRequestsTotal.WithLabelValues(outcome))
			if after != before+1 {
				t.Errorf("expected counter to grow by 1, got %v -> %v", before, after)
			}
		})
	}
}

func TestRecordHTTPRequest(t *testing.T) {
	before := testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues("GET", "/health", "200"))
	RecordHTTPRequest("GET", "/health", 200, 3*time.Millisecond)
	after := testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues("GET", "/health", "200"))
	if after != before+1 {
		t.Errorf("expected counter to grow by 1, got %v -> %v", before, after)
	}
	if n := testutil.CollectAndCount(HTTPRequestDuration); n == 0 {
		t.Error("expected at least one duration series")
	}
}

func TestRecordFeedback(t *testing.T) {
	pos := testutil.ToFloat64(FeedbackTotal.WithLabelValues("positive"))
	neg := testutil.ToFloat64(FeedbackTotal.WithLabelValues("negative"))

	RecordFeedback(true)
	RecordFeedback(false)
	RecordFeedback(false)

	if got := testutil.ToFloat64(FeedbackTotal.WithLabelValues("positive")); got != pos+1 {
		t.Errorf("expected positive %v, got %v", pos+1, got)
	}
	if got := testutil.ToFloat64(FeedbackTotal.WithLabelValues("negative")); got != neg+2 {
		t.Errorf("expected negative %v, got %v", neg+2, got)
	}
}

func TestTrackStreamClient(t *testing.T) {
	start := testutil.ToFloat64(FeedbackStreamClients)
	TrackStreamClient(true)
	TrackStreamClient(true)
	TrackStreamClient(false)
	if got := testutil.ToFloat64(FeedbackStreamClients); got != start+1 {
		t.Errorf("expected %v, got %v", start+1, got)
	}
}

func TestMetricGathering(t *testing.T) {
	RecordProviderCall(250 * time.Millisecond)

	problems, err := testutil.GatherAndLint(prometheus.DefaultGatherer)
	if err != nil {
		t.Fatalf("gather failed: %v", err)
	}
	for _, p := range problems {
		t.Logf("metric lint problem: %s", p.Text)
	}
}
