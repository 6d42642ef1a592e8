package stats

import (
	"bytes"
	"strings"
	"testing"
)

func TestScalarRegistrationAndFlush(t *testing.T) {
	r := NewRegistry()
	hits := r.Scalar("ch0_read_row_hits", "row hits", 0)
	hits.Inc()
	hits.Inc()

	var buf bytes.Buffer
	if err := r.Flush(&buf); err != nil {
		t.Fatalf("Flush failed: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "ch0_read_row_hits") || !strings.Contains(out, "2") {
		t.Errorf("flush output missing expected stat: %q", out)
	}
}

func TestDuplicateScalarPanics(t *testing.T) {
	r := NewRegistry()
	r.Scalar("dup", "", 0)
	defer func() {
		if recover() == nil {
			t.Error("expected panic on duplicate scalar registration")
		}
	}()
	r.Scalar("dup", "", 0)
}

func TestVectorGrowsOnAdd(t *testing.T) {
	r := NewRegistry()
	v := r.Vector("per_bank_acts", "activates per bank", 0)
	v.Add(2, 1)
	if len(v.Values) != 3 {
		t.Fatalf("len(Values) = %d, want 3", len(v.Values))
	}
	if v.Values[2] != 1 {
		t.Errorf("Values[2] = %v, want 1", v.Values[2])
	}
}

func TestChannelStatsConservation(t *testing.T) {
	r := NewRegistry()
	cs := NewChannelStats(r, 0)

	cs.Incoming.Add(3)
	cs.ReadRowHits.Inc()
	cs.ReadRowMisses.Inc()
	cs.ReadRowConflicts.Inc()

	total := cs.ReadRowHits.Value + cs.ReadRowMisses.Value + cs.ReadRowConflicts.Value +
		cs.WriteRowHits.Value + cs.WriteRowMisses.Value + cs.WriteRowConflicts.Value
	if total != cs.Incoming.Value {
		t.Errorf("hit+miss+conflict = %v, want incoming = %v", total, cs.Incoming.Value)
	}
}

func TestChannelStatsAverages(t *testing.T) {
	r := NewRegistry()
	cs := NewChannelStats(r, 1)

	cs.LatencySum.Add(100)
	cs.ReadCount.Add(4)
	if got := cs.AvgLatency(); got != 25 {
		t.Errorf("AvgLatency = %v, want 25", got)
	}

	if got := cs.AvgReadQueueLen(); got != 0 {
		t.Errorf("AvgReadQueueLen with no samples = %v, want 0", got)
	}
}
