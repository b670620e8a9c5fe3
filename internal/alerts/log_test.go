package alerts

import (
	"fmt"
	"testing"
	"time"

	"github.com/souhardya/vervoer-core/internal/infrastructure/config"
)

func entry(title string) Entry {
	return Entry{ID: title, Kind: KindWarning, Title: title, Timestamp: time.Now()}
}

func TestLog_NewestFirst(t *testing.T) {
	log := NewLog(0)

	log.Append(entry("first"))
	log.Append(entry("second"))
	log.Append(entry("third"))

	entries := log.Entries()
	want := []string{"third", "second", "first"}
	for i, title := range want {
		if entries[i].Title != title {
			t.Errorf("entries[%d] = %q, want %q", i, entries[i].Title, title)
		}
	}
}

func TestLog_BoundedHistory(t *testing.T) {
	log := NewLog(3)

	for i := 0; i < 5; i++ {
		log.Append(entry(fmt.Sprintf("e%d", i)))
	}

	entries := log.Entries()
	if len(entries) != 3 {
		t.Fatalf("log has %d entries, want 3", len(entries))
	}
	if entries[0].Title != "e4" || entries[2].Title != "e2" {
		t.Errorf("kept %q..%q, want e4..e2", entries[0].Title, entries[2].Title)
	}
}

func TestLog_Clear(t *testing.T) {
	log := NewLog(0)
	log.Append(entry("one"))
	log.Append(entry("two"))

	log.Clear()

	if log.Len() != 0 {
		t.Errorf("Len after Clear = %d, want 0", log.Len())
	}

	// Log stays usable after clearing.
	log.Append(entry("three"))
	if log.Len() != 1 {
		t.Errorf("Len after re-append = %d, want 1", log.Len())
	}
}

func TestThresholdsFromConfig(t *testing.T) {
	thresholds := ThresholdsFromConfig(config.ThresholdsConfig{
		MetricHeartRate: {Min: 50, Max: 120},
		"unknown":       {Min: 1, Max: 2},
	})

	hr := thresholds[MetricHeartRate]
	if hr.Min != 50 || hr.Max != 120 {
		t.Errorf("heart_rate bounds = [%v, %v], want [50, 120]", hr.Min, hr.Max)
	}
	if hr.Label != "Heart Rate" || hr.Unit != "bpm" {
		t.Errorf("override must keep label/unit, got %q/%q", hr.Label, hr.Unit)
	}

	if _, ok := thresholds["unknown"]; ok {
		t.Error("unknown metric override must be ignored")
	}

	// Untouched metrics keep their defaults.
	if spo2 := thresholds[MetricSpO2]; spo2.Min != 90 || !spo2.Percentage {
		t.Errorf("spo2 = %+v, want default", spo2)
	}
}
