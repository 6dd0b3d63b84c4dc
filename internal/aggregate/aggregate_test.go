package aggregate

import (
	"testing"
	"time"

	"formatbench/internal/model"
)

func trial(engine model.EngineType, op model.OperationKind, d time.Duration, size int64) model.Trial {
	return model.Trial{
		Dataset:   "bench",
		Engine:    engine,
		Format:    model.FormatCSV,
		Operation: op,
		Duration:  d,
		FileSize:  size,
		Success:   true,
	}
}

func find(t *testing.T, results []model.AggregateResult, engine model.EngineType, op model.OperationKind) *model.AggregateResult {
	t.Helper()
	for i := range results {
		if results[i].Engine == engine && results[i].Operation == op {
			return &results[i]
		}
	}
	t.Fatalf("No result for %s/%s", engine, op)
	return nil
}

func TestAggregateStatistics(t *testing.T) {
	trials := []model.Trial{
		trial(model.EngineArrow, model.OperationWrite, 100*time.Millisecond, 1024),
		trial(model.EngineArrow, model.OperationWrite, 110*time.Millisecond, 1024),
		trial(model.EngineArrow, model.OperationWrite, 500*time.Millisecond, 1024),
		trial(model.EngineArrow, model.OperationWrite, 120*time.Millisecond, 1024),
		trial(model.EngineArrow, model.OperationWrite, 90*time.Millisecond, 1024),
	}

	results, err := Aggregate(trials, 0.2)
	if err != nil {
		t.Fatalf("Aggregate failed: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("Expected 1 result, got %d", len(results))
	}

	r := results[0]
	expected := (100*time.Millisecond + 110*time.Millisecond + 120*time.Millisecond) / 3
	if r.TrimmedMean != expected {
		t.Errorf("Expected trimmed mean %v, got %v", expected, r.TrimmedMean)
	}
	if r.Min != 90*time.Millisecond {
		t.Errorf("Expected untrimmed min 90ms, got %v", r.Min)
	}
	if r.Max != 500*time.Millisecond {
		t.Errorf("Expected untrimmed max 500ms, got %v", r.Max)
	}
	if r.FileSize != 1024 {
		t.Errorf("Expected file size 1024, got %d", r.FileSize)
	}
	if r.Trials != 5 || r.Failures != 0 {
		t.Errorf("Expected 5 trials and 0 failures, got %d/%d", r.Trials, r.Failures)
	}
	if r.Status != model.StatusOK {
		t.Errorf("Expected status ok, got %s", r.Status)
	}
}

func TestAggregateReadInheritsWriteSize(t *testing.T) {
	trials := []model.Trial{
		trial(model.EngineArrow, model.OperationWrite, 100*time.Millisecond, 2048),
		trial(model.EngineArrow, model.OperationRead, 50*time.Millisecond, 0),
	}

	results, err := Aggregate(trials, 0)
	if err != nil {
		t.Fatalf("Aggregate failed: %v", err)
	}

	read := find(t, results, model.EngineArrow, model.OperationRead)
	if read.FileSize != 2048 {
		t.Errorf("Expected read row to inherit write size 2048, got %d", read.FileSize)
	}
}

func TestAggregateAllFailedGroup(t *testing.T) {
	failed := trial(model.EngineArrow, model.OperationWrite, 0, 0)
	failed.Success = false
	failed.Error = "boom"

	results, err := Aggregate([]model.Trial{failed, failed}, 0.1)
	if err != nil {
		t.Fatalf("Aggregate failed: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("Expected 1 result, got %d", len(results))
	}

	r := results[0]
	if r.Status != model.StatusError {
		t.Errorf("Expected status error, got %s", r.Status)
	}
	if r.Failures != 2 || r.Trials != 2 {
		t.Errorf("Expected 2 failures out of 2 trials, got %d/%d", r.Failures, r.Trials)
	}
	if r.Fastest {
		t.Error("Failed group must not be marked fastest")
	}
}

func TestFastestSelection(t *testing.T) {
	trials := []model.Trial{
		trial(model.EngineArrow, model.OperationWrite, 200*time.Millisecond, 1000),
		trial(model.EngineStdCodec, model.OperationWrite, 100*time.Millisecond, 3000),
	}

	results, err := Aggregate(trials, 0)
	if err != nil {
		t.Fatalf("Aggregate failed: %v", err)
	}

	if find(t, results, model.EngineArrow, model.OperationWrite).Fastest {
		t.Error("Slower engine marked fastest")
	}
	if !find(t, results, model.EngineStdCodec, model.OperationWrite).Fastest {
		t.Error("Fastest engine not marked")
	}
}

func TestFastestTieBreaksOnFileSize(t *testing.T) {
	trials := []model.Trial{
		trial(model.EngineArrow, model.OperationWrite, 100*time.Millisecond, 3000),
		trial(model.EngineStdCodec, model.OperationWrite, 100*time.Millisecond, 1000),
	}

	results, err := Aggregate(trials, 0)
	if err != nil {
		t.Fatalf("Aggregate failed: %v", err)
	}

	if !find(t, results, model.EngineStdCodec, model.OperationWrite).Fastest {
		t.Error("Expected smaller file to win the timing tie")
	}
	if find(t, results, model.EngineArrow, model.OperationWrite).Fastest {
		t.Error("Both engines marked fastest")
	}
}

func TestFastestTieBreaksOnEngineOrder(t *testing.T) {
	trials := []model.Trial{
		trial(model.EngineStdCodec, model.OperationWrite, 100*time.Millisecond, 1000),
		trial(model.EngineArrow, model.OperationWrite, 100*time.Millisecond, 1000),
	}

	results, err := Aggregate(trials, 0)
	if err != nil {
		t.Fatalf("Aggregate failed: %v", err)
	}

	if !find(t, results, model.EngineArrow, model.OperationWrite).Fastest {
		t.Error("Expected declaration order to break the full tie in favour of arrow")
	}
}

func TestFastestRacesAreSeparatePerOperation(t *testing.T) {
	trials := []model.Trial{
		trial(model.EngineArrow, model.OperationWrite, 100*time.Millisecond, 1000),
		trial(model.EngineArrow, model.OperationRead, 300*time.Millisecond, 0),
		trial(model.EngineStdCodec, model.OperationWrite, 200*time.Millisecond, 1000),
		trial(model.EngineStdCodec, model.OperationRead, 150*time.Millisecond, 0),
	}

	results, err := Aggregate(trials, 0)
	if err != nil {
		t.Fatalf("Aggregate failed: %v", err)
	}

	if !find(t, results, model.EngineArrow, model.OperationWrite).Fastest {
		t.Error("arrow should win the write race")
	}
	if !find(t, results, model.EngineStdCodec, model.OperationRead).Fastest {
		t.Error("stdcodec should win the read race")
	}
}

func TestAggregatePreservesFirstSeenOrder(t *testing.T) {
	trials := []model.Trial{
		trial(model.EngineGoAvro, model.OperationWrite, time.Millisecond, 10),
		trial(model.EngineArrow, model.OperationWrite, time.Millisecond, 10),
		trial(model.EngineGoAvro, model.OperationWrite, time.Millisecond, 10),
	}

	results, err := Aggregate(trials, 0)
	if err != nil {
		t.Fatalf("Aggregate failed: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("Expected 2 results, got %d", len(results))
	}
	if results[0].Engine != model.EngineGoAvro || results[1].Engine != model.EngineArrow {
		t.Errorf("Expected first-seen order goavro then arrow, got %s then %s",
			results[0].Engine, results[1].Engine)
	}
}
