package progress

import (
	"errors"
	"fmt"
	"testing"
	"time"
)

func newTestStore() (*Store, *MemoryStorage) {
	storage := NewMemoryStorage()
	store := NewStore(storage)
	store.now = func() time.Time {
		return time.Date(2026, time.August, 31, 12, 0, 0, 0, time.UTC)
	}
	return store, storage
}

type failingStorage struct {
	getErr error
	setErr error
	value  string
}

func (f *failingStorage) Get(key string) (string, error) { return f.value, f.getErr }
func (f *failingStorage) Set(key, value string) error    { return f.setErr }

func TestRecordAndHistory(t *testing.T) {
	store, _ := newTestStore()

	record, err := store.Record("networking", 2, 3)
	if err != nil {
		t.Fatalf("Record: %v", err)
	}
	if record.Date != "2026-08-31" || record.Score != 2 || record.Total != 3 || record.Accuracy != 67 {
		t.Fatalf("record = %+v, want {2026-08-31 2 3 67}", record)
	}

	history := store.History("networking")
	if len(history) != 1 {
		t.Fatalf("history length = %d, want 1", len(history))
	}
	if history[0] != *record {
		t.Fatalf("history[0] = %+v, want %+v", history[0], *record)
	}
}

func TestRecordInvalidScore(t *testing.T) {
	tests := []struct {
		name         string
		score, total int
	}{
		{name: "zero total", score: 0, total: 0},
		{name: "negative total", score: 0, total: -1},
		{name: "negative score", score: -1, total: 5},
		{name: "score above total", score: 6, total: 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, _ := newTestStore()
			if _, err := store.Record("networking", tt.score, tt.total); !errors.Is(err, ErrInvalidScore) {
				t.Fatalf("Record(%d, %d) error = %v, want ErrInvalidScore", tt.score, tt.total, err)
			}
		})
	}
}

func TestHistoryEvictionKeepsLatestTen(t *testing.T) {
	store, _ := newTestStore()

	// 13 attempts with distinguishable scores: i correct out of 13
	for i := 0; i < 13; i++ {
		if _, err := store.Record("networking", i, 13); err != nil {
			t.Fatalf("Record attempt %d: %v", i, err)
		}
	}

	history := store.History("networking")
	if len(history) != MaxHistoryPerCategory {
		t.Fatalf("history length = %d, want %d", len(history), MaxHistoryPerCategory)
	}
	// the first three attempts (scores 0..2) were evicted
	for i, record := range history {
		if want := i + 3; record.Score != want {
			t.Fatalf("history[%d].Score = %d, want %d", i, record.Score, want)
		}
	}

	if store.AttemptCount("networking") != MaxHistoryPerCategory {
		t.Fatalf("AttemptCount = %d, want %d", store.AttemptCount("networking"), MaxHistoryPerCategory)
	}
}

func TestBestScore(t *testing.T) {
	store, _ := newTestStore()

	for _, score := range []int{4, 9, 6} {
		if _, err := store.Record("networking", score, 10); err != nil {
			t.Fatalf("Record: %v", err)
		}
	}

	best, ok := store.BestScore("networking")
	if !ok {
		t.Fatal("BestScore reported no attempts")
	}
	if best != 90 {
		t.Fatalf("BestScore = %d, want 90", best)
	}
}

func TestEmptyHistory(t *testing.T) {
	store, _ := newTestStore()

	if history := store.History("unseen-category"); len(history) != 0 {
		t.Fatalf("History = %v, want empty", history)
	}
	if _, ok := store.BestScore("unseen-category"); ok {
		t.Fatal("BestScore should report no attempts")
	}
	if count := store.AttemptCount("unseen-category"); count != 0 {
		t.Fatalf("AttemptCount = %d, want 0", count)
	}
	if total := store.TotalQuizzesCompleted(); total != 0 {
		t.Fatalf("TotalQuizzesCompleted = %d, want 0", total)
	}
}

func TestTotalQuizzesCompleted(t *testing.T) {
	store, _ := newTestStore()

	for i := 0; i < 3; i++ {
		if _, err := store.Record("networking", 2, 3); err != nil {
			t.Fatal(err)
		}
	}
	for i := 0; i < 2; i++ {
		if _, err := store.Record("cost-optimization", 1, 3); err != nil {
			t.Fatal(err)
		}
	}

	if total := store.TotalQuizzesCompleted(); total != 5 {
		t.Fatalf("TotalQuizzesCompleted = %d, want 5", total)
	}
}

func TestIdempotentReads(t *testing.T) {
	store, _ := newTestStore()
	if _, err := store.Record("networking", 2, 3); err != nil {
		t.Fatal(err)
	}

	firstHistory := store.History("networking")
	firstBest, _ := store.BestScore("networking")
	firstCount := store.AttemptCount("networking")

	for i := 0; i < 3; i++ {
		history := store.History("networking")
		if len(history) != len(firstHistory) || history[0] != firstHistory[0] {
			t.Fatalf("History changed between reads: %v vs %v", history, firstHistory)
		}
		if best, _ := store.BestScore("networking"); best != firstBest {
			t.Fatalf("BestScore changed between reads: %d vs %d", best, firstBest)
		}
		if count := store.AttemptCount("networking"); count != firstCount {
			t.Fatalf("AttemptCount changed between reads: %d vs %d", count, firstCount)
		}
	}
}

func TestAccuracyRoundsHalfUp(t *testing.T) {
	tests := []struct {
		score, total, want int
	}{
		{7, 10, 70},
		{1, 3, 33},
		{1, 8, 13}, // 12.5 rounds up
		{5, 8, 63}, // 62.5 rounds up
		{3, 3, 100},
		{0, 3, 0},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%d_of_%d", tt.score, tt.total), func(t *testing.T) {
			store, _ := newTestStore()
			record, err := store.Record("networking", tt.score, tt.total)
			if err != nil {
				t.Fatalf("Record: %v", err)
			}
			if record.Accuracy != tt.want {
				t.Fatalf("Accuracy = %d, want %d", record.Accuracy, tt.want)
			}
		})
	}
}

func TestCorruptStateSelfHeals(t *testing.T) {
	store, storage := newTestStore()
	if err := storage.Set(StorageKey, "{definitely not json"); err != nil {
		t.Fatal(err)
	}

	if history := store.History("networking"); len(history) != 0 {
		t.Fatalf("History over corrupt data = %v, want empty", history)
	}
	if total := store.TotalQuizzesCompleted(); total != 0 {
		t.Fatalf("TotalQuizzesCompleted over corrupt data = %d, want 0", total)
	}

	// recording over corrupt state starts fresh rather than failing
	if _, err := store.Record("networking", 2, 3); err != nil {
		t.Fatalf("Record over corrupt data: %v", err)
	}
	if count := store.AttemptCount("networking"); count != 1 {
		t.Fatalf("AttemptCount after self-heal = %d, want 1", count)
	}
}

func TestStorageReadErrorDegradesToEmpty(t *testing.T) {
	store := NewStore(&failingStorage{getErr: errors.New("io error")})

	if history := store.History("networking"); len(history) != 0 {
		t.Fatalf("History = %v, want empty", history)
	}
	if _, ok := store.BestScore("networking"); ok {
		t.Fatal("BestScore should report no attempts on read error")
	}
}

func TestStorageWriteErrorPropagates(t *testing.T) {
	store := NewStore(&failingStorage{setErr: errors.New("disk full")})

	if _, err := store.Record("networking", 2, 3); err == nil {
		t.Fatal("Record should fail when persistence fails")
	}
}

func TestPersistedShape(t *testing.T) {
	store, storage := newTestStore()
	if _, err := store.Record("networking", 2, 3); err != nil {
		t.Fatal(err)
	}

	raw, err := storage.Get(StorageKey)
	if err != nil {
		t.Fatal(err)
	}
	want := `{"networking":[{"date":"2026-08-31","score":2,"total":3,"accuracy":67}]}`
	if raw != want {
		t.Fatalf("persisted value = %s, want %s", raw, want)
	}
}

func TestLoadsPreviouslyStoredData(t *testing.T) {
	store, storage := newTestStore()

	legacy := `{"networking":[` +
		`{"date":"2025-01-10","score":5,"total":10,"accuracy":50},` +
		`{"date":"2025-01-11","score":8,"total":10,"accuracy":80}]}`
	if err := storage.Set(StorageKey, legacy); err != nil {
		t.Fatal(err)
	}

	history := store.History("networking")
	if len(history) != 2 {
		t.Fatalf("history length = %d, want 2", len(history))
	}
	if history[0].Date != "2025-01-10" || history[1].Accuracy != 80 {
		t.Fatalf("legacy data parsed wrong: %+v", history)
	}
	if best, _ := store.BestScore("networking"); best != 80 {
		t.Fatalf("BestScore = %d, want 80", best)
	}
}

func TestOverallStats(t *testing.T) {
	store, _ := newTestStore()

	if _, err := store.Record("networking", 2, 3); err != nil {
		t.Fatal(err)
	}
	if _, err := store.Record("networking", 3, 3); err != nil {
		t.Fatal(err)
	}
	if _, err := store.Record("cost-optimization", 1, 3); err != nil {
		t.Fatal(err)
	}

	stats := store.OverallStats()
	if stats.TotalQuizzes != 3 {
		t.Fatalf("TotalQuizzes = %d, want 3", stats.TotalQuizzes)
	}
	if stats.CategoriesStudied != 2 {
		t.Fatalf("CategoriesStudied = %d, want 2", stats.CategoriesStudied)
	}
	if stats.TotalScore != 6 || stats.TotalQuestions != 9 {
		t.Fatalf("totals = %d/%d, want 6/9", stats.TotalScore, stats.TotalQuestions)
	}
	if stats.OverallAccuracy != 67 {
		t.Fatalf("OverallAccuracy = %d, want 67", stats.OverallAccuracy)
	}
}
