package progress

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"aws-sap-quiz/models"
	"aws-sap-quiz/utils"
)

const (
	// StorageKey is the well-known key the full progress map lives under.
	// Earlier releases stored under the same key; changing it orphans
	// existing history.
	StorageKey = "aws-sap-quiz-progress"

	// MaxHistoryPerCategory bounds the retained attempts per category.
	// Oldest entries are evicted first. Lifetime attempt counts beyond
	// this window are intentionally lost.
	MaxHistoryPerCategory = 10
)

var ErrInvalidScore = errors.New("invalid score")

// Store keeps the per-category history of completed quiz attempts. Record
// is the sole write path; reads always go back to the storage backend so
// the store itself holds no state worth losing.
type Store struct {
	storage Storage
	now     func() time.Time
}

func NewStore(storage Storage) *Store {
	return &Store{storage: storage, now: time.Now}
}

// load reads the full progress map. Malformed or missing persisted state
// degrades to an empty map; corrupt history must never crash a session.
func (s *Store) load() map[string][]models.AttemptRecord {
	raw, err := s.storage.Get(StorageKey)
	if err != nil {
		utils.LogError("Failed to read progress storage: %v", err)
		return map[string][]models.AttemptRecord{}
	}
	if raw == "" {
		return map[string][]models.AttemptRecord{}
	}

	var progress map[string][]models.AttemptRecord
	if err := json.Unmarshal([]byte(raw), &progress); err != nil {
		utils.LogError("Corrupt progress data, treating as empty: %v", err)
		return map[string][]models.AttemptRecord{}
	}
	if progress == nil {
		progress = map[string][]models.AttemptRecord{}
	}
	return progress
}

// Record appends one completed attempt for the category, evicts beyond the
// retention window, and persists synchronously before returning.
func (s *Store) Record(categoryID string, score, total int) (*models.AttemptRecord, error) {
	if total <= 0 || score < 0 || score > total {
		return nil, fmt.Errorf("%w: score=%d total=%d", ErrInvalidScore, score, total)
	}

	progress := s.load()
	record := models.AttemptRecord{
		Date:     s.now().Format("2006-01-02"),
		Score:    score,
		Total:    total,
		Accuracy: models.AccuracyPercent(score, total),
	}

	history := append(progress[categoryID], record)
	if len(history) > MaxHistoryPerCategory {
		history = history[len(history)-MaxHistoryPerCategory:]
	}
	progress[categoryID] = history

	data, err := json.Marshal(progress)
	if err != nil {
		return nil, fmt.Errorf("failed to encode progress: %w", err)
	}
	if err := s.storage.Set(StorageKey, string(data)); err != nil {
		return nil, fmt.Errorf("failed to persist progress: %w", err)
	}

	utils.LogDB("Recorded attempt: category=%s %d/%d (%d%%), %d retained",
		categoryID, score, total, record.Accuracy, len(history))
	return &record, nil
}

// History returns the retained attempts for a category, oldest first. A
// never-attempted category yields an empty history.
func (s *Store) History(categoryID string) []models.AttemptRecord {
	return s.load()[categoryID]
}

// BestScore returns the highest accuracy across the category's history.
// The second return is false when the category has never been attempted.
func (s *Store) BestScore(categoryID string) (int, bool) {
	history := s.load()[categoryID]
	if len(history) == 0 {
		return 0, false
	}
	best := history[0].Accuracy
	for _, record := range history[1:] {
		if record.Accuracy > best {
			best = record.Accuracy
		}
	}
	return best, true
}

// AttemptCount reports how many attempts are retained for the category.
func (s *Store) AttemptCount(categoryID string) int {
	return len(s.load()[categoryID])
}

// TotalQuizzesCompleted sums retained attempts across every category.
func (s *Store) TotalQuizzesCompleted() int {
	total := 0
	for _, history := range s.load() {
		total += len(history)
	}
	return total
}

// OverallStats aggregates retained history across all categories for the
// study-stats display.
func (s *Store) OverallStats() models.OverallStats {
	var stats models.OverallStats
	for _, history := range s.load() {
		if len(history) == 0 {
			continue
		}
		stats.CategoriesStudied++
		for _, record := range history {
			stats.TotalQuizzes++
			stats.TotalScore += record.Score
			stats.TotalQuestions += record.Total
		}
	}
	stats.OverallAccuracy = models.AccuracyPercent(stats.TotalScore, stats.TotalQuestions)
	return stats
}
