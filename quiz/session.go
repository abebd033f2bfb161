package quiz

import (
	"fmt"
	"math/rand"
	"time"

	"aws-sap-quiz/models"
	"aws-sap-quiz/utils"
)

// Catalog is the read-only question source the engine pulls from.
type Catalog interface {
	GetCategory(id string) (*models.Category, error)
	ListCategoryIDs() []string
}

// Recorder persists completed attempts. Satisfied by *progress.Store.
type Recorder interface {
	Record(categoryID string, score, total int) (*models.AttemptRecord, error)
}

// Engine drives quiz sessions against a catalog and records finished
// attempts through the progress store. All operations are synchronous;
// the engine expects a single caller at a time.
type Engine struct {
	catalog Catalog
	store   Recorder

	// Shuffle enables a uniform random permutation of the question order
	// at session start. Off by default to preserve authored ordering.
	Shuffle bool

	rng *rand.Rand
}

func NewEngine(catalog Catalog, store Recorder) *Engine {
	return &Engine{
		catalog: catalog,
		store:   store,
		rng:     rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Reseed replaces the shuffle RNG source, mainly to make shuffled runs
// reproducible.
func (e *Engine) Reseed(seed int64) {
	e.rng = rand.New(rand.NewSource(seed))
}

const noSelection = -1

// Session is one in-progress attempt at a category's question set. It holds
// a snapshot of the questions taken at start, so catalog changes cannot
// touch an in-flight quiz.
type Session struct {
	CategoryID string

	questions []models.Question
	current   int
	selected  int
	submitted bool
	answers   []models.AnswerOutcome
	closed    bool
}

// Start begins a new session for the given category.
func (e *Engine) Start(categoryID string) (*Session, error) {
	category, err := e.catalog.GetCategory(categoryID)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrCategoryNotFound, categoryID, err)
	}
	if len(category.Questions) == 0 {
		return nil, fmt.Errorf("%w: %q", ErrNoQuestions, categoryID)
	}

	// Deep copy: the Options slices must not alias the catalog's backing
	// arrays, or a catalog mutation could rewrite an in-flight question.
	questions := make([]models.Question, len(category.Questions))
	copy(questions, category.Questions)
	for i := range questions {
		options := make([]string, len(questions[i].Options))
		copy(options, questions[i].Options)
		questions[i].Options = options
	}

	if e.Shuffle {
		e.rng.Shuffle(len(questions), func(i, j int) {
			questions[i], questions[j] = questions[j], questions[i]
		})
	}

	utils.LogQuiz("Session started: category=%s questions=%d shuffle=%t",
		categoryID, len(questions), e.Shuffle)

	return &Session{
		CategoryID: categoryID,
		questions:  questions,
		selected:   noSelection,
		answers:    make([]models.AnswerOutcome, 0, len(questions)),
	}, nil
}

// Restart discards the session and begins a fresh one for the same category.
func (e *Engine) Restart(session *Session) (*Session, error) {
	return e.Start(session.CategoryID)
}

// Advance moves to the next question, or finalizes the session after the
// last one. The returned FinalResult is nil while questions remain. Once a
// result has been returned the session is closed for good.
func (e *Engine) Advance(session *Session) (*models.FinalResult, error) {
	if session.closed {
		return nil, ErrSessionClosed
	}
	if !session.submitted {
		return nil, ErrNotSubmitted
	}

	if session.current < len(session.questions)-1 {
		session.current++
		session.selected = noSelection
		session.submitted = false
		return nil, nil
	}

	return e.finalize(session)
}

func (e *Engine) finalize(session *Session) (*models.FinalResult, error) {
	score := 0
	for _, answer := range session.answers {
		if answer.IsCorrect {
			score++
		}
	}
	total := len(session.questions)

	result := &models.FinalResult{
		CategoryID: session.CategoryID,
		Score:      score,
		Total:      total,
		Accuracy:   models.AccuracyPercent(score, total),
		Answers:    session.Answers(),
	}
	session.closed = true

	if _, err := e.store.Record(session.CategoryID, score, total); err != nil {
		return nil, fmt.Errorf("failed to record attempt: %w", err)
	}

	utils.LogQuiz("Session finished: category=%s score=%d/%d accuracy=%d%%",
		session.CategoryID, score, total, result.Accuracy)
	return result, nil
}

// Select marks an option for the current question. Reselecting before
// submission is allowed; the most recent choice wins. Once the answer has
// been submitted the selection is locked until Advance.
func (s *Session) Select(option int) error {
	if s.closed {
		return ErrSessionClosed
	}
	if s.submitted {
		return ErrAlreadySubmitted
	}
	if option < 0 || option >= len(s.questions[s.current].Options) {
		return fmt.Errorf("%w: %d", ErrInvalidOption, option)
	}
	s.selected = option
	return nil
}

// Submit locks in the current selection and records its outcome. The
// returned outcome carries the correct index and verdict so the caller can
// show the explanation and highlighting.
func (s *Session) Submit() (*models.AnswerOutcome, error) {
	if s.closed {
		return nil, ErrSessionClosed
	}
	if s.submitted {
		return nil, ErrAlreadySubmitted
	}
	if s.selected == noSelection {
		return nil, ErrNoSelection
	}

	question := s.questions[s.current]
	outcome := models.AnswerOutcome{
		QuestionID: question.ID,
		Selected:   s.selected,
		Correct:    question.Correct,
		IsCorrect:  s.selected == question.Correct,
	}
	s.answers = append(s.answers, outcome)
	s.submitted = true
	return &outcome, nil
}

// CurrentQuestion returns the question at the session cursor, or nil once
// the session is closed.
func (s *Session) CurrentQuestion() *models.Question {
	if s.closed {
		return nil
	}
	return &s.questions[s.current]
}

// CurrentIndex is the 0-based position of the current question.
func (s *Session) CurrentIndex() int { return s.current }

// Total is the number of questions in the session.
func (s *Session) Total() int { return len(s.questions) }

// Selected reports the pending selection for the current question.
func (s *Session) Selected() (int, bool) {
	if s.selected == noSelection {
		return 0, false
	}
	return s.selected, true
}

// Submitted reports whether the current question's answer is locked in.
func (s *Session) Submitted() bool { return s.submitted }

// Closed reports whether the session has emitted its final result.
func (s *Session) Closed() bool { return s.closed }

// Answers returns a copy of the outcomes recorded so far, in question order.
func (s *Session) Answers() []models.AnswerOutcome {
	answers := make([]models.AnswerOutcome, len(s.answers))
	copy(answers, s.answers)
	return answers
}
