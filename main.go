package main

import (
	"bufio"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/joho/godotenv"

	"aws-sap-quiz/catalog"
	"aws-sap-quiz/db"
	"aws-sap-quiz/models"
	"aws-sap-quiz/progress"
	"aws-sap-quiz/quiz"
	"aws-sap-quiz/utils"
)

func main() {
	// Set up logging with timestamps
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)
	utils.LogStartup("AWS SAP study quiz starting...")

	if err := godotenv.Load(); err == nil {
		utils.LogStartup("Loaded configuration from .env")
	}

	dbPath := utils.GetEnvOrDefault("DB_PATH", "./quiz-progress.db")
	utils.LogStartup("Using database path: %s", dbPath)
	shuffle := utils.GetEnvBool("QUIZ_SHUFFLE", false)

	content, err := catalog.Load()
	if err != nil {
		log.Fatalf("[FATAL] Failed to load content catalog: %v", err)
	}

	database, err := db.InitDB(dbPath)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize storage: %v", err)
	}

	// Close the database cleanly on Ctrl-C
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-c
		utils.LogShutdown("Received shutdown signal, closing database...")
		if err := database.Close(); err != nil {
			utils.LogError("Error closing database: %v", err)
		}
		os.Exit(0)
	}()

	store := progress.NewStore(database)
	engine := quiz.NewEngine(content, store)
	engine.Shuffle = shuffle
	if seed := utils.GetEnvInt("QUIZ_SEED", 0); seed != 0 {
		engine.Reseed(int64(seed))
		utils.LogStartup("Using fixed shuffle seed: %d", seed)
	}

	app := &app{
		catalog: content,
		store:   store,
		engine:  engine,
		input:   bufio.NewScanner(os.Stdin),
	}
	app.run()

	utils.LogShutdown("Closing database...")
	if err := database.Close(); err != nil {
		utils.LogError("Error closing database: %v", err)
	}
}

// app owns the terminal UI. All rendering and input handling lives here;
// the engine and store stay free of presentation concerns.
type app struct {
	catalog *catalog.Catalog
	store   *progress.Store
	engine  *quiz.Engine
	input   *bufio.Scanner
}

func (a *app) run() {
	for {
		a.showOverallStats()
		ids := a.showCategoryMenu()

		fmt.Print("\nPick a category number, 's <query>' to search documents, or 'q' to quit: ")
		line, ok := a.readLine()
		if !ok {
			return
		}

		switch {
		case line == "q":
			return
		case strings.HasPrefix(line, "s "):
			a.searchDocuments(strings.TrimPrefix(line, "s "))
		default:
			n, err := strconv.Atoi(line)
			if err != nil || n < 1 || n > len(ids) {
				fmt.Println("Please enter a valid category number.")
				continue
			}
			a.runQuiz(ids[n-1])
		}
	}
}

func (a *app) showOverallStats() {
	stats := a.store.OverallStats()

	fmt.Println("\n=== 📚 Study Statistics ===")
	if stats.TotalQuizzes == 0 {
		fmt.Println("No quizzes taken yet. Pick a category to get started!")
		return
	}
	fmt.Printf("Quizzes taken:      %d\n", stats.TotalQuizzes)
	fmt.Printf("Average accuracy:   %d%%\n", stats.OverallAccuracy)
	fmt.Printf("Categories studied: %d\n", stats.CategoriesStudied)
	fmt.Printf("Correct answers:    %d/%d\n", stats.TotalScore, stats.TotalQuestions)
}

func (a *app) showCategoryMenu() []string {
	ids := a.catalog.ListCategoryIDs()

	fmt.Println("\n=== Categories ===")
	for i, id := range ids {
		category, err := a.catalog.GetCategory(id)
		if err != nil {
			continue
		}
		line := fmt.Sprintf("%2d. %s %s (%d questions)",
			i+1, category.Icon, category.Title, len(category.Questions))
		if best, ok := a.store.BestScore(id); ok {
			line += fmt.Sprintf(" — 🏆 best %d%%, %d attempts", best, a.store.AttemptCount(id))
		}
		fmt.Println(line)
	}
	return ids
}

func (a *app) searchDocuments(query string) {
	results := a.catalog.SearchDocuments(query)
	if len(results) == 0 {
		fmt.Printf("No documents match %q.\n", query)
		return
	}
	fmt.Printf("\n%d document(s) matching %q:\n", len(results), query)
	for _, doc := range results {
		fmt.Printf("  [%s] %s (%s)\n", doc.Category, doc.Title, doc.File)
	}
}

func (a *app) runQuiz(categoryID string) {
	session, err := a.engine.Start(categoryID)
	if err != nil {
		utils.LogError("Failed to start quiz: %v", err)
		return
	}

	for {
		result, err := a.playSession(session)
		if err != nil {
			utils.LogError("Quiz aborted: %v", err)
			return
		}
		if result == nil {
			// input closed mid-quiz
			return
		}

		a.showResults(result)
		a.showHistory(categoryID)

		fmt.Print("\nPress 'r' to retry this category, anything else for the menu: ")
		line, ok := a.readLine()
		if !ok || line != "r" {
			return
		}
		session, err = a.engine.Restart(session)
		if err != nil {
			utils.LogError("Failed to restart quiz: %v", err)
			return
		}
	}
}

func (a *app) playSession(session *quiz.Session) (*models.FinalResult, error) {
	for {
		question := session.CurrentQuestion()
		fmt.Printf("\n--- Question %d/%d ---\n", session.CurrentIndex()+1, session.Total())
		fmt.Println(question.Question)
		for i, option := range question.Options {
			fmt.Printf("  %d) %s\n", i+1, option)
		}

		outcome, ok := a.askAnswer(session)
		if !ok {
			return nil, nil
		}

		if outcome.IsCorrect {
			fmt.Println("\n✅ Correct!")
		} else {
			fmt.Printf("\n❌ Incorrect. The correct answer was %d) %s\n",
				outcome.Correct+1, question.Options[outcome.Correct])
		}
		fmt.Printf("💡 %s\n", question.Explanation)

		fmt.Print("\nPress Enter to continue...")
		if _, ok := a.readLine(); !ok {
			return nil, nil
		}

		result, err := a.engine.Advance(session)
		if err != nil {
			return nil, err
		}
		if result != nil {
			return result, nil
		}
	}
}

func (a *app) askAnswer(session *quiz.Session) (*models.AnswerOutcome, bool) {
	for {
		fmt.Print("Your answer (1-4): ")
		line, ok := a.readLine()
		if !ok {
			return nil, false
		}
		n, err := strconv.Atoi(line)
		if err != nil {
			fmt.Println("Please enter a number between 1 and 4.")
			continue
		}
		if err := session.Select(n - 1); err != nil {
			fmt.Println("Please enter a number between 1 and 4.")
			continue
		}
		outcome, err := session.Submit()
		if err != nil {
			utils.LogError("Failed to submit answer: %v", err)
			continue
		}
		return outcome, true
	}
}

func (a *app) showResults(result *models.FinalResult) {
	fmt.Println("\n=== 🎯 Results ===")
	fmt.Printf("Score:    %d/%d\n", result.Score, result.Total)
	fmt.Printf("Accuracy: %d%%\n", result.Accuracy)

	switch {
	case result.Accuracy >= 90:
		fmt.Println("🌟 Excellent! Near-perfect understanding — you're well on track for the SAP exam.")
	case result.Accuracy >= 70:
		fmt.Println("👍 Good work! The fundamentals are in place. Keep pushing for more.")
	case result.Accuracy >= 50:
		fmt.Println("📚 Not bad. A bit more study should raise your understanding further.")
	default:
		fmt.Println("💪 Plenty of room to grow. Review the study documents and try again!")
	}
}

func (a *app) showHistory(categoryID string) {
	history := a.store.History(categoryID)
	if len(history) == 0 {
		return
	}

	fmt.Printf("\n📊 Recent attempts (last %d):\n", progress.MaxHistoryPerCategory)
	// newest first
	for i := len(history) - 1; i >= 0; i-- {
		record := history[i]
		marker := "  "
		if i == len(history)-1 {
			marker = "🎯"
		}
		fmt.Printf("%s %s  %d/%d correct  %d%%\n",
			marker, record.Date, record.Score, record.Total, record.Accuracy)
	}
}

func (a *app) readLine() (string, bool) {
	if !a.input.Scan() {
		return "", false
	}
	return strings.TrimSpace(a.input.Text()), true
}
