package main

import (
	"bufio"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/pflag"

	"github.com/vocabrecall/vocabrecall/internal/config"
	"github.com/vocabrecall/vocabrecall/internal/domain"
	"github.com/vocabrecall/vocabrecall/internal/extract"
	"github.com/vocabrecall/vocabrecall/internal/gitsource"
	"github.com/vocabrecall/vocabrecall/internal/importer"
	"github.com/vocabrecall/vocabrecall/internal/session"
	"github.com/vocabrecall/vocabrecall/internal/srs"
	"github.com/vocabrecall/vocabrecall/internal/storage"
)

func main() {
	flags := pflag.NewFlagSet("vocabrecall", pflag.ExitOnError)
	configPath := flags.String("config", "vocabrecall.yaml", "Path to the yaml config file")
	flags.String("db", "vocabrecall.db", "Path to the SQLite database file")
	flags.String("repos_dir", "repos", "Directory for mirrored git sources")
	flags.String("log_level", "info", "Log level: debug, info, warn, error")

	deckName := flags.String("deck", "", "Deck to operate on (created on demand)")
	addSource := flags.String("add-source", "", "Register a document source (directory or git URL) for --deck")
	runSync := flags.Bool("sync", false, "Import new documents from all registered sources")
	importFile := flags.String("import", "", "Import a single document into --deck")
	study := flags.Bool("study", false, "Run a terminal study session")
	allCards := flags.Bool("all", false, "Study every card, not just due ones")
	showStats := flags.Bool("stats", false, "Print deck statistics")
	flags.Parse(os.Args[1:])

	cfg, err := config.Load(*configPath, flags)
	if err != nil {
		fmt.Fprintf(os.Stderr, "vocabrecall: %v\n", err)
		os.Exit(1)
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: cfg.SlogLevel(),
	})))

	db, err := storage.Open(cfg.DBPath)
	if err != nil {
		slog.Error("failed to open database", "path", cfg.DBPath, "error", err)
		os.Exit(1)
	}
	defer db.Close()

	// No linguistic backend ships with the binary; extraction degrades
	// to the regex fallback until one is wired in.
	var tagger extract.Tagger
	pipeline := extract.NewPipeline(tagger, nil, slog.Default())
	imp := importer.New(db, pipeline, cfg.ExtractConfig())
	today := time.Now().UTC().Truncate(24 * time.Hour)

	switch {
	case *addSource != "":
		deckID := mustDeck(db, *deckName)
		sourceType := "local"
		if gitsource.IsGitURL(*addSource) {
			sourceType = "git"
		}
		if _, err := db.InsertSource(*addSource, sourceType, deckID); err != nil {
			slog.Error("failed to add source", "path", *addSource, "error", err)
			os.Exit(1)
		}
		fmt.Printf("Added %s source: %s\n", sourceType, *addSource)

	case *runSync:
		if err := imp.SyncAll(cfg.ReposDir, today); err != nil {
			slog.Error("sync failed", "error", err)
			os.Exit(1)
		}

	case *importFile != "":
		deckID := mustDeck(db, *deckName)
		report, err := imp.ImportFile(*importFile, deckID, today)
		if err != nil {
			slog.Error("import failed", "path", *importFile, "error", err)
			os.Exit(1)
		}
		if report.Candidates == 0 {
			fmt.Println("No vocabulary found in document.")
			return
		}
		fmt.Printf("Imported %d of %d candidates (%s mode).\n",
			report.Inserted, report.Candidates, report.Mode)

	case *study:
		runStudy(db, *deckName, *allCards, today)

	case *showStats:
		deckID := mustDeck(db, *deckName)
		stats, err := db.Stats(deckID, today)
		if err != nil {
			slog.Error("failed to compute stats", "error", err)
			os.Exit(1)
		}
		fmt.Printf("Deck %q: %d cards, %d due, %d mastered.\n",
			*deckName, stats.Total, stats.Due, stats.Mastered)

	default:
		flags.Usage()
	}
}

// mustDeck resolves a deck by name, creating it (and a default folder)
// when missing.
func mustDeck(db *storage.DB, name string) int64 {
	if name == "" {
		fmt.Fprintln(os.Stderr, "vocabrecall: --deck is required")
		os.Exit(1)
	}
	deck, err := db.FindDeckByName(name)
	if err != nil {
		slog.Error("failed to look up deck", "deck", name, "error", err)
		os.Exit(1)
	}
	if deck != nil {
		return deck.ID
	}

	folderID, err := db.CreateFolder("Imported", 0)
	if err != nil {
		slog.Error("failed to create folder", "error", err)
		os.Exit(1)
	}
	deckID, err := db.CreateDeck(folderID, name, "")
	if err != nil {
		slog.Error("failed to create deck", "deck", name, "error", err)
		os.Exit(1)
	}
	slog.Info("created deck", "deck", name, "id", deckID)
	return deckID
}

// runStudy drives an interactive review loop: show front, reveal back,
// read a 0-5 grade, persist the new state. "s" skips a card, "q" ends
// the session between cards without losing persisted reviews.
func runStudy(db *storage.DB, deckName string, allCards bool, today time.Time) {
	var deckID int64
	if deckName != "" {
		deckID = mustDeck(db, deckName)
	}

	cards, err := db.CardsForSession(deckID, !allCards, today)
	if err != nil {
		slog.Error("failed to load session cards", "error", err)
		os.Exit(1)
	}

	var sess *session.Session
	if allCards {
		sess = session.NewFull(cards, today)
	} else {
		sess = session.NewDue(cards, today)
	}
	if sess.Done() {
		fmt.Println("Nothing to review.")
		return
	}
	fmt.Printf("%d cards to review. Grade 0-5, s = skip, q = quit.\n\n", sess.Remaining())

	reader := bufio.NewReader(os.Stdin)
	for !sess.Done() {
		card, _ := sess.Current()
		front := card.Front
		if card.Article != "" {
			front = card.Article + " " + card.Front
		}
		fmt.Printf("[%d left] %s\n", sess.Remaining(), front)
		fmt.Print("  (enter to reveal) ")
		reader.ReadString('\n')
		fmt.Printf("  → %s\n  grade: ", card.Back)

		input, err := reader.ReadString('\n')
		if err != nil {
			break
		}
		switch answer := strings.TrimSpace(input); answer {
		case "q":
			fmt.Printf("Session ended, %d cards left.\n", sess.Remaining())
			return
		case "s", "":
			sess.Skip()
		default:
			grade, err := strconv.Atoi(answer)
			if err != nil {
				fmt.Println("  grade must be 0-5")
				continue
			}
			applyGrade(db, sess, card, srs.Grade(grade), today)
		}
		fmt.Println()
	}
	fmt.Println("Session complete.")
}

func applyGrade(db *storage.DB, sess *session.Session, card domain.Card, grade srs.Grade, today time.Time) {
	state, err := sess.Grade(grade)
	if err != nil {
		fmt.Printf("  %v\n", err)
		return
	}
	entry := domain.ReviewLog{
		CardID:        card.ID,
		Grade:         int(grade),
		EaseAfter:     state.Ease,
		IntervalAfter: state.IntervalDays,
		ReviewedAt:    today,
	}
	if err := db.ApplyReview(card.ID, state, entry); err != nil {
		slog.Error("failed to persist review", "card", card.ID, "error", err)
		os.Exit(1)
	}
	fmt.Printf("  next review in %d day(s)\n", state.IntervalDays)
}
