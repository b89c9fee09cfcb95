// Package storage persists folders, decks, cards and review history in
// SQLite. Static statements use plain database/sql; the session-scope
// card queries are composed with squirrel because their filters and
// ordering vary per study mode.
package storage

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/vocabrecall/vocabrecall/internal/domain"
	"github.com/vocabrecall/vocabrecall/internal/srs"
	_ "modernc.org/sqlite" // registers the sqlite driver
)

// DB wraps the SQL database connection.
type DB struct {
	conn *sql.DB
}

// Open creates a database connection and ensures the schema is in place.
func Open(dsn string) (*DB, error) {
	db, err := sql.Open("sqlite", fkDSN(dsn))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}
	return &DB{conn: db}, nil
}

// fkDSN appends the foreign-key pragma to the DSN so the driver enables
// enforcement on every connection the pool opens. A PRAGMA issued with
// Exec reaches only the one connection it happens to run on.
func fkDSN(dsn string) string {
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	return dsn + sep + "_pragma=foreign_keys(1)"
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

// CreateFolder inserts a folder and returns its ID. parentID 0 means a
// top-level folder.
func (db *DB) CreateFolder(name string, parentID int64) (int64, error) {
	parent := sql.NullInt64{Int64: parentID, Valid: parentID != 0}
	res, err := db.conn.Exec(`
		INSERT INTO folders (name, parent_id, created_at)
		VALUES (?, ?, ?)
	`, name, parent, time.Now().UTC())
	if err != nil {
		return 0, fmt.Errorf("failed to insert folder %q: %w", name, err)
	}
	return res.LastInsertId()
}

// ListFolders returns all folders, parents before their children.
func (db *DB) ListFolders() ([]domain.Folder, error) {
	rows, err := db.conn.Query(`SELECT id, parent_id, name FROM folders ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list folders: %w", err)
	}
	defer rows.Close()

	var folders []domain.Folder
	for rows.Next() {
		var f domain.Folder
		var parent sql.NullInt64
		if err := rows.Scan(&f.ID, &parent, &f.Name); err != nil {
			return nil, fmt.Errorf("failed to scan folder row: %w", err)
		}
		f.ParentID = parent.Int64
		folders = append(folders, f)
	}
	return folders, rows.Err()
}

// RenameFolder changes a folder's name.
func (db *DB) RenameFolder(id int64, name string) error {
	res, err := db.conn.Exec(`UPDATE folders SET name = ? WHERE id = ?`, name, id)
	if err != nil {
		return fmt.Errorf("failed to rename folder %d: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("failed to rename folder %d: no such folder", id)
	}
	return nil
}

// DeleteFolder removes a folder; subfolders, decks and their cards go
// with it via the schema's cascades.
func (db *DB) DeleteFolder(id int64) error {
	_, err := db.conn.Exec(`DELETE FROM folders WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete folder %d: %w", id, err)
	}
	return nil
}

// CreateDeck inserts a deck into a folder and returns its ID.
func (db *DB) CreateDeck(folderID int64, name, sourceFilename string) (int64, error) {
	res, err := db.conn.Exec(`
		INSERT INTO decks (folder_id, name, source_filename, created_at)
		VALUES (?, ?, ?, ?)
	`, folderID, name, sourceFilename, time.Now().UTC())
	if err != nil {
		return 0, fmt.Errorf("failed to insert deck %q: %w", name, err)
	}
	return res.LastInsertId()
}

// FindDeckByName looks a deck up by name. Returns nil when absent.
func (db *DB) FindDeckByName(name string) (*domain.Deck, error) {
	var d domain.Deck
	var sourceFilename sql.NullString
	row := db.conn.QueryRow(`
		SELECT id, folder_id, name, source_filename, created_at
		FROM decks WHERE name = ?
	`, name)
	err := row.Scan(&d.ID, &d.FolderID, &d.Name, &sourceFilename, &d.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find deck %q: %w", name, err)
	}
	d.SourceFilename = sourceFilename.String
	return &d, nil
}

// ListDecks returns all decks, oldest first.
func (db *DB) ListDecks() ([]domain.Deck, error) {
	rows, err := db.conn.Query(`
		SELECT id, folder_id, name, source_filename, created_at
		FROM decks ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list decks: %w", err)
	}
	defer rows.Close()

	var decks []domain.Deck
	for rows.Next() {
		var d domain.Deck
		var sourceFilename sql.NullString
		if err := rows.Scan(&d.ID, &d.FolderID, &d.Name, &sourceFilename, &d.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan deck row: %w", err)
		}
		d.SourceFilename = sourceFilename.String
		decks = append(decks, d)
	}
	return decks, rows.Err()
}

// DeleteDeck removes a deck; its cards, review logs and sources go with
// it via the schema's cascades.
func (db *DB) DeleteDeck(id int64) error {
	_, err := db.conn.Exec(`DELETE FROM decks WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete deck %d: %w", id, err)
	}
	return nil
}

// InsertCandidates persists extraction-pipeline candidates as new cards
// in one transaction. Candidates whose content fingerprint already
// exists in the deck are skipped; it returns how many cards were
// actually created. hashFor supplies the fingerprint per candidate.
func (db *DB) InsertCandidates(deckID int64, candidates []domain.Candidate, hashFor func(domain.Candidate) string, today time.Time) (int, error) {
	tx, err := db.conn.Begin()
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var position int
	if err := tx.QueryRow(`
		SELECT COALESCE(MAX(position), 0) FROM cards WHERE deck_id = ?
	`, deckID).Scan(&position); err != nil {
		return 0, fmt.Errorf("failed to read deck positions: %w", err)
	}

	initial := srs.NewState(today)
	inserted := 0
	for _, cand := range candidates {
		hash := hashFor(cand)

		var exists int
		err := tx.QueryRow(`
			SELECT 1 FROM cards WHERE deck_id = ? AND hash = ?
		`, deckID, hash).Scan(&exists)
		if err == nil {
			continue
		}
		if err != sql.ErrNoRows {
			return 0, fmt.Errorf("failed dedup check for %q: %w", cand.Front, err)
		}

		position++
		_, err = tx.Exec(`
			INSERT INTO cards (deck_id, front, back, article, word_type, example,
			                   hash, position, confidence,
			                   interval_days, repetitions, ease, due_date)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`,
			deckID, cand.Front, cand.Back, cand.Article, cand.WordType, cand.Example,
			hash, position, cand.Confidence.String(),
			initial.IntervalDays, initial.Repetitions, initial.Ease, initial.Due,
		)
		if err != nil {
			return 0, fmt.Errorf("failed to insert card %q: %w", cand.Front, err)
		}
		inserted++
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit import: %w", err)
	}
	return inserted, nil
}

// cardColumns is the select list shared by the card queries, in
// scanCard's order.
var cardColumns = []string{
	"id", "deck_id", "front", "back", "article", "word_type", "example",
	"hash", "position", "interval_days", "repetitions", "ease",
	"due_date", "last_reviewed",
}

// CardsForSession loads a deck's cards for a study session. With dueOnly
// set it returns only cards due on or before today, most overdue first
// and lowest ease breaking ties; otherwise every card in insertion
// order. deckID 0 selects across all decks.
func (db *DB) CardsForSession(deckID int64, dueOnly bool, today time.Time) ([]domain.Card, error) {
	q := sq.Select(cardColumns...).From("cards")
	if deckID != 0 {
		q = q.Where(sq.Eq{"deck_id": deckID})
	}
	if dueOnly {
		q = q.Where(sq.LtOrEq{"due_date": today}).
			OrderBy("due_date ASC", "ease ASC", "position ASC")
	} else {
		q = q.OrderBy("deck_id ASC", "position ASC")
	}

	query, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build card query: %w", err)
	}

	rows, err := db.conn.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query session cards: %w", err)
	}
	defer rows.Close()

	var cards []domain.Card
	for rows.Next() {
		card, err := scanCard(rows)
		if err != nil {
			return nil, err
		}
		cards = append(cards, card)
	}
	return cards, rows.Err()
}

func scanCard(rows *sql.Rows) (domain.Card, error) {
	var c domain.Card
	var lastReviewed sql.NullTime
	err := rows.Scan(
		&c.ID, &c.DeckID, &c.Front, &c.Back, &c.Article, &c.WordType,
		&c.Example, &c.Hash, &c.Position,
		&c.State.IntervalDays, &c.State.Repetitions, &c.State.Ease,
		&c.State.Due, &lastReviewed,
	)
	if err != nil {
		return domain.Card{}, fmt.Errorf("failed to scan card row: %w", err)
	}
	c.State.LastReviewed = lastReviewed.Time
	return c, nil
}

// ApplyReview stores a card's new repetition state and appends the
// review log in one transaction, so a crash can never record a review
// without its state change (or the other way round).
func (db *DB) ApplyReview(cardID int64, state srs.State, entry domain.ReviewLog) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		UPDATE cards
		SET interval_days = ?, repetitions = ?, ease = ?, due_date = ?, last_reviewed = ?
		WHERE id = ?
	`,
		state.IntervalDays, state.Repetitions, state.Ease, state.Due,
		sql.NullTime{Time: state.LastReviewed, Valid: !state.LastReviewed.IsZero()},
		cardID,
	)
	if err != nil {
		return fmt.Errorf("failed to update card %d state: %w", cardID, err)
	}

	_, err = tx.Exec(`
		INSERT INTO review_logs (card_id, grade, ease_after, interval_after, reviewed_at)
		VALUES (?, ?, ?, ?, ?)
	`, entry.CardID, entry.Grade, entry.EaseAfter, entry.IntervalAfter, entry.ReviewedAt)
	if err != nil {
		return fmt.Errorf("failed to insert review log for card %d: %w", cardID, err)
	}

	return tx.Commit()
}

// DeckStats summarizes a deck's scheduling state.
type DeckStats struct {
	Total    int
	Due      int
	Mastered int // five or more consecutive successful reviews
}

// Stats computes quick counts for a deck.
func (db *DB) Stats(deckID int64, today time.Time) (DeckStats, error) {
	var s DeckStats
	err := db.conn.QueryRow(`
		SELECT COUNT(*),
		       COALESCE(SUM(due_date <= ?), 0),
		       COALESCE(SUM(repetitions >= 5), 0)
		FROM cards WHERE deck_id = ?
	`, today, deckID).Scan(&s.Total, &s.Due, &s.Mastered)
	if err != nil {
		return DeckStats{}, fmt.Errorf("failed to compute stats for deck %d: %w", deckID, err)
	}
	return s, nil
}

// Source is a document origin feeding a deck: a local directory or a
// git repository URL.
type Source struct {
	ID          int64
	Path        string
	Type        string // "local" or "git"
	DeckID      int64
	LastScanned sql.NullTime
}

// InsertSource registers a document source and returns its ID.
func (db *DB) InsertSource(path, sourceType string, deckID int64) (int64, error) {
	res, err := db.conn.Exec(`
		INSERT INTO sources (path, type, deck_id)
		VALUES (?, ?, ?)
	`, path, sourceType, deckID)
	if err != nil {
		return 0, fmt.Errorf("failed to insert source %s: %w", path, err)
	}
	return res.LastInsertId()
}

// GetAllSources returns every registered document source.
func (db *DB) GetAllSources() ([]Source, error) {
	rows, err := db.conn.Query(`
		SELECT id, path, type, deck_id, last_scanned FROM sources
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to get sources: %w", err)
	}
	defer rows.Close()

	var sources []Source
	for rows.Next() {
		var s Source
		if err := rows.Scan(&s.ID, &s.Path, &s.Type, &s.DeckID, &s.LastScanned); err != nil {
			return nil, fmt.Errorf("failed to scan source row: %w", err)
		}
		sources = append(sources, s)
	}
	return sources, rows.Err()
}

// DeleteSource removes a source registration. Its cards stay.
func (db *DB) DeleteSource(id int64) error {
	_, err := db.conn.Exec(`DELETE FROM sources WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete source %d: %w", id, err)
	}
	return nil
}

// UpdateSourceLastScanned stamps a source after a successful sync.
func (db *DB) UpdateSourceLastScanned(id int64) error {
	_, err := db.conn.Exec(`
		UPDATE sources SET last_scanned = ? WHERE id = ?
	`, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("failed to update last scanned for source %d: %w", id, err)
	}
	return nil
}
