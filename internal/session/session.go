// Package session drives a single study session over a deck's cards.
//
// The controller owns selection and ordering only. Grading goes through
// the srs package, and the resulting state is handed back to the caller
// for persistence — the session never touches storage itself, so a
// cancelled session leaves already-persisted reviews intact.
package session

import (
	"sort"
	"time"

	"github.com/vocabrecall/vocabrecall/internal/domain"
	"github.com/vocabrecall/vocabrecall/internal/srs"
)

// Session is a fixed, ordered queue of cards under review. Not safe for
// concurrent use; a card's reviews happen one at a time anyway.
type Session struct {
	queue []domain.Card
	pos   int
	today time.Time
}

// NewDue builds a due-card session: every card with a due date on or
// before today, ordered by due date ascending, then ease ascending so
// the least-mastered of equally due cards comes up first. The sort is
// stable, so equally ranked cards keep their input order.
func NewDue(cards []domain.Card, today time.Time) *Session {
	var queue []domain.Card
	for _, c := range cards {
		if !c.State.Due.After(today) {
			queue = append(queue, c)
		}
	}
	sort.SliceStable(queue, func(i, j int) bool {
		di, dj := queue[i].State.Due, queue[j].State.Due
		if !di.Equal(dj) {
			return di.Before(dj)
		}
		return queue[i].State.Ease < queue[j].State.Ease
	})
	return &Session{queue: queue, today: today}
}

// NewFull builds an all-card session over the cards in their given
// (insertion) order, ignoring due dates.
func NewFull(cards []domain.Card, today time.Time) *Session {
	queue := make([]domain.Card, len(cards))
	copy(queue, cards)
	return &Session{queue: queue, today: today}
}

// Current returns the card up for review. ok is false once the session
// is exhausted.
func (s *Session) Current() (card domain.Card, ok bool) {
	if s.pos >= len(s.queue) {
		return domain.Card{}, false
	}
	return s.queue[s.pos], true
}

// Grade scores the current card, advances the queue, and returns the
// updated repetition state for the caller to persist. The session's own
// copy of the card is updated too, so Current never shows stale state.
func (s *Session) Grade(grade srs.Grade) (srs.State, error) {
	card, ok := s.Current()
	if !ok {
		return srs.State{}, ErrSessionDone
	}
	next, err := srs.Review(card.State, grade, s.today)
	if err != nil {
		return srs.State{}, err
	}
	s.queue[s.pos].State = next
	s.pos++
	return next, nil
}

// Skip advances past the current card without grading it.
func (s *Session) Skip() {
	if s.pos < len(s.queue) {
		s.pos++
	}
}

// Remaining returns how many cards are still queued, the current card
// included.
func (s *Session) Remaining() int {
	return len(s.queue) - s.pos
}

// Done reports whether every queued card has been handled.
func (s *Session) Done() bool {
	return s.pos >= len(s.queue)
}

// Total returns the session's initial queue length.
func (s *Session) Total() int {
	return len(s.queue)
}
