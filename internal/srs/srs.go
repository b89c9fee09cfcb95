// Package srs implements the SM-2 spaced-repetition algorithm.
//
// Review is a pure function: the caller supplies the review date, so the
// same (state, grade, today) always produces the same next state.
package srs

import (
	"errors"
	"fmt"
	"math"
	"time"
)

// Sentinel errors. Check with errors.Is.
var (
	ErrInvalidGrade = errors.New("srs: grade out of range 0-5")
	ErrInvalidState = errors.New("srs: malformed repetition state")
)

// MinEase is the lower bound of the ease factor. SM-2 never lets a card's
// ease drop below it, no matter how often the card lapses.
const MinEase = 1.3

// Grade is the user's self-assessment of a review.
// 0-2 count as a lapse, 3-5 as a success with increasing confidence.
type Grade int

const (
	Blackout  Grade = iota // no recall at all
	Wrong                  // wrong, but the answer felt familiar
	AlmostHad              // wrong, answer seemed easy to recall
	Hard                   // correct with serious difficulty
	Good                   // correct after some hesitation
	Easy                   // perfect recall
)

// IsValid reports whether g is within the SM-2 grade scale.
func (g Grade) IsValid() bool {
	return g >= Blackout && g <= Easy
}

// Success reports whether g counts as a successful recall.
func (g Grade) Success() bool {
	return g >= Hard
}

// State is the per-card repetition state consumed and produced by Review.
type State struct {
	IntervalDays int
	Repetitions  int
	Ease         float64
	Due          time.Time
	LastReviewed time.Time // zero before the first review
}

// NewState returns the scheduling state for a freshly created card:
// due immediately, default ease 2.5.
func NewState(today time.Time) State {
	return State{Ease: 2.5, Due: today}
}

// Validate rejects states that could only come from corrupted persistence.
// Review refuses to compute on them rather than guess a correction.
func (s State) Validate() error {
	if s.Ease < MinEase {
		return fmt.Errorf("%w: ease %.2f below %.1f", ErrInvalidState, s.Ease, MinEase)
	}
	if s.IntervalDays < 0 {
		return fmt.Errorf("%w: negative interval %d", ErrInvalidState, s.IntervalDays)
	}
	if s.Repetitions < 0 {
		return fmt.Errorf("%w: negative repetitions %d", ErrInvalidState, s.Repetitions)
	}
	return nil
}

// Review applies one SM-2 review to the state and returns the next state.
// The input is not mutated.
//
// A lapse (grade < 3) resets repetitions and schedules the card for
// tomorrow without touching the ease factor. A success grows the interval
// 1 → 6 → round(interval*ease) and nudges the ease by the classic SM-2
// quality term, clamped at MinEase.
func Review(state State, grade Grade, today time.Time) (State, error) {
	if !grade.IsValid() {
		return State{}, fmt.Errorf("%w: %d", ErrInvalidGrade, int(grade))
	}
	if err := state.Validate(); err != nil {
		return State{}, err
	}

	next := state
	next.LastReviewed = today

	if !grade.Success() {
		next.Repetitions = 0
		next.IntervalDays = 1
		next.Due = today.AddDate(0, 0, 1)
		return next, nil
	}

	next.Repetitions = state.Repetitions + 1

	q := float64(grade)
	ease := state.Ease + (0.1 - (5-q)*(0.08+(5-q)*0.02))
	next.Ease = math.Max(MinEase, ease)

	switch next.Repetitions {
	case 1:
		next.IntervalDays = 1
	case 2:
		next.IntervalDays = 6
	default:
		next.IntervalDays = int(math.Round(float64(state.IntervalDays) * next.Ease))
	}
	next.Due = today.AddDate(0, 0, next.IntervalDays)

	return next, nil
}
