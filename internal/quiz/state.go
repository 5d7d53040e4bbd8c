package quiz

import (
	"fmt"
	"strconv"
	"strings"
)

// The funnel is a linear run of questions with one mini-game checkpoint,
// then email capture, optional challenge setup, and results. The step URL
// parameter is the single source of truth on (re)load; the session
// snapshot only mirrors answers, email and game flags, never position.

type Phase int

const (
	PhaseQuestion Phase = iota
	PhaseGame
	PhaseEmailCapture
	PhaseChallengeSetup
	PhaseResults
)

func (p Phase) String() string {
	switch p {
	case PhaseQuestion:
		return "question"
	case PhaseGame:
		return "game"
	case PhaseEmailCapture:
		return "email"
	case PhaseChallengeSetup:
		return "challenge"
	case PhaseResults:
		return "results"
	}
	return "question"
}

// State is the current display mode. QuestionIndex is meaningful for
// PhaseQuestion and PhaseGame.
type State struct {
	Phase         Phase
	QuestionIndex int
}

// Snapshot is what the session mirror persists between requests.
type Snapshot struct {
	Answers       map[int]Answer `json:"answers"`
	Email         string         `json:"email"`
	GameCompleted bool           `json:"gameCompleted"`
	BadgeEarned   bool           `json:"badgeEarned"`
}

func emptySnapshot() Snapshot {
	return Snapshot{Answers: map[int]Answer{}}
}

// EncodeStep renders a state as its step URL value.
func EncodeStep(s State) string {
	switch s.Phase {
	case PhaseGame:
		return "game"
	case PhaseEmailCapture:
		return "email"
	case PhaseChallengeSetup:
		return "challenge"
	case PhaseResults:
		return "results"
	default:
		i := s.QuestionIndex
		if i < 0 || i >= len(Questions) {
			i = 0
		}
		return fmt.Sprintf("question_%d", Questions[i].ID)
	}
}

// DeriveState reconstructs a state from the step URL value and the session
// snapshot. An empty step is a fresh entry: the snapshot is cleared and
// the funnel starts at the first question. A step naming a nonexistent
// question id also resets, as a guard against malformed deep links.
// The second return value is the snapshot to persist.
func DeriveState(step string, snap Snapshot) (State, Snapshot) {
	if snap.Answers == nil {
		snap.Answers = map[int]Answer{}
	}

	if step == "" {
		return State{Phase: PhaseQuestion}, emptySnapshot()
	}

	switch step {
	case "game":
		return State{Phase: PhaseGame, QuestionIndex: GameIndex()}, snap
	case "email":
		return State{Phase: PhaseEmailCapture, QuestionIndex: len(Questions) - 1}, snap
	case "challenge":
		return State{Phase: PhaseChallengeSetup, QuestionIndex: len(Questions) - 1}, snap
	case "results":
		return State{Phase: PhaseResults, QuestionIndex: len(Questions) - 1}, snap
	}

	if id, ok := strings.CutPrefix(step, "question_"); ok {
		if n, err := strconv.Atoi(id); err == nil {
			if idx, found := QuestionByID(n); found {
				return State{Phase: PhaseQuestion, QuestionIndex: idx}, snap
			}
		}
	}

	// Unrecognized step value: reset answers and start over.
	return State{Phase: PhaseQuestion}, emptySnapshot()
}

// Advance computes the next state after the user confirms the current one.
func Advance(s State, snap Snapshot) State {
	switch s.Phase {
	case PhaseQuestion:
		if s.QuestionIndex == GameIndex() && !snap.GameCompleted {
			return State{Phase: PhaseGame, QuestionIndex: s.QuestionIndex}
		}
		if s.QuestionIndex+1 < len(Questions) {
			return State{Phase: PhaseQuestion, QuestionIndex: s.QuestionIndex + 1}
		}
		return State{Phase: PhaseEmailCapture, QuestionIndex: s.QuestionIndex}
	case PhaseGame:
		// Back to the same question whichever option was picked.
		return State{Phase: PhaseQuestion, QuestionIndex: s.QuestionIndex}
	case PhaseEmailCapture:
		return State{Phase: PhaseChallengeSetup, QuestionIndex: s.QuestionIndex}
	case PhaseChallengeSetup:
		// Submit and skip are equivalent transitions.
		return State{Phase: PhaseResults, QuestionIndex: s.QuestionIndex}
	default:
		return s
	}
}

// Back mirrors Advance in reverse, including re-entering the game when
// stepping back over the checkpoint after it was completed.
func Back(s State, snap Snapshot) State {
	switch s.Phase {
	case PhaseResults:
		return State{Phase: PhaseChallengeSetup, QuestionIndex: s.QuestionIndex}
	case PhaseChallengeSetup:
		return State{Phase: PhaseEmailCapture, QuestionIndex: s.QuestionIndex}
	case PhaseEmailCapture:
		return State{Phase: PhaseQuestion, QuestionIndex: len(Questions) - 1}
	case PhaseGame:
		if s.QuestionIndex > 0 {
			return State{Phase: PhaseQuestion, QuestionIndex: s.QuestionIndex - 1}
		}
		return State{Phase: PhaseQuestion}
	default:
		if s.QuestionIndex == GameIndex() && snap.GameCompleted {
			return State{Phase: PhaseGame, QuestionIndex: s.QuestionIndex}
		}
		if s.QuestionIndex > 0 {
			return State{Phase: PhaseQuestion, QuestionIndex: s.QuestionIndex - 1}
		}
		return State{Phase: PhaseQuestion}
	}
}

// SetAnswer records an answer in the snapshot. Unknown question ids are
// rejected so a stale client cannot grow the map without bound.
func SetAnswer(snap Snapshot, questionID int, a Answer) (Snapshot, error) {
	if _, ok := QuestionByID(questionID); !ok {
		return snap, fmt.Errorf("unknown question id %d", questionID)
	}
	if snap.Answers == nil {
		snap.Answers = map[int]Answer{}
	}
	snap.Answers[questionID] = a
	return snap, nil
}

// AnswerGame records the mini-game outcome. The badge is earned only for
// the option flagged correct; either way the game counts as completed.
func AnswerGame(snap Snapshot, optionID string) (Snapshot, bool, error) {
	for _, o := range GameOptions {
		if o.ID == optionID {
			snap.GameCompleted = true
			if o.Correct {
				snap.BadgeEarned = true
			}
			return snap, o.Correct, nil
		}
	}
	return snap, false, fmt.Errorf("unknown game option %q", optionID)
}

// TotalSteps counts questions plus the game, email, challenge and results
// pseudo-steps.
func TotalSteps() int {
	return len(Questions) + 4
}

// stepIndex assigns every state a position on the progress bar. Questions
// after the checkpoint shift by one to make room for the game.
func stepIndex(s State) int {
	switch s.Phase {
	case PhaseGame:
		return GameIndex() + 1
	case PhaseEmailCapture:
		return len(Questions) + 1
	case PhaseChallengeSetup:
		return len(Questions) + 2
	case PhaseResults:
		return len(Questions) + 3
	default:
		if s.QuestionIndex > GameIndex() {
			return s.QuestionIndex + 1
		}
		return s.QuestionIndex
	}
}

// ProgressPercent is the funnel position shown to the user, clamped to
// [0,100].
func ProgressPercent(s State) int {
	p := stepIndex(s) * 100 / TotalSteps()
	if p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}
	return p
}
