package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"

	"glowcheck/internal/quiz"
	"glowcheck/pkg/logger"
)

const quizSessionKey = "quiz_snapshot"

// QuizHandler exposes the quiz funnel state machine. The step query value
// is the single source of truth for position; the cookie session mirrors
// answers, email and game flags only, so any step reached by URL still has
// the user's prior answers available.
type QuizHandler struct {
	log *logger.Logger
}

func NewQuizHandler(log *logger.Logger) *QuizHandler {
	return &QuizHandler{log: log}
}

type gameOptionView struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

// Definition handles GET /api/quiz.
func (h *QuizHandler) Definition(c *gin.Context) {
	options := make([]gameOptionView, 0, len(quiz.GameOptions))
	for _, o := range quiz.GameOptions {
		options = append(options, gameOptionView{ID: o.ID, Label: o.Label})
	}

	c.JSON(http.StatusOK, gin.H{
		"questions":  quiz.Questions,
		"game":       gin.H{"prompt": quiz.GamePrompt, "options": options},
		"totalSteps": quiz.TotalSteps(),
	})
}

// State handles GET /api/quiz/state. Without a step parameter this is a
// fresh entry: persisted answers are cleared and the funnel starts over.
func (h *QuizHandler) State(c *gin.Context) {
	snap := h.loadSnapshot(c)

	state, snap := quiz.DeriveState(c.Query("step"), snap)
	h.saveSnapshot(c, snap)

	h.respondState(c, state, snap)
}

// Advance handles POST /api/quiz/advance, Back POST /api/quiz/back. Both
// re-derive position from the submitted step so a stale tab cannot desync
// the funnel.
func (h *QuizHandler) Advance(c *gin.Context) {
	h.move(c, quiz.Advance)
}

func (h *QuizHandler) Back(c *gin.Context) {
	h.move(c, quiz.Back)
}

func (h *QuizHandler) move(c *gin.Context, step func(quiz.State, quiz.Snapshot) quiz.State) {
	var req struct {
		Step string `json:"step"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		errorJSON(c, http.StatusBadRequest, "step is required")
		return
	}

	snap := h.loadSnapshot(c)
	state, snap := quiz.DeriveState(req.Step, snap)
	state = step(state, snap)
	h.saveSnapshot(c, snap)

	h.respondState(c, state, snap)
}

type answerRequest struct {
	QuestionID int         `json:"questionId"`
	Answer     quiz.Answer `json:"answer"`
}

// Answer handles POST /api/quiz/answer. Every change is persisted to the
// session immediately.
func (h *QuizHandler) Answer(c *gin.Context) {
	var req answerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorJSON(c, http.StatusBadRequest, "questionId and answer are required")
		return
	}

	snap, err := quiz.SetAnswer(h.loadSnapshot(c), req.QuestionID, req.Answer)
	if err != nil {
		errorJSON(c, http.StatusBadRequest, err.Error())
		return
	}
	h.saveSnapshot(c, snap)

	c.JSON(http.StatusOK, gin.H{"saved": true})
}

// Game handles POST /api/quiz/game.
func (h *QuizHandler) Game(c *gin.Context) {
	var req struct {
		OptionID string `json:"optionId"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.OptionID == "" {
		errorJSON(c, http.StatusBadRequest, "optionId is required")
		return
	}

	snap, correct, err := quiz.AnswerGame(h.loadSnapshot(c), req.OptionID)
	if err != nil {
		errorJSON(c, http.StatusBadRequest, err.Error())
		return
	}
	h.saveSnapshot(c, snap)

	c.JSON(http.StatusOK, gin.H{"correct": correct, "badgeEarned": snap.BadgeEarned})
}

func (h *QuizHandler) respondState(c *gin.Context, state quiz.State, snap quiz.Snapshot) {
	c.JSON(http.StatusOK, gin.H{
		"step":          quiz.EncodeStep(state),
		"phase":         state.Phase.String(),
		"questionIndex": state.QuestionIndex,
		"progress":      quiz.ProgressPercent(state),
		"answers":       snap.Answers,
		"email":         snap.Email,
		"badgeEarned":   snap.BadgeEarned,
		"gameCompleted": snap.GameCompleted,
	})
}

func (h *QuizHandler) loadSnapshot(c *gin.Context) quiz.Snapshot {
	session := sessions.Default(c)
	raw, ok := session.Get(quizSessionKey).(string)
	if !ok || raw == "" {
		return quiz.Snapshot{Answers: map[int]quiz.Answer{}}
	}

	var snap quiz.Snapshot
	if err := json.Unmarshal([]byte(raw), &snap); err != nil {
		h.log.Warnw("Dropping unreadable quiz session snapshot", "error", err)
		return quiz.Snapshot{Answers: map[int]quiz.Answer{}}
	}
	if snap.Answers == nil {
		snap.Answers = map[int]quiz.Answer{}
	}
	return snap
}

func (h *QuizHandler) saveSnapshot(c *gin.Context, snap quiz.Snapshot) {
	raw, err := json.Marshal(snap)
	if err != nil {
		h.log.Errorw("Failed to encode quiz session snapshot", "error", err)
		return
	}

	session := sessions.Default(c)
	session.Set(quizSessionKey, string(raw))
	if err := session.Save(); err != nil {
		h.log.Errorw("Failed to save quiz session", "error", err)
	}
}
