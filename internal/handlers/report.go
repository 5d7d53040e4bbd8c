package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"

	"glowcheck/internal/quiz"
	"glowcheck/internal/report"
	"glowcheck/pkg/logger"
)

type ReportHandler struct {
	reports *report.Service
	log     *logger.Logger
}

func NewReportHandler(reports *report.Service, log *logger.Logger) *ReportHandler {
	return &ReportHandler{reports: reports, log: log}
}

type reportRequest struct {
	Answers map[int]quiz.Answer `json:"answers"`
	Email   string              `json:"email"`
	Name    string              `json:"name"`
}

// Generate handles POST /api/generate-report: one completion call, then
// one email send, strictly in that order. On failure the quiz stays on the
// email step, so the error envelope matters here.
func (h *ReportHandler) Generate(c *gin.Context) {
	var req reportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorJSON(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Email == "" {
		errorJSON(c, http.StatusBadRequest, "email is required")
		return
	}

	// Answers submitted with the request win; the session mirror fills in
	// when the client sends none (e.g. a reconstructed deep link).
	answers := req.Answers
	if len(answers) == 0 {
		answers = h.sessionAnswers(c)
	}

	title, err := h.reports.Generate(c.Request.Context(), answers, req.Email, req.Name)
	if err != nil {
		h.log.Errorw("Report generation failed", "error", err)
		errorJSON(c, http.StatusInternalServerError, "could not generate report, please try again")
		return
	}

	h.rememberEmail(c, req.Email)

	c.JSON(http.StatusOK, gin.H{
		"message":     "Report generated and sent to " + req.Email,
		"reportTitle": title,
	})
}

func (h *ReportHandler) sessionAnswers(c *gin.Context) map[int]quiz.Answer {
	session := sessions.Default(c)
	raw, ok := session.Get(quizSessionKey).(string)
	if !ok || raw == "" {
		return map[int]quiz.Answer{}
	}

	var snap quiz.Snapshot
	if err := json.Unmarshal([]byte(raw), &snap); err != nil || snap.Answers == nil {
		return map[int]quiz.Answer{}
	}
	return snap.Answers
}

func (h *ReportHandler) rememberEmail(c *gin.Context, email string) {
	session := sessions.Default(c)
	raw, _ := session.Get(quizSessionKey).(string)

	var snap quiz.Snapshot
	if raw != "" {
		_ = json.Unmarshal([]byte(raw), &snap)
	}
	if snap.Answers == nil {
		snap.Answers = map[int]quiz.Answer{}
	}
	snap.Email = email

	if encoded, err := json.Marshal(snap); err == nil {
		session.Set(quizSessionKey, string(encoded))
		if err := session.Save(); err != nil {
			h.log.Errorw("Failed to save quiz session", "error", err)
		}
	}
}
