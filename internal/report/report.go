package report

import (
	"context"
	"fmt"

	"glowcheck/internal/ai"
	"glowcheck/internal/quiz"
	"glowcheck/pkg/logger"
)

const reportTitle = "Your Personalized Skin Report"

const reportSystemPrompt = `You are a skincare expert writing a short personalized report.
Based on the user's quiz answers, describe their likely skin profile, the three habits that
matter most for them, and a simple morning and evening routine. Warm tone, plain language,
no medical claims.`

const fallbackReport = `Thanks for completing the skin quiz! Based on your answers we put together
a starting routine: cleanse gently twice a day, moisturize while your skin is still damp, and wear
SPF 30+ every morning. Small consistent habits beat complicated routines. Your dashboard has
challenges and product analysis tools to help you stay on track.`

// Service turns completed quiz answers into an emailed report. The
// completion call and the email send run sequentially; the send only
// starts after the completion resolves.
type Service struct {
	ai     *ai.Client
	mailer *Mailer
	log    *logger.Logger
}

func NewService(aiClient *ai.Client, mailer *Mailer, log *logger.Logger) *Service {
	return &Service{ai: aiClient, mailer: mailer, log: log}
}

// Generate builds the report body and emails it. An unavailable or failing
// completion falls back to canned copy rather than blocking the funnel;
// only a failed email send is surfaced as an error.
func (s *Service) Generate(ctx context.Context, answers map[int]quiz.Answer, email, name string) (string, error) {
	body := fallbackReport

	summary := quiz.Summary(answers)
	if s.ai.Enabled() && summary != "" {
		generated, err := s.ai.Chat(ctx, reportSystemPrompt, summary)
		if err != nil {
			s.log.Errorw("Report generation failed, using fallback copy", "error", err)
		} else {
			body = generated
		}
	}

	if err := s.mailer.SendReport(email, name, reportTitle, body); err != nil {
		return "", fmt.Errorf("failed to send report email: %w", err)
	}

	return reportTitle, nil
}
