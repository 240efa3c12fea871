package slack

import (
	"fmt"

	"github.com/fergarri/golf-tournament-app/internal/frutales"
	"github.com/fergarri/golf-tournament-app/internal/scorecard"
	"github.com/fergarri/golf-tournament-app/internal/tournament"
	"github.com/slack-go/slack"
)

// formatResults creates a Slack message with the tournament standings.
// When final is true the header announces final results.
func (s *Notifier) formatResults(t *tournament.Tournament, scores []frutales.Score, final bool) slack.Message {
	blocks := make([]slack.Block, 0)

	title := fmt.Sprintf("⛳ %s — Posiciones", t.Name)
	if final {
		title = fmt.Sprintf("🏆 %s — Resultados Finales", t.Name)
	}
	headerText := slack.NewTextBlockObject("plain_text", title, true, false)
	blocks = append(blocks, slack.NewHeaderBlock(headerText))

	if t.DoublePoints {
		blocks = append(blocks, slack.NewContextBlock("",
			slack.NewTextBlockObject("mrkdwn", "*Fecha de puntos dobles* ✨", false, false)))
	}

	if len(scores) == 0 {
		blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", "Sin resultados todavía.", true, false), nil, nil))
		return slack.NewBlockMessage(blocks...)
	}

	for _, score := range scores {
		blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", formatScoreLine(score), true, false), nil, nil))
	}

	return slack.NewBlockMessage(blocks...)
}

func formatScoreLine(score frutales.Score) string {
	if score.Status == scorecard.StatusDisqualified {
		return fmt.Sprintf("DS %s (%s)", score.PlayerName, score.Matricula)
	}

	var medal string
	if score.Position != nil {
		switch *score.Position {
		case 1:
			medal = "🥇 "
		case 2:
			medal = "🥈 "
		case 3:
			medal = "🥉 "
		}
	}

	position := "-"
	if score.Position != nil {
		position = fmt.Sprintf("%d", *score.Position)
	}

	neto := "-"
	if score.ScoreNeto != nil {
		neto = fmt.Sprintf("%.1f", *score.ScoreNeto)
	}

	return fmt.Sprintf("%s. %s%s (%s)\n> Neto: %s | Puntos: %d",
		position,
		medal,
		score.PlayerName,
		score.Matricula,
		neto,
		score.TotalPoints,
	)
}
