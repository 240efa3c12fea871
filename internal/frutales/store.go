package frutales

import (
	"database/sql"
	"fmt"
	"sort"
	"time"

	"github.com/charmbracelet/log"
	"github.com/fergarri/golf-tournament-app/internal/scorecard"
)

// NewStore creates a new frutales score Store.
func NewStore(db *sql.DB) Store {
	return &store{
		db: db,
	}
}

// ReplaceScores deletes any previous calculation for the tournament and
// inserts the new rows in one transaction.
func (s *store) ReplaceScores(tournamentID int64, scores []Score) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}

	if _, err := tx.Exec("DELETE FROM frutales_scores WHERE tournament_id = ?", tournamentID); err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to clear previous scores: %w", err)
	}

	stmt, err := tx.Prepare(`
		INSERT INTO frutales_scores (
			tournament_id, scorecard_id, player_id, position,
			position_points, birdie_count, birdie_points, eagle_count, eagle_points,
			ace_count, ace_points, participation_points, total_points, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		tx.Rollback()
		return err
	}
	defer stmt.Close()

	now := time.Now().Unix()
	for _, score := range scores {
		if score.ScorecardID == nil {
			log.Warn("Skipping calculated score without scorecard", "playerID", score.PlayerID)
			continue
		}
		_, err = stmt.Exec(
			tournamentID, *score.ScorecardID, score.PlayerID, score.Position,
			score.PositionPoints, score.BirdieCount, score.BirdiePoints, score.EagleCount, score.EaglePoints,
			score.AceCount, score.AcePoints, score.ParticipationPoints, score.TotalPoints, now,
		)
		if err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to insert score for player %d: %w", score.PlayerID, err)
		}
	}

	return tx.Commit()
}

func (s *store) GetScores(tournamentID int64) ([]Score, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`
		SELECT fs.scorecard_id, fs.player_id, p.first_name, p.last_name, p.matricula,
			fs.position, p.handicap_index, sc.handicap_course, sc.status,
			fs.position_points, fs.birdie_count, fs.birdie_points, fs.eagle_count, fs.eagle_points,
			fs.ace_count, fs.ace_points, fs.participation_points, fs.total_points,
			(SELECT SUM(hs.own_strokes) FROM hole_scores hs WHERE hs.scorecard_id = fs.scorecard_id AND hs.own_strokes IS NOT NULL)
		FROM frutales_scores fs
		JOIN scorecards sc ON sc.id = fs.scorecard_id
		JOIN players p ON p.id = fs.player_id
		WHERE fs.tournament_id = ?
	`, tournamentID)
	if err != nil {
		log.Error("Failed to query frutales scores", "error", err, "tournamentID", tournamentID)
		return nil, err
	}
	defer rows.Close()

	var scores []Score
	for rows.Next() {
		var score Score
		var scorecardID int64
		var firstName, lastName string
		var position sql.NullInt64
		var handicapIndex, handicapCourse sql.NullFloat64
		var gross sql.NullInt64

		err := rows.Scan(
			&scorecardID, &score.PlayerID, &firstName, &lastName, &score.Matricula,
			&position, &handicapIndex, &handicapCourse, &score.Status,
			&score.PositionPoints, &score.BirdieCount, &score.BirdiePoints, &score.EagleCount, &score.EaglePoints,
			&score.AceCount, &score.AcePoints, &score.ParticipationPoints, &score.TotalPoints,
			&gross,
		)
		if err != nil {
			log.Error("Failed to scan frutales score row", "error", err)
			continue
		}

		score.ScorecardID = &scorecardID
		score.PlayerName = lastName + " " + firstName
		if position.Valid {
			v := int(position.Int64)
			score.Position = &v
		}
		if handicapIndex.Valid {
			score.HandicapIndex = &handicapIndex.Float64
		}
		if handicapCourse.Valid {
			score.HandicapCourse = &handicapCourse.Float64
		}
		// Gross and net are only exposed for delivered cards.
		if score.Status == scorecard.StatusDelivered && gross.Valid {
			g := int(gross.Int64)
			score.ScoreGross = &g
			hcp := 0.0
			if handicapCourse.Valid {
				hcp = handicapCourse.Float64
			}
			neto := float64(g) - hcp
			score.ScoreNeto = &neto
		}

		scores = append(scores, score)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	sortForDisplay(scores)
	return scores, nil
}

// sortForDisplay orders positioned rows first by position, then unpositioned
// non-disqualified rows by total points descending, then disqualified rows.
func sortForDisplay(scores []Score) {
	group := func(score Score) int {
		switch {
		case score.Status == scorecard.StatusDisqualified:
			return 2
		case score.Position == nil:
			return 1
		default:
			return 0
		}
	}
	sort.SliceStable(scores, func(i, j int) bool {
		gi, gj := group(scores[i]), group(scores[j])
		if gi != gj {
			return gi < gj
		}
		switch gi {
		case 0:
			return *scores[i].Position < *scores[j].Position
		case 1:
			return scores[i].TotalPoints > scores[j].TotalPoints
		default:
			return false
		}
	})
}
