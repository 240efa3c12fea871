package scorecard

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
)

// New creates a new scorecard Store.
func New(db *sql.DB) Store {
	return &store{
		db: db,
	}
}

// GetOrCreate returns the scorecard for (tournament, player), creating it
// with one empty hole-score row per course hole if it does not exist yet.
// The course handicap is fixed at creation time.
func (s *store) GetOrCreate(tournamentID, playerID int64, handicapCourse *float64, holes []HolePlan) (*Scorecard, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var scorecardID int64
	err := s.db.QueryRow(
		"SELECT id FROM scorecards WHERE tournament_id = ? AND player_id = ?",
		tournamentID, playerID,
	).Scan(&scorecardID)

	switch err {
	case nil:
		return s.getByIDLocked(scorecardID)
	case sql.ErrNoRows:
		// fall through to create
	default:
		return nil, err
	}

	tx, err := s.db.Begin()
	if err != nil {
		return nil, err
	}

	res, err := tx.Exec(`
		INSERT INTO scorecards (tournament_id, player_id, handicap_course, status)
		VALUES (?, ?, ?, ?)
	`, tournamentID, playerID, handicapCourse, StatusInProgress)
	if err != nil {
		tx.Rollback()
		return nil, fmt.Errorf("failed to create scorecard: %w", err)
	}
	scorecardID, err = res.LastInsertId()
	if err != nil {
		tx.Rollback()
		return nil, err
	}

	for _, hole := range holes {
		if _, err := tx.Exec("INSERT INTO hole_scores (scorecard_id, hole_id) VALUES (?, ?)", scorecardID, hole.HoleID); err != nil {
			tx.Rollback()
			return nil, err
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	log.Info("Scorecard created", "scorecardID", scorecardID, "tournamentID", tournamentID, "playerID", playerID)
	return s.getByIDLocked(scorecardID)
}

func (s *store) GetByID(scorecardID int64) (*Scorecard, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.getByIDLocked(scorecardID)
}

func (s *store) getByIDLocked(scorecardID int64) (*Scorecard, error) {
	row := s.db.QueryRow(`
		SELECT id, tournament_id, player_id, handicap_course, status, delivered_at
		FROM scorecards WHERE id = ?
	`, scorecardID)

	card, err := scanScorecard(row)
	if err != nil {
		return nil, err
	}
	card.HoleScores, err = s.holeScoresLocked(scorecardID)
	if err != nil {
		return nil, err
	}
	return card, nil
}

func scanScorecard(scanner interface{ Scan(...any) error }) (*Scorecard, error) {
	var card Scorecard
	var handicapCourse sql.NullFloat64
	var deliveredAt sql.NullInt64

	err := scanner.Scan(&card.ID, &card.TournamentID, &card.PlayerID, &handicapCourse, &card.Status, &deliveredAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if handicapCourse.Valid {
		card.HandicapCourse = &handicapCourse.Float64
	}
	if deliveredAt.Valid {
		card.DeliveredAt = &deliveredAt.Int64
	}
	return &card, nil
}

func (s *store) holeScoresLocked(scorecardID int64) ([]HoleScore, error) {
	rows, err := s.db.Query(`
		SELECT hs.id, hs.hole_id, h.hole_number, h.par, hs.own_strokes, hs.marker_strokes
		FROM hole_scores hs
		JOIN holes h ON h.id = hs.hole_id
		WHERE hs.scorecard_id = ?
		ORDER BY h.hole_number
	`, scorecardID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var scores []HoleScore
	for rows.Next() {
		var hs HoleScore
		var own, marker sql.NullInt64
		if err := rows.Scan(&hs.ID, &hs.HoleID, &hs.HoleNumber, &hs.Par, &own, &marker); err != nil {
			return nil, err
		}
		if own.Valid {
			v := int(own.Int64)
			hs.OwnStrokes = &v
		}
		if marker.Valid {
			v := int(marker.Int64)
			hs.MarkerStrokes = &v
		}
		scores = append(scores, hs)
	}
	return scores, rows.Err()
}

// ListByTournament returns all scorecards of a tournament with their hole
// scores loaded.
func (s *store) ListByTournament(tournamentID int64) ([]Scorecard, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`
		SELECT id, tournament_id, player_id, handicap_course, status, delivered_at
		FROM scorecards WHERE tournament_id = ? ORDER BY id
	`, tournamentID)
	if err != nil {
		log.Error("Failed to query scorecards", "error", err, "tournamentID", tournamentID)
		return nil, err
	}
	defer rows.Close()

	var cards []Scorecard
	for rows.Next() {
		card, err := scanScorecard(rows)
		if err != nil {
			log.Error("Failed to scan scorecard row", "error", err)
			continue
		}
		cards = append(cards, *card)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range cards {
		cards[i].HoleScores, err = s.holeScoresLocked(cards[i].ID)
		if err != nil {
			return nil, err
		}
	}
	return cards, nil
}

// UpdateHoleScores applies a bulk hole-score update in one transaction.
// Cells not named in the update keep their current value.
func (s *store) UpdateHoleScores(scorecardID int64, updates []HoleScoreUpdate) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}

	for _, update := range updates {
		if update.OwnStrokes != nil {
			if _, err := tx.Exec(
				"UPDATE hole_scores SET own_strokes = ? WHERE scorecard_id = ? AND hole_id = ?",
				*update.OwnStrokes, scorecardID, update.HoleID,
			); err != nil {
				tx.Rollback()
				return err
			}
		}
		if update.MarkerStrokes != nil {
			if _, err := tx.Exec(
				"UPDATE hole_scores SET marker_strokes = ? WHERE scorecard_id = ? AND hole_id = ?",
				*update.MarkerStrokes, scorecardID, update.HoleID,
			); err != nil {
				tx.Rollback()
				return err
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	log.Info("Hole scores updated", "scorecardID", scorecardID, "holes", len(updates))
	return nil
}

// Deliver transitions a card from IN_PROGRESS to DELIVERED. Every own-stroke
// cell must be filled.
func (s *store) Deliver(scorecardID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	card, err := s.getByIDLocked(scorecardID)
	if err != nil {
		return err
	}
	if card.Status != StatusInProgress {
		return fmt.Errorf("%w: cannot deliver from %s", ErrInvalidTransition, card.Status)
	}
	if len(card.HoleScores) == 0 {
		return ErrIncompleteScores
	}
	for _, hs := range card.HoleScores {
		if hs.OwnStrokes == nil || *hs.OwnStrokes <= 0 {
			return ErrIncompleteScores
		}
	}

	_, err = s.db.Exec(
		"UPDATE scorecards SET status = ?, delivered_at = ? WHERE id = ?",
		StatusDelivered, time.Now().Unix(), scorecardID,
	)
	if err != nil {
		return err
	}
	log.Info("Scorecard delivered", "scorecardID", scorecardID)
	return nil
}

// Disqualify marks a card DISQUALIFIED, remembering the previous status so
// the transition can be undone.
func (s *store) Disqualify(scorecardID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	card, err := s.getByIDLocked(scorecardID)
	if err != nil {
		return err
	}
	if card.Status == StatusDisqualified {
		return fmt.Errorf("%w: already disqualified", ErrInvalidTransition)
	}

	_, err = s.db.Exec(
		"UPDATE scorecards SET status = ?, previous_status = ? WHERE id = ?",
		StatusDisqualified, card.Status, scorecardID,
	)
	if err != nil {
		return err
	}
	log.Info("Scorecard disqualified", "scorecardID", scorecardID, "previousStatus", card.Status)
	return nil
}

// UndoDisqualify restores the status the card had before disqualification.
func (s *store) UndoDisqualify(scorecardID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var status Status
	var previous sql.NullString
	err := s.db.QueryRow("SELECT status, previous_status FROM scorecards WHERE id = ?", scorecardID).Scan(&status, &previous)
	if err != nil {
		if err == sql.ErrNoRows {
			return ErrNotFound
		}
		return err
	}
	if status != StatusDisqualified {
		return fmt.Errorf("%w: card is not disqualified", ErrInvalidTransition)
	}

	restored := StatusInProgress
	if previous.Valid && previous.String != "" {
		restored = Status(previous.String)
	}

	_, err = s.db.Exec(
		"UPDATE scorecards SET status = ?, previous_status = NULL WHERE id = ?",
		restored, scorecardID,
	)
	if err != nil {
		return err
	}
	log.Info("Scorecard disqualification undone", "scorecardID", scorecardID, "restoredStatus", restored)
	return nil
}

// CancelInProgress moves every IN_PROGRESS card of a tournament to CANCELLED.
// Used when the tournament is finalized. Returns the number of cards moved.
func (s *store) CancelInProgress(tournamentID int64) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.Exec(
		"UPDATE scorecards SET status = ? WHERE tournament_id = ? AND status = ?",
		StatusCancelled, tournamentID, StatusInProgress,
	)
	if err != nil {
		return 0, err
	}
	moved, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	log.Info("In-progress scorecards cancelled", "tournamentID", tournamentID, "count", moved)
	return moved, nil
}
