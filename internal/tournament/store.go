package tournament

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

// New creates a new tournament Store.
func New(db *sql.DB) Store {
	return &store{
		db: db,
	}
}

// UpsertPlayer inserts a player or updates an existing one, matching on
// matricula. The player's ID is filled in on return.
func (s *store) UpsertPlayer(player *Player) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(`
		INSERT INTO players (first_name, last_name, matricula, handicap_index, home_club)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(matricula) DO UPDATE SET
			first_name = excluded.first_name,
			last_name = excluded.last_name,
			handicap_index = excluded.handicap_index,
			home_club = excluded.home_club;
	`, player.FirstName, player.LastName, player.Matricula, player.HandicapIndex, player.HomeClub)
	if err != nil {
		return fmt.Errorf("failed to upsert player: %w", err)
	}

	return s.db.QueryRow("SELECT id FROM players WHERE matricula = ?", player.Matricula).Scan(&player.ID)
}

func (s *store) GetPlayer(playerID int64) (*Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRow("SELECT id, first_name, last_name, matricula, handicap_index, home_club FROM players WHERE id = ?", playerID)
	return scanPlayer(row)
}

func (s *store) GetAllPlayers() ([]Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query("SELECT id, first_name, last_name, matricula, handicap_index, home_club FROM players ORDER BY last_name, first_name")
	if err != nil {
		log.Error("Failed to query players", "error", err)
		return nil, err
	}
	defer rows.Close()

	var players []Player
	for rows.Next() {
		player, err := scanPlayer(rows)
		if err != nil {
			log.Error("Failed to scan player row", "error", err)
			continue
		}
		players = append(players, *player)
	}
	return players, rows.Err()
}

func scanPlayer(scanner interface{ Scan(...any) error }) (*Player, error) {
	var p Player
	var handicapIndex sql.NullFloat64
	var homeClub sql.NullString

	err := scanner.Scan(&p.ID, &p.FirstName, &p.LastName, &p.Matricula, &handicapIndex, &homeClub)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("player: %w", ErrNotFound)
		}
		return nil, err
	}
	if handicapIndex.Valid {
		p.HandicapIndex = &handicapIndex.Float64
	}
	p.HomeClub = homeClub.String
	return &p, nil
}

// CreateCourse inserts a course together with its holes.
func (s *store) CreateCourse(name string, holes []Hole) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return 0, err
	}

	res, err := tx.Exec("INSERT INTO courses (name) VALUES (?)", name)
	if err != nil {
		tx.Rollback()
		return 0, err
	}
	courseID, err := res.LastInsertId()
	if err != nil {
		tx.Rollback()
		return 0, err
	}

	for _, hole := range holes {
		if _, err := tx.Exec("INSERT INTO holes (course_id, hole_number, par) VALUES (?, ?, ?)", courseID, hole.Number, hole.Par); err != nil {
			tx.Rollback()
			return 0, err
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	log.Info("Course created", "courseID", courseID, "name", name, "holes", len(holes))
	return courseID, nil
}

func (s *store) GetCourseHoles(courseID int64) ([]Hole, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query("SELECT id, hole_number, par FROM holes WHERE course_id = ? ORDER BY hole_number", courseID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var holes []Hole
	for rows.Next() {
		var h Hole
		if err := rows.Scan(&h.ID, &h.Number, &h.Par); err != nil {
			return nil, err
		}
		holes = append(holes, h)
	}
	return holes, rows.Err()
}

// CreateTournament inserts a tournament, generating its public access code.
func (s *store) CreateTournament(t *Tournament) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if t.Codigo == "" {
		t.Codigo = strings.ToUpper(uuid.NewString()[:8])
	}
	if t.Tipo == "" {
		t.Tipo = TipoFrutales
	}
	if t.Estado == "" {
		t.Estado = EstadoPending
	}

	res, err := s.db.Exec(`
		INSERT INTO tournaments (name, codigo, tipo, estado, course_id, start_date, double_points)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, t.Name, t.Codigo, t.Tipo, t.Estado, t.CourseID, t.StartDate, boolToInt(t.DoublePoints))
	if err != nil {
		return fmt.Errorf("failed to create tournament: %w", err)
	}
	t.ID, err = res.LastInsertId()
	if err != nil {
		return err
	}
	log.Info("Tournament created", "tournamentID", t.ID, "codigo", t.Codigo, "tipo", t.Tipo)
	return nil
}

func (s *store) GetTournament(tournamentID int64) (*Tournament, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRow(selectTournament+" WHERE id = ?", tournamentID)
	return scanTournament(row)
}

func (s *store) GetTournamentByCodigo(codigo string) (*Tournament, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRow(selectTournament+" WHERE codigo = ?", codigo)
	return scanTournament(row)
}

const selectTournament = "SELECT id, name, codigo, tipo, estado, course_id, start_date, double_points FROM tournaments"

func scanTournament(scanner interface{ Scan(...any) error }) (*Tournament, error) {
	var t Tournament
	var doublePoints int
	err := scanner.Scan(&t.ID, &t.Name, &t.Codigo, &t.Tipo, &t.Estado, &t.CourseID, &t.StartDate, &doublePoints)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("tournament: %w", ErrNotFound)
		}
		return nil, err
	}
	t.DoublePoints = doublePoints != 0
	return &t, nil
}

func (s *store) ListTournaments() ([]Tournament, error) {
	return s.listTournaments(selectTournament + " ORDER BY start_date DESC")
}

// ListActiveFrutales returns the tournaments the background poller keeps
// recalculating.
func (s *store) ListActiveFrutales() ([]Tournament, error) {
	return s.listTournaments(selectTournament+" WHERE tipo = ? AND estado = ? ORDER BY start_date", TipoFrutales, EstadoActive)
}

func (s *store) listTournaments(query string, args ...any) ([]Tournament, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(query, args...)
	if err != nil {
		log.Error("Failed to query tournaments", "error", err)
		return nil, err
	}
	defer rows.Close()

	var tournaments []Tournament
	for rows.Next() {
		t, err := scanTournament(rows)
		if err != nil {
			log.Error("Failed to scan tournament row", "error", err)
			continue
		}
		tournaments = append(tournaments, *t)
	}
	return tournaments, rows.Err()
}

func (s *store) SetTournamentEstado(tournamentID int64, estado string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec("UPDATE tournaments SET estado = ? WHERE id = ?", estado, tournamentID)
	return err
}

// AddInscription registers a player for a tournament. Duplicate inscriptions
// for the same player are allowed at this level; the merge dedupes them.
func (s *store) AddInscription(tournamentID, playerID int64, handicapCourse *float64) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.Exec(`
		INSERT INTO inscriptions (tournament_id, player_id, handicap_course, created_at)
		VALUES (?, ?, ?, ?)
	`, tournamentID, playerID, handicapCourse, time.Now().Unix())
	if err != nil {
		return 0, fmt.Errorf("failed to add inscription: %w", err)
	}
	return res.LastInsertId()
}

func (s *store) GetInscriptions(tournamentID int64) ([]Inscription, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`
		SELECT i.id, i.tournament_id, i.handicap_course,
			p.id, p.first_name, p.last_name, p.matricula, p.handicap_index, p.home_club
		FROM inscriptions i
		JOIN players p ON p.id = i.player_id
		WHERE i.tournament_id = ?
		ORDER BY i.created_at, i.id
	`, tournamentID)
	if err != nil {
		log.Error("Failed to query inscriptions", "error", err, "tournamentID", tournamentID)
		return nil, err
	}
	defer rows.Close()

	var inscriptions []Inscription
	for rows.Next() {
		var ins Inscription
		var handicapCourse, handicapIndex sql.NullFloat64
		var homeClub sql.NullString
		err := rows.Scan(
			&ins.ID, &ins.TournamentID, &handicapCourse,
			&ins.Player.ID, &ins.Player.FirstName, &ins.Player.LastName,
			&ins.Player.Matricula, &handicapIndex, &homeClub,
		)
		if err != nil {
			log.Error("Failed to scan inscription row", "error", err)
			continue
		}
		if handicapCourse.Valid {
			ins.HandicapCourse = &handicapCourse.Float64
		}
		if handicapIndex.Valid {
			ins.Player.HandicapIndex = &handicapIndex.Float64
		}
		ins.Player.HomeClub = homeClub.String
		inscriptions = append(inscriptions, ins)
	}
	return inscriptions, rows.Err()
}

func (s *store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		log.Error("Failed to begin transaction for clearing store", "error", err)
		return
	}

	for _, table := range []string{"frutales_scores", "hole_scores", "scorecards", "inscriptions", "tournaments", "holes", "courses", "players"} {
		if _, err := tx.Exec("DELETE FROM " + table); err != nil {
			log.Error("Failed to clear table", "table", table, "error", err)
			tx.Rollback()
			return
		}
	}

	if err := tx.Commit(); err != nil {
		log.Error("Failed to commit transaction for clearing store", "error", err)
	}
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
