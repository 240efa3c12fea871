package tournament

import (
	"database/sql"
	"errors"
	"sync"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("record not found")

// store handles all database operations for tournaments, players and inscriptions.
type store struct {
	db *sql.DB
	mu sync.RWMutex
}

// Tournament estado values.
const (
	EstadoPending   = "PENDING"
	EstadoActive    = "ACTIVE"
	EstadoFinalized = "FINALIZED"
)

// Tournament tipo values. Only FRUTALES tournaments are scored with the
// point system.
const (
	TipoFrutales = "FRUTALES"
	TipoClasico  = "CLASICO"
)

// Player is a registered club player.
type Player struct {
	ID            int64    `json:"id"`
	FirstName     string   `json:"firstName"`
	LastName      string   `json:"lastName"`
	Matricula     string   `json:"matricula"`
	HandicapIndex *float64 `json:"handicapIndex,omitempty"`
	HomeClub      string   `json:"homeClub,omitempty"`
}

// DisplayName is the "last name first" form used on every leaderboard.
func (p Player) DisplayName() string {
	return p.LastName + " " + p.FirstName
}

// Hole describes one hole of a course.
type Hole struct {
	ID     int64 `json:"id"`
	Number int   `json:"number"`
	Par    int   `json:"par"`
}

// Tournament is a single event.
type Tournament struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	Codigo       string `json:"codigo"`
	Tipo         string `json:"tipo"`
	Estado       string `json:"estado"`
	CourseID     int64  `json:"courseId"`
	StartDate    string `json:"startDate"`
	DoublePoints bool   `json:"doublePoints"`
}

// Inscription is a player's registration for a tournament, carrying the
// course-adjusted handicap for that event.
type Inscription struct {
	ID             int64    `json:"id"`
	TournamentID   int64    `json:"tournamentId"`
	Player         Player   `json:"player"`
	HandicapCourse *float64 `json:"handicapCourse,omitempty"`
}
