package main

import (
	"fmt"
	"math/rand"
	"os"

	"github.com/charmbracelet/log"
	"github.com/fergarri/golf-tournament-app/internal/database"
	"github.com/fergarri/golf-tournament-app/internal/frutales"
	"github.com/fergarri/golf-tournament-app/internal/metrics"
	"github.com/fergarri/golf-tournament-app/internal/scorecard"
	"github.com/fergarri/golf-tournament-app/internal/tournament"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
)

// Simplified config loading for the script
func loadConfig() (string, string) {
	if err := godotenv.Load(); err != nil {
		log.Warn("No .env file found, reading from environment variables")
	}
	dbName := os.Getenv("DB_NAME")
	if dbName == "" {
		dbName = "golf.db"
	}
	migrationsDir := os.Getenv("MIGRATIONS_DIR")
	if migrationsDir == "" {
		migrationsDir = "migrations"
	}
	return dbName, migrationsDir
}

func main() {
	log.Info("Starting database seeder...")
	dbName, migrationsDir := loadConfig()

	db, dbTeardown, err := database.InitDB(dbName, "", "", migrationsDir)
	if err != nil {
		log.Fatalf("Failed to initialize database: %s", err)
	}
	defer dbTeardown()

	tournamentStore := tournament.New(db)
	scorecardStore := scorecard.New(db)
	scoreStore := frutales.NewStore(db)

	pars := []int{4, 4, 3, 5, 4, 4, 3, 5, 4}
	holes := make([]tournament.Hole, 0, len(pars))
	for i, par := range pars {
		holes = append(holes, tournament.Hole{Number: i + 1, Par: par})
	}
	courseID, err := tournamentStore.CreateCourse("Los Frutales", holes)
	if err != nil {
		log.Fatalf("Failed to create course: %s", err)
	}
	log.Info("Created course", "courseID", courseID)

	courseHoles, err := tournamentStore.GetCourseHoles(courseID)
	if err != nil {
		log.Fatalf("Failed to load course holes: %s", err)
	}
	plan := make([]scorecard.HolePlan, 0, len(courseHoles))
	for _, hole := range courseHoles {
		plan = append(plan, scorecard.HolePlan{HoleID: hole.ID, Number: hole.Number, Par: hole.Par})
	}

	t := &tournament.Tournament{
		Name:      "Frutales Fecha 1",
		CourseID:  courseID,
		StartDate: "2026-03-07",
	}
	if err := tournamentStore.CreateTournament(t); err != nil {
		log.Fatalf("Failed to create tournament: %s", err)
	}
	if err := tournamentStore.SetTournamentEstado(t.ID, tournament.EstadoActive); err != nil {
		log.Fatalf("Failed to activate tournament: %s", err)
	}
	log.Info("Created tournament", "tournamentID", t.ID, "codigo", t.Codigo)

	lastNames := []string{"Gomez", "Perez", "Alvarez", "Benitez", "Acosta", "Molina", "Zapata", "Caceres"}
	for i, lastName := range lastNames {
		hcpIndex := 5.0 + rand.Float64()*20
		player := &tournament.Player{
			FirstName:     "Seeder",
			LastName:      lastName,
			Matricula:     fmt.Sprintf("SEED-%03d", i+1),
			HandicapIndex: &hcpIndex,
			HomeClub:      "Los Frutales",
		}
		if err := tournamentStore.UpsertPlayer(player); err != nil {
			log.Fatalf("Failed to upsert player %s: %s", lastName, err)
		}

		hcpCourse := float64(int(hcpIndex))
		if _, err := tournamentStore.AddInscription(t.ID, player.ID, &hcpCourse); err != nil {
			log.Fatalf("Failed to inscribe player %s: %s", lastName, err)
		}

		card, err := scorecardStore.GetOrCreate(t.ID, player.ID, &hcpCourse, plan)
		if err != nil {
			log.Fatalf("Failed to create scorecard for %s: %s", lastName, err)
		}

		updates := make([]scorecard.HoleScoreUpdate, 0, len(card.HoleScores))
		for _, hs := range card.HoleScores {
			strokes := hs.Par + rand.Intn(4) - 1
			if strokes < 1 {
				strokes = 1
			}
			updates = append(updates, scorecard.HoleScoreUpdate{HoleID: hs.HoleID, OwnStrokes: &strokes})
		}
		if err := scorecardStore.UpdateHoleScores(card.ID, updates); err != nil {
			log.Fatalf("Failed to fill scorecard for %s: %s", lastName, err)
		}

		// Leave the last two players in progress.
		if i < len(lastNames)-2 {
			if err := scorecardStore.Deliver(card.ID); err != nil {
				log.Fatalf("Failed to deliver scorecard for %s: %s", lastName, err)
			}
		}
	}
	log.Info("Seeded players and scorecards", "count", len(lastNames))

	reg := prometheus.NewRegistry()
	frutalesSvc := frutales.NewService(tournamentStore, scorecardStore, scoreStore, metrics.NewService(reg), metrics.New(db))
	scores, err := frutalesSvc.Calculate(t.ID)
	if err != nil {
		log.Fatalf("Failed to calculate scores: %s", err)
	}
	log.Info("Seeder finished", "tournamentID", t.ID, "scores", len(scores))
}
