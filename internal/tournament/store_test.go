package tournament_test

import (
	"database/sql"
	"testing"

	"github.com/fergarri/golf-tournament-app/internal/database"
	"github.com/fergarri/golf-tournament-app/internal/tournament"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestDB creates a temporary in-memory SQLite database for testing.
func setupTestDB(t *testing.T) (tournament.Store, *sql.DB, func()) {
	t.Helper()

	db, dbTeardown, err := database.InitDB(":memory:", "", "", "../../migrations")
	require.NoError(t, err)

	store := tournament.New(db)
	teardown := func() {
		dbTeardown()
		db.Close()
	}

	return store, db, teardown
}

func floatPtr(v float64) *float64 { return &v }

func TestUpsertPlayer(t *testing.T) {
	store, _, teardown := setupTestDB(t)
	defer teardown()

	player := &tournament.Player{
		FirstName:     "Ana",
		LastName:      "Gomez",
		Matricula:     "M1",
		HandicapIndex: floatPtr(12.4),
	}
	require.NoError(t, store.UpsertPlayer(player))
	require.NotZero(t, player.ID)

	// Upserting the same matricula updates in place.
	updated := &tournament.Player{
		FirstName:     "Ana Maria",
		LastName:      "Gomez",
		Matricula:     "M1",
		HandicapIndex: floatPtr(11.9),
		HomeClub:      "Los Frutales",
	}
	require.NoError(t, store.UpsertPlayer(updated))
	assert.Equal(t, player.ID, updated.ID)

	players, err := store.GetAllPlayers()
	require.NoError(t, err)
	require.Len(t, players, 1)
	assert.Equal(t, "Ana Maria", players[0].FirstName)
	assert.Equal(t, 11.9, *players[0].HandicapIndex)
}

func TestGetPlayer_NotFound(t *testing.T) {
	store, _, teardown := setupTestDB(t)
	defer teardown()

	_, err := store.GetPlayer(42)
	assert.ErrorIs(t, err, tournament.ErrNotFound)
}

func TestCreateCourseAndHoles(t *testing.T) {
	store, _, teardown := setupTestDB(t)
	defer teardown()

	holes := []tournament.Hole{
		{Number: 1, Par: 4},
		{Number: 2, Par: 3},
		{Number: 3, Par: 5},
	}
	courseID, err := store.CreateCourse("Los Frutales", holes)
	require.NoError(t, err)

	got, err := store.GetCourseHoles(courseID)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, 1, got[0].Number)
	assert.Equal(t, 5, got[2].Par)
}

func TestCreateTournament_Defaults(t *testing.T) {
	store, _, teardown := setupTestDB(t)
	defer teardown()

	courseID, err := store.CreateCourse("Los Frutales", []tournament.Hole{{Number: 1, Par: 4}})
	require.NoError(t, err)

	trn := &tournament.Tournament{Name: "Fecha 1", CourseID: courseID, StartDate: "2026-03-07"}
	require.NoError(t, store.CreateTournament(trn))

	assert.NotZero(t, trn.ID)
	assert.Len(t, trn.Codigo, 8)
	assert.Equal(t, tournament.TipoFrutales, trn.Tipo)
	assert.Equal(t, tournament.EstadoPending, trn.Estado)

	byCodigo, err := store.GetTournamentByCodigo(trn.Codigo)
	require.NoError(t, err)
	assert.Equal(t, trn.ID, byCodigo.ID)

	_, err = store.GetTournamentByCodigo("NOPE1234")
	assert.ErrorIs(t, err, tournament.ErrNotFound)
}

func TestListActiveFrutales(t *testing.T) {
	store, _, teardown := setupTestDB(t)
	defer teardown()

	courseID, err := store.CreateCourse("Los Frutales", []tournament.Hole{{Number: 1, Par: 4}})
	require.NoError(t, err)

	active := &tournament.Tournament{Name: "Fecha 1", CourseID: courseID, StartDate: "2026-03-07"}
	require.NoError(t, store.CreateTournament(active))
	require.NoError(t, store.SetTournamentEstado(active.ID, tournament.EstadoActive))

	pending := &tournament.Tournament{Name: "Fecha 2", CourseID: courseID, StartDate: "2026-03-14"}
	require.NoError(t, store.CreateTournament(pending))

	clasico := &tournament.Tournament{Name: "Abierto", Tipo: tournament.TipoClasico, CourseID: courseID, StartDate: "2026-03-21"}
	require.NoError(t, store.CreateTournament(clasico))
	require.NoError(t, store.SetTournamentEstado(clasico.ID, tournament.EstadoActive))

	got, err := store.ListActiveFrutales()
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, active.ID, got[0].ID)
}

func TestInscriptions(t *testing.T) {
	store, _, teardown := setupTestDB(t)
	defer teardown()

	courseID, err := store.CreateCourse("Los Frutales", []tournament.Hole{{Number: 1, Par: 4}})
	require.NoError(t, err)
	trn := &tournament.Tournament{Name: "Fecha 1", CourseID: courseID, StartDate: "2026-03-07"}
	require.NoError(t, store.CreateTournament(trn))

	player := &tournament.Player{FirstName: "Ana", LastName: "Gomez", Matricula: "M1"}
	require.NoError(t, store.UpsertPlayer(player))

	_, err = store.AddInscription(trn.ID, player.ID, floatPtr(8))
	require.NoError(t, err)
	// Duplicate inscriptions are allowed at the store level.
	_, err = store.AddInscription(trn.ID, player.ID, floatPtr(9))
	require.NoError(t, err)

	inscriptions, err := store.GetInscriptions(trn.ID)
	require.NoError(t, err)
	require.Len(t, inscriptions, 2)
	assert.Equal(t, player.ID, inscriptions[0].Player.ID)
	assert.Equal(t, "Gomez", inscriptions[0].Player.LastName)
	assert.Equal(t, 8.0, *inscriptions[0].HandicapCourse)
}

func TestClear(t *testing.T) {
	store, _, teardown := setupTestDB(t)
	defer teardown()

	courseID, err := store.CreateCourse("Los Frutales", []tournament.Hole{{Number: 1, Par: 4}})
	require.NoError(t, err)
	trn := &tournament.Tournament{Name: "Fecha 1", CourseID: courseID, StartDate: "2026-03-07"}
	require.NoError(t, store.CreateTournament(trn))

	store.Clear()

	tournaments, err := store.ListTournaments()
	require.NoError(t, err)
	assert.Empty(t, tournaments)
}
