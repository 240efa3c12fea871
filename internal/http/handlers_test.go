package http

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/fergarri/golf-tournament-app/internal/config"
	"github.com/fergarri/golf-tournament-app/internal/database"
	"github.com/fergarri/golf-tournament-app/internal/frutales"
	"github.com/fergarri/golf-tournament-app/internal/leaderboard"
	"github.com/fergarri/golf-tournament-app/internal/metrics"
	"github.com/fergarri/golf-tournament-app/internal/notifier"
	"github.com/fergarri/golf-tournament-app/internal/pubsub"
	"github.com/fergarri/golf-tournament-app/internal/scorecard"
	"github.com/fergarri/golf-tournament-app/internal/tournament"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/slack-go/slack"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmihailenco/msgpack/v5"
)

// setupTestServer initializes a new server with a test database and mock clients.
func setupTestServer(t *testing.T) (*Server, *pubsub.MockPubSubClient, *notifier.Mock, func()) {
	t.Helper()

	db, dbTeardown, err := database.InitDB(":memory:", "", "", "../../migrations")
	require.NoError(t, err)

	tournamentStore := tournament.New(db)
	scorecardStore := scorecard.New(db)
	scoreStore := frutales.NewStore(db)

	reg := prometheus.NewRegistry()
	metricsSvc := metrics.NewService(reg)
	metricsHandler := metrics.NewMetricsHandler(reg)
	pubsubClient := pubsub.NewMock("TEST")
	notifierMock := notifier.NewMock()

	frutalesSvc := frutales.NewService(tournamentStore, scorecardStore, scoreStore, metricsSvc, metrics.New(db))
	leaderboardSvc := leaderboard.NewService(tournamentStore, scorecardStore, scoreStore)

	server := NewServer(tournamentStore, scorecardStore, frutalesSvc, leaderboardSvc, metricsSvc, metricsHandler, config.Config{}, notifierMock, pubsubClient)

	teardown := func() {
		if dbTeardown != nil {
			dbTeardown()
		}
		db.Close()
	}
	return server, pubsubClient, notifierMock, teardown
}

func postJSON(t *testing.T, server *Server, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	rr := httptest.NewRecorder()
	server.ServeHTTP(rr, req)
	return rr
}

func postForm(t *testing.T, server *Server, path string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rr := httptest.NewRecorder()
	server.ServeHTTP(rr, req)
	return rr
}

func get(t *testing.T, server *Server, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rr := httptest.NewRecorder()
	server.ServeHTTP(rr, req)
	return rr
}

func decodeJSON[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&v))
	return v
}

// seedTournament creates a nine hole course, one tournament and two inscribed
// players with scorecards, returning the tournament and scorecard ids.
func seedTournament(t *testing.T, server *Server) (int64, []int64) {
	t.Helper()

	holes := make([]map[string]int, 0, 9)
	for i := 1; i <= 9; i++ {
		holes = append(holes, map[string]int{"number": i, "par": 4})
	}
	rr := postJSON(t, server, "/courses", map[string]any{"name": "Los Frutales", "holes": holes})
	require.Equal(t, http.StatusCreated, rr.Code)
	courseID := decodeJSON[map[string]int64](t, rr)["courseId"]

	rr = postJSON(t, server, "/tournaments", map[string]any{
		"name":      "Frutales Fecha 1",
		"courseId":  courseID,
		"startDate": "2026-03-07",
	})
	require.Equal(t, http.StatusCreated, rr.Code)
	trn := decodeJSON[tournament.Tournament](t, rr)
	require.NotEmpty(t, trn.Codigo)
	require.Equal(t, tournament.TipoFrutales, trn.Tipo)

	var scorecardIDs []int64
	for i, name := range []string{"Gomez", "Perez"} {
		rr = postJSON(t, server, "/players", map[string]any{
			"firstName":     "Test",
			"lastName":      name,
			"matricula":     fmt.Sprintf("M%d", i+1),
			"handicapIndex": 10.0 + float64(i),
		})
		require.Equal(t, http.StatusOK, rr.Code)
		player := decodeJSON[tournament.Player](t, rr)

		rr = postJSON(t, server, "/inscriptions", map[string]any{
			"tournamentId":   trn.ID,
			"playerId":       player.ID,
			"handicapCourse": 5.0,
		})
		require.Equal(t, http.StatusCreated, rr.Code)

		rr = postJSON(t, server, "/scorecards", map[string]any{
			"tournamentId":   trn.ID,
			"playerId":       player.ID,
			"handicapCourse": 5.0,
		})
		require.Equal(t, http.StatusOK, rr.Code)
		card := decodeJSON[scorecard.Scorecard](t, rr)
		require.Len(t, card.HoleScores, 9)
		scorecardIDs = append(scorecardIDs, card.ID)
	}

	return trn.ID, scorecardIDs
}

func fillScorecard(t *testing.T, server *Server, scorecardID int64, strokes int) {
	t.Helper()
	rr := get(t, server, fmt.Sprintf("/scorecards?id=%d", scorecardID))
	require.Equal(t, http.StatusOK, rr.Code)
	card := decodeJSON[scorecard.Scorecard](t, rr)

	updates := make([]map[string]any, 0, len(card.HoleScores))
	for _, hs := range card.HoleScores {
		updates = append(updates, map[string]any{"holeId": hs.HoleID, "ownStrokes": strokes})
	}
	rr = postJSON(t, server, "/scorecards/scores", map[string]any{
		"scorecardId": scorecardID,
		"scores":      updates,
	})
	require.Equal(t, http.StatusOK, rr.Code)
}

func TestHealthCheckHandler(t *testing.T) {
	server, _, _, teardown := setupTestServer(t)
	defer teardown()

	rr := get(t, server, "/health")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "OK!", rr.Body.String())
}

func TestCalculateScoresHandler(t *testing.T) {
	server, _, _, teardown := setupTestServer(t)
	defer teardown()

	tournamentID, scorecardIDs := seedTournament(t, server)
	fillScorecard(t, server, scorecardIDs[0], 5)
	fillScorecard(t, server, scorecardIDs[1], 6)

	for _, id := range scorecardIDs {
		rr := postJSON(t, server, fmt.Sprintf("/scorecards/deliver?id=%d", id), nil)
		require.Equal(t, http.StatusOK, rr.Code)
	}

	rr := postJSON(t, server, fmt.Sprintf("/frutales/calculate?tournamentID=%d", tournamentID), nil)
	require.Equal(t, http.StatusOK, rr.Code)

	scores := decodeJSON[[]frutales.Score](t, rr)
	require.Len(t, scores, 2)
	assert.Equal(t, 13, scores[0].TotalPoints)
	assert.Equal(t, 11, scores[1].TotalPoints)
	require.NotNil(t, scores[0].ScoreNeto)
	assert.Equal(t, 40.0, *scores[0].ScoreNeto)
}

func TestCalculateScoresHandler_NotFound(t *testing.T) {
	server, _, _, teardown := setupTestServer(t)
	defer teardown()

	rr := postJSON(t, server, "/frutales/calculate?tournamentID=999", nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestDeliverScorecardHandler_Incomplete(t *testing.T) {
	server, _, _, teardown := setupTestServer(t)
	defer teardown()

	_, scorecardIDs := seedTournament(t, server)

	rr := postJSON(t, server, fmt.Sprintf("/scorecards/deliver?id=%d", scorecardIDs[0]), nil)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestDisqualifyAndUndoHandlers(t *testing.T) {
	server, _, _, teardown := setupTestServer(t)
	defer teardown()

	_, scorecardIDs := seedTournament(t, server)
	id := scorecardIDs[0]

	rr := postJSON(t, server, fmt.Sprintf("/scorecards/disqualify?id=%d", id), nil)
	require.Equal(t, http.StatusOK, rr.Code)

	rr = get(t, server, fmt.Sprintf("/scorecards?id=%d", id))
	card := decodeJSON[scorecard.Scorecard](t, rr)
	assert.Equal(t, scorecard.StatusDisqualified, card.Status)

	rr = postJSON(t, server, fmt.Sprintf("/scorecards/undo-disqualify?id=%d", id), nil)
	require.Equal(t, http.StatusOK, rr.Code)

	rr = get(t, server, fmt.Sprintf("/scorecards?id=%d", id))
	card = decodeJSON[scorecard.Scorecard](t, rr)
	assert.Equal(t, scorecard.StatusInProgress, card.Status)
}

func TestRosterHandler_MergesInscriptionsWithoutScores(t *testing.T) {
	server, _, _, teardown := setupTestServer(t)
	defer teardown()

	tournamentID, scorecardIDs := seedTournament(t, server)
	fillScorecard(t, server, scorecardIDs[0], 5)
	rr := postJSON(t, server, fmt.Sprintf("/scorecards/deliver?id=%d", scorecardIDs[0]), nil)
	require.Equal(t, http.StatusOK, rr.Code)

	rr = postJSON(t, server, fmt.Sprintf("/frutales/calculate?tournamentID=%d", tournamentID), nil)
	require.Equal(t, http.StatusOK, rr.Code)

	rr = get(t, server, fmt.Sprintf("/frutales/roster?tournamentID=%d", tournamentID))
	require.Equal(t, http.StatusOK, rr.Code)

	var roster struct {
		Scores        []frutales.Score `json:"scores"`
		TiedPlayerIDs []int64          `json:"tiedPlayerIds"`
	}
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&roster))

	// Both inscribed players appear: the delivered one first with points, the
	// other without scores.
	require.Len(t, roster.Scores, 2)
	assert.Equal(t, 13, roster.Scores[0].TotalPoints)
	assert.Equal(t, scorecard.StatusDelivered, roster.Scores[0].Status)
	assert.Equal(t, 0, roster.Scores[1].TotalPoints)
	assert.Empty(t, roster.TiedPlayerIDs)
}

func TestFinalizeTournamentHandler(t *testing.T) {
	server, pubsubClient, _, teardown := setupTestServer(t)
	defer teardown()

	tournamentID, scorecardIDs := seedTournament(t, server)
	fillScorecard(t, server, scorecardIDs[0], 5)
	rr := postJSON(t, server, fmt.Sprintf("/scorecards/deliver?id=%d", scorecardIDs[0]), nil)
	require.Equal(t, http.StatusOK, rr.Code)
	// Second card stays in progress and must be cancelled on finalization.

	rr = postJSON(t, server, fmt.Sprintf("/tournaments/finalize?id=%d", tournamentID), nil)
	require.Equal(t, http.StatusOK, rr.Code)

	scores := decodeJSON[[]frutales.Score](t, rr)
	require.Len(t, scores, 2)
	assert.Equal(t, scorecard.StatusCancelled, scores[1].Status)
	assert.Equal(t, 1, scores[1].TotalPoints)

	rr = get(t, server, fmt.Sprintf("/tournaments?id=%d", tournamentID))
	trn := decodeJSON[tournament.Tournament](t, rr)
	assert.Equal(t, tournament.EstadoFinalized, trn.Estado)

	require.Len(t, pubsubClient.SendMessageCalls, 1)
	assert.Equal(t, string(pubsub.EventNotifyResults), pubsubClient.SendMessageCalls[0].Topic)
}

func TestNotifyResultsHandler(t *testing.T) {
	server, pubsubClient, notifierMock, teardown := setupTestServer(t)
	defer teardown()

	tournamentID, scorecardIDs := seedTournament(t, server)
	fillScorecard(t, server, scorecardIDs[0], 5)
	rr := postJSON(t, server, fmt.Sprintf("/scorecards/deliver?id=%d", scorecardIDs[0]), nil)
	require.Equal(t, http.StatusOK, rr.Code)
	rr = postJSON(t, server, fmt.Sprintf("/frutales/calculate?tournamentID=%d", tournamentID), nil)
	require.Equal(t, http.StatusOK, rr.Code)

	payload, err := msgpack.Marshal(resultsEvent{TournamentID: tournamentID})
	require.NoError(t, err)
	wrapper := map[string]any{
		"subscription": "test-sub",
		"message": map[string]string{
			"data": base64.StdEncoding.EncodeToString(payload),
		},
	}

	rr = postJSON(t, server, "/notify-results", wrapper)
	require.Equal(t, http.StatusOK, rr.Code)

	// The push payload must be decoded into the event before the lookup.
	require.Len(t, pubsubClient.ProcessMessageCalls, 1)
	require.Len(t, notifierMock.SendResultsNotificationCalls, 1)
	call := notifierMock.SendResultsNotificationCalls[0]
	assert.Equal(t, tournamentID, call.Tournament.ID)
	assert.NotEmpty(t, call.Scores)
}

func TestNotifyStandingsHandler(t *testing.T) {
	server, _, notifierMock, teardown := setupTestServer(t)
	defer teardown()

	tournamentID, scorecardIDs := seedTournament(t, server)
	fillScorecard(t, server, scorecardIDs[0], 5)
	rr := postJSON(t, server, fmt.Sprintf("/scorecards/deliver?id=%d", scorecardIDs[0]), nil)
	require.Equal(t, http.StatusOK, rr.Code)
	rr = postJSON(t, server, fmt.Sprintf("/frutales/calculate?tournamentID=%d", tournamentID), nil)
	require.Equal(t, http.StatusOK, rr.Code)

	rr = postJSON(t, server, fmt.Sprintf("/notify-standings?id=%d", tournamentID), nil)
	require.Equal(t, http.StatusOK, rr.Code)

	require.Len(t, notifierMock.SendStandingsCalls, 1)
	call := notifierMock.SendStandingsCalls[0]
	assert.Equal(t, tournamentID, call.Tournament.ID)
	assert.NotEmpty(t, call.Scores)
	assert.False(t, call.DryRun)
}

func TestNotifyStandingsHandler_NotFound(t *testing.T) {
	server, _, notifierMock, teardown := setupTestServer(t)
	defer teardown()

	rr := postJSON(t, server, "/notify-standings?id=999", nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Empty(t, notifierMock.SendStandingsCalls)
}

func TestResultsCommandHandler(t *testing.T) {
	server, _, notifierMock, teardown := setupTestServer(t)
	defer teardown()

	tournamentID, scorecardIDs := seedTournament(t, server)
	fillScorecard(t, server, scorecardIDs[0], 5)
	rr := postJSON(t, server, fmt.Sprintf("/scorecards/deliver?id=%d", scorecardIDs[0]), nil)
	require.Equal(t, http.StatusOK, rr.Code)
	rr = postJSON(t, server, fmt.Sprintf("/frutales/calculate?tournamentID=%d", tournamentID), nil)
	require.Equal(t, http.StatusOK, rr.Code)

	rr = get(t, server, fmt.Sprintf("/tournaments?id=%d", tournamentID))
	trn := decodeJSON[tournament.Tournament](t, rr)
	require.NotEmpty(t, trn.Codigo)

	var formatted *tournament.Tournament
	notifierMock.FormatResultsResponseFunc = func(tr *tournament.Tournament, scores []frutales.Score) (any, error) {
		formatted = tr
		return slack.NewBlockMessage(slack.NewHeaderBlock(
			slack.NewTextBlockObject(slack.PlainTextType, "Resultados", true, false),
		)), nil
	}

	rr = postForm(t, server, "/slack/commands/results", url.Values{"text": {trn.Codigo}})
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
	require.NotNil(t, formatted)
	assert.Equal(t, tournamentID, formatted.ID)

	var msg slack.Message
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&msg))
	require.NotEmpty(t, msg.Blocks.BlockSet)
}

func TestResultsCommandHandler_UnknownCodigo(t *testing.T) {
	server, _, _, teardown := setupTestServer(t)
	defer teardown()

	rr := postForm(t, server, "/slack/commands/results", url.Values{"text": {"NOPE1234"}})
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestLeaderboardHandler(t *testing.T) {
	server, _, _, teardown := setupTestServer(t)
	defer teardown()

	tournamentID, scorecardIDs := seedTournament(t, server)
	fillScorecard(t, server, scorecardIDs[0], 6)
	rr := postJSON(t, server, fmt.Sprintf("/scorecards/deliver?id=%d", scorecardIDs[0]), nil)
	require.Equal(t, http.StatusOK, rr.Code)

	rr = get(t, server, fmt.Sprintf("/leaderboard?tournamentID=%d", tournamentID))
	require.Equal(t, http.StatusOK, rr.Code)

	entries := decodeJSON[[]leaderboard.Entry](t, rr)
	require.Len(t, entries, 2)
	// Delivered entry first with computed net, then the in-progress player.
	assert.Equal(t, scorecard.StatusDelivered, entries[0].Status)
	require.NotNil(t, entries[0].ScoreNeto)
	assert.Equal(t, 49.0, *entries[0].ScoreNeto)
	assert.Equal(t, scorecard.StatusInProgress, entries[1].Status)
	assert.Nil(t, entries[1].ScoreNeto)
}

func TestClearStoreHandler(t *testing.T) {
	server, _, _, teardown := setupTestServer(t)
	defer teardown()

	seedTournament(t, server)
	rr := get(t, server, "/clear")
	require.Equal(t, http.StatusOK, rr.Code)

	rr = get(t, server, "/tournaments")
	trns := decodeJSON[[]tournament.Tournament](t, rr)
	assert.Empty(t, trns)
}
