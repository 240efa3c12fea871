package http

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/fergarri/golf-tournament-app/internal/frutales"
	"github.com/fergarri/golf-tournament-app/internal/pubsub"
	"github.com/fergarri/golf-tournament-app/internal/scorecard"
	"github.com/fergarri/golf-tournament-app/internal/tournament"
	"github.com/slack-go/slack"
)

// resultsEvent is the pubsub payload published when a tournament is finalized.
type resultsEvent struct {
	TournamentID int64 `msgpack:"tournamentId"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error("Failed to encode response", "error", err)
	}
}

// idParam parses an int64 query parameter, writing a 400 on failure.
func idParam(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	raw := r.URL.Query().Get(name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		http.Error(w, fmt.Sprintf("Invalid or missing '%s' parameter", name), http.StatusBadRequest)
		return 0, false
	}
	return id, true
}

// writeStoreError maps store errors onto HTTP status codes.
func writeStoreError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, tournament.ErrNotFound), errors.Is(err, scorecard.ErrNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, scorecard.ErrInvalidTransition):
		http.Error(w, err.Error(), http.StatusConflict)
	case errors.Is(err, scorecard.ErrIncompleteScores), errors.Is(err, frutales.ErrNotFrutales):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (s *Server) HealthCheckHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log.Debug("Received health check request")
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, "OK!")
	}
}

func (s *Server) ClearStoreHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log.Info("Received request to clear entire store")
		s.Tournaments.Clear()
		w.WriteHeader(http.StatusOK)
		fmt.Fprint(w, "Store cleared!")
		log.Info("Store cleared successfully")
	}
}

func (s *Server) PlayersHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			players, err := s.Tournaments.GetAllPlayers()
			if err != nil {
				writeStoreError(w, err)
				return
			}
			writeJSON(w, http.StatusOK, players)
		case http.MethodPost:
			var player tournament.Player
			if err := json.NewDecoder(r.Body).Decode(&player); err != nil {
				http.Error(w, "Invalid JSON", http.StatusBadRequest)
				return
			}
			if player.Matricula == "" || player.LastName == "" {
				http.Error(w, "matricula and lastName are required", http.StatusBadRequest)
				return
			}
			if err := s.Tournaments.UpsertPlayer(&player); err != nil {
				writeStoreError(w, err)
				return
			}
			writeJSON(w, http.StatusOK, player)
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	}
}

func (s *Server) CreateCourseHandler() http.HandlerFunc {
	type holeRequest struct {
		Number int `json:"number"`
		Par    int `json:"par"`
	}
	type courseRequest struct {
		Name  string        `json:"name"`
		Holes []holeRequest `json:"holes"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		var req courseRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid JSON", http.StatusBadRequest)
			return
		}
		if req.Name == "" || len(req.Holes) == 0 {
			http.Error(w, "name and holes are required", http.StatusBadRequest)
			return
		}
		holes := make([]tournament.Hole, 0, len(req.Holes))
		for _, h := range req.Holes {
			holes = append(holes, tournament.Hole{Number: h.Number, Par: h.Par})
		}
		courseID, err := s.Tournaments.CreateCourse(req.Name, holes)
		if err != nil {
			writeStoreError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, map[string]int64{"courseId": courseID})
	}
}

func (s *Server) TournamentsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			if codigo := r.URL.Query().Get("codigo"); codigo != "" {
				t, err := s.Tournaments.GetTournamentByCodigo(codigo)
				if err != nil {
					writeStoreError(w, err)
					return
				}
				writeJSON(w, http.StatusOK, t)
				return
			}
			if r.URL.Query().Get("id") != "" {
				id, ok := idParam(w, r, "id")
				if !ok {
					return
				}
				t, err := s.Tournaments.GetTournament(id)
				if err != nil {
					writeStoreError(w, err)
					return
				}
				writeJSON(w, http.StatusOK, t)
				return
			}
			tournaments, err := s.Tournaments.ListTournaments()
			if err != nil {
				writeStoreError(w, err)
				return
			}
			writeJSON(w, http.StatusOK, tournaments)
		case http.MethodPost:
			var t tournament.Tournament
			if err := json.NewDecoder(r.Body).Decode(&t); err != nil {
				http.Error(w, "Invalid JSON", http.StatusBadRequest)
				return
			}
			if t.Name == "" || t.CourseID == 0 {
				http.Error(w, "name and courseId are required", http.StatusBadRequest)
				return
			}
			if err := s.Tournaments.CreateTournament(&t); err != nil {
				writeStoreError(w, err)
				return
			}
			writeJSON(w, http.StatusCreated, t)
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	}
}

func (s *Server) ActivateTournamentHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		id, ok := idParam(w, r, "id")
		if !ok {
			return
		}
		if err := s.Tournaments.SetTournamentEstado(id, tournament.EstadoActive); err != nil {
			writeStoreError(w, err)
			return
		}
		log.Info("Tournament activated", "tournamentID", id)
		w.WriteHeader(http.StatusOK)
		fmt.Fprint(w, "Tournament activated")
	}
}

// FinalizeTournamentHandler closes a tournament: in-progress scorecards are
// cancelled, points are recalculated one last time, the estado moves to
// FINALIZED and a results notification event is published.
func (s *Server) FinalizeTournamentHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		id, ok := idParam(w, r, "id")
		if !ok {
			return
		}
		isDryRun := isDryRunFromContext(r)

		cancelled, err := s.Scorecards.CancelInProgress(id)
		if err != nil {
			writeStoreError(w, err)
			return
		}
		log.Info("Cancelled in-progress scorecards", "tournamentID", id, "count", cancelled)

		scores, err := s.Frutales.Calculate(id)
		if err != nil {
			writeStoreError(w, err)
			return
		}

		if err := s.Tournaments.SetTournamentEstado(id, tournament.EstadoFinalized); err != nil {
			writeStoreError(w, err)
			return
		}

		if isDryRun {
			log.Info("[Dry Run] Would publish results notification event", "tournamentID", id)
		} else if err := s.pubsub.SendMessage(pubsub.EventNotifyResults, resultsEvent{TournamentID: id}); err != nil {
			// Finalization already happened; the notification can be retried.
			log.Error("Failed to publish results event", "error", err, "tournamentID", id)
		}

		writeJSON(w, http.StatusOK, scores)
	}
}

func (s *Server) InscriptionsHandler() http.HandlerFunc {
	type inscriptionRequest struct {
		TournamentID   int64    `json:"tournamentId"`
		PlayerID       int64    `json:"playerId"`
		HandicapCourse *float64 `json:"handicapCourse,omitempty"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			id, ok := idParam(w, r, "tournamentID")
			if !ok {
				return
			}
			inscriptions, err := s.Tournaments.GetInscriptions(id)
			if err != nil {
				writeStoreError(w, err)
				return
			}
			writeJSON(w, http.StatusOK, inscriptions)
		case http.MethodPost:
			var req inscriptionRequest
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				http.Error(w, "Invalid JSON", http.StatusBadRequest)
				return
			}
			if req.TournamentID == 0 || req.PlayerID == 0 {
				http.Error(w, "tournamentId and playerId are required", http.StatusBadRequest)
				return
			}
			inscriptionID, err := s.Tournaments.AddInscription(req.TournamentID, req.PlayerID, req.HandicapCourse)
			if err != nil {
				writeStoreError(w, err)
				return
			}
			writeJSON(w, http.StatusCreated, map[string]int64{"inscriptionId": inscriptionID})
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	}
}

func (s *Server) LeaderboardHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := idParam(w, r, "tournamentID")
		if !ok {
			return
		}
		entries, err := s.Leaderboard.BuildEntries(id)
		if err != nil {
			writeStoreError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, entries)
	}
}

func (s *Server) FrutalesScoresHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := idParam(w, r, "tournamentID")
		if !ok {
			return
		}
		scores, err := s.Frutales.GetScores(id)
		if err != nil {
			writeStoreError(w, err)
			return
		}
		if scores == nil {
			scores = []frutales.Score{}
		}
		writeJSON(w, http.StatusOK, scores)
	}
}

func (s *Server) CalculateScoresHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		id, ok := idParam(w, r, "tournamentID")
		if !ok {
			return
		}
		scores, err := s.Frutales.Calculate(id)
		if err != nil {
			writeStoreError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, scores)
	}
}

// RosterHandler returns the merged Frutales roster: every inscribed player,
// with calculated points where available, plus the set of tied players.
func (s *Server) RosterHandler() http.HandlerFunc {
	type rosterResponse struct {
		Scores        []frutales.Score `json:"scores"`
		TiedPlayerIDs []int64          `json:"tiedPlayerIds"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := idParam(w, r, "tournamentID")
		if !ok {
			return
		}
		roster, tied, err := s.Leaderboard.Roster(id)
		if err != nil {
			writeStoreError(w, err)
			return
		}
		tiedIDs := make([]int64, 0, len(tied))
		for playerID := range tied {
			tiedIDs = append(tiedIDs, playerID)
		}
		sort.Slice(tiedIDs, func(i, j int) bool { return tiedIDs[i] < tiedIDs[j] })
		writeJSON(w, http.StatusOK, rosterResponse{Scores: roster, TiedPlayerIDs: tiedIDs})
	}
}

func (s *Server) ScorecardsHandler() http.HandlerFunc {
	type scorecardRequest struct {
		TournamentID   int64    `json:"tournamentId"`
		PlayerID       int64    `json:"playerId"`
		HandicapCourse *float64 `json:"handicapCourse,omitempty"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			if r.URL.Query().Get("id") != "" {
				id, ok := idParam(w, r, "id")
				if !ok {
					return
				}
				card, err := s.Scorecards.GetByID(id)
				if err != nil {
					writeStoreError(w, err)
					return
				}
				writeJSON(w, http.StatusOK, card)
				return
			}
			id, ok := idParam(w, r, "tournamentID")
			if !ok {
				return
			}
			cards, err := s.Scorecards.ListByTournament(id)
			if err != nil {
				writeStoreError(w, err)
				return
			}
			writeJSON(w, http.StatusOK, cards)
		case http.MethodPost:
			var req scorecardRequest
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				http.Error(w, "Invalid JSON", http.StatusBadRequest)
				return
			}
			if req.TournamentID == 0 || req.PlayerID == 0 {
				http.Error(w, "tournamentId and playerId are required", http.StatusBadRequest)
				return
			}
			t, err := s.Tournaments.GetTournament(req.TournamentID)
			if err != nil {
				writeStoreError(w, err)
				return
			}
			holes, err := s.Tournaments.GetCourseHoles(t.CourseID)
			if err != nil {
				writeStoreError(w, err)
				return
			}
			plan := make([]scorecard.HolePlan, 0, len(holes))
			for _, hole := range holes {
				plan = append(plan, scorecard.HolePlan{HoleID: hole.ID, Number: hole.Number, Par: hole.Par})
			}
			card, err := s.Scorecards.GetOrCreate(req.TournamentID, req.PlayerID, req.HandicapCourse, plan)
			if err != nil {
				writeStoreError(w, err)
				return
			}
			writeJSON(w, http.StatusOK, card)
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	}
}

func (s *Server) UpdateHoleScoresHandler() http.HandlerFunc {
	type updateRequest struct {
		ScorecardID int64                       `json:"scorecardId"`
		Scores      []scorecard.HoleScoreUpdate `json:"scores"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		var req updateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid JSON", http.StatusBadRequest)
			return
		}
		if req.ScorecardID == 0 || len(req.Scores) == 0 {
			http.Error(w, "scorecardId and scores are required", http.StatusBadRequest)
			return
		}
		if err := s.Scorecards.UpdateHoleScores(req.ScorecardID, req.Scores); err != nil {
			writeStoreError(w, err)
			return
		}
		card, err := s.Scorecards.GetByID(req.ScorecardID)
		if err != nil {
			writeStoreError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, card)
	}
}

func (s *Server) DeliverScorecardHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		id, ok := idParam(w, r, "id")
		if !ok {
			return
		}
		if err := s.Scorecards.Deliver(id); err != nil {
			writeStoreError(w, err)
			return
		}
		s.Metrics.IncScorecardsDelivered()
		log.Info("Scorecard delivered", "scorecardID", id)
		w.WriteHeader(http.StatusOK)
		fmt.Fprint(w, "Scorecard delivered")
	}
}

func (s *Server) DisqualifyScorecardHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		id, ok := idParam(w, r, "id")
		if !ok {
			return
		}
		if err := s.Scorecards.Disqualify(id); err != nil {
			writeStoreError(w, err)
			return
		}
		log.Info("Scorecard disqualified", "scorecardID", id)
		w.WriteHeader(http.StatusOK)
		fmt.Fprint(w, "Scorecard disqualified")
	}
}

func (s *Server) UndoDisqualifyScorecardHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		id, ok := idParam(w, r, "id")
		if !ok {
			return
		}
		if err := s.Scorecards.UndoDisqualify(id); err != nil {
			writeStoreError(w, err)
			return
		}
		log.Info("Scorecard disqualification undone", "scorecardID", id)
		w.WriteHeader(http.StatusOK)
		fmt.Fprint(w, "Disqualification undone")
	}
}

// NotifyResultsHandler receives a pubsub push message for a finalized
// tournament and sends the results notification.
func (s *Server) NotifyResultsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		bodyBytes, err := io.ReadAll(r.Body)
		if err != nil {
			log.Error("Failed to read request body", "error", err)
			http.Error(w, "Failed to read request body", http.StatusInternalServerError)
			return
		}
		log.Debug("Received notify results message", "body", string(bodyBytes))
		// Define a small struct to decode the incoming JSON's `data` field
		var pubsubMsg struct {
			Subscription string `json:"subscription"`
			Message      struct {
				Data string `json:"data"` // base64-encoded message payload
			} `json:"message"`
		}

		// Parse the outer JSON to get `data`
		if err := json.Unmarshal(bodyBytes, &pubsubMsg); err != nil {
			log.Error("Failed to unmarshal wrapper JSON", "error", err)
			http.Error(w, "Invalid JSON", http.StatusBadRequest)
			return
		}
		// Decode base64 to raw MessagePack bytes
		rawData, err := base64.StdEncoding.DecodeString(pubsubMsg.Message.Data)
		if err != nil {
			log.Error("Failed to decode base64 data", "error", err)
			http.Error(w, "Invalid base64 data", http.StatusBadRequest)
			return
		}
		isDryRun := isDryRunFromContext(r)
		event := resultsEvent{}
		if err := s.pubsub.ProcessMessage(rawData, &event); err != nil {
			http.Error(w, "Invalid message payload", http.StatusBadRequest)
			return
		}

		t, err := s.Tournaments.GetTournament(event.TournamentID)
		if err != nil {
			writeStoreError(w, err)
			return
		}
		scores, err := s.Frutales.GetScores(event.TournamentID)
		if err != nil {
			writeStoreError(w, err)
			return
		}
		if err := s.Notifier.SendResultsNotification(t, scores, isDryRun); err != nil {
			log.Error("Failed to send results notification", "error", err, "tournamentID", event.TournamentID)
			http.Error(w, "Failed to send notification", http.StatusInternalServerError)
			return
		}
		w.Write([]byte("OK"))
	}
}

// NotifyStandingsHandler posts the current standings of a tournament to the
// notification channel, without finalizing anything.
func (s *Server) NotifyStandingsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		id, ok := idParam(w, r, "id")
		if !ok {
			return
		}
		t, err := s.Tournaments.GetTournament(id)
		if err != nil {
			writeStoreError(w, err)
			return
		}
		scores, err := s.Frutales.GetScores(id)
		if err != nil {
			writeStoreError(w, err)
			return
		}
		if err := s.Notifier.SendStandings(t, scores, isDryRunFromContext(r)); err != nil {
			log.Error("Failed to send standings", "error", err, "tournamentID", id)
			http.Error(w, "Failed to send notification", http.StatusInternalServerError)
			return
		}
		w.Write([]byte("OK"))
	}
}

// respondWithSlackMsg is a helper to format and write a Slack message as an HTTP response.
func respondWithSlackMsg(w http.ResponseWriter, msg slack.Message) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(msg); err != nil {
		log.Error("Failed to encode slack message to JSON", "error", err)
	}
}

// ResultsCommandHandler returns a handler for the /resultados Slack command.
// The command text is the tournament's public codigo.
func (s *Server) ResultsCommandHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Error parsing form", http.StatusBadRequest)
			return
		}
		codigo := r.FormValue("text")
		if codigo == "" {
			http.Error(w, "Tournament codigo is required.", http.StatusBadRequest)
			return
		}
		t, err := s.Tournaments.GetTournamentByCodigo(codigo)
		if err != nil {
			writeStoreError(w, err)
			return
		}
		scores, err := s.Frutales.GetScores(t.ID)
		if err != nil {
			writeStoreError(w, err)
			return
		}

		msg, err := s.Notifier.FormatResultsResponse(t, scores)
		if err != nil {
			http.Error(w, "Failed to format results", http.StatusInternalServerError)
			log.Error("Failed to format results", "error", err)
			return
		}

		slackMsg, ok := msg.(slack.Message)
		if !ok {
			http.Error(w, "Invalid message format for Slack", http.StatusInternalServerError)
			log.Error("Failed to cast message to slack.Message")
			return
		}

		respondWithSlackMsg(w, slackMsg)
	}
}
