package leaderboard_test

import (
	"testing"

	"github.com/fergarri/golf-tournament-app/internal/frutales"
	"github.com/fergarri/golf-tournament-app/internal/leaderboard"
	"github.com/fergarri/golf-tournament-app/internal/scorecard"
	"github.com/stretchr/testify/assert"
)

func TestTiedPlayerIDs(t *testing.T) {
	scores := []frutales.Score{
		{PlayerID: 1, Status: scorecard.StatusDelivered, ScoreNeto: floatPtr(40)},
		{PlayerID: 2, Status: scorecard.StatusDelivered, ScoreNeto: floatPtr(40)},
		{PlayerID: 3, Status: scorecard.StatusDelivered, ScoreNeto: floatPtr(41)},
		{PlayerID: 4, Status: scorecard.StatusDelivered, ScoreNeto: floatPtr(40.5)},
		{PlayerID: 5, Status: scorecard.StatusDelivered, ScoreNeto: floatPtr(40.5)},
	}

	tied := leaderboard.TiedPlayerIDs(scores)
	assert.Len(t, tied, 4)
	assert.True(t, tied[1])
	assert.True(t, tied[2])
	assert.False(t, tied[3])
	assert.True(t, tied[4])
	assert.True(t, tied[5])
}

func TestTiedPlayerIDs_IgnoresUndeliveredAndMissingNets(t *testing.T) {
	scores := []frutales.Score{
		{PlayerID: 1, Status: scorecard.StatusDelivered, ScoreNeto: floatPtr(40)},
		{PlayerID: 2, Status: scorecard.StatusDisqualified, ScoreNeto: floatPtr(40)},
		{PlayerID: 3, Status: scorecard.StatusInProgress, ScoreNeto: floatPtr(40)},
		{PlayerID: 4, Status: scorecard.StatusDelivered},
		{PlayerID: 5, Status: scorecard.StatusDelivered},
	}

	tied := leaderboard.TiedPlayerIDs(scores)
	assert.Empty(t, tied)
}

func TestStatusLabel(t *testing.T) {
	assert.Equal(t, "DS", leaderboard.StatusLabel(scorecard.StatusDisqualified, true))
	assert.Equal(t, "DS", leaderboard.StatusLabel(scorecard.StatusDisqualified, false))
	assert.Equal(t, "NM", leaderboard.StatusLabel(scorecard.StatusInProgress, true))
	assert.Equal(t, "NM", leaderboard.StatusLabel(scorecard.StatusCancelled, true))
	assert.Equal(t, "", leaderboard.StatusLabel(scorecard.StatusInProgress, false))
	assert.Equal(t, "", leaderboard.StatusLabel(scorecard.StatusDelivered, true))
}
