package frutales_test

import (
	"testing"

	"github.com/fergarri/golf-tournament-app/internal/frutales"
	"github.com/fergarri/golf-tournament-app/internal/scorecard"
	"github.com/fergarri/golf-tournament-app/internal/tournament"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int           { return &v }
func floatPtr(v float64) *float64 { return &v }

// makeCard builds a CardData over pars/strokes hole by hole. A nil entry in
// strokes leaves that hole empty.
func makeCard(id int64, status scorecard.Status, hcpCourse float64, hcpIndex float64, pars []int, strokes []*int) frutales.CardData {
	card := scorecard.Scorecard{
		ID:             id,
		TournamentID:   1,
		PlayerID:       id,
		HandicapCourse: floatPtr(hcpCourse),
		Status:         status,
	}
	for i, par := range pars {
		card.HoleScores = append(card.HoleScores, scorecard.HoleScore{
			HoleID:     int64(i + 1),
			HoleNumber: i + 1,
			Par:        par,
			OwnStrokes: strokes[i],
		})
	}
	return frutales.CardData{
		Card: card,
		Player: tournament.Player{
			ID:            id,
			FirstName:     "Player",
			LastName:      "Nr" + string(rune('A'+id)),
			Matricula:     "M" + string(rune('A'+id)),
			HandicapIndex: floatPtr(hcpIndex),
		},
	}
}

// flatRound returns nine filled holes: firstHole strokes on hole 1, rest on
// every other hole. Strokes at or above par never count as achievements.
func flatRound(firstHole, rest int) []*int {
	strokes := make([]*int, 9)
	strokes[0] = intPtr(firstHole)
	for i := 1; i < 9; i++ {
		strokes[i] = intPtr(rest)
	}
	return strokes
}

func parFours() []int {
	pars := make([]int, 9)
	for i := range pars {
		pars[i] = 4
	}
	return pars
}

func TestCompute_PositionPointsTable(t *testing.T) {
	// Seven delivered players with strictly increasing nets: the top six earn
	// position points, the seventh earns zero.
	var cards []frutales.CardData
	for k := 0; k < 7; k++ {
		cards = append(cards, makeCard(int64(k+1), scorecard.StatusDelivered, 0, 10, parFours(), flatRound(5+k, 5)))
	}

	results := frutales.Compute(cards, false)
	require.Len(t, results, 7)

	wantPosition := []int{12, 10, 8, 6, 4, 2, 0}
	for i, score := range results {
		require.NotNil(t, score.Position)
		assert.Equal(t, i+1, *score.Position)
		assert.Equal(t, int64(i+1), score.PlayerID)
		assert.Equal(t, wantPosition[i], score.PositionPoints)
		assert.Equal(t, 1, score.ParticipationPoints)
		assert.Equal(t, wantPosition[i]+1, score.TotalPoints)
	}
}

func TestCompute_AchievementPoints(t *testing.T) {
	pars := []int{4, 5, 3, 4, 4, 4, 4, 4, 4}
	strokes := []*int{intPtr(3), intPtr(3), intPtr(1), intPtr(4), intPtr(4), intPtr(4), intPtr(4), intPtr(4), intPtr(4)}
	cards := []frutales.CardData{makeCard(1, scorecard.StatusDelivered, 0, 10, pars, strokes)}

	results := frutales.Compute(cards, false)
	require.Len(t, results, 1)

	score := results[0]
	assert.Equal(t, 1, score.BirdieCount)
	assert.Equal(t, 1, score.EagleCount)
	assert.Equal(t, 1, score.AceCount)
	assert.Equal(t, 1, score.BirdiePoints)
	assert.Equal(t, 5, score.EaglePoints)
	assert.Equal(t, 10, score.AcePoints)
	assert.Equal(t, 12, score.PositionPoints)
	assert.Equal(t, 1, score.ParticipationPoints)
	assert.Equal(t, 29, score.TotalPoints)
}

func TestCompute_AceOnParThreeIsNotEagle(t *testing.T) {
	// A hole-in-one on a par 3 is two under par but must count as an ace.
	pars := []int{3, 4, 4, 4, 4, 4, 4, 4, 4}
	strokes := flatRound(1, 5)
	cards := []frutales.CardData{makeCard(1, scorecard.StatusDelivered, 0, 10, pars, strokes)}

	results := frutales.Compute(cards, false)
	require.Len(t, results, 1)
	assert.Equal(t, 1, results[0].AceCount)
	assert.Equal(t, 0, results[0].EagleCount)
}

func TestCompute_DoublePoints(t *testing.T) {
	pars := []int{4, 5, 3, 4, 4, 4, 4, 4, 4}
	strokes := []*int{intPtr(3), intPtr(3), intPtr(1), intPtr(4), intPtr(4), intPtr(4), intPtr(4), intPtr(4), intPtr(4)}
	cards := []frutales.CardData{makeCard(1, scorecard.StatusDelivered, 0, 10, pars, strokes)}

	results := frutales.Compute(cards, true)
	require.Len(t, results, 1)

	score := results[0]
	assert.Equal(t, 2, score.BirdiePoints)
	assert.Equal(t, 10, score.EaglePoints)
	assert.Equal(t, 20, score.AcePoints)
	assert.Equal(t, 24, score.PositionPoints)
	assert.Equal(t, 2, score.ParticipationPoints)
	assert.Equal(t, 58, score.TotalPoints)
}

func TestCompute_NetTieBrokenByHandicapIndex(t *testing.T) {
	cardA := makeCard(1, scorecard.StatusDelivered, 0, 18.5, parFours(), flatRound(5, 5))
	cardB := makeCard(2, scorecard.StatusDelivered, 0, 7.2, parFours(), flatRound(5, 5))
	// Same strokes everywhere: identical nets and count-back; the lower
	// handicap index wins.
	results := frutales.Compute([]frutales.CardData{cardA, cardB}, false)
	require.Len(t, results, 2)
	assert.Equal(t, int64(2), results[0].PlayerID)
	assert.Equal(t, 12, results[0].PositionPoints)
	assert.Equal(t, 10, results[1].PositionPoints)
}

func TestCompute_CountBackFromLastHole(t *testing.T) {
	strokesA := flatRound(5, 5)
	strokesA[1] = intPtr(4) // hole 2
	strokesA[0] = intPtr(6)
	strokesB := flatRound(5, 5)
	// Both gross 45, same handicap index. Walking back from hole 9, the first
	// difference is hole 2 where A has the lower score.
	cardA := makeCard(1, scorecard.StatusDelivered, 0, 10, parFours(), strokesA)
	cardB := makeCard(2, scorecard.StatusDelivered, 0, 10, parFours(), strokesB)

	results := frutales.Compute([]frutales.CardData{cardA, cardB}, false)
	require.Len(t, results, 2)
	assert.Equal(t, int64(1), results[0].PlayerID)
}

func TestCompute_CancelledEarnsParticipationAndAchievements(t *testing.T) {
	delivered := makeCard(1, scorecard.StatusDelivered, 0, 10, parFours(), flatRound(5, 5))
	cancelledStrokes := make([]*int, 9)
	cancelledStrokes[0] = intPtr(3) // birdie before the cancellation
	cancelled := makeCard(2, scorecard.StatusCancelled, 0, 10, parFours(), cancelledStrokes)

	results := frutales.Compute([]frutales.CardData{delivered, cancelled}, false)
	require.Len(t, results, 2)

	// Delivered: 12 position + 1 participation = 13, ranked first.
	assert.Equal(t, int64(1), results[0].PlayerID)
	assert.Equal(t, 13, results[0].TotalPoints)

	// Cancelled: 1 participation + 1 birdie = 2, no position points, no net.
	cancelledScore := results[1]
	assert.Equal(t, int64(2), cancelledScore.PlayerID)
	assert.Equal(t, scorecard.StatusCancelled, cancelledScore.Status)
	assert.Equal(t, 0, cancelledScore.PositionPoints)
	assert.Equal(t, 2, cancelledScore.TotalPoints)
	assert.Nil(t, cancelledScore.ScoreNeto)
	require.NotNil(t, cancelledScore.Position)
	assert.Equal(t, 2, *cancelledScore.Position)
}

func TestCompute_DeliveredWinsPointTieOverCancelled(t *testing.T) {
	// Delivered in 7th place: 0 position + 1 participation + 1 birdie = 2.
	// Cancelled with a birdie: 1 participation + 1 birdie = 2. Same total,
	// the delivered card ranks first.
	var cards []frutales.CardData
	for k := 0; k < 6; k++ {
		cards = append(cards, makeCard(int64(k+1), scorecard.StatusDelivered, 0, 10, parFours(), flatRound(5+k, 5)))
	}
	seventhStrokes := flatRound(20, 6)
	seventhStrokes[8] = intPtr(3) // birdie on the last hole
	cards = append(cards, makeCard(7, scorecard.StatusDelivered, 0, 10, parFours(), seventhStrokes))

	cancelledStrokes := make([]*int, 9)
	cancelledStrokes[0] = intPtr(3)
	cards = append(cards, makeCard(8, scorecard.StatusCancelled, 0, 10, parFours(), cancelledStrokes))

	results := frutales.Compute(cards, false)
	require.Len(t, results, 8)
	assert.Equal(t, 2, results[6].TotalPoints)
	assert.Equal(t, 2, results[7].TotalPoints)
	assert.Equal(t, int64(7), results[6].PlayerID)
	assert.Equal(t, int64(8), results[7].PlayerID)
}

func TestCompute_DisqualifiedGetsZeroRowWithoutPosition(t *testing.T) {
	delivered := makeCard(1, scorecard.StatusDelivered, 0, 10, parFours(), flatRound(5, 5))
	dqStrokes := flatRound(3, 3) // would have been full of birdies
	disqualified := makeCard(2, scorecard.StatusDisqualified, 0, 10, parFours(), dqStrokes)

	results := frutales.Compute([]frutales.CardData{disqualified, delivered}, false)
	require.Len(t, results, 2)

	assert.Equal(t, int64(1), results[0].PlayerID)

	dq := results[1]
	assert.Equal(t, int64(2), dq.PlayerID)
	assert.Equal(t, scorecard.StatusDisqualified, dq.Status)
	assert.Nil(t, dq.Position)
	assert.Equal(t, 0, dq.TotalPoints)
	assert.Equal(t, 0, dq.BirdiePoints)
	assert.Equal(t, 0, dq.ParticipationPoints)
}

func TestCompute_InProgressCardsAreSkipped(t *testing.T) {
	delivered := makeCard(1, scorecard.StatusDelivered, 0, 10, parFours(), flatRound(5, 5))
	inProgress := makeCard(2, scorecard.StatusInProgress, 0, 10, parFours(), flatRound(4, 4))

	results := frutales.Compute([]frutales.CardData{delivered, inProgress}, false)
	require.Len(t, results, 1)
	assert.Equal(t, int64(1), results[0].PlayerID)
}

func TestCompute_NetUsesCourseHandicap(t *testing.T) {
	// Higher gross but a large course handicap can still win on net.
	cardA := makeCard(1, scorecard.StatusDelivered, 10, 12, parFours(), flatRound(9, 5)) // gross 49, net 39
	cardB := makeCard(2, scorecard.StatusDelivered, 0, 5, parFours(), flatRound(5, 5))  // gross 45, net 45

	results := frutales.Compute([]frutales.CardData{cardB, cardA}, false)
	require.Len(t, results, 2)
	assert.Equal(t, int64(1), results[0].PlayerID)
	require.NotNil(t, results[0].ScoreNeto)
	assert.Equal(t, 39.0, *results[0].ScoreNeto)
	require.NotNil(t, results[0].ScoreGross)
	assert.Equal(t, 49, *results[0].ScoreGross)
}

func TestCompute_Empty(t *testing.T) {
	results := frutales.Compute(nil, false)
	assert.Empty(t, results)
}
