package frutales

import (
	"sort"

	"github.com/fergarri/golf-tournament-app/internal/scorecard"
)

// playerRound is the per-card working data for ranking and point allocation.
type playerRound struct {
	data         CardData
	neto         *float64
	hcpIndex     *float64
	birdieCount  int
	eagleCount   int
	aceCount     int
	scoresByHole map[int]int
	maxHole      int
}

// Compute allocates Frutales points for one event. DELIVERED cards are
// ranked by net score (ties broken by lower handicap index, then hole-by-hole
// count-back from the last hole) to earn position points; CANCELLED cards
// earn participation and achievement points only; DISQUALIFIED cards get an
// all-zero row. IN_PROGRESS cards are not scored. When doublePoints is set,
// every point component is doubled.
//
// The returned slice is ordered: positioned rows by final position, then
// disqualified rows. Final positions rank DELIVERED+CANCELLED cards by total
// points descending, DELIVERED winning point ties.
func Compute(cards []CardData, doublePoints bool) []Score {
	multiplier := 1
	if doublePoints {
		multiplier = 2
	}

	var delivered, cancelled, disqualified []playerRound
	for _, card := range cards {
		round := buildPlayerRound(card)
		switch card.Card.Status {
		case scorecard.StatusDelivered:
			delivered = append(delivered, round)
		case scorecard.StatusCancelled:
			cancelled = append(cancelled, round)
		case scorecard.StatusDisqualified:
			disqualified = append(disqualified, round)
		}
	}

	sort.SliceStable(delivered, func(i, j int) bool {
		return compareRounds(&delivered[i], &delivered[j]) < 0
	})

	type rankedScore struct {
		score Score
		round playerRound
	}
	var ranked []rankedScore

	for i, round := range delivered {
		deliveredRank := i + 1
		posPoints := PositionPoints[deliveredRank] * multiplier
		score := buildScore(round, multiplier)
		score.PositionPoints = posPoints
		score.TotalPoints += posPoints
		ranked = append(ranked, rankedScore{score: score, round: round})
	}

	for _, round := range cancelled {
		ranked = append(ranked, rankedScore{score: buildScore(round, multiplier), round: round})
	}

	// Final positions by total points across DELIVERED + CANCELLED.
	// Tie on total points: DELIVERED wins over CANCELLED.
	sort.SliceStable(ranked, func(i, j int) bool {
		a, b := &ranked[i], &ranked[j]
		if a.score.TotalPoints != b.score.TotalPoints {
			return a.score.TotalPoints > b.score.TotalPoints
		}
		aDelivered := a.round.data.Card.Status == scorecard.StatusDelivered
		bDelivered := b.round.data.Card.Status == scorecard.StatusDelivered
		if aDelivered != bDelivered {
			return aDelivered
		}
		if c := compareHandicapIndex(a.round.hcpIndex, b.round.hcpIndex); c != 0 {
			return c < 0
		}
		return compareHoleByHole(&a.round, &b.round) < 0
	})

	results := make([]Score, 0, len(ranked)+len(disqualified))
	for i := range ranked {
		position := i + 1
		ranked[i].score.Position = &position
		results = append(results, ranked[i].score)
	}

	// DS rows always included, zero points, no position.
	for _, round := range disqualified {
		score := identityScore(round)
		results = append(results, score)
	}

	return results
}

func buildPlayerRound(data CardData) playerRound {
	round := playerRound{
		data:         data,
		neto:         nil,
		hcpIndex:     data.Player.HandicapIndex,
		scoresByHole: make(map[int]int),
		maxHole:      9,
	}

	if data.Card.Status == scorecard.StatusDelivered {
		round.neto = data.Card.Net()
	}

	for _, hs := range data.Card.HoleScores {
		if hs.HoleNumber > round.maxHole {
			round.maxHole = hs.HoleNumber
		}
		if hs.OwnStrokes == nil {
			continue
		}
		strokes := *hs.OwnStrokes
		round.scoresByHole[hs.HoleNumber] = strokes

		switch {
		case strokes == 1:
			round.aceCount++
		case strokes == hs.Par-2:
			round.eagleCount++
		case strokes == hs.Par-1:
			round.birdieCount++
		}
	}
	return round
}

// buildScore fills the identity fields plus participation and achievement
// points. Position points are added separately for delivered cards.
func buildScore(round playerRound, multiplier int) Score {
	score := identityScore(round)
	score.BirdieCount = round.birdieCount
	score.EagleCount = round.eagleCount
	score.AceCount = round.aceCount
	score.BirdiePoints = round.birdieCount * BirdiePointValue * multiplier
	score.EaglePoints = round.eagleCount * EaglePointValue * multiplier
	score.AcePoints = round.aceCount * AcePointValue * multiplier
	score.ParticipationPoints = ParticipationPointValue * multiplier
	score.TotalPoints = score.BirdiePoints + score.EaglePoints + score.AcePoints + score.ParticipationPoints
	return score
}

func identityScore(round playerRound) Score {
	card := round.data.Card
	scorecardID := card.ID
	score := Score{
		ScorecardID:    &scorecardID,
		PlayerID:       round.data.Player.ID,
		PlayerName:     round.data.Player.DisplayName(),
		Matricula:      round.data.Player.Matricula,
		HandicapIndex:  round.data.Player.HandicapIndex,
		HandicapCourse: card.HandicapCourse,
		Status:         card.Status,
	}
	if card.Status == scorecard.StatusDelivered {
		score.ScoreGross = card.Gross()
		score.ScoreNeto = card.Net()
	}
	return score
}

// compareRounds orders delivered cards: lower net first, then lower handicap
// index, then hole-by-hole count-back.
func compareRounds(a, b *playerRound) int {
	netoA, netoB := 9999.0, 9999.0
	if a.neto != nil {
		netoA = *a.neto
	}
	if b.neto != nil {
		netoB = *b.neto
	}
	switch {
	case netoA < netoB:
		return -1
	case netoA > netoB:
		return 1
	}

	if c := compareHandicapIndex(a.hcpIndex, b.hcpIndex); c != 0 {
		return c
	}
	return compareHoleByHole(a, b)
}

func compareHandicapIndex(a, b *float64) int {
	hcpA, hcpB := 999.0, 999.0
	if a != nil {
		hcpA = *a
	}
	if b != nil {
		hcpB = *b
	}
	switch {
	case hcpA < hcpB:
		return -1
	case hcpA > hcpB:
		return 1
	}
	return 0
}

// compareHoleByHole walks from the last hole backwards; the lower score on
// the latest differing hole wins. Missing holes count as 99.
func compareHoleByHole(a, b *playerRound) int {
	startHole := a.maxHole
	if b.maxHole > startHole {
		startHole = b.maxHole
	}
	for hole := startHole; hole >= 1; hole-- {
		scoreA, okA := a.scoresByHole[hole]
		if !okA {
			scoreA = 99
		}
		scoreB, okB := b.scoresByHole[hole]
		if !okB {
			scoreB = 99
		}
		switch {
		case scoreA < scoreB:
			return -1
		case scoreA > scoreB:
			return 1
		}
	}
	return 0
}
