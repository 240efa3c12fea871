package frutales

// Point values for the Frutales recurring series. Position points reward the
// top six delivered finishers; everyone below scores zero for position.
var PositionPoints = map[int]int{
	1: 12,
	2: 10,
	3: 8,
	4: 6,
	5: 4,
	6: 2,
}

// Per-achievement and participation point values.
const (
	BirdiePointValue        = 1
	EaglePointValue         = 5
	AcePointValue           = 10
	ParticipationPointValue = 1
)
