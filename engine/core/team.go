package core

import "strconv"

// Team identifies which side a unit fights for
type Team uint8

const (
	TeamNeutral Team = iota
	TeamRed
	TeamBlue
	TeamGreen
)

var teamNames = [...]string{"neutral", "red", "blue", "green"}

func (t Team) String() string {
	if int(t) < len(teamNames) {
		return teamNames[t]
	}
	return "team" + strconv.Itoa(int(t))
}

// Allied checks if two teams fight on the same side
func (t Team) Allied(o Team) bool {
	return t == o
}

// Hostile checks if units of the two teams may attack each other. Neutral
// units are never hostile.
func (t Team) Hostile(o Team) bool {
	return t != o && t != TeamNeutral && o != TeamNeutral
}
