package scheduler

import (
	"sort"

	"github.com/viant/grid/model/machine"
)

// Score computes the placement score of a machine:
// (maxJobs - currentJobs) + availableDiskSpace + availableRAM.
// Better machines get assigned jobs first; the score orders placement
// attempts and nothing else.
func Score(aMachine *machine.Machine) float64 {
	return float64(aMachine.MaxJobs) - float64(aMachine.CurrentJobs()) +
		float64(aMachine.AvailableDiskMB()) + float64(aMachine.AvailableRAMMB())
}

// Rank orders machines by descending score. The sort is stable, so machines
// with equal scores keep the ascending-id order the registry supplies.
func Rank(machines []*machine.Machine) []*machine.Machine {
	ranked := make([]*machine.Machine, len(machines))
	copy(ranked, machines)
	sort.SliceStable(ranked, func(i, j int) bool {
		return Score(ranked[i]) > Score(ranked[j])
	})
	return ranked
}
