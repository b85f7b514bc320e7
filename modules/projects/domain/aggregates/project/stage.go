package project

import "strings"

// Stage is a project's position in the delivery pipeline. The pipeline is a
// fixed ordered list; Hold and Dropped sit outside it as absorbing states.
type Stage string

const (
	StageBRSDiscussion        Stage = "BRS_Discussion"
	StageApproachPreparation  Stage = "Approach_Preparation"
	StageApproachFinalization Stage = "Approach_Finalization"
	StageUnderDevelopment     Stage = "Under_Development"
	StageUnderQA              Stage = "Under_QA"
	StageUnderUAT             Stage = "Under_UAT"
	StageUATSignoff           Stage = "UAT_Signoff"
	StageUnderPreprod         Stage = "Under_Preprod"
	StagePreprodSignoff       Stage = "Preprod_Signoff"
	StageLive                 Stage = "Live"

	StageHold    Stage = "Hold"
	StageDropped Stage = "Dropped"
)

var pipeline = []Stage{
	StageBRSDiscussion,
	StageApproachPreparation,
	StageApproachFinalization,
	StageUnderDevelopment,
	StageUnderQA,
	StageUnderUAT,
	StageUATSignoff,
	StageUnderPreprod,
	StagePreprodSignoff,
	StageLive,
}

var stageIndex = func() map[Stage]int {
	m := make(map[Stage]int, len(pipeline))
	for i, s := range pipeline {
		m[s] = i
	}
	return m
}()

func ParseStage(raw string) (Stage, bool) {
	s := Stage(strings.TrimSpace(raw))
	if _, ok := stageIndex[s]; ok {
		return s, true
	}
	if s == StageHold || s == StageDropped {
		return s, true
	}
	return "", false
}

// Index returns the stage's pipeline position, or -1 for the absorbing
// states, which have no position.
func (s Stage) Index() int {
	if i, ok := stageIndex[s]; ok {
		return i
	}
	return -1
}

func (s Stage) Absorbing() bool {
	return s == StageHold || s == StageDropped
}

// ReachedOrPast reports whether the stage sits at or beyond the milestone in
// pipeline order. Absorbing states never reach anything.
func (s Stage) ReachedOrPast(milestone Stage) bool {
	i := s.Index()
	return i >= 0 && i >= milestone.Index()
}
