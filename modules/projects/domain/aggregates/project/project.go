package project

import (
	"strings"
	"time"
)

const (
	OnTrack = "On Track"
	Delayed = "Delayed"
)

// Project is a tracked delivery with stage-derived schedule fields. The
// sprint/UAT/go-live dates, onTrackStatus and manDays are derived by the
// schedule automaton, persisted only so they can be queried.
type Project struct {
	id              int64
	name            string
	description     string
	priority        string
	platform        string
	stage           Stage
	startDate       *time.Time
	plannedEndDate  *time.Time
	sprintStartDate *time.Time
	sprintEndDate   *time.Time
	uatReleaseDate  *time.Time
	goLiveDate      *time.Time
	onTrackStatus   string
	manDays         int
	createdAt       time.Time
	updatedAt       time.Time
}

func New(name, description, priority, platform string, startDate, plannedEndDate *time.Time) Project {
	if priority == "" {
		priority = "Medium"
	}
	return Project{
		name:           strings.TrimSpace(name),
		description:    strings.TrimSpace(description),
		priority:       priority,
		platform:       strings.TrimSpace(platform),
		stage:          StageBRSDiscussion,
		startDate:      startDate,
		plannedEndDate: plannedEndDate,
		onTrackStatus:  OnTrack,
	}
}

func Hydrate(
	id int64,
	name string,
	description string,
	priority string,
	platform string,
	stage Stage,
	startDate *time.Time,
	plannedEndDate *time.Time,
	sprintStartDate *time.Time,
	sprintEndDate *time.Time,
	uatReleaseDate *time.Time,
	goLiveDate *time.Time,
	onTrackStatus string,
	manDays int,
	createdAt time.Time,
	updatedAt time.Time,
) Project {
	return Project{
		id:              id,
		name:            name,
		description:     description,
		priority:        priority,
		platform:        platform,
		stage:           stage,
		startDate:       startDate,
		plannedEndDate:  plannedEndDate,
		sprintStartDate: sprintStartDate,
		sprintEndDate:   sprintEndDate,
		uatReleaseDate:  uatReleaseDate,
		goLiveDate:      goLiveDate,
		onTrackStatus:   onTrackStatus,
		manDays:         manDays,
		createdAt:       createdAt,
		updatedAt:       updatedAt,
	}
}

func (p Project) ID() int64                   { return p.id }
func (p Project) Name() string                { return p.name }
func (p Project) Description() string         { return p.description }
func (p Project) Priority() string            { return p.priority }
func (p Project) Platform() string            { return p.platform }
func (p Project) Stage() Stage                { return p.stage }
func (p Project) StartDate() *time.Time       { return p.startDate }
func (p Project) PlannedEndDate() *time.Time  { return p.plannedEndDate }
func (p Project) SprintStartDate() *time.Time { return p.sprintStartDate }
func (p Project) SprintEndDate() *time.Time   { return p.sprintEndDate }
func (p Project) UATReleaseDate() *time.Time  { return p.uatReleaseDate }
func (p Project) GoLiveDate() *time.Time      { return p.goLiveDate }
func (p Project) OnTrackStatus() string       { return p.onTrackStatus }
func (p Project) ManDays() int                { return p.manDays }
func (p Project) CreatedAt() time.Time        { return p.createdAt }
func (p Project) UpdatedAt() time.Time        { return p.updatedAt }

func (p Project) WithDetails(name, description, priority, platform string) Project {
	p.name = strings.TrimSpace(name)
	p.description = strings.TrimSpace(description)
	if priority != "" {
		p.priority = priority
	}
	p.platform = strings.TrimSpace(platform)
	return p
}

func (p Project) WithStage(stage Stage) Project {
	p.stage = stage
	return p
}

func (p Project) WithDates(startDate, plannedEndDate *time.Time) Project {
	p.startDate = startDate
	p.plannedEndDate = plannedEndDate
	return p
}

// WithSchedule overwrites the derived fields with the automaton's output.
func (p Project) WithSchedule(
	sprintStartDate *time.Time,
	sprintEndDate *time.Time,
	uatReleaseDate *time.Time,
	goLiveDate *time.Time,
	onTrackStatus string,
	manDays int,
) Project {
	p.sprintStartDate = sprintStartDate
	p.sprintEndDate = sprintEndDate
	p.uatReleaseDate = uatReleaseDate
	p.goLiveDate = goLiveDate
	p.onTrackStatus = onTrackStatus
	p.manDays = manDays
	return p
}
