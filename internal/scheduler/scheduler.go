// Package scheduler runs the periodic jobs: weekly and monthly summary
// generation plus the morning recording reminder.
package scheduler

import (
	"errors"
	"time"

	"github.com/go-co-op/gocron/v2"
	log "github.com/sirupsen/logrus"

	"github.com/nmorrow/dream-server/internal/archive"
	"github.com/nmorrow/dream-server/internal/db"
	"github.com/nmorrow/dream-server/internal/insights"
	"github.com/nmorrow/dream-server/internal/models"
)

// Scheduler manages scheduled jobs.
type Scheduler struct {
	scheduler gocron.Scheduler
	db        *db.DB
	archive   *archive.Archive
	timezone  *time.Location
	cfg       Config
}

// Config holds scheduler configuration.
type Config struct {
	Timezone       string
	ReminderHour   int
	ReminderMinute int
}

// New creates a scheduler. Extra gocron options (a fake clock in tests)
// are appended after the location.
func New(database *db.DB, arc *archive.Archive, cfg Config, opts ...gocron.SchedulerOption) (*Scheduler, error) {
	tz, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		tz = time.UTC
	}

	s, err := gocron.NewScheduler(append([]gocron.SchedulerOption{gocron.WithLocation(tz)}, opts...)...)
	if err != nil {
		return nil, err
	}

	return &Scheduler{
		scheduler: s,
		db:        database,
		archive:   arc,
		timezone:  tz,
		cfg:       cfg,
	}, nil
}

// Start registers and starts all jobs.
func (s *Scheduler) Start() error {
	// Weekly summary on Sunday at 08:00
	_, err := s.scheduler.NewJob(
		gocron.WeeklyJob(1, gocron.NewWeekdays(time.Sunday), gocron.NewAtTimes(gocron.NewAtTime(8, 0, 0))),
		gocron.NewTask(s.generateWeeklySummary),
		gocron.WithName("weekly-summary"),
	)
	if err != nil {
		return err
	}

	// Monthly summary on the 1st at 08:00
	_, err = s.scheduler.NewJob(
		gocron.MonthlyJob(1, gocron.NewDaysOfTheMonth(1), gocron.NewAtTimes(gocron.NewAtTime(8, 0, 0))),
		gocron.NewTask(s.generateMonthlySummary),
		gocron.WithName("monthly-summary"),
	)
	if err != nil {
		return err
	}

	// Morning recording reminder
	_, err = s.scheduler.NewJob(
		gocron.DailyJob(1, gocron.NewAtTimes(gocron.NewAtTime(uint(s.cfg.ReminderHour), uint(s.cfg.ReminderMinute), 0))),
		gocron.NewTask(s.morningReminder),
		gocron.WithName("morning-reminder"),
	)
	if err != nil {
		return err
	}

	s.scheduler.Start()
	log.Println("Scheduler started")
	return nil
}

// Stop stops the scheduler.
func (s *Scheduler) Stop() error {
	return s.scheduler.Shutdown()
}

func (s *Scheduler) generateWeeklySummary() {
	s.runSummaryJob("weekly-summary", models.PeriodWeekly)
}

func (s *Scheduler) generateMonthlySummary() {
	s.runSummaryJob("monthly-summary", models.PeriodMonthly)
}

func (s *Scheduler) runSummaryJob(jobType, periodType string) {
	log.Printf("Running %s generation...", jobType)
	runID, err := s.db.StartSchedulerRun(jobType)
	if err != nil {
		log.Printf("Recording %s run: %v", jobType, err)
	}

	summary, err := BuildPeriodSummary(s.db, s.archive, periodType, time.Now().In(s.timezone))
	switch {
	case errors.Is(err, insights.ErrNoEntries):
		log.Printf("No entries in the last %s period, skipping summary", periodType)
		s.completeRun(runID, "")
	case err != nil:
		log.Printf("Generating %s summary: %v", periodType, err)
		s.completeRun(runID, err.Error())
	default:
		log.Printf("Generated %s summary %s (%d entries)", periodType, summary.ID, summary.TotalEntries)
		s.completeRun(runID, "")
	}
}

func (s *Scheduler) completeRun(runID int64, errMsg string) {
	if runID == 0 {
		return
	}
	if err := s.db.CompleteSchedulerRun(runID, errMsg); err != nil {
		log.Printf("Completing scheduler run %d: %v", runID, err)
	}
}

func (s *Scheduler) morningReminder() {
	log.Println("Reminder: record last night's dreams while they are fresh")
}
