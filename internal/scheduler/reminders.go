// Package scheduler runs periodic jobs on a cron schedule.
package scheduler

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/mrlokans/libraryhub/internal/activity"
	"github.com/mrlokans/libraryhub/internal/domain"
	"github.com/mrlokans/libraryhub/internal/notify"
)

// DefaultReminderSchedule runs the due reminder job every morning.
const DefaultReminderSchedule = "0 8 * * *"

var parser = cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)

// ValidateSchedule checks that expr is a five-field cron expression.
func ValidateSchedule(expr string) error {
	_, err := parser.Parse(expr)
	return err
}

// DueLoanSource lists open loans that fall due soon.
type DueLoanSource interface {
	DueSoon(ctx context.Context) ([]domain.Loan, error)
}

// SettingsSource reads the current system settings.
type SettingsSource interface {
	Get(ctx context.Context) (domain.SystemSettings, error)
}

// ActivityRecorder stores reminder entries.
type ActivityRecorder interface {
	Append(a domain.NewActivity) domain.ActivityEntry
}

// DueReminderScheduler records a loan_due_soon activity and raises a warning for every loan
// about to fall due. Each loan is reminded about at most once per day.
type DueReminderScheduler struct {
	loans    DueLoanSource
	settings SettingsSource
	activity ActivityRecorder
	notifier notify.Notifier
	schedule string

	cron       *cron.Cron
	entryID    cron.EntryID
	mu         sync.RWMutex
	isRunning  bool
	run        int
	cancelFunc context.CancelFunc

	sentMu sync.Mutex
	sent   map[uint]string
	now    func() time.Time
}

// NewDueReminderScheduler creates a scheduler. An empty schedule uses DefaultReminderSchedule.
func NewDueReminderScheduler(loans DueLoanSource, settings SettingsSource, rec ActivityRecorder, n notify.Notifier, schedule string) *DueReminderScheduler {
	if schedule == "" {
		schedule = DefaultReminderSchedule
	}
	if n == nil {
		n = notify.Discard
	}
	return &DueReminderScheduler{
		loans:    loans,
		settings: settings,
		activity: rec,
		notifier: n,
		schedule: schedule,
		cron:     cron.New(cron.WithParser(parser)),
		sent:     make(map[uint]string),
		now:      time.Now,
	}
}

// Start schedules the job and returns immediately. The scheduler stops when ctx is cancelled.
func (s *DueReminderScheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return nil
	}

	if err := ValidateSchedule(s.schedule); err != nil {
		return fmt.Errorf("invalid cron schedule '%s': %w", s.schedule, err)
	}

	entryID, err := s.cron.AddFunc(s.schedule, func() {
		if _, err := s.RunNow(context.Background()); err != nil {
			log.Printf("Due reminders: %v", err)
		}
	})
	if err != nil {
		return fmt.Errorf("failed to schedule due reminders: %w", err)
	}
	s.entryID = entryID

	var cancelCtx context.Context
	cancelCtx, s.cancelFunc = context.WithCancel(ctx)

	s.cron.Start()
	s.isRunning = true
	s.run++

	log.Printf("Due reminders: started with schedule '%s'", s.schedule)

	go func(run int) {
		<-cancelCtx.Done()
		s.stop(run)
	}(s.run)

	return nil
}

// Stop waits for a running job to finish and stops the scheduler.
func (s *DueReminderScheduler) Stop() {
	s.stop(0)
}

// stop ends the given run; 0 means whichever run is current.
func (s *DueReminderScheduler) stop(run int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning || (run != 0 && run != s.run) {
		return
	}

	<-s.cron.Stop().Done()
	s.cron.Remove(s.entryID)

	if s.cancelFunc != nil {
		s.cancelFunc()
		s.cancelFunc = nil
	}
	s.isRunning = false

	log.Printf("Due reminders: stopped")
}

// Reschedule switches to a new cron expression, restarting the scheduler if it was running.
func (s *DueReminderScheduler) Reschedule(ctx context.Context, schedule string) error {
	if err := ValidateSchedule(schedule); err != nil {
		return fmt.Errorf("invalid cron schedule '%s': %w", schedule, err)
	}

	s.mu.Lock()
	wasRunning := s.isRunning
	s.mu.Unlock()

	if wasRunning {
		s.Stop()
	}

	s.mu.Lock()
	s.schedule = schedule
	s.mu.Unlock()

	if !wasRunning {
		return nil
	}
	return s.Start(ctx)
}

func (s *DueReminderScheduler) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}

// NextRun returns when the job fires next, or nil when the scheduler is stopped.
func (s *DueReminderScheduler) NextRun() *time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.isRunning {
		return nil
	}
	for _, entry := range s.cron.Entries() {
		if entry.ID == s.entryID {
			t := entry.Next
			return &t
		}
	}
	return nil
}

// RunNow sends reminders for loans due soon and returns how many were sent.
// Nothing is sent when due reminders are turned off in the notification settings.
func (s *DueReminderScheduler) RunNow(ctx context.Context) (int, error) {
	if s.settings != nil {
		settings, err := s.settings.Get(ctx)
		if err == nil && !settings.Notifications.DueReminders {
			log.Printf("Due reminders: skipped (disabled in settings)")
			return 0, nil
		}
	}

	loans, err := s.loans.DueSoon(ctx)
	if err != nil {
		return 0, fmt.Errorf("load loans due soon: %w", err)
	}

	today := s.now().Format("2006-01-02")
	sent := 0
	for _, loan := range loans {
		if !s.markSent(loan.ID, today) {
			continue
		}
		if s.activity != nil {
			s.activity.Append(activity.LoanDueSoon(loan, loan.BookTitle))
		}
		reminder := notify.Warning("Loan due soon",
			fmt.Sprintf("%q is due on %s.", loan.BookTitle, loan.DueAt.Format("Jan 2, 2006")))
		reminder.UserID = loan.UserID
		s.notifier.Notify(reminder)
		sent++
	}

	if sent > 0 {
		log.Printf("Due reminders: sent %d reminders", sent)
	}
	return sent, nil
}

func (s *DueReminderScheduler) markSent(loanID uint, day string) bool {
	s.sentMu.Lock()
	defer s.sentMu.Unlock()
	if s.sent[loanID] == day {
		return false
	}
	s.sent[loanID] = day
	return true
}
