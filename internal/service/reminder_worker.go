package service

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/dafibh/paydue/paydue-backend/internal/aggregate"
	"github.com/dafibh/paydue/paydue-backend/internal/domain"
	"github.com/dafibh/paydue/paydue-backend/internal/notify"
	"github.com/dafibh/paydue/paydue-backend/internal/util"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// DefaultReminderDays is how many days ahead reminders look
const DefaultReminderDays = 3

// ReminderWorkerConfig holds configuration for the reminder worker
type ReminderWorkerConfig struct {
	Schedule  string         // cron expression, e.g. "0 8 * * *"
	DaysAhead int            // remind about payables due within this many days
	Location  *time.Location // timezone the schedule and due dates are evaluated in
}

// ReminderWorker mails users the unpaid payables coming due on a cron schedule
type ReminderWorker struct {
	userRepo    domain.UserRepository
	payableRepo domain.PayableRepository
	paymentRepo domain.PaymentRepository
	sender      notify.Sender
	logger      zerolog.Logger
	config      ReminderWorkerConfig
	cron        *cron.Cron
	now         func() time.Time
	mu          sync.Mutex
	running     bool
}

// NewReminderWorker creates a new reminder worker. The schedule is validated here.
func NewReminderWorker(
	userRepo domain.UserRepository,
	payableRepo domain.PayableRepository,
	paymentRepo domain.PaymentRepository,
	sender notify.Sender,
	logger zerolog.Logger,
	config ReminderWorkerConfig,
) (*ReminderWorker, error) {
	if config.DaysAhead <= 0 {
		config.DaysAhead = DefaultReminderDays
	}
	if config.Location == nil {
		config.Location = time.UTC
	}

	w := &ReminderWorker{
		userRepo:    userRepo,
		payableRepo: payableRepo,
		paymentRepo: paymentRepo,
		sender:      sender,
		logger:      logger.With().Str("component", "reminder_worker").Logger(),
		config:      config,
		cron:        cron.New(cron.WithLocation(config.Location)),
		now:         time.Now,
	}

	if _, err := w.cron.AddFunc(config.Schedule, w.run); err != nil {
		return nil, fmt.Errorf("invalid reminder schedule %q: %w", config.Schedule, err)
	}
	return w, nil
}

// Start starts the cron scheduler
func (w *ReminderWorker) Start() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.running {
		w.logger.Warn().Msg("Reminder worker already running")
		return
	}
	w.running = true
	w.cron.Start()

	w.logger.Info().
		Str("schedule", w.config.Schedule).
		Int("days_ahead", w.config.DaysAhead).
		Str("timezone", w.config.Location.String()).
		Msg("Reminder worker started")
}

// Stop stops the scheduler and waits for a running job to finish
func (w *ReminderWorker) Stop() {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return
	}
	w.running = false
	w.mu.Unlock()

	<-w.cron.Stop().Done()
	w.logger.Info().Msg("Reminder worker stopped")
}

// IsRunning returns whether the worker is currently running
func (w *ReminderWorker) IsRunning() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.running
}

func (w *ReminderWorker) run() {
	start := time.Now()
	sent, err := w.RunOnce()
	if err != nil {
		w.logger.Error().Err(err).Msg("Reminder run failed")
		return
	}
	w.logger.Info().Int("sent", sent).Dur("duration", time.Since(start)).Msg("Reminder run completed")
}

// RunOnce mails every user with unpaid payables due soon and returns how many mails went out.
// A failure for one user is logged and does not stop the others.
func (w *ReminderWorker) RunOnce() (int, error) {
	users, err := w.userRepo.List()
	if err != nil {
		return 0, err
	}

	now := w.now().In(w.config.Location)
	// due dates are calendar dates; keep the local date when moving to UTC
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	sent := 0
	for _, user := range users {
		if user.Email == "" {
			continue
		}

		items, err := w.dueSoon(user, today)
		if err != nil {
			w.logger.Error().Err(err).Str("user_id", user.ID.String()).Msg("Failed to load due payables")
			continue
		}
		if len(items) == 0 {
			continue
		}

		if err := w.sender.Send(reminderMessage(user, items)); err != nil {
			w.logger.Error().Err(err).Str("user_id", user.ID.String()).Msg("Failed to send reminder")
			continue
		}
		sent++
	}
	return sent, nil
}

// dueSoon returns the user's open payables due within the window that have no payment in their due month
func (w *ReminderWorker) dueSoon(user *domain.User, today time.Time) ([]domain.DueItem, error) {
	payables, err := w.payableRepo.GetOpenByUser(user.ID)
	if err != nil {
		return nil, err
	}
	if len(payables) == 0 {
		return nil, nil
	}

	until := today.AddDate(0, 0, w.config.DaysAhead)
	payments, err := w.paymentRepo.GetByUserBetween(user.ID, util.StartOfMonth(today), endOfMonthInclusive(until))
	if err != nil {
		return nil, err
	}

	view := aggregate.GroupUpcoming(payables, payments, today, w.config.DaysAhead, "")
	var unpaid []domain.DueItem
	for _, group := range view.Groups {
		for _, item := range group.Items {
			if !item.Paid {
				unpaid = append(unpaid, item)
			}
		}
	}
	return unpaid, nil
}

func reminderMessage(user *domain.User, items []domain.DueItem) notify.Message {
	var b strings.Builder
	fmt.Fprintf(&b, "Hi %s,\n\nThe following payments are due soon:\n\n", user.DisplayName)

	total := decimal.Zero
	for _, item := range items {
		fmt.Fprintf(&b, "- %s: %s, %s\n", item.Payable.Title, util.FormatINR(item.Payable.EmiAmount), util.DueDayLabel(item.DueDate))
		total = total.Add(item.Payable.EmiAmount)
	}
	fmt.Fprintf(&b, "\nTotal due: %s\n", util.FormatINR(total))

	subject := fmt.Sprintf("%d payment due soon", len(items))
	if len(items) > 1 {
		subject = fmt.Sprintf("%d payments due soon", len(items))
	}

	return notify.Message{
		To:      []string{user.Email},
		Subject: subject,
		Text:    b.String(),
	}
}
