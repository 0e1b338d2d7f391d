package remind

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/hvaldez/dayplan/internal/model"
	"github.com/hvaldez/dayplan/internal/store"
)

// Notifier delivers a due reminder to its owner. Implementations must
// be safe for concurrent use.
type Notifier interface {
	NotifyDue(ctx context.Context, user model.User, reminder model.Reminder, task model.Task) error
}

// scanTimeout is the maximum time allowed for a single scan pass.
const scanTimeout = 30 * time.Second

// Poller periodically scans for un-notified reminders inside the
// configured window, hands them to a Notifier, and marks them notified
// on successful delivery. A reminder the notifier fails on stays
// un-notified and is retried on the next pass.
type Poller struct {
	store    store.Store
	notifier Notifier
	cfg      model.ReminderConfig
	log      zerolog.Logger

	stopCh   chan struct{}
	mu       sync.Mutex
	running  bool
	lastScan time.Time
	lastErr  error
}

// New creates a Poller over the given store and notifier.
func New(s store.Store, n Notifier, cfg model.ReminderConfig, log zerolog.Logger) *Poller {
	return &Poller{
		store:    s,
		notifier: n,
		cfg:      cfg,
		log:      log,
		stopCh:   make(chan struct{}),
	}
}

// Window returns the scan interval around now: LookbackDays behind at
// start of day through LookaheadDays ahead at end of day. With the
// default configuration that is one week back to three months ahead.
func (p *Poller) Window(now time.Time) (time.Time, time.Time) {
	u := now.UTC()
	start := time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC).
		AddDate(0, 0, -p.cfg.LookbackDays)
	end := time.Date(u.Year(), u.Month(), u.Day(), 23, 59, 59, 0, time.UTC).
		AddDate(0, 0, p.cfg.LookaheadDays)
	return start, end
}

// Start launches the polling loop. It is a no-op if already running.
func (p *Poller) Start() {
	p.mu.Lock()
	if p.running {
		p.mu.Unlock()
		return
	}
	p.running = true
	p.mu.Unlock()

	go p.loop()
}

// Stop halts the polling loop.
func (p *Poller) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.running {
		return
	}
	close(p.stopCh)
	p.running = false
}

// Status returns the time of the last completed scan and its error, if
// any.
func (p *Poller) Status() (time.Time, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.lastScan, p.lastErr
}

func (p *Poller) loop() {
	interval := time.Duration(p.cfg.PollIntervalSec) * time.Second
	if interval <= 0 {
		interval = 60 * time.Second
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	// Do an initial scan immediately.
	p.scan()

	for {
		select {
		case <-p.stopCh:
			return
		case <-ticker.C:
			p.scan()
		}
	}
}

func (p *Poller) scan() {
	ctx, cancel := context.WithTimeout(context.Background(), scanTimeout)
	defer cancel()

	sent, err := p.ScanOnce(ctx)

	p.mu.Lock()
	p.lastScan = time.Now()
	p.lastErr = err
	p.mu.Unlock()

	if err != nil {
		p.log.Error().Err(err).Msg("reminder scan failed")
		return
	}
	if sent > 0 {
		p.log.Info().Int("sent", sent).Msg("reminder notifications delivered")
	}
}

// ScanOnce runs a single scan pass across all active users and returns
// how many notifications were delivered.
func (p *Poller) ScanOnce(ctx context.Context) (int, error) {
	users, err := p.store.GetUsers(ctx)
	if err != nil {
		return 0, err
	}

	start, end := p.Window(time.Now())
	sent := 0

	for _, u := range users {
		if u.Status != model.UserStatusActive {
			continue
		}

		due, err := p.store.RemindersDueInRange(ctx, u.ID, start, end)
		if err != nil {
			return sent, err
		}

		for _, r := range due {
			task, err := p.store.GetTaskByID(ctx, r.TaskID)
			if err != nil {
				return sent, err
			}

			if err := p.notifier.NotifyDue(ctx, u, r, *task); err != nil {
				// Leave un-notified; the next pass retries it.
				p.log.Warn().Err(err).
					Str("reminder_id", r.ID).
					Str("user_id", u.ID).
					Msg("notification delivery failed")
				continue
			}

			if err := p.store.MarkReminderNotified(ctx, r.ID); err != nil {
				return sent, err
			}
			sent++
		}
	}

	return sent, nil
}
