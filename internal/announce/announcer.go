package announce

import (
	"context"
	"errors"
	"sync"
	"time"

	"starfall-gacha/internal/announce/platforms"
)

var errCircuitOpen = errors.New("circuit_open")

type breakerState struct {
	consecutiveFailures int
	openUntil           time.Time
}

// Announcer fans announcements out to the configured webhook targets.
// Delivery is asynchronous: Publish never blocks the game transaction path,
// and a full queue drops rather than stalls.
type Announcer struct {
	cfg      Config
	adapters map[string]platforms.Adapter

	dispatchCh chan pushJob
	done       chan struct{}

	mu           sync.Mutex
	started      bool
	breakerByKey map[string]breakerState
}

func NewAnnouncer(cfg Config) *Announcer {
	client := platforms.NewHTTPClient(cfg.RequestTimeout)
	adapters := map[string]platforms.Adapter{
		"discord": platforms.NewDiscordAdapter(client),
		"feishu":  platforms.NewFeishuAdapter(client),
	}
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = 256
	}
	if cfg.Workers <= 0 {
		cfg.Workers = 2
	}
	if cfg.RetryBase <= 0 {
		cfg.RetryBase = 500 * time.Millisecond
	}
	if cfg.FailureThreshold <= 0 {
		cfg.FailureThreshold = 3
	}
	if cfg.CircuitOpenDuration <= 0 {
		cfg.CircuitOpenDuration = 30 * time.Second
	}
	return &Announcer{
		cfg:          cfg,
		adapters:     adapters,
		dispatchCh:   make(chan pushJob, cfg.QueueSize),
		done:         make(chan struct{}),
		breakerByKey: map[string]breakerState{},
	}
}

func (a *Announcer) Start(ctx context.Context) {
	if !a.cfg.Enabled || len(a.cfg.Targets) == 0 {
		return
	}
	a.mu.Lock()
	if a.started {
		a.mu.Unlock()
		return
	}
	a.started = true
	a.mu.Unlock()

	for i := 0; i < a.cfg.Workers; i++ {
		go a.worker(ctx)
	}
	go func() {
		<-ctx.Done()
		close(a.done)
	}()
}

// Publish queues one announcement for every target. Safe to call whether or
// not the announcer is enabled.
func (a *Announcer) Publish(ann Announcement) {
	if !a.cfg.Enabled || len(a.cfg.Targets) == 0 {
		return
	}
	for _, target := range a.cfg.Targets {
		if !a.enqueue(pushJob{Target: target, Ann: ann}) {
			metricDroppedTotal.Add(1)
		}
	}
}

func (a *Announcer) enqueue(job pushJob) bool {
	select {
	case <-a.done:
		return false
	case a.dispatchCh <- job:
		metricQueuedTotal.Add(1)
		return true
	default:
		return false
	}
}

func (a *Announcer) worker(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-a.done:
			return
		case job := <-a.dispatchCh:
			a.processJob(ctx, job)
		}
	}
}

func (a *Announcer) processJob(ctx context.Context, job pushJob) {
	adapter := a.adapters[job.Target.Platform]
	if adapter == nil {
		metricDroppedTotal.Add(1)
		return
	}
	msg, ok := FormatMessage(job.Ann)
	if !ok {
		metricDroppedTotal.Add(1)
		return
	}

	if err := a.beforeSend(job.key(), time.Now()); err != nil {
		metricCircuitOpenTotal.Add(1)
		a.retryOrDrop(job)
		return
	}

	if err := adapter.Send(ctx, job.Target.Endpoint, job.Target.Secret, msg); err != nil {
		metricFailedTotal.Add(1)
		a.afterFailure(job.key(), time.Now())
		a.retryOrDrop(job)
		return
	}
	metricSentTotal.Add(1)
	a.afterSuccess(job.key())
}

// retryOrDrop reschedules with exponential backoff up to RetryMax attempts.
func (a *Announcer) retryOrDrop(job pushJob) {
	if job.Attempt >= a.cfg.RetryMax {
		metricRetryDroppedTotal.Add(1)
		return
	}
	job.Attempt++
	metricRetryTotal.Add(1)
	delay := a.cfg.RetryBase * time.Duration(1<<(job.Attempt-1))
	time.AfterFunc(delay, func() {
		select {
		case <-a.done:
		case a.dispatchCh <- job:
		default:
			metricDroppedTotal.Add(1)
		}
	})
}

func (a *Announcer) beforeSend(key string, now time.Time) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	state := a.breakerByKey[key]
	if !state.openUntil.IsZero() && now.Before(state.openUntil) {
		return errCircuitOpen
	}
	return nil
}

func (a *Announcer) afterFailure(key string, now time.Time) {
	a.mu.Lock()
	defer a.mu.Unlock()
	state := a.breakerByKey[key]
	state.consecutiveFailures++
	if state.consecutiveFailures >= a.cfg.FailureThreshold {
		state.openUntil = now.Add(a.cfg.CircuitOpenDuration)
		state.consecutiveFailures = 0
	}
	a.breakerByKey[key] = state
}

func (a *Announcer) afterSuccess(key string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.breakerByKey[key] = breakerState{}
}
