// Package feed owns the trending feed state and its fetch cycles.
//
// Every Select starts a new cycle tagged with an increasing sequence number.
// A cycle's result is applied only while it is still the latest one, so a slow
// response for an old category can never overwrite a newer state.
package feed

import (
	"context"
	"log/slog"
	"sync"

	"github.com/yt-feed/internal/models"
)

// Fetcher retrieves the trending list of a category.
type Fetcher interface {
	FetchTrending(ctx context.Context, category string) ([]models.VideoItem, error)
}

// FetcherFunc adapts a function to Fetcher.
type FetcherFunc func(ctx context.Context, category string) ([]models.VideoItem, error)

func (f FetcherFunc) FetchTrending(ctx context.Context, category string) ([]models.VideoItem, error) {
	return f(ctx, category)
}

// Option configures a View.
type Option func(*View)

// WithLogger sets the logger; the default discards everything.
func WithLogger(logger *slog.Logger) Option {
	return func(v *View) {
		if logger != nil {
			v.logger = logger
		}
	}
}

// View holds the state of the latest fetch cycle.
type View struct {
	fetcher Fetcher
	logger  *slog.Logger

	mu       sync.Mutex
	seq      uint64
	category string
	state    models.FeedState
	cancel   context.CancelFunc
	subs     map[int]chan models.FeedState
	nextSub  int
}

// NewView creates a view that has not fetched anything yet; its state is Loading.
func NewView(fetcher Fetcher, opts ...Option) *View {
	v := &View{
		fetcher: fetcher,
		logger:  slog.New(slog.DiscardHandler),
		state:   models.Loading(),
		subs:    make(map[int]chan models.FeedState),
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Cycle is a handle on one fetch cycle.
type Cycle struct {
	Seq      uint64
	Category string

	done    chan struct{}
	applied bool
}

// Done is closed once the cycle settled, whether its result was applied or not.
func (c *Cycle) Done() <-chan struct{} { return c.done }

// Wait blocks until the cycle settles or ctx is done.
func (c *Cycle) Wait(ctx context.Context) error {
	select {
	case <-c.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Applied reports whether the cycle's result became the visible state. It is
// meaningful only after Done is closed.
func (c *Cycle) Applied() bool {
	select {
	case <-c.done:
		return c.applied
	default:
		return false
	}
}

// Select starts a fetch cycle for category; an empty category means all
// categories. The state switches to Loading immediately. The fetch runs
// detached from ctx cancellation and is cancelled only when superseded.
func (v *View) Select(ctx context.Context, category string) *Cycle {
	category = models.ResolveCategory(category)
	fetchCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))

	v.mu.Lock()
	if v.cancel != nil {
		v.cancel()
	}
	v.seq++
	cycle := &Cycle{Seq: v.seq, Category: category, done: make(chan struct{})}
	v.category = category
	v.cancel = cancel
	v.setStateLocked(models.Loading())
	v.mu.Unlock()

	v.logger.Debug("fetch cycle started",
		slog.Uint64("seq", cycle.Seq),
		slog.String("category", category),
	)

	go v.run(fetchCtx, cancel, cycle)
	return cycle
}

// Load runs a fetch cycle for category and waits for it to settle. The
// returned state is the current one, which belongs to a later cycle if another
// Select happened meanwhile.
func (v *View) Load(ctx context.Context, category string) (models.FeedState, error) {
	cycle := v.Select(ctx, category)
	if err := cycle.Wait(ctx); err != nil {
		return v.State(), err
	}
	return v.State(), nil
}

func (v *View) run(ctx context.Context, cancel context.CancelFunc, cycle *Cycle) {
	defer cancel()

	items, err := v.fetcher.FetchTrending(ctx, cycle.Category)

	next := models.Loaded(items)
	if err != nil {
		next = models.Failed(err.Error())
	}

	v.mu.Lock()
	if cycle.Seq == v.seq {
		cycle.applied = true
		v.cancel = nil
		v.setStateLocked(next)
	}
	latest := v.seq
	v.mu.Unlock()
	close(cycle.done)

	switch {
	case !cycle.applied:
		v.logger.Debug("stale fetch result discarded",
			slog.Uint64("seq", cycle.Seq),
			slog.Uint64("latest", latest),
			slog.String("category", cycle.Category),
		)
	case err != nil:
		v.logger.Error("error fetching trending videos",
			slog.Uint64("seq", cycle.Seq),
			slog.String("category", cycle.Category),
			slog.Any("error", err),
		)
	default:
		v.logger.Info("trending videos loaded",
			slog.Uint64("seq", cycle.Seq),
			slog.String("category", cycle.Category),
			slog.Int("count", len(next.Items())),
		)
	}
}

// State returns the visible state.
func (v *View) State() models.FeedState {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.state
}

// Category returns the category of the latest cycle; empty before the first one.
func (v *View) Category() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.category
}

// Seq returns the sequence number of the latest cycle; zero before the first one.
func (v *View) Seq() uint64 {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.seq
}

// Snapshot returns seq, category and state of the latest cycle consistently.
func (v *View) Snapshot() (uint64, string, models.FeedState) {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.seq, v.category, v.state
}

// Subscribe registers an observer of state transitions. A slow observer only
// sees the most recent state; it never sees states out of order. The returned
// func unregisters the observer and closes the channel.
func (v *View) Subscribe() (<-chan models.FeedState, func()) {
	ch := make(chan models.FeedState, 1)

	v.mu.Lock()
	id := v.nextSub
	v.nextSub++
	v.subs[id] = ch
	v.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			v.mu.Lock()
			delete(v.subs, id)
			v.mu.Unlock()
			close(ch)
		})
	}
}

// setStateLocked replaces the state and notifies observers. v.mu must be held.
func (v *View) setStateLocked(state models.FeedState) {
	v.state = state
	for _, ch := range v.subs {
		// Drop an undelivered older state so the newest always fits.
		select {
		case <-ch:
		default:
		}
		select {
		case ch <- state:
		default:
		}
	}
}
