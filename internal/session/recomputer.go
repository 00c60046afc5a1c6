// Package session sequences odds recomputation for an interactive caller.
//
// The engine itself is pure, but an interactive surface fires recompute
// requests from several triggers at once: card selection changes, pot
// changes, and a periodic refresh tick. Left unsynchronized, a slow stale
// computation can finish after a fresh one and overwrite it. The
// Recomputer prevents that by keeping at most one computation in flight,
// cancelling it when a newer request arrives, and tagging every result
// with a sequence number so anything stale is discarded before it
// surfaces.
package session

import (
	"context"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/lox/holdem-odds/internal/deck"
	"github.com/lox/holdem-odds/internal/odds"
)

// DefaultRefreshInterval matches the one-second refresh tick of the
// interactive surface.
const DefaultRefreshInterval = time.Second

// Request is a snapshot of the caller's current selection
type Request struct {
	Hole  []deck.Card
	Board []deck.Card
	Pot   float64
}

// Result is a completed computation tagged with its request sequence
// number. Consumers only ever observe the latest sequence.
type Result struct {
	Seq          uint64
	Request      Request
	Distribution odds.Distribution
	EV           float64
	Err          error
}

// Config configures a Recomputer
type Config struct {
	// Iterations for the Monte Carlo path; zero selects the engine default
	Iterations int

	// Cost is the fixed call price for expected value; zero selects
	// odds.DefaultCost
	Cost float64

	// RefreshInterval is how often the latest request is recomputed even
	// without a selection change; zero selects DefaultRefreshInterval
	RefreshInterval time.Duration

	// Clock abstracts time so tests can drive the refresh tick
	Clock quartz.Clock

	// Logger for computation lifecycle events
	Logger *log.Logger
}

// Recomputer serializes recomputation so at most one computation is in
// flight and only the freshest result is ever published.
type Recomputer struct {
	cfg      Config
	requests chan Request
	results  chan Result
}

// NewRecomputer creates a Recomputer with defaults applied
func NewRecomputer(cfg Config) *Recomputer {
	if cfg.Cost == 0 {
		cfg.Cost = odds.DefaultCost
	}
	if cfg.RefreshInterval <= 0 {
		cfg.RefreshInterval = DefaultRefreshInterval
	}
	if cfg.Clock == nil {
		cfg.Clock = quartz.NewReal()
	}
	if cfg.Logger == nil {
		cfg.Logger = log.Default()
	}

	return &Recomputer{
		cfg:      cfg,
		requests: make(chan Request, 1),
		results:  make(chan Result, 1),
	}
}

// Submit registers a new selection snapshot. It never blocks: if an
// unprocessed request is already queued, the newer one replaces it.
func (r *Recomputer) Submit(req Request) {
	for {
		select {
		case r.requests <- req:
			return
		default:
			// Drop the superseded request, if it is still there
			select {
			case <-r.requests:
			default:
			}
		}
	}
}

// Results returns the channel fresh results are published on. The channel
// holds only the latest result; a slow consumer sees newer results replace
// older ones rather than a backlog.
func (r *Recomputer) Results() <-chan Result {
	return r.results
}

// Run processes requests until the context is cancelled. Each new request
// (or refresh tick) supersedes any computation still in flight: the old
// computation's context is cancelled and its result, should it complete
// anyway, is discarded by sequence number.
func (r *Recomputer) Run(ctx context.Context) error {
	ticker := r.cfg.Clock.NewTicker(r.cfg.RefreshInterval, "recomputer")
	defer ticker.Stop()

	var (
		latest    Request
		haveReq   bool
		seq       uint64
		inflight  context.CancelFunc
		completed = make(chan Result)
	)

	start := func(req Request) {
		seq++
		if inflight != nil {
			inflight()
		}
		computeCtx, cancel := context.WithCancel(ctx)
		inflight = cancel
		go r.compute(computeCtx, seq, req, completed)
	}

	for {
		select {
		case req := <-r.requests:
			latest, haveReq = req, true
			start(req)

		case <-ticker.C:
			if !haveReq {
				continue
			}
			start(latest)

		case res := <-completed:
			if res.Seq != seq {
				r.cfg.Logger.Debug("discarding stale result", "seq", res.Seq, "latest", seq)
				continue
			}
			if res.Err != nil {
				if ctx.Err() != nil {
					continue
				}
				r.cfg.Logger.Error("recompute failed", "seq", res.Seq, "err", res.Err)
			}
			r.publish(res)

		case <-ctx.Done():
			if inflight != nil {
				inflight()
			}
			return ctx.Err()
		}
	}
}

// compute runs one computation and reports back to the run loop. A
// cancelled context surfaces as a result carrying the context error, which
// the loop drops as superseded.
func (r *Recomputer) compute(ctx context.Context, seq uint64, req Request, completed chan<- Result) {
	dist, err := odds.Compute(ctx, req.Hole, req.Board, odds.Options{
		Iterations: r.cfg.Iterations,
	})

	res := Result{Seq: seq, Request: req, Err: err}
	if err == nil {
		res.Distribution = dist
		res.EV = odds.ExpectedValue(dist, req.Pot, r.cfg.Cost)
	}

	select {
	case completed <- res:
	case <-ctx.Done():
	}
}

// publish places a result in the results channel, replacing any unread
// older result.
func (r *Recomputer) publish(res Result) {
	for {
		select {
		case r.results <- res:
			return
		default:
			select {
			case <-r.results:
			default:
			}
		}
	}
}

// ParsePot coerces free-form pot text from the boundary layer into a
// non-negative pot size. Anything unparseable or negative becomes 0.
func ParsePot(s string) float64 {
	pot, err := strconv.ParseFloat(s, 64)
	if err != nil || pot < 0 {
		return 0
	}
	return pot
}
