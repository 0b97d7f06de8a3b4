// package search implements the debounced catalog search controller
package search

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/tunes/internal/models"
	"github.com/desertthunder/tunes/internal/services"
	"github.com/desertthunder/tunes/internal/shared"
)

// DefaultDebounce is used when a non-positive interval is given to [NewController].
const DefaultDebounce = 300 * time.Millisecond

// State is a snapshot of a search session.
type State struct {
	Query   string         // Query the state belongs to
	Tracks  []models.Track // Matching songs; empty until a non-blank query resolves
	Loading bool           // A catalog request for Query is in flight
	Err     error          // Last failure, cleared when a new request starts
}

// Controller debounces query changes and turns them into catalog searches.
//
// Only the last query set within a debounce window is searched (trailing edge).
// Each [Controller.SetQuery] advances a generation token; deferred actions and
// responses carrying an older token are dropped, so replies that resolve out of
// order never overwrite newer state.
type Controller struct {
	mu       sync.Mutex
	searcher services.Searcher
	interval time.Duration
	logger   *log.Logger

	ctx    context.Context
	cancel context.CancelFunc

	timer   *time.Timer
	gen     uint64
	state   State
	updates chan State
	closed  bool
}

// NewController creates a Controller searching through searcher after interval of quiet.
func NewController(searcher services.Searcher, interval time.Duration, logger *log.Logger) *Controller {
	if interval <= 0 {
		interval = DefaultDebounce
	}
	if logger == nil {
		logger = shared.NewLogger(nil)
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &Controller{
		searcher: searcher,
		interval: interval,
		logger:   shared.WithLogger(logger, "component", "search"),
		ctx:      ctx,
		cancel:   cancel,
		state:    State{Tracks: []models.Track{}},
		updates:  make(chan State, 1),
	}
}

// Updates returns a channel carrying the latest [State] after every transition.
//
// The channel holds one value; an unread state is replaced by its successor.
// It is closed by [Controller.Close].
func (c *Controller) Updates() <-chan State {
	return c.updates
}

// State returns the current snapshot.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Interval returns the debounce interval.
func (c *Controller) Interval() time.Duration {
	return c.interval
}

// SetQuery records a new query.
//
// A blank query clears the results at once and never reaches the catalog.
// Any other query is searched once no further call arrives within the interval.
func (c *Controller) SetQuery(q string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}

	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	c.gen++

	if strings.TrimSpace(q) == "" {
		c.state = State{Query: q, Tracks: []models.Track{}}
		c.publish()
		return
	}

	gen := c.gen
	c.timer = time.AfterFunc(c.interval, func() { c.fire(gen, q) })
}

// fire runs the deferred search for q if gen is still current.
func (c *Controller) fire(gen uint64, q string) {
	c.mu.Lock()
	if c.closed || gen != c.gen {
		c.mu.Unlock()
		return
	}
	c.timer = nil
	c.state = State{Query: q, Tracks: c.state.Tracks, Loading: true}
	c.publish()
	c.mu.Unlock()

	c.logger.Debug("searching", "query", q, "generation", gen)
	tracks, err := c.searcher.Search(c.ctx, q)

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed || gen != c.gen {
		c.logger.Debug("discarding stale response", "query", q, "generation", gen, "current", c.gen)
		return
	}

	if err != nil {
		c.logger.Warn("search failed", "query", q, "err", err)
		c.state = State{Query: q, Tracks: []models.Track{}, Err: err}
	} else {
		if tracks == nil {
			tracks = []models.Track{}
		}
		c.state = State{Query: q, Tracks: tracks}
	}
	c.publish()
}

// publish replaces any unread state with the current one. Callers hold c.mu.
func (c *Controller) publish() {
	select {
	case c.updates <- c.state:
	default:
		select {
		case <-c.updates:
		default:
		}
		c.updates <- c.state
	}
}

// Close stops the pending timer, cancels in-flight searches and closes [Controller.Updates].
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}
	c.closed = true
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	c.cancel()
	close(c.updates)
}
