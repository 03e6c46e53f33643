// Package feature implements the thread-safe feature collector: the
// synchronization point where many concurrent feature extractors deposit
// per-frame scores, mounted prediction models synthesize per-frame
// predictions once their inputs arrive, and registered subscribers receive
// those predictions (and their constituent inputs) in strict frame order.
package feature

import (
	"sync"
	"time"

	"github.com/cockroachdb/errors"

	"github.com/yigithanyigit/vmaf/internal/vlog"
)

// Collector is the central thread-safe scalar-score sink. The zero value is
// not usable; construct with New.
type Collector struct {
	mu sync.Mutex

	tables     []*ScoreTable
	aggregates AggregateTable

	models      []*mountedModel
	subscribers []MetadataSubscriber

	beginTime time.Time
	endTime   time.Time

	logger               Logger
	observer             Observer
	initialTableCapacity int
}

// Option configures a Collector at construction time.
type Option func(*Collector)

// WithLogger overrides the default logger (internal/vlog wrapping
// log/slog).
func WithLogger(l Logger) Option {
	return func(c *Collector) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithObserver attaches a self-observability hook (e.g. telemetry.New()).
func WithObserver(o Observer) Option {
	return func(c *Collector) {
		if o != nil {
			c.observer = o
		}
	}
}

// WithInitialTableCapacity overrides the starting backing-array size for
// every ScoreTable the Collector creates from this point on. n <= 0 leaves
// the package default in place.
func WithInitialTableCapacity(n int) Option {
	return func(c *Collector) {
		if n > 0 {
			c.initialTableCapacity = n
		}
	}
}

// New constructs an empty Collector. The default logger is a JSON-on-stderr
// vlog.Logger scoped to the "feature" module; pass WithLogger to override it.
func New(opts ...Option) *Collector {
	c := &Collector{
		logger:               vlog.Default().Module("feature"),
		observer:             noopObserver{},
		initialTableCapacity: initialTableCapacity,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Close tears down the collector. The caller must guarantee no producer
// goroutine is still inside an Append/GetScore/... call; Close itself
// takes the lock only to establish a happens-before edge with the last
// writer.
func (c *Collector) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.tables = nil
	c.aggregates = AggregateTable{}
	c.models = nil
	c.subscribers = nil
}

// tableLocked finds or creates the ScoreTable for name. Caller must hold c.mu.
func (c *Collector) tableLocked(name string) *ScoreTable {
	for _, t := range c.tables {
		if t.name == name {
			return t
		}
	}
	t := newScoreTableWithCapacity(name, c.initialTableCapacity)
	c.tables = append(c.tables, t)
	return t
}

func (c *Collector) findTableLocked(name string) *ScoreTable {
	for _, t := range c.tables {
		if t.name == name {
			return t
		}
	}
	return nil
}

func (c *Collector) getScoreLocked(name string, index uint32) (float64, error) {
	t := c.findTableLocked(name)
	if t == nil {
		return 0, errNotFoundIndex(name, index)
	}
	return t.get(index)
}

// Append records value for feature name at picture index idx, then drives
// on-write prediction and callback dispatch for any mounted model whose
// inputs or output this write affects.
func (c *Collector) Append(name string, value float64, idx uint32) error {
	if name == "" {
		return errors.Wrap(ErrInvalidArg, "feature name must not be empty")
	}

	c.mu.Lock()
	if c.beginTime.IsZero() {
		c.beginTime = time.Now()
	}

	table := c.tableLocked(name)
	if err := table.append(idx, value); err != nil {
		c.endTime = time.Now()
		c.observer.OnConflict(name)
		c.mu.Unlock()
		c.logger.Warn("feature cell already written", "feature", name, "index", idx)
		return err
	}
	c.observer.OnAppend(name)

	if len(c.models) > 0 && len(c.subscribers) > 0 {
		c.emit(name, idx)
	}

	c.endTime = time.Now()
	c.mu.Unlock()
	return nil
}

// AppendWithAlias resolves name through aliases before appending, letting a
// caller record a score under its canonical feature name even when the
// producer only knows a locally-scoped alias.
func (c *Collector) AppendWithAlias(aliases map[string]string, name string, value float64, idx uint32) error {
	if aliased, ok := aliases[name]; ok {
		name = aliased
	}
	return c.Append(name, value, idx)
}

// emit runs the emission walk for every mounted model, triggered by a
// successful write of (name, idx). Caller must hold c.mu on entry and exit;
// emit drops and reacquires c.mu around every call that re-enters the
// collector (GetScore's own lock, and Model.Predict) since neither is safe to
// invoke while already holding a non-reentrant mutex. Subscriber callbacks
// are invoked with c.mu held. Every checkpoint where the
// lock is dropped mid-walk re-reads the cursor state it depends on after
// reacquiring rather than trusting what it read before the drop.
func (c *Collector) emit(name string, idx uint32) {
	for _, m := range c.models {
		if name != m.model.Name() {
			// Case A: name is (probably) an input feature of m. If m's own
			// prediction for idx doesn't exist yet, ask the predictor for
			// it; errors (including "not ready") are swallowed.
			if _, err := c.getScoreLocked(m.model.Name(), idx); err == nil {
				continue
			}
			c.mu.Unlock()
			_ = m.model.Predict(c, idx)
			c.mu.Lock()
			continue
		}

		// Case B: a new prediction score arrived for m itself.
		m.highestSeen = maxU32(m.highestSeen, idx)

		start := time.Now()
		emitted := 0
		for j := m.lowestSeen; j <= m.highestSeen; j++ {
			c.mu.Unlock()
			score, err := c.GetScore(m.model.Name(), j)
			c.mu.Lock()
			if err != nil {
				break
			}
			if j != m.lowestSeen {
				// The lock was dropped for GetScore above; another
				// goroutine's concurrent Case B walk for this same model
				// (e.g. a different input feature's recursive Predict/
				// Append racing this one) already advanced the cursor past
				// j while we weren't holding the lock. Dispatching now
				// would emit (model, j) a second time, so stop here and
				// let whichever goroutine actually owns the cursor carry
				// the walk forward from its own m.lowestSeen.
				break
			}

			for _, sub := range c.subscribers {
				for _, f := range m.model.Features() {
					fscore, ferr := c.getScoreLocked(f, j)
					if ferr != nil {
						continue
					}
					if sub.accepts(f) {
						sub.Callback(sub.UserCtx, MetadataEvent{FeatureName: f, PictureIndex: j, Value: fscore})
					}
				}
				if sub.accepts(m.model.Name()) {
					sub.Callback(sub.UserCtx, MetadataEvent{FeatureName: m.model.Name(), PictureIndex: j, Value: score})
				}
			}

			m.lowestSeen = j + 1
			emitted++

			if j == ^uint32(0) {
				// Defend against wraparound at the uint32 boundary; no
				// realistic picture index reaches it.
				break
			}
		}
		if emitted > 0 {
			c.observer.OnEmit(m.model.Name())
			c.observer.ObserveEmissionLatency(m.model.Name(), time.Since(start))
		}
	}
}

// GetScore returns the score recorded for feature name at index, or
// ErrNotFound if the feature is unknown or the cell is unwritten.
func (c *Collector) GetScore(name string, index uint32) (float64, error) {
	if name == "" {
		return 0, errors.Wrap(ErrInvalidArg, "feature name must not be empty")
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.getScoreLocked(name, index)
}

// SetAggregate records a per-sequence aggregate value.
func (c *Collector) SetAggregate(name string, value float64) error {
	if name == "" {
		return errors.Wrap(ErrInvalidArg, "aggregate name must not be empty")
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.aggregates.append(name, value)
}

// GetAggregate returns the aggregate value stored under name.
func (c *Collector) GetAggregate(name string) (float64, error) {
	if name == "" {
		return 0, errors.Wrap(ErrInvalidArg, "aggregate name must not be empty")
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.aggregates.get(name)
}

// MountModel adds model to the mounted-model list with cursors zeroed.
// Mounting the same model twice returns ErrConflict.
func (c *Collector) MountModel(model Model) error {
	if model == nil {
		return errors.Wrap(ErrInvalidArg, "model must not be nil")
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, m := range c.models {
		if m.model == model {
			return errors.Wrapf(ErrConflict, "model %q is already mounted", model.Name())
		}
	}
	c.models = append(c.models, &mountedModel{model: model})
	return nil
}

// UnmountModel removes the first mounted model matching model. Returns
// ErrNotFound if model is not mounted.
func (c *Collector) UnmountModel(model Model) error {
	if model == nil {
		return errors.Wrap(ErrInvalidArg, "model must not be nil")
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	for i, m := range c.models {
		if m.model == model {
			c.models = append(c.models[:i], c.models[i+1:]...)
			return nil
		}
	}
	return errors.Wrapf(ErrNotFound, "model %q is not mounted", model.Name())
}

// RegisterMetadataSubscriber appends cfg to the subscriber list. There is
// no removal API — subscribers live for the lifetime of the collector.
func (c *Collector) RegisterMetadataSubscriber(cfg MetadataSubscriber) error {
	if cfg.Callback == nil {
		return errors.Wrap(ErrInvalidArg, "callback must not be nil")
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.subscribers = append(c.subscribers, cfg)
	return nil
}

// FeatureNames returns a snapshot of every feature name currently known to
// the collector, in first-append order. Used by propagate.Propagator.
func (c *Collector) FeatureNames() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	names := make([]string, len(c.tables))
	for i, t := range c.tables {
		names[i] = t.name
	}
	return names
}

// Elapsed returns the wall-clock span between the first Append and the most
// recent Append/duplicate-rejection, or zero if nothing has been appended
// yet.
func (c *Collector) Elapsed() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.beginTime.IsZero() {
		return 0
	}
	return c.endTime.Sub(c.beginTime)
}
