package state

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/hielopolar/polar/internal/asset"
	"github.com/hielopolar/polar/internal/assetsync"
	"github.com/hielopolar/polar/internal/notify"
)

// Phase is the load state of the collection.
type Phase int

const (
	PhaseLoading Phase = iota
	PhaseReady
	PhaseErrored
)

func (p Phase) String() string {
	switch p {
	case PhaseReady:
		return "ready"
	case PhaseErrored:
		return "errored"
	default:
		return "loading"
	}
}

// Service is what the store needs from the sync layer.
type Service interface {
	ResolveInitial() (asset.Collection, error)
	Persist(c asset.Collection) bool
	GenerateID(existing map[string]struct{}) string
	HasRemote() bool
	Fetch(ctx context.Context) ([]asset.RawRow, error)
	InsertOne(ctx context.Context, a asset.Asset) error
	PushOne(ctx context.Context, a asset.Asset) error
	DeleteRemote(ctx context.Context, id string) error
}

var _ Service = (*assetsync.Service)(nil)

// Snapshot is a point-in-time copy of the store.
type Snapshot struct {
	Phase       Phase
	Assets      asset.Collection
	LastError   error // initial load failure, kept while errored
	LastUpdated time.Time

	HasRemote           bool
	LastPull            time.Time
	PullError           error
	ConsecutiveFailures int // consecutive failed pulls
	Unsynced            int // assets whose last remote write failed
}

// IsOffline reports whether the remote store has failed repeatedly.
func (s Snapshot) IsOffline() bool {
	return s.ConsecutiveFailures >= 2
}

// Options configure a Store.
type Options struct {
	Sink          notify.Sink
	Logger        *zap.Logger
	RemoteTimeout time.Duration
}

const (
	defaultRemoteTimeout = 10 * time.Second
	remoteQueueSize      = 64
)

// Store owns the in-memory collection for a session. Mutations are applied
// in call order; the mirror is written before a mutating call returns, while
// notices and remote writes are fire-and-forget.
type Store struct {
	svc           Service
	sink          notify.Sink
	logger        *zap.Logger
	remoteTimeout time.Duration

	mu       sync.RWMutex
	snapshot Snapshot
	closed   bool

	// Ids whose local state the remote may not have yet, guarded by mu.
	// pending counts queued or running remote writes, failed holds ids whose
	// last remote write failed, and touched collects ids changed while a
	// pull is fetching.
	pending map[string]int
	failed  map[string]struct{}
	touched map[string]struct{}

	pullMu   sync.Mutex
	remoteCh chan Effect
	wg       sync.WaitGroup
}

// New returns a store in the loading phase. Call Load to populate it and
// Close to drain pending remote writes.
func New(svc Service, opts Options) *Store {
	sink := opts.Sink
	if sink == nil {
		sink = notify.Discard
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	timeout := opts.RemoteTimeout
	if timeout <= 0 {
		timeout = defaultRemoteTimeout
	}
	s := &Store{
		svc:           svc,
		sink:          sink,
		logger:        logger.Named("state"),
		remoteTimeout: timeout,
		pending:       make(map[string]int),
		failed:        make(map[string]struct{}),
	}
	s.snapshot.HasRemote = svc.HasRemote()
	if s.snapshot.HasRemote {
		s.remoteCh = make(chan Effect, remoteQueueSize)
		s.wg.Add(1)
		go s.remoteWorker()
	}
	return s
}

// Load resolves the initial collection. On failure the store enters the
// errored phase but still holds a usable collection.
func (s *Store) Load() {
	c, err := s.svc.ResolveInitial()

	s.mu.Lock()
	defer s.mu.Unlock()

	if len(c) == 0 && err != nil {
		c = asset.Seed()
	}
	s.snapshot.Assets = c.Clone()
	s.snapshot.LastUpdated = time.Now()
	if err != nil {
		s.snapshot.Phase = PhaseErrored
		s.snapshot.LastError = err
		s.logger.Error("initial load failed", zap.Error(err))
		s.sink.Notify(notify.New(notify.Error, "Error", fmt.Sprintf("No se pudieron cargar los conservadores: %v", err)))
		return
	}
	s.snapshot.Phase = PhaseReady
	s.snapshot.LastError = nil
}

// Snapshot returns a copy of the current state.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := s.snapshot
	snap.Assets = s.snapshot.Assets.Clone()
	snap.Unsynced = len(s.failed)
	if s.snapshot.LastError != nil {
		snap.LastError = fmt.Errorf("%w", s.snapshot.LastError)
	}
	if s.snapshot.PullError != nil {
		snap.PullError = fmt.Errorf("%w", s.snapshot.PullError)
	}
	return snap
}

// Assets returns a copy of the collection.
func (s *Store) Assets() asset.Collection {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot.Assets.Clone()
}

// NewID returns an id not used by the current collection.
func (s *Store) NewID() string {
	s.mu.RLock()
	ids := s.snapshot.Assets.IDs()
	s.mu.RUnlock()
	return s.svc.GenerateID(ids)
}

// AddAsset appends a. Invalid assets and duplicate ids are rejected and the
// collection is left unchanged.
func (s *Store) AddAsset(a asset.Asset) error {
	return s.apply(Add(a))
}

// UpdateAsset merges p into the asset with id. An unknown id is ignored.
func (s *Store) UpdateAsset(id string, p asset.Patch) error {
	return s.apply(Update(id, p))
}

// DeleteAsset removes the asset with id. An unknown id is ignored.
func (s *Store) DeleteAsset(id string) {
	_ = s.apply(Delete(id))
}

func (s *Store) apply(m Mutation) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res := Apply(s.snapshot.Assets, m)
	if res.Changed {
		s.snapshot.Assets = res.Assets
		s.snapshot.LastUpdated = time.Now()
		if s.snapshot.Phase == PhaseLoading {
			s.snapshot.Phase = PhaseReady
		}
	}
	for _, e := range res.Effects {
		s.run(e)
	}
	if res.Err != nil {
		s.logger.Warn("mutation rejected", zap.Stringer("op", m.Op), zap.Error(res.Err))
	} else if res.Changed {
		s.logger.Info("mutation applied", zap.Stringer("op", m.Op), zap.String("id", mutationID(m)), zap.Int("assets", len(res.Assets)))
	}
	return res.Err
}

func mutationID(m Mutation) string {
	if m.Op == OpAdd {
		return m.Asset.ID
	}
	return m.ID
}

// run executes one effect. Callers hold s.mu.
func (s *Store) run(e Effect) {
	switch e.Kind {
	case EffectPersist:
		if !s.svc.Persist(s.snapshot.Assets) {
			s.logger.Warn("mirror not updated; keeping in-memory collection")
		}
	case EffectNotify:
		s.sink.Notify(e.Notice)
	case EffectRemoteInsert, EffectRemoteUpsert, EffectRemoteDelete:
		if s.remoteCh == nil || s.closed {
			return
		}
		id := e.TargetID()
		if s.touched != nil {
			s.touched[id] = struct{}{}
		}
		select {
		case s.remoteCh <- e:
			s.pending[id]++
		default:
			s.failed[id] = struct{}{}
			s.logger.Warn("remote queue full; dropping write", zap.String("id", id))
		}
	}
}

func (s *Store) remoteWorker() {
	defer s.wg.Done()
	for e := range s.remoteCh {
		id := e.TargetID()
		ctx, cancel := context.WithTimeout(context.Background(), s.remoteTimeout)
		var err error
		switch e.Kind {
		case EffectRemoteInsert:
			err = s.svc.InsertOne(ctx, e.Asset)
		case EffectRemoteUpsert:
			err = s.svc.PushOne(ctx, e.Asset)
		default:
			err = s.svc.DeleteRemote(ctx, id)
		}
		cancel()
		s.settle(id, err)
		if err != nil {
			s.logger.Error("remote write failed", zap.String("id", id), zap.Error(err))
			s.sink.Notify(notify.New(notify.Error, "Error", fmt.Sprintf("No se pudo sincronizar el conservador %s con la base de datos.", id)))
		}
	}
}

// settle records the outcome of a remote write for id.
func (s *Store) settle(id string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.pending[id]--
	if s.pending[id] <= 0 {
		delete(s.pending, id)
	}
	if err != nil {
		s.failed[id] = struct{}{}
	} else {
		delete(s.failed, id)
	}
}

// unsynced returns the ids whose local entry must win over the remote row.
// Callers hold s.mu.
func (s *Store) unsynced() map[string]struct{} {
	keep := make(map[string]struct{}, len(s.pending)+len(s.failed)+len(s.touched))
	for id := range s.pending {
		keep[id] = struct{}{}
	}
	for id := range s.failed {
		keep[id] = struct{}{}
	}
	for id := range s.touched {
		keep[id] = struct{}{}
	}
	return keep
}

// Pull merges the remote store into the collection. Remote rows win except
// for assets with local changes the remote may not have: writes still queued,
// writes that failed, and mutations made while the request was in flight.
func (s *Store) Pull(ctx context.Context) error {
	s.pullMu.Lock()
	defer s.pullMu.Unlock()

	s.mu.Lock()
	s.touched = make(map[string]struct{})
	s.mu.Unlock()

	rows, err := s.svc.Fetch(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()

	keep := s.unsynced()
	s.touched = nil

	s.snapshot.LastPull = time.Now()
	if err != nil {
		s.snapshot.PullError = err
		s.snapshot.ConsecutiveFailures++
		s.logger.Warn("pull failed", zap.Error(err), zap.Int("failures", s.snapshot.ConsecutiveFailures))
		return err
	}
	merged := assetsync.Merge(s.snapshot.Assets, rows, keep)
	s.snapshot.Assets = merged
	s.snapshot.LastUpdated = s.snapshot.LastPull
	s.snapshot.PullError = nil
	s.snapshot.ConsecutiveFailures = 0
	if !s.svc.Persist(merged) {
		s.logger.Warn("mirror not updated after pull")
	}
	s.logger.Info("pull merged", zap.Int("remote", len(rows)), zap.Int("assets", len(merged)), zap.Int("kept_local", len(keep)))
	return nil
}

// Close stops accepting remote writes and waits for queued ones to finish.
func (s *Store) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	if s.remoteCh != nil {
		close(s.remoteCh)
	}
	s.mu.Unlock()
	s.wg.Wait()
}
