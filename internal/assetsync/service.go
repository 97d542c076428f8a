// Package assetsync reconciles the local mirror, the seed collection and the
// optional remote store into the collection the application holds.
//
// The mirror is authoritative for a session. The remote store is only read
// through Fetch; callers combine the rows with Merge and write the result
// through to the mirror with Persist.
package assetsync

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/hielopolar/polar/internal/asset"
	"github.com/hielopolar/polar/internal/remote"
)

// ErrNoRemote is returned by remote operations when no store is configured.
var ErrNoRemote = errors.New("no remote store configured")

// MirrorPort is the persistence the service reads from and writes through to.
type MirrorPort interface {
	Load(key string) (asset.Collection, bool)
	Save(key string, c asset.Collection) bool
}

// Options configure a Service.
type Options struct {
	// Key is the mirror key; empty uses asset.StorageKey.
	Key string
	// SeedFile optionally replaces the built-in seed collection.
	SeedFile string
	// Remote is the optional upstream store.
	Remote remote.Store
	Logger *zap.Logger
	// Now stamps rows pushed upstream; nil uses time.Now.
	Now func() time.Time
}

// Service implements initial resolution, write-through persistence, id
// generation and the remote pull/push paths.
type Service struct {
	mirror   MirrorPort
	key      string
	seedFile string
	remote   remote.Store
	logger   *zap.Logger
	now      func() time.Time
	ids      asset.IDGenerator
}

// New builds a Service over mirror.
func New(mirror MirrorPort, opts Options) *Service {
	key := opts.Key
	if key == "" {
		key = asset.StorageKey
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &Service{
		mirror:   mirror,
		key:      key,
		seedFile: opts.SeedFile,
		remote:   opts.Remote,
		logger:   logger.Named("assetsync"),
		now:      now,
	}
}

// Key returns the mirror key in use.
func (s *Service) Key() string { return s.key }

// HasRemote reports whether a remote store is configured.
func (s *Service) HasRemote() bool { return s.remote != nil }

// ResolveInitial returns the mirrored collection, or seeds the mirror when it
// holds nothing usable. When a configured seed file cannot be read the
// built-in seed is used and written through, and the read error is returned
// alongside it.
func (s *Service) ResolveInitial() (asset.Collection, error) {
	if c, ok := s.mirror.Load(s.key); ok {
		s.logger.Info("resolved collection from mirror", zap.Int("assets", len(c)))
		return c, nil
	}

	seed, seedErr := s.seed()
	if seedErr != nil {
		s.logger.Error("seed unavailable, using built-in seed", zap.Error(seedErr))
		seed = asset.Seed()
	}
	s.Persist(seed)
	s.logger.Info("seeded mirror", zap.Int("assets", len(seed)))
	return seed, seedErr
}

// Reset overwrites the mirror with the seed collection.
func (s *Service) Reset() (asset.Collection, error) {
	seed, err := s.seed()
	if err != nil {
		return nil, err
	}
	if !s.Persist(seed) {
		return seed, fmt.Errorf("mirror write failed")
	}
	return seed, nil
}

func (s *Service) seed() (asset.Collection, error) {
	if s.seedFile == "" {
		return asset.Seed(), nil
	}
	return asset.LoadSeedFile(s.seedFile)
}

// Persist replaces the mirrored collection with c. A false return means the
// write failed; the caller's in-memory state stays authoritative.
func (s *Service) Persist(c asset.Collection) bool {
	return s.mirror.Save(s.key, c)
}

// GenerateID returns an id absent from existing.
func (s *Service) GenerateID(existing map[string]struct{}) string {
	return s.ids.Next(existing)
}

// Fetch lists the remote rows without touching the mirror.
func (s *Service) Fetch(ctx context.Context) ([]asset.RawRow, error) {
	if s.remote == nil {
		return nil, ErrNoRemote
	}
	rows, err := s.remote.ListAssets(ctx)
	if err != nil {
		return nil, fmt.Errorf("list remote assets: %w", err)
	}
	return rows, nil
}

// Merge combines the local collection with remote rows. Remote rows replace
// local entries with the same id and come first, in upstream order (newest
// first); entries only known locally follow in their local order. Rows with
// an empty id or model are skipped and duplicate remote ids keep the first
// row.
//
// Ids in keep hold local changes the remote has not seen yet. For those the
// local entry is used in the remote row's place, and a row whose id was
// deleted locally is dropped.
func Merge(local asset.Collection, rows []asset.RawRow, keep map[string]struct{}) asset.Collection {
	merged := make(asset.Collection, 0, len(local)+len(rows))
	seen := make(map[string]struct{}, len(local)+len(rows))
	for _, row := range rows {
		a := asset.FromRow(row)
		if a.Validate() != nil {
			continue
		}
		if _, dup := seen[a.ID]; dup {
			continue
		}
		seen[a.ID] = struct{}{}
		if _, pending := keep[a.ID]; pending {
			mine, ok := local.Find(a.ID)
			if !ok {
				continue
			}
			a = mine.Clone()
		}
		merged = append(merged, a)
	}
	for _, a := range local {
		if _, ok := seen[a.ID]; ok {
			continue
		}
		seen[a.ID] = struct{}{}
		merged = append(merged, a.Clone())
	}
	return merged
}

// Push upserts every asset in c to the remote store. Rows carry no
// created_at, so existing rows keep theirs and new rows take the column
// default.
func (s *Service) Push(ctx context.Context, c asset.Collection) error {
	if s.remote == nil {
		return ErrNoRemote
	}
	now := s.now()
	rows := make([]asset.RawRow, 0, len(c))
	for _, a := range c {
		rows = append(rows, asset.ToRow(a, now))
	}
	if err := s.remote.UpsertAssets(ctx, rows...); err != nil {
		return fmt.Errorf("upsert remote assets: %w", err)
	}
	s.logger.Info("pushed assets", zap.Int("assets", len(rows)))
	return nil
}

// InsertOne sends a newly added asset, stamping created_at.
func (s *Service) InsertOne(ctx context.Context, a asset.Asset) error {
	if s.remote == nil {
		return ErrNoRemote
	}
	if err := s.remote.UpsertAssets(ctx, asset.NewRow(a, s.now())); err != nil {
		return fmt.Errorf("insert remote asset %s: %w", a.ID, err)
	}
	return nil
}

// PushOne upserts changes to an existing asset. The stored created_at is
// left as it is.
func (s *Service) PushOne(ctx context.Context, a asset.Asset) error {
	if s.remote == nil {
		return ErrNoRemote
	}
	if err := s.remote.UpsertAssets(ctx, asset.ToRow(a, s.now())); err != nil {
		return fmt.Errorf("upsert remote asset %s: %w", a.ID, err)
	}
	return nil
}

// DeleteRemote removes a single asset upstream.
func (s *Service) DeleteRemote(ctx context.Context, id string) error {
	if s.remote == nil {
		return ErrNoRemote
	}
	if err := s.remote.DeleteAsset(ctx, id); err != nil {
		return fmt.Errorf("delete remote asset %s: %w", id, err)
	}
	return nil
}
