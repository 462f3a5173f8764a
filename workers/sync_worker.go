// Package workers hosts the background sync coordinator. It is the only
// component allowed to flip a row's synced flag to true, and it never
// touches in-memory session state, just the local store and the remote
// client.
package workers

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"memory-arcade-core/models"
	"memory-arcade-core/remote"
	"memory-arcade-core/services"

	"github.com/go-co-op/gocron/v2"
)

// Stores bundles the per-entity store services the worker drains.
type Stores struct {
	Profiles     *services.ProfileService
	Results      *services.ResultService
	Levels       *services.LevelService
	Achievements *services.AchievementService
	Arcade       *services.ArcadeService
}

// SyncWorker eventually drives every synced=false row to synced=true.
// Protocol per trigger (periodic tick, app foreground, network regained):
// fetch the unsynced rows of each entity type, push each through the
// idempotent remote upsert, mark synced on ack. A failed push leaves the
// row unsynced and stops that type's batch; the next trigger starts that
// batch over. No backoff state is kept beyond "try again next trigger".
//
// Conflict policy is last-local-write-wins: the current local row always
// overwrites the remote copy. This assumes a single writer per user and is
// a documented limitation, not a merge strategy.
type SyncWorker struct {
	stores   Stores
	client   remote.Client
	interval time.Duration

	trigger chan struct{}

	mu       sync.Mutex
	userID   string
	inflight map[string]bool
}

func NewSyncWorker(stores Stores, client remote.Client, interval time.Duration) *SyncWorker {
	if interval <= 0 {
		interval = 30 * time.Second
	}
	return &SyncWorker{
		stores:   stores,
		client:   client,
		interval: interval,
		trigger:  make(chan struct{}, 1),
		inflight: make(map[string]bool),
	}
}

// Rebind points the worker at a new user (login) or at nobody (logout,
// empty id). Binding a user kicks an immediate sync of their backlog.
func (w *SyncWorker) Rebind(userID string) {
	w.mu.Lock()
	w.userID = userID
	w.mu.Unlock()
	if userID != "" {
		w.Notify()
	}
}

// Notify requests a sync cycle without blocking; coalesces with a pending
// trigger. The shell calls this on app foreground and network-available
// transitions.
func (w *SyncWorker) Notify() {
	select {
	case w.trigger <- struct{}{}:
	default:
	}
}

// Start runs the worker until ctx is cancelled. Periodic triggers come
// from a gocron job; external ones through Notify.
func (w *SyncWorker) Start(ctx context.Context) error {
	sched, err := gocron.NewScheduler()
	if err != nil {
		return fmt.Errorf("creating sync scheduler: %w", err)
	}
	if _, err := sched.NewJob(
		gocron.DurationJob(w.interval),
		gocron.NewTask(w.Notify),
	); err != nil {
		return fmt.Errorf("scheduling sync job: %w", err)
	}
	sched.Start()
	defer func() { _ = sched.Shutdown() }()

	log.Println("🔁 Sync worker started")
	w.Notify()

	for {
		select {
		case <-ctx.Done():
			log.Println("⏹️ Sync worker stopped")
			return nil
		case <-w.trigger:
			if err := w.SyncOnce(ctx); err != nil {
				log.Printf("[SYNC] ❌ Cycle incomplete, will retry next trigger: %v", err)
			}
		}
	}
}

type syncSource struct {
	name  string
	fetch func(userID string) ([]models.Syncable, error)
	mark  func(ids ...string) error
}

func (w *SyncWorker) sources() []syncSource {
	return []syncSource{
		{
			name: models.CollectionResults,
			fetch: func(uid string) ([]models.Syncable, error) {
				rows, err := w.stores.Results.GetUnsynced(uid)
				return asSyncables(rows, err)
			},
			mark: w.stores.Results.MarkSynced,
		},
		{
			name: models.CollectionArcadeSessions,
			fetch: func(uid string) ([]models.Syncable, error) {
				rows, err := w.stores.Arcade.GetUnsynced(uid)
				return asSyncables(rows, err)
			},
			mark: w.stores.Arcade.MarkSynced,
		},
		{
			name: models.CollectionLevelProgress,
			fetch: func(uid string) ([]models.Syncable, error) {
				rows, err := w.stores.Levels.GetUnsynced(uid)
				return asSyncables(rows, err)
			},
			mark: w.stores.Levels.MarkSynced,
		},
		{
			name: models.CollectionAchievements,
			fetch: func(uid string) ([]models.Syncable, error) {
				rows, err := w.stores.Achievements.GetUnsynced(uid)
				return asSyncables(rows, err)
			},
			mark: w.stores.Achievements.MarkSynced,
		},
		{
			name: models.CollectionProfiles,
			fetch: func(uid string) ([]models.Syncable, error) {
				rows, err := w.stores.Profiles.GetUnsynced(uid)
				return asSyncables(rows, err)
			},
			mark: w.stores.Profiles.MarkSynced,
		},
	}
}

func asSyncables[T any, PT interface {
	models.Syncable
	*T
}](rows []T, err error) ([]models.Syncable, error) {
	if err != nil {
		return nil, err
	}
	out := make([]models.Syncable, len(rows))
	for i := range rows {
		out[i] = PT(&rows[i])
	}
	return out, nil
}

// SyncOnce runs one full cycle over every entity type for the bound user.
// Types are independent: a failure in one does not stop the others, and
// there is no cross-type ordering guarantee.
func (w *SyncWorker) SyncOnce(ctx context.Context) error {
	w.mu.Lock()
	uid := w.userID
	w.mu.Unlock()
	if uid == "" {
		return nil // logged out, nothing is bound
	}

	var firstErr error
	for _, src := range w.sources() {
		if err := w.pushBatch(ctx, uid, src); err != nil {
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	return firstErr
}

func (w *SyncWorker) pushBatch(ctx context.Context, userID string, src syncSource) error {
	rows, err := src.fetch(userID)
	if err != nil {
		return fmt.Errorf("fetching unsynced %s: %w", src.name, err)
	}
	if len(rows) == 0 {
		return nil
	}
	log.Printf("[SYNC] 📡 Pushing %d unsynced %s row(s)", len(rows), src.name)

	for _, row := range rows {
		key := row.SyncCollection() + "/" + row.SyncID()
		if !w.claim(key) {
			continue // a previous push for this row is still outstanding
		}
		err := w.client.Put(ctx, row.SyncCollection(), row.SyncID(), row)
		w.release(key)
		if err != nil {
			// Row stays synced=false; abandon the rest of this type's
			// batch and let the next trigger start it over.
			return fmt.Errorf("pushing %s: %w", key, err)
		}
		if err := src.mark(row.SyncID()); err != nil {
			return fmt.Errorf("marking %s synced: %w", key, err)
		}
	}
	log.Printf("[SYNC] ✅ %s up to date", src.name)
	return nil
}

func (w *SyncWorker) claim(key string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.inflight[key] {
		return false
	}
	w.inflight[key] = true
	return true
}

func (w *SyncWorker) release(key string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	delete(w.inflight, key)
}
