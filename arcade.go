// Package arcade is the offline-first core of the card-matching game: the
// session state machine, the scoring/streak/achievement engines, the local
// store, and the background sync worker, wired together behind one
// explicitly-constructed App. The presentation layer owns rendering,
// navigation and identity; it drives this package and nothing here blocks
// on the network.
package arcade

import (
	"context"
	"fmt"

	"memory-arcade-core/config"
	"memory-arcade-core/database"
	"memory-arcade-core/game"
	"memory-arcade-core/models"
	"memory-arcade-core/remote"
	"memory-arcade-core/services"
	"memory-arcade-core/workers"

	"gorm.io/gorm"
)

// App is the dependency container: built once from config, passed down,
// no globals.
type App struct {
	Config *config.Config
	DB     *gorm.DB

	Profiles     *services.ProfileService
	Results      *services.ResultService
	Levels       *services.LevelService
	Achievements *services.AchievementService
	Arcade       *services.ArcadeService
	Completion   *services.CompletionService

	Sync *workers.SyncWorker

	userID string
}

// New wires the core. remoteClient may be nil when cfg.Remote.Bucket is
// set, in which case the S3 client is constructed from config; tests pass
// remote.NewMemory().
func New(ctx context.Context, cfg *config.Config, remoteClient remote.Client) (*App, error) {
	db, err := database.Open(cfg.DBPath)
	if err != nil {
		return nil, err
	}

	if remoteClient == nil {
		if cfg.Remote.Bucket == "" {
			return nil, fmt.Errorf("no remote client and no remote bucket configured")
		}
		remoteClient, err = remote.NewS3Client(ctx, remote.S3Config{
			Bucket:          cfg.Remote.Bucket,
			Endpoint:        cfg.Remote.Endpoint,
			Region:          cfg.Remote.Region,
			AccessKeyID:     cfg.Remote.AccessKeyID,
			SecretAccessKey: cfg.Remote.SecretAccessKey,
		})
		if err != nil {
			return nil, err
		}
	}

	app := &App{
		Config:       cfg,
		DB:           db,
		Profiles:     services.NewProfileService(db),
		Results:      services.NewResultService(db),
		Levels:       services.NewLevelService(db),
		Achievements: services.NewAchievementService(db),
		Arcade:       services.NewArcadeService(db),
	}
	app.Completion = services.NewCompletionService(db, app.Levels, app.Achievements)
	app.Sync = workers.NewSyncWorker(workers.Stores{
		Profiles:     app.Profiles,
		Results:      app.Results,
		Levels:       app.Levels,
		Achievements: app.Achievements,
		Arcade:       app.Arcade,
	}, remoteClient, cfg.SyncInterval)
	return app, nil
}

// Login binds the core to a user: ensures their profile row exists and
// points the sync worker at their backlog.
func (a *App) Login(userID string) (*models.UserProfile, error) {
	prof, err := a.Profiles.Ensure(userID)
	if err != nil {
		return nil, err
	}
	a.userID = userID
	a.Sync.Rebind(userID)
	return prof, nil
}

// Logout unbinds the user. The sync worker idles until the next login;
// local rows keep their synced flags and are drained on rebind.
func (a *App) Logout() {
	a.userID = ""
	a.Sync.Rebind("")
}

// NewGame deals a session with the app's clock settings applied.
func (a *App) NewGame(cfg game.Config) *game.Session {
	if cfg.TickInterval == 0 {
		cfg.TickInterval = a.Config.TickInterval
	}
	if cfg.MismatchDelay == 0 {
		cfg.MismatchDelay = a.Config.MismatchDelay
	}
	return game.NewSession(cfg)
}

// NewArcadeRun starts an arcade escalation with the app's clock settings.
func (a *App) NewArcadeRun(theme models.Theme) *game.ArcadeRun {
	return game.NewArcadeRun(theme, a.Config.TickInterval, a.Config.MismatchDelay)
}

// CompleteSession persists a finished session for the logged-in user and
// nudges the sync worker. Sessions that are not complete (still active, or
// abandoned) persist nothing and return nil.
func (a *App) CompleteSession(s *game.Session) (*services.CompletionSummary, error) {
	out, ok := s.Outcome()
	if !ok {
		return nil, nil
	}
	if a.userID == "" {
		return nil, fmt.Errorf("no user logged in")
	}
	summary, err := a.Completion.CompleteSession(a.userID, out)
	if err != nil {
		return nil, err
	}
	a.Sync.Notify()
	return summary, nil
}

// CompleteArcadeRun persists a finished arcade run for the logged-in user.
func (a *App) CompleteArcadeRun(run *game.ArcadeRun) (*services.CompletionSummary, error) {
	if a.userID == "" {
		return nil, fmt.Errorf("no user logged in")
	}
	summary, err := a.Completion.CompleteArcadeRun(a.userID, run)
	if err != nil {
		return nil, err
	}
	a.Sync.Notify()
	return summary, nil
}
