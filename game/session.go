package game

import (
	"math/rand"
	"sync"
	"time"

	"memory-arcade-core/models"
	"memory-arcade-core/observe"
)

type Status string

const (
	StatusActive    Status = "active"
	StatusComplete  Status = "complete"
	StatusAbandoned Status = "abandoned"
)

// FlipResult is the outcome of one FlipCard call. Invalid flips (already
// matched, already face-up, two cards pending resolution, session finished)
// are rejected as a no-op, never surfaced as errors.
type FlipResult int

const (
	FlipRejected FlipResult = iota
	FlipSingle
	FlipMatch
	FlipNoMatch
)

func (r FlipResult) String() string {
	switch r {
	case FlipSingle:
		return "single"
	case FlipMatch:
		return "match"
	case FlipNoMatch:
		return "no_match"
	default:
		return "rejected"
	}
}

const comboBonusPerStep = 10

// Config describes one session to be dealt. Zero values fall back to
// sensible defaults in NewSession.
type Config struct {
	Mode        models.Mode
	Theme       models.Theme
	Grid        models.GridSize
	Difficulty  models.Difficulty
	LevelNumber int

	// Players is 1 for solo modes, 2 for local hot-seat multiplayer.
	Players int

	// TimeLimit in seconds; 0 picks the difficulty preset for timed modes
	// and a count-up clock otherwise.
	TimeLimit int

	TickInterval  time.Duration
	MismatchDelay time.Duration

	// Seed for the deck shuffle; 0 = time-seeded. Tests pass a fixed seed.
	Seed int64
}

// PlayerState is per-player progress within a session. Combo counts
// consecutive matches by the same player and resets on a mismatch.
type PlayerState struct {
	Score     int `json:"score"`
	Matches   int `json:"matches"`
	Combo     int `json:"combo"`
	PeakCombo int `json:"peak_combo"`
}

// Snapshot is an immutable view of the session handed to UI adapters.
type Snapshot struct {
	Status       Status        `json:"status"`
	Cards        []Card        `json:"cards"`
	Moves        int           `json:"moves"`
	MatchedPairs int           `json:"matched_pairs"`
	TotalPairs   int           `json:"total_pairs"`
	Score        int           `json:"score"`
	Elapsed      int           `json:"elapsed"`
	Remaining    int           `json:"remaining"`
	ActivePlayer int           `json:"active_player"`
	Players      []PlayerState `json:"players"`
	TimedOut     bool          `json:"timed_out"`
}

// Outcome is the immutable result of a finished session. It is the only
// value that crosses the boundary out of the state machine; the session
// object itself is discarded after conversion.
type Outcome struct {
	Mode        models.Mode
	Theme       string
	Grid        string
	Difficulty  models.Difficulty
	LevelNumber int

	Score      int
	Moves      int
	TotalPairs int
	Duration   int // seconds
	IsWin      bool
	TimedOut   bool
	PeakCombo  int
}

// Session owns one active game's card states and counters. Flip calls must
// come from a single logical caller (the foreground game loop); the internal
// mutex only serializes those calls against the session's own clock ticks
// and mismatch flip-backs.
type Session struct {
	mu   sync.Mutex
	cfg  Config
	diff models.DifficultyConfig

	cards        []Card
	totalPairs   int
	matchedPairs int
	moves        int
	score        int

	timeLimit int
	elapsed   int
	remaining int
	timedOut  bool

	status    Status
	firstCard int // single face-up card awaiting its partner, -1 if none

	pendingA, pendingB int // mismatched pair awaiting flip-back
	pendingSet         bool

	players []PlayerState
	active  int

	ticker        *time.Ticker
	clockDone     chan struct{}
	mismatchTimer *time.Timer

	// Changes publishes a snapshot after every state change.
	Changes *observe.Value[Snapshot]
}

// NewSession deals a shuffled board and returns a session in StatusActive.
// The clock does not run until Start is called.
func NewSession(cfg Config) *Session {
	if cfg.Players < 1 {
		cfg.Players = 1
	}
	if cfg.TickInterval <= 0 {
		cfg.TickInterval = time.Second
	}
	if cfg.MismatchDelay <= 0 {
		cfg.MismatchDelay = 800 * time.Millisecond
	}
	if cfg.Difficulty == "" {
		cfg.Difficulty = models.DifficultyMedium
	}
	if cfg.Grid.TotalCards() == 0 {
		cfg.Grid = models.Grid4x4
	}
	if cfg.Theme.Images <= 0 {
		cfg.Theme = models.Themes[0]
	}
	diff := models.DifficultySettings[cfg.Difficulty]

	limit := cfg.TimeLimit
	if limit == 0 && cfg.Mode == models.ModeTimed {
		limit = diff.TimeLimit
	}

	var rng *rand.Rand
	if cfg.Seed != 0 {
		rng = rand.New(rand.NewSource(cfg.Seed))
	}

	s := &Session{
		cfg:        cfg,
		diff:       diff,
		cards:      NewDeck(cfg.Theme, cfg.Grid, rng),
		totalPairs: cfg.Grid.Pairs(),
		timeLimit:  limit,
		remaining:  limit,
		status:     StatusActive,
		firstCard:  -1,
		players:    make([]PlayerState, cfg.Players),
		Changes:    observe.NewValue[Snapshot](),
	}
	s.Changes.Set(s.snapshotLocked())
	return s
}

// Start launches the session clock: count-up for untimed sessions,
// count-down when a time limit is set. Idempotent while active.
func (s *Session) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.status != StatusActive || s.ticker != nil {
		return
	}
	s.ticker = time.NewTicker(s.cfg.TickInterval)
	s.clockDone = make(chan struct{})
	go s.runClock(s.ticker, s.clockDone)
}

func (s *Session) runClock(ticker *time.Ticker, done chan struct{}) {
	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			s.tick()
		}
	}
}

func (s *Session) tick() {
	s.mu.Lock()
	if s.status != StatusActive {
		s.mu.Unlock()
		return
	}
	s.elapsed++
	if s.timeLimit > 0 && s.remaining > 0 {
		s.remaining--
	}
	// Running out the clock only finishes a session the player has actually
	// touched: render/initialization ticks with zero moves never
	// auto-complete. Once a move exists the next tick closes it out.
	if s.timeLimit > 0 && s.remaining == 0 && s.moves > 0 {
		s.timedOut = true
		s.finishLocked()
	}
	snap := s.snapshotLocked()
	s.mu.Unlock()
	s.Changes.Set(snap)
}

// FlipCard turns the card at id face-up and resolves pair matching. The
// first card of an attempt yields FlipSingle; the second yields FlipMatch or
// FlipNoMatch and always counts one move. Mismatched cards stay face-up for
// the display delay, then flip back.
func (s *Session) FlipCard(id int) FlipResult {
	s.mu.Lock()
	if s.status != StatusActive || id < 0 || id >= len(s.cards) || s.pendingSet {
		s.mu.Unlock()
		return FlipRejected
	}
	c := &s.cards[id]
	if c.Flipped || c.Matched {
		s.mu.Unlock()
		return FlipRejected
	}
	c.Flipped = true

	var res FlipResult
	if s.firstCard < 0 {
		s.firstCard = id
		res = FlipSingle
	} else {
		first := &s.cards[s.firstCard]
		s.moves++
		if first.PairID == c.PairID {
			res = FlipMatch
			first.Matched = true
			c.Matched = true
			s.matchedPairs++
			s.firstCard = -1

			p := &s.players[s.active]
			p.Combo++
			if p.Combo > p.PeakCombo {
				p.PeakCombo = p.Combo
			}
			pts := s.matchPointsLocked(p.Combo)
			p.Matches++
			p.Score += pts
			s.score += pts

			// The final match always wins a match-vs-timeout race: it is
			// evaluated here, before any later clock tick can see the
			// session as expired.
			if s.matchedPairs == s.totalPairs {
				s.finishLocked()
			}
		} else {
			res = FlipNoMatch
			s.pendingA, s.pendingB = s.firstCard, id
			s.pendingSet = true
			s.firstCard = -1
			s.players[s.active].Combo = 0
			if len(s.players) > 1 {
				s.active = (s.active + 1) % len(s.players)
			}
			s.mismatchTimer = time.AfterFunc(s.cfg.MismatchDelay, s.ResolveMismatch)
		}
	}

	snap := s.snapshotLocked()
	s.mu.Unlock()
	s.Changes.Set(snap)
	return res
}

// matchPointsLocked: base score plus a time bonus that decays linearly to
// zero over the difficulty's bonus window, plus a small combo bonus.
func (s *Session) matchPointsLocked(combo int) int {
	pts := s.diff.BaseMatchXP
	if s.diff.BonusWindow > 0 && s.elapsed < s.diff.BonusWindow {
		pts += s.diff.MaxTimeBonus * (s.diff.BonusWindow - s.elapsed) / s.diff.BonusWindow
	}
	if combo > 1 {
		pts += comboBonusPerStep * (combo - 1)
	}
	return pts
}

// ResolveMismatch flips a pending mismatched pair back face-down. It runs
// automatically after the display delay but callers may invoke it earlier
// (e.g. the player taps a third card area to hurry the board along).
func (s *Session) ResolveMismatch() {
	s.mu.Lock()
	if !s.pendingSet || s.status != StatusActive {
		s.mu.Unlock()
		return
	}
	s.cards[s.pendingA].Flipped = false
	s.cards[s.pendingB].Flipped = false
	s.pendingSet = false
	if s.mismatchTimer != nil {
		s.mismatchTimer.Stop()
		s.mismatchTimer = nil
	}
	snap := s.snapshotLocked()
	s.mu.Unlock()
	s.Changes.Set(snap)
}

// Abandon discards an active session: the clock and any pending flip-back
// are cancelled and no result is ever produced from it.
func (s *Session) Abandon() {
	s.mu.Lock()
	if s.status != StatusActive {
		s.mu.Unlock()
		return
	}
	s.status = StatusAbandoned
	s.stopTimersLocked()
	snap := s.snapshotLocked()
	s.mu.Unlock()
	s.Changes.Set(snap)
}

// finishLocked transitions Active → Complete and cancels all timers. No
// transition ever leaves Complete.
func (s *Session) finishLocked() {
	s.status = StatusComplete
	s.stopTimersLocked()
}

func (s *Session) stopTimersLocked() {
	if s.ticker != nil {
		s.ticker.Stop()
		s.ticker = nil
	}
	if s.clockDone != nil {
		close(s.clockDone)
		s.clockDone = nil
	}
	if s.mismatchTimer != nil {
		s.mismatchTimer.Stop()
		s.mismatchTimer = nil
	}
}

// Snapshot returns an immutable copy of the current state.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Session) snapshotLocked() Snapshot {
	cards := make([]Card, len(s.cards))
	copy(cards, s.cards)
	players := make([]PlayerState, len(s.players))
	copy(players, s.players)
	return Snapshot{
		Status:       s.status,
		Cards:        cards,
		Moves:        s.moves,
		MatchedPairs: s.matchedPairs,
		TotalPairs:   s.totalPairs,
		Score:        s.score,
		Elapsed:      s.elapsed,
		Remaining:    s.remaining,
		ActivePlayer: s.active,
		Players:      players,
		TimedOut:     s.timedOut,
	}
}

// Status returns the session's current lifecycle state.
func (s *Session) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// Outcome converts a completed session into its immutable result. It
// returns false for sessions that are still active or were abandoned;
// abandoned sessions produce no record at all.
func (s *Session) Outcome() (Outcome, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.status != StatusComplete {
		return Outcome{}, false
	}
	peak := 0
	for _, p := range s.players {
		if p.PeakCombo > peak {
			peak = p.PeakCombo
		}
	}
	return Outcome{
		Mode:        s.cfg.Mode,
		Theme:       s.cfg.Theme.Name,
		Grid:        s.cfg.Grid.Name,
		Difficulty:  s.cfg.Difficulty,
		LevelNumber: s.cfg.LevelNumber,
		Score:       s.score,
		Moves:       s.moves,
		TotalPairs:  s.totalPairs,
		Duration:    s.elapsed,
		IsWin:       s.matchedPairs == s.totalPairs,
		TimedOut:    s.timedOut,
		PeakCombo:   peak,
	}, true
}
