package server

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/gravitas-games/armory/internal/config"
	"github.com/gravitas-games/armory/internal/manifest"
	"github.com/gravitas-games/armory/internal/network"
	"github.com/gravitas-games/armory/internal/solver"
	"github.com/gravitas-games/armory/pkg/models"
)

// Session owns the connected players and their running solve jobs. Each
// player has at most one job at a time; submitting a new solve supersedes
// and cancels the previous one.
type Session struct {
	ID        string
	CreatedAt time.Time

	// Player management
	players     map[string]*models.Player // playerID -> Player
	connections map[string]*Connection    // playerID -> Connection
	jobs        map[string]*solveJob      // playerID -> running job
	mu          sync.RWMutex

	// Solver inputs shared by every job
	defs   *manifest.Definitions
	tables solver.Tables

	// Configuration
	config *config.Config
}

// solveJob tracks one in-flight solve so a superseding request or shutdown
// can cancel it.
type solveJob struct {
	cancel    context.CancelFunc
	startedAt time.Time
}

// NewSession creates a new solve session backed by the loaded manifest.
func NewSession(id string, cfg *config.Config, defs *manifest.Definitions) (*Session, error) {
	log.Printf("Creating session: %s", id)

	combat, raid := cfg.Solver.TagSets()
	tables := solver.Tables{
		GeneralTag:       cfg.Solver.GeneralTag,
		CombatTags:       combat,
		RaidTags:         raid,
		BucketCategories: make(map[models.Bucket]string, len(cfg.Solver.BucketCategories)),
	}
	for bucket, category := range cfg.Solver.BucketCategories {
		tables.BucketCategories[models.Bucket(bucket)] = category
	}

	session := &Session{
		ID:          id,
		CreatedAt:   time.Now(),
		players:     make(map[string]*models.Player),
		connections: make(map[string]*Connection),
		jobs:        make(map[string]*solveJob),
		defs:        defs,
		tables:      tables,
		config:      cfg,
	}

	log.Printf("Session %s created (%d items, %d mods in manifest)", id, defs.ItemCount(), defs.ModCount())
	return session, nil
}

// AddPlayer adds a player to the session
func (s *Session) AddPlayer(player *models.Player, conn *Connection) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.players) >= s.config.Session.MaxPlayers {
		return fmt.Errorf("session %s is full", s.ID)
	}
	s.players[player.ID] = player
	s.connections[player.ID] = conn

	log.Printf("Player %s (%s) joined session %s", player.Username, player.ID, s.ID)
	return nil
}

// RemovePlayer removes a player from the session and cancels any running
// solve job.
func (s *Session) RemovePlayer(playerID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if job, exists := s.jobs[playerID]; exists {
		job.cancel()
		delete(s.jobs, playerID)
	}
	if player, exists := s.players[playerID]; exists {
		log.Printf("Player %s (%s) left session %s", player.Username, playerID, s.ID)
		delete(s.players, playerID)
		delete(s.connections, playerID)
	}
}

// GetPlayer retrieves a player by ID
func (s *Session) GetPlayer(playerID string) (*models.Player, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	player, exists := s.players[playerID]
	return player, exists
}

// SubmitSolve resolves the request against the manifest and runs the solver
// in a background goroutine, bounded by the configured wall-clock timeout.
// The core solve is pure and synchronous; cancellation and deadlines live
// here, on the calling side.
func (s *Session) SubmitSolve(player *models.Player, conn *Connection, req *network.SolvePayload) error {
	items := make([]*models.Item, 0, len(req.Items))
	for _, id := range req.Items {
		item, ok := s.defs.Item(id)
		if !ok {
			return fmt.Errorf("unknown item: %s", id)
		}
		items = append(items, item)
	}
	if len(items) != models.SlotCount {
		return fmt.Errorf("expected %d items, got %d", models.SlotCount, len(items))
	}

	mods := make([]*models.Mod, 0, len(req.Mods))
	for _, hash := range req.Mods {
		mod, ok := s.defs.Mod(hash)
		if !ok {
			return fmt.Errorf("unknown mod: %d", hash)
		}
		mods = append(mods, mod)
	}

	policy, err := s.defs.PolicyForTier(req.UpgradeTier, s.config.Solver)
	if err != nil {
		return err
	}

	timeout := time.Duration(s.config.Session.SolveTimeoutSec) * time.Second
	ctx, cancel := context.WithTimeout(context.Background(), timeout)

	job := &solveJob{cancel: cancel, startedAt: time.Now()}
	s.mu.Lock()
	if prev, exists := s.jobs[player.ID]; exists {
		log.Printf("Superseding running solve for player %s", player.ID)
		prev.cancel()
	}
	s.jobs[player.ID] = job
	s.mu.Unlock()

	go s.runSolve(ctx, job, player, conn, items, mods, policy)
	return nil
}

// runSolve executes one solve job and delivers the result or a timeout
// error to the player's connection.
func (s *Session) runSolve(ctx context.Context, job *solveJob, player *models.Player, conn *Connection,
	items []*models.Item, mods []*models.Mod, policy *manifest.TierPolicy) {
	defer job.cancel()
	defer func() {
		s.mu.Lock()
		if s.jobs[player.ID] == job {
			delete(s.jobs, player.ID)
		}
		s.mu.Unlock()
	}()

	start := time.Now()

	// A deadline already spent before the solve starts is reported without
	// running the solver.
	if err := ctx.Err(); err != nil {
		if err == context.DeadlineExceeded {
			log.Printf("Solve for player %s timed out before starting", player.ID)
			conn.SendError("solve_timeout", "Solve exceeded the time limit")
		}
		return
	}

	type outcome struct {
		assignment models.Assignment
		err        error
	}
	done := make(chan outcome, 1)
	go func() {
		assignment, err := solver.Solve(items, mods, s.tables, policy)
		done <- outcome{assignment, err}
	}()

	select {
	case <-ctx.Done():
		// Timed out or superseded; the solve goroutine finishes on its own
		// and its buffered result is discarded.
		if ctx.Err() == context.DeadlineExceeded {
			log.Printf("Solve for player %s timed out after %v", player.ID, time.Since(start))
			conn.SendError("solve_timeout", "Solve exceeded the time limit")
		}
	case res := <-done:
		if res.err != nil {
			log.Printf("Solve for player %s failed: %v", player.ID, res.err)
			conn.SendError("solve_failed", res.err.Error())
		} else {
			conn.SendMessage(&network.ServerMessage{
				Type: network.MsgTypeSolveResult,
				Payload: network.SolveResultPayload{
					Assignment:      assignmentHashes(res.assignment),
					TotalEnergyUsed: res.assignment.TotalCost(),
					UpgradeTier:     policy.Tier(),
					ElapsedMs:       time.Since(start).Milliseconds(),
				},
			})
			log.Printf("Solve for player %s done in %v (%d energy used)", player.ID, time.Since(start), res.assignment.TotalCost())
		}
	}
}

// assignmentHashes flattens an assignment to the wire form: item ID to mod
// hashes, preserving placement order.
func assignmentHashes(a models.Assignment) map[string][]int64 {
	out := make(map[string][]int64, len(a))
	for itemID, mods := range a {
		hashes := make([]int64, 0, len(mods))
		for _, m := range mods {
			hashes = append(hashes, m.Hash)
		}
		out[itemID] = hashes
	}
	return out
}

// GetStatus returns the current session status
func (s *Session) GetStatus() network.SessionStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return network.SessionStatus{
		State:        "running",
		PlayerCount:  len(s.players),
		MaxPlayers:   s.config.Session.MaxPlayers,
		ActiveSolves: len(s.jobs),
		Uptime:       int64(time.Since(s.CreatedAt).Seconds()),
	}
}

// Stop cancels every running solve job.
func (s *Session) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for playerID, job := range s.jobs {
		job.cancel()
		delete(s.jobs, playerID)
	}
}
