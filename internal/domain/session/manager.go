// Package session persists and restores deck snapshots.
//
// Sessions are JSON documents on disk, one file per session, cached
// in memory after first read. Restore rebuilds the card collection
// with fresh IDs, so parent links are rewritten through an old-to-new
// mapping and focus is re-established by hash rather than ID.
package session

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/HobbyCoders/deck/internal/shared/id"
	"github.com/HobbyCoders/deck/internal/shared/types"
	"github.com/bytedance/sonic"
)

// CardManager interface for capturing and rebuilding card state
type CardManager interface {
	List() []*types.Card
	Close(cardID string) bool
	Focus(cardID string) bool
	Adopt(snap types.CardSnapshot) *types.Card
	FindByHash(hash string) (*types.Card, bool)
	Stats() types.DeckStats
}

// Workspace interface for capturing and restoring layout state
type Workspace interface {
	Bounds() types.WorkspaceBounds
	Layout() types.LayoutMode
	SetLayout(mode types.LayoutMode) error
}

// Manager handles session persistence
type Manager struct {
	sessions  sync.Map
	cards     CardManager
	workspace Workspace
	dir       string

	mu           sync.RWMutex
	lastSaved    *time.Time
	lastRestored *time.Time
}

// NewManager creates a session manager persisting under dir
func NewManager(cards CardManager, workspace Workspace, dir string) *Manager {
	return &Manager{
		cards:     cards,
		workspace: workspace,
		dir:       dir,
	}
}

// Save captures the current deck and writes it to disk
func (m *Manager) Save(ctx context.Context, name string, description string) (*types.Session, error) {
	deck := m.captureDeck()

	now := time.Now()
	session := &types.Session{
		ID:          string(id.NewSessionID()),
		Name:        name,
		Description: description,
		CreatedAt:   now,
		UpdatedAt:   now,
		Deck:        *deck,
		Metadata:    map[string]interface{}{},
	}

	data, err := sonic.Marshal(session)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal session: %w", err)
	}

	if err := os.MkdirAll(m.dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create sessions dir: %w", err)
	}
	if err := os.WriteFile(m.sessionPath(session.ID), data, 0o644); err != nil {
		return nil, fmt.Errorf("failed to write session: %w", err)
	}

	// Cache in memory (sync.Map has its own synchronization)
	m.sessions.Store(session.ID, session)

	m.mu.Lock()
	m.lastSaved = &now
	m.mu.Unlock()

	return session, nil
}

// SaveDefault saves a session with a default name
func (m *Manager) SaveDefault(ctx context.Context) (*types.Session, error) {
	return m.Save(ctx, "default", "Auto-saved session")
}

// Load reads a session from cache or disk
func (m *Manager) Load(ctx context.Context, sessionID string) (*types.Session, error) {
	if cached, ok := m.sessions.Load(sessionID); ok {
		return cached.(*types.Session), nil
	}

	data, err := os.ReadFile(m.sessionPath(sessionID))
	if err != nil {
		return nil, fmt.Errorf("failed to read session: %w", err)
	}

	var session types.Session
	if err := sonic.Unmarshal(data, &session); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session %s: %w", sessionID, err)
	}

	if session.ID == "" {
		return nil, fmt.Errorf("session %s has empty ID field", sessionID)
	}

	m.sessions.Store(sessionID, &session)

	return &session, nil
}

// LoadAll scans the sessions directory into the in-memory cache.
// Called once at startup so List covers prior runs.
func (m *Manager) LoadAll(ctx context.Context) error {
	entries, err := os.ReadDir(m.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to scan sessions dir: %w", err)
	}

	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".session") {
			continue
		}
		sessionID := strings.TrimSuffix(name, ".session")
		if _, err := m.Load(ctx, sessionID); err != nil {
			// Corrupt file: skip rather than fail the whole scan
			continue
		}
	}

	return nil
}

// Restore replaces the current deck with a saved session
func (m *Manager) Restore(ctx context.Context, sessionID string) error {
	session, err := m.Load(ctx, sessionID)
	if err != nil {
		return fmt.Errorf("failed to load session: %w", err)
	}

	// Clear the current deck: closing top-level cards cascades to children
	for _, c := range m.cards.List() {
		if c.ParentID == nil {
			m.cards.Close(c.ID)
		}
	}

	if err := m.workspace.SetLayout(session.Deck.Layout); err != nil {
		return fmt.Errorf("failed to restore layout: %w", err)
	}

	// Rebuild parents before children, rewriting parent links through
	// the old-to-new ID mapping. Children can be parents themselves,
	// so keep passing over the pending set until nothing new adopts.
	idMap := make(map[string]string)

	var pending []types.CardSnapshot
	for i := range session.Deck.Cards {
		snap := session.Deck.Cards[i]
		if snap.ParentID == nil {
			restored := m.cards.Adopt(snap)
			idMap[snap.ID] = restored.ID
		} else {
			pending = append(pending, snap)
		}
	}

	for len(pending) > 0 {
		var deferred []types.CardSnapshot
		for _, snap := range pending {
			newParentID, ok := idMap[*snap.ParentID]
			if !ok {
				deferred = append(deferred, snap)
				continue
			}
			snap.ParentID = &newParentID
			restored := m.cards.Adopt(snap)
			idMap[snap.ID] = restored.ID
		}
		if len(deferred) == len(pending) {
			break // Remaining snapshots point at parents that never existed
		}
		pending = deferred
	}

	// Restore focus by hash first (stable across ID regeneration),
	// falling back to the ID mapping.
	if session.Deck.FocusedHash != nil {
		if c, found := m.cards.FindByHash(*session.Deck.FocusedHash); found {
			m.cards.Focus(c.ID)
		}
	} else if session.Deck.FocusedID != nil {
		if newID, ok := idMap[*session.Deck.FocusedID]; ok {
			m.cards.Focus(newID)
		}
	}

	now := time.Now()
	m.mu.Lock()
	m.lastRestored = &now
	m.mu.Unlock()

	return nil
}

// List returns metadata for all cached sessions
func (m *Manager) List() ([]types.SessionMetadata, error) {
	var metadata []types.SessionMetadata

	m.sessions.Range(func(_, value interface{}) bool {
		session := value.(*types.Session)
		metadata = append(metadata, session.ToMetadata())
		return true
	})

	return metadata, nil
}

// Delete removes a session from disk and cache
func (m *Manager) Delete(ctx context.Context, sessionID string) error {
	if err := os.Remove(m.sessionPath(sessionID)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete session: %w", err)
	}

	m.sessions.Delete(sessionID)

	return nil
}

// Stats returns session manager statistics
func (m *Manager) Stats() types.SessionStats {
	var total int
	m.sessions.Range(func(_, _ interface{}) bool {
		total++
		return true
	})

	m.mu.RLock()
	lastSaved := m.lastSaved
	lastRestored := m.lastRestored
	m.mu.RUnlock()

	return types.SessionStats{
		TotalSessions: total,
		LastSaved:     lastSaved,
		LastRestored:  lastRestored,
	}
}

// captureDeck snapshots the current card collection and layout
func (m *Manager) captureDeck() *types.Deck {
	cards := m.cards.List()

	snapshots := make([]types.CardSnapshot, len(cards))
	for i, c := range cards {
		snapshots[i] = types.CardSnapshot{
			ID:        c.ID,
			Hash:      c.Hash,
			Type:      c.Type,
			Title:     c.Title,
			Position:  c.Position,
			Size:      c.Size,
			Z:         c.Z,
			Minimized: c.Minimized,
			Maximized: c.Maximized,
			Pinned:    c.Pinned,
			SnapZone:  c.SnapZone,
			ParentID:  c.ParentID,
			CreatedAt: c.CreatedAt,
			Payload:   c.Payload,
			Services:  c.Services,
		}
	}

	stats := m.cards.Stats()

	return &types.Deck{
		Cards:       snapshots,
		Layout:      m.workspace.Layout(),
		Bounds:      m.workspace.Bounds(),
		FocusedID:   stats.FocusedCardID,
		FocusedHash: stats.FocusedHash,
	}
}

// sessionPath generates the filesystem path for a session
func (m *Manager) sessionPath(sessionID string) string {
	return filepath.Join(m.dir, sessionID+".session")
}
