package card

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/HobbyCoders/deck/internal/domain/geometry"
	"github.com/HobbyCoders/deck/internal/infrastructure/monitoring"
	"github.com/HobbyCoders/deck/internal/shared/id"
	"github.com/HobbyCoders/deck/internal/shared/types"
	"github.com/HobbyCoders/deck/internal/shared/utils"
	"github.com/microcosm-cc/bluemonday"
)

// Default geometry for newly opened cards. Consecutive opens cascade
// so new cards do not stack exactly on top of each other.
const (
	DefaultCardWidth  = 560
	DefaultCardHeight = 400
	cascadeStep       = 32
	cascadeWrap       = 8
)

// Manager owns the authoritative card collection. All geometry and
// flag changes flow through it; callers receive copies, never the
// live records.
type Manager struct {
	mu          sync.RWMutex
	cards       map[string]*types.Card // Protected by mu
	focusedID   *string                // Protected by mu
	focusedHash *string                // Protected by mu
	nextZ       int                    // Protected by mu
	opened      int                    // Protected by mu, drives the cascade

	identifier *utils.CardIdentifier
	sanitizer  *bluemonday.Policy
	metrics    *monitoring.Metrics
}

// NewManager creates a new card manager
func NewManager() *Manager {
	return &Manager{
		cards:      make(map[string]*types.Card),
		nextZ:      1,
		identifier: utils.NewCardIdentifier(utils.DefaultHasher()),
		sanitizer:  bluemonday.StrictPolicy(),
	}
}

// WithMetrics adds metrics tracking to the manager
func (m *Manager) WithMetrics(metrics *monitoring.Metrics) *Manager {
	m.metrics = metrics
	return m
}

// Open creates a new card and focuses it
func (m *Manager) Open(req types.OpenCardRequest) (*types.Card, error) {
	title := m.sanitizeTitle(req.Title)
	if title == "" {
		title = defaultTitle(req.Type)
	}

	if req.Payload != nil {
		if err := utils.ValidatePayload(req.Payload); err != nil {
			return nil, err
		}
	}

	hash := m.identifier.GenerateHash(string(req.Type), title, req.ParentID)

	m.mu.Lock()
	defer m.mu.Unlock()

	size := types.CardSize{Width: DefaultCardWidth, Height: DefaultCardHeight}
	if req.Size != nil {
		size = floorSize(*req.Size)
	}

	pos := m.cascadePosition()
	if req.Position != nil {
		pos = *req.Position
	}

	payload := req.Payload
	if payload == nil {
		payload = map[string]interface{}{}
	}

	c := &types.Card{
		ID:        string(id.NewCardID()),
		Hash:      hash,
		Type:      req.Type,
		Title:     title,
		Position:  pos,
		Size:      size,
		Z:         m.nextZ,
		Focused:   true,
		SnapZone:  types.SnapNone,
		ParentID:  req.ParentID,
		CreatedAt: time.Now(),
		Payload:   payload,
		Services:  servicesFor(req.Type),
	}
	m.nextZ++
	m.opened++

	m.setFocusLocked(c)
	m.cards[c.ID] = c

	if m.metrics != nil {
		m.metrics.RecordCardOpened(string(c.Type))
	}

	cardCopy := *c
	return &cardCopy, nil
}

// Get retrieves a card by ID
func (m *Manager) Get(cardID string) (*types.Card, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	c, ok := m.cards[cardID]
	if !ok {
		return nil, false
	}

	// Return a copy to prevent external modifications
	cardCopy := *c
	return &cardCopy, true
}

// List returns all cards sorted by z-index (paint order)
func (m *Manager) List() []*types.Card {
	m.mu.RLock()
	defer m.mu.RUnlock()

	cards := make([]*types.Card, 0, len(m.cards))
	for _, c := range m.cards {
		cardCopy := *c
		cards = append(cards, &cardCopy)
	}

	// Insertion sort keeps the common small-n case cheap
	for i := 1; i < len(cards); i++ {
		for j := i; j > 0 && cards[j-1].Z > cards[j].Z; j-- {
			cards[j-1], cards[j] = cards[j], cards[j-1]
		}
	}

	return cards
}

// Focus brings a card to the top of the stacking order
func (m *Manager) Focus(cardID string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	c, ok := m.cards[cardID]
	if !ok {
		return false
	}

	m.setFocusLocked(c)
	return true
}

// Close destroys a card and every descendant reachable through
// parent links. Focus falls back to the topmost remaining card.
func (m *Manager) Close(cardID string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	c, ok := m.cards[cardID]
	if !ok {
		return false
	}
	cardType := string(c.Type)

	// Collect the whole descendant tree first: children can carry
	// children of their own, and none may survive with a dangling
	// parent link.
	doomed := map[string]bool{cardID: true}
	for {
		grew := false
		for _, child := range m.cards {
			if child.ParentID == nil || doomed[child.ID] {
				continue
			}
			if doomed[*child.ParentID] {
				doomed[child.ID] = true
				grew = true
			}
		}
		if !grew {
			break
		}
	}

	for victim := range doomed {
		delete(m.cards, victim)
	}

	if m.focusedID != nil && doomed[*m.focusedID] {
		m.focusedID = nil
		m.focusedHash = nil

		// Auto-focus the topmost remaining card
		var top *types.Card
		for _, remaining := range m.cards {
			if remaining.Minimized {
				continue
			}
			if top == nil || remaining.Z > top.Z {
				top = remaining
			}
		}
		if top != nil {
			m.setFocusLocked(top)
		}
	}

	if m.metrics != nil {
		m.metrics.RecordCardClosed(cardType)
	}

	return true
}

// Move updates a card's position. Maximized cards do not move.
func (m *Manager) Move(cardID string, pos types.CardPosition) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	c, ok := m.cards[cardID]
	if !ok || c.Maximized {
		return false
	}

	c.Position = pos
	return true
}

// Resize updates a card's geometry, enforcing the minimum dimensions.
// Position is included because west/north resizes move the origin.
func (m *Manager) Resize(cardID string, pos types.CardPosition, size types.CardSize) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	c, ok := m.cards[cardID]
	if !ok || c.Maximized {
		return false
	}

	c.Position = pos
	c.Size = floorSize(size)
	return true
}

// Minimize hides a card from the workspace
func (m *Manager) Minimize(cardID string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	c, ok := m.cards[cardID]
	if !ok || c.Minimized {
		return false
	}

	c.Minimized = true
	c.Focused = false

	if m.focusedID != nil && *m.focusedID == cardID {
		m.focusedID = nil
		m.focusedHash = nil
	}

	return true
}

// Restore brings a minimized card back and focuses it
func (m *Manager) Restore(cardID string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	c, ok := m.cards[cardID]
	if !ok || !c.Minimized {
		return false
	}

	c.Minimized = false
	m.setFocusLocked(c)
	return true
}

// Maximize expands a card to fill the workspace. At most one card may
// be maximized at a time, so any other maximized card is restored
// first. The prior geometry is remembered for Unmaximize.
func (m *Manager) Maximize(cardID string, bounds types.WorkspaceBounds) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	c, ok := m.cards[cardID]
	if !ok || c.Maximized {
		return false
	}

	for _, other := range m.cards {
		if other.Maximized {
			m.unmaximizeLocked(other)
		}
	}

	// A snapped card already remembers its free-floating geometry;
	// keep that so unmaximize returns to the float, not the half.
	if c.Restore == nil {
		c.Restore = &types.CardRestore{Position: c.Position, Size: c.Size}
	}
	c.Maximized = true
	c.SnapZone = types.SnapNone
	c.Position = types.CardPosition{X: 0, Y: 0}
	c.Size = floorSize(types.CardSize{Width: bounds.Width, Height: bounds.Height})

	m.setFocusLocked(c)
	return true
}

// Remaximize re-applies workspace bounds to an already maximized
// card, leaving its remembered restore geometry alone. Used when the
// workspace is re-measured while a card is maximized.
func (m *Manager) Remaximize(cardID string, bounds types.WorkspaceBounds) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	c, ok := m.cards[cardID]
	if !ok || !c.Maximized {
		return false
	}

	c.Position = types.CardPosition{X: 0, Y: 0}
	c.Size = floorSize(types.CardSize{Width: bounds.Width, Height: bounds.Height})
	return true
}

// Unmaximize restores a maximized card to its remembered geometry
func (m *Manager) Unmaximize(cardID string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	c, ok := m.cards[cardID]
	if !ok || !c.Maximized {
		return false
	}

	m.unmaximizeLocked(c)
	return true
}

// TogglePin flips a card's pinned flag and returns the new value
func (m *Manager) TogglePin(cardID string) (bool, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	c, ok := m.cards[cardID]
	if !ok {
		return false, false
	}

	c.Pinned = !c.Pinned
	return c.Pinned, true
}

// Rename updates a card's title. The title is sanitized because it is
// rendered verbatim in the client.
func (m *Manager) Rename(cardID string, title string) error {
	clean := m.sanitizeTitle(title)
	if err := utils.ValidateTitle(clean); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	c, ok := m.cards[cardID]
	if !ok {
		return fmt.Errorf("card not found: %s", cardID)
	}

	c.Title = clean
	c.Hash = m.identifier.GenerateHash(string(c.Type), clean, c.ParentID)
	if m.focusedID != nil && *m.focusedID == cardID {
		m.focusedHash = &c.Hash
	}

	return nil
}

// Snap docks a card into a zone, remembering its free-floating
// geometry. SnapNone releases the card back to that geometry.
func (m *Manager) Snap(cardID string, zone types.SnapZone, bounds types.WorkspaceBounds) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	c, ok := m.cards[cardID]
	if !ok || c.Maximized {
		return false
	}

	if zone == types.SnapNone {
		if c.SnapZone == types.SnapNone {
			return true
		}
		if c.Restore != nil {
			c.Position = c.Restore.Position
			c.Size = c.Restore.Size
			c.Restore = nil
		}
		c.SnapZone = types.SnapNone
		return true
	}

	rect, ok := geometry.SnapRect(zone, bounds)
	if !ok {
		return false
	}

	if c.SnapZone == types.SnapNone {
		c.Restore = &types.CardRestore{Position: c.Position, Size: c.Size}
	}

	c.SnapZone = zone
	c.Position = rect.Position()
	c.Size = floorSize(rect.Size())

	if m.metrics != nil {
		m.metrics.RecordSnap(string(zone))
	}
	return true
}

// SetGeometry applies an absolute rect, used by the layout engine
// when tiling. Clears any snap tag since tiling supersedes it.
func (m *Manager) SetGeometry(cardID string, rect geometry.Rect) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	c, ok := m.cards[cardID]
	if !ok {
		return false
	}

	c.SnapZone = types.SnapNone
	c.Position = rect.Position()
	c.Size = floorSize(rect.Size())
	return true
}

// UpdatePayload replaces a card's opaque per-type payload
func (m *Manager) UpdatePayload(cardID string, payload map[string]interface{}) error {
	if err := utils.ValidatePayload(payload); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	c, ok := m.cards[cardID]
	if !ok {
		return fmt.Errorf("card not found: %s", cardID)
	}

	c.Payload = payload
	return nil
}

// Stats returns manager statistics
func (m *Manager) Stats() types.DeckStats {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var total, visible, minimized, topZ int
	for _, c := range m.cards {
		total++
		if c.Minimized {
			minimized++
		} else {
			visible++
		}
		if c.Z > topZ {
			topZ = c.Z
		}
	}

	// Copy pointers to avoid race
	var focusedID, focusedHash *string
	if m.focusedID != nil {
		idCopy := *m.focusedID
		focusedID = &idCopy
	}
	if m.focusedHash != nil {
		hash := *m.focusedHash
		focusedHash = &hash
	}

	return types.DeckStats{
		TotalCards:     total,
		VisibleCards:   visible,
		MinimizedCards: minimized,
		FocusedCardID:  focusedID,
		FocusedHash:    focusedHash,
		TopZ:           topZ,
	}
}

// FindByHash finds a card by its hash (for restoration)
func (m *Manager) FindByHash(hash string) (*types.Card, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, c := range m.cards {
		if c.Hash == hash {
			cardCopy := *c
			return &cardCopy, true
		}
	}
	return nil, false
}

// Adopt inserts a card rebuilt from a saved snapshot, preserving its
// saved geometry and flags. Used by session restore.
func (m *Manager) Adopt(snap types.CardSnapshot) *types.Card {
	m.mu.Lock()
	defer m.mu.Unlock()

	c := &types.Card{
		ID:        string(id.NewCardID()),
		Hash:      snap.Hash,
		Type:      snap.Type,
		Title:     snap.Title,
		Position:  snap.Position,
		Size:      floorSize(snap.Size),
		Z:         snap.Z,
		Minimized: snap.Minimized,
		Maximized: snap.Maximized,
		Pinned:    snap.Pinned,
		SnapZone:  snap.SnapZone,
		ParentID:  snap.ParentID,
		CreatedAt: snap.CreatedAt,
		Payload:   snap.Payload,
		Services:  snap.Services,
	}
	if c.Payload == nil {
		c.Payload = map[string]interface{}{}
	}
	if snap.Z >= m.nextZ {
		m.nextZ = snap.Z + 1
	}

	m.cards[c.ID] = c

	cardCopy := *c
	return &cardCopy
}

// setFocusLocked makes c the focused, topmost card. Caller holds mu.
func (m *Manager) setFocusLocked(c *types.Card) {
	if m.focusedID != nil && *m.focusedID != c.ID {
		if current, exists := m.cards[*m.focusedID]; exists {
			current.Focused = false
		}
	}

	c.Focused = true
	if c.Z < m.nextZ-1 {
		c.Z = m.nextZ
		m.nextZ++
	}

	m.focusedID = &c.ID
	m.focusedHash = &c.Hash
}

// unmaximizeLocked restores remembered geometry. Caller holds mu.
func (m *Manager) unmaximizeLocked(c *types.Card) {
	c.Maximized = false
	if c.Restore != nil {
		c.Position = c.Restore.Position
		c.Size = c.Restore.Size
		c.Restore = nil
	}
}

func (m *Manager) sanitizeTitle(title string) string {
	return strings.TrimSpace(m.sanitizer.Sanitize(title))
}

func (m *Manager) cascadePosition() types.CardPosition {
	step := (m.opened % cascadeWrap) * cascadeStep
	return types.CardPosition{X: 48 + step, Y: 48 + step}
}

// floorSize enforces the minimum card dimensions
func floorSize(size types.CardSize) types.CardSize {
	if size.Width < types.MinCardWidth {
		size.Width = types.MinCardWidth
	}
	if size.Height < types.MinCardHeight {
		size.Height = types.MinCardHeight
	}
	return size
}

// defaultTitle names an untitled card by its type
func defaultTitle(cardType types.CardType) string {
	switch cardType {
	case types.CardChat:
		return "Chat"
	case types.CardAgent:
		return "Agent Monitor"
	case types.CardCanvas:
		return "Canvas"
	case types.CardTerminal:
		return "Terminal"
	case types.CardSettings:
		return "Settings"
	case types.CardProfile:
		return "Profile"
	case types.CardSubagent:
		return "Subagent"
	case types.CardProject:
		return "Project"
	case types.CardFileBrowser:
		return "Files"
	case types.CardModelStudio:
		return "Model Studio"
	default:
		return "Untitled Card"
	}
}

// servicesFor lists the backing service providers a card type uses
func servicesFor(cardType types.CardType) []string {
	switch cardType {
	case types.CardFileBrowser, types.CardProject:
		return []string{"files"}
	case types.CardTerminal:
		return []string{"terminal"}
	case types.CardSettings:
		return []string{"settings"}
	case types.CardProfile:
		return []string{"profile"}
	default:
		return []string{}
	}
}
