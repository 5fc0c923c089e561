package terminal

import (
	"fmt"
	"os"
	"os/exec"
	"sync"
	"time"

	"github.com/creack/pty"
	"github.com/google/uuid"
)

// Output buffered per session before the oldest bytes are dropped
const bufferSize = 1024 * 1024

// Session represents an active terminal session
type Session struct {
	ID         string
	CardID     string
	Shell      string
	WorkingDir string
	Cols       int
	Rows       int
	StartedAt  time.Time

	cmd    *exec.Cmd
	ptmx   *os.File
	output *ring

	mu     sync.RWMutex
	closed bool
}

// SessionInfo is the public representation of a session
type SessionInfo struct {
	ID         string    `json:"id"`
	CardID     string    `json:"card_id,omitempty"`
	Shell      string    `json:"shell"`
	WorkingDir string    `json:"working_dir"`
	Cols       int       `json:"cols"`
	Rows       int       `json:"rows"`
	StartedAt  time.Time `json:"started_at"`
	Active     bool      `json:"active"`
}

// Options configures a new session
type Options struct {
	Shell      string
	WorkingDir string
	Cols       int
	Rows       int
	Env        map[string]string
	CardID     string
}

// Manager manages terminal sessions
type Manager struct {
	sessions   sync.Map // map[string]*Session
	defaultDir string
}

// NewManager creates a session manager defaulting new shells to dir
func NewManager(defaultDir string) *Manager {
	return &Manager{defaultDir: defaultDir}
}

// CreateSession starts a shell under a fresh PTY
func (m *Manager) CreateSession(opts Options) (*SessionInfo, error) {
	shell := opts.Shell
	if shell == "" {
		shell = os.Getenv("SHELL")
		if shell == "" {
			shell = "/bin/bash"
		}
	}

	workingDir := opts.WorkingDir
	if workingDir == "" {
		workingDir = m.defaultDir
	}

	cols, rows := opts.Cols, opts.Rows
	if cols <= 0 {
		cols = 80
	}
	if rows <= 0 {
		rows = 24
	}

	cmd := exec.Command(shell)
	cmd.Dir = workingDir
	cmd.Env = append(os.Environ(), "TERM=xterm-256color")
	for key, value := range opts.Env {
		cmd.Env = append(cmd.Env, fmt.Sprintf("%s=%s", key, value))
	}

	ptmx, err := pty.StartWithSize(cmd, &pty.Winsize{
		Rows: uint16(rows),
		Cols: uint16(cols),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to start PTY: %w", err)
	}

	session := &Session{
		ID:         "term_" + uuid.NewString(),
		CardID:     opts.CardID,
		Shell:      shell,
		WorkingDir: workingDir,
		Cols:       cols,
		Rows:       rows,
		StartedAt:  time.Now(),
		cmd:        cmd,
		ptmx:       ptmx,
		output:     newRing(bufferSize),
	}

	m.sessions.Store(session.ID, session)

	go m.drainOutput(session)
	go m.monitorProcess(session)

	return session.info(true), nil
}

// drainOutput continuously reads from the PTY into the ring buffer
func (m *Manager) drainOutput(session *Session) {
	buf := make([]byte, 4096)
	for {
		n, err := session.ptmx.Read(buf)
		if n > 0 {
			session.output.Write(buf[:n])
		}
		if err != nil {
			break
		}
	}
}

// monitorProcess waits for shell exit and releases the PTY
func (m *Manager) monitorProcess(session *Session) {
	session.cmd.Wait()

	session.mu.Lock()
	session.closed = true
	session.mu.Unlock()

	session.ptmx.Close()
}

// Write sends input to a session
func (m *Manager) Write(sessionID string, input []byte) error {
	session, err := m.get(sessionID)
	if err != nil {
		return err
	}

	session.mu.RLock()
	closed := session.closed
	session.mu.RUnlock()

	if closed {
		return fmt.Errorf("session is closed: %s", sessionID)
	}

	_, err = session.ptmx.Write(input)
	return err
}

// Read drains buffered output from a session
func (m *Manager) Read(sessionID string) ([]byte, error) {
	session, err := m.get(sessionID)
	if err != nil {
		return nil, err
	}
	return session.output.Drain(), nil
}

// Resize changes terminal dimensions
func (m *Manager) Resize(sessionID string, cols, rows int) error {
	session, err := m.get(sessionID)
	if err != nil {
		return err
	}

	session.mu.Lock()
	defer session.mu.Unlock()

	if session.closed {
		return fmt.Errorf("session is closed: %s", sessionID)
	}

	session.Cols = cols
	session.Rows = rows

	return pty.Setsize(session.ptmx, &pty.Winsize{
		Rows: uint16(rows),
		Cols: uint16(cols),
	})
}

// Kill terminates a session and forgets it
func (m *Manager) Kill(sessionID string) error {
	session, err := m.get(sessionID)
	if err != nil {
		return err
	}

	session.mu.Lock()
	defer session.mu.Unlock()

	if !session.closed {
		session.closed = true
		if session.cmd.Process != nil {
			session.cmd.Process.Kill()
		}
		session.ptmx.Close()
	}

	m.sessions.Delete(sessionID)
	return nil
}

// KillByCard terminates all sessions bound to a card
func (m *Manager) KillByCard(cardID string) int {
	killed := 0
	m.sessions.Range(func(key, value interface{}) bool {
		session := value.(*Session)
		if session.CardID == cardID {
			m.Kill(session.ID)
			killed++
		}
		return true
	})
	return killed
}

// ListSessions returns info for all known sessions
func (m *Manager) ListSessions() []SessionInfo {
	var sessions []SessionInfo
	m.sessions.Range(func(_, value interface{}) bool {
		session := value.(*Session)

		session.mu.RLock()
		active := !session.closed
		session.mu.RUnlock()

		sessions = append(sessions, *session.info(active))
		return true
	})
	return sessions
}

// GetSession retrieves session info
func (m *Manager) GetSession(sessionID string) (*SessionInfo, error) {
	session, err := m.get(sessionID)
	if err != nil {
		return nil, err
	}

	session.mu.RLock()
	active := !session.closed
	session.mu.RUnlock()

	return session.info(active), nil
}

func (m *Manager) get(sessionID string) (*Session, error) {
	value, ok := m.sessions.Load(sessionID)
	if !ok {
		return nil, fmt.Errorf("session not found: %s", sessionID)
	}
	return value.(*Session), nil
}

func (s *Session) info(active bool) *SessionInfo {
	return &SessionInfo{
		ID:         s.ID,
		CardID:     s.CardID,
		Shell:      s.Shell,
		WorkingDir: s.WorkingDir,
		Cols:       s.Cols,
		Rows:       s.Rows,
		StartedAt:  s.StartedAt,
		Active:     active,
	}
}

// ring is a thread-safe circular buffer for terminal output
type ring struct {
	data []byte
	size int
	head int
	tail int
	mu   sync.Mutex
}

func newRing(size int) *ring {
	return &ring{
		data: make([]byte, size),
		size: size,
	}
}

// Write appends data, dropping the oldest bytes when full
func (r *ring) Write(p []byte) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, c := range p {
		r.data[r.tail] = c
		r.tail = (r.tail + 1) % r.size
		if r.tail == r.head {
			r.head = (r.head + 1) % r.size
		}
	}

	return len(p), nil
}

// Drain returns all buffered data and resets the buffer
func (r *ring) Drain() []byte {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.head == r.tail {
		return []byte{}
	}

	var result []byte
	if r.tail > r.head {
		result = make([]byte, r.tail-r.head)
		copy(result, r.data[r.head:r.tail])
	} else {
		first := r.data[r.head:]
		second := r.data[:r.tail]
		result = make([]byte, len(first)+len(second))
		copy(result, first)
		copy(result[len(first):], second)
	}

	r.head = r.tail
	return result
}
