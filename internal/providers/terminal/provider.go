package terminal

import (
	"encoding/base64"
	"fmt"

	"github.com/HobbyCoders/deck/internal/shared/types"
)

// Provider implements terminal emulator operations
type Provider struct {
	manager *Manager
}

// NewProvider creates a terminal provider defaulting shells to workspaceDir
func NewProvider(workspaceDir string) *Provider {
	return &Provider{
		manager: NewManager(workspaceDir),
	}
}

// Manager exposes the session manager for lifecycle hooks
func (p *Provider) Manager() *Manager {
	return p.manager
}

// Definition returns service metadata
func (p *Provider) Definition() types.Service {
	return types.Service{
		ID:          "terminal",
		Name:        "Terminal Service",
		Description: "Interactive PTY-backed shell sessions for terminal cards",
		Category:    types.CategoryTerminal,
		Capabilities: []string{
			"pty",
			"shell",
			"interactive",
			"ansi",
			"sessions",
			"resize",
		},
		Tools: p.getTools(),
	}
}

// Execute routes to the appropriate operation
func (p *Provider) Execute(toolID string, params map[string]interface{}, cardCtx *types.Context) (*types.Result, error) {
	switch toolID {
	case "terminal.create_session":
		return p.createSession(params, cardCtx)
	case "terminal.write":
		return p.write(params)
	case "terminal.read":
		return p.read(params)
	case "terminal.resize":
		return p.resize(params)
	case "terminal.list_sessions":
		return p.listSessions()
	case "terminal.get_session":
		return p.getSession(params)
	case "terminal.kill":
		return p.kill(params)
	default:
		return nil, fmt.Errorf("unknown tool: %s", toolID)
	}
}

func (p *Provider) getTools() []types.Tool {
	return []types.Tool{
		{
			ID:          "terminal.create_session",
			Name:        "Create Terminal Session",
			Description: "Create a new interactive terminal session with PTY",
			Parameters: []types.Parameter{
				{Name: "shell", Type: "string", Description: "Shell to use (defaults to $SHELL)", Required: false},
				{Name: "working_dir", Type: "string", Description: "Initial working directory (defaults to workspace)", Required: false},
				{Name: "cols", Type: "number", Description: "Terminal width in columns (default 80)", Required: false},
				{Name: "rows", Type: "number", Description: "Terminal height in rows (default 24)", Required: false},
				{Name: "env", Type: "object", Description: "Environment variables to set", Required: false},
			},
			Returns: "session_info",
		},
		{
			ID:          "terminal.write",
			Name:        "Write to Terminal",
			Description: "Send input to a terminal session",
			Parameters: []types.Parameter{
				{Name: "session_id", Type: "string", Description: "Terminal session ID", Required: true},
				{Name: "input", Type: "string", Description: "Input to send", Required: true},
			},
			Returns: "success",
		},
		{
			ID:          "terminal.read",
			Name:        "Read from Terminal",
			Description: "Drain buffered output from a terminal session",
			Parameters: []types.Parameter{
				{Name: "session_id", Type: "string", Description: "Terminal session ID", Required: true},
			},
			Returns: "output_data",
		},
		{
			ID:          "terminal.resize",
			Name:        "Resize Terminal",
			Description: "Change terminal dimensions",
			Parameters: []types.Parameter{
				{Name: "session_id", Type: "string", Description: "Terminal session ID", Required: true},
				{Name: "cols", Type: "number", Description: "New width in columns", Required: true},
				{Name: "rows", Type: "number", Description: "New height in rows", Required: true},
			},
			Returns: "success",
		},
		{
			ID:          "terminal.list_sessions",
			Name:        "List Terminal Sessions",
			Description: "List all active terminal sessions",
			Parameters:  []types.Parameter{},
			Returns:     "sessions_list",
		},
		{
			ID:          "terminal.get_session",
			Name:        "Get Session Info",
			Description: "Get information about a terminal session",
			Parameters: []types.Parameter{
				{Name: "session_id", Type: "string", Description: "Terminal session ID", Required: true},
			},
			Returns: "session_info",
		},
		{
			ID:          "terminal.kill",
			Name:        "Kill Terminal Session",
			Description: "Terminate a terminal session",
			Parameters: []types.Parameter{
				{Name: "session_id", Type: "string", Description: "Terminal session ID", Required: true},
			},
			Returns: "success",
		},
	}
}

func (p *Provider) createSession(params map[string]interface{}, cardCtx *types.Context) (*types.Result, error) {
	opts := Options{}
	opts.Shell, _ = params["shell"].(string)
	opts.WorkingDir, _ = params["working_dir"].(string)

	if c, ok := params["cols"].(float64); ok {
		opts.Cols = int(c)
	}
	if r, ok := params["rows"].(float64); ok {
		opts.Rows = int(r)
	}

	if envMap, ok := params["env"].(map[string]interface{}); ok {
		opts.Env = make(map[string]string)
		for k, v := range envMap {
			if str, ok := v.(string); ok {
				opts.Env[k] = str
			}
		}
	}

	if cardCtx != nil && cardCtx.CardID != nil {
		opts.CardID = *cardCtx.CardID
	}

	session, err := p.manager.CreateSession(opts)
	if err != nil {
		return nil, err
	}

	return &types.Result{
		Success: true,
		Data:    sessionData(session),
	}, nil
}

func (p *Provider) write(params map[string]interface{}) (*types.Result, error) {
	sessionID, ok := params["session_id"].(string)
	if !ok {
		return nil, fmt.Errorf("session_id is required")
	}
	input, ok := params["input"].(string)
	if !ok {
		return nil, fmt.Errorf("input is required")
	}

	if err := p.manager.Write(sessionID, []byte(input)); err != nil {
		return nil, err
	}

	return &types.Result{
		Success: true,
		Data:    map[string]interface{}{"success": true},
	}, nil
}

func (p *Provider) read(params map[string]interface{}) (*types.Result, error) {
	sessionID, ok := params["session_id"].(string)
	if !ok {
		return nil, fmt.Errorf("session_id is required")
	}

	output, err := p.manager.Read(sessionID)
	if err != nil {
		return nil, err
	}

	// Base64 alongside raw text so binary-heavy output survives transport
	return &types.Result{
		Success: true,
		Data: map[string]interface{}{
			"output":        string(output),
			"output_base64": base64.StdEncoding.EncodeToString(output),
			"length":        len(output),
		},
	}, nil
}

func (p *Provider) resize(params map[string]interface{}) (*types.Result, error) {
	sessionID, ok := params["session_id"].(string)
	if !ok {
		return nil, fmt.Errorf("session_id is required")
	}
	cols, ok := params["cols"].(float64)
	if !ok {
		return nil, fmt.Errorf("cols is required")
	}
	rows, ok := params["rows"].(float64)
	if !ok {
		return nil, fmt.Errorf("rows is required")
	}

	if err := p.manager.Resize(sessionID, int(cols), int(rows)); err != nil {
		return nil, err
	}

	return &types.Result{
		Success: true,
		Data:    map[string]interface{}{"success": true},
	}, nil
}

func (p *Provider) listSessions() (*types.Result, error) {
	sessions := p.manager.ListSessions()
	return &types.Result{
		Success: true,
		Data: map[string]interface{}{
			"sessions": sessions,
			"count":    len(sessions),
		},
	}, nil
}

func (p *Provider) getSession(params map[string]interface{}) (*types.Result, error) {
	sessionID, ok := params["session_id"].(string)
	if !ok {
		return nil, fmt.Errorf("session_id is required")
	}

	session, err := p.manager.GetSession(sessionID)
	if err != nil {
		return nil, err
	}

	return &types.Result{
		Success: true,
		Data:    sessionData(session),
	}, nil
}

func (p *Provider) kill(params map[string]interface{}) (*types.Result, error) {
	sessionID, ok := params["session_id"].(string)
	if !ok {
		return nil, fmt.Errorf("session_id is required")
	}

	if err := p.manager.Kill(sessionID); err != nil {
		return nil, err
	}

	return &types.Result{
		Success: true,
		Data:    map[string]interface{}{"success": true},
	}, nil
}

func sessionData(session *SessionInfo) map[string]interface{} {
	data := map[string]interface{}{
		"id":          session.ID,
		"shell":       session.Shell,
		"working_dir": session.WorkingDir,
		"cols":        session.Cols,
		"rows":        session.Rows,
		"started_at":  session.StartedAt,
		"active":      session.Active,
	}
	if session.CardID != "" {
		data["card_id"] = session.CardID
	}
	return data
}
