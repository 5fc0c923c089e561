// Package profile provides user accounts and login sessions for profile cards.
//
// Accounts persist as JSON files under the data root and reload on startup.
// Login sessions are in-memory only, so a backend restart logs everyone out.
package profile

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/HobbyCoders/deck/internal/shared/types"
	"github.com/HobbyCoders/deck/internal/shared/utils"
	"github.com/bytedance/sonic"
	"golang.org/x/crypto/bcrypt"
)

// Session lifetime before a new login is required
const sessionTTL = 24 * time.Hour

// Provider implements account and login session management
type Provider struct {
	dir      string
	users    sync.Map // username and user ID -> *User
	sessions sync.Map // token -> *loginSession
}

// User represents a stored account
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"password_hash"`
	Email        string    `json:"email,omitempty"`
	DisplayName  string    `json:"display_name,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

type loginSession struct {
	UserID    string
	Token     string
	CreatedAt time.Time
	ExpiresAt time.Time
}

// NewProvider creates a profile provider persisting accounts under dir
func NewProvider(dir string) *Provider {
	p := &Provider{dir: dir}
	p.loadUsers()
	return p
}

// Definition returns service metadata
func (a *Provider) Definition() types.Service {
	return types.Service{
		ID:          "profile",
		Name:        "Profile Service",
		Description: "User accounts and login sessions",
		Category:    types.CategoryProfile,
		Capabilities: []string{
			"register",
			"login",
			"logout",
			"verify",
			"update",
		},
		Tools: []types.Tool{
			{
				ID:          "profile.register",
				Name:        "Register User",
				Description: "Create a new user account",
				Parameters: []types.Parameter{
					{Name: "username", Type: "string", Description: "Username", Required: true},
					{Name: "password", Type: "string", Description: "Password", Required: true},
					{Name: "email", Type: "string", Description: "Email address", Required: false},
					{Name: "display_name", Type: "string", Description: "Display name", Required: false},
				},
				Returns: "object",
			},
			{
				ID:          "profile.login",
				Name:        "Login",
				Description: "Authenticate and create a session",
				Parameters: []types.Parameter{
					{Name: "username", Type: "string", Description: "Username", Required: true},
					{Name: "password", Type: "string", Description: "Password", Required: true},
				},
				Returns: "object",
			},
			{
				ID:          "profile.logout",
				Name:        "Logout",
				Description: "End the current session",
				Parameters: []types.Parameter{
					{Name: "token", Type: "string", Description: "Session token", Required: true},
				},
				Returns: "boolean",
			},
			{
				ID:          "profile.verify",
				Name:        "Verify Token",
				Description: "Check if a session token is valid",
				Parameters: []types.Parameter{
					{Name: "token", Type: "string", Description: "Session token", Required: true},
				},
				Returns: "object",
			},
			{
				ID:          "profile.get",
				Name:        "Get Profile",
				Description: "Get the authenticated user's profile",
				Parameters: []types.Parameter{
					{Name: "token", Type: "string", Description: "Session token", Required: true},
				},
				Returns: "object",
			},
			{
				ID:          "profile.update",
				Name:        "Update Profile",
				Description: "Update display name or email",
				Parameters: []types.Parameter{
					{Name: "token", Type: "string", Description: "Session token", Required: true},
					{Name: "display_name", Type: "string", Description: "New display name", Required: false},
					{Name: "email", Type: "string", Description: "New email", Required: false},
				},
				Returns: "object",
			},
		},
	}
}

// Execute runs a profile operation
func (a *Provider) Execute(toolID string, params map[string]interface{}, cardCtx *types.Context) (*types.Result, error) {
	switch toolID {
	case "profile.register":
		return a.register(params)
	case "profile.login":
		return a.login(params)
	case "profile.logout":
		return a.logout(params)
	case "profile.verify":
		return a.verify(params)
	case "profile.get":
		return a.getProfile(params)
	case "profile.update":
		return a.update(params)
	default:
		return failure(fmt.Sprintf("unknown tool: %s", toolID))
	}
}

func (a *Provider) register(params map[string]interface{}) (*types.Result, error) {
	username, ok := params["username"].(string)
	if !ok || username == "" {
		return failure("username required")
	}
	password, ok := params["password"].(string)
	if !ok || password == "" {
		return failure("password required")
	}

	if err := utils.ValidateUsername(username); err != nil {
		return failure(err.Error())
	}
	if err := utils.ValidatePassword(password); err != nil {
		return failure(err.Error())
	}

	email, _ := params["email"].(string)
	if email != "" {
		if err := utils.ValidateEmail(email, false); err != nil {
			return failure(err.Error())
		}
	}

	if _, exists := a.users.Load(username); exists {
		return failure("username already exists")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return failure(fmt.Sprintf("password hashing failed: %v", err))
	}

	user := &User{
		ID:           generateID(),
		Username:     username,
		PasswordHash: string(hash),
		Email:        email,
		CreatedAt:    time.Now(),
	}
	if displayName, ok := params["display_name"].(string); ok {
		user.DisplayName = displayName
	}

	a.users.Store(username, user)
	a.users.Store(user.ID, user)

	if err := a.saveUser(user); err != nil {
		return failure(fmt.Sprintf("failed to persist user: %v", err))
	}

	return success(map[string]interface{}{
		"user_id":      user.ID,
		"username":     user.Username,
		"email":        user.Email,
		"display_name": user.DisplayName,
	})
}

func (a *Provider) login(params map[string]interface{}) (*types.Result, error) {
	username, ok := params["username"].(string)
	if !ok || username == "" {
		return failure("username required")
	}
	password, ok := params["password"].(string)
	if !ok || password == "" {
		return failure("password required")
	}

	// Validation failures return the same message as bad credentials
	if err := utils.ValidateUsername(username); err != nil {
		return failure("invalid credentials")
	}
	if err := utils.ValidatePassword(password); err != nil {
		return failure("invalid credentials")
	}

	userVal, exists := a.users.Load(username)
	if !exists {
		return failure("invalid credentials")
	}
	user := userVal.(*User)

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return failure("invalid credentials")
	}

	token := generateToken()
	session := &loginSession{
		UserID:    user.ID,
		Token:     token,
		CreatedAt: time.Now(),
		ExpiresAt: time.Now().Add(sessionTTL),
	}
	a.sessions.Store(token, session)

	return success(map[string]interface{}{
		"token":      token,
		"user_id":    user.ID,
		"username":   user.Username,
		"expires_at": session.ExpiresAt.Unix(),
	})
}

func (a *Provider) logout(params map[string]interface{}) (*types.Result, error) {
	token, ok := params["token"].(string)
	if !ok || token == "" {
		return failure("token required")
	}

	if err := utils.ValidateString(token, "token", 1, 128, true); err != nil {
		return failure("invalid token")
	}

	a.sessions.Delete(token)

	return success(map[string]interface{}{"logged_out": true})
}

func (a *Provider) verify(params map[string]interface{}) (*types.Result, error) {
	token, ok := params["token"].(string)
	if !ok || token == "" {
		return failure("token required")
	}

	session, ok := a.activeSession(token)
	if !ok {
		return success(map[string]interface{}{"valid": false})
	}

	return success(map[string]interface{}{
		"valid":      true,
		"user_id":    session.UserID,
		"expires_at": session.ExpiresAt.Unix(),
	})
}

func (a *Provider) getProfile(params map[string]interface{}) (*types.Result, error) {
	user, result := a.authenticate(params)
	if result != nil {
		return result, nil
	}

	return success(map[string]interface{}{
		"user_id":      user.ID,
		"username":     user.Username,
		"email":        user.Email,
		"display_name": user.DisplayName,
		"created_at":   user.CreatedAt.Unix(),
	})
}

func (a *Provider) update(params map[string]interface{}) (*types.Result, error) {
	user, result := a.authenticate(params)
	if result != nil {
		return result, nil
	}

	if displayName, ok := params["display_name"].(string); ok {
		user.DisplayName = displayName
	}
	if email, ok := params["email"].(string); ok && email != "" {
		if err := utils.ValidateEmail(email, false); err != nil {
			return failure(err.Error())
		}
		user.Email = email
	}

	if err := a.saveUser(user); err != nil {
		return failure(fmt.Sprintf("failed to persist user: %v", err))
	}

	return success(map[string]interface{}{
		"user_id":      user.ID,
		"username":     user.Username,
		"email":        user.Email,
		"display_name": user.DisplayName,
	})
}

// authenticate resolves the user behind a token, or a failure result
func (a *Provider) authenticate(params map[string]interface{}) (*User, *types.Result) {
	token, ok := params["token"].(string)
	if !ok || token == "" {
		result, _ := failure("token required")
		return nil, result
	}

	session, ok := a.activeSession(token)
	if !ok {
		result, _ := failure("invalid token")
		return nil, result
	}

	userVal, exists := a.users.Load(session.UserID)
	if !exists {
		result, _ := failure("user not found")
		return nil, result
	}

	return userVal.(*User), nil
}

// activeSession loads a session, evicting it when expired
func (a *Provider) activeSession(token string) (*loginSession, bool) {
	if err := utils.ValidateString(token, "token", 1, 128, true); err != nil {
		return nil, false
	}

	sessionVal, exists := a.sessions.Load(token)
	if !exists {
		return nil, false
	}

	session := sessionVal.(*loginSession)
	if time.Now().After(session.ExpiresAt) {
		a.sessions.Delete(token)
		return nil, false
	}

	return session, true
}

// saveUser persists one account to disk
func (a *Provider) saveUser(user *User) error {
	data, err := sonic.Marshal(user)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(a.dir, 0o755); err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(a.dir, user.ID+".json"), data, 0o644)
}

// loadUsers scans the accounts directory into memory
func (a *Provider) loadUsers() {
	entries, err := os.ReadDir(a.dir)
	if err != nil {
		return
	}

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}

		data, err := os.ReadFile(filepath.Join(a.dir, entry.Name()))
		if err != nil {
			continue
		}

		var user User
		if err := sonic.Unmarshal(data, &user); err != nil || user.Username == "" {
			continue
		}

		a.users.Store(user.Username, &user)
		a.users.Store(user.ID, &user)
	}
}

func generateID() string {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		panic(fmt.Sprintf("crypto/rand failed: %v", err))
	}
	return base64.URLEncoding.EncodeToString(b)
}

func generateToken() string {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		panic(fmt.Sprintf("crypto/rand failed: %v", err))
	}
	return base64.URLEncoding.EncodeToString(b)
}

func success(data map[string]interface{}) (*types.Result, error) {
	return &types.Result{Success: true, Data: data}, nil
}

func failure(message string) (*types.Result, error) {
	msg := message
	return &types.Result{Success: false, Error: &msg}, nil
}
