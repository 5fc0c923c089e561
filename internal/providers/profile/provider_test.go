package profile

import (
	"testing"
)

func TestRegisterLoginVerify(t *testing.T) {
	p := NewProvider(t.TempDir())

	result, err := p.Execute("profile.register", map[string]interface{}{
		"username": "alice",
		"password": "secret123",
		"email":    "alice@example.com",
	}, nil)
	if err != nil || !result.Success {
		t.Fatalf("Register failed: %v", err)
	}
	if result.Data["user_id"].(string) == "" {
		t.Error("Expected user_id in response")
	}

	result, err = p.Execute("profile.login", map[string]interface{}{
		"username": "alice",
		"password": "secret123",
	}, nil)
	if err != nil || !result.Success {
		t.Fatalf("Login failed: %v", err)
	}

	token := result.Data["token"].(string)
	if token == "" {
		t.Fatal("Expected token in login response")
	}

	result, _ = p.Execute("profile.verify", map[string]interface{}{"token": token}, nil)
	if !result.Data["valid"].(bool) {
		t.Error("Expected token to be valid")
	}
}

func TestInvalidCredentials(t *testing.T) {
	p := NewProvider(t.TempDir())

	p.Execute("profile.register", map[string]interface{}{
		"username": "bob",
		"password": "password",
	}, nil)

	result, _ := p.Execute("profile.login", map[string]interface{}{
		"username": "bob",
		"password": "wrong",
	}, nil)
	if result.Success {
		t.Error("Wrong password should fail")
	}

	result, _ = p.Execute("profile.login", map[string]interface{}{
		"username": "nobody",
		"password": "password",
	}, nil)
	if result.Success {
		t.Error("Unknown user should fail")
	}
}

func TestDuplicateUsername(t *testing.T) {
	p := NewProvider(t.TempDir())

	p.Execute("profile.register", map[string]interface{}{
		"username": "charlie",
		"password": "password1",
	}, nil)

	result, _ := p.Execute("profile.register", map[string]interface{}{
		"username": "charlie",
		"password": "password2",
	}, nil)
	if result.Success {
		t.Error("Duplicate username should fail")
	}
}

func TestLogoutInvalidatesToken(t *testing.T) {
	p := NewProvider(t.TempDir())

	p.Execute("profile.register", map[string]interface{}{
		"username": "dave",
		"password": "password",
	}, nil)
	loginResult, _ := p.Execute("profile.login", map[string]interface{}{
		"username": "dave",
		"password": "password",
	}, nil)
	token := loginResult.Data["token"].(string)

	result, _ := p.Execute("profile.logout", map[string]interface{}{"token": token}, nil)
	if !result.Success {
		t.Fatal("Logout failed")
	}

	result, _ = p.Execute("profile.verify", map[string]interface{}{"token": token}, nil)
	if result.Data["valid"].(bool) {
		t.Error("Token should be invalid after logout")
	}
}

func TestProfileUpdate(t *testing.T) {
	p := NewProvider(t.TempDir())

	p.Execute("profile.register", map[string]interface{}{
		"username": "eve",
		"password": "password",
	}, nil)
	loginResult, _ := p.Execute("profile.login", map[string]interface{}{
		"username": "eve",
		"password": "password",
	}, nil)
	token := loginResult.Data["token"].(string)

	result, _ := p.Execute("profile.update", map[string]interface{}{
		"token":        token,
		"display_name": "Eve Online",
		"email":        "eve@example.com",
	}, nil)
	if !result.Success {
		t.Fatalf("Update failed: %v", *result.Error)
	}

	result, _ = p.Execute("profile.get", map[string]interface{}{"token": token}, nil)
	if result.Data["display_name"] != "Eve Online" {
		t.Errorf("Display name not updated: %v", result.Data["display_name"])
	}
	if result.Data["email"] != "eve@example.com" {
		t.Errorf("Email not updated: %v", result.Data["email"])
	}
}

func TestAccountsSurviveRestart(t *testing.T) {
	dir := t.TempDir()

	first := NewProvider(dir)
	first.Execute("profile.register", map[string]interface{}{
		"username": "frank",
		"password": "password",
	}, nil)

	// New provider on the same dir can log the user in
	second := NewProvider(dir)
	result, _ := second.Execute("profile.login", map[string]interface{}{
		"username": "frank",
		"password": "password",
	}, nil)
	if !result.Success {
		t.Error("Accounts should persist across restart")
	}
}
