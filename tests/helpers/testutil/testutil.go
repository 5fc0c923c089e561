// Package testutil provides testing utilities and helpers for backend tests.
package testutil

import (
	"testing"
	"time"

	"github.com/HobbyCoders/deck/internal/shared/types"
	"github.com/stretchr/testify/mock"
)

// MockServiceProvider is a mock implementation of service.Provider for testing.
type MockServiceProvider struct {
	mock.Mock
}

// Definition mocks the Definition method.
func (m *MockServiceProvider) Definition() types.Service {
	args := m.Called()
	return args.Get(0).(types.Service)
}

// Execute mocks the Execute method.
func (m *MockServiceProvider) Execute(toolID string, params map[string]interface{}, cardCtx *types.Context) (*types.Result, error) {
	args := m.Called(toolID, params, cardCtx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.Result), args.Error(1)
}

// NewMockServiceProvider creates a new mock service provider with default behaviors.
func NewMockServiceProvider(t *testing.T, serviceID string) *MockServiceProvider {
	t.Helper()
	m := new(MockServiceProvider)

	// Default behavior: return a simple service definition
	m.On("Definition").Return(types.Service{
		ID:          serviceID,
		Name:        "Mock Service",
		Description: "Mock service for testing",
		Category:    types.CategorySystem,
		Tools:       []types.Tool{},
	}).Maybe()

	return m
}

// CreateTestCard creates a card value with default geometry.
func CreateTestCard(t *testing.T, overrides map[string]interface{}) *types.Card {
	t.Helper()

	c := &types.Card{
		ID:        "test-card-id",
		Hash:      "test-hash",
		Type:      types.CardChat,
		Title:     "Test Card",
		Position:  types.CardPosition{X: 100, Y: 100},
		Size:      types.CardSize{Width: 560, Height: 400},
		Z:         1,
		SnapZone:  types.SnapNone,
		CreatedAt: time.Now(),
		Payload:   map[string]interface{}{},
		Services:  []string{},
	}

	if title, ok := overrides["title"].(string); ok {
		c.Title = title
	}
	if cardType, ok := overrides["type"].(types.CardType); ok {
		c.Type = cardType
	}
	if pos, ok := overrides["position"].(types.CardPosition); ok {
		c.Position = pos
	}
	if size, ok := overrides["size"].(types.CardSize); ok {
		c.Size = size
	}

	return c
}

// CreateTestService creates a test service definition.
func CreateTestService(t *testing.T, id string, category types.Category) types.Service {
	t.Helper()

	return types.Service{
		ID:           id,
		Name:         "Test Service",
		Description:  "A test service for unit testing",
		Category:     category,
		Capabilities: []string{"test"},
		Tools: []types.Tool{
			{
				ID:          id + ".test",
				Name:        "test",
				Description: "Test tool",
				Parameters:  []types.Parameter{},
				Returns:     "object",
			},
		},
	}
}

// CreateTestTemplate creates a test template for the card registry.
func CreateTestTemplate(t *testing.T, id string) *types.Template {
	t.Helper()

	return &types.Template{
		ID:          id,
		Name:        "Test Template",
		Description: "A test template",
		Icon:        "🃏",
		Category:    "general",
		Version:     "1.0.0",
		Author:      "test",
		Type:        types.CardCanvas,
		Services:    []string{},
		Tags:        []string{"test"},
		Payload:     map[string]interface{}{"seed": true},
	}
}

// AssertSuccess is a helper to assert a successful result.
func AssertSuccess(t *testing.T, result *types.Result) {
	t.Helper()
	if result == nil {
		t.Fatal("Result is nil")
	}
	if !result.Success {
		t.Fatalf("Expected success, got error: %v", result.Error)
	}
}

// AssertError is a helper to assert an error result.
func AssertError(t *testing.T, result *types.Result) {
	t.Helper()
	if result == nil {
		t.Fatal("Result is nil")
	}
	if result.Success {
		t.Fatal("Expected error, got success")
	}
	if result.Error == nil {
		t.Fatal("Expected error message, got nil")
	}
}

// AssertDataField is a helper to assert a data field exists and matches expected value.
func AssertDataField(t *testing.T, result *types.Result, field string, expected interface{}) {
	t.Helper()
	AssertSuccess(t, result)

	if result.Data == nil {
		t.Fatal("Result data is nil")
	}

	actual, ok := result.Data[field]
	if !ok {
		t.Fatalf("Field %s not found in result data", field)
	}

	if actual != expected {
		t.Fatalf("Field %s: expected %v, got %v", field, expected, actual)
	}
}
