package generator

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vampirenirmal/novelagent/internal/novel"
)

func TestNewClientRequiresAPIKey(t *testing.T) {
	_, err := NewClient("")
	assert.ErrorIs(t, err, ErrNoAPIKey)
}

func TestOpenAIRequest(t *testing.T) {
	var gotAuth string
	var gotBody map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]string{"content": "generated outline"}},
			},
		})
	}))
	defer server.Close()

	// URL needs "openai" so the dialect inference picks the right wire shape.
	c, err := NewClient("sk-test-key", WithAPIConfig(server.URL+"/openai", "gpt-4"))
	require.NoError(t, err)

	out, err := c.GenerateOutline(context.Background(), novel.Project{Title: "Test"}, novel.WritingSettings{Model: "gpt-4", MaxTokens: 100})
	require.NoError(t, err)

	assert.Equal(t, "generated outline", out)
	assert.Equal(t, "Bearer sk-test-key", gotAuth)
	assert.Equal(t, "gpt-4", gotBody["model"])
}

func TestAnthropicRequest(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "sk-ant-test-key", r.Header.Get("x-api-key"))
		assert.Equal(t, "2023-06-01", r.Header.Get("anthropic-version"))
		json.NewEncoder(w).Encode(map[string]any{
			"content": []map[string]string{{"text": "claude says hello"}},
		})
	}))
	defer server.Close()

	c, err := NewClient("sk-ant-test-key", WithAPIConfig(server.URL, "claude-3-5-sonnet-20241022"))
	require.NoError(t, err)

	out, err := c.Translate(context.Background(), "hello", "fr", "en")
	require.NoError(t, err)
	assert.Equal(t, "claude says hello", out)
}

func TestEmptyContentIsAnError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]string{"content": "   "}},
			},
		})
	}))
	defer server.Close()

	c, err := NewClient("sk-test-key", WithAPIConfig(server.URL+"/openai", "gpt-4"), WithRetry(0))
	require.NoError(t, err)

	_, err = c.GenerateOutline(context.Background(), novel.Project{}, novel.WritingSettings{})
	assert.ErrorIs(t, err, ErrEmptyContent)
}

func TestRetriesThenSucceeds(t *testing.T) {
	attempts := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts == 1 {
			http.Error(w, "overloaded", http.StatusServiceUnavailable)
			return
		}
		json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]string{"content": "second time lucky"}},
			},
		})
	}))
	defer server.Close()

	c, err := NewClient("sk-test-key", WithAPIConfig(server.URL+"/openai", "gpt-4"), WithRetry(2), WithRateLimit(600, 10))
	require.NoError(t, err)

	out, err := c.GenerateOutline(context.Background(), novel.Project{}, novel.WritingSettings{})
	require.NoError(t, err)
	assert.Equal(t, "second time lucky", out)
	assert.Equal(t, 2, attempts)
}

func TestDevelopCharacterParsesJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		payload := map[string]string{
			"name":        "Mara",
			"personality": "stubborn",
			"background":  "borderlands",
			"goals":       "map the coast",
			"conflicts":   "family duty",
		}
		raw, _ := json.Marshal(payload)
		json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]string{"content": string(raw)}},
			},
		})
	}))
	defer server.Close()

	c, err := NewClient("sk-test-key", WithAPIConfig(server.URL+"/openai", "gpt-4"))
	require.NoError(t, err)

	got, err := c.DevelopCharacter(context.Background(), novel.Character{ID: "ch1", Name: "Placeholder"}, novel.Project{}, novel.WritingSettings{})
	require.NoError(t, err)

	assert.Equal(t, "ch1", got.ID)
	assert.Equal(t, "Mara", got.Name)
	assert.Equal(t, "stubborn", got.Personality)
}

func TestStripFences(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", `{"a":1}`, `{"a":1}`},
		{"json fence", "```json\n{\"a\":1}\n```", `{"a":1}`},
		{"bare fence", "```\n{\"a\":1}\n```", `{"a":1}`},
		{"surrounding whitespace", "  {\"a\":1}\n", `{"a":1}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, stripFences(tt.in))
		})
	}
}
