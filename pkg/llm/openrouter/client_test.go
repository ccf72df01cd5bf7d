package openrouter

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/artem13815/skillsync/pkg/llm"
)

func TestGenerateJSONMode(t *testing.T) {
	var got chatCompletionsRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer key", r.Header.Get("Authorization"))
		assert.Equal(t, "SkillSync", r.Header.Get("X-Title"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":" {\"a\":1} "}}]}`))
	}))
	defer srv.Close()

	c := New("key", srv.URL+"/", "some/model", "SkillSync", "")
	out, err := c.Generate(context.Background(), llm.Request{System: "sys", Prompt: "user", Mode: llm.ModeJSON})
	require.NoError(t, err)
	assert.Equal(t, `{"a":1}`, out)

	assert.Equal(t, "some/model", got.Model)
	require.Len(t, got.Messages, 2)
	assert.Equal(t, "system", got.Messages[0].Role)
	assert.Equal(t, "user", got.Messages[1].Content)
	require.NotNil(t, got.ResponseFormat)
	assert.Equal(t, "json_object", got.ResponseFormat.Type)
}

func TestGenerateTextModeOmitsSystemAndFormat(t *testing.T) {
	var got chatCompletionsRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(`{"choices":[{"message":{"content":"plain"}}]}`))
	}))
	defer srv.Close()

	out, err := New("key", srv.URL, "", "", "").Generate(context.Background(), llm.Request{Prompt: "p"})
	require.NoError(t, err)
	assert.Equal(t, "plain", out)
	require.Len(t, got.Messages, 1)
	assert.Nil(t, got.ResponseFormat)
}

func TestGenerateFailures(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error":"rate limited"}`))
	}))
	defer srv.Close()

	_, err := New("key", srv.URL, "", "", "").Generate(context.Background(), llm.Request{Prompt: "p"})
	require.ErrorIs(t, err, llm.ErrGenerationFailed)
	assert.Contains(t, err.Error(), "429")

	_, err = New("", srv.URL, "", "", "").Generate(context.Background(), llm.Request{Prompt: "p"})
	require.ErrorIs(t, err, llm.ErrGenerationFailed)
}
