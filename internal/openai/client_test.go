package openai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestExtractJSONArray(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		want string
	}{
		{"чистый массив", `[{"a": 1}]`, `[{"a": 1}]`},
		{"markdown-ограждение", "```json\n[{\"a\": 1}]\n```", `[{"a": 1}]`},
		{"текст вокруг массива", `Here are the suggestions: [{"a": 1}] Hope this helps!`, `[{"a": 1}]`},
		{"пустой массив", "[]", "[]"},
		{"нет массива", "извините, не могу помочь", "извините, не могу помочь"},
		{"ограждение без массива", "```json\n{}\n```", "{}"},
		{"пустая строка", "", ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ExtractJSONArray(tc.raw))
		})
	}
}

func completionBody(content string) []byte {
	body, _ := json.Marshal(map[string]any{
		"choices": []map[string]any{
			{"message": map[string]any{"content": content}},
		},
	})
	return body
}

func TestGenerateCompletion(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var req chatRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Len(t, req.Messages, 2)
		assert.Equal(t, "system", req.Messages[0].Role)
		assert.Equal(t, "user", req.Messages[1].Role)

		w.Write(completionBody("  [\"ok\"]  "))
	}))
	defer server.Close()

	client := NewClient(Config{APIKey: "test-key", APIURL: server.URL}, zap.NewNop())

	content, err := client.GenerateCompletion(context.Background(), "system msg", "user msg")
	require.NoError(t, err)
	assert.Equal(t, `["ok"]`, content)
}

func TestGenerateCompletion_RetriesTransientErrors(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Write(completionBody("[]"))
	}))
	defer server.Close()

	client := NewClient(Config{APIKey: "test-key", APIURL: server.URL}, zap.NewNop())

	content, err := client.GenerateCompletion(context.Background(), "system", "user")
	require.NoError(t, err)
	assert.Equal(t, "[]", content)
	assert.Equal(t, int32(2), calls.Load())
}

func TestGenerateCompletion_DoesNotRetryClientErrors(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	client := NewClient(Config{APIKey: "bad-key", APIURL: server.URL}, zap.NewNop())

	_, err := client.GenerateCompletion(context.Background(), "system", "user")
	require.Error(t, err)
	assert.Equal(t, int32(1), calls.Load())
}

func TestGenerateCompletion_NoChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"choices": []}`))
	}))
	defer server.Close()

	client := NewClient(Config{APIKey: "test-key", APIURL: server.URL}, zap.NewNop())

	_, err := client.GenerateCompletion(context.Background(), "system", "user")
	require.Error(t, err)
}
