package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestOllamaProvider runs the provider against an httptest stand-in for the
// Ollama API and checks both the request it builds and how it parses replies.
func TestOllamaProvider(t *testing.T) {
	var captured GenerateRequest
	var capturedPath string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		capturedPath = r.URL.Path
		if !assert.NoError(t, json.NewDecoder(r.Body).Decode(&captured)) {
			w.WriteHeader(http.StatusBadRequest)
			return
		}

		if captured.Messages[len(captured.Messages)-1].Content == "fail" {
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte("model not loaded"))
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, err := w.Write([]byte(`{"model":"llama3.2","message":{"role":"assistant","content":"Try restarting the router."},"done":true}`))
		assert.NoError(t, err)
	}))
	defer server.Close()

	// ARRANGE
	provider := NewOllamaProvider(server.URL+"/", "llama3.2")
	ctx := context.Background()

	t.Run("Generate", func(t *testing.T) {
		// ACT
		reply, err := provider.Generate(ctx, "My wifi is down")

		// ASSERT
		require.NoError(t, err)
		assert.Equal(t, "Try restarting the router.", reply)
		assert.Equal(t, "/api/chat", capturedPath)
		assert.Equal(t, "llama3.2", captured.Model)
		assert.False(t, captured.Stream)
		require.Len(t, captured.Messages, 2)
		assert.Equal(t, "system", captured.Messages[0].Role)
		assert.Equal(t, Message{Role: "user", Content: "My wifi is down"}, captured.Messages[1])
	})

	t.Run("Non-200 status", func(t *testing.T) {
		_, err := provider.Generate(ctx, "fail")
		require.Error(t, err)
		assert.ErrorContains(t, err, "non-200 status 500")
		assert.ErrorContains(t, err, "model not loaded")
	})
}

func TestOllamaProvider_Unconfigured(t *testing.T) {
	provider := NewOllamaProvider("", "llama3.2")

	assert.False(t, provider.Available())
	_, err := provider.Generate(context.Background(), "hi")
	assert.Error(t, err)
}

func TestRegistry(t *testing.T) {
	reg := NewRegistry(EchoProvider{}, NewOllamaProvider("", "llama3.2"))

	descriptors := reg.Describe()
	require.Len(t, descriptors, 2)
	assert.Equal(t, "echo", descriptors[0].Name)
	assert.True(t, descriptors[0].Available)
	assert.Equal(t, "ollama", descriptors[1].Name)
	assert.False(t, descriptors[1].Available)

	p, ok := reg.Get("echo")
	require.True(t, ok)
	reply, err := p.Generate(context.Background(), "  where is my parcel? ")
	require.NoError(t, err)
	assert.Contains(t, reply, `"where is my parcel?"`)

	_, ok = reg.Get("openai")
	assert.False(t, ok)
}
