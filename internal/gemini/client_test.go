package gemini

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nayansarkar10/CompititivePricingAI/internal/config"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewClient(&config.GeminiConfig{
		APIKey:         "test-key",
		Model:          "gemini-3-pro-preview",
		TimeoutSeconds: 5,
	}, zerolog.Nop())
	require.NoError(t, err)
	client.baseURL = server.URL

	return client, server
}

func candidateResponse(texts ...string) string {
	parts := make([]map[string]string, 0, len(texts))
	for _, text := range texts {
		parts = append(parts, map[string]string{"text": text})
	}
	body, _ := json.Marshal(map[string]interface{}{
		"candidates": []map[string]interface{}{
			{"content": map[string]interface{}{"role": "model", "parts": parts}},
		},
	})
	return string(body)
}

func TestNewClient_MissingKey(t *testing.T) {
	_, err := NewClient(&config.GeminiConfig{}, zerolog.Nop())
	assert.ErrorIs(t, err, ErrNotInitialized)

	_, err = NewClient(nil, zerolog.Nop())
	assert.ErrorIs(t, err, ErrNotInitialized)
}

func TestGenerateContent_RequestShape(t *testing.T) {
	var captured generateRequest
	var capturedPath, capturedKey string

	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		capturedPath = r.URL.Path
		capturedKey = r.Header.Get("x-goog-api-key")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		w.Write([]byte(candidateResponse("hello ", "world")))
	})

	text, err := client.GenerateContent(context.Background(), Request{
		SystemInstruction: "you are a pricing analyst",
		Contents:          UserContent("find laptops"),
		EnableSearch:      true,
		ResponseMIMEType:  "application/json",
	})

	require.NoError(t, err)
	assert.Equal(t, "hello world", text)
	assert.Equal(t, "/models/gemini-3-pro-preview:generateContent", capturedPath)
	assert.Equal(t, "test-key", capturedKey)

	require.Len(t, captured.Contents, 1)
	assert.Equal(t, "user", captured.Contents[0].Role)
	assert.Equal(t, "find laptops", captured.Contents[0].Parts[0].Text)
	require.NotNil(t, captured.SystemInstruction)
	assert.Equal(t, "you are a pricing analyst", captured.SystemInstruction.Parts[0].Text)
	require.Len(t, captured.Tools, 1)
	assert.NotNil(t, captured.Tools[0].GoogleSearch)
	require.NotNil(t, captured.GenerationConfig)
	assert.Equal(t, "application/json", captured.GenerationConfig.ResponseMIMEType)
}

func TestGenerateContent_OmitsOptionalFields(t *testing.T) {
	var rawBody map[string]json.RawMessage

	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&rawBody))
		w.Write([]byte(candidateResponse("ok")))
	})

	_, err := client.GenerateContent(context.Background(), Request{Contents: UserContent("hi")})
	require.NoError(t, err)

	assert.NotContains(t, rawBody, "tools")
	assert.NotContains(t, rawBody, "systemInstruction")
	assert.NotContains(t, rawBody, "generationConfig")
}

func TestGenerateContent_APIError(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"error":{"message":"quota exceeded"}}`))
	})

	_, err := client.GenerateContent(context.Background(), Request{Contents: UserContent("hi")})

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusTooManyRequests, apiErr.StatusCode)
	assert.Contains(t, err.Error(), "429")
	assert.Contains(t, err.Error(), "quota exceeded")
}

func TestGenerateContent_EmptyCandidates(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"candidates":[]}`))
	})

	text, err := client.GenerateContent(context.Background(), Request{Contents: UserContent("hi")})

	// An empty or blocked reply is not an error; extraction handles it.
	require.NoError(t, err)
	assert.Equal(t, "", text)
}

func TestChatSession_AccumulatesHistory(t *testing.T) {
	var bodies []generateRequest

	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		var body generateRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		bodies = append(bodies, body)
		w.Write([]byte(candidateResponse("reply ", "text")))
	})

	session := client.StartChat(Request{SystemInstruction: "analyst", EnableSearch: true})
	assert.NotEmpty(t, session.ID)

	_, err := session.Send(context.Background(), "first")
	require.NoError(t, err)
	_, err = session.Send(context.Background(), "second")
	require.NoError(t, err)

	require.Len(t, bodies, 2)
	assert.Len(t, bodies[0].Contents, 1)

	// Second request carries user, model, user turns.
	require.Len(t, bodies[1].Contents, 3)
	assert.Equal(t, "user", bodies[1].Contents[0].Role)
	assert.Equal(t, "model", bodies[1].Contents[1].Role)
	assert.Equal(t, "reply text", bodies[1].Contents[1].Parts[0].Text)
	assert.Equal(t, "second", bodies[1].Contents[2].Parts[0].Text)

	// Both requests keep the session's base settings.
	for _, body := range bodies {
		require.Len(t, body.Tools, 1)
		require.NotNil(t, body.SystemInstruction)
	}

	assert.Len(t, session.History(), 4)
	assert.Len(t, session.Messages, 4)
}

func TestChatSession_FailedSendKeepsHistoryClean(t *testing.T) {
	fail := true
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if fail {
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte("boom"))
			return
		}
		w.Write([]byte(candidateResponse("ok")))
	})

	session := client.StartChat(Request{})

	_, err := session.Send(context.Background(), "first")
	require.Error(t, err)
	assert.Empty(t, session.History(), "a failed turn must not pollute the history")

	fail = false
	_, err = session.Send(context.Background(), "first again")
	require.NoError(t, err)
	assert.Len(t, session.History(), 2)
}

func TestStartChat_ReplacesSession(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(candidateResponse("ok")))
	})

	first := client.StartChat(Request{})
	_, err := first.Send(context.Background(), "hello")
	require.NoError(t, err)

	second := client.StartChat(Request{})
	assert.NotEqual(t, first.ID, second.ID)
	assert.Empty(t, second.History())
}
