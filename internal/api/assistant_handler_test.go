package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appErrors "terra/internal/errors"
)

type mockAssistantService struct {
	askFn func(ctx context.Context, prompt string) (string, error)
}

func (m *mockAssistantService) Ask(ctx context.Context, prompt string) (string, error) {
	return m.askFn(ctx, prompt)
}

func postAssistant(h *AssistantHandler, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/assistant", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.Ask(rec, req)
	return rec
}

func TestAssistantReturnsReply(t *testing.T) {
	h := NewAssistantHandler(&mockAssistantService{
		askFn: func(_ context.Context, prompt string) (string, error) {
			assert.Equal(t, "おすすめの場所は？", prompt)
			return "開山公園はいかがでしょう。", nil
		},
	})
	rec := postAssistant(h, `{"prompt":"おすすめの場所は？"}`)
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp AssistantResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "開山公園はいかがでしょう。", resp.Reply)
}

func TestAssistantEmptyPromptRejected(t *testing.T) {
	h := NewAssistantHandler(&mockAssistantService{
		askFn: func(_ context.Context, prompt string) (string, error) {
			return "", appErrors.NewValidationError("質問を入力してください。")
		},
	})
	rec := postAssistant(h, `{"prompt":""}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAssistantUpstreamFailureIsGeneric(t *testing.T) {
	h := NewAssistantHandler(&mockAssistantService{
		askFn: func(context.Context, string) (string, error) {
			return "", errors.New("gemini: status 503")
		},
	})
	rec := postAssistant(h, `{"prompt":"hi"}`)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "通信エラーが発生しました。", resp.Message)
	assert.NotContains(t, resp.Message, "503")
}
