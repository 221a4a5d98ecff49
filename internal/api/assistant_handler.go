package api

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"

	appErrors "terra/internal/errors"
	"terra/internal/monitoring"
)

type AssistantService interface {
	Ask(ctx context.Context, prompt string) (string, error)
}

type AssistantHandler struct {
	Service AssistantService
}

func NewAssistantHandler(svc AssistantService) *AssistantHandler {
	return &AssistantHandler{Service: svc}
}

func (h *AssistantHandler) Ask(w http.ResponseWriter, r *http.Request) {
	var req AssistantRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "質問を入力してください。")
		return
	}

	reply, err := h.Service.Ask(r.Context(), req.Prompt)
	if err != nil {
		var httpErr *appErrors.HTTPError
		if errors.As(err, &httpErr) {
			monitoring.AssistantRequest("rejected")
			writeError(w, httpErr.Code, httpErr.Message)
			return
		}
		log.Printf("Assistant: %v", err)
		monitoring.AssistantRequest("failure")
		writeError(w, http.StatusInternalServerError, "通信エラーが発生しました。")
		return
	}

	monitoring.AssistantRequest("success")
	writeJSON(w, http.StatusOK, AssistantResponse{Reply: reply})
}
