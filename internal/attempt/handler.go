package attempt

import (
	"net/http"

	"github.com/saulo-duarte/quizmaster/internal/apperror"
	"github.com/saulo-duarte/quizmaster/internal/auth"
	"github.com/saulo-duarte/quizmaster/internal/config"
)

type Handler struct {
	service AttemptService
}

func NewHandler(s AttemptService) *Handler {
	return &Handler{service: s}
}

func principalID(r *http.Request) (uint, error) {
	claims, err := auth.GetUserClaimsFromContext(r.Context())
	if err != nil {
		return 0, apperror.Unauthorized("Missing Authorization Header")
	}
	return claims.UserID, nil
}

func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	userID, err := principalID(r)
	if err != nil {
		config.WriteError(w, r, err)
		return
	}

	var req SubmitAttemptRequest
	if err := config.DecodeJSON(r, &req); err != nil {
		config.WriteError(w, r, err)
		return
	}

	resp, err := h.service.SubmitAttempt(r.Context(), userID, req)
	if err != nil {
		config.WriteError(w, r, err)
		return
	}
	config.JSON(w, http.StatusOK, resp)
}

func (h *Handler) ListScores(w http.ResponseWriter, r *http.Request) {
	userID, err := principalID(r)
	if err != nil {
		config.WriteError(w, r, err)
		return
	}

	scores, err := h.service.ListScores(r.Context(), userID)
	if err != nil {
		config.WriteError(w, r, err)
		return
	}
	config.JSON(w, http.StatusOK, scores)
}

func (h *Handler) RecordScore(w http.ResponseWriter, r *http.Request) {
	userID, err := principalID(r)
	if err != nil {
		config.WriteError(w, r, err)
		return
	}

	var req RecordScoreRequest
	if err := config.DecodeJSON(r, &req); err != nil {
		config.WriteError(w, r, err)
		return
	}

	id, err := h.service.RecordScore(r.Context(), userID, req.QuizID, *req.Score)
	if err != nil {
		config.WriteError(w, r, err)
		return
	}
	config.JSON(w, http.StatusCreated, map[string]interface{}{
		"message":  "Score saved successfully",
		"score_id": id,
	})
}

func (h *Handler) SaveAnswer(w http.ResponseWriter, r *http.Request) {
	userID, err := principalID(r)
	if err != nil {
		config.WriteError(w, r, err)
		return
	}

	var req SaveAnswerRequest
	if err := config.DecodeJSON(r, &req); err != nil {
		config.WriteError(w, r, err)
		return
	}

	answer, err := h.service.SaveAnswer(r.Context(), userID, req)
	if err != nil {
		config.WriteError(w, r, err)
		return
	}
	config.JSON(w, http.StatusCreated, map[string]interface{}{
		"message":   "User answer saved successfully",
		"answer_id": answer.ID,
	})
}

func (h *Handler) GetAnswer(w http.ResponseWriter, r *http.Request) {
	userID, err := principalID(r)
	if err != nil {
		config.WriteError(w, r, err)
		return
	}
	quizID, err := config.URLParamID(r, "quizId")
	if err != nil {
		config.WriteError(w, r, err)
		return
	}
	questionID, err := config.URLParamID(r, "questionId")
	if err != nil {
		config.WriteError(w, r, err)
		return
	}

	answer, err := h.service.GetAnswer(r.Context(), userID, quizID, questionID)
	if err != nil {
		config.WriteError(w, r, err)
		return
	}
	config.JSON(w, http.StatusOK, answer)
}
