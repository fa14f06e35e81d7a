package quiz

import (
	"net/http"

	"github.com/saulo-duarte/quizmaster/internal/config"
)

type Handler struct {
	service QuizService
}

func NewHandler(s QuizService) *Handler {
	return &Handler{service: s}
}

func (h *Handler) ListByChapter(w http.ResponseWriter, r *http.Request) {
	chapterID, err := config.URLParamID(r, "id")
	if err != nil {
		config.WriteError(w, r, err)
		return
	}

	quizzes, err := h.service.ListByChapter(r.Context(), chapterID, r.URL.Query().Get("query"))
	if err != nil {
		config.WriteError(w, r, err)
		return
	}
	config.JSON(w, http.StatusOK, quizzes)
}

func (h *Handler) ListAll(w http.ResponseWriter, r *http.Request) {
	quizzes, err := h.service.ListAll(r.Context())
	if err != nil {
		config.WriteError(w, r, err)
		return
	}
	config.JSON(w, http.StatusOK, quizzes)
}

// CreateQuiz returns the bare quiz unless questions were sent along with it.
func (h *Handler) CreateQuiz(w http.ResponseWriter, r *http.Request) {
	chapterID, err := config.URLParamID(r, "id")
	if err != nil {
		config.WriteError(w, r, err)
		return
	}

	var dto CreateQuizDTO
	if err := config.DecodeJSON(r, &dto); err != nil {
		config.WriteError(w, r, err)
		return
	}

	created, err := h.service.CreateQuiz(r.Context(), chapterID, dto)
	if err != nil {
		config.WriteError(w, r, err)
		return
	}

	if len(dto.Questions) == 0 {
		config.JSON(w, http.StatusCreated, created.Quiz)
		return
	}
	config.JSON(w, http.StatusCreated, created)
}

func (h *Handler) GetQuiz(w http.ResponseWriter, r *http.Request) {
	id, err := config.URLParamID(r, "id")
	if err != nil {
		config.WriteError(w, r, err)
		return
	}

	resp, err := h.service.GetQuiz(r.Context(), id)
	if err != nil {
		config.WriteError(w, r, err)
		return
	}
	config.JSON(w, http.StatusOK, resp)
}

func (h *Handler) UpdateQuiz(w http.ResponseWriter, r *http.Request) {
	id, err := config.URLParamID(r, "id")
	if err != nil {
		config.WriteError(w, r, err)
		return
	}

	var dto UpdateQuizDTO
	if err := config.DecodeJSON(r, &dto); err != nil {
		config.WriteError(w, r, err)
		return
	}

	resp, err := h.service.UpdateQuiz(r.Context(), id, dto)
	if err != nil {
		config.WriteError(w, r, err)
		return
	}
	config.JSON(w, http.StatusOK, resp)
}

func (h *Handler) DeleteQuiz(w http.ResponseWriter, r *http.Request) {
	id, err := config.URLParamID(r, "id")
	if err != nil {
		config.WriteError(w, r, err)
		return
	}

	if err := h.service.DeleteQuiz(r.Context(), id); err != nil {
		config.WriteError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) ListQuestions(w http.ResponseWriter, r *http.Request) {
	quizID, err := config.URLParamID(r, "id")
	if err != nil {
		config.WriteError(w, r, err)
		return
	}

	questions, err := h.service.ListQuestions(r.Context(), quizID)
	if err != nil {
		config.WriteError(w, r, err)
		return
	}
	config.JSON(w, http.StatusOK, questions)
}

func (h *Handler) ListPublicQuestions(w http.ResponseWriter, r *http.Request) {
	quizID, err := config.URLParamID(r, "id")
	if err != nil {
		config.WriteError(w, r, err)
		return
	}

	questions, err := h.service.ListPublicQuestions(r.Context(), quizID)
	if err != nil {
		config.WriteError(w, r, err)
		return
	}
	config.JSON(w, http.StatusOK, questions)
}

func (h *Handler) AddQuestion(w http.ResponseWriter, r *http.Request) {
	quizID, err := config.URLParamID(r, "id")
	if err != nil {
		config.WriteError(w, r, err)
		return
	}

	var dto CreateQuestionDTO
	if err := config.DecodeJSON(r, &dto); err != nil {
		config.WriteError(w, r, err)
		return
	}

	resp, err := h.service.AddQuestionToQuiz(r.Context(), quizID, dto)
	if err != nil {
		config.WriteError(w, r, err)
		return
	}
	config.JSON(w, http.StatusCreated, resp)
}

func (h *Handler) GetQuestion(w http.ResponseWriter, r *http.Request) {
	id, err := config.URLParamID(r, "id")
	if err != nil {
		config.WriteError(w, r, err)
		return
	}

	resp, err := h.service.GetQuestion(r.Context(), id)
	if err != nil {
		config.WriteError(w, r, err)
		return
	}
	config.JSON(w, http.StatusOK, resp)
}

func (h *Handler) UpdateQuestion(w http.ResponseWriter, r *http.Request) {
	id, err := config.URLParamID(r, "id")
	if err != nil {
		config.WriteError(w, r, err)
		return
	}

	var dto UpdateQuestionDTO
	if err := config.DecodeJSON(r, &dto); err != nil {
		config.WriteError(w, r, err)
		return
	}

	resp, err := h.service.UpdateQuestion(r.Context(), id, dto)
	if err != nil {
		config.WriteError(w, r, err)
		return
	}
	config.JSON(w, http.StatusOK, resp)
}

func (h *Handler) RemoveQuestion(w http.ResponseWriter, r *http.Request) {
	id, err := config.URLParamID(r, "id")
	if err != nil {
		config.WriteError(w, r, err)
		return
	}

	if err := h.service.RemoveQuestion(r.Context(), id); err != nil {
		config.WriteError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
