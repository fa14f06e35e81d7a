package chapter

import (
	"net/http"

	"github.com/saulo-duarte/quizmaster/internal/config"
)

type Handler struct {
	service ChapterService
}

func NewHandler(s ChapterService) *Handler {
	return &Handler{service: s}
}

func (h *Handler) ListBySubject(w http.ResponseWriter, r *http.Request) {
	subjectID, err := config.URLParamID(r, "id")
	if err != nil {
		config.WriteError(w, r, err)
		return
	}

	chapters, err := h.service.ListBySubject(r.Context(), subjectID, r.URL.Query().Get("query"))
	if err != nil {
		config.WriteError(w, r, err)
		return
	}
	config.JSON(w, http.StatusOK, chapters)
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	subjectID, err := config.URLParamID(r, "id")
	if err != nil {
		config.WriteError(w, r, err)
		return
	}

	var dto CreateChapterDTO
	if err := config.DecodeJSON(r, &dto); err != nil {
		config.WriteError(w, r, err)
		return
	}

	resp, err := h.service.Create(r.Context(), subjectID, dto)
	if err != nil {
		config.WriteError(w, r, err)
		return
	}
	config.JSON(w, http.StatusCreated, resp)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := config.URLParamID(r, "id")
	if err != nil {
		config.WriteError(w, r, err)
		return
	}

	resp, err := h.service.Get(r.Context(), id)
	if err != nil {
		config.WriteError(w, r, err)
		return
	}
	config.JSON(w, http.StatusOK, resp)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := config.URLParamID(r, "id")
	if err != nil {
		config.WriteError(w, r, err)
		return
	}

	var dto UpdateChapterDTO
	if err := config.DecodeJSON(r, &dto); err != nil {
		config.WriteError(w, r, err)
		return
	}

	resp, err := h.service.Update(r.Context(), id, dto)
	if err != nil {
		config.WriteError(w, r, err)
		return
	}
	config.JSON(w, http.StatusOK, resp)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := config.URLParamID(r, "id")
	if err != nil {
		config.WriteError(w, r, err)
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		config.WriteError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
