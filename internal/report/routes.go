package report

import "github.com/go-chi/chi/v5"

func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Post("/export-csv", h.ExportCSV)
	r.Post("/generate-monthly", h.GenerateMonthly)
	return r
}
