package handlers

import (
	"net/http"

	"github.com/diewo77/computer-store/httpx"
	"github.com/diewo77/computer-store/internal/services"
)

type CategoryHandler struct {
	svc *services.CategoryService
}

func NewCategoryHandler(svc *services.CategoryService) *CategoryHandler {
	return &CategoryHandler{svc: svc}
}

func (h *CategoryHandler) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.svc.List(r.Context())
	if err != nil {
		writeError(w, r, err, "internal_error")
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"items": items, "total": len(items)})
}

func (h *CategoryHandler) View(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		reply(w, r, http.StatusBadRequest, "invalid_id", nil)
		return
	}
	c, err := h.svc.Get(r.Context(), id)
	if err != nil {
		writeError(w, r, err, "internal_error")
		return
	}
	httpx.JSON(w, http.StatusOK, c)
}
