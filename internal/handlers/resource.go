package handlers

import (
	"context"
	"net/http"

	"github.com/diewo77/computer-store/httpx"
)

// CRUDService is the uniform repository surface of one entity.
type CRUDService[T, I any] interface {
	List(ctx context.Context) ([]T, error)
	Get(ctx context.Context, id uint) (*T, error)
	Create(ctx context.Context, in I) (uint, error)
	Update(ctx context.Context, id uint, in I) error
	Delete(ctx context.Context, id uint) error
}

// ResourceHandler exposes a CRUDService as JSON endpoints. T is the stored
// record and I its form input.
type ResourceHandler[T, I any] struct {
	svc CRUDService[T, I]
}

func NewResourceHandler[T, I any](svc CRUDService[T, I]) *ResourceHandler[T, I] {
	return &ResourceHandler[T, I]{svc: svc}
}

func (h *ResourceHandler[T, I]) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.svc.List(r.Context())
	if err != nil {
		writeError(w, r, err, "internal_error")
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"items": items, "total": len(items)})
}

func (h *ResourceHandler[T, I]) View(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		reply(w, r, http.StatusBadRequest, "invalid_id", nil)
		return
	}
	item, err := h.svc.Get(r.Context(), id)
	if err != nil {
		writeError(w, r, err, "internal_error")
		return
	}
	httpx.JSON(w, http.StatusOK, item)
}

func (h *ResourceHandler[T, I]) Create(w http.ResponseWriter, r *http.Request) {
	var in I
	if err := decodeInput(w, r, &in); err != nil {
		reply(w, r, http.StatusBadRequest, "invalid_request", nil)
		return
	}
	id, err := h.svc.Create(r.Context(), in)
	if err != nil {
		writeError(w, r, err, "internal_error")
		return
	}
	httpx.JSON(w, http.StatusCreated, map[string]uint{"id": id})
}

// Update overwrites every field of the record.
func (h *ResourceHandler[T, I]) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		reply(w, r, http.StatusBadRequest, "invalid_id", nil)
		return
	}
	var in I
	if err := decodeInput(w, r, &in); err != nil {
		reply(w, r, http.StatusBadRequest, "invalid_request", nil)
		return
	}
	if err := h.svc.Update(r.Context(), id, in); err != nil {
		writeError(w, r, err, "internal_error")
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]uint{"id": id})
}

// Delete refuses to act without confirm=true.
func (h *ResourceHandler[T, I]) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		reply(w, r, http.StatusBadRequest, "invalid_id", nil)
		return
	}
	if !confirmed(r) {
		reply(w, r, http.StatusConflict, "confirmation_required", nil)
		return
	}
	if err := h.svc.Delete(r.Context(), id); err != nil {
		writeError(w, r, err, "internal_error")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
