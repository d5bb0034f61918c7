package handlers

import (
	"net/http"

	"github.com/diewo77/computer-store/httpx"
	"github.com/diewo77/computer-store/internal/backup"
)

type BackupHandler struct {
	backups *backup.Manager
}

func NewBackupHandler(backups *backup.Manager) *BackupHandler {
	return &BackupHandler{backups: backups}
}

func (h *BackupHandler) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.backups.List(r.Context())
	if err != nil {
		writeError(w, r, err, "internal_error")
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"items": items, "total": len(items)})
}

func (h *BackupHandler) Create(w http.ResponseWriter, r *http.Request) {
	path, err := h.backups.Create(r.Context())
	if err != nil {
		writeError(w, r, err, "backup_failed")
		return
	}
	httpx.JSON(w, http.StatusCreated, map[string]string{"path": path})
}

type restoreInput struct {
	Path string `json:"path"`
}

// Restore overwrites the live store with the chosen file.
func (h *BackupHandler) Restore(w http.ResponseWriter, r *http.Request) {
	var in restoreInput
	if err := decodeInput(w, r, &in); err != nil {
		reply(w, r, http.StatusBadRequest, "invalid_request", nil)
		return
	}
	if in.Path == "" {
		reply(w, r, http.StatusBadRequest, "invalid_backup_file", nil)
		return
	}
	if err := h.backups.Restore(r.Context(), in.Path); err != nil {
		writeError(w, r, err, "restore_failed")
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"restored": in.Path})
}
