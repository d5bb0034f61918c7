package handlers

import (
	"net/http"

	"github.com/diewo77/computer-store/httpx"
	"github.com/diewo77/computer-store/internal/help"
)

type HelpHandler struct {
	opener *help.Opener
}

func NewHelpHandler(opener *help.Opener) *HelpHandler {
	return &HelpHandler{opener: opener}
}

// Open launches the browser. On failure the URL is returned for manual copy.
func (h *HelpHandler) Open(w http.ResponseWriter, r *http.Request) {
	if err := h.opener.Open(r.Context()); err != nil {
		writeError(w, r, err, "help_open_failed")
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"url": h.opener.URL()})
}
