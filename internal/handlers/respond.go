package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/diewo77/computer-store/httpx"
	"github.com/diewo77/computer-store/i18n"
	"github.com/diewo77/computer-store/internal/backup"
	"github.com/diewo77/computer-store/internal/help"
	"github.com/diewo77/computer-store/internal/reports"
	"github.com/diewo77/computer-store/internal/services"
	"github.com/diewo77/computer-store/internal/session"
	"github.com/sirupsen/logrus"
)

const maxBodyBytes = 1 << 20

// writeError maps a domain error to a status and a translated message.
// fallback is the code used for unclassified failures.
func writeError(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	lang := i18n.LangFrom(r.Context())
	var (
		verr *services.ValidationError
		serr *services.StorageError
		nerr *services.NotFoundError
		herr *help.OpenError
	)
	switch {
	case errors.As(err, &verr):
		details := make(map[string]string, len(verr.Violations))
		for field, code := range verr.Violations {
			details[field] = i18n.T(lang, code)
		}
		reply(w, r, http.StatusBadRequest, "validation_failed", details)
	case errors.Is(err, session.ErrAuthRequired):
		reply(w, r, http.StatusUnauthorized, "auth_required", nil)
	case errors.Is(err, session.ErrInvalidCredentials):
		reply(w, r, http.StatusUnauthorized, "invalid_credentials", nil)
	case errors.As(err, &nerr):
		reply(w, r, http.StatusNotFound, "not_found", map[string]any{"entity": nerr.Entity, "id": nerr.ID})
	case errors.As(err, &serr) && serr.Duplicate():
		reply(w, r, http.StatusConflict, "duplicate_invoice_number", nil)
	case errors.As(err, &serr):
		reply(w, r, http.StatusInternalServerError, "storage_error", nil)
	case errors.Is(err, backup.ErrInvalidFile):
		reply(w, r, http.StatusBadRequest, "invalid_backup_file", nil)
	case errors.As(err, &herr):
		reply(w, r, http.StatusBadGateway, "help_open_failed", map[string]string{"url": herr.URL})
	case errors.Is(err, reports.ErrUnknownKind):
		reply(w, r, http.StatusNotFound, "unknown_report", nil)
	default:
		logrus.WithError(err).WithField("path", r.URL.Path).Error("request failed")
		reply(w, r, http.StatusInternalServerError, fallback, nil)
	}
}

func reply(w http.ResponseWriter, r *http.Request, status int, code string, details any) {
	httpx.JSONMessage(w, status, code, i18n.T(i18n.LangFrom(r.Context()), code), details)
}

// pathID reads the {id} wildcard.
func pathID(r *http.Request) (uint, error) {
	n, err := strconv.ParseUint(r.PathValue("id"), 10, 64)
	if err != nil || n == 0 {
		return 0, fmt.Errorf("invalid id %q", r.PathValue("id"))
	}
	return uint(n), nil
}

// decodeInput fills a string-typed form struct from a JSON object or from
// url-encoded form values keyed by the struct's json tags. JSON numbers and
// booleans are accepted in place of strings.
func decodeInput(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	values := map[string]string{}
	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
		var raw map[string]json.RawMessage
		if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
			return err
		}
		for k, v := range raw {
			var s string
			switch {
			case string(v) == "null":
				continue
			case json.Unmarshal(v, &s) == nil:
				values[k] = s
			default:
				values[k] = string(v)
			}
		}
	} else {
		if err := r.ParseForm(); err != nil {
			return err
		}
		for k := range r.PostForm {
			values[k] = r.PostForm.Get(k)
		}
	}
	buf, err := json.Marshal(values)
	if err != nil {
		return err
	}
	return json.Unmarshal(buf, dst)
}

// confirmed reports the explicit confirmation required before a delete.
func confirmed(r *http.Request) bool {
	v := strings.ToLower(strings.TrimSpace(r.FormValue("confirm")))
	return v == "true" || v == "1" || v == "yes"
}
