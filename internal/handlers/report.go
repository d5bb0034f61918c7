package handlers

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"

	"github.com/diewo77/computer-store/httpx"
	"github.com/diewo77/computer-store/i18n"
	"github.com/diewo77/computer-store/internal/reports"
	"github.com/sirupsen/logrus"
)

type ReportHandler struct {
	engine *reports.Engine
}

func NewReportHandler(engine *reports.Engine) *ReportHandler {
	return &ReportHandler{engine: engine}
}

func (h *ReportHandler) Show(w http.ResponseWriter, r *http.Request) {
	rep, err := h.engine.Generate(r.Context(), reports.Kind(r.PathValue("kind")))
	if err != nil {
		writeError(w, r, err, "internal_error")
		return
	}
	httpx.JSON(w, http.StatusOK, rep)
}

// XLSX streams the report as a workbook download.
func (h *ReportHandler) XLSX(w http.ResponseWriter, r *http.Request) {
	kind := reports.Kind(r.PathValue("kind"))
	rep, err := h.engine.Generate(r.Context(), kind)
	if err != nil {
		writeError(w, r, err, "internal_error")
		return
	}
	var buf bytes.Buffer
	if err := reports.WriteXLSX(&buf, rep, i18n.LangFrom(r.Context())); err != nil {
		writeError(w, r, err, "internal_error")
		return
	}
	name := fmt.Sprintf("%s_report_%s.xlsx", kind, rep.Table(i18n.LangFrom(r.Context())).GeneratedAt)
	w.Header().Set("Content-Type", reports.XLSXContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+name+`"`)
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	if _, err := buf.WriteTo(w); err != nil {
		logrus.WithError(err).Debug("write xlsx body")
	}
}

func (h *ReportHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	d, err := h.engine.Dashboard(r.Context())
	if err != nil {
		writeError(w, r, err, "internal_error")
		return
	}
	httpx.JSON(w, http.StatusOK, d)
}

// Kinds lists the available reports.
func (h *ReportHandler) Kinds(w http.ResponseWriter, r *http.Request) {
	lang := i18n.LangFrom(r.Context())
	out := make([]map[string]string, 0, len(reports.Kinds))
	for _, k := range reports.Kinds {
		out = append(out, map[string]string{"kind": string(k), "title": i18n.T(lang, "report_"+string(k))})
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"items": out})
}
