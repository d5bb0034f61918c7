package server

import (
	"net/http"
	"time"

	"github.com/diewo77/computer-store/auth"
	"github.com/diewo77/computer-store/httpx"
	"github.com/diewo77/computer-store/internal/app"
	"github.com/diewo77/computer-store/internal/handlers"
	"github.com/diewo77/computer-store/internal/middleware"
	"github.com/diewo77/computer-store/internal/models"
	"github.com/diewo77/computer-store/internal/services"
	"github.com/sirupsen/logrus"
)

// New constructs the root http.Handler with all routes and middlewares applied.
func New(a *app.App) http.Handler {
	mux := http.NewServeMux()
	protect := func(h http.HandlerFunc) http.Handler { return auth.RequireAuth(h) }

	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		if err := a.DB.WithContext(r.Context()).Exec("SELECT 1").Error; err != nil {
			httpx.JSON(w, http.StatusServiceUnavailable, map[string]string{"status": "degraded"})
			return
		}
		httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	// Session
	ah := handlers.NewAuthHandler(a.Sessions)
	mux.HandleFunc("POST /login", ah.Login)
	mux.Handle("POST /logout", protect(ah.Logout))
	mux.Handle("GET /session", protect(ah.Current))

	// Repositories
	registerResource(mux, "/suppliers", handlers.NewResourceHandler[models.Supplier, services.SupplierInput](a.Suppliers))
	registerResource(mux, "/products", handlers.NewResourceHandler[models.Product, services.ProductInput](a.Products))
	registerResource(mux, "/income-invoices", handlers.NewResourceHandler[models.IncomeInvoice, services.IncomeInvoiceInput](a.IncomeInvoices))
	registerResource(mux, "/outcome-invoices", handlers.NewResourceHandler[models.OutcomeInvoice, services.OutcomeInvoiceInput](a.OutcomeInvoices))

	ch := handlers.NewCategoryHandler(a.Categories)
	mux.Handle("GET /categories", protect(ch.List))
	mux.Handle("GET /categories/{id}", protect(ch.View))

	// Reports
	rh := handlers.NewReportHandler(a.Reports)
	mux.Handle("GET /dashboard", protect(rh.Dashboard))
	mux.Handle("GET /reports", protect(rh.Kinds))
	mux.Handle("GET /reports/{kind}", protect(rh.Show))
	mux.Handle("GET /reports/{kind}/xlsx", protect(rh.XLSX))

	// Backups
	bh := handlers.NewBackupHandler(a.Backups)
	mux.Handle("GET /backups", protect(bh.List))
	mux.Handle("POST /backups", protect(bh.Create))
	mux.Handle("POST /backups/restore", protect(bh.Restore))

	// Help
	hh := handlers.NewHelpHandler(a.Help)
	mux.Handle("POST /help", protect(hh.Open))

	return withRecover(withLogging(middleware.Prefs(auth.Middleware(mux))))
}

// registerResource mounts list/create/view/update/delete for one entity.
func registerResource[T, I any](mux *http.ServeMux, prefix string, h *handlers.ResourceHandler[T, I]) {
	mux.Handle("GET "+prefix, auth.RequireAuth(http.HandlerFunc(h.List)))
	mux.Handle("POST "+prefix, auth.RequireAuth(http.HandlerFunc(h.Create)))
	mux.Handle("GET "+prefix+"/{id}", auth.RequireAuth(http.HandlerFunc(h.View)))
	mux.Handle("POST "+prefix+"/{id}", auth.RequireAuth(http.HandlerFunc(h.Update)))
	mux.Handle("POST "+prefix+"/{id}/delete", auth.RequireAuth(http.HandlerFunc(h.Delete)))
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

func withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		logrus.WithFields(logrus.Fields{
			"method":   r.Method,
			"path":     r.URL.Path,
			"status":   rec.status,
			"duration": time.Since(start),
		}).Info("request")
	})
}

func withRecover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				logrus.WithField("panic", rec).WithField("path", r.URL.Path).Error("handler panic")
				httpx.JSONError(w, http.StatusInternalServerError, "internal_error", nil)
			}
		}()
		next.ServeHTTP(w, r)
	})
}
