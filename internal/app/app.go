// Package app wires the store, the session gate and the services that sit
// on top of them.
package app

import (
	"context"

	"github.com/diewo77/computer-store/auth"
	"github.com/diewo77/computer-store/internal/backup"
	"github.com/diewo77/computer-store/internal/config"
	"github.com/diewo77/computer-store/internal/db"
	"github.com/diewo77/computer-store/internal/help"
	"github.com/diewo77/computer-store/internal/reports"
	"github.com/diewo77/computer-store/internal/services"
	"github.com/diewo77/computer-store/internal/session"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type App struct {
	Config *config.Config
	DB     *gorm.DB

	Sessions        *session.Manager
	Suppliers       *services.SupplierService
	Categories      *services.CategoryService
	Products        *services.ProductService
	IncomeInvoices  *services.IncomeInvoiceService
	OutcomeInvoices *services.OutcomeInvoiceService
	Reports         *reports.Engine
	Backups         *backup.Manager
	Help            *help.Opener
}

// New opens the store and runs the schema initialiser. Initialisation
// errors are logged and startup continues with whatever state exists.
func New(cfg *config.Config) (*App, error) {
	gdb, err := db.Open(cfg.Database)
	if err != nil {
		return nil, err
	}
	if err := db.Init(gdb); err != nil {
		logrus.WithError(err).Warn("schema initialisation incomplete, continuing")
	}

	sessions := session.NewManager(gdb)
	a := &App{
		Config:          cfg,
		DB:              gdb,
		Sessions:        sessions,
		Suppliers:       services.NewSupplierService(gdb, sessions),
		Categories:      services.NewCategoryService(gdb, sessions),
		Products:        services.NewProductService(gdb, sessions),
		IncomeInvoices:  services.NewIncomeInvoiceService(gdb, sessions),
		OutcomeInvoices: services.NewOutcomeInvoiceService(gdb, sessions),
		Reports:         reports.NewEngine(gdb, sessions),
		Backups:         backup.NewManager(cfg.Database.Path, cfg.Backup.Dir, sessions),
		Help:            help.NewOpener(cfg.Help.URL, sessions),
	}
	a.Backups.AfterRestore = func(context.Context) error { return db.Init(gdb) }

	auth.SetSecret(cfg.Session.Secret)
	auth.SetSessionVerifier(sessions.IsCurrent)
	return a, nil
}

// Close ends the session and releases the store.
func (a *App) Close() error {
	a.Sessions.Logout()
	return db.Close(a.DB)
}
