package httpapi

import (
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog"

	"github.com/placement-cell/placement_service/internal/config"
	"github.com/placement-cell/placement_service/internal/storage"
)

// Store is the full persistence surface the API is built against. Both the
// postgres and in-memory stores satisfy it.
type Store interface {
	storage.StudentStore
	storage.ProfileStore
	storage.CompanyStore
	storage.JobStore
	storage.ApplicationStore
	storage.RBACStore
	storage.UserStore
}

// API holds the handler dependencies. The db handle is only used by the
// database health endpoints and may be nil when the API runs against the
// in-memory store.
type API struct {
	store   Store
	db      *sqlx.DB
	log     zerolog.Logger
	cfg     *config.Config
	started time.Time
}

// New constructs the API around an injected store and pool handle.
func New(cfg *config.Config, log zerolog.Logger, store Store, db *sqlx.DB) *API {
	return &API{
		store:   store,
		db:      db,
		log:     log,
		cfg:     cfg,
		started: time.Now(),
	}
}
