// Package container provides dependency injection for the casa-ledger
// application. It centralizes the creation and wiring of all application
// dependencies, making them explicit and testable.
package container

import (
	"fmt"

	"fjacquet/casa-ledger/internal/config"
	"fjacquet/casa-ledger/internal/ledger"
	"fjacquet/casa-ledger/internal/logging"
	"fjacquet/casa-ledger/internal/storage"
)

// Container holds all application dependencies. It is immutable after
// creation; components are reached through getters only.
type Container struct {
	logger  logging.Logger
	config  *config.Config
	store   storage.Store
	mutator *ledger.Mutator
}

// NewContainer creates and wires all application dependencies: the logger,
// the file-backed store at the configured ledger path, and the mutation
// façade on top of it.
func NewContainer(cfg *config.Config) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration cannot be nil")
	}

	logger := logging.NewLogrusAdapter(cfg.Log.Level, cfg.Log.Format)

	store, err := storage.OpenFileStore(cfg.Ledger.File, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to open ledger store: %w", err)
	}

	mutator := ledger.NewMutator(store, logger)

	logger.Debug("container initialized",
		logging.F("ledger_file", cfg.Ledger.File),
		logging.F("profile", cfg.Ledger.Profile))

	return &Container{
		logger:  logger,
		config:  cfg,
		store:   store,
		mutator: mutator,
	}, nil
}

// Logger returns the application logger.
func (c *Container) Logger() logging.Logger { return c.logger }

// Config returns the application configuration.
func (c *Container) Config() *config.Config { return c.config }

// Store returns the transactional document store.
func (c *Container) Store() storage.Store { return c.store }

// Mutator returns the ledger mutation façade.
func (c *Container) Mutator() *ledger.Mutator { return c.mutator }
