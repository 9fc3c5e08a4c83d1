package userrepo

import (
	"context"
	"time"

	"github.com/haguru/sakura/internal/interfaces"
	"github.com/haguru/sakura/internal/metrics"
	"github.com/haguru/sakura/internal/models"
)

// InstrumentedRepository records metrics and debug logs around another repository.
type InstrumentedRepository struct {
	next    interfaces.UserRepository
	backend string
	metrics *metrics.StoreMetrics
	logger  interfaces.Logger
}

func NewInstrumentedRepository(next interfaces.UserRepository, backend string, m *metrics.StoreMetrics, logger interfaces.Logger) interfaces.UserRepository {
	return &InstrumentedRepository{
		next:    next,
		backend: backend,
		metrics: m,
		logger:  logger.With("backend", backend),
	}
}

func (r *InstrumentedRepository) Load(ctx context.Context) ([]models.User, error) {
	start := time.Now()
	users, err := r.next.Load(ctx)
	r.observe(OperationLoad, err, start)
	if err == nil {
		r.metrics.SetUsers(r.backend, len(users))
	}
	return users, err
}

func (r *InstrumentedRepository) Save(ctx context.Context, users []models.User) error {
	start := time.Now()
	err := r.next.Save(ctx, users)
	r.observe(OperationSave, err, start)
	if err == nil {
		r.metrics.SetUsers(r.backend, len(users))
	}
	return err
}

func (r *InstrumentedRepository) Init(ctx context.Context) error {
	start := time.Now()
	err := r.next.Init(ctx)
	r.observe(OperationInit, err, start)
	return err
}

func (r *InstrumentedRepository) Close(ctx context.Context) error {
	start := time.Now()
	err := r.next.Close(ctx)
	r.observe(OperationClose, err, start)
	return err
}

func (r *InstrumentedRepository) observe(operation string, err error, start time.Time) {
	elapsed := time.Since(start)
	r.metrics.Observe(r.backend, operation, err, elapsed)
	if err != nil {
		r.logger.Debug("store operation failed", "operation", operation, "duration", elapsed, "error", err)
		return
	}
	r.logger.Debug("store operation", "operation", operation, "duration", elapsed)
}
