package search

import (
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"property-storefront/internal/catalog"
	"property-storefront/internal/models"
)

// ErrCircuitOpen is returned while the breaker is refusing index calls.
var ErrCircuitOpen = errors.New("search index circuit open")

// Backend is the index the breaker guards. *SearchClient implements it.
type Backend interface {
	IndexProperty(property *models.Property) error
	IndexProperties(properties []models.Property) error
	DeleteProperty(id string) error
	Search(query string, filters catalog.Filters, limit int64) ([]string, error)
}

// CircuitBreaker stops calling an unreachable index after failureThreshold
// consecutive failures and lets one call through again after resetTimeout.
type CircuitBreaker struct {
	backend          Backend
	failureThreshold int
	resetTimeout     time.Duration
	log              *zap.Logger
	now              func() time.Time

	mutex               sync.Mutex
	consecutiveFailures int
	isOpen              bool
	lastFailureTime     time.Time
}

// NewCircuitBreaker creates a new circuit breaker around backend
func NewCircuitBreaker(backend Backend, failureThreshold int, resetTimeout time.Duration, log *zap.Logger) *CircuitBreaker {
	if log == nil {
		log = zap.NewNop()
	}
	if failureThreshold < 1 {
		failureThreshold = 1
	}
	return &CircuitBreaker{
		backend:          backend,
		failureThreshold: failureThreshold,
		resetTimeout:     resetTimeout,
		log:              log.Named("search"),
		now:              time.Now,
	}
}

// canProceed checks if calls are allowed
func (cb *CircuitBreaker) canProceed() bool {
	cb.mutex.Lock()
	defer cb.mutex.Unlock()

	if !cb.isOpen {
		return true
	}
	if cb.now().Sub(cb.lastFailureTime) > cb.resetTimeout {
		cb.log.Info("circuit breaker half-open, retrying index", zap.Duration("after", cb.resetTimeout))
		cb.isOpen = false
		cb.consecutiveFailures = cb.failureThreshold - 1
		return true
	}
	return false
}

func (cb *CircuitBreaker) record(err error) error {
	cb.mutex.Lock()
	defer cb.mutex.Unlock()

	if err == nil {
		cb.consecutiveFailures = 0
		return nil
	}
	cb.consecutiveFailures++
	cb.lastFailureTime = cb.now()
	if !cb.isOpen && cb.consecutiveFailures >= cb.failureThreshold {
		cb.isOpen = true
		cb.log.Warn("circuit breaker open, pausing index calls",
			zap.Int("consecutive_failures", cb.consecutiveFailures),
			zap.Duration("retry_after", cb.resetTimeout),
			zap.Error(err))
	}
	return err
}

// IsOpen reports whether index calls are currently refused.
func (cb *CircuitBreaker) IsOpen() bool {
	cb.mutex.Lock()
	defer cb.mutex.Unlock()
	return cb.isOpen
}

func (cb *CircuitBreaker) IndexProperty(property *models.Property) error {
	if !cb.canProceed() {
		return ErrCircuitOpen
	}
	return cb.record(cb.backend.IndexProperty(property))
}

func (cb *CircuitBreaker) IndexProperties(properties []models.Property) error {
	if !cb.canProceed() {
		return ErrCircuitOpen
	}
	return cb.record(cb.backend.IndexProperties(properties))
}

func (cb *CircuitBreaker) DeleteProperty(id string) error {
	if !cb.canProceed() {
		return ErrCircuitOpen
	}
	return cb.record(cb.backend.DeleteProperty(id))
}

func (cb *CircuitBreaker) Search(query string, filters catalog.Filters, limit int64) ([]string, error) {
	if !cb.canProceed() {
		return nil, ErrCircuitOpen
	}
	ids, err := cb.backend.Search(query, filters, limit)
	return ids, cb.record(err)
}
