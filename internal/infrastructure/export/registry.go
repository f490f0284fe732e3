// Package export implements the insurer-specific claim export strategies
// and the registry that dispatches a claim to the right one.
package export

import (
	"context"
	"fmt"
	"sort"
	"sync"

	appclaims "github.com/claimdesk/backend/internal/application/claims"
	"github.com/claimdesk/backend/internal/domain/claims"
	"github.com/claimdesk/backend/internal/domain/inventory"
	"github.com/claimdesk/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// Strategy shapes a claim's items into one target representation. Each
// strategy covers a strategy class; insurer formats map onto classes in
// the domain layer, so registering five strategies covers every insurer.
type Strategy interface {
	// Name identifies the strategy for logging and registry listings
	Name() string

	// Class is the strategy class this strategy serves
	Class() claims.StrategyClass

	// Export produces the artifact for the claim and returns its result
	Export(
		ctx context.Context,
		items []inventory.Item,
		categories []inventory.Category,
		rooms []inventory.Room,
		claim *claims.ClaimSubmission,
	) (*appclaims.ExportResult, error)
}

// Registry manages strategy registrations and dispatches exports by
// insurer format
type Registry struct {
	mu         sync.RWMutex
	strategies map[claims.StrategyClass]Strategy
	logger     *zap.Logger
}

// NewRegistry creates an empty strategy registry
func NewRegistry(logger *zap.Logger) *Registry {
	return &Registry{
		strategies: make(map[claims.StrategyClass]Strategy),
		logger:     logger,
	}
}

// Register registers a strategy for its class
func (r *Registry) Register(s Strategy) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	class := s.Class()
	if _, exists := r.strategies[class]; exists {
		return fmt.Errorf("%w: strategy for class '%s' already registered", shared.ErrAlreadyExists, class)
	}
	r.strategies[class] = s
	return nil
}

// Get returns the strategy serving the given insurer format
func (r *Registry) Get(format claims.InsurerFormat) (Strategy, error) {
	if !format.IsValid() {
		return nil, claims.ErrInvalidFormat
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	s, exists := r.strategies[format.Class()]
	if !exists {
		return nil, claims.ErrInvalidFormat
	}
	return s, nil
}

// List returns all registered strategy names
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.strategies))
	for _, s := range r.strategies {
		names = append(names, s.Name())
	}
	sort.Strings(names)
	return names
}

// ValidateComplete checks that every insurer format resolves to a
// registered strategy. Called at startup so a dispatch-table gap fails
// fast instead of surfacing on a user's export.
func (r *Registry) ValidateComplete() error {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, format := range claims.AllFormats {
		if _, exists := r.strategies[format.Class()]; !exists {
			return fmt.Errorf("%w: no strategy registered for %s (class %s)",
				claims.ErrInvalidFormat, format, format.Class())
		}
	}
	return nil
}

// Export dispatches the claim to the strategy serving the insurer format
func (r *Registry) Export(
	ctx context.Context,
	items []inventory.Item,
	categories []inventory.Category,
	rooms []inventory.Room,
	format claims.InsurerFormat,
	claim *claims.ClaimSubmission,
) (*appclaims.ExportResult, error) {
	s, err := r.Get(format)
	if err != nil {
		return nil, err
	}

	r.logger.Debug("dispatching claim export",
		zap.String("format", string(format)),
		zap.String("strategy", s.Name()),
		zap.Int("item_count", len(items)),
	)

	result, err := s.Export(ctx, items, categories, rooms, claim)
	if err != nil {
		return nil, fmt.Errorf("%s export: %w", s.Name(), err)
	}
	result.Format = format
	return result, nil
}

var _ appclaims.Exporter = (*Registry)(nil)
