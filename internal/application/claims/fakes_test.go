package claims

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/claimdesk/backend/internal/domain/claims"
	"github.com/claimdesk/backend/internal/domain/inventory"
	"github.com/claimdesk/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

func testLogger() *zap.Logger {
	return zap.NewNop()
}

func priceOf(amount int64) *decimal.Decimal {
	d := decimal.NewFromInt(amount)
	return &d
}

func completeItem(name string, amount int64) inventory.Item {
	categoryID := uuid.New()
	purchased := time.Now().AddDate(-1, 0, 0)
	return inventory.Item{
		ID:            uuid.New(),
		Name:          name,
		CategoryID:    &categoryID,
		CategoryName:  "Electronics",
		SerialNumber:  "SN-" + name,
		PurchasePrice: priceOf(amount),
		PurchaseDate:  &purchased,
		Photos:        []string{"photos/" + name + ".jpg"},
		Receipts:      []string{"receipts/" + name + ".pdf"},
	}
}

type memInventoryRepo struct {
	items      []inventory.Item
	categories []inventory.Category
	rooms      []inventory.Room
	fetchErr   error
}

func (r *memInventoryRepo) FetchItems(_ context.Context, ids []uuid.UUID) ([]inventory.Item, error) {
	if r.fetchErr != nil {
		return nil, r.fetchErr
	}
	wanted := make(map[uuid.UUID]bool, len(ids))
	for _, id := range ids {
		wanted[id] = true
	}
	out := make([]inventory.Item, 0, len(ids))
	for _, item := range r.items {
		if wanted[item.ID] {
			out = append(out, item)
		}
	}
	return out, nil
}

func (r *memInventoryRepo) FetchAllItems(_ context.Context) ([]inventory.Item, error) {
	return r.items, nil
}

func (r *memInventoryRepo) FetchCategories(_ context.Context) ([]inventory.Category, error) {
	return r.categories, nil
}

func (r *memInventoryRepo) FetchRooms(_ context.Context) ([]inventory.Room, error) {
	return r.rooms, nil
}

func itemIDs(items []inventory.Item) []uuid.UUID {
	ids := make([]uuid.UUID, len(items))
	for i := range items {
		ids[i] = items[i].ID
	}
	return ids
}

type memClaimRepo struct {
	mu      sync.Mutex
	claims  map[uuid.UUID]*claims.ClaimSubmission
	saveErr error
	saves   int
}

func newMemClaimRepo() *memClaimRepo {
	return &memClaimRepo{claims: make(map[uuid.UUID]*claims.ClaimSubmission)}
}

func (r *memClaimRepo) FindByID(_ context.Context, id uuid.UUID) (*claims.ClaimSubmission, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	claim, ok := r.claims[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return claim, nil
}

func (r *memClaimRepo) FindActive(_ context.Context) ([]claims.ClaimSubmission, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]claims.ClaimSubmission, 0)
	for _, claim := range r.claims {
		if claim.IsActive() {
			out = append(out, *claim)
		}
	}
	return out, nil
}

func (r *memClaimRepo) FindAll(_ context.Context, _ shared.Filter) ([]claims.ClaimSubmission, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]claims.ClaimSubmission, 0, len(r.claims))
	for _, claim := range r.claims {
		out = append(out, *claim)
	}
	return out, nil
}

func (r *memClaimRepo) Save(_ context.Context, claim *claims.ClaimSubmission) error {
	if r.saveErr != nil {
		return r.saveErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.saves++
	r.claims[claim.ID] = claim
	return nil
}

func (r *memClaimRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.claims[id]; !ok {
		return shared.ErrNotFound
	}
	delete(r.claims, id)
	return nil
}

func (r *memClaimRepo) Count(_ context.Context, _ shared.Filter) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.claims)), nil
}

type stubExporter struct {
	result *ExportResult
	err    error
	calls  int
}

func (e *stubExporter) Export(
	_ context.Context,
	items []inventory.Item,
	_ []inventory.Category,
	_ []inventory.Room,
	format claims.InsurerFormat,
	_ *claims.ClaimSubmission,
) (*ExportResult, error) {
	e.calls++
	if e.err != nil {
		return nil, e.err
	}
	if e.result != nil {
		return e.result, nil
	}
	return &ExportResult{
		FileRef:    "exports/claim-artifact",
		Format:     format,
		ItemCount:  len(items),
		TotalValue: inventory.TotalValue(items),
		ByteSize:   2048,
	}, nil
}

type stubMail struct {
	canSend    bool
	composeErr error
	sent       []string
}

func (m *stubMail) CanSend() bool { return m.canSend }

func (m *stubMail) Compose(_ context.Context, recipient, _, _, _ string) error {
	if m.composeErr != nil {
		return m.composeErr
	}
	m.sent = append(m.sent, recipient)
	return nil
}

type stubCloud struct {
	name      string
	url       string
	uploadErr error
	uploads   int
}

func (c *stubCloud) Name() string { return c.name }

func (c *stubCloud) Upload(_ context.Context, _, _ string) (string, error) {
	c.uploads++
	if c.uploadErr != nil {
		return "", c.uploadErr
	}
	return c.url, nil
}

type memLocker struct {
	mu     sync.Mutex
	locked map[uuid.UUID]bool
}

func newMemLocker() *memLocker {
	return &memLocker{locked: make(map[uuid.UUID]bool)}
}

func (l *memLocker) TryLock(_ context.Context, claimID uuid.UUID) (func(), error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.locked[claimID] {
		return nil, claims.ErrExportInProgress
	}
	l.locked[claimID] = true
	return func() {
		l.mu.Lock()
		defer l.mu.Unlock()
		delete(l.locked, claimID)
	}, nil
}

var errUploadDown = errors.New("service unavailable")
