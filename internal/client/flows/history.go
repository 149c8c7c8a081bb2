package flows

import (
	"context"
	"slices"
	"sync"

	"github.com/dmitrijs2005/stockkeeper/internal/client/models"
)

const (
	MsgHistoryEmpty  = "No inventory history available for this product."
	MsgHistoryFailed = "Error loading inventory history"
)

// HistoryLoader is the remote call used by HistoryViewer.
type HistoryLoader interface {
	ProductHistory(ctx context.Context, id string) ([]models.HistoryRecord, error)
}

// HistoryViewer shows the stock history of one product. Records are fetched
// on every Open and never cached.
type HistoryViewer struct {
	api HistoryLoader

	mu      sync.Mutex
	gen     uint64
	open    bool
	loaded  bool
	busy    bool
	product models.Product
	records []models.HistoryRecord
	errMsg  string
}

func NewHistoryViewer(api HistoryLoader) *HistoryViewer {
	return &HistoryViewer{api: api}
}

// Open loads the history of p. Opening another product while a load is in
// flight discards the older result.
func (h *HistoryViewer) Open(ctx context.Context, p models.Product) error {
	h.mu.Lock()
	h.gen++
	gen := h.gen
	h.open = true
	h.loaded = false
	h.busy = true
	h.product = p
	h.records = nil
	h.errMsg = ""
	h.mu.Unlock()

	records, err := h.api.ProductHistory(ctx, p.ID)

	h.mu.Lock()
	defer h.mu.Unlock()
	if gen != h.gen {
		return err
	}
	h.busy = false
	h.loaded = true
	if err != nil {
		h.errMsg = MsgHistoryFailed
		return err
	}
	h.records = records
	return nil
}

func (h *HistoryViewer) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.gen++
	h.open = false
	h.loaded = false
	h.busy = false
	h.product = models.Product{}
	h.records = nil
	h.errMsg = ""
}

func (h *HistoryViewer) IsOpen() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.open
}

func (h *HistoryViewer) Busy() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.busy
}

func (h *HistoryViewer) Product() models.Product {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.product
}

func (h *HistoryViewer) Records() []models.HistoryRecord {
	h.mu.Lock()
	defer h.mu.Unlock()
	return slices.Clone(h.records)
}

// Empty is true once a load succeeded with no records.
func (h *HistoryViewer) Empty() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.open && h.loaded && h.errMsg == "" && len(h.records) == 0
}

func (h *HistoryViewer) Err() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.errMsg
}
