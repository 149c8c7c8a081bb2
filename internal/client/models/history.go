package models

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Layouts accepted for change_date. Zoneless layouts are read as local time.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	time.DateTime,
	time.DateOnly,
}

// HistoryRecord is one stock change of a product.
type HistoryRecord struct {
	ID          string    `json:"id"`
	ProductID   string    `json:"product_id"`
	OldQuantity int       `json:"old_quantity"`
	NewQuantity int       `json:"new_quantity"`
	ChangeDate  time.Time `json:"change_date"`
}

// UnmarshalJSON accepts numeric ids and SQL style timestamps.
func (r *HistoryRecord) UnmarshalJSON(b []byte) error {
	type plain HistoryRecord
	aux := struct {
		*plain
		ID         json.RawMessage `json:"id"`
		ProductID  json.RawMessage `json:"product_id"`
		ChangeDate string          `json:"change_date"`
	}{plain: (*plain)(r)}

	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}

	var err error
	if r.ID, err = rawID(aux.ID); err != nil {
		return fmt.Errorf("history id: %w", err)
	}
	if r.ProductID, err = rawID(aux.ProductID); err != nil {
		return fmt.Errorf("history product_id: %w", err)
	}
	if r.ChangeDate, err = ParseTimestamp(aux.ChangeDate); err != nil {
		return err
	}
	return nil
}

// ParseTimestamp reads RFC 3339 first, then the database layouts. An empty
// string is the zero time.
func ParseTimestamp(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, nil
	}
	for _, layout := range timestampLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unsupported timestamp %q", s)
}

// Kind classifies the record.
func (r HistoryRecord) Kind() ChangeKind {
	return ClassifyChange(r.OldQuantity, r.NewQuantity)
}

// ChangeKind is the direction of a stock change.
type ChangeKind string

const (
	ChangeIncrease ChangeKind = "increase"
	ChangeDecrease ChangeKind = "decrease"
	ChangeNone     ChangeKind = "no-change"
)

// ClassifyChange reports whether stock went up, down or stayed the same.
func ClassifyChange(oldQty, newQty int) ChangeKind {
	switch {
	case newQty > oldQty:
		return ChangeIncrease
	case newQty < oldQty:
		return ChangeDecrease
	default:
		return ChangeNone
	}
}

// Label is the human readable form of k.
func (k ChangeKind) Label() string {
	switch k {
	case ChangeIncrease:
		return "Stock Increased"
	case ChangeDecrease:
		return "Stock Decreased"
	default:
		return "No Change"
	}
}
