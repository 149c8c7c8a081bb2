// Package models defines client-side data models of the stockkeeper CLI.
package models

import (
	"encoding/json"
	"strconv"
)

// Product mirrors a product row as returned by the inventory service. ID and
// Status are owned by the server and only ever echoed back.
type Product struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Unit     string `json:"unit"`
	Category string `json:"category"`
	Brand    string `json:"brand"`
	Stock    int    `json:"stock"`
	Status   string `json:"status"`
}

// UnmarshalJSON accepts "id" or "_id" and numeric identifiers.
func (p *Product) UnmarshalJSON(b []byte) error {
	type plain Product
	aux := struct {
		*plain
		ID    json.RawMessage `json:"id"`
		AltID json.RawMessage `json:"_id"`
	}{plain: (*plain)(p)}

	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}

	raw := aux.ID
	if len(raw) == 0 || string(raw) == "null" {
		raw = aux.AltID
	}
	id, err := rawID(raw)
	if err != nil {
		return err
	}
	p.ID = id
	return nil
}

func rawID(raw json.RawMessage) (string, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return "", nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s, nil
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err != nil {
		return "", err
	}
	return n.String(), nil
}

// Input returns the editable fields of p.
func (p Product) Input() ProductInput {
	return ProductInput{
		Name:     p.Name,
		Unit:     p.Unit,
		Category: p.Category,
		Brand:    p.Brand,
		Stock:    p.Stock,
	}
}

// ProductInput is the payload of create and update requests.
type ProductInput struct {
	Name     string `json:"name" validate:"required"`
	Unit     string `json:"unit"`
	Category string `json:"category"`
	Brand    string `json:"brand"`
	Stock    int    `json:"stock" validate:"min=0"`
}

// Product field names, as used by forms and by server validation errors.
const (
	FieldName     = "name"
	FieldUnit     = "unit"
	FieldCategory = "category"
	FieldBrand    = "brand"
	FieldStock    = "stock"
)

// Fields lists the editable fields in display order.
var Fields = []string{FieldName, FieldUnit, FieldCategory, FieldBrand, FieldStock}

// Value returns the textual value of field.
func (in ProductInput) Value(field string) string {
	switch field {
	case FieldName:
		return in.Name
	case FieldUnit:
		return in.Unit
	case FieldCategory:
		return in.Category
	case FieldBrand:
		return in.Brand
	case FieldStock:
		return strconv.Itoa(in.Stock)
	}
	return ""
}
