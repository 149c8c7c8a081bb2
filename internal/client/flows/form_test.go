package flows

import (
	"errors"
	"fmt"
	"testing"

	"github.com/dmitrijs2005/stockkeeper/internal/client/client"
	"github.com/dmitrijs2005/stockkeeper/internal/client/models"
	"github.com/stretchr/testify/assert"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name     string
		form     Form
		wantErrs FormErrors
		want     models.ProductInput
	}{
		{
			name:     "ok",
			form:     Form{"name": " Widget ", "unit": "pcs", "category": "Tools", "brand": "Acme", "stock": "10"},
			wantErrs: FormErrors{},
			want:     models.ProductInput{Name: "Widget", Unit: "pcs", Category: "Tools", Brand: "Acme", Stock: 10},
		},
		{
			name:     "blank stock is zero",
			form:     Form{"name": "Widget", "stock": ""},
			wantErrs: FormErrors{},
			want:     models.ProductInput{Name: "Widget"},
		},
		{
			name:     "missing name",
			form:     Form{"name": "  ", "stock": "1"},
			wantErrs: FormErrors{"name": "Name is required"},
			want:     models.ProductInput{Stock: 1},
		},
		{
			name:     "negative stock",
			form:     Form{"name": "Widget", "stock": "-3"},
			wantErrs: FormErrors{"stock": "Stock cannot be negative"},
			want:     models.ProductInput{Name: "Widget", Stock: -3},
		},
		{
			name:     "stock not a number",
			form:     Form{"name": "Widget", "stock": "ten"},
			wantErrs: FormErrors{"stock": "Stock must be a whole number"},
			want:     models.ProductInput{Name: "Widget"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in, errs := Validate(tt.form)
			assert.Equal(t, tt.wantErrs, errs)
			assert.Equal(t, tt.want, in)
		})
	}
}

func TestErrorsFromRemote(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want FormErrors
	}{
		{
			name: "validation",
			err: &client.ValidationError{Status: 400, Fields: []client.FieldError{
				{Field: "name", Message: "Name is required"},
				{Field: "name", Message: "second message is dropped"},
				{Message: "Something else"},
			}},
			want: FormErrors{"name": "Name is required", GeneralKey: "Something else"},
		},
		{"general", &client.APIError{Status: 409, Message: "Duplicate"}, FormErrors{GeneralKey: "Duplicate"}},
		{"general without message", &client.APIError{Status: 500}, FormErrors{GeneralKey: "fallback"}},
		{"network", fmt.Errorf("%w: dial", client.ErrUnavailable), FormErrors{GeneralKey: MsgNetwork}},
		{"authorization", client.ErrUnauthorized, FormErrors{}},
		{"other", errors.New("weird"), FormErrors{GeneralKey: "fallback"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, errorsFromRemote(tt.err, "fallback"))
		})
	}
}
