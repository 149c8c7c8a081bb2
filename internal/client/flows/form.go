package flows

import (
	"errors"
	"maps"
	"reflect"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/stockkeeper/internal/client/client"
	"github.com/dmitrijs2005/stockkeeper/internal/client/models"
	"github.com/go-playground/validator/v10"
)

// GeneralKey holds the message not tied to a single field.
const GeneralKey = "general"

// MsgNetwork is shown when the server could not be reached.
const MsgNetwork = "Network error, please try again"

var (
	ErrInvalidForm  = errors.New("form has errors")
	ErrUnknownField = errors.New("unknown field")
	ErrBusy         = errors.New("request already in progress")
)

// Form holds raw user input keyed by field name.
type Form map[string]string

// FormErrors maps a field name, or GeneralKey, to a message.
type FormErrors map[string]string

func (e FormErrors) General() string { return e[GeneralKey] }

func (e FormErrors) clone() FormErrors {
	if e == nil {
		return FormErrors{}
	}
	return maps.Clone(e)
}

func formFromInput(in models.ProductInput) Form {
	f := make(Form, len(models.Fields))
	for _, name := range models.Fields {
		f[name] = in.Value(name)
	}
	return f
}

func emptyForm() Form {
	return formFromInput(models.ProductInput{})
}

func (f Form) set(field, value string) error {
	if _, ok := f[field]; !ok {
		return ErrUnknownField
	}
	f[field] = value
	return nil
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Validate converts f into a ProductInput and runs the checks that do not
// need the server.
func Validate(f Form) (models.ProductInput, FormErrors) {
	errs := FormErrors{}

	in := models.ProductInput{
		Name:     strings.TrimSpace(f[models.FieldName]),
		Unit:     strings.TrimSpace(f[models.FieldUnit]),
		Category: strings.TrimSpace(f[models.FieldCategory]),
		Brand:    strings.TrimSpace(f[models.FieldBrand]),
	}

	stock := strings.TrimSpace(f[models.FieldStock])
	if stock == "" {
		stock = "0"
	}
	n, err := strconv.Atoi(stock)
	if err != nil {
		errs[models.FieldStock] = "Stock must be a whole number"
	}
	in.Stock = n

	if err := validate.Struct(in); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			for _, fe := range verrs {
				if _, dup := errs[fe.Field()]; !dup {
					errs[fe.Field()] = fieldMessage(fe)
				}
			}
		}
	}
	return in, errs
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return label(fe.Field()) + " is required"
	case "min":
		return label(fe.Field()) + " cannot be negative"
	default:
		return fe.Error()
	}
}

func label(field string) string {
	if field == "" {
		return field
	}
	return strings.ToUpper(field[:1]) + field[1:]
}

// errorsFromRemote turns a failed call into form errors. Authorization
// failures produce none: the session is already being torn down.
func errorsFromRemote(err error, fallback string) FormErrors {
	errs := FormErrors{}

	switch client.Classify(err) {
	case client.KindAuthorization:
		return errs
	case client.KindNetwork:
		errs[GeneralKey] = MsgNetwork
	case client.KindValidation:
		var verr *client.ValidationError
		errors.As(err, &verr)
		for _, f := range verr.Fields {
			key := f.Field
			if key == "" {
				key = GeneralKey
			}
			if _, dup := errs[key]; !dup {
				errs[key] = f.Message
			}
		}
	case client.KindGeneral:
		errs[GeneralKey] = serverMessage(err, fallback)
	default:
		errs[GeneralKey] = fallback
	}
	return errs
}

// serverMessage returns the message reported by the server, or fallback.
func serverMessage(err error, fallback string) string {
	var aerr *client.APIError
	if errors.As(err, &aerr) && aerr.Message != "" {
		return aerr.Message
	}
	return fallback
}
