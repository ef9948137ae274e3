package action

import (
	"errors"
	"net/url"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/mitchellh/mapstructure"

	"github.com/idilsaglam/todo/internal/failure"
	"github.com/idilsaglam/todo/internal/ident"
	"github.com/idilsaglam/todo/internal/model"
)

// Fields is raw, untyped form input.
type Fields map[string]string

// FieldsFromValues keeps the first value of every key.
func FieldsFromValues(v url.Values) Fields {
	f := make(Fields, len(v))
	for k, vs := range v {
		if len(vs) > 0 {
			f[k] = vs[0]
		}
	}
	return f
}

type createForm struct {
	Title       string `mapstructure:"title" validate:"required"`
	Description string `mapstructure:"description"`
	Status      string `mapstructure:"status"`
}

type deleteForm struct {
	ID string `mapstructure:"id" validate:"required"`
}

type updateStatusForm struct {
	ID     string `mapstructure:"id" validate:"required"`
	Status string `mapstructure:"status" validate:"required"`
}

type helloForm struct {
	Name string `mapstructure:"name"`
}

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		return f.Tag.Get("mapstructure")
	})
	return v
}

func trimStrings(f reflect.Type, _ reflect.Type, data interface{}) (interface{}, error) {
	if f.Kind() == reflect.String {
		return strings.TrimSpace(data.(string)), nil
	}
	return data, nil
}

// parseForm decodes fields into out and runs struct validation. Any problem
// comes back as a validation failure.
func (d *Dispatcher) parseForm(fields Fields, out interface{}) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:     out,
		DecodeHook: mapstructure.ComposeDecodeHookFunc(trimStrings),
	})
	if err != nil {
		return err
	}
	if err := dec.Decode(map[string]string(fields)); err != nil {
		return failure.Validation("form", err.Error())
	}
	if err := d.validate.Struct(out); err != nil {
		var ves validator.ValidationErrors
		if errors.As(err, &ves) && len(ves) > 0 {
			fe := ves[0]
			return failure.Validation(fe.Field(), fe.Field()+" is required")
		}
		return failure.Validation("form", err.Error())
	}
	return nil
}

func parseID(text string) (int64, error) {
	id, err := ident.Encode(text)
	if err != nil {
		return 0, failure.Validation("id", "id must be a valid identifier")
	}
	return id, nil
}

func parseStatus(text string) (model.Status, error) {
	if text == "" {
		return model.StatusUnspecified, nil
	}
	s, err := model.ParseStatus(text)
	if err != nil {
		return model.StatusUnspecified, failure.Validation("status", "status must be a valid status")
	}
	return s, nil
}

func (d *Dispatcher) parseCreate(fields Fields) (model.CreateRequest, error) {
	var f createForm
	if err := d.parseForm(fields, &f); err != nil {
		return model.CreateRequest{}, err
	}
	status, err := parseStatus(f.Status)
	if err != nil {
		return model.CreateRequest{}, err
	}
	return model.CreateRequest{Title: f.Title, Description: f.Description, Status: status}, nil
}

func (d *Dispatcher) parseDelete(fields Fields) (int64, error) {
	var f deleteForm
	if err := d.parseForm(fields, &f); err != nil {
		return 0, err
	}
	return parseID(f.ID)
}

func (d *Dispatcher) parseUpdateStatus(fields Fields) (model.StatusUpdate, error) {
	var f updateStatusForm
	if err := d.parseForm(fields, &f); err != nil {
		return model.StatusUpdate{}, err
	}
	id, err := parseID(f.ID)
	if err != nil {
		return model.StatusUpdate{}, err
	}
	status, err := parseStatus(f.Status)
	if err != nil {
		return model.StatusUpdate{}, err
	}
	return model.StatusUpdate{ID: id, Status: status}, nil
}
