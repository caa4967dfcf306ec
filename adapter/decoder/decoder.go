// Package decoder contains the default [domain.Decoder] implementation.
package decoder

import (
	"fmt"

	"github.com/goccy/go-reflect"
	"github.com/mitchellh/mapstructure"
	"github.com/vinicius-lino-figueiredo/upim/domain"
)

// TagName is the struct tag read when decoding into structs.
const TagName = "upim"

// Decoder implements [domain.Decoder].
type Decoder struct{}

// NewDecoder returns a new implementation of [domain.Decoder].
func NewDecoder() domain.Decoder {
	return &Decoder{}
}

// Decode implements [domain.Decoder]. A [domain.Row] is copied as is into a
// *domain.Row and decoded from [domain.Row.Map] into anything else. Strings
// are converted to the target field types when possible.
func (d *Decoder) Decode(source any, target any) error {
	if target == nil {
		return domain.ErrTargetNil
	}

	value := reflect.ValueNoEscapeOf(target)
	if value.Kind() != reflect.Ptr {
		return domain.ErrNonPointer
	}
	if value.IsNil() {
		return domain.ErrTargetNil
	}

	if row, ok := source.(domain.Row); ok {
		if dst, ok := target.(*domain.Row); ok {
			*dst = row
			dst.Values = append([]domain.Value(nil), row.Values...)
			return nil
		}
		source = row.Map()
	}

	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          TagName,
		Result:           target,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return err
	}
	if err := dec.Decode(source); err != nil {
		errDec := domain.ErrDecode{Source: source, Target: target}
		return fmt.Errorf("%w: %w", errDec, err)
	}
	return nil
}
