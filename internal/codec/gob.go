package codec

import (
	"bytes"
	"encoding/gob"
	"reflect"

	"github.com/iamNilotpal/ignite/pkg/errors"
)

// GobEncoder is the default Encoder, built on the standard library's
// encoding/gob. It round-trips any concrete Go value without requiring a
// schema, which is what lets a single store hold heterogeneous value
// types (strings, integers, slices) side by side.
type GobEncoder struct{}

// NewGobEncoder returns the default gob-based Encoder.
func NewGobEncoder() *GobEncoder {
	return &GobEncoder{}
}

// Encode implements Encoder.
func (GobEncoder) Encode(v any) ([]byte, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(v); err != nil {
		return nil, errors.NewCodecError(err, errors.ErrorCodeSerialize, "failed to gob-encode value").
			WithGoType(goTypeName(v))
	}
	return buf.Bytes(), nil
}

// Decode implements Encoder.
func (GobEncoder) Decode(data []byte, out any) error {
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(out); err != nil {
		return errors.NewCodecError(err, errors.ErrorCodeDeserialize, "failed to gob-decode value").
			WithGoType(goTypeName(out))
	}
	return nil
}

func goTypeName(v any) string {
	if v == nil {
		return "<nil>"
	}
	t := reflect.TypeOf(v)
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t.String()
}
