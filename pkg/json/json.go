//go:build !jsoniter
// +build !jsoniter

package json

import (
	"io"

	gojson "github.com/goccy/go-json"
)

func Marshal(v interface{}) ([]byte, error) {
	return gojson.Marshal(v)
}

func Unmarshal(data []byte, v interface{}) error {
	return gojson.Unmarshal(data, v)
}

func NewDecoder(r io.Reader) *gojson.Decoder {
	return gojson.NewDecoder(r)
}

func NewEncoder(w io.Writer) *gojson.Encoder {
	return gojson.NewEncoder(w)
}
