//go:build !stdjson

package jsoncompat

import (
	"io"

	"github.com/bytedance/sonic"
)

var api = sonic.ConfigDefault

// Marshal proxies to sonic unless the stdjson build tag is present.
func Marshal(v any) ([]byte, error) { return api.Marshal(v) }

// Unmarshal proxies to sonic unless the stdjson build tag is present.
func Unmarshal(data []byte, v any) error { return api.Unmarshal(data, v) }

func NewEncoder(w io.Writer) Encoder { return api.NewEncoder(w) }

func NewDecoder(r io.Reader) Decoder { return api.NewDecoder(r) }
