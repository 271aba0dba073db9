// Package codec wraps the JSON libraries under test behind one Adapter
// interface and keeps a registry of which of them can run on this host.
package codec

import (
	"errors"
	"fmt"
)

// ErrUnavailable marks an adapter that is not usable on this host or was
// disabled by configuration.
var ErrUnavailable = errors.New("codec unavailable")

// Adapter is the parse/serialize capability pair of one JSON library.
//
// Parse returns the library's own in-memory value for data. Serialize must
// accept any value returned by the same adapter's Parse; it may reject
// values produced elsewhere.
type Adapter interface {
	Name() string
	// Available reports nil when the adapter can be called, or an error
	// wrapping ErrUnavailable.
	Available() error
	Parse(data []byte) (any, error)
	Serialize(v any) ([]byte, error)
}

// marshalCodec adapts libraries with an encoding/json style
// Marshal/Unmarshal pair. Parse decodes into a generic any.
type marshalCodec struct {
	name      string
	unmarshal func([]byte, any) error
	marshal   func(any) ([]byte, error)
}

func (c marshalCodec) Name() string     { return c.name }
func (c marshalCodec) Available() error { return nil }

func (c marshalCodec) Parse(data []byte) (any, error) {
	var v any
	if err := c.unmarshal(data, &v); err != nil {
		return nil, err
	}
	return v, nil
}

func (c marshalCodec) Serialize(v any) ([]byte, error) {
	return c.marshal(v)
}

// unavailable stands in for an adapter that failed its probe or was
// disabled. Every call reports the reason instead of reaching the library.
type unavailable struct {
	name string
	err  error
}

func (u unavailable) Name() string     { return u.name }
func (u unavailable) Available() error { return u.err }

func (u unavailable) Parse([]byte) (any, error) {
	return nil, u.err
}

func (u unavailable) Serialize(any) ([]byte, error) {
	return nil, u.err
}

func unavailableErr(name, reason string) error {
	return fmt.Errorf("%w: %s: %s", ErrUnavailable, name, reason)
}
