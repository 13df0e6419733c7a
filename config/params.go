// Package config holds the key/value configuration passed through the CV
// orchestrator to a training backend.
//
// The orchestrator never reads any key; backends document and validate the
// keys they recognise. Params can be built in code or loaded from YAML or
// TOML files.
package config

import (
	"fmt"
	"math"
	"sort"

	"github.com/YuminosukeSato/boostcv/pkg/errors"
)

// Params is an opaque set of backend options, e.g. {"learning_rate": 0.05}.
type Params map[string]any

// Clone returns a shallow copy, so callers can override keys per run.
func (p Params) Clone() Params {
	out := make(Params, len(p))
	for k, v := range p {
		out[k] = v
	}
	return out
}

// Keys returns the keys in sorted order.
func (p Params) Keys() []string {
	keys := make([]string, 0, len(p))
	for k := range p {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Float returns key as float64, or def when the key is absent.
// Integer values from YAML or TOML are accepted.
func (p Params) Float(key string, def float64) (float64, error) {
	v, ok := p[key]
	if !ok {
		return def, nil
	}
	switch x := v.(type) {
	case float64:
		return x, nil
	case float32:
		return float64(x), nil
	case int:
		return float64(x), nil
	case int64:
		return float64(x), nil
	case uint64:
		return float64(x), nil
	default:
		return 0, errors.NewValidationError(key, "must be a number", v)
	}
}

// Int returns key as int, or def when the key is absent.
// Whole float values are accepted since JSON decodes every number as float64.
func (p Params) Int(key string, def int) (int, error) {
	v, ok := p[key]
	if !ok {
		return def, nil
	}
	switch x := v.(type) {
	case int:
		return x, nil
	case int64:
		return int(x), nil
	case uint64:
		return int(x), nil
	case float64:
		if x != math.Trunc(x) {
			return 0, errors.NewValidationError(key, "must be an integer", v)
		}
		return int(x), nil
	default:
		return 0, errors.NewValidationError(key, "must be an integer", v)
	}
}

// Bool returns key as bool, or def when the key is absent.
func (p Params) Bool(key string, def bool) (bool, error) {
	v, ok := p[key]
	if !ok {
		return def, nil
	}
	b, ok := v.(bool)
	if !ok {
		return false, errors.NewValidationError(key, "must be a boolean", v)
	}
	return b, nil
}

// String returns key as string, or def when the key is absent.
func (p Params) String(key string, def string) (string, error) {
	v, ok := p[key]
	if !ok {
		return def, nil
	}
	s, ok := v.(string)
	if !ok {
		return "", errors.NewValidationError(key, "must be a string", v)
	}
	return s, nil
}

// RejectUnknown returns a ValidationError for the first key (in sorted
// order) that is not in known.
func (p Params) RejectUnknown(known ...string) error {
	allowed := make(map[string]struct{}, len(known))
	for _, k := range known {
		allowed[k] = struct{}{}
	}
	for _, k := range p.Keys() {
		if _, ok := allowed[k]; !ok {
			return errors.NewValidationError(k, fmt.Sprintf("unknown key, expected one of %v", known), p[k])
		}
	}
	return nil
}
