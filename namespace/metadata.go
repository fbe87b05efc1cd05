package namespace

import (
	"encoding/binary"
	"fmt"
	"iter"
	"maps"
	"slices"

	"github.com/zero-day-ai/tagtree/gid"
)

// SetMetaRaw stores value under key for g, replacing any previous value. The bytes are
// copied. g does not need to be registered.
func (r *Registry) SetMetaRaw(g gid.GID, key string, value []byte) {
	m, ok := r.meta[g]
	if !ok {
		m = make(map[string][]byte)
		r.meta[g] = m
	}
	m[key] = slices.Clone(value)
}

// MetaRaw returns a copy of the bytes stored under key for g.
func (r *Registry) MetaRaw(g gid.GID, key string) ([]byte, bool) {
	v, ok := r.meta[g][key]
	if !ok {
		return nil, false
	}
	return slices.Clone(v), true
}

// HasMeta reports whether a value is stored under key for g.
func (r *Registry) HasMeta(g gid.GID, key string) bool {
	_, ok := r.meta[g][key]
	return ok
}

// RemoveMeta deletes the value under key for g and reports whether one existed.
func (r *Registry) RemoveMeta(g gid.GID, key string) bool {
	m, ok := r.meta[g]
	if !ok {
		return false
	}
	if _, ok := m[key]; !ok {
		return false
	}
	delete(m, key)
	if len(m) == 0 {
		delete(r.meta, g)
	}
	return true
}

// MetaKeys returns the sorted keys stored for g.
func (r *Registry) MetaKeys(g gid.GID) []string {
	return slices.Sorted(maps.Keys(r.meta[g]))
}

// MetaIter yields the key/value pairs stored for g in key order. The yielded slices are
// the stored values and must not be modified.
func (r *Registry) MetaIter(g gid.GID) iter.Seq2[string, []byte] {
	return func(yield func(string, []byte) bool) {
		m := r.meta[g]
		for _, key := range slices.Sorted(maps.Keys(m)) {
			if !yield(key, m[key]) {
				return
			}
		}
	}
}

// SetMeta stores v under key for g using its fixed-size little-endian binary layout.
// T must be a fixed-size type as defined by encoding/binary: sized integers, floats,
// bools, and arrays or structs of those. Other types return ErrMetaLayout.
//
// Callers own the key to type mapping; reading a key back as a different type of the
// same size is not detected.
func SetMeta[T any](r *Registry, g gid.GID, key string, v T) error {
	if binary.Size(v) < 0 {
		return fmt.Errorf("%w: %T", ErrMetaLayout, v)
	}
	buf, err := binary.Append(nil, binary.LittleEndian, v)
	if err != nil {
		return fmt.Errorf("%w: %T: %v", ErrMetaLayout, v, err)
	}
	r.SetMetaRaw(g, key, buf)
	return nil
}

// GetMeta decodes the value stored under key for g as T. It returns false if the key is
// absent, if T has no fixed layout, or if the stored length differs from T's size.
func GetMeta[T any](r *Registry, g gid.GID, key string) (T, bool) {
	var v T
	raw, ok := r.meta[g][key]
	if !ok {
		return v, false
	}
	if size := binary.Size(v); size < 0 || size != len(raw) {
		return v, false
	}
	if _, err := binary.Decode(raw, binary.LittleEndian, &v); err != nil {
		var zero T
		return zero, false
	}
	return v, true
}
