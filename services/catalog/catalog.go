// Package catalog holds the read-only destination/package catalog loaded
// once at startup. Lookups go through typed accessors so an unknown
// location and an unknown package stay distinct error paths.
package catalog

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"scoutai/utils"

	"go.uber.org/zap"
)

var (
	ErrUnknownLocation = errors.New("unknown location")
	ErrUnknownPackage  = errors.New("unknown package")
)

// Package is one bookable module within a destination.
type Package struct {
	Key       string  `json:"-"`
	Name      string  `json:"name"`
	Type      string  `json:"type"`
	Price     float64 `json:"price"`
	Capacity  int     `json:"capacity"`
	Itinerary string  `json:"itinerary"`
}

// Location is one destination together with its packages in declared order.
type Location struct {
	Key           string
	PolicySummary string
	FoodSummary   string

	packages map[string]Package
	order    []string
}

// Package resolves a package by key within this location.
func (l Location) Package(key string) (Package, error) {
	pkg, ok := l.packages[key]
	if !ok {
		return Package{}, fmt.Errorf("%w: %q in %q", ErrUnknownPackage, key, l.Key)
	}
	return pkg, nil
}

// Packages returns every package in declared order.
func (l Location) Packages() []Package {
	out := make([]Package, 0, len(l.order))
	for _, key := range l.order {
		out = append(out, l.packages[key])
	}
	return out
}

// Has reports whether a package key exists in this location.
func (l Location) Has(key string) bool {
	_, ok := l.packages[key]
	return ok
}

// Store is the immutable catalog of destinations.
type Store struct {
	locations map[string]Location
	order     []string
}

// Location resolves a destination by its catalog key.
func (s *Store) Location(key string) (Location, error) {
	loc, ok := s.locations[key]
	if !ok {
		return Location{}, fmt.Errorf("%w: %q", ErrUnknownLocation, key)
	}
	return loc, nil
}

// Keys returns every location key in declared order.
func (s *Store) Keys() []string {
	return append([]string(nil), s.order...)
}

// Locations returns every destination in declared order.
func (s *Store) Locations() []Location {
	out := make([]Location, 0, len(s.order))
	for _, key := range s.order {
		out = append(out, s.locations[key])
	}
	return out
}

// rawLocation mirrors the JSON catalog layout.
type rawLocation struct {
	Modules       map[string]Package `json:"modules"`
	PolicySummary string             `json:"policy_summary"`
	FoodSummary   string             `json:"food_summary"`
}

type rawCatalog struct {
	Destinations map[string]rawLocation `json:"destinations"`
}

// Load reads the catalog from a JSON file. A missing or unreadable file
// falls back to the compiled-in default catalog so the assistant can still
// answer availability questions.
func Load(path string) *Store {
	logger := utils.GetLogger()
	data, err := os.ReadFile(path)
	if err != nil {
		logger.Warn("catalog file not readable, using built-in catalog",
			zap.String("path", path), zap.Error(err))
		return Default()
	}
	store, err := Parse(data)
	if err != nil {
		logger.Warn("catalog file invalid, using built-in catalog",
			zap.String("path", path), zap.Error(err))
		return Default()
	}
	return store
}

// Parse builds a Store from raw catalog JSON, preserving the declared
// order of destinations and packages.
func Parse(data []byte) (*Store, error) {
	var raw rawCatalog
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}
	if len(raw.Destinations) == 0 {
		return nil, errors.New("catalog has no destinations")
	}

	// json.Unmarshal drops object key order, so recover it from the raw
	// bytes: availability rows must come out in declared order.
	locOrder, modOrders, err := objectKeyOrder(data)
	if err != nil {
		return nil, err
	}

	store := &Store{locations: make(map[string]Location, len(raw.Destinations))}
	for _, locKey := range locOrder {
		rawLoc := raw.Destinations[locKey]
		loc := Location{
			Key:           locKey,
			PolicySummary: rawLoc.PolicySummary,
			FoodSummary:   rawLoc.FoodSummary,
			packages:      make(map[string]Package, len(rawLoc.Modules)),
		}
		for _, modKey := range modOrders[locKey] {
			pkg := rawLoc.Modules[modKey]
			pkg.Key = modKey
			loc.packages[modKey] = pkg
			loc.order = append(loc.order, modKey)
		}
		store.locations[locKey] = loc
		store.order = append(store.order, locKey)
	}
	return store, nil
}

// objectKeyOrder walks the raw JSON and records the destination keys and,
// per destination, the module keys in the order they appear.
func objectKeyOrder(data []byte) ([]string, map[string][]string, error) {
	var top map[string]json.RawMessage
	if err := json.Unmarshal(data, &top); err != nil {
		return nil, nil, fmt.Errorf("failed to parse catalog: %w", err)
	}
	destRaw, ok := top["destinations"]
	if !ok {
		return nil, nil, errors.New("catalog missing destinations")
	}

	locOrder, locBodies, err := orderedObject(destRaw)
	if err != nil {
		return nil, nil, err
	}

	modOrders := make(map[string][]string, len(locOrder))
	for _, locKey := range locOrder {
		var locObj map[string]json.RawMessage
		if err := json.Unmarshal(locBodies[locKey], &locObj); err != nil {
			return nil, nil, fmt.Errorf("failed to parse destination %q: %w", locKey, err)
		}
		modRaw, ok := locObj["modules"]
		if !ok {
			continue
		}
		modOrder, _, err := orderedObject(modRaw)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to parse modules of %q: %w", locKey, err)
		}
		modOrders[locKey] = modOrder
	}
	return locOrder, modOrders, nil
}

// orderedObject decodes a JSON object token stream, returning its keys in
// source order along with each key's raw value.
func orderedObject(data json.RawMessage) ([]string, map[string]json.RawMessage, error) {
	var asMap map[string]json.RawMessage
	if err := json.Unmarshal(data, &asMap); err != nil {
		return nil, nil, err
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	if _, err := dec.Token(); err != nil { // opening brace
		return nil, nil, err
	}
	var order []string
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, nil, errors.New("unexpected token in catalog object")
		}
		order = append(order, key)
		// Skip the value.
		var skip json.RawMessage
		if err := dec.Decode(&skip); err != nil {
			return nil, nil, err
		}
	}
	return order, asMap, nil
}
