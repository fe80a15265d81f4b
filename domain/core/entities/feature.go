package entities

import "strings"

// Feature is a string-keyed, string-valued metadata entry on the model
type Feature struct {
	Name  string
	Value string
}

// Features is the model's ordered feature bag. Names are unique.
type Features struct {
	items []*Feature
}

// NewFeatures creates an empty bag
func NewFeatures() *Features {
	return &Features{}
}

// Get returns the value stored under name
func (f *Features) Get(name string) (string, bool) {
	if feature := f.find(name); feature != nil {
		return feature.Value, true
	}
	return "", false
}

// Has reports whether name is present
func (f *Features) Has(name string) bool {
	return f.find(name) != nil
}

// Put sets name to value, appending when absent
func (f *Features) Put(name, value string) {
	if feature := f.find(name); feature != nil {
		feature.Value = value
		return
	}
	f.items = append(f.items, &Feature{Name: name, Value: value})
}

// All returns the features in order
func (f *Features) All() []*Feature {
	out := make([]*Feature, len(f.items))
	copy(out, f.items)
	return out
}

// Len returns the number of features
func (f *Features) Len() int {
	return len(f.items)
}

// WithPrefix returns the features whose name starts with prefix
func (f *Features) WithPrefix(prefix string) []*Feature {
	var out []*Feature
	for _, feature := range f.items {
		if strings.HasPrefix(feature.Name, prefix) {
			out = append(out, feature)
		}
	}
	return out
}

// RemoveAll removes the given features (by identity)
func (f *Features) RemoveAll(features []*Feature) {
	if len(features) == 0 {
		return
	}
	drop := make(map[*Feature]struct{}, len(features))
	for _, feature := range features {
		drop[feature] = struct{}{}
	}
	kept := f.items[:0]
	for _, feature := range f.items {
		if _, ok := drop[feature]; !ok {
			kept = append(kept, feature)
		}
	}
	for i := len(kept); i < len(f.items); i++ {
		f.items[i] = nil
	}
	f.items = kept
}

// AddAll appends features whose names are not already present
func (f *Features) AddAll(features []*Feature) {
	for _, feature := range features {
		if !f.Has(feature.Name) {
			f.items = append(f.items, feature)
		}
	}
}

func (f *Features) find(name string) *Feature {
	for _, feature := range f.items {
		if feature.Name == name {
			return feature
		}
	}
	return nil
}
