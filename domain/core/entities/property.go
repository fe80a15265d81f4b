package entities

// Property is a key/value pair owned by a concept or the model
type Property struct {
	Key   string
	Value string
}

// NewProperty creates a property
func NewProperty(key, value string) *Property {
	return &Property{Key: key, Value: value}
}

// Properties is an ordered property list. Keys may repeat.
type Properties struct {
	items []*Property
}

// NewProperties creates an empty list
func NewProperties() *Properties {
	return &Properties{}
}

// All returns the properties in order
func (p *Properties) All() []*Property {
	out := make([]*Property, len(p.items))
	copy(out, p.items)
	return out
}

// Len returns the number of properties
func (p *Properties) Len() int {
	return len(p.items)
}

// Get returns the first property with key, or nil
func (p *Properties) Get(key string) *Property {
	return p.Nth(key, 0)
}

// Nth returns the n-th (zero-based) property with key, or nil
func (p *Properties) Nth(key string, n int) *Property {
	for _, prop := range p.items {
		if prop.Key != key {
			continue
		}
		if n == 0 {
			return prop
		}
		n--
	}
	return nil
}

// Add appends a property
func (p *Properties) Add(prop *Property) {
	p.items = append(p.items, prop)
}

// Insert places prop at index; out-of-range indexes append
func (p *Properties) Insert(prop *Property, index int) {
	if index < 0 || index >= len(p.items) {
		p.items = append(p.items, prop)
		return
	}
	p.items = append(p.items, nil)
	copy(p.items[index+1:], p.items[index:])
	p.items[index] = prop
}

// Remove deletes prop (by identity) and returns its former index, or -1
func (p *Properties) Remove(prop *Property) int {
	for i, item := range p.items {
		if item == prop {
			p.items = append(p.items[:i], p.items[i+1:]...)
			return i
		}
	}
	return -1
}

// Clone deep-copies the list
func (p *Properties) Clone() *Properties {
	clone := &Properties{items: make([]*Property, len(p.items))}
	for i, prop := range p.items {
		clone.items[i] = &Property{Key: prop.Key, Value: prop.Value}
	}
	return clone
}
