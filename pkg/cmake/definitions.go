package cmake

// Definitions is an ordered set of CMake cache entries, passed as -D NAME=VALUE.
// Setting an existing entry replaces its value and keeps its position.
// The zero value is ready to use.
type Definitions struct {
	names  []string
	values map[string]string
}

// Set sets the value of the entry with the given name.
func (d *Definitions) Set(name, value string) {
	if d.values == nil {
		d.values = make(map[string]string)
	}
	if _, ok := d.values[name]; !ok {
		d.names = append(d.names, name)
	}
	d.values[name] = value
}

// Get returns the value of the named entry.
func (d *Definitions) Get(name string) (string, bool) {
	v, ok := d.values[name]
	return v, ok
}

// Merge sets all the entries of other on d, in other's order.
func (d *Definitions) Merge(other Definitions) {
	other.Range(func(name, value string) {
		d.Set(name, value)
	})
}

// Range calls fn for every entry, in insertion order.
func (d *Definitions) Range(fn func(name, value string)) {
	for _, name := range d.names {
		fn(name, d.values[name])
	}
}

// Len returns the number of entries.
func (d *Definitions) Len() int {
	return len(d.names)
}

// Args renders the entries as command line arguments.
func (d *Definitions) Args() []string {
	out := make([]string, 0, 2*len(d.names))
	d.Range(func(name, value string) {
		out = append(out, "-D", name+"="+value)
	})
	return out
}
