package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
)

// Field is one named value of a Record.
type Field struct {
	Name  string
	Value Value
}

// Record is an ordered mapping from field name to Value. Records are not
// mutated once handed to a validator.
type Record struct {
	names  []string
	values map[string]Value
}

// Batch is the ordered sequence of records scored together.
type Batch []Record

// NewRecord builds a record from fields in order. A repeated name keeps its
// first position and takes the last value.
func NewRecord(fields ...Field) Record {
	r := Record{values: make(map[string]Value, len(fields))}
	for _, f := range fields {
		r.set(f.Name, f.Value)
	}
	return r
}

// RecordFromMap builds a record from a plain map. Map iteration order is
// random, so fields are ordered by name.
func RecordFromMap(m map[string]any) Record {
	names := make([]string, 0, len(m))
	for k := range m {
		names = append(names, k)
	}
	sort.Strings(names)
	r := Record{values: make(map[string]Value, len(m))}
	for _, k := range names {
		r.set(k, FromAny(m[k]))
	}
	return r
}

func (r *Record) set(name string, v Value) {
	if r.values == nil {
		r.values = make(map[string]Value)
	}
	if _, ok := r.values[name]; !ok {
		r.names = append(r.names, name)
	}
	r.values[name] = v
}

// Get returns the field value and whether the field is present at all.
// A present field may still hold Null.
func (r Record) Get(name string) (Value, bool) {
	v, ok := r.values[name]
	return v, ok
}

func (r Record) Has(name string) bool {
	_, ok := r.values[name]
	return ok
}

// Fields returns the field names in insertion order.
func (r Record) Fields() []string {
	out := make([]string, len(r.names))
	copy(out, r.names)
	return out
}

func (r Record) Len() int { return len(r.names) }

// Without returns a copy of the record minus the named fields.
func (r Record) Without(names ...string) Record {
	skip := make(map[string]bool, len(names))
	for _, n := range names {
		skip[n] = true
	}
	out := Record{values: make(map[string]Value, len(r.names))}
	for _, n := range r.names {
		if !skip[n] {
			out.set(n, r.values[n])
		}
	}
	return out
}

func (r Record) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, n := range r.names {
		if i > 0 {
			buf.WriteByte(',')
		}
		kb, err := json.Marshal(n)
		if err != nil {
			return nil, err
		}
		vb, err := r.values[n].MarshalJSON()
		if err != nil {
			return nil, err
		}
		buf.Write(kb)
		buf.WriteByte(':')
		buf.Write(vb)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes a JSON object keeping its key order.
func (r *Record) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("record must be a JSON object, got %v", tok)
	}

	out := Record{values: make(map[string]Value)}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		name, ok := tok.(string)
		if !ok {
			return fmt.Errorf("unexpected record key %v", tok)
		}
		var raw any
		if err := dec.Decode(&raw); err != nil {
			return fmt.Errorf("decoding field %q: %w", name, err)
		}
		out.set(name, FromAny(raw))
	}
	if _, err := dec.Token(); err != nil {
		return err
	}

	*r = out
	return nil
}
