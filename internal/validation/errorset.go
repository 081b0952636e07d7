// Package validation holds the field predicates shared by every booking form and
// the ErrorSet they report into.
package validation

import "sort"

// ErrorSet maps a field key (e.g. "contact.email", "adultDetails.0.age") to a
// human readable message. The first message recorded for a key wins.
type ErrorSet map[string]string

func (e ErrorSet) Add(field, msg string) {
	if _, ok := e[field]; ok {
		return
	}
	e[field] = msg
}

func (e ErrorSet) Merge(other ErrorSet) {
	for k, v := range other {
		e.Add(k, v)
	}
}

func (e ErrorSet) Empty() bool { return len(e) == 0 }

func (e ErrorSet) Has(field string) bool {
	_, ok := e[field]
	return ok
}

// Keys returns the failing fields in stable order.
func (e ErrorSet) Keys() []string {
	keys := make([]string, 0, len(e))
	for k := range e {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// First returns the message of the first key in sorted order, for summary banners.
func (e ErrorSet) First() string {
	keys := e.Keys()
	if len(keys) == 0 {
		return ""
	}
	return e[keys[0]]
}
