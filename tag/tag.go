// Package tag classifies behavior markers into families.
//
// A tag selects a behavior (a scale, an overflow policy, a rounding policy)
// for the value it is attached to. Family membership is established by
// registering the tag's concrete type, never by inspecting its value.
package tag

import (
	"reflect"
	"sync"

	"github.com/zeebo/errs"
)

// Error is the error class for this package.
var Error = errs.Class("tag")

// Family names a group of tags that can be reconciled with one another.
type Family string

// Families registered by this module.
const (
	Scale    Family = "scale"
	Overflow Family = "overflow"
	Rounding Family = "rounding"
)

func (f Family) String() string {
	return string(f)
}

// Tag is a behavior marker.
type Tag interface {
	Family() Family
	String() string
}

var (
	mu       sync.RWMutex
	registry = map[reflect.Type]Family{}
)

// Register records the concrete types of prototypes as members of family.
// Registering a type twice under the same family is a no-op.
func Register(family Family, prototypes ...Tag) (err error) {
	if family == "" {
		return Error.New("empty family")
	}

	mu.Lock()
	defer mu.Unlock()

	for _, p := range prototypes {
		if p == nil {
			return Error.New("nil prototype for family %q", family)
		}

		if p.Family() != family {
			return Error.New("%T reports family %q, registering as %q", p, p.Family(), family)
		}

		t := reflect.TypeOf(p)
		if !t.Comparable() {
			return Error.New("%T is not comparable", p)
		}

		if f, ok := registry[t]; ok && f != family {
			return Error.New("%T already registered as %q", p, f)
		}

		registry[t] = family
	}

	return nil
}

// MustRegister is like Register but panics on error. It is intended for use
// in package init.
func MustRegister(family Family, prototypes ...Tag) {
	err := Register(family, prototypes...)
	if err != nil {
		panic(err)
	}
}

// Lookup returns the family v's type was registered under.
func Lookup(v any) (f Family, ok bool) {
	if v == nil {
		return "", false
	}

	mu.RLock()
	defer mu.RUnlock()

	f, ok = registry[reflect.TypeOf(v)]

	return f, ok
}

// IsTag returns true if v's type was registered.
func IsTag(v any) bool {
	_, ok := Lookup(v)

	return ok
}

// SameFamily returns true when a and b are registered members of one family.
func SameFamily(a, b Tag) bool {
	fa, ok := Lookup(a)
	if !ok {
		return false
	}

	fb, ok := Lookup(b)
	if !ok {
		return false
	}

	return fa == fb
}

// Equal returns true when a and b are the same tag: same family and same
// parameters.
func Equal(a, b Tag) bool {
	return SameFamily(a, b) && a == b
}
