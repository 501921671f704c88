// Package reflector derives stable names from Go types. The runtime uses it
// to tag actors whose creator did not pass an explicit name.
package reflector

import (
	"reflect"
	"sync"
)

var (
	muCache sync.RWMutex
	cache   = make(map[reflect.Type]TypeInfo)
)

// TypeInfo describes a type by name.
type TypeInfo struct {
	// Name is the fully qualified name, "pkgpath.Type".
	Name string
	// Short is the bare type name, "Type".
	Short string
	Type  reflect.Type
}

// TypeInfoOf resolves the type info for x, dereferencing pointers.
func TypeInfoOf(x any) TypeInfo {
	return TypeInfoForType(reflect.TypeOf(x))
}

// TypeInfoFor resolves the type info for T.
func TypeInfoFor[T any]() TypeInfo {
	return TypeInfoForType(reflect.TypeOf((*T)(nil)).Elem())
}

// TypeInfoForType resolves and caches the type info for t.
func TypeInfoForType(t reflect.Type) TypeInfo {
	muCache.RLock()
	ti, ok := cache[t]
	muCache.RUnlock()
	if ok {
		return ti
	}

	if t == nil {
		return TypeInfo{}
	}
	key := t
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	ti = TypeInfo{
		Name:  t.PkgPath() + "." + t.Name(),
		Short: t.Name(),
		Type:  t,
	}

	muCache.Lock()
	cache[key] = ti
	muCache.Unlock()
	return ti
}
