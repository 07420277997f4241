/*
 * MIT License
 *
 * Copyright (c) 2024 Nicolas JUHEL
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 *
 */

package atomic

import (
	"reflect"
	"sync/atomic"
)

// boxed gives av a single concrete type to store regardless of what T is,
// so a Value[T] works even when T itself is an interface type.
type boxed[T any] struct {
	v T
}

// val is the internal implementation of Value[T] interface.
// It wraps sync/atomic.Value with type-safe operations and default value support.
type val[T any] struct {
	av *atomic.Value // boxed[T] value currently stored
	dl T              // default value for load
	ds T              // default value for store
}

// SetDefaultLoad configures the default value returned by Load when the atomic value is empty.
// This allows graceful handling of uninitialized values.
func (o *val[T]) SetDefaultLoad(def T) {
	o.dl = def
}

// SetDefaultStore configures the default value used to replace empty values in Store operations.
// This enables automatic substitution of zero/empty values with a meaningful default.
func (o *val[T]) SetDefaultStore(def T) {
	o.ds = def
}

// isZero reports whether v is the zero value of T.
func isZero[T any](v T) bool {
	var zero T
	return reflect.DeepEqual(v, zero)
}

// unbox recovers the T stored by av.Load()/av.Swap(), returning ok=false
// if nothing has been stored yet.
func unbox[T any](i any) (v T, ok bool) {
	b, k := i.(boxed[T])
	if !k {
		return v, false
	}
	return b.v, true
}

// Load retrieves the current value atomically.
// Returns the configured default load value if the atomic value is empty.
// This operation is lock-free and safe for concurrent access.
func (o *val[T]) Load() (val T) {
	if v, ok := unbox[T](o.av.Load()); ok {
		return v
	}
	return o.dl
}

// Store sets the value atomically.
// If the provided value is empty (its zero value), the configured default store value is used instead.
// This operation is lock-free and safe for concurrent access.
func (o *val[T]) Store(val T) {
	if isZero(val) {
		val = o.ds
	}
	o.av.Store(boxed[T]{v: val})
}

// Swap atomically stores the new value and returns the old value.
// If the new value is empty, the configured default store value is used instead.
// Returns the default load value if no value had been stored yet.
// This operation is lock-free and safe for concurrent access.
func (o *val[T]) Swap(new T) (old T) {
	if isZero(new) {
		new = o.ds
	}
	if v, ok := unbox[T](o.av.Swap(boxed[T]{v: new})); ok {
		return v
	}
	return o.dl
}

// CompareAndSwap atomically compares the current value with old and, if they match, stores new.
// Returns true if the swap was successful, false otherwise.
// Empty values for old or new are replaced with the configured default store value.
// This operation is lock-free and safe for concurrent access.
func (o *val[T]) CompareAndSwap(old, new T) (swapped bool) {
	if isZero(old) {
		old = o.ds
	}
	if isZero(new) {
		new = o.ds
	}
	return o.av.CompareAndSwap(boxed[T]{v: old}, boxed[T]{v: new})
}
