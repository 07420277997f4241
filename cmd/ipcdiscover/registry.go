/*
 * MIT License
 *
 * Copyright (c) 2025 Nicolas JUHEL
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
 */

package main

import (
	"net/netip"
	"sync"
)

// registryEntry is where a registered service answers.
type registryEntry struct {
	addr netip.Addr
	port uint16
}

// serviceRegistry is the daemon's in-memory name table: service name to
// ip:port. No persistence, matching the library's no-disk-state stance.
type serviceRegistry struct {
	mu       sync.RWMutex
	services map[string]registryEntry
}

func newServiceRegistry() *serviceRegistry {
	return &serviceRegistry{services: make(map[string]registryEntry)}
}

func (r *serviceRegistry) add(name string, addr netip.Addr, port uint16) {
	r.mu.Lock()
	r.services[name] = registryEntry{addr: addr, port: port}
	r.mu.Unlock()
}

func (r *serviceRegistry) remove(name string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.services[name]; !ok {
		return false
	}
	delete(r.services, name)
	return true
}

func (r *serviceRegistry) get(name string) (registryEntry, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.services[name]
	return e, ok
}
