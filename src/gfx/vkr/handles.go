// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package vkr

import "sync"

// handleTable hands out uint64 handles for native objects. The same native
// object always maps to the same handle while it is in the table, so devices
// and swapchain images can be enumerated repeatedly.
type handleTable struct {
	mu      sync.Mutex
	next    uint64
	objects map[uint64]interface{}
	ids     map[interface{}]uint64
}

func newHandleTable() *handleTable {
	return &handleTable{
		objects: make(map[uint64]interface{}),
		ids:     make(map[interface{}]uint64),
	}
}

func (t *handleTable) put(obj interface{}) uint64 {
	t.mu.Lock()
	defer t.mu.Unlock()

	if id, ok := t.ids[obj]; ok {
		return id
	}
	t.next++
	t.objects[t.next] = obj
	t.ids[obj] = t.next
	return t.next
}

func (t *handleTable) get(id uint64) interface{} {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.objects[id]
}

// drop forgets the object and returns it, nil if the handle is unknown.
func (t *handleTable) drop(id uint64) interface{} {
	t.mu.Lock()
	defer t.mu.Unlock()

	obj, ok := t.objects[id]
	if !ok {
		return nil
	}
	delete(t.objects, id)
	delete(t.ids, obj)
	return obj
}

func (t *handleTable) len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.objects)
}
