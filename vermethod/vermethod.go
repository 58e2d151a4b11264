/*
Copyright Gen Digital Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package vermethod provides document loaders which resolve verification methods of
// data integrity proofs.
package vermethod

import (
	"errors"
	"fmt"
	"sync"

	"github.com/piprate/json-gold/ld"
)

// ErrNotFound is returned when a loader has no document for the requested URL.
var ErrNotFound = errors.New("verification method not found")

// StaticLoader serves verification methods kept in memory. A method is given either as
// a JSON object or as its JSON text.
type StaticLoader struct {
	mu      sync.RWMutex
	methods map[string]interface{}
}

// NewStaticLoader creates a StaticLoader with the given methods, keyed by id.
func NewStaticLoader(methods map[string]interface{}) *StaticLoader {
	l := &StaticLoader{methods: make(map[string]interface{}, len(methods))}

	for id, method := range methods {
		l.methods[id] = method
	}

	return l
}

// Add adds or replaces a verification method.
func (l *StaticLoader) Add(id string, method interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.methods[id] = method
}

// LoadDocument returns the verification method with the given id.
func (l *StaticLoader) LoadDocument(u string) (*ld.RemoteDocument, error) {
	l.mu.RLock()
	method, ok := l.methods[u]
	l.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, u)
	}

	return &ld.RemoteDocument{DocumentURL: u, Document: method}, nil
}
