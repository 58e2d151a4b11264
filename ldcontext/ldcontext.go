/*
Copyright Gen Digital Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package ldcontext provides an in-memory JSON-LD document loader for contexts.
package ldcontext

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"sync"

	"github.com/hyperledger/aries-framework-go/component/log"
	"github.com/piprate/json-gold/ld"
	ldcontext "github.com/trustbloc/did-go/doc/ld/context"
)

var logger = log.New("ldcontext")

// ErrNotFound is returned for a URL which is neither preloaded nor served by a fallback loader.
var ErrNotFound = errors.New("JSON-LD document not found")

type pendingDocument struct {
	url     string
	doc     interface{}
	content []byte
}

type options struct {
	documents []pendingDocument
	fallback  ld.DocumentLoader
}

// Opt configures a DocumentLoader.
type Opt func(opts *options)

// WithDocument preloads a parsed JSON-LD document.
func WithDocument(url string, doc interface{}) Opt {
	return func(opts *options) {
		opts.documents = append(opts.documents, pendingDocument{url: url, doc: doc})
	}
}

// WithContexts preloads JSON-LD contexts given as JSON text.
func WithContexts(contexts ...ldcontext.Document) Opt {
	return func(opts *options) {
		for _, c := range contexts {
			opts.documents = append(opts.documents, pendingDocument{url: c.URL, content: c.Content})
		}
	}
}

// WithFallback sets the loader asked for URLs which aren't preloaded. Its documents are
// cached.
func WithFallback(loader ld.DocumentLoader) Opt {
	return func(opts *options) {
		opts.fallback = loader
	}
}

// WithNetworkFallback fetches unknown URLs over HTTP. A nil client means http.DefaultClient.
func WithNetworkFallback(client *http.Client) Opt {
	return WithFallback(ld.NewDefaultDocumentLoader(client))
}

// DocumentLoader implements ld.DocumentLoader. It is safe for concurrent use.
type DocumentLoader struct {
	mu    sync.Mutex
	cache *ld.CachingDocumentLoader
}

var _ ld.DocumentLoader = (*DocumentLoader)(nil)

// NewDocumentLoader creates a DocumentLoader.
func NewDocumentLoader(opts ...Opt) (*DocumentLoader, error) {
	o := &options{}

	for _, opt := range opts {
		opt(o)
	}

	var next ld.DocumentLoader = notFoundLoader{}
	if o.fallback != nil {
		next = o.fallback
	}

	l := &DocumentLoader{cache: ld.NewCachingDocumentLoader(next)}

	for _, d := range o.documents {
		doc := d.doc

		if d.content != nil {
			parsed, err := ld.DocumentFromReader(bytes.NewReader(d.content))
			if err != nil {
				return nil, fmt.Errorf("parse JSON-LD document %s: %w", d.url, err)
			}

			doc = parsed
		}

		l.cache.AddDocument(d.url, doc)
	}

	return l, nil
}

// AddDocument adds or replaces a document.
func (l *DocumentLoader) AddDocument(url string, doc interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.cache.AddDocument(url, doc)
}

// LoadDocument returns the document for url.
func (l *DocumentLoader) LoadDocument(url string) (*ld.RemoteDocument, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	doc, err := l.cache.LoadDocument(url)
	if err != nil {
		logger.Debugf("load JSON-LD document %s: %v", url, err)

		return nil, err
	}

	return doc, nil
}

type notFoundLoader struct{}

func (notFoundLoader) LoadDocument(url string) (*ld.RemoteDocument, error) {
	return nil, fmt.Errorf("%w: %s", ErrNotFound, url)
}
