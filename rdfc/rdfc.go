/*
Copyright Gen Digital Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package rdfc canonicalizes JSON-LD documents with RDF Dataset Canonicalization
// (URDNA2015), producing N-Quads.
package rdfc

import (
	"errors"
	"fmt"

	"github.com/piprate/json-gold/ld"
	"github.com/trustbloc/did-go/doc/ld/processor"

	"github.com/trustbloc/dataintegrity-go/dataintegrity/suite"
)

// ErrCanonicalization is returned when a document can't be canonicalized.
var ErrCanonicalization = errors.New("rdf canonicalization failed")

type options struct {
	loader       ld.DocumentLoader
	validateRDF  bool
	removeInvRDF bool
}

// Opt configures a Canonicalizer.
type Opt func(opts *options)

// WithDocumentLoader sets the loader used for contexts when the caller passes none in
// suite.CanonizeOptions.
func WithDocumentLoader(loader ld.DocumentLoader) Opt {
	return func(opts *options) {
		opts.loader = loader
	}
}

// WithValidateRDF makes canonicalization fail if the document contains terms which
// are dropped during JSON-LD expansion.
func WithValidateRDF() Opt {
	return func(opts *options) {
		opts.validateRDF = true
	}
}

// WithRemoveAllInvalidRDF drops invalid RDF statements from the dataset.
func WithRemoveAllInvalidRDF() Opt {
	return func(opts *options) {
		opts.removeInvRDF = true
	}
}

// Canonicalizer implements suite.Canonicalizer.
type Canonicalizer struct {
	opts options
}

var _ suite.Canonicalizer = (*Canonicalizer)(nil)

// New returns a Canonicalizer.
func New(opts ...Opt) *Canonicalizer {
	c := &Canonicalizer{}

	for _, opt := range opts {
		opt(&c.opts)
	}

	return c
}

// Canonize returns the canonical N-Quads of doc. JSON-LD expansion is always performed,
// so CanonizeOptions.SkipExpansion has no effect.
func (c *Canonicalizer) Canonize(doc map[string]interface{}, opts *suite.CanonizeOptions) (string, error) {
	var processorOpts []processor.Opts

	loader := c.opts.loader
	if opts != nil && opts.DocumentLoader != nil {
		loader = opts.DocumentLoader
	}

	if loader != nil {
		processorOpts = append(processorOpts, processor.WithDocumentLoader(loader))
	}

	if c.opts.validateRDF {
		processorOpts = append(processorOpts, processor.WithValidateRDF())
	}

	if c.opts.removeInvRDF {
		processorOpts = append(processorOpts, processor.WithRemoveAllInvalidRDF())
	}

	out, err := processor.Default().GetCanonicalDocument(doc, processorOpts...)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrCanonicalization, err)
	}

	return string(out), nil
}
