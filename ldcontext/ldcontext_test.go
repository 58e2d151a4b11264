/*
Copyright Gen Digital Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package ldcontext_test

import (
	"errors"
	"sync"
	"testing"

	"github.com/piprate/json-gold/ld"
	"github.com/stretchr/testify/require"
	didldcontext "github.com/trustbloc/did-go/doc/ld/context"

	"github.com/trustbloc/dataintegrity-go/ldcontext"
)

const exampleURL = "https://example.com/context/v1"

var exampleContext = []byte(`{"@context": {"name": "http://schema.org/name"}}`)

type countingLoader struct {
	calls int
	err   error
}

func (c *countingLoader) LoadDocument(u string) (*ld.RemoteDocument, error) {
	c.calls++

	if c.err != nil {
		return nil, c.err
	}

	return &ld.RemoteDocument{DocumentURL: u, Document: map[string]interface{}{"@context": map[string]interface{}{}}}, nil
}

func TestDocumentLoader(t *testing.T) {
	t.Run("preloaded contexts", func(t *testing.T) {
		loader, err := ldcontext.NewDocumentLoader(
			ldcontext.WithContexts(didldcontext.Document{URL: exampleURL, Content: exampleContext}),
			ldcontext.WithDocument("https://example.com/other", map[string]interface{}{"@context": "x"}),
		)
		require.NoError(t, err)

		doc, err := loader.LoadDocument(exampleURL)
		require.NoError(t, err)
		require.Equal(t, exampleURL, doc.DocumentURL)
		require.Equal(t, map[string]interface{}{
			"@context": map[string]interface{}{"name": "http://schema.org/name"},
		}, doc.Document)

		doc, err = loader.LoadDocument("https://example.com/other")
		require.NoError(t, err)
		require.Equal(t, map[string]interface{}{"@context": "x"}, doc.Document)
	})

	t.Run("unknown URL", func(t *testing.T) {
		loader, err := ldcontext.NewDocumentLoader()
		require.NoError(t, err)

		_, err = loader.LoadDocument(exampleURL)
		require.ErrorIs(t, err, ldcontext.ErrNotFound)

		loader.AddDocument(exampleURL, map[string]interface{}{})

		_, err = loader.LoadDocument(exampleURL)
		require.NoError(t, err)
	})

	t.Run("fallback results are cached", func(t *testing.T) {
		fallback := &countingLoader{}

		loader, err := ldcontext.NewDocumentLoader(ldcontext.WithFallback(fallback))
		require.NoError(t, err)

		for i := 0; i < 3; i++ {
			doc, err := loader.LoadDocument(exampleURL)
			require.NoError(t, err)
			require.Equal(t, exampleURL, doc.DocumentURL)
		}

		require.Equal(t, 1, fallback.calls)
	})

	t.Run("fallback error", func(t *testing.T) {
		errExpected := errors.New("expected error")

		loader, err := ldcontext.NewDocumentLoader(ldcontext.WithFallback(&countingLoader{err: errExpected}))
		require.NoError(t, err)

		_, err = loader.LoadDocument(exampleURL)
		require.ErrorIs(t, err, errExpected)
	})

	t.Run("network fallback", func(t *testing.T) {
		loader, err := ldcontext.NewDocumentLoader(ldcontext.WithNetworkFallback(nil),
			ldcontext.WithContexts(didldcontext.Document{URL: exampleURL, Content: exampleContext}))
		require.NoError(t, err)

		_, err = loader.LoadDocument(exampleURL)
		require.NoError(t, err)
	})

	t.Run("invalid context JSON", func(t *testing.T) {
		_, err := ldcontext.NewDocumentLoader(
			ldcontext.WithContexts(didldcontext.Document{URL: exampleURL, Content: []byte("{")}))
		require.ErrorContains(t, err, "parse JSON-LD document "+exampleURL)
	})

	t.Run("concurrent use", func(t *testing.T) {
		loader, err := ldcontext.NewDocumentLoader(ldcontext.WithFallback(&countingLoader{}))
		require.NoError(t, err)

		var wg sync.WaitGroup

		errs := make(chan error, 8)

		for i := 0; i < 8; i++ {
			wg.Add(1)

			go func() {
				defer wg.Done()

				_, loadErr := loader.LoadDocument(exampleURL)
				errs <- loadErr
			}()
		}

		wg.Wait()
		close(errs)

		for loadErr := range errs {
			require.NoError(t, loadErr)
		}
	})
}
