/*
Copyright Gen Digital Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package proof

import (
	"fmt"

	"github.com/samber/lo"

	"github.com/trustbloc/dataintegrity-go/dataintegrity/models"
)

// EnsureSuiteContext makes sure doc declares the suite context, or the credentials v2
// context which includes it. If the context is missing it is appended when
// addSuiteContext is true, and an error is returned otherwise.
//
// This is the only operation of the engine that mutates a document.
func (p *DataIntegrityProof) EnsureSuiteContext(doc models.Document, addSuiteContext bool) error {
	if includesContext(doc, p.contextURL) || includesContext(doc, models.CredentialsV2Context) {
		return nil
	}

	if !addSuiteContext {
		return fmt.Errorf("%w: the document to be signed must contain this suite's @context, %q",
			ErrConfiguration, p.contextURL)
	}

	switch existing := doc[models.FieldContext].(type) {
	case nil:
		doc[models.FieldContext] = []interface{}{p.contextURL}
	case []interface{}:
		doc[models.FieldContext] = append(existing, p.contextURL)
	case []string:
		doc[models.FieldContext] = append(lo.ToAnySlice(existing), p.contextURL)
	default:
		doc[models.FieldContext] = []interface{}{existing, p.contextURL}
	}

	return nil
}

func includesContext(doc models.Document, contextURL string) bool {
	switch ctx := doc[models.FieldContext].(type) {
	case string:
		return ctx == contextURL
	case []interface{}:
		return lo.ContainsBy(ctx, func(c interface{}) bool {
			s, ok := c.(string)

			return ok && s == contextURL
		})
	case []string:
		return lo.Contains(ctx, contextURL)
	}

	return false
}
