/*
Copyright Gen Digital Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package proof

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"reflect"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/piprate/json-gold/ld"
	"golang.org/x/sync/errgroup"

	"github.com/trustbloc/dataintegrity-go/dataintegrity/models"
	"github.com/trustbloc/dataintegrity-go/dataintegrity/suite"
	jsonutil "github.com/trustbloc/dataintegrity-go/util/json"
)

// hashCache memoizes document hashes by a structural key of the document and the
// identity of the document loader used to canonicalize it, so that a document signed
// and then verified by the same engine with the same loader is canonicalized once.
type hashCache struct {
	entries *lru.Cache[string, []byte]
}

func newHashCache(size int) (*hashCache, error) {
	if size <= 0 {
		return nil, nil
	}

	entries, err := lru.New[string, []byte](size)
	if err != nil {
		return nil, err
	}

	return &hashCache{entries: entries}, nil
}

func (c *hashCache) get(key string) ([]byte, bool) {
	if c == nil || key == "" {
		return nil, false
	}

	return c.entries.Get(key)
}

func (c *hashCache) add(key string, hash []byte) {
	if c == nil || key == "" {
		return
	}

	c.entries.Add(key, hash)
}

// structuralKey is stable for structurally equal documents: encoding/json sorts map keys.
// It is empty when the loader has no identity, which disables caching for the call.
func structuralKey(doc models.Document, loader ld.DocumentLoader) string {
	loaderID, ok := loaderIdentity(loader)
	if !ok {
		return ""
	}

	b, err := json.Marshal(doc)
	if err != nil {
		return ""
	}

	sum := sha256.Sum256(b)

	return loaderID + "|" + hex.EncodeToString(sum[:])
}

// loaderIdentity names a loader by its dynamic type and address. Loaders held by value
// (structs, strings) have no address and are never cached.
func loaderIdentity(loader ld.DocumentLoader) (string, bool) {
	if loader == nil {
		return "nil", true
	}

	v := reflect.ValueOf(loader)

	switch v.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Chan, reflect.UnsafePointer:
		return fmt.Sprintf("%T@%x", loader, v.Pointer()), true
	default:
		return "", false
	}
}

// CreateVerifyData returns the bytes a proof signature is computed over:
// sha256(canonical proof options) followed by sha256(canonical document).
func (p *DataIntegrityProof) CreateVerifyData(req *suite.VerifyDataRequest) ([]byte, error) {
	var proofHash, docHash []byte

	g := new(errgroup.Group)

	g.Go(func() error {
		var err error

		proofHash, err = p.proofOptionsHash(req.Proof, req.DocumentLoader)

		return err
	})

	g.Go(func() error {
		var err error

		docHash, err = p.documentHash(req.Document, req.DocumentLoader)

		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	verifyData := make([]byte, 0, len(proofHash)+len(docHash))
	verifyData = append(verifyData, proofHash...)
	verifyData = append(verifyData, docHash...)

	return verifyData, nil
}

func (p *DataIntegrityProof) documentHash(doc models.Document, loader ld.DocumentLoader) ([]byte, error) {
	key := structuralKey(doc, loader)

	if hash, ok := p.hashes.get(key); ok {
		logger.Debugf("document hash cache hit")

		return hash, nil
	}

	c14nDoc, err := p.cryptosuite.Canonicalizer.Canonize(doc, &suite.CanonizeOptions{DocumentLoader: loader})
	if err != nil {
		return nil, fmt.Errorf("canonicalize document: %w", err)
	}

	hash := sha256Digest(c14nDoc)

	p.hashes.add(key, hash)

	return hash, nil
}

func (p *DataIntegrityProof) proofOptionsHash(proof models.Proof, loader ld.DocumentLoader) ([]byte, error) {
	c14nProof, err := p.cryptosuite.Canonicalizer.Canonize(p.proofOptions(proof), &suite.CanonizeOptions{
		DocumentLoader: loader,
		SkipExpansion:  false,
	})
	if err != nil {
		return nil, fmt.Errorf("canonicalize proof options: %w", err)
	}

	return sha256Digest(c14nProof), nil
}

// proofOptions is the proof without its value, in the suite context unless it has its own.
func (p *DataIntegrityProof) proofOptions(proof models.Proof) map[string]interface{} {
	opts := jsonutil.CopyExcept(proof, models.FieldProofValue)

	if _, ok := opts[models.FieldContext]; !ok {
		opts[models.FieldContext] = p.contextURL
	}

	return opts
}

func sha256Digest(s string) []byte {
	sum := sha256.Sum256([]byte(s))

	return sum[:]
}
