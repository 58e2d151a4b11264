/*
Copyright Gen Digital Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package vermethod

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/multiformats/go-multibase"
	"github.com/piprate/json-gold/ld"
	"github.com/trustbloc/did-go/doc/did"
	vdrapi "github.com/trustbloc/did-go/vdr/api"
	"github.com/trustbloc/kms-go/doc/util/fingerprint"
)

const (
	resolveDIDParts = 2
	didPrefix       = "did:"

	ed25519KeySize        = 32
	p256CompressedSize    = 33
	p256UncompressedSize  = 65
	p384CompressedSize    = 49
	p384UncompressedSize  = 97
	multikeyType          = "Multikey"
	ed25519MultikeyPrefix = "\xed\x01"
)

// DIDResolver resolves DIDs, e.g. a did-go vdr.Registry.
type DIDResolver interface {
	Resolve(did string, opts ...vdrapi.DIDMethodOption) (*did.DocResolution, error)
}

// VDRLoader resolves DID URL verification methods with a DID resolver and renders
// them as JSON objects. Other URLs are loaded with the next loader.
type VDRLoader struct {
	vdr  DIDResolver
	next ld.DocumentLoader
}

// NewVDRLoader creates VDRLoader. next may be nil.
func NewVDRLoader(vdr DIDResolver, next ld.DocumentLoader) *VDRLoader {
	return &VDRLoader{vdr: vdr, next: next}
}

// LoadDocument loads the document with the given URL.
func (l *VDRLoader) LoadDocument(u string) (*ld.RemoteDocument, error) {
	if !strings.HasPrefix(u, didPrefix) {
		if l.next == nil {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, u)
		}

		return l.next.LoadDocument(u)
	}

	method, err := l.ResolveVerificationMethod(u)
	if err != nil {
		return nil, err
	}

	return &ld.RemoteDocument{DocumentURL: u, Document: method}, nil
}

// ResolveVerificationMethod resolves the DID of a verification method id and returns the
// method as a JSON object with "publicKeyJwk" or "publicKeyMultibase".
func (l *VDRLoader) ResolveVerificationMethod(verificationMethod string) (map[string]interface{}, error) {
	idSplit := strings.Split(verificationMethod, "#")
	if len(idSplit) != resolveDIDParts {
		return nil, fmt.Errorf("wrong id %s to resolve", idSplit)
	}

	methodDID, keyID := idSplit[0], fmt.Sprintf("#%s", idSplit[1])

	docResolution, err := l.vdr.Resolve(methodDID)
	if err != nil {
		return nil, fmt.Errorf("resolve DID %s: %w", methodDID, err)
	}

	if docResolution == nil || docResolution.DIDDocument == nil {
		return nil, fmt.Errorf("%w: DID %s has no document", ErrNotFound, methodDID)
	}

	for _, verifications := range docResolution.DIDDocument.VerificationMethods() {
		for _, verification := range verifications {
			if strings.HasSuffix(verification.VerificationMethod.ID, keyID) &&
				verification.Relationship != did.KeyAgreement {
				vm := verification.VerificationMethod

				return render(verificationMethod, methodDID, &vm)
			}
		}
	}

	return nil, fmt.Errorf("%w: public key with KID %s is not found for DID %s", ErrNotFound, keyID, methodDID)
}

func render(id, controller string, vm *did.VerificationMethod) (map[string]interface{}, error) {
	method := map[string]interface{}{
		"id":         id,
		"type":       vm.Type,
		"controller": controller,
	}

	if vm.Controller != "" {
		method["controller"] = vm.Controller
	}

	if key := vm.JSONWebKey(); key != nil {
		jwkBytes, err := json.Marshal(key)
		if err != nil {
			return nil, fmt.Errorf("marshal public key JWK: %w", err)
		}

		var jwkObj map[string]interface{}

		if err = json.Unmarshal(jwkBytes, &jwkObj); err != nil {
			return nil, fmt.Errorf("unmarshal public key JWK: %w", err)
		}

		method["publicKeyJwk"] = jwkObj

		return method, nil
	}

	keyMultibase, err := multikey(vm.Type, vm.Value)
	if err != nil {
		return nil, err
	}

	method["publicKeyMultibase"] = keyMultibase

	return method, nil
}

// multikey encodes a raw public key as a multibase multicodec key.
func multikey(keyType string, value []byte) (string, error) {
	if keyType == multikeyType && bytes.HasPrefix(value, []byte(ed25519MultikeyPrefix)) &&
		len(value) == len(ed25519MultikeyPrefix)+ed25519KeySize {
		return multibase.Encode(multibase.Base58BTC, value)
	}

	switch len(value) {
	case ed25519KeySize:
		return fingerprint.KeyFingerprint(fingerprint.ED25519PubKeyMultiCodec, value), nil
	case p256CompressedSize, p256UncompressedSize:
		return fingerprint.KeyFingerprint(fingerprint.P256PubKeyMultiCodec, value), nil
	case p384CompressedSize, p384UncompressedSize:
		return fingerprint.KeyFingerprint(fingerprint.P384PubKeyMultiCodec, value), nil
	default:
		return "", fmt.Errorf("unsupported %s public key of %d bytes", keyType, len(value))
	}
}
