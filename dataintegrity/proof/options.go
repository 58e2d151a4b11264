/*
Copyright Gen Digital Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package proof

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/trustbloc/dataintegrity-go/dataintegrity/models"
	"github.com/trustbloc/dataintegrity-go/dataintegrity/suite"
	utiltime "github.com/trustbloc/dataintegrity-go/util/time"
)

const (
	// DefaultMaxClockSkew is the default tolerance for proofs created in the future.
	DefaultMaxClockSkew = 300 * time.Second
	// DefaultHashCacheSize is the default number of document hashes kept by an engine.
	DefaultHashCacheSize = 16
)

type dateMode int

const (
	dateNow dateMode = iota
	dateFixed
	dateNone
)

type options struct {
	signer        suite.Signer
	dateMode      dateMode
	date          time.Time
	dateErr       error
	legacyContext bool
	maxClockSkew  time.Duration
	template      models.Proof
	hashCacheSize int
	clock         func() time.Time
	proofID       func() string
}

// Opt configures a DataIntegrityProof.
type Opt func(opts *options)

// WithSigner sets the signer used by CreateProof. Its algorithm must be one the
// cryptosuite requires, and its id becomes proof.verificationMethod.
func WithSigner(signer suite.Signer) Opt {
	return func(opts *options) {
		opts.signer = signer
	}
}

// WithDate fixes proof.created for every proof the engine creates.
func WithDate(date time.Time) Opt {
	return func(opts *options) {
		opts.dateMode = dateFixed
		opts.date = date
	}
}

// WithDateString is WithDate for a date-time string.
func WithDateString(date string) Opt {
	return func(opts *options) {
		t, err := utiltime.ParseDateTime(date)
		if err != nil {
			opts.dateErr = fmt.Errorf("%w: %q is not a valid date: %w", ErrConfiguration, date, err)

			return
		}

		opts.dateMode = dateFixed
		opts.date = t
	}
}

// WithoutDate suppresses proof.created.
func WithoutDate() Opt {
	return func(opts *options) {
		opts.dateMode = dateNone
	}
}

// WithLegacyContext makes the engine use the data integrity v1 context instead of v2.
func WithLegacyContext() Opt {
	return func(opts *options) {
		opts.legacyContext = true
	}
}

// WithMaxClockSkew sets how far in the future proof.created may be.
func WithMaxClockSkew(skew time.Duration) Opt {
	return func(opts *options) {
		opts.maxClockSkew = skew
	}
}

// WithProofTemplate sets a draft proof, which CreateProof starts from.
func WithProofTemplate(proof models.Proof) Opt {
	return func(opts *options) {
		opts.template = proof
	}
}

// WithHashCacheSize bounds the document hash cache. Zero disables caching.
func WithHashCacheSize(size int) Opt {
	return func(opts *options) {
		opts.hashCacheSize = size
	}
}

// WithClock sets the source of the current time.
func WithClock(clock func() time.Time) Opt {
	return func(opts *options) {
		opts.clock = clock
	}
}

// WithProofIDGenerator makes CreateProof set proof.id, so that later proofs can chain to it.
func WithProofIDGenerator(gen func() string) Opt {
	return func(opts *options) {
		opts.proofID = gen
	}
}

// WithUUIDProofIDs makes CreateProof set proof.id to a "urn:uuid:" URN.
func WithUUIDProofIDs() Opt {
	return WithProofIDGenerator(func() string {
		return uuid.New().URN()
	})
}
