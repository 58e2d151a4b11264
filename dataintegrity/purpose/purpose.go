/*
Copyright Gen Digital Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package purpose provides the proof purposes of data integrity proofs.
package purpose

import (
	"errors"
	"fmt"
	"time"

	"github.com/samber/lo"

	"github.com/trustbloc/dataintegrity-go/dataintegrity/models"
	"github.com/trustbloc/dataintegrity-go/dataintegrity/suite"
	utiltime "github.com/trustbloc/dataintegrity-go/util/time"
)

// Proof purpose terms.
const (
	AssertionMethod      = "assertionMethod"
	Authentication       = "authentication"
	CapabilityInvocation = "capabilityInvocation"
	CapabilityDelegation = "capabilityDelegation"
)

var (
	// ErrMismatchedPurpose is returned when a proof was created for another purpose.
	ErrMismatchedPurpose = errors.New("data integrity proof does not match expected purpose")
	// ErrOutOfDate is returned when a proof was created longer than the maximum age ago.
	ErrOutOfDate = errors.New("data integrity proof out of date")
	// ErrInvalidDomain is returned when a proof lacks the expected domain.
	ErrInvalidDomain = errors.New("data integrity proof has invalid domain")
	// ErrInvalidChallenge is returned when a proof lacks the expected challenge.
	ErrInvalidChallenge = errors.New("data integrity proof has invalid challenge")
	// ErrMissingChallenge is returned when an authentication proof is created without a challenge.
	ErrMissingChallenge = errors.New("authentication proof purpose requires a challenge")
)

// Purpose is a proof purpose identified by its term. It implements suite.Purpose.
type Purpose struct {
	term      string
	maxAge    time.Duration
	challenge string
	domain    string
}

var _ suite.Purpose = (*Purpose)(nil)

// Opt configures a Purpose.
type Opt func(p *Purpose)

// WithMaxAge makes Validate reject proofs created more than maxAge before the
// verification time. Proofs without "created" are rejected too.
func WithMaxAge(maxAge time.Duration) Opt {
	return func(p *Purpose) {
		p.maxAge = maxAge
	}
}

// WithDomain sets the domain a proof is created for, and expected to have.
func WithDomain(domain string) Opt {
	return func(p *Purpose) {
		p.domain = domain
	}
}

// WithChallenge sets the challenge a proof is created for, and expected to have.
func WithChallenge(challenge string) Opt {
	return func(p *Purpose) {
		p.challenge = challenge
	}
}

// New creates a purpose with the given term.
func New(term string, opts ...Opt) *Purpose {
	p := &Purpose{term: term}

	for _, opt := range opts {
		opt(p)
	}

	return p
}

// NewAssertionMethod creates the "assertionMethod" purpose, used for credentials.
func NewAssertionMethod(opts ...Opt) *Purpose {
	return New(AssertionMethod, opts...)
}

// NewAuthentication creates the "authentication" purpose, used for presentations.
// A challenge is required.
func NewAuthentication(challenge string, opts ...Opt) *Purpose {
	return New(Authentication, append([]Opt{WithChallenge(challenge)}, opts...)...)
}

// Term returns the purpose term.
func (p *Purpose) Term() string {
	return p.term
}

// Update sets proofPurpose and, when configured, challenge and domain.
func (p *Purpose) Update(proof models.Proof, _ *suite.PurposeOptions) (models.Proof, error) {
	if p.term == Authentication && p.challenge == "" {
		return nil, ErrMissingChallenge
	}

	proof[models.FieldProofPurpose] = p.term

	if p.challenge != "" {
		proof[models.FieldChallenge] = p.challenge
	}

	if p.domain != "" {
		proof[models.FieldDomain] = p.domain
	}

	return proof, nil
}

// Match reports whether the proof was created for this purpose.
func (p *Purpose) Match(proof models.Proof) bool {
	return proof.ProofPurpose() == p.term
}

// Validate checks the proof purpose, the challenge, the domain and the proof age.
func (p *Purpose) Validate(proof models.Proof, opts *suite.ValidateOptions) error {
	if !p.Match(proof) {
		return fmt.Errorf("%w: expected %q, got %q", ErrMismatchedPurpose, p.term, proof.ProofPurpose())
	}

	if p.challenge != "" && proof[models.FieldChallenge] != p.challenge {
		return ErrInvalidChallenge
	}

	if p.domain != "" && !hasDomain(proof, p.domain) {
		return ErrInvalidDomain
	}

	if p.maxAge > 0 {
		return p.checkAge(proof, opts)
	}

	return nil
}

func (p *Purpose) checkAge(proof models.Proof, opts *suite.ValidateOptions) error {
	created, ok := proof.Created()
	if !ok {
		return fmt.Errorf("%w: proof has no \"created\"", ErrOutOfDate)
	}

	t, err := utiltime.ParseDateTime(created)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrOutOfDate, err)
	}

	now := time.Now()
	if opts != nil && !opts.Now.IsZero() {
		now = opts.Now
	}

	if now.Sub(t) > p.maxAge {
		return ErrOutOfDate
	}

	return nil
}

// hasDomain accepts a domain given as a string or a list of strings.
func hasDomain(proof models.Proof, domain string) bool {
	switch d := proof[models.FieldDomain].(type) {
	case string:
		return d == domain
	case []interface{}:
		for _, v := range d {
			if v == domain {
				return true
			}
		}
	case []string:
		return lo.Contains(d, domain)
	}

	return false
}
