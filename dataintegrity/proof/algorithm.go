/*
Copyright Gen Digital Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package proof

import (
	"fmt"
	"strings"

	"github.com/samber/lo"
)

const (
	roleSigner   = "signer"
	roleVerifier = "verifier"
)

// CheckAlgorithm checks that algorithm is one of required. role names the party the
// algorithm belongs to ("signer" or "verifier") in the error message.
func CheckAlgorithm(role, algorithm string, required []string) error {
	if lo.Contains(required, algorithm) {
		return nil
	}

	if len(required) == 1 {
		return fmt.Errorf("%w: the %s's algorithm %q does not match the required algorithm for the cryptosuite %q",
			ErrAlgorithmMismatch, role, algorithm, required[0])
	}

	quoted := lo.Map(required, func(alg string, _ int) string {
		return fmt.Sprintf("%q", alg)
	})

	return fmt.Errorf("%w: the %s's algorithm %q is not a supported algorithm for the cryptosuite; "+
		"the supported algorithms are: %s", ErrAlgorithmMismatch, role, algorithm, strings.Join(quoted, ", "))
}
