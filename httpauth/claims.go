package httpauth

import "github.com/go-adauth/adauth/directory"

// Claim types emitted by ClaimsFor.
const (
	ClaimTypeSID         = "sid"
	ClaimTypeName        = "name"
	ClaimTypeDisplayName = "display_name"
	ClaimTypeRole        = "role"
)

// Claim is a single typed assertion about an authenticated identity.
type Claim struct {
	Type  string
	Value string
}

// ClaimsFor projects an identity into a flat claim list: SID, username,
// display name, and one role claim per group. Downstream consumers decide
// what the claims mean; no authorization policy is applied here.
func ClaimsFor(identity *directory.Identity) []Claim {
	if identity == nil {
		return nil
	}

	claims := make([]Claim, 0, 3+len(identity.Groups))
	claims = append(claims,
		Claim{Type: ClaimTypeSID, Value: identity.SID},
		Claim{Type: ClaimTypeName, Value: identity.Username},
		Claim{Type: ClaimTypeDisplayName, Value: identity.DisplayName},
	)
	for _, group := range identity.Groups {
		claims = append(claims, Claim{Type: ClaimTypeRole, Value: group})
	}

	return claims
}
