package auth

import (
	"encoding/json"
	"strconv"
	"strings"

	jwt "github.com/golang-jwt/jwt/v5"

	"github.com/poskit/pos-gateway/internal/domain"
)

// segmentParser only decodes base64url segments; it never verifies signatures.
var segmentParser = jwt.NewParser(jwt.WithPaddingAllowed())

// DecodeToken reads the payload of a compact token for display purposes.
//
// The signature is NOT verified. The result may drive navigation and role UI
// but must never be used to authorize anything: the backend verifies tokens.
// Malformed input yields (nil, false).
func DecodeToken(token string) (*domain.Identity, bool) {
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		return nil, false
	}

	payload, err := segmentParser.DecodeSegment(parts[1])
	if err != nil {
		return nil, false
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(payload, &fields); err != nil || fields == nil {
		return nil, false
	}

	identity := &domain.Identity{
		SubjectID: scalarString(fields["sub"]),
		Role:      domain.Role(scalarString(fields["role"])),
	}
	if raw, ok := fields["email"]; ok {
		var email string
		if json.Unmarshal(raw, &email) == nil {
			identity.Email = email
		}
	}
	if ts := numericDate(fields["iat"]); ts != nil {
		t := ts.Time
		identity.IssuedAt = &t
	}
	if ts := numericDate(fields["exp"]); ts != nil {
		t := ts.Time
		identity.ExpiresAt = &t
	}
	return identity, true
}

// scalarString accepts a JSON string or number and ignores anything else.
func scalarString(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if json.Unmarshal(raw, &s) == nil {
		return s
	}
	var n json.Number
	if json.Unmarshal(raw, &n) == nil {
		if i, err := n.Int64(); err == nil {
			return strconv.FormatInt(i, 10)
		}
		return n.String()
	}
	return ""
}

func numericDate(raw json.RawMessage) *jwt.NumericDate {
	if len(raw) == 0 {
		return nil
	}
	var ts jwt.NumericDate
	if err := ts.UnmarshalJSON(raw); err != nil {
		return nil
	}
	return &ts
}
