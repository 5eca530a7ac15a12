package metadata

import (
	"encoding/base64"
	"fmt"

	"github.com/feral-file/ff-collection/internal/domain"
)

// TokenURIPrefix is the scheme prefix of every built token URI
const TokenURIPrefix = "data:application/json;base64,"

// BuildTokenURI serializes (name, description, image) into the JSON document
// {"name":"<n>","description":"<d>","image":"<i>"} with no whitespace, and
// wraps it as a base64 data URI. The output is deterministic: identical
// inputs always yield an identical URI.
//
// The fields are embedded verbatim. A double quote, backslash or control
// character in any field produces malformed JSON inside the URI. This
// mirrors the on-chain builders this service models, where the minting
// authority is trusted to supply JSON-safe text; callers wanting strict
// documents must escape before minting.
//
// The two empty checks duplicate ValidateFields for standalone callers that
// bypass the validator.
func BuildTokenURI(name, description, image string) (string, error) {
	if name == "" {
		return "", domain.ErrEmptyName
	}
	if image == "" {
		return "", domain.ErrEmptyImage
	}

	doc := fmt.Sprintf(`{"name":"%s","description":"%s","image":"%s"}`, name, description, image)
	return TokenURIPrefix + base64.StdEncoding.EncodeToString([]byte(doc)), nil
}
