package events

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/feral-file/ff-collection/internal/adapter"
	"github.com/feral-file/ff-collection/internal/domain"
)

// GenerateSignedPayload generates a signed webhook payload with an
// HMAC-SHA256 signature. The JSON body is canonicalized (RFC 8785) before
// signing so clients can re-serialize and verify regardless of field order.
// Returns the canonical JSON payload, signature header value and timestamp.
//
// Signature input: {timestamp}.{event_id}.{canonical_json}. The timestamp
// lets clients reject replays, the event id deduplicates deliveries.
func GenerateSignedPayload(secret string, event *domain.CollectionEvent, jsonAdapter adapter.JSON, jcsAdapter adapter.JCS, clock adapter.Clock) (payload []byte, signature string, timestamp int64, err error) {
	raw, err := jsonAdapter.Marshal(event)
	if err != nil {
		return nil, "", 0, fmt.Errorf("failed to marshal event: %w", err)
	}

	payload, err = jcsAdapter.Transform(raw)
	if err != nil {
		return nil, "", 0, fmt.Errorf("failed to canonicalize event: %w", err)
	}

	timestamp = clock.Now().Unix()
	signaturePayload := fmt.Sprintf("%d.%s.%s", timestamp, event.EventID, string(payload))

	h := hmac.New(sha256.New, []byte(secret))
	h.Write([]byte(signaturePayload))

	// Format: "sha256=<hex_signature>"
	signature = "sha256=" + hex.EncodeToString(h.Sum(nil))

	return payload, signature, timestamp, nil
}
