package metadata

import (
	"encoding/base64"
	"errors"
	"net/url"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// DataURI is a parsed RFC 2397 data URI
type DataURI struct {
	// MimeType is the declared media type (defaults to text/plain when omitted)
	MimeType string
	// Base64 reports whether the payload was base64-encoded
	Base64 bool
	// DecodedData is the decoded payload bytes
	DecodedData []byte
	// DetectedMimeType is the media type sniffed from the decoded payload
	DetectedMimeType string
}

// ParseDataURI parses a data URI and sniffs the payload's actual media type.
// Used by the token read endpoints to surface what an embedded metadata URI
// actually contains, including URIs stored verbatim via mint-with-URI.
func ParseDataURI(dataURI string) (*DataURI, error) {
	if !strings.HasPrefix(dataURI, "data:") {
		return nil, errors.New("invalid data URI: must start with 'data:'")
	}

	rest := dataURI[len("data:"):]
	comma := strings.Index(rest, ",")
	if comma < 0 {
		return nil, errors.New("invalid data URI format: missing comma separator")
	}

	meta := rest[:comma]
	payload := rest[comma+1:]

	isBase64 := false
	if strings.HasSuffix(meta, ";base64") {
		isBase64 = true
		meta = strings.TrimSuffix(meta, ";base64")
	}

	mimeType := strings.Split(meta, ";")[0]
	if mimeType == "" {
		mimeType = "text/plain"
	}

	var data []byte
	var err error
	if isBase64 {
		data, err = base64.StdEncoding.DecodeString(payload)
		if err != nil {
			return nil, errors.New("invalid data URI: malformed base64 data")
		}
	} else {
		decoded, err := url.QueryUnescape(payload)
		if err != nil {
			return nil, errors.New("invalid data URI: malformed percent encoding")
		}
		data = []byte(decoded)
	}

	if len(data) == 0 {
		return nil, errors.New("invalid data URI: empty data")
	}

	return &DataURI{
		MimeType:         strings.ToLower(strings.TrimSpace(mimeType)),
		Base64:           isBase64,
		DecodedData:      data,
		DetectedMimeType: mimetype.Detect(data).String(),
	}, nil
}

// IsDataURI reports whether a stored token URI is an embedded data URI as
// opposed to an external locator
func IsDataURI(uri string) bool {
	return strings.HasPrefix(uri, "data:")
}
