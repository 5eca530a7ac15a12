package metadata_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/feral-file/ff-collection/internal/domain"
	"github.com/feral-file/ff-collection/internal/metadata"
)

func TestValidateFields(t *testing.T) {
	testCases := []struct {
		name        string
		tokenName   string
		description string
		image       string
		expectedErr error
	}{
		{
			name:      "valid fields",
			tokenName: "Item1",
			image:     "ipfs://img1",
		},
		{
			name:        "empty description is allowed",
			tokenName:   "Item1",
			description: "",
			image:       "ipfs://img1",
		},
		{
			name:      "name at the byte limit",
			tokenName: strings.Repeat("a", domain.MaxNameLength),
			image:     "ipfs://img1",
		},
		{
			name:        "description at the byte limit",
			tokenName:   "Item1",
			description: strings.Repeat("d", domain.MaxDescriptionLength),
			image:       "ipfs://img1",
		},
		{
			name:      "image at the byte limit",
			tokenName: "Item1",
			image:     strings.Repeat("i", domain.MaxImageURILength),
		},
		{
			name:        "empty name",
			tokenName:   "",
			image:       "ipfs://img1",
			expectedErr: domain.ErrEmptyName,
		},
		{
			name:        "empty image",
			tokenName:   "Item1",
			image:       "",
			expectedErr: domain.ErrEmptyImage,
		},
		{
			name:        "name one byte over",
			tokenName:   strings.Repeat("a", domain.MaxNameLength+1),
			image:       "ipfs://img1",
			expectedErr: domain.ErrNameTooLong,
		},
		{
			name:        "description one byte over",
			tokenName:   "Item1",
			description: strings.Repeat("d", domain.MaxDescriptionLength+1),
			image:       "ipfs://img1",
			expectedErr: domain.ErrDescriptionTooLong,
		},
		{
			name:        "image one byte over",
			tokenName:   "Item1",
			image:       strings.Repeat("i", domain.MaxImageURILength+1),
			expectedErr: domain.ErrImageURITooLong,
		},
		{
			name:        "empty name reported before length violations",
			tokenName:   "",
			description: strings.Repeat("d", domain.MaxDescriptionLength+1),
			image:       strings.Repeat("i", domain.MaxImageURILength+1),
			expectedErr: domain.ErrEmptyName,
		},
		{
			name:      "multibyte name measured in bytes",
			tokenName: strings.Repeat("é", domain.MaxNameLength/2+1),
			image:     "ipfs://img1",
			expectedErr: domain.ErrNameTooLong,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := metadata.ValidateFields(tc.tokenName, tc.description, tc.image)
			if tc.expectedErr != nil {
				assert.ErrorIs(t, err, tc.expectedErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
