package metadata

import (
	"github.com/feral-file/ff-collection/internal/domain"
)

// ValidateFields checks the raw metadata fields supplied to a mint.
// Lengths are measured in bytes of the UTF-8 encoding. Description may be
// empty; name and image may not. Pure predicate, no side effects.
func ValidateFields(name, description, image string) error {
	if name == "" {
		return domain.ErrEmptyName
	}
	if image == "" {
		return domain.ErrEmptyImage
	}
	if len(name) > domain.MaxNameLength {
		return domain.ErrNameTooLong
	}
	if len(description) > domain.MaxDescriptionLength {
		return domain.ErrDescriptionTooLong
	}
	if len(image) > domain.MaxImageURILength {
		return domain.ErrImageURITooLong
	}
	return nil
}
