package validation

import "fmt"

// MaxNameLength is the longest accepted block or port name
const MaxNameLength = 128

// IsValidIdentifierChar checks if a character is valid for identifiers
// (alphanumeric, hyphen, or underscore).
//
// This function is used to validate block names, port names, and template
// pack names. It enforces a consistent naming convention across the
// application.
func IsValidIdentifierChar(ch rune) bool {
	return (ch >= 'a' && ch <= 'z') ||
		(ch >= 'A' && ch <= 'Z') ||
		(ch >= '0' && ch <= '9') ||
		ch == '-' || ch == '_'
}

// ValidateName checks a user-provided block, port, or pack display name.
// Names must be non-empty, within the length limit, and contain only
// identifier characters or spaces. Leading and trailing spaces are rejected.
func ValidateName(name string) error {
	if name == "" {
		return fmt.Errorf("name cannot be empty")
	}
	if len(name) > MaxNameLength {
		return fmt.Errorf("name exceeds %d characters", MaxNameLength)
	}
	if name[0] == ' ' || name[len(name)-1] == ' ' {
		return fmt.Errorf("name cannot start or end with a space: %q", name)
	}
	for _, ch := range name {
		if ch != ' ' && !IsValidIdentifierChar(ch) {
			return fmt.Errorf("name contains invalid character %q: %q", ch, name)
		}
	}
	return nil
}

// ValidatePackName checks a block pack name, which is stricter than a
// display name: no spaces, since pack names become file names.
func ValidatePackName(name string) error {
	if name == "" {
		return fmt.Errorf("pack name cannot be empty")
	}
	if len(name) > MaxNameLength {
		return fmt.Errorf("pack name exceeds %d characters", MaxNameLength)
	}
	for _, ch := range name {
		if !IsValidIdentifierChar(ch) {
			return fmt.Errorf("pack name contains invalid character %q: %q", ch, name)
		}
	}
	return nil
}
