package config

// SecretStringValue must be exported - used in tests.
const SecretStringValue = "<secret>"

// SecretString is a type that should be used for fields that should not be
// visible in logs, dumps and debug reports (backend tokens).
type SecretString string

// Reveal returns actual value. Only transport code should ever call it.
func (s SecretString) Reveal() string {
	return string(s)
}

// IsSet reports whether secret has any value.
func (s SecretString) IsSet() bool {
	return len(s) > 0
}

// String implements fmt.Stringer so accidental formatting does not leak the value.
func (s SecretString) String() string {
	if len(s) == 0 {
		return ""
	}
	return SecretStringValue
}

// MarshalJSON marshals SecretString to JSON making sure that actual value is not visible.
func (s SecretString) MarshalJSON() ([]byte, error) {
	if len(s) == 0 {
		return []byte("null"), nil
	}
	return []byte("\"" + SecretStringValue + "\""), nil
}

// MarshalYAML marshals SecretString to YAML making sure that actual value is not visible.
func (s SecretString) MarshalYAML() (any, error) {
	if len(s) == 0 {
		return nil, nil
	}
	return SecretStringValue, nil
}
