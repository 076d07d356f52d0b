package enums

import "fmt"

// FilterPolicy decides what happens to records that could only be repaired with defaults.
type FilterPolicy string

const (
	// FilterPolicyKeepWithDefaults keeps every record, defaulted fields included.
	FilterPolicyKeepWithDefaults FilterPolicy = "keep_with_defaults"
	// FilterPolicyDropMalformed drops records whose raw shape was not trustworthy
	// (non-object entry, missing or unparseable date).
	FilterPolicyDropMalformed FilterPolicy = "drop_malformed"
)

var validFilterPolicies = []FilterPolicy{
	FilterPolicyKeepWithDefaults,
	FilterPolicyDropMalformed,
}

// String implements fmt.Stringer.
func (p FilterPolicy) String() string {
	return string(p)
}

// IsValid reports whether the value is a known FilterPolicy.
func (p FilterPolicy) IsValid() bool {
	for _, candidate := range validFilterPolicies {
		if candidate == p {
			return true
		}
	}
	return false
}

// ParseFilterPolicy converts raw input into a FilterPolicy. Empty input selects the default.
func ParseFilterPolicy(value string) (FilterPolicy, error) {
	if value == "" {
		return FilterPolicyKeepWithDefaults, nil
	}
	for _, candidate := range validFilterPolicies {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid filter policy %q", value)
}
