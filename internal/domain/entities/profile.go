package entities

import "strings"

// Profile is the free-form onboarding questionnaire data stored on an account
type Profile map[string]interface{}

// Clone returns a shallow copy
func (p Profile) Clone() Profile {
	out := make(Profile, len(p))
	for k, v := range p {
		out[k] = v
	}
	return out
}

// Merge returns p overlaid with update. Keys absent from update are kept, so
// applying the same update twice yields the same profile.
func (p Profile) Merge(update Profile) Profile {
	out := p.Clone()
	for k, v := range update {
		out[k] = v
	}
	return out
}

// Has reports whether key holds a non-empty value
func (p Profile) Has(key string) bool {
	v, ok := p[key]
	if !ok {
		return false
	}
	return isPresent(v)
}

// String returns the trimmed string value of key, if it is a string
func (p Profile) String(key string) string {
	s, _ := p[key].(string)
	return strings.TrimSpace(s)
}

func isPresent(v interface{}) bool {
	switch val := v.(type) {
	case nil:
		return false
	case string:
		return strings.TrimSpace(val) != ""
	case bool:
		return val
	case []interface{}:
		return len(val) > 0
	case map[string]interface{}:
		return len(val) > 0
	case Profile:
		return len(val) > 0
	default:
		return true
	}
}
