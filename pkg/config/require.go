package config

import "log"

func MustNonEmpty(value, envName string) {
	if value == "" {
		log.Fatalf("missing required env %s", envName)
	}
}

func MustNonEmptyBytes(value []byte, envName string) {
	if len(value) == 0 {
		log.Fatalf("missing required env %s", envName)
	}
}

// MustOneOf fails when every value is empty.
func MustOneOf(values map[string]string) {
	names := make([]string, 0, len(values))
	for name, v := range values {
		if v != "" {
			return
		}
		names = append(names, name)
	}
	log.Fatalf("missing required env: one of %v", names)
}
