package main

import (
	"fmt"
	"strings"

	"judder/internal/cadence"
)

// parseKinds decodes --only values such as "skipped" or "Exact".
func parseKinds(names []string) ([]cadence.Kind, error) {
	var kinds []cadence.Kind
	for _, name := range names {
		name = strings.ToLower(strings.TrimSpace(name))
		if name == "" {
			continue
		}
		var k cadence.Kind
		if err := k.UnmarshalText([]byte(name)); err != nil {
			return nil, fmt.Errorf("--only: %w (want one of %s)", err, kindNames())
		}
		kinds = append(kinds, k)
	}
	return kinds, nil
}

func kindNames() string {
	kinds := cadence.Kinds()
	names := make([]string, len(kinds))
	for i, k := range kinds {
		names[i] = k.String()
	}
	return strings.Join(names, ", ")
}
