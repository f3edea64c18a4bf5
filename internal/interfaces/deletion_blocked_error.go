package interfaces

import (
	"fmt"
	"sort"
	"strings"
)

// DeletionBlockedError is returned when rows in other tables still reference
// the resource being deleted.
type DeletionBlockedError struct {
	Resource   string
	References map[string]int64
}

func (e *DeletionBlockedError) Error() string {
	if len(e.References) == 0 {
		return "deletion blocked"
	}
	keys := make([]string, 0, len(e.References))
	for k := range e.References {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%d", k, e.References[k]))
	}
	return fmt.Sprintf("deletion of %s blocked by references: %s", e.Resource, strings.Join(parts, ", "))
}
