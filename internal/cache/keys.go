package cache

import "fmt"

// OrgKey is the cache key for an organization's settings record. Everything
// that mutates an organization must Del this key.
func OrgKey(id uint) string {
	return fmt.Sprintf("org:%d", id)
}
