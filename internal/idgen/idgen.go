// Package idgen hands out opaque identifiers for campaigns, leads and funnels.
package idgen

import "github.com/google/uuid"

// New returns a random identifier. Values carry no ordering.
func New() string {
	return uuid.New().String()
}
