// Package id generates the opaque identifiers used as primary keys
// across all collections.
package id

import "github.com/rs/xid"

func Generate() string {
	return xid.New().String()
}
