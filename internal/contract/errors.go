// SPDX-License-Identifier: Apache-2.0

package contract

import "fmt"

// SchemaError reports a structurally invalid contract document. It is
// fatal: no partial schema is ever returned and no record processing
// starts after one is raised.
type SchemaError struct {
	SchemaID string
	Field    string
	Rule     string
	Detail   string
}

func (e *SchemaError) Error() string {
	where := e.SchemaID
	if e.Field != "" {
		where = where + "." + e.Field
	}
	if e.Detail == "" {
		return fmt.Sprintf("schema %s: %s", where, e.Rule)
	}
	return fmt.Sprintf("schema %s: %s: %s", where, e.Rule, e.Detail)
}
