// SPDX-License-Identifier: Apache-2.0

package contract

import (
	"fmt"
	"sync"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueyaml "cuelang.org/go/encoding/yaml"
)

// documentDef is the CUE definition every contract document must
// satisfy before the semantic rule checks run. Shape errors (missing
// keys, wrong value kinds) are caught here with CUE's own diagnostics.
const documentDef = `
#Field: {
	name:      string & !=""
	type:      "string" | "integer" | "decimal" | "date" | "clob" | "measurement"
	format?:   string
	nullable?: bool
	key?:      bool
	ordinal:   int & >=0
}

schema: string & !=""
globals?: {
	separator?: string
	decimal?:   string
	quote?:     string
}
fields: [#Field, ...#Field]
`

var (
	compileOnce sync.Once
	documentVal cue.Value
)

// validateShape checks the raw YAML document against documentDef.
func validateShape(data []byte) error {
	compileOnce.Do(func() {
		documentVal = cuecontext.New().CompileString(documentDef)
	})
	if err := documentVal.Err(); err != nil {
		return fmt.Errorf("compile contract definition: %w", err)
	}
	return cueyaml.Validate(data, documentVal)
}
