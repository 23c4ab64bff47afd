// SPDX-License-Identifier: Apache-2.0

package vocab_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bocagrande/semmap/internal/vocab"
)

func TestCleanFragment(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"CLIENTES", "CLIENTES"},
		{"T_PACIENTES", "T_PACIENTES"},
		{"a b", "a%20b"},
		{"20/40", "20%2F40"},
		{"a\x1fb", "a%1Fb"},
		{"ñ", "%C3%B1"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, vocab.CleanFragment(tt.in), "input %q", tt.in)
	}
}

func TestIRIConstruction(t *testing.T) {
	assert.Equal(t, vocab.Namespace+"T_PACIENTES", vocab.ClassIRI("t_pacientes"))
	assert.Equal(t, vocab.Namespace+"NOMBRE", vocab.PropertyIRI("nombre"))
	assert.Equal(t, vocab.Namespace+"T_PACIENTES_1", vocab.IndividualIRI("T_PACIENTES", "1"))
}
