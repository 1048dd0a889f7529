package helper

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUnmaskDigits(t *testing.T) {
	assert.Equal(t, "11144477735", UnmaskDigits("111.444.777-35"))
	assert.Equal(t, "11987654321", UnmaskDigits("(11) 98765-4321"))
	assert.Equal(t, "", UnmaskDigits("abc"))
}

func TestValidateCPF(t *testing.T) {
	// CPFs com dígitos verificadores corretos
	assert.True(t, ValidateCPF("111.444.777-35"))
	assert.True(t, ValidateCPF("11144477735"))

	// dígito verificador errado
	assert.False(t, ValidateCPF("111.444.777-36"))
	// sequência repetida
	assert.False(t, ValidateCPF("111.111.111-11"))
	// tamanho errado
	assert.False(t, ValidateCPF("123"))
	assert.False(t, ValidateCPF(""))
}

func TestFormatCentavosBRL(t *testing.T) {
	assert.Equal(t, "R$ 0,00", FormatCentavosBRL(0))
	assert.Equal(t, "R$ 10,00", FormatCentavosBRL(1000))
	assert.Equal(t, "R$ 333,34", FormatCentavosBRL(33334))
	assert.Equal(t, "R$ 1.234,56", FormatCentavosBRL(123456))
	assert.Equal(t, "R$ 1.000.000,00", FormatCentavosBRL(100000000))
	assert.Equal(t, "-R$ 5,50", FormatCentavosBRL(-550))
}
