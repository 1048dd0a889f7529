package helper

import (
	"fmt"
	"strings"
)

// Utilidades para documentos e formatos brasileiros.

// UnmaskDigits remove tudo que não é dígito (CPF, telefone, CEP mascarados)
func UnmaskDigits(value string) string {
	var b strings.Builder
	for _, r := range value {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// ValidateCPF confere os dois dígitos verificadores do CPF.
// Aceita valor mascarado ou só dígitos; sequências repetidas são inválidas.
func ValidateCPF(cpf string) bool {
	digits := UnmaskDigits(cpf)
	if len(digits) != 11 {
		return false
	}
	allSame := true
	for i := 1; i < 11; i++ {
		if digits[i] != digits[0] {
			allSame = false
			break
		}
	}
	if allSame {
		return false
	}

	sum := 0
	for i := 0; i < 9; i++ {
		sum += int(digits[i]-'0') * (10 - i)
	}
	rest := (sum * 10) % 11
	if rest == 10 {
		rest = 0
	}
	if rest != int(digits[9]-'0') {
		return false
	}

	sum = 0
	for i := 0; i < 10; i++ {
		sum += int(digits[i]-'0') * (11 - i)
	}
	rest = (sum * 10) % 11
	if rest == 10 {
		rest = 0
	}
	return rest == int(digits[10]-'0')
}

// FormatCentavosBRL formata um valor em centavos como "R$ 1.234,56"
func FormatCentavosBRL(centavos int64) string {
	neg := centavos < 0
	if neg {
		centavos = -centavos
	}
	reais := centavos / 100
	cents := centavos % 100

	intPart := fmt.Sprintf("%d", reais)
	var b strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteRune('.')
		}
		b.WriteRune(r)
	}

	sign := ""
	if neg {
		sign = "-"
	}
	return fmt.Sprintf("%sR$ %s,%02d", sign, b.String(), cents)
}
