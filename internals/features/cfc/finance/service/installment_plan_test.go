package service

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	financeModel "autoescola_backend/internals/features/cfc/finance/model"
)

func TestBuildInstallmentPlan_SomaExata(t *testing.T) {
	studentID := uuid.New()
	enrollment := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)

	cases := []struct {
		name        string
		courseValue int64
		n           int
	}{
		{"divisao exata", 120000, 12},
		{"com sobra", 100000, 3},
		{"parcela unica", 250000, 1},
		{"valor quebrado", 99999, 7},
		{"maximo de parcelas", 480047, 48},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			plan, err := BuildInstallmentPlan(studentID, tc.courseValue, tc.n, enrollment)
			require.NoError(t, err)
			require.Len(t, plan, tc.n)

			var sum int64
			for _, inst := range plan {
				sum += inst.Amount
			}
			assert.Equal(t, tc.courseValue, sum)
		})
	}
}

func TestBuildInstallmentPlan_ExemploMilEmTres(t *testing.T) {
	// R$ 1.000,00 em 3x → 333,33 / 333,33 / 333,34
	studentID := uuid.New()
	enrollment := time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)

	plan, err := BuildInstallmentPlan(studentID, 100000, 3, enrollment)
	require.NoError(t, err)
	require.Len(t, plan, 3)

	assert.Equal(t, int64(33333), plan[0].Amount)
	assert.Equal(t, int64(33333), plan[1].Amount)
	assert.Equal(t, int64(33334), plan[2].Amount)
}

func TestBuildInstallmentPlan_Vencimentos(t *testing.T) {
	studentID := uuid.New()
	enrollment := time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)

	plan, err := BuildInstallmentPlan(studentID, 100000, 3, enrollment)
	require.NoError(t, err)

	// primeiro vencimento um mês após a matrícula, nunca no mesmo dia
	assert.Equal(t, time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC), plan[0].DueDate)
	assert.Equal(t, time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC), plan[1].DueDate)
	assert.Equal(t, time.Date(2026, 4, 10, 0, 0, 0, 0, time.UTC), plan[2].DueDate)

	for i, inst := range plan {
		assert.Equal(t, i+1, inst.InstallmentNumber)
		assert.Equal(t, financeModel.InstallmentPendente, inst.Status)
		assert.Equal(t, studentID, inst.StudentID)
	}
}

func TestBuildInstallmentPlan_EntradasInvalidas(t *testing.T) {
	studentID := uuid.New()
	now := time.Now()

	_, err := BuildInstallmentPlan(studentID, 0, 3, now)
	assert.ErrorIs(t, err, ErrInvalidCourseValue)

	_, err = BuildInstallmentPlan(studentID, -5000, 3, now)
	assert.ErrorIs(t, err, ErrInvalidCourseValue)

	_, err = BuildInstallmentPlan(studentID, 100000, 0, now)
	assert.ErrorIs(t, err, ErrInvalidInstallmentCount)

	_, err = BuildInstallmentPlan(studentID, 100000, 49, now)
	assert.ErrorIs(t, err, ErrInvalidInstallmentCount)
}
