package service

import (
	"errors"
	"math"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	financeModel "autoescola_backend/internals/features/cfc/finance/model"
)

const MaxInstallments = 48

var (
	ErrInvalidCourseValue      = errors.New("valor do curso deve ser maior que zero")
	ErrInvalidInstallmentCount = errors.New("quantidade de parcelas deve estar entre 1 e 48")
)

// BuildInstallmentPlan divide o valor do curso em n parcelas mensais.
// Parcelas 1..n-1 recebem o valor arredondado ao centavo; a última absorve
// a sobra para que a soma bata exatamente com courseValue.
// Primeiro vencimento é um mês após a matrícula, nunca no dia da matrícula.
func BuildInstallmentPlan(studentID uuid.UUID, courseValue int64, n int, enrollmentDate time.Time) ([]financeModel.InstallmentModel, error) {
	if courseValue <= 0 {
		return nil, ErrInvalidCourseValue
	}
	if n < 1 || n > MaxInstallments {
		return nil, ErrInvalidInstallmentCount
	}

	perInstallment := int64(math.Round(float64(courseValue) / float64(n)))
	lastInstallment := courseValue - perInstallment*int64(n-1)

	installments := make([]financeModel.InstallmentModel, 0, n)
	for i := 1; i <= n; i++ {
		amount := perInstallment
		if i == n {
			amount = lastInstallment
		}
		installments = append(installments, financeModel.InstallmentModel{
			StudentID:         studentID,
			InstallmentNumber: i,
			Amount:            amount,
			DueDate:           enrollmentDate.AddDate(0, i, 0),
			Status:            financeModel.InstallmentPendente,
		})
	}
	return installments, nil
}

// GenerateInstallments insere o plano em lote dentro da transação recebida.
// Chamado pelo cadastro de aluno: se o lote falhar, o aluno é revertido junto.
func GenerateInstallments(tx *gorm.DB, studentID uuid.UUID, courseValue int64, n int, enrollmentDate time.Time) error {
	installments, err := BuildInstallmentPlan(studentID, courseValue, n, enrollmentDate)
	if err != nil {
		return err
	}
	return tx.Create(&installments).Error
}
