package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Status persistidos de uma parcela. "atrasada" nunca vai para o banco:
// é derivado na leitura quando pendente e vencida.
const (
	InstallmentPendente = "pendente"
	InstallmentPaga     = "paga"
	InstallmentAtrasada = "atrasada" // somente derivado
)

// Formas de pagamento aceitas no recebimento manual
var PaymentMethods = []string{
	"Dinheiro",
	"PIX",
	"Cartão de Crédito",
	"Cartão de Débito",
	"Boleto",
	"Transferência",
}

func ValidPaymentMethod(method string) bool {
	for _, m := range PaymentMethods {
		if m == method {
			return true
		}
	}
	return false
}

type InstallmentModel struct {
	ID                uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	StudentID         uuid.UUID  `gorm:"type:uuid;not null;index" json:"student_id"`
	InstallmentNumber int        `gorm:"not null" json:"installment_number"`
	Amount            int64      `gorm:"not null" json:"amount"` // centavos
	DueDate           time.Time  `gorm:"not null" json:"due_date"`
	Status            string     `gorm:"size:20;not null;default:pendente" json:"status"`
	PaidDate          *time.Time `json:"paid_date"`
	PaymentMethod     string     `gorm:"size:30" json:"payment_method"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (InstallmentModel) TableName() string {
	return "student_payments"
}

func (i *InstallmentModel) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// EffectiveStatus devolve "atrasada" para pendente vencida, sem mutar o registro
func (i *InstallmentModel) EffectiveStatus(today time.Time) string {
	if i.Status == InstallmentPendente && i.DueDate.Before(truncateToDay(today)) {
		return InstallmentAtrasada
	}
	return i.Status
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
