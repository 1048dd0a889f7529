package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	TransactionReceita = "receita"
	TransactionDespesa = "despesa"
)

func ValidTransactionType(t string) bool {
	return t == TransactionReceita || t == TransactionDespesa
}

// Lançamento avulso do caixa, independente de alunos e parcelas
type TransactionModel struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Type          string    `gorm:"size:10;not null;index" json:"type"`
	Category      string    `gorm:"size:50;not null" json:"category"`
	Description   string    `gorm:"size:255" json:"description"`
	Amount        int64     `gorm:"not null" json:"amount"` // centavos
	Date          time.Time `gorm:"not null;index" json:"date"`
	PaymentMethod string    `gorm:"size:30" json:"payment_method"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (TransactionModel) TableName() string {
	return "transactions"
}

func (t *TransactionModel) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}
