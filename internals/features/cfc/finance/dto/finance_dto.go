package dto

import "time"

type MarkPaidRequest struct {
	PaymentMethod string     `json:"payment_method" validate:"required"`
	PaidDate      *time.Time `json:"paid_date"`
}

type UpdateInstallmentRequest struct {
	Amount  *int64     `json:"amount" validate:"omitempty,gt=0"`
	DueDate *time.Time `json:"due_date"`
}

type InstallmentResponse struct {
	ID                string     `json:"id"`
	StudentID         string     `json:"student_id"`
	StudentName       string     `json:"student_name,omitempty"`
	InstallmentNumber int        `json:"installment_number"`
	Amount            int64      `json:"amount"`
	AmountFormatted   string     `json:"amount_formatted"`
	DueDate           time.Time  `json:"due_date"`
	Status            string     `json:"status"` // pode ser "atrasada" derivado
	PaidDate          *time.Time `json:"paid_date"`
	PaymentMethod     string     `json:"payment_method,omitempty"`
}

type CreateTransactionRequest struct {
	Type          string    `json:"type" validate:"required,oneof=receita despesa"`
	Category      string    `json:"category" validate:"required,max=50"`
	Description   string    `json:"description" validate:"max=255"`
	Amount        int64     `json:"amount" validate:"required,gt=0"`
	Date          time.Time `json:"date" validate:"required"`
	PaymentMethod string    `json:"payment_method"`
}

type UpdateTransactionRequest struct {
	Type          *string    `json:"type" validate:"omitempty,oneof=receita despesa"`
	Category      *string    `json:"category" validate:"omitempty,max=50"`
	Description   *string    `json:"description" validate:"omitempty,max=255"`
	Amount        *int64     `json:"amount" validate:"omitempty,gt=0"`
	Date          *time.Time `json:"date"`
	PaymentMethod *string    `json:"payment_method"`
}
