package controller

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"

	financeModel "autoescola_backend/internals/features/cfc/finance/model"
	helper "autoescola_backend/internals/helpers"
)

type ExportController struct {
	DB *gorm.DB
}

func NewExportController(db *gorm.DB) *ExportController {
	return &ExportController{DB: db}
}

// Export gera uma planilha XLSX com os lançamentos e as parcelas,
// para conferência contábil fora do sistema.
func (ctrl *ExportController) Export(c *fiber.Ctx) error {
	now := time.Now()

	var transactions []financeModel.TransactionModel
	if err := ctrl.DB.Order("date ASC").Find(&transactions).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Falha ao carregar lançamentos")
	}

	type installmentRow struct {
		financeModel.InstallmentModel
		StudentName string `gorm:"column:student_name"`
	}
	var installments []installmentRow
	if err := ctrl.DB.Table("student_payments").
		Select("student_payments.*, students.full_name AS student_name").
		Joins("JOIN students ON students.id = student_payments.student_id").
		Order("student_payments.due_date ASC").
		Scan(&installments).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Falha ao carregar parcelas")
	}

	f := excelize.NewFile()
	defer f.Close()

	txSheet := "Lançamentos"
	f.SetSheetName("Sheet1", txSheet)
	txHeaders := []string{"Data", "Tipo", "Categoria", "Descrição", "Valor", "Forma de Pagamento"}
	for i, h := range txHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(txSheet, cell, h)
	}
	for r, tx := range transactions {
		row := r + 2
		f.SetCellValue(txSheet, fmt.Sprintf("A%d", row), tx.Date.Format("02/01/2006"))
		f.SetCellValue(txSheet, fmt.Sprintf("B%d", row), tx.Type)
		f.SetCellValue(txSheet, fmt.Sprintf("C%d", row), tx.Category)
		f.SetCellValue(txSheet, fmt.Sprintf("D%d", row), tx.Description)
		f.SetCellValue(txSheet, fmt.Sprintf("E%d", row), helper.FormatCentavosBRL(tx.Amount))
		f.SetCellValue(txSheet, fmt.Sprintf("F%d", row), tx.PaymentMethod)
	}

	instSheet := "Parcelas"
	f.NewSheet(instSheet)
	instHeaders := []string{"Aluno", "Parcela", "Valor", "Vencimento", "Status", "Pago em", "Forma de Pagamento"}
	for i, h := range instHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(instSheet, cell, h)
	}
	for r, inst := range installments {
		row := r + 2
		paid := ""
		if inst.PaidDate != nil {
			paid = inst.PaidDate.Format("02/01/2006")
		}
		f.SetCellValue(instSheet, fmt.Sprintf("A%d", row), inst.StudentName)
		f.SetCellValue(instSheet, fmt.Sprintf("B%d", row), inst.InstallmentNumber)
		f.SetCellValue(instSheet, fmt.Sprintf("C%d", row), helper.FormatCentavosBRL(inst.Amount))
		f.SetCellValue(instSheet, fmt.Sprintf("D%d", row), inst.DueDate.Format("02/01/2006"))
		f.SetCellValue(instSheet, fmt.Sprintf("E%d", row), inst.EffectiveStatus(now))
		f.SetCellValue(instSheet, fmt.Sprintf("F%d", row), paid)
		f.SetCellValue(instSheet, fmt.Sprintf("G%d", row), inst.PaymentMethod)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Falha ao gerar planilha")
	}

	filename := fmt.Sprintf("financeiro-%s.xlsx", now.Format("2006-01-02"))
	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, filename))
	return c.Send(buf.Bytes())
}
