package service

import (
	"time"

	"gorm.io/gorm"

	financeModel "autoescola_backend/internals/features/cfc/finance/model"
)

// Valores em centavos, como no resto do módulo financeiro
type DashboardSummary struct {
	ReceitasMes     int64               `json:"receitas_mes"`
	DespesasMes     int64               `json:"despesas_mes"`
	Saldo           int64               `json:"saldo"`
	AReceber        int64               `json:"a_receber"`
	Atrasado        int64               `json:"atrasado"`
	MonthlySeries   []MonthlyPoint      `json:"monthly_series"`
	DespesasPorCategoria []CategoryTotal `json:"despesas_por_categoria"`
}

type MonthlyPoint struct {
	Month   string `json:"month"` // YYYY-MM
	Revenue int64  `json:"revenue"`
	Expense int64  `json:"expense"`
}

type CategoryTotal struct {
	Category string `json:"category"`
	Total    int64  `json:"total"`
}

func monthKey(t time.Time) string {
	return t.Format("2006-01")
}

func startOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

// ComputeDashboard reduz parcelas e lançamentos nos números do painel.
// Recalculado a cada requisição: o volume de uma única autoescola não
// justifica cache.
func ComputeDashboard(installments []financeModel.InstallmentModel, transactions []financeModel.TransactionModel, now time.Time) DashboardSummary {
	currentMonth := monthKey(now)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	summary := DashboardSummary{}

	// série dos 6 meses corridos, do mais antigo ao atual
	seriesIndex := make(map[string]int, 6)
	base := startOfMonth(now)
	for i := 5; i >= 0; i-- {
		m := base.AddDate(0, -i, 0)
		seriesIndex[monthKey(m)] = len(summary.MonthlySeries)
		summary.MonthlySeries = append(summary.MonthlySeries, MonthlyPoint{Month: monthKey(m)})
	}

	for _, inst := range installments {
		switch inst.Status {
		case financeModel.InstallmentPaga:
			if inst.PaidDate == nil {
				continue
			}
			if monthKey(*inst.PaidDate) == currentMonth {
				summary.ReceitasMes += inst.Amount
			}
			if idx, ok := seriesIndex[monthKey(*inst.PaidDate)]; ok {
				summary.MonthlySeries[idx].Revenue += inst.Amount
			}
		case financeModel.InstallmentPendente:
			summary.AReceber += inst.Amount
			if inst.DueDate.Before(today) {
				summary.Atrasado += inst.Amount
			}
		}
	}

	categoryTotals := make(map[string]int64)
	var categoryOrder []string

	for _, tx := range transactions {
		key := monthKey(tx.Date)
		switch tx.Type {
		case financeModel.TransactionReceita:
			if key == currentMonth {
				summary.ReceitasMes += tx.Amount
			}
			if idx, ok := seriesIndex[key]; ok {
				summary.MonthlySeries[idx].Revenue += tx.Amount
			}
		case financeModel.TransactionDespesa:
			if key == currentMonth {
				summary.DespesasMes += tx.Amount
				if _, seen := categoryTotals[tx.Category]; !seen {
					categoryOrder = append(categoryOrder, tx.Category)
				}
				categoryTotals[tx.Category] += tx.Amount
			}
			if idx, ok := seriesIndex[key]; ok {
				summary.MonthlySeries[idx].Expense += tx.Amount
			}
		}
	}

	for _, cat := range categoryOrder {
		summary.DespesasPorCategoria = append(summary.DespesasPorCategoria, CategoryTotal{
			Category: cat,
			Total:    categoryTotals[cat],
		})
	}

	summary.Saldo = summary.ReceitasMes - summary.DespesasMes
	return summary
}

// LoadDashboard busca a janela relevante e reduz em memória
func LoadDashboard(db *gorm.DB, now time.Time) (DashboardSummary, error) {
	windowStart := startOfMonth(now).AddDate(0, -5, 0)

	var installments []financeModel.InstallmentModel
	if err := db.Where("status = ? OR (status = ? AND paid_date >= ?)",
		financeModel.InstallmentPendente, financeModel.InstallmentPaga, windowStart).
		Find(&installments).Error; err != nil {
		return DashboardSummary{}, err
	}

	var transactions []financeModel.TransactionModel
	if err := db.Where("date >= ?", windowStart).Find(&transactions).Error; err != nil {
		return DashboardSummary{}, err
	}

	return ComputeDashboard(installments, transactions, now), nil
}
