package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	financeModel "autoescola_backend/internals/features/cfc/finance/model"
)

func datePtr(t time.Time) *time.Time { return &t }

func TestComputeDashboard_ResumoDoMes(t *testing.T) {
	now := time.Date(2026, 8, 20, 12, 0, 0, 0, time.UTC)

	installments := []financeModel.InstallmentModel{
		// paga neste mês → receita do mês
		{Status: financeModel.InstallmentPaga, Amount: 50000, PaidDate: datePtr(time.Date(2026, 8, 5, 0, 0, 0, 0, time.UTC))},
		// paga mês passado → só entra na série
		{Status: financeModel.InstallmentPaga, Amount: 30000, PaidDate: datePtr(time.Date(2026, 7, 10, 0, 0, 0, 0, time.UTC))},
		// pendente futura → a receber
		{Status: financeModel.InstallmentPendente, Amount: 40000, DueDate: time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)},
		// pendente vencida → a receber e atrasado
		{Status: financeModel.InstallmentPendente, Amount: 20000, DueDate: time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)},
	}
	transactions := []financeModel.TransactionModel{
		{Type: financeModel.TransactionReceita, Amount: 15000, Date: time.Date(2026, 8, 12, 0, 0, 0, 0, time.UTC), Category: "Outros"},
		{Type: financeModel.TransactionDespesa, Amount: 10000, Date: time.Date(2026, 8, 3, 0, 0, 0, 0, time.UTC), Category: "Combustível"},
		{Type: financeModel.TransactionDespesa, Amount: 7000, Date: time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC), Category: "Combustível"},
		{Type: financeModel.TransactionDespesa, Amount: 5000, Date: time.Date(2026, 7, 20, 0, 0, 0, 0, time.UTC), Category: "Aluguel"},
	}

	summary := ComputeDashboard(installments, transactions, now)

	assert.Equal(t, int64(65000), summary.ReceitasMes) // 50000 parcela + 15000 receita
	assert.Equal(t, int64(17000), summary.DespesasMes)
	assert.Equal(t, int64(48000), summary.Saldo)
	assert.Equal(t, int64(60000), summary.AReceber)
	assert.Equal(t, int64(20000), summary.Atrasado)

	// só despesas do mês corrente compõem o quebra por categoria
	require.Len(t, summary.DespesasPorCategoria, 1)
	assert.Equal(t, "Combustível", summary.DespesasPorCategoria[0].Category)
	assert.Equal(t, int64(17000), summary.DespesasPorCategoria[0].Total)
}

func TestComputeDashboard_SerieSeisMeses(t *testing.T) {
	now := time.Date(2026, 8, 20, 0, 0, 0, 0, time.UTC)

	installments := []financeModel.InstallmentModel{
		{Status: financeModel.InstallmentPaga, Amount: 10000, PaidDate: datePtr(time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC))},
		// fevereiro fica fora da janela de 6 meses
		{Status: financeModel.InstallmentPaga, Amount: 99999, PaidDate: datePtr(time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC))},
	}
	transactions := []financeModel.TransactionModel{
		{Type: financeModel.TransactionDespesa, Amount: 4000, Date: time.Date(2026, 5, 2, 0, 0, 0, 0, time.UTC), Category: "Manutenção"},
	}

	summary := ComputeDashboard(installments, transactions, now)

	require.Len(t, summary.MonthlySeries, 6)
	assert.Equal(t, "2026-03", summary.MonthlySeries[0].Month)
	assert.Equal(t, "2026-08", summary.MonthlySeries[5].Month)

	assert.Equal(t, int64(10000), summary.MonthlySeries[0].Revenue)
	assert.Equal(t, int64(4000), summary.MonthlySeries[2].Expense)

	// fevereiro não aparece em nenhum ponto
	var total int64
	for _, p := range summary.MonthlySeries {
		total += p.Revenue
	}
	assert.Equal(t, int64(10000), total)
}

func TestEffectiveStatus_AtrasadaDerivada(t *testing.T) {
	today := time.Date(2026, 8, 20, 15, 30, 0, 0, time.UTC)

	vencida := financeModel.InstallmentModel{
		Status:  financeModel.InstallmentPendente,
		DueDate: time.Date(2026, 8, 10, 0, 0, 0, 0, time.UTC),
	}
	assert.Equal(t, financeModel.InstallmentAtrasada, vencida.EffectiveStatus(today))
	// o status persistido nunca muda
	assert.Equal(t, financeModel.InstallmentPendente, vencida.Status)

	// vence hoje → ainda pendente
	hoje := financeModel.InstallmentModel{
		Status:  financeModel.InstallmentPendente,
		DueDate: time.Date(2026, 8, 20, 0, 0, 0, 0, time.UTC),
	}
	assert.Equal(t, financeModel.InstallmentPendente, hoje.EffectiveStatus(today))

	paga := financeModel.InstallmentModel{
		Status:  financeModel.InstallmentPaga,
		DueDate: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	assert.Equal(t, financeModel.InstallmentPaga, paga.EffectiveStatus(today))
}
