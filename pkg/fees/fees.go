package fees

import "github.com/shopspring/decimal"

// Метод платежа, определяет набор применяемых комиссий
type Method string

const (
	MethodCash     Method = "cash"
	MethodCredit   Method = "credit"
	MethodDebit    Method = "debit"
	MethodTransfer Method = "transfer"
	MethodNone     Method = "none"
)

// Базовые составляющие, применяются к любой конвертации:
// 4% банковский спред + 1% комиссия за конвертацию.
// Поверх них — налог на операцию в зависимости от метода.
// Политика вычитающая: net = gross - gross*totalRate. Вариант с начислением
// комиссии сверху не поддерживается, см. DESIGN.md.
var (
	spreadRate     = decimal.NewFromFloat(0.04)
	conversionRate = decimal.NewFromFloat(0.01)

	methodTaxRates = map[Method]decimal.Decimal{
		MethodCash:     decimal.NewFromFloat(0.011),
		MethodCredit:   decimal.NewFromFloat(0.0638),
		MethodDebit:    decimal.NewFromFloat(0.011),
		MethodTransfer: decimal.NewFromFloat(0.0038),
		MethodNone:     decimal.Zero,
	}
)

// Breakdown — детализация применённых комиссий
type Breakdown struct {
	NetAmount     decimal.Decimal `json:"net_amount"`
	TotalFeeRate  decimal.Decimal `json:"total_fee_rate"`
	TotalFees     decimal.Decimal `json:"total_fees"`
	SpreadRate    decimal.Decimal `json:"spread_rate"`
	ConversionFee decimal.Decimal `json:"conversion_fee_rate"`
	MethodTaxRate decimal.Decimal `json:"method_tax_rate"`
}

// TotalRate возвращает суммарную ставку комиссии для метода
func TotalRate(method Method) decimal.Decimal {
	tax, ok := methodTaxRates[method]
	if !ok {
		tax = decimal.Zero
	}
	return spreadRate.Add(conversionRate).Add(tax)
}

// ApplyFees вычитает комиссии из суммы. Детерминированно и линейно по gross.
func ApplyFees(gross decimal.Decimal, method Method) Breakdown {
	tax, ok := methodTaxRates[method]
	if !ok {
		tax = decimal.Zero
	}

	totalRate := spreadRate.Add(conversionRate).Add(tax)
	totalFees := gross.Mul(totalRate)

	return Breakdown{
		NetAmount:     gross.Sub(totalFees),
		TotalFeeRate:  totalRate,
		TotalFees:     totalFees,
		SpreadRate:    spreadRate,
		ConversionFee: conversionRate,
		MethodTaxRate: tax,
	}
}
