package earnings

// Breakdown is the four-way split of a completed sale. GrossProfit may be
// negative for a loss-making sale; nothing here clamps it.
type Breakdown struct {
	SaleAmount       float64 `json:"saleAmount"`
	CostOfGoods      float64 `json:"costOfGoods"`
	ProcessorFee     float64 `json:"processorFee"`
	GrossProfit      float64 `json:"grossProfit"`
	FounderShare     float64 `json:"founderShare"`
	RetainedEarnings float64 `json:"retainedEarnings"`
}

// AttributeSale splits a sale amount into processor fee, cost of goods, founder
// share and retained earnings. Rates are 0-1 fractions. The split conserves the
// sale amount: saleAmount = costOfGoods + processorFee + grossProfit and
// grossProfit = founderShare + retainedEarnings.
func AttributeSale(saleAmount, costOfGoods, processorFeeRate, founderPercentage float64) Breakdown {
	processorFee := saleAmount * processorFeeRate
	grossProfit := saleAmount - costOfGoods - processorFee
	founderShare := grossProfit * founderPercentage
	return Breakdown{
		SaleAmount:       saleAmount,
		CostOfGoods:      costOfGoods,
		ProcessorFee:     processorFee,
		GrossProfit:      grossProfit,
		FounderShare:     founderShare,
		RetainedEarnings: grossProfit - founderShare,
	}
}
