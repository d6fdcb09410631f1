package costs

import (
	"testing"

	"github.com/Jay9714/project-gyan/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestCalculate_IntradayBuy(t *testing.T) {
	// turnover = 100 × 100 = 10000
	// STT buy intraday: 0 | exch: 10000×0.0000325 = 0.325
	// GST: 0.325×0.18 = 0.0585 | SEBI: 0.01 | stamp: 10000×0.00003 = 0.30
	// total ≈ 0.69
	c := Standard{}.Calculate(100, 100, domain.DirectionBuy, domain.EquityIntraday)
	assert.InDelta(t, 0.69, c, 0.01)
}

func TestCalculate_IntradaySellAddsSTT(t *testing.T) {
	buy := Standard{}.Calculate(100, 100, domain.DirectionBuy, domain.EquityIntraday)
	sell := Standard{}.Calculate(100, 100, domain.DirectionSell, domain.EquityIntraday)
	// sell carries 0.025% STT (2.50 on 10000) but no stamp duty (0.30)
	assert.InDelta(t, buy+2.50-0.30, sell, 0.02)
}

func TestCalculate_DeliveryTaxedBothSides(t *testing.T) {
	buy := Standard{}.Calculate(500, 20, domain.DirectionBuy, domain.EquityDelivery)
	sell := Standard{}.Calculate(500, 20, domain.DirectionSell, domain.EquityDelivery)
	// 0.1% STT on 10000 = 10.0 on both legs
	assert.Greater(t, buy, 10.0)
	assert.Greater(t, sell, 10.0)
}

func TestCalculate_BrokerageFeedsGST(t *testing.T) {
	free := Standard{}.Calculate(100, 100, domain.DirectionBuy, domain.EquityIntraday)
	paid := Standard{Brokerage: 20}.Calculate(100, 100, domain.DirectionBuy, domain.EquityIntraday)
	// +20 brokerage +18% GST on it
	assert.InDelta(t, free+20+3.6, paid, 0.01)
}

func TestCalculate_CurrencyFuturesNoTax(t *testing.T) {
	c := Standard{}.Calculate(83, 1000, domain.DirectionSell, domain.CurrencyFutures)
	// only exchange charge + GST + SEBI: tiny
	assert.Less(t, c, 1.0)
}

func TestFeasibleInstruments_ByCapital(t *testing.T) {
	assert.Empty(t, FeasibleInstruments(400, "RELIANCE.NS"))

	small := FeasibleInstruments(1000, "RELIANCE.NS")
	assert.Equal(t, []domain.InstrumentType{domain.EquityIntraday}, small)

	big := FeasibleInstruments(200000, "RELIANCE.NS")
	assert.Contains(t, big, domain.Options)
	assert.Contains(t, big, domain.Futures)
}

func TestFeasibleInstruments_CommodityTickers(t *testing.T) {
	assert.Contains(t, FeasibleInstruments(15000, "GOLDM"), domain.CommodityFutures)
	assert.NotContains(t, FeasibleInstruments(15000, "TCS.NS"), domain.CommodityFutures)
}
