// Package costs implements the transaction-cost schedule for Indian
// exchanges: brokerage, STT/CTT, exchange transaction charges, GST, SEBI
// charges, and stamp duty, per instrument type and side.
package costs

import (
	"math"
	"strings"

	"github.com/Jay9714/project-gyan/internal/domain"
)

// Standard is the default cost model (discount-broker schedule, zero
// brokerage). Implements ports.CostModel.
type Standard struct {
	// Brokerage is the flat per-order brokerage. Zero for discount brokers;
	// set ~20 for full-service.
	Brokerage float64
}

// Calculate returns the total transaction cost for one leg, rounded to two
// decimals. Rates follow the 2024-25 NSE/MCX schedules.
func (s Standard) Calculate(price float64, quantity int, side domain.Direction, instrument domain.InstrumentType) float64 {
	turnover := price * float64(quantity)
	sell := side == domain.DirectionSell

	// 1. Securities / commodities transaction tax
	var tax float64
	switch instrument {
	case domain.EquityIntraday:
		if sell {
			tax = turnover * 0.00025 // 0.025% on sell
		}
	case domain.EquityDelivery:
		tax = turnover * 0.001 // 0.1% both sides
	case domain.Futures:
		if sell {
			tax = turnover * 0.000125
		}
	case domain.Options:
		if sell {
			tax = turnover * 0.000625 // on premium
		}
	case domain.CommodityFutures:
		if sell {
			tax = turnover * 0.0001 // CTT, non-agri
		}
	case domain.CommodityOptions:
		if sell {
			tax = turnover * 0.0005
		}
	case domain.CurrencyFutures:
		// no STT/CTT on currency
	}

	// 2. Exchange transaction charges
	var exch float64
	switch {
	case strings.Contains(string(instrument), "EQUITY"):
		exch = turnover * 0.0000325 // NSE 0.00325%
	case instrument == domain.Futures:
		exch = turnover * 0.000019
	case instrument == domain.Options:
		exch = turnover * 0.00053 // on premium
	case strings.Contains(string(instrument), "COMMODITY"):
		exch = turnover * 0.000015 // MCX approx
	case strings.Contains(string(instrument), "CURRENCY"):
		exch = turnover * 0.000009
	}

	// 3. GST on brokerage + exchange charges
	gst := (s.Brokerage + exch) * 0.18

	// 4. SEBI charges: ₹10 per crore
	sebi := turnover * 0.000001

	// 5. Stamp duty, buy side only
	var stamp float64
	if !sell {
		switch {
		case instrument == domain.EquityDelivery:
			stamp = turnover * 0.00015
		case instrument == domain.EquityIntraday:
			stamp = turnover * 0.00003
		case strings.Contains(string(instrument), "FUTURES"):
			stamp = turnover * 0.00002
		case strings.Contains(string(instrument), "OPTIONS"):
			stamp = turnover * 0.00003
		}
	}

	total := s.Brokerage + tax + exch + gst + sebi + stamp
	return math.Round(total*100) / 100
}

// FeasibleInstruments filters instrument types by the capital available to
// margin them. Commodity futures only unlock for commodity tickers.
func FeasibleInstruments(capital float64, ticker string) []domain.InstrumentType {
	var out []domain.InstrumentType

	if capital > 500 {
		out = append(out, domain.EquityIntraday)
	}
	if capital > 20000 {
		out = append(out, domain.Options)
	}
	if capital > 150000 {
		out = append(out, domain.Futures)
	}

	upper := strings.ToUpper(ticker)
	if strings.Contains(upper, "GOLD") || strings.Contains(upper, "CRUDE") {
		if capital > 10000 {
			out = append(out, domain.CommodityFutures)
		}
	}
	return out
}
