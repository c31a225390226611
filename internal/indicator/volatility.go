// Package indicator derives pricing inputs from price history.
package indicator

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

const (
	// TradingDaysPerYear annualises daily closes of exchange-listed assets.
	TradingDaysPerYear = 252
	// CalendarDaysPerYear annualises daily closes of assets that trade every day.
	CalendarDaysPerYear = 365
)

// LogReturns calculates ln(p[i]/p[i-1]) for consecutive prices.
// Pairs involving a non-positive price are skipped.
func LogReturns(prices []float64) []float64 {
	if len(prices) < 2 {
		return []float64{}
	}

	result := make([]float64, 0, len(prices)-1)
	for i := 1; i < len(prices); i++ {
		if prices[i] <= 0 || prices[i-1] <= 0 {
			continue
		}
		result = append(result, math.Log(prices[i]/prices[i-1]))
	}
	return result
}

// HistoricalVolatility is the annualised sample standard deviation of log
// returns. Fewer than two returns yield 0.
func HistoricalVolatility(prices []float64, periodsPerYear float64) float64 {
	returns := LogReturns(prices)
	if len(returns) < 2 {
		return 0
	}
	return stat.StdDev(returns, nil) * math.Sqrt(periodsPerYear)
}

// RollingVolatility calculates HistoricalVolatility over each window of
// period prices. Returns slice of length: len(prices) - period + 1
func RollingVolatility(prices []float64, period int, periodsPerYear float64) []float64 {
	if period < 3 || len(prices) < period {
		return []float64{}
	}

	result := make([]float64, 0, len(prices)-period+1)
	for i := period; i <= len(prices); i++ {
		result = append(result, HistoricalVolatility(prices[i-period:i], periodsPerYear))
	}
	return result
}
