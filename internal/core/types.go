package core

import (
	"fmt"
	"strings"
)

// AssetClass represents the class of a tradable underlying instrument
type AssetClass string

const (
	AssetEquity       AssetClass = "equity"
	AssetETF          AssetClass = "etf"
	AssetLeveragedETF AssetClass = "leveraged_etf"
	AssetCrypto       AssetClass = "crypto"
	AssetCommodity    AssetClass = "commodity"
)

// AssetClasses lists every supported asset class in display order.
func AssetClasses() []AssetClass {
	return []AssetClass{AssetEquity, AssetETF, AssetLeveragedETF, AssetCrypto, AssetCommodity}
}

// ParseAssetClass resolves a case-insensitive asset class name.
func ParseAssetClass(s string) (AssetClass, error) {
	c := AssetClass(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range AssetClasses() {
		if c == known {
			return c, nil
		}
	}
	return "", WrapError(ErrUnknownAssetClass, fmt.Errorf("%q", s))
}

// Market represents the trading venue segment an asset is listed on
type Market string

const (
	MarketTSEFirst       Market = "tse_first"
	MarketTSESecond      Market = "tse_second"
	MarketIFBFirst       Market = "ifb_first"
	MarketIFBSecond      Market = "ifb_second"
	MarketIFBThird       Market = "ifb_third"
	MarketIFBInnovation  Market = "ifb_innovation"
	MarketIFBBaseYellow  Market = "ifb_base_yellow"
	MarketIFBBaseOrange  Market = "ifb_base_orange"
	MarketIFBBaseRed     Market = "ifb_base_red"
	MarketEnergy         Market = "energy"
	MarketCommodity      Market = "commodity"
	MarketGlobal         Market = "global"
)

var marketLabels = map[Market]string{
	MarketTSEFirst:      "TSE - First Market",
	MarketTSESecond:     "TSE - Second Market",
	MarketIFBFirst:      "IFB - First Market",
	MarketIFBSecond:     "IFB - Second Market",
	MarketIFBThird:      "IFB - Third Market",
	MarketIFBInnovation: "IFB - Innovative Financial Instruments",
	MarketIFBBaseYellow: "IFB Base Market - Yellow",
	MarketIFBBaseOrange: "IFB Base Market - Orange",
	MarketIFBBaseRed:    "IFB Base Market - Red",
	MarketEnergy:        "Energy Exchange",
	MarketCommodity:     "Commodity Exchange",
	MarketGlobal:        "Global (crypto / foreign)",
}

// Markets lists every supported market in display order.
func Markets() []Market {
	return []Market{
		MarketTSEFirst, MarketTSESecond,
		MarketIFBFirst, MarketIFBSecond, MarketIFBThird, MarketIFBInnovation,
		MarketIFBBaseYellow, MarketIFBBaseOrange, MarketIFBBaseRed,
		MarketEnergy, MarketCommodity, MarketGlobal,
	}
}

// Label returns the human readable market name
func (m Market) Label() string {
	if l, ok := marketLabels[m]; ok {
		return l
	}
	return string(m)
}

// ParseMarket resolves a case-insensitive market code.
func ParseMarket(s string) (Market, error) {
	m := Market(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := marketLabels[m]; ok {
		return m, nil
	}
	return "", WrapError(ErrUnknownMarket, fmt.Errorf("%q", s))
}

// OptionSide is the right an option conveys
type OptionSide string

const (
	SideCall OptionSide = "CALL"
	SidePut  OptionSide = "PUT"
)

// ParseOptionSide resolves "call"/"put" in any case.
func ParseOptionSide(s string) (OptionSide, error) {
	switch OptionSide(strings.ToUpper(strings.TrimSpace(s))) {
	case SideCall:
		return SideCall, nil
	case SidePut:
		return SidePut, nil
	}
	return "", WrapError(ErrUnknownOptionSide, fmt.Errorf("%q", s))
}

// ContractStatus classifies moneyness of an option against its underlying
type ContractStatus string

const (
	InTheMoney    ContractStatus = "IN_THE_MONEY"
	OutOfTheMoney ContractStatus = "OUT_OF_THE_MONEY"
	AtTheMoney    ContractStatus = "AT_THE_MONEY"
)
