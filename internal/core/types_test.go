package core

import (
	"errors"
	"testing"
)

func TestAssetClass_Constants(t *testing.T) {
	classes := AssetClasses()
	expected := []string{"equity", "etf", "leveraged_etf", "crypto", "commodity"}

	if len(classes) != len(expected) {
		t.Fatalf("expected %d classes, got %d", len(expected), len(classes))
	}
	for i, c := range classes {
		if string(c) != expected[i] {
			t.Errorf("expected %s, got %s", expected[i], c)
		}
	}
}

func TestParseAssetClass(t *testing.T) {
	tests := []struct {
		in      string
		want    AssetClass
		wantErr bool
	}{
		{"equity", AssetEquity, false},
		{"ETF", AssetETF, false},
		{" Leveraged_ETF ", AssetLeveragedETF, false},
		{"crypto", AssetCrypto, false},
		{"bond", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseAssetClass(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseAssetClass(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if tt.wantErr && !errors.Is(err, ErrUnknownAssetClass) {
				t.Errorf("expected ErrUnknownAssetClass, got %v", err)
			}
			if got != tt.want {
				t.Errorf("ParseAssetClass(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseMarket(t *testing.T) {
	for _, m := range Markets() {
		got, err := ParseMarket(string(m))
		if err != nil || got != m {
			t.Errorf("ParseMarket(%q) = %q, %v", m, got, err)
		}
		if m.Label() == string(m) {
			t.Errorf("market %s has no label", m)
		}
	}

	if _, err := ParseMarket("nasdaq"); !errors.Is(err, ErrUnknownMarket) {
		t.Errorf("expected ErrUnknownMarket, got %v", err)
	}
	if Market("nasdaq").Label() != "nasdaq" {
		t.Error("unknown market label should fall back to the code")
	}
}

func TestParseOptionSide(t *testing.T) {
	tests := []struct {
		in      string
		want    OptionSide
		wantErr bool
	}{
		{"call", SideCall, false},
		{"PUT", SidePut, false},
		{"Put ", SidePut, false},
		{"straddle", "", true},
	}
	for _, tt := range tests {
		got, err := ParseOptionSide(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseOptionSide(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
		}
		if got != tt.want {
			t.Errorf("ParseOptionSide(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestContractStatus_Constants(t *testing.T) {
	statuses := []ContractStatus{InTheMoney, OutOfTheMoney, AtTheMoney}
	expected := []string{"IN_THE_MONEY", "OUT_OF_THE_MONEY", "AT_THE_MONEY"}

	for i, s := range statuses {
		if string(s) != expected[i] {
			t.Errorf("expected %s, got %s", expected[i], s)
		}
	}
}
