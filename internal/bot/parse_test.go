package bot

import (
	"errors"
	"testing"
)

func TestParsePurchase(t *testing.T) {
	product, value, category, err := parsePurchase("iPhone 15 - 5000 - Eletrônicos")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if product != "iPhone 15" {
		t.Fatalf("product = %q", product)
	}
	if value != 5000 {
		t.Fatalf("value = %v", value)
	}
	if category != "Eletrônicos" {
		t.Fatalf("category = %q", category)
	}
}

func TestParsePurchaseCommaDecimal(t *testing.T) {
	_, value, _, err := parsePurchase("Café - 12,50 - Alimentação")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if value != 12.5 {
		t.Fatalf("value = %v, expected 12.5", value)
	}
}

func TestParsePurchaseFieldCount(t *testing.T) {
	for _, input := range []string{
		"só um campo",
		"produto - 100",
		"a - b - c - d",
		"",
	} {
		_, _, _, err := parsePurchase(input)
		if !errors.Is(err, errFieldCount) {
			t.Fatalf("parsePurchase(%q) err = %v, expected errFieldCount", input, err)
		}
	}
}

func TestParsePurchaseBadValue(t *testing.T) {
	_, _, _, err := parsePurchase("iPhone - cinco mil - Eletrônicos")
	if !errors.Is(err, errValue) {
		t.Fatalf("err = %v, expected errValue", err)
	}
}
