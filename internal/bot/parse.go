package bot

import (
	"errors"
	"strconv"
	"strings"
)

var (
	// errFieldCount indicates the purchase entry did not have exactly three fields.
	errFieldCount = errors.New("purchase entry must have exactly three fields")
	// errValue indicates the value field could not be parsed as a number.
	errValue = errors.New("purchase value is not numeric")
)

// parsePurchase splits a "Produto - Valor - Categoria" entry into its fields.
// Fields are trimmed; the value accepts a comma as decimal separator.
func parsePurchase(text string) (product string, value float64, category string, err error) {
	parts := strings.Split(text, "-")
	if len(parts) != 3 {
		return "", 0, "", errFieldCount
	}

	product = strings.TrimSpace(parts[0])
	rawValue := strings.TrimSpace(parts[1])
	category = strings.TrimSpace(parts[2])

	value, parseErr := strconv.ParseFloat(strings.ReplaceAll(rawValue, ",", "."), 64)
	if parseErr != nil {
		return "", 0, "", errValue
	}
	return product, value, category, nil
}
