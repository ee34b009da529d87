package pipeline

import (
	"strconv"
	"strings"

	"mndotbids/internal"
)

// stripItemNumber removes the "/" separators of an item number token
// like "2105/501/20".
func stripItemNumber(itemNumber string) string {
	return strings.ReplaceAll(strings.TrimSpace(itemNumber), "/", "")
}

// ItemIDFromString converts an item number string to its integer id by
// dropping the separators: "2105/501/20" -> 210550120.
func ItemIDFromString(itemNumber string) (int64, error) {
	digits := stripItemNumber(itemNumber)
	if digits == "" {
		return 0, &internal.FormatError{Field: "ItemNumber", Value: itemNumber}
	}
	id, err := strconv.ParseInt(digits, 10, 64)
	if err != nil {
		return 0, &internal.FormatError{Field: "ItemNumber", Value: itemNumber}
	}
	return id, nil
}

// BidID derives the bid primary key by concatenating the contract id
// with the separator-stripped item number and reading the result as a
// decimal integer. Uniqueness rides on item number formatting being
// uniform within a contract; the ParseInt range check is the only
// guard against a concatenation that does not fit.
func BidID(contractID int, itemNumber string) (int64, error) {
	digits := stripItemNumber(itemNumber)
	if digits == "" {
		return 0, &internal.FormatError{Field: "ItemNumber", Value: itemNumber}
	}
	id, err := strconv.ParseInt(strconv.Itoa(contractID)+digits, 10, 64)
	if err != nil {
		return 0, &internal.FormatError{Field: "BidID", Value: strconv.Itoa(contractID) + digits}
	}
	return id, nil
}

// PriceToFloat parses a currency field like "$1,234.50" into a float.
func PriceToFloat(price string) (float64, error) {
	s := strings.TrimSpace(price)
	s = strings.ReplaceAll(s, "$", "")
	s = strings.ReplaceAll(s, ",", "")
	if s == "" {
		return 0, &internal.FormatError{Field: "Price", Value: price}
	}
	parsed, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, &internal.FormatError{Field: "Price", Value: price}
	}
	return parsed, nil
}

// yearFromLetDate reads the four trailing digits of a letting date
// string like "04/17/2020".
func yearFromLetDate(letDate string) (int, error) {
	s := strings.TrimSpace(letDate)
	if len(s) < 4 {
		return 0, &internal.FormatError{Field: "LettingDate", Value: letDate}
	}
	year, err := strconv.Atoi(s[len(s)-4:])
	if err != nil {
		return 0, &internal.FormatError{Field: "LettingDate", Value: letDate}
	}
	return year, nil
}
