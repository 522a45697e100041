package validators

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// CheckEmail проверяет формат адреса электронной почты
func CheckEmail(email string) bool {
	return emailPattern.MatchString(strings.TrimSpace(email))
}

// CheckAmount проверяет денежную сумму: строго положительная,
// не больше двух знаков после запятой. Сравнение идёт по числовому
// значению, а не по строке отображения.
func CheckAmount(amount float64) bool {
	value := decimal.NewFromFloat(amount)
	if !value.GreaterThan(decimal.Zero) {
		return false
	}
	return value.Equal(value.Round(2))
}

// CheckRequiredText проверяет обязательное текстовое поле
func CheckRequiredText(text string) bool {
	return strings.TrimSpace(text) != ""
}
