package currency

import "strings"

// Поддерживаемые валюты. Курсы по остальным кодам апстрим не отдаёт.
var Supported = []string{"USD", "BRL", "EUR", "GBP", "JPY", "CAD", "AUD", "CHF", "CNY", "ARS"}

var supportedSet = func() map[string]struct{} {
	m := make(map[string]struct{}, len(Supported))
	for _, c := range Supported {
		m[c] = struct{}{}
	}
	return m
}()

// Normalize приводит код валюты к верхнему регистру
func Normalize(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

func IsSupported(code string) bool {
	_, ok := supportedSet[Normalize(code)]
	return ok
}
