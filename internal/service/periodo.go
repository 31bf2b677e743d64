package service

import (
	"strconv"
	"strings"
	"time"
	"unicode"
)

// Period resolution for payments. A submitted payment carries a free-text
// "mes correspondiente" label that may name a month in Spanish or English and
// optionally a 4-digit year. The label is tokenized and each token is matched
// exactly against per-locale lookup tables — no substring matching, so a
// label like "Enero-Febrero" yields the first unambiguous token (enero)
// instead of whichever substring happened to match last.

var mesesEspanol = map[string]time.Month{
	"enero": time.January, "febrero": time.February, "marzo": time.March,
	"abril": time.April, "mayo": time.May, "junio": time.June,
	"julio": time.July, "agosto": time.August, "septiembre": time.September,
	"setiembre": time.September, "octubre": time.October,
	"noviembre": time.November, "diciembre": time.December,
}

var mesesIngles = map[string]time.Month{
	"january": time.January, "february": time.February, "march": time.March,
	"april": time.April, "may": time.May, "june": time.June,
	"july": time.July, "august": time.August, "september": time.September,
	"october": time.October, "november": time.November, "december": time.December,
}

// nombreMes returns the Spanish month name for user-facing messages.
var nombresMes = [...]string{"", "enero", "febrero", "marzo", "abril", "mayo",
	"junio", "julio", "agosto", "septiembre", "octubre", "noviembre", "diciembre"}

func nombreMes(mes int) string {
	if mes < 1 || mes > 12 {
		return ""
	}
	return nombresMes[mes]
}

// extraerPeriodo parses a free-text month label. Returns the first month
// token found (Spanish table checked before English) and the first 4-digit
// year token; anioDefecto is used when the label carries no year. ok is
// false when no month token is present.
func extraerPeriodo(etiqueta string, anioDefecto int) (mes time.Month, anio int, ok bool) {
	anio = anioDefecto
	tokens := strings.FieldsFunc(strings.ToLower(etiqueta), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})

	for _, tok := range tokens {
		if !ok {
			if m, found := mesesEspanol[tok]; found {
				mes, ok = m, true
				continue
			}
			if m, found := mesesIngles[tok]; found {
				mes, ok = m, true
				continue
			}
		}
		if len(tok) == 4 {
			if n, err := strconv.Atoi(tok); err == nil && n >= 2000 && n <= 2100 {
				anio = n
			}
		}
	}
	return mes, anio, ok
}

// contieneMarcaAdelanto reports whether the observations text carries the
// advance-payment marker phrase, in either language.
func contieneMarcaAdelanto(observaciones string) bool {
	obs := strings.ToLower(observaciones)
	return strings.Contains(obs, "pago adelantado") || strings.Contains(obs, "advanced payment")
}

// Periodo is a resolved billing bucket.
type Periodo struct {
	Mes        int
	Anio       int
	Adelantado bool
}

// despuesDe reports whether (anio, mes) is strictly later than (anioRef, mesRef).
func despuesDe(anio, mes, anioRef, mesRef int) bool {
	return anio > anioRef || (anio == anioRef && mes > mesRef)
}

// resolverPeriodo assigns a payment to exactly one (mes, anio) bucket and
// classifies it as ordinary or advance. Rules are priority ordered; the first
// applicable one wins:
//
//  1. A month extracted from the label that is strictly in the future →
//     advance on the extracted period.
//  2. Advance marker phrase in observations → advance on the month right
//     after the current one, regardless of the label.
//  3. A month extracted from the label that differs from the payment date's
//     month/year → that period; advance only if it is strictly future.
//  4. Otherwise → the payment date's own month/year, ordinary.
//
// "Current month" comes from ahora (wall clock at request handling).
func resolverPeriodo(etiqueta, observaciones string, fechaPago, ahora time.Time) Periodo {
	mesActual, anioActual := int(ahora.Month()), ahora.Year()
	mesEtq, anioEtq, tieneEtiqueta := extraerPeriodo(etiqueta, anioActual)

	if tieneEtiqueta && despuesDe(anioEtq, int(mesEtq), anioActual, mesActual) {
		return Periodo{Mes: int(mesEtq), Anio: anioEtq, Adelantado: true}
	}

	if contieneMarcaAdelanto(observaciones) {
		siguiente := time.Date(anioActual, time.Month(mesActual), 1, 0, 0, 0, 0, time.UTC).AddDate(0, 1, 0)
		return Periodo{Mes: int(siguiente.Month()), Anio: siguiente.Year(), Adelantado: true}
	}

	if tieneEtiqueta && (int(mesEtq) != int(fechaPago.Month()) || anioEtq != fechaPago.Year()) {
		adelantado := despuesDe(anioEtq, int(mesEtq), anioActual, mesActual)
		return Periodo{Mes: int(mesEtq), Anio: anioEtq, Adelantado: adelantado}
	}

	return Periodo{Mes: int(fechaPago.Month()), Anio: fechaPago.Year(), Adelantado: false}
}
