package booking

import (
	"regexp"
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

// Messages shown next to fields and on failed submissions.
const (
	MsgRequired     = "Este campo es obligatorio."
	MsgPhone        = "Por favor, introduce un número de teléfono válido."
	MsgPartySize    = "El número de comensales debe estar entre 1 y 12."
	MsgDate         = "Introduce una fecha válida."
	MsgDatePast     = "La fecha no puede ser anterior a hoy."
	MsgTime         = "Elige una de las horas disponibles."
	MsgEmptyCart    = "Tu carrito está vacío."
	MsgSubmitFailed = "No se pudo completar la solicitud. Revisa los datos e inténtalo de nuevo."
)

var phonePattern = regexp.MustCompile(`^\+?[0-9\s]{9,15}$`)

// ValidPhone reports whether s is an acceptable phone number.
func ValidPhone(s string) bool {
	return phonePattern.MatchString(s)
}

// phoneError returns the inline error for a phone value.  An empty value is
// not an error here; presence is checked with the required fields.
func phoneError(s string) string {
	if strings.TrimSpace(s) == "" || ValidPhone(s) {
		return ""
	}
	return MsgPhone
}

func partySizeError(n int) string {
	if n < MinPartySize || n > MaxPartySize {
		return MsgPartySize
	}
	return ""
}

// parseDate reads a civil date.  today is the current day in the caller's
// location.
func parseDate(s string, today time.Time) (time.Time, string) {
	d, err := time.Parse(dateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, MsgDate
	}
	y, m, dd := today.Date()
	if d.Before(time.Date(y, m, dd, 0, 0, 0, 0, time.UTC)) {
		return d, MsgDatePast
	}
	return d, ""
}

func timeError(t string, slots []string) string {
	if t == "" {
		return ""
	}
	for _, s := range slots {
		if s == t {
			return ""
		}
	}
	return MsgTime
}
