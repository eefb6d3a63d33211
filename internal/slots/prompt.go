package slots

import (
	"fmt"
	"strings"
	"time"
)

var (
	weekdaysES = [...]string{"domingo", "lunes", "martes", "miércoles", "jueves", "viernes", "sábado"}
	monthsES   = [...]string{"enero", "febrero", "marzo", "abril", "mayo", "junio", "julio",
		"agosto", "septiembre", "octubre", "noviembre", "diciembre"}
)

// LongDateES renders d the way a Spanish locale prints a long date,
// e.g. "sábado, 17 de octubre de 2026".
func LongDateES(d time.Time) string {
	return fmt.Sprintf("%s, %d de %s de %d",
		weekdaysES[d.Weekday()], d.Day(), monthsES[d.Month()-1], d.Year())
}

// BuildPrompt describes the restaurant, the requested day and the party size
// and asks for a JSON array of candidate times.
func BuildPrompt(date time.Time, partySize int) string {
	var b strings.Builder
	b.WriteString("Somos una pizzería napolitana llamada Blackmouth Pizzeria en Barcelona.\n")
	b.WriteString("Nuestro horario es:\n")
	fmt.Fprintf(&b, "- Lunes a Jueves: %s - %s\n", OpeningHours(time.Monday).Open, OpeningHours(time.Monday).Close)
	fmt.Fprintf(&b, "- Viernes y Sábado: %s - %s\n", OpeningHours(time.Friday).Open, OpeningHours(time.Friday).Close)
	fmt.Fprintf(&b, "- Domingo: %s - %s\n", OpeningHours(time.Sunday).Open, OpeningHours(time.Sunday).Close)
	fmt.Fprintf(&b, "Las horas de mayor afluencia son entre las %s y las %s.\n\n", PeakStart, PeakEnd)
	fmt.Fprintf(&b, "Un cliente quiere reservar una mesa para %d personas el %s.\n\n", partySize, LongDateES(date))
	b.WriteString("Genera una lista de 5-7 horarios de reserva disponibles, en intervalos de 30 minutos. ")
	b.WriteString("Ten en cuenta nuestro horario y las horas punta para ofrecer alternativas. ")
	b.WriteString("Asegúrate que los horarios sean válidos para el día de la semana seleccionado. ")
	b.WriteString(`Devuelve solo un array de strings en formato JSON con las horas ("HH:MM").`)
	return b.String()
}
