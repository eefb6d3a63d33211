package slots

import (
	"strings"
	"testing"
	"time"
)

func TestLongDateES(t *testing.T) {
	cases := map[string]string{
		"2026-10-17": "sábado, 17 de octubre de 2026",
		"2026-03-04": "miércoles, 4 de marzo de 2026",
		"2027-01-01": "viernes, 1 de enero de 2027",
	}
	for in, want := range cases {
		d, _ := time.Parse("2006-01-02", in)
		if got := LongDateES(d); got != want {
			t.Errorf("%s: expected %q, got %q", in, want, got)
		}
	}
}

func TestBuildPrompt(t *testing.T) {
	d, _ := time.Parse("2006-01-02", "2026-10-18")
	p := BuildPrompt(d, 5)
	for _, want := range []string{
		"Lunes a Jueves: 13:00 - 23:00",
		"Viernes y Sábado: 13:00 - 00:00",
		"Domingo: 13:00 - 22:00",
		"entre las 20:30 y las 22:00",
		"mesa para 5 personas el domingo, 18 de octubre de 2026",
		"5-7 horarios",
		"intervalos de 30 minutos",
	} {
		if !strings.Contains(p, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
}

func TestOpeningHours(t *testing.T) {
	if h := OpeningHours(time.Saturday); h.Close != "00:00" {
		t.Errorf("saturday closes at midnight, got %s", h.Close)
	}
	if h := OpeningHours(time.Wednesday); h.Close != "23:00" {
		t.Errorf("wednesday closes at 23:00, got %s", h.Close)
	}
}
