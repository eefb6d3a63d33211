package database

import (
	"strings"
	"testing"

	"github.com/iliyamo/blackmouth-booking/internal/config"
)

func TestDSN(t *testing.T) {
	dsn := DSN(config.Config{DBUser: "app", DBPass: "pw", DBHost: "db", DBPort: "3306", DBName: "blackmouth"})
	for _, want := range []string{"app:pw@tcp(db:3306)/blackmouth", "parseTime=true", "charset=utf8mb4"} {
		if !strings.Contains(dsn, want) {
			t.Errorf("dsn %q missing %q", dsn, want)
		}
	}
}
