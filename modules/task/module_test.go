package task

import (
	"strings"
	"testing"
)

func TestSQLiteDSN(t *testing.T) {
	dsn := sqliteDSN("taskdeck.db")
	if !strings.HasPrefix(dsn, "taskdeck.db?") {
		t.Errorf("dsn lost the path: %q", dsn)
	}
	if !strings.Contains(dsn, "_busy_timeout=") {
		t.Errorf("dsn missing busy timeout: %q", dsn)
	}
}
