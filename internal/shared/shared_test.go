package shared

import "testing"

func TestFormatDuration(t *testing.T) {
	tc := []struct {
		name    string
		seconds int
		want    string
	}{
		{name: "zero", seconds: 0, want: "0:00"},
		{name: "under a minute", seconds: 59, want: "0:59"},
		{name: "minutes and seconds", seconds: 754, want: "12:34"},
		{name: "exactly one hour", seconds: 3600, want: "1:00:00"},
		{name: "hours minutes seconds", seconds: 3723, want: "1:02:03"},
		{name: "negative clamps to zero", seconds: -5, want: "0:00"},
	}

	for _, tt := range tc {
		t.Run(tt.name, func(t *testing.T) {
			got := FormatDuration(tt.seconds)
			if got != tt.want {
				t.Errorf("FormatDuration(%d) = %v, want %v", tt.seconds, got, tt.want)
			}
		})
	}
}

func TestGenerateID(t *testing.T) {
	a := GenerateID()
	b := GenerateID()

	if a == "" || b == "" {
		t.Fatal("GenerateID returned empty string")
	}
	if a == b {
		t.Errorf("GenerateID returned duplicate ids: %s", a)
	}
	if len(a) != 36 {
		t.Errorf("expected UUID length 36, got %d", len(a))
	}
}

func TestRunMigrations(t *testing.T) {
	db, err := NewDatabase(":memory:")
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()

	if err := RunMigrations(db); err != nil {
		t.Fatalf("RunMigrations failed: %v", err)
	}

	// Applying twice must be a no-op
	if err := RunMigrations(db); err != nil {
		t.Fatalf("second RunMigrations failed: %v", err)
	}

	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM snapshots").Scan(&count); err != nil {
		t.Fatalf("snapshots table should exist: %v", err)
	}
	if count != 0 {
		t.Errorf("expected empty snapshots table, got %d rows", count)
	}

	if err := RollbackMigration(db); err != nil {
		t.Fatalf("RollbackMigration failed: %v", err)
	}

	if err := db.QueryRow("SELECT COUNT(*) FROM snapshots").Scan(&count); err == nil {
		t.Error("snapshots table should be dropped after rollback")
	}
}
