package repository

import (
	"path/filepath"
	"testing"

	"digitalseekho/internal/database"
)

func setupProgressRepo(t *testing.T) *ProgressRepository {
	t.Helper()
	if testing.Short() {
		t.Skip("Skipping database test in short mode")
	}

	db, err := database.Initialize(filepath.Join(t.TempDir(), "progress.db"))
	if err != nil {
		t.Fatalf("Failed to initialize database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := db.RunMigrations("../../migrations"); err != nil {
		t.Fatalf("Failed to run migrations: %v", err)
	}
	return NewProgressRepository(db)
}

func TestProgressRepository(t *testing.T) {
	repo := setupProgressRepo(t)

	if _, ok, err := repo.Get("learner"); err != nil || ok {
		t.Fatalf("Get on empty table = ok %v, err %v", ok, err)
	}

	if err := repo.Set("learner", `{"currentLevel":1}`); err != nil {
		t.Fatal(err)
	}
	if err := repo.Set("learner", `{"currentLevel":2}`); err != nil {
		t.Fatal(err)
	}
	if err := repo.Set("sibling", `{"currentLevel":1}`); err != nil {
		t.Fatal(err)
	}

	value, ok, err := repo.Get("learner")
	if err != nil || !ok {
		t.Fatalf("Get = ok %v, err %v", ok, err)
	}
	if value != `{"currentLevel":2}` {
		t.Errorf("value = %s, want the latest write", value)
	}

	keys, err := repo.Keys()
	if err != nil {
		t.Fatal(err)
	}
	if len(keys) != 2 || keys[0] != "learner" || keys[1] != "sibling" {
		t.Errorf("keys = %v, want [learner sibling]", keys)
	}

	if err := repo.Remove("learner"); err != nil {
		t.Fatal(err)
	}
	if _, ok, _ := repo.Get("learner"); ok {
		t.Error("expected the key to be gone after Remove")
	}
	if err := repo.Remove("learner"); err != nil {
		t.Errorf("removing a missing key should succeed, got %v", err)
	}
}
