package library

import (
	"path/filepath"
	"testing"
)

func tempStore(t *testing.T) *Store {
	t.Helper()
	dir := t.TempDir()
	store, err := OpenStore(filepath.Join(dir, "state.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreRoundTrip(t *testing.T) {
	store := tempStore(t)

	user := &User{ID: 7, FullName: "Ani", Email: "ani@example.com", Phone: "0812", Role: RoleAdmin}
	if err := store.SaveUser(user); err != nil {
		t.Fatalf("save user: %v", err)
	}
	if err := store.SaveToken("tok-123"); err != nil {
		t.Fatalf("save token: %v", err)
	}

	got, err := store.LoadUser()
	if err != nil {
		t.Fatalf("load user: %v", err)
	}
	if got == nil || *got != *user {
		t.Fatalf("loaded user %+v, want %+v", got, user)
	}
	token, err := store.LoadToken()
	if err != nil {
		t.Fatalf("load token: %v", err)
	}
	if token != "tok-123" {
		t.Fatalf("token = %q", token)
	}
}

func TestStoreEmpty(t *testing.T) {
	store := tempStore(t)

	user, err := store.LoadUser()
	if err != nil {
		t.Fatalf("load user: %v", err)
	}
	if user != nil {
		t.Fatalf("want nil user, got %+v", user)
	}
	token, err := store.LoadToken()
	if err != nil {
		t.Fatalf("load token: %v", err)
	}
	if token != "" {
		t.Fatalf("want empty token, got %q", token)
	}
}

func TestStoreClearSession(t *testing.T) {
	store := tempStore(t)

	if err := store.SaveUser(&User{ID: 1, FullName: "Ani"}); err != nil {
		t.Fatalf("save user: %v", err)
	}
	if err := store.SaveToken("tok"); err != nil {
		t.Fatalf("save token: %v", err)
	}
	if err := store.ClearSession(); err != nil {
		t.Fatalf("clear: %v", err)
	}

	if user, _ := store.LoadUser(); user != nil {
		t.Fatalf("user survived clear: %+v", user)
	}
	if token, _ := store.LoadToken(); token != "" {
		t.Fatalf("token survived clear: %q", token)
	}
	// Clearing an already-empty store is not an error.
	if err := store.ClearSession(); err != nil {
		t.Fatalf("second clear: %v", err)
	}
}

func TestStoreCorruptUserRecord(t *testing.T) {
	store := tempStore(t)

	if err := store.Set(storeKeyUser, "{not json"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if _, err := store.LoadUser(); err == nil {
		t.Fatal("want error for corrupt user record")
	}
}

func TestStoreSetOverwrites(t *testing.T) {
	store := tempStore(t)

	if err := store.Set("k", "one"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := store.Set("k", "two"); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	got, ok, err := store.Get("k")
	if err != nil || !ok {
		t.Fatalf("get: %v ok=%v", err, ok)
	}
	if got != "two" {
		t.Fatalf("value = %q, want %q", got, "two")
	}
}
