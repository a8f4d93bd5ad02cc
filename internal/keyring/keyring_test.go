package keyring

import (
	"errors"
	"testing"
)

func TestStore_SetAndGet(t *testing.T) {
	store := NewMockStore()

	err := store.Set(ServiceName, KeyAPIKey, "test-key-123")
	if err != nil {
		t.Fatalf("Set() error = %v, want nil", err)
	}

	got, err := store.Get(ServiceName, KeyAPIKey)
	if err != nil {
		t.Fatalf("Get() error = %v, want nil", err)
	}
	if got != "test-key-123" {
		t.Errorf("Get() = %q, want %q", got, "test-key-123")
	}
}

func TestStore_GetNotFound(t *testing.T) {
	store := NewMockStore()

	_, err := store.Get(ServiceName, "nonexistent")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Get() error = %v, want ErrNotFound", err)
	}
}

func TestStore_Delete(t *testing.T) {
	store := NewMockStore()

	// Set a value
	_ = store.Set(ServiceName, KeyAPIKey, "to-delete")

	// Delete it
	err := store.Delete(ServiceName, KeyAPIKey)
	if err != nil {
		t.Fatalf("Delete() error = %v, want nil", err)
	}

	// Verify it's gone
	_, err = store.Get(ServiceName, KeyAPIKey)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Get() after Delete() error = %v, want ErrNotFound", err)
	}
}

func TestStore_OverwriteValue(t *testing.T) {
	store := NewMockStore()

	_ = store.Set(ServiceName, "key", "value1")
	_ = store.Set(ServiceName, "key", "value2")

	got, _ := store.Get(ServiceName, "key")
	if got != "value2" {
		t.Errorf("Get() = %q, want %q after overwrite", got, "value2")
	}
}

func TestSystemStore_ImplementsInterface(t *testing.T) {
	// Compile-time check that SystemStore implements Store
	var _ Store = (*SystemStore)(nil)
}

func TestEnvStore_ImplementsInterface(t *testing.T) {
	// Compile-time check that EnvStore implements Store
	var _ Store = (*EnvStore)(nil)
}

func TestEnvStore_GetFromEnvVar(t *testing.T) {
	mock := NewMockStore()
	store := NewEnvStore(mock)

	// Set env var
	t.Setenv(EnvAPIKey, "env-key-123")

	// Should get from env var, not underlying store
	got, err := store.Get(ServiceName, KeyAPIKey)
	if err != nil {
		t.Fatalf("Get() error = %v, want nil", err)
	}
	if got != "env-key-123" {
		t.Errorf("Get() = %q, want %q", got, "env-key-123")
	}
}

func TestEnvStore_FallbackToUnderlying(t *testing.T) {
	mock := NewMockStore()
	_ = mock.Set(ServiceName, KeyAPIKey, "keyring-key")
	store := NewEnvStore(mock)

	// No env var set, should fall back to underlying store
	got, err := store.Get(ServiceName, KeyAPIKey)
	if err != nil {
		t.Fatalf("Get() error = %v, want nil", err)
	}
	if got != "keyring-key" {
		t.Errorf("Get() = %q, want %q", got, "keyring-key")
	}
}

func TestEnvStore_EnvVarOnlyForAPIKey(t *testing.T) {
	mock := NewMockStore()
	_ = mock.Set(ServiceName, "other_key", "other-value")
	store := NewEnvStore(mock)

	// Env var only affects api_key lookups
	t.Setenv(EnvAPIKey, "env-key")

	// Other keys should not use env var
	got, err := store.Get(ServiceName, "other_key")
	if err != nil {
		t.Fatalf("Get() error = %v, want nil", err)
	}
	if got != "other-value" {
		t.Errorf("Get() = %q, want %q", got, "other-value")
	}
}

func TestEnvStore_SetPassesThrough(t *testing.T) {
	mock := NewMockStore()
	store := NewEnvStore(mock)

	err := store.Set(ServiceName, KeyAPIKey, "new-key")
	if err != nil {
		t.Fatalf("Set() error = %v, want nil", err)
	}

	// Verify it was stored in underlying store
	got, _ := mock.Get(ServiceName, KeyAPIKey)
	if got != "new-key" {
		t.Errorf("underlying Get() = %q, want %q", got, "new-key")
	}
}

func TestEnvStore_DeletePassesThrough(t *testing.T) {
	mock := NewMockStore()
	_ = mock.Set(ServiceName, KeyAPIKey, "to-delete")
	store := NewEnvStore(mock)

	err := store.Delete(ServiceName, KeyAPIKey)
	if err != nil {
		t.Fatalf("Delete() error = %v, want nil", err)
	}

	// Verify it was deleted from underlying store
	_, err = mock.Get(ServiceName, KeyAPIKey)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("underlying Get() after Delete() error = %v, want ErrNotFound", err)
	}
}
