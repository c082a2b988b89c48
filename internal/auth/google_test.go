package auth

import (
	"testing"
	"time"
)

func TestStateStoreConsumeOnce(t *testing.T) {
	store := newStateStore()
	store.put("abc", time.Now().Add(time.Minute))

	if !store.consume("abc") {
		t.Fatal("first consume must succeed")
	}
	if store.consume("abc") {
		t.Fatal("second consume must fail")
	}
}

func TestStateStoreExpired(t *testing.T) {
	store := newStateStore()
	store.put("old", time.Now().Add(-time.Second))

	if store.consume("old") {
		t.Fatal("expired state must not be accepted")
	}
}

func TestAppendToken(t *testing.T) {
	got, err := appendToken("https://app.example.com/auth?next=%2Fdocs", "tok123")
	if err != nil {
		t.Fatalf("appendToken: %v", err)
	}
	want := "https://app.example.com/auth?next=%2Fdocs&token=tok123"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}

	if _, err := appendToken("", "tok"); err == nil {
		t.Fatal("empty redirect url must fail")
	}
}
