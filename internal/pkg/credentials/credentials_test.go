package credentials

import (
	"strings"
	"testing"
)

func TestHashPassword_SaltsEveryCall(t *testing.T) {
	first, err := HashPassword("secret1")
	if err != nil {
		t.Fatalf("hash failed: %v", err)
	}
	second, err := HashPassword("secret1")
	if err != nil {
		t.Fatalf("hash failed: %v", err)
	}

	if first == second {
		t.Fatalf("expected distinct hashes for identical input")
	}
	if !VerifyPassword(first, "secret1") || !VerifyPassword(second, "secret1") {
		t.Fatalf("both hashes must verify the original password")
	}
}

func TestHashPassword_NeverStoresPlaintext(t *testing.T) {
	hash, err := HashPassword("secret1")
	if err != nil {
		t.Fatalf("hash failed: %v", err)
	}
	if hash == "secret1" || strings.Contains(hash, "secret1") {
		t.Fatalf("hash must not contain the plaintext")
	}
}

func TestVerifyPassword_WrongPassword(t *testing.T) {
	hash, err := HashPassword("secret1")
	if err != nil {
		t.Fatalf("hash failed: %v", err)
	}
	if VerifyPassword(hash, "secret2") {
		t.Fatalf("wrong password must not verify")
	}
	if VerifyPassword(hash, "") {
		t.Fatalf("empty password must not verify")
	}
}

func TestVerifyPassword_MalformedHash(t *testing.T) {
	if VerifyPassword("not-a-bcrypt-hash", "secret1") {
		t.Fatalf("malformed hash must not verify")
	}
}
