package utils

import "testing"

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("s3cret", 4) // minimum cost keeps the test fast
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}
	if hash == "s3cret" {
		t.Fatal("hash must not equal the plain password")
	}
	if !VerifyPassword(hash, "s3cret") {
		t.Error("VerifyPassword() rejected the correct password")
	}
	if VerifyPassword(hash, "wrong") {
		t.Error("VerifyPassword() accepted a wrong password")
	}
}
