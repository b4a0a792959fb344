package hash

import (
	"testing"
)

func TestSHA256Hex(t *testing.T) {
	// Known SHA256 of "hello"
	want := "2cf24dba5fb0a30e26e83b2ac5b9e29e1b161e5c1fa7425e73043362938b9824"
	got := SHA256Hex("hello")
	if got != want {
		t.Errorf("SHA256Hex(\"hello\") = %s, want %s", got, want)
	}
}

func TestSHA256Hex_Empty(t *testing.T) {
	// SHA256 of empty string
	want := "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855"
	got := SHA256Hex("")
	if got != want {
		t.Errorf("SHA256Hex(\"\") = %s, want %s", got, want)
	}
}

func TestIteratedSHA256(t *testing.T) {
	// 1 iteration should equal a single SHA256
	oneIter := IteratedSHA256("test", 1)
	single := SHA256Hex("test")
	if oneIter != single {
		t.Errorf("IteratedSHA256(\"test\", 1) = %s, want %s", oneIter, single)
	}

	// Multiple iterations should differ from single
	multiIter := IteratedSHA256("test", 5000)
	if multiIter == single {
		t.Error("5000 iterations should differ from single iteration")
	}

	// Same input should produce same output (deterministic)
	again := IteratedSHA256("test", 5000)
	if multiIter != again {
		t.Error("IteratedSHA256 should be deterministic")
	}
}

func TestHashIP(t *testing.T) {
	ip := "192.168.1.1"
	salt := "random-salt-value"
	h := HashIP(ip, salt)

	// Should be 64 hex chars
	if len(h) != 64 {
		t.Errorf("HashIP length = %d, want 64", len(h))
	}

	// Different salt should produce different hash
	otherSalt := HashIP(ip, "different-salt")
	if h == otherSalt {
		t.Error("different salts should produce different hashes")
	}

	// Different IP should produce different hash
	otherIP := HashIP("10.0.0.1", salt)
	if h == otherIP {
		t.Error("different IPs should produce different hashes")
	}
}

func TestLogPrefix(t *testing.T) {
	p := LogPrefix("192.168.1.1")
	if len(p) != 12 {
		t.Errorf("LogPrefix length = %d, want 12", len(p))
	}
	if p != LogPrefix("192.168.1.1") {
		t.Error("LogPrefix should be deterministic")
	}
	if p == LogPrefix("10.0.0.1") {
		t.Error("different IPs should produce different prefixes")
	}
}
