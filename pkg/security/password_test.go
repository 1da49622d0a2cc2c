package security_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/vendaflow/backoffice/pkg/config"
	"github.com/vendaflow/backoffice/pkg/security"
)

var cheapParams = config.PasswordConfig{
	ArgonMemoryKB:    1024,
	ArgonTime:        1,
	ArgonParallelism: 1,
	ArgonSaltLen:     16,
	ArgonKeyLen:      32,
}

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := security.HashPassword("senha-forte", cheapParams)
	if err != nil {
		t.Fatalf("HashPassword returned error: %v", err)
	}
	if !strings.HasPrefix(hash, "$argon2id$v=19$m=1024,t=1,p=1$") {
		t.Fatalf("unexpected digest format %q", hash)
	}

	ok, err := security.VerifyPassword("senha-forte", hash)
	if err != nil || !ok {
		t.Fatalf("expected correct password to verify, ok=%v err=%v", ok, err)
	}

	ok, err = security.VerifyPassword("senha-errada", hash)
	if err != nil {
		t.Fatalf("VerifyPassword returned error for wrong password: %v", err)
	}
	if ok {
		t.Fatal("VerifyPassword returned true for incorrect password")
	}
}

func TestHashPasswordSaltsEveryDigest(t *testing.T) {
	first, _ := security.HashPassword("same", cheapParams)
	second, _ := security.HashPassword("same", cheapParams)
	if first == second {
		t.Fatal("expected distinct digests for the same password")
	}
}

func TestHashPasswordRejectsEmpty(t *testing.T) {
	if _, err := security.HashPassword("", cheapParams); err == nil {
		t.Fatal("expected empty password to fail")
	}
}

func TestVerifyPasswordMalformedDigest(t *testing.T) {
	for _, encoded := range []string{
		"",
		"plaintext",
		"$argon2i$v=19$m=1024,t=1,p=1$c2FsdA$a2V5",
		"$argon2id$v=18$m=1024,t=1,p=1$c2FsdA$a2V5",
		"$argon2id$v=19$m=x,t=1,p=1$c2FsdA$a2V5",
		"$argon2id$v=19$m=1024,t=1,p=1$!!$a2V5",
	} {
		if _, err := security.VerifyPassword("x", encoded); !errors.Is(err, security.ErrInvalidHash) {
			t.Fatalf("expected ErrInvalidHash for %q, got %v", encoded, err)
		}
	}
}

func TestParamsFromConfigClamps(t *testing.T) {
	p := security.ParamsFromConfig(config.PasswordConfig{})
	if p.Memory != 8 || p.Time != 1 || p.Parallelism != 1 || p.SaltLen != 8 || p.KeyLen != 16 {
		t.Fatalf("unexpected clamped params %+v", p)
	}
}
