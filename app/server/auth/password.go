package auth

import (
	"fmt"

	"github.com/alexedwards/argon2id"
)

// HashParams 是 argon2id 的工作参数，启动前可调整，运行期间不要更改
var HashParams = argon2id.DefaultParams

func HashPassword(plain string) (string, error) {
	digest, err := argon2id.CreateHash(plain, HashParams)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return digest, nil
}

func VerifyPassword(plain string, digest string) (bool, error) {
	match, _, err := argon2id.CheckHash(plain, digest)
	if err != nil {
		return false, fmt.Errorf("verify password: %w", err)
	}
	return match, nil
}
