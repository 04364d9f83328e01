// Package password owns credential hashing and the password strength policy.
package password

import (
	"unicode"

	"github.com/alexedwards/argon2id"
	"github.com/go-playground/validator/v10"
)

// Hasher hashes and verifies passwords with argon2id. The pepper is appended
// to every password before hashing so a database dump alone is not enough for
// an offline attack.
type Hasher struct {
	pepper string
	params *argon2id.Params
}

func NewHasher(pepper string) *Hasher {
	return &Hasher{pepper: pepper, params: argon2id.DefaultParams}
}

func (h *Hasher) Hash(password string) (string, error) {
	return argon2id.CreateHash(password+h.pepper, h.params)
}

// Verify reports whether password matches hash. argon2id recomputes the full
// hash before comparing, so mismatches cost the same as matches.
func (h *Hasher) Verify(password, hash string) (bool, error) {
	return argon2id.ComparePasswordAndHash(password+h.pepper, hash)
}

// Strong reports whether pwd satisfies the policy: at least 8 runes with at
// least one uppercase letter, one lowercase letter and one digit.
func Strong(pwd string) bool {
	var upper, lower, digit bool
	n := 0
	for _, r := range pwd {
		n++
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		}
	}
	return n >= 8 && upper && lower && digit
}

// RegisterStrongPolicy installs the "strongpwd" rule used by the DTO tags.
func RegisterStrongPolicy(v *validator.Validate) error {
	return v.RegisterValidation("strongpwd", func(fl validator.FieldLevel) bool {
		return Strong(fl.Field().String())
	})
}
