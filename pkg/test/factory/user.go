package factory

import (
	"fmt"
	"math/rand/v2"

	fab "github.com/Goldziher/fabricator"
	"golang.org/x/crypto/bcrypt"
)

// NewUser builds T with random field values. Name, Email, Phone and
// EncryptedPassword get realistic defaults unless overridden.
func NewUser[T any](customData ...map[string]any) T {
	instance := fab.New(*new(T))

	defaults := map[string]any{
		"Name":  fmt.Sprintf("User %d", rand.IntN(100000)),
		"Email": fmt.Sprintf("user%d@example.com", rand.IntN(100000)),
		"Phone": fmt.Sprintf("%010d", rand.Int64N(10000000000)),
	}

	hasEncryptedPassword := false

	for _, data := range customData {
		if _, exists := data["EncryptedPassword"]; exists {
			hasEncryptedPassword = true
		}

		for k, v := range data {
			defaults[k] = v
		}
	}

	if !hasEncryptedPassword {
		encryptedPassword, _ := bcrypt.GenerateFromPassword([]byte("secret12"), bcrypt.MinCost)
		defaults["EncryptedPassword"] = string(encryptedPassword)
	}

	return instance.Build(defaults)
}
