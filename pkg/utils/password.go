package utils

import "golang.org/x/crypto/bcrypt"

// HashPassword returns a bcrypt hash with the salt embedded. bcrypt only
// fails on absurd cost values, so the error is swallowed here.
func HashPassword(pw string) string {
	b, _ := bcrypt.GenerateFromPassword([]byte(pw), bcrypt.DefaultCost)
	return string(b)
}

func CheckPassword(pw, hashed string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(pw)) == nil
}
