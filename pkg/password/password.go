// Package password encapsula el hash unidireccional de credenciales (bcrypt).
package password

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// Hash devuelve el hash bcrypt de la contraseña en texto plano.
func Hash(plain string) (string, error) {
	if plain == "" {
		return "", errors.New("password: vacío")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// Verify compara la contraseña con el hash almacenado.
func Verify(plain, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
