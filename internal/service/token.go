package service

import (
	"crypto/rand"
	"math/big"
	"strings"
)

const (
	subscriptionTokenLength = 25
	tokenAlphabet           = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"
)

// GenerateSubscriptionToken produce un token alfanumérico impredecible apto
// para URLs. Una colisión con un token existente se propaga como violación
// de unicidad del almacén; no se reintenta.
func GenerateSubscriptionToken() (string, error) {
	alphabetLen := big.NewInt(int64(len(tokenAlphabet)))
	var b strings.Builder
	b.Grow(subscriptionTokenLength)
	for i := 0; i < subscriptionTokenLength; i++ {
		n, err := rand.Int(rand.Reader, alphabetLen)
		if err != nil {
			return "", err
		}
		b.WriteByte(tokenAlphabet[n.Int64()])
	}
	return b.String(), nil
}
