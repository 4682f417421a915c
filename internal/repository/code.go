package repository

import (
	"crypto/rand"
	"math/big"
)

const (
	joinCodeLength   = 6
	joinCodeAttempts = 5
	joinCodeChars    = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
)

func generateCode(length int) string {
	code := make([]byte, length)
	max := big.NewInt(int64(len(joinCodeChars)))
	for i := range code {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			panic(err)
		}
		code[i] = joinCodeChars[n.Int64()]
	}
	return string(code)
}
