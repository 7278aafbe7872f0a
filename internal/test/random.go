package test

import "math/rand"

const textAlphabet = "abcdefghijklmnopqrstuvwxyz ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// RandomText returns printable text of length within [minLen, maxLen] with no
// leading or trailing spaces.
func RandomText(minLen, maxLen int) string {
	minLen = max(minLen, 1)
	maxLen = max(maxLen, minLen)
	buf := make([]byte, minLen+rand.Intn(maxLen-minLen+1))
	for i := range buf {
		buf[i] = textAlphabet[rand.Intn(len(textAlphabet))]
	}
	buf[0], buf[len(buf)-1] = 'x', 'x'
	return string(buf)
}
