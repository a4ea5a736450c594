package common

import "crypto/rand"

// Ambiguous characters (0/O, 1/l/I) are left out since these strings
// end up in emailed verification links that users sometimes retype
const randomStringCharset = "abcdefghijkmnopqrstuvwxyzABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// GenerateRandomString returns a cryptographically random string of
// the requested length drawn from an unambiguous alphanumeric charset
func GenerateRandomString(length int) (string, error) {
	bytes := make([]byte, length)
	charsetLength := byte(len(randomStringCharset))

	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}

	for i := range bytes {
		bytes[i] = randomStringCharset[bytes[i]%charsetLength]
	}

	return string(bytes), nil
}
