package validate

import "errors"

var (
	ErrorTotpTokenInvalidLength = errors.New("totp_token_invalid_length")
	ErrorTotpTokenNotNumeric    = errors.New("totp_token_not_numeric")
)

const totpTokenLength = 6

// TotpToken checks that a submitted code is exactly six digits.
func TotpToken(token string) error {
	if len(token) != totpTokenLength {
		return ErrorTotpTokenInvalidLength
	}
	for _, r := range token {
		if r < '0' || r > '9' {
			return ErrorTotpTokenNotNumeric
		}
	}
	return nil
}
