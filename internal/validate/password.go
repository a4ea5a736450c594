package validate

const (
	minimumPasswordLength = 12
)

// Password enforces the account password policy: at least 12
// characters with upper- and lowercase letters, a digit, and a symbol
func Password(password string) error {
	return do(
		password,
		andS(
			hasMinLength(minimumPasswordLength),
			hasUppercase(),
			hasLowercase(),
			hasDigit(),
			hasSymbol(),
		),
	)
}
