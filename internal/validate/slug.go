package validate

var (
	allowedSymbolsInSlug = []rune{'-'}
)

const (
	SlugMinLength = 1
	SlugMaxLength = 64
)

// Slug accepts lowercased latin alphanumerics separated by single
// dashes, the format produced by common.Slugify.
func Slug(slug string) error {
	return do(
		slug,
		andS(
			hasMinLength(SlugMinLength),
			hasMaxLength(SlugMaxLength),
			isPrefixedWithLatinAlnum(),
			isPostfixedWithLatinAlnum(),
		),
		orR(
			isLatinLowerAlnum(),
			isCharacterInAllowlist(allowedSymbolsInSlug),
		),
	)
}
