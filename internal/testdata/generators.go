package testdata

import "pgregory.net/rapid"

// EmailGenerator generates syntactically valid addresses.
func EmailGenerator() *rapid.Generator[string] {
	return rapid.StringMatching(`testuser_[a-z0-9]{8}@example\.com`)
}

// InvalidEmailGenerator generates addresses that lack a proper local part,
// domain or single @.
func InvalidEmailGenerator() *rapid.Generator[string] {
	return rapid.OneOf(
		rapid.SampledFrom(InvalidEmails),
		rapid.StringMatching(`[a-z]{1,10}`),
		rapid.StringMatching(`@[a-z]{1,10}\.com`),
		rapid.StringMatching(`[a-z]{1,10}@`),
		rapid.StringMatching(`[a-z]{1,5}@@[a-z]{1,5}\.com`),
	)
}

// WeakPasswordGenerator generates passwords shorter than the accepted minimum.
func WeakPasswordGenerator() *rapid.Generator[string] {
	return rapid.StringMatching(`[a-z0-9]{0,3}`)
}

// PasswordGenerator generates passwords long enough to be accepted.
func PasswordGenerator() *rapid.Generator[string] {
	return rapid.StringMatching(`[A-Za-z0-9!@#]{8,20}`)
}

// UserGenerator generates complete, valid registrations.
func UserGenerator() *rapid.Generator[User] {
	return rapid.Custom(func(t *rapid.T) User {
		password := PasswordGenerator().Draw(t, "password")
		return User{
			FirstName:       rapid.StringMatching(`[A-Z][a-z]{1,11}`).Draw(t, "firstName"),
			LastName:        rapid.StringMatching(`[A-Z][a-z]{1,11}`).Draw(t, "lastName"),
			Email:           EmailGenerator().Draw(t, "email"),
			Phone:           rapid.StringMatching(`\+?[0-9]{7,12}`).Draw(t, "phone"),
			Address:         rapid.StringMatching(`[0-9]{1,4} [A-Z][a-z]{3,10} Street`).Draw(t, "address"),
			City:            rapid.StringMatching(`[A-Z][a-z]{2,10}`).Draw(t, "city"),
			ZipCode:         rapid.StringMatching(`[0-9]{5}`).Draw(t, "zip"),
			Password:        password,
			ConfirmPassword: password,
			AcceptTerms:     true,
			Newsletter:      rapid.Bool().Draw(t, "newsletter"),
		}
	})
}

// ViewportGenerator picks one of the named viewports.
func ViewportGenerator() *rapid.Generator[Viewport] {
	return rapid.SampledFrom(Viewports)
}
