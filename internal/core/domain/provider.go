package domain

// Provider identifies an external Google service a user can connect.
type Provider string

const (
	ProviderGmail     Provider = "gmail"
	ProviderClassroom Provider = "classroom"
)

// ParseProvider validates a provider name from untrusted input.
func ParseProvider(s string) (Provider, error) {
	switch Provider(s) {
	case ProviderGmail, ProviderClassroom:
		return Provider(s), nil
	default:
		return "", ErrInvalidProvider
	}
}

// DisplayName returns a human-readable name for the provider.
func (p Provider) DisplayName() string {
	switch p {
	case ProviderGmail:
		return "Gmail"
	case ProviderClassroom:
		return "Google Classroom"
	default:
		return string(p)
	}
}
