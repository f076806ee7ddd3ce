package validation

import "regexp"

const (
	MaxDescriptionLength = 500
	MaxMessageLength     = 2000
	MaxReasonLength      = 500
)

var (
	emailRegex          = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	cryptoCurrencyRegex = regexp.MustCompile(`^[A-Z]{3,10}$`)
)
