package validators

import (
	"regexp"
	"strings"
)

var phonePattern = regexp.MustCompile(`^\+?[1-9]\d{6,14}$`)

var phoneNoise = strings.NewReplacer(" ", "", "-", "", "(", "", ")", "", ".", "")

// IsPhoneValid accepts international numbers of 7 to 15 digits with an
// optional leading +. Spaces, dashes, dots and parentheses are ignored.
func IsPhoneValid(phone string) bool {
	return phonePattern.MatchString(phoneNoise.Replace(phone))
}
