package operator

import (
	"regexp"
	"strings"
)

// Network identifies a Cameroonian mobile network operator.
type Network string

const (
	NetworkMTN    Network = "MTN"
	NetworkOrange Network = "ORANGE"
	NetworkCamtel Network = "CAMTEL"
)

// Numbering plans per operator. Anchored and digit-only: any
// non-digit character anywhere rejects the whole string.
var plans = map[Network]*regexp.Regexp{
	NetworkMTN:    regexp.MustCompile(`^(67|68|650|651|652|653|654)\d{6,7}$`),
	NetworkOrange: regexp.MustCompile(`^(69|655|656|657|658|659)\d{6,7}$`),
	NetworkCamtel: regexp.MustCompile(`^(6242|6243|62)\d{6,7}$`),
}

// All returns the supported operators in display order.
func All() []Network {
	return []Network{NetworkMTN, NetworkOrange, NetworkCamtel}
}

// Known reports whether t names a supported operator.
func Known(t Network) bool {
	_, ok := plans[t]
	return ok
}

// Validate reports whether phone matches the numbering plan declared by t.
// The phone is trimmed of surrounding whitespace before matching. An
// operator without a plan rejects every phone.
func Validate(t Network, phone string) bool {
	re, ok := plans[t]
	if !ok {
		return false
	}
	return re.MatchString(strings.TrimSpace(phone))
}
