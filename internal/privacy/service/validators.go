package service

import (
	"strconv"
	"strings"
)

// placeholderSSNs are well-known example values that appear in documentation
// and test data. They are structurally valid but never real.
var placeholderSSNs = map[string]bool{
	"123456789": true,
	"111111111": true,
	"219099999": true,
	"457555462": true,
}

// placeholderEmailDomains are reserved or conventional example domains.
var placeholderEmailDomains = map[string]bool{
	"example.com": true,
	"example.org": true,
	"example.net": true,
	"test.com":    true,
	"email.com":   true,
	"domain.com":  true,
	"localhost":   true,
}

// placeholderSurnames reject honorific-matched names that are documentation
// stand-ins rather than people.
var placeholderSurnames = map[string]bool{
	"Doe":     true,
	"Example": true,
	"Test":    true,
}

// digitsOnly strips every non-digit character.
func digitsOnly(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// luhnValid runs the Luhn checksum over a digit string.
func luhnValid(digits string) bool {
	if digits == "" {
		return false
	}
	sum := 0
	alternate := false
	for i := len(digits) - 1; i >= 0; i-- {
		c := digits[i]
		if c < '0' || c > '9' {
			return false
		}
		digit := int(c - '0')
		if alternate {
			digit *= 2
			if digit > 9 {
				digit -= 9
			}
		}
		sum += digit
		alternate = !alternate
	}
	return sum%10 == 0
}

// creditCardValid accepts 13-19 digit payment card numbers passing Luhn.
func creditCardValid(raw string) bool {
	digits := digitsOnly(raw)
	if len(digits) < 13 || len(digits) > 19 {
		return false
	}
	return luhnValid(digits)
}

// ssnValid applies the SSA structural rules plus a placeholder deny-list.
// Area 000/666/9xx, group 00, and serial 0000 have never been issued.
func ssnValid(raw string) bool {
	digits := digitsOnly(raw)
	if len(digits) != 9 {
		return false
	}
	if placeholderSSNs[digits] {
		return false
	}
	area, group, serial := digits[:3], digits[3:5], digits[5:]
	if area == "000" || area == "666" || area[0] == '9' {
		return false
	}
	if group == "00" {
		return false
	}
	if serial == "0000" {
		return false
	}
	return true
}

// sinValid accepts 9-digit Canadian Social Insurance Numbers passing Luhn.
func sinValid(raw string) bool {
	digits := digitsOnly(raw)
	if len(digits) != 9 || digits == "000000000" {
		return false
	}
	return luhnValid(digits)
}

// emailValid rejects addresses on reserved example domains.
func emailValid(raw string) bool {
	at := strings.LastIndex(raw, "@")
	if at < 0 {
		return false
	}
	domain := strings.ToLower(raw[at+1:])
	return !placeholderEmailDomains[domain]
}

// phoneValid requires a plausible North American number: 10 digits, or 11
// with a leading country code 1.
func phoneValid(raw string) bool {
	digits := digitsOnly(raw)
	switch len(digits) {
	case 10:
		return digits[0] != '0' && digits[0] != '1'
	case 11:
		return digits[0] == '1' && digits[1] != '0' && digits[1] != '1'
	default:
		return false
	}
}

// ibanValid runs the ISO 13616 mod-97 check.
func ibanValid(raw string) bool {
	cleaned := strings.ToUpper(strings.ReplaceAll(raw, " ", ""))
	if len(cleaned) < 15 || len(cleaned) > 34 {
		return false
	}

	// Move the country code and check digits to the end, then map letters to
	// numbers (A=10 .. Z=35).
	rearranged := cleaned[4:] + cleaned[:4]
	var numeric strings.Builder
	for _, c := range rearranged {
		switch {
		case c >= 'A' && c <= 'Z':
			numeric.WriteString(strconv.Itoa(int(c - 'A' + 10)))
		case c >= '0' && c <= '9':
			numeric.WriteRune(c)
		default:
			return false
		}
	}

	// Piecewise mod 97 to avoid big integers.
	remainder := 0
	for _, c := range numeric.String() {
		remainder = (remainder*10 + int(c-'0')) % 97
	}
	return remainder == 1
}

// ninoValid applies the HMRC prefix rules for UK National Insurance numbers.
func ninoValid(raw string) bool {
	cleaned := strings.ToUpper(strings.ReplaceAll(raw, " ", ""))
	if len(cleaned) != 9 {
		return false
	}
	prefix := cleaned[:2]
	switch prefix {
	case "BG", "GB", "KN", "NK", "NT", "TN", "ZZ":
		return false
	}
	for _, c := range prefix {
		switch c {
		case 'D', 'F', 'I', 'Q', 'U', 'V':
			return false
		}
	}
	// Second letter additionally excludes O.
	return prefix[1] != 'O'
}

// ipValid checks each dotted-quad octet fits in a byte.
func ipValid(raw string) bool {
	parts := strings.Split(raw, ".")
	if len(parts) != 4 {
		return false
	}
	for _, p := range parts {
		if len(p) == 0 || (len(p) > 1 && p[0] == '0') {
			return false
		}
		n, err := strconv.Atoi(p)
		if err != nil || n > 255 {
			return false
		}
	}
	return true
}

// personNameValid rejects placeholder surnames behind honorifics.
func personNameValid(raw string) bool {
	fields := strings.Fields(raw)
	if len(fields) < 2 {
		return false
	}
	return !placeholderSurnames[fields[len(fields)-1]]
}
