package analyzer

import (
	"regexp"
	"strings"

	"cv-match-go/internal/types"
)

var (
	emailPattern = regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`)

	// French national, French international, generic international.
	phonePatterns = []*regexp.Regexp{
		regexp.MustCompile(`\b0[1-9](?:[\s.-]?\d{2}){4}\b`),
		regexp.MustCompile(`\+33[\s.]?[1-9](?:[\s.-]?\d{2}){4}\b`),
		regexp.MustCompile(`\+\d{1,3}[\s.-]?\d{9,12}\b`),
	}

	nonDigits = regexp.MustCompile(`\D`)
)

// extractPersonalInfo finds contact details and masks them before they
// leave the analyzer. Full values are never stored or logged.
func extractPersonalInfo(text string) types.PersonalInfo {
	var info types.PersonalInfo

	if email := emailPattern.FindString(text); email != "" {
		info.Email = maskEmail(email)
	}
	for _, p := range phonePatterns {
		if phone := p.FindString(text); phone != "" {
			info.Phone = maskPhone(phone)
			break
		}
	}
	return info
}

// maskEmail keeps the first and last character of the local part.
func maskEmail(email string) string {
	at := strings.LastIndex(email, "@")
	local, domain := email[:at], email[at+1:]
	var masked string
	if len(local) > 2 {
		masked = local[:1] + strings.Repeat("*", len(local)-2) + local[len(local)-1:]
	} else {
		masked = local[:1] + "*"
	}
	return masked + "@" + domain
}

// maskPhone keeps the first two and last two digits.
func maskPhone(phone string) string {
	digits := nonDigits.ReplaceAllString(phone, "")
	if len(digits) >= 4 {
		return digits[:2] + strings.Repeat("*", len(digits)-4) + digits[len(digits)-2:]
	}
	return strings.Repeat("*", len(digits))
}
