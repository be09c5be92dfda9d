package service

import "strings"

// Known throwaway-mail domains. Registrations from these are rejected before
// any OTP is issued.
var disposableEmailDomains = map[string]bool{
	"mailinator.com":    true,
	"yopmail.com":       true,
	"guerrillamail.com": true,
	"sharklasers.com":   true,
	"10minutemail.com":  true,
	"temp-mail.org":     true,
	"tempmail.com":      true,
	"throwawaymail.com": true,
	"trashmail.com":     true,
	"getnada.com":       true,
	"maildrop.cc":       true,
	"dispostable.com":   true,
	"fakeinbox.com":     true,
	"mintemail.com":     true,
	"mohmal.com":        true,
	"mailnesia.com":     true,
	"spamgourmet.com":   true,
	"mytemp.email":      true,
}

func IsDisposableEmail(email string) bool {
	at := strings.LastIndex(email, "@")
	if at < 0 {
		return false
	}
	domain := strings.ToLower(strings.TrimSpace(email[at+1:]))
	return disposableEmailDomains[domain]
}
