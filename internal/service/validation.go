package service

import (
	"context"
	"errors"
	"net"
	"net/url"
	"regexp"
	"strings"
	"time"
	"unicode"

	"github.com/nyaruka/phonenumbers"
	"golang.org/x/net/idna"
)

var (
	emailPattern = regexp.MustCompile(`^[a-z0-9._%+\-']+@[a-z0-9.-]+\.[a-z]{2,}$`)
	zipPattern   = regexp.MustCompile(`^(\d{5}(-\d{4})?|\d{3} \d{2})$`)
	idnaProfile  = idna.Lookup
)

const (
	trackingPrefix     = "utm_"
	defaultPhoneRegion = "CZ"
	minPasswordLength  = 6
)

// DNSResolver abstracts DNS lookups to simplify testing.
type DNSResolver interface {
	LookupMX(ctx context.Context, domain string) ([]*net.MX, error)
}

// ContactValidator normalises the contact details of a service.
type ContactValidator struct {
	Region      string
	dnsResolver DNSResolver
}

// ContactValidatorOption configures optional dependencies.
type ContactValidatorOption func(*ContactValidator)

// WithDNSResolver enables MX verification of email domains.
func WithDNSResolver(resolver DNSResolver) ContactValidatorOption {
	return func(v *ContactValidator) {
		v.dnsResolver = resolver
	}
}

// WithSystemDNS verifies email domains against the system resolver.
func WithSystemDNS() ContactValidatorOption {
	return WithDNSResolver(net.DefaultResolver)
}

// NewContactValidator builds a validator for the given phone region.
func NewContactValidator(region string, opts ...ContactValidatorOption) *ContactValidator {
	region = strings.ToUpper(strings.TrimSpace(region))
	if region == "" {
		region = defaultPhoneRegion
	}
	v := &ContactValidator{Region: region}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Phone returns the E.164 form of raw or a ValidationError.
func (v *ContactValidator) Phone(raw string) (string, error) {
	normalized := normalizePhone(raw, v.Region)
	if normalized == "" {
		return "", invalid("invalid phone number")
	}
	return normalized, nil
}

// Email lower-cases raw, converts an IDN domain to ASCII and, when a resolver
// is configured, requires an MX record.
func (v *ContactValidator) Email(ctx context.Context, raw string) (string, error) {
	email := strings.ToLower(strings.TrimSpace(raw))
	local, domain, ok := strings.Cut(email, "@")
	if !ok || local == "" {
		return "", invalid("invalid email address")
	}
	asciiDomain, err := idnaProfile.ToASCII(domain)
	if err != nil || asciiDomain == "" || !isDomainValid(asciiDomain) {
		return "", invalid("invalid email address")
	}
	email = local + "@" + asciiDomain
	if !emailPattern.MatchString(email) {
		return "", invalid("invalid email address")
	}
	if v.dnsResolver != nil && !v.hasMXRecord(ctx, asciiDomain) {
		return "", invalid("email domain does not accept mail")
	}
	return email, nil
}

// Website accepts http(s) URLs, defaulting a missing scheme to https and
// stripping tracking parameters.
func (v *ContactValidator) Website(raw string) (string, error) {
	u, err := sanitizeURL(raw)
	if err != nil {
		return "", invalid("invalid website url")
	}
	stripTracking(u)
	return u.String(), nil
}

// ZipCode accepts US style ZIP codes and the Czech "NNN NN" form.
func (v *ContactValidator) ZipCode(raw string) (string, error) {
	zip := strings.TrimSpace(raw)
	if !zipPattern.MatchString(zip) {
		return "", invalid("invalid zip code")
	}
	return zip, nil
}

func (v *ContactValidator) hasMXRecord(ctx context.Context, domain string) bool {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	records, err := v.dnsResolver.LookupMX(ctx, domain)
	return err == nil && len(records) > 0
}

// validatePassword requires a minimum length plus at least one letter and one digit.
func validatePassword(password string) error {
	if len([]rune(password)) < minPasswordLength {
		return invalid("password must be at least 6 characters")
	}
	var hasLetter, hasDigit bool
	for _, r := range password {
		switch {
		case unicode.IsLetter(r):
			hasLetter = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	if !hasLetter || !hasDigit {
		return invalid("password must contain at least one letter and one number")
	}
	return nil
}

func validateLength(value, field string, min, max int) error {
	n := len([]rune(value))
	if n < min {
		return invalid(field + " is too short")
	}
	if max > 0 && n > max {
		return invalid(field + " is too long")
	}
	return nil
}

func sanitizeURL(raw string) (*url.URL, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, errors.New("empty url")
	}
	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return nil, errors.New("invalid url")
	}
	scheme := strings.ToLower(u.Scheme)
	if scheme != "http" && scheme != "https" {
		return nil, errors.New("unsupported scheme")
	}
	u.Scheme = scheme
	host, err := idnaProfile.ToASCII(u.Hostname())
	if err != nil || !isDomainValid(host) {
		return nil, errors.New("invalid host")
	}
	if port := u.Port(); port != "" {
		u.Host = net.JoinHostPort(host, port)
	} else {
		u.Host = host
	}
	return u, nil
}

func stripTracking(u *url.URL) {
	if u == nil {
		return
	}
	query := u.Query()
	changed := false
	for key := range query {
		if strings.HasPrefix(strings.ToLower(key), trackingPrefix) {
			query.Del(key)
			changed = true
		}
	}
	if changed {
		u.RawQuery = query.Encode()
	}
}

func normalizePhone(raw, region string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	if region == "" {
		region = defaultPhoneRegion
	}
	number, err := phonenumbers.Parse(raw, region)
	if err != nil {
		return ""
	}
	if !phonenumbers.IsPossibleNumber(number) || !phonenumbers.IsValidNumber(number) {
		return ""
	}
	return phonenumbers.Format(number, phonenumbers.E164)
}

func isDomainValid(domain string) bool {
	if strings.Count(domain, ".") == 0 {
		return false
	}
	for _, part := range strings.Split(domain, ".") {
		if part == "" || strings.HasPrefix(part, "-") || strings.HasSuffix(part, "-") {
			return false
		}
	}
	return true
}

func trimmedPtr(value *string) *string {
	if value == nil {
		return nil
	}
	return normalizeString(*value)
}

func normalizeString(value string) *string {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	return &value
}
