package record

import (
	"net"
	"regexp"
	"strings"
)

const (
	MinTTL = 60
	MaxTTL = 86400
)

var (
	labelRegex       = regexp.MustCompile(`^[a-zA-Z0-9]([a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?$`)
	recordNameRegex  = regexp.MustCompile(`^[a-zA-Z0-9._-]+$`)
	serviceNameRegex = regexp.MustCompile(`^_[a-zA-Z0-9-]+\._(?i:tcp|udp)$`)
	reverseIPv4Regex = regexp.MustCompile(`^(?:\d{1,3}\.){1,4}(?i:in-addr\.arpa)$`)
	reverseIPv6Regex = regexp.MustCompile(`^(?:[0-9a-fA-F]\.){1,32}(?i:ip6\.arpa)$`)
	emailRegex       = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
)

// IsIPv4 reports whether s is a literal IPv4 address, four dot-separated
// decimal octets.
func IsIPv4(s string) bool {
	ip := net.ParseIP(s)
	return ip != nil && !strings.Contains(s, ":")
}

// IsIPv6 reports whether s is a literal IPv6 address, including compressed
// and IPv4-mapped forms.
func IsIPv6(s string) bool {
	ip := net.ParseIP(s)
	return ip != nil && strings.Contains(s, ":")
}

// IsFQDN reports whether s is a syntactically valid fully-qualified domain
// name: dot-separated labels of 1-63 alphanumeric-and-hyphen characters, no
// leading or trailing hyphen, at most 253 characters overall, and an
// alphabetic-led top label. A single trailing dot is tolerated.
func IsFQDN(s string) bool {
	s = strings.TrimSuffix(s, ".")
	if s == "" || len(s) > 253 {
		return false
	}

	labels := strings.Split(s, ".")
	for _, label := range labels {
		if !labelRegex.MatchString(label) {
			return false
		}
	}

	top := labels[len(labels)-1]
	c := top[0]
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

// IsApex reports whether s is the zone-apex shorthand.
func IsApex(s string) bool {
	return s == "@" || s == ""
}

// IsRecordName reports whether s is a valid owner name within a zone: the
// apex marker, a lone wildcard, or alphanumerics plus dot, underscore and
// hyphen.
func IsRecordName(s string) bool {
	if s == "@" || s == "*" {
		return true
	}
	return recordNameRegex.MatchString(s)
}

func IsEmail(s string) bool {
	return emailRegex.MatchString(s)
}

func IsValidTTL(ttl int) bool {
	return ttl >= MinTTL && ttl <= MaxTTL
}

// IsValidPriority covers MX/SRV priority and SRV weight.
func IsValidPriority(p int) bool {
	return p >= 0 && p <= 65535
}

func IsValidPort(p int) bool {
	return p >= 1 && p <= 65535
}

// IsServiceName reports whether s follows the SRV owner-name convention
// "_<service>._tcp" or "_<service>._udp".
func IsServiceName(s string) bool {
	return serviceNameRegex.MatchString(s)
}

// IsReverseName reports whether s is an in-addr.arpa or ip6.arpa
// reverse-zone literal, the only value form a PTR record accepts.
func IsReverseName(s string) bool {
	return reverseIPv4Regex.MatchString(s) || reverseIPv6Regex.MatchString(s)
}
