package record

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsIPv4(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{"plain address", "192.168.1.1", true},
		{"zeros", "0.0.0.0", true},
		{"broadcast", "255.255.255.255", true},
		{"octet out of range", "256.1.1.1", false},
		{"too few octets", "10.0.0", false},
		{"ipv6 address", "2001:db8::1", false},
		{"hostname", "example.com", false},
		{"empty", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsIPv4(tt.input))
		})
	}
}

func TestIsIPv6(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{"full form", "2001:0db8:0000:0000:0000:0000:0000:0001", true},
		{"compressed", "2001:db8::1", true},
		{"loopback", "::1", true},
		{"ipv4-mapped", "::ffff:192.0.2.1", true},
		{"ipv4 address", "192.168.1.1", false},
		{"garbage", "not:an:ip", false},
		{"empty", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsIPv6(tt.input))
		})
	}
}

func TestIsFQDN(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{"two labels", "example.com", true},
		{"subdomain", "mail.example.com", true},
		{"trailing dot", "example.com.", true},
		{"hyphenated label", "my-host.example.com", true},
		{"single label", "localhost", true},
		{"numeric top label", "example.123", false},
		{"leading hyphen", "-bad.example.com", false},
		{"trailing hyphen", "bad-.example.com", false},
		{"empty label", "bad..example.com", false},
		{"label too long", strings.Repeat("a", 64) + ".com", false},
		{"name too long", strings.Repeat("abcdefghij.", 25) + "com", false},
		{"empty", "", false},
		{"lone dot", ".", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsFQDN(tt.input))
		})
	}
}

func TestIsRecordName(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{"apex", "@", true},
		{"wildcard", "*", true},
		{"simple", "www", true},
		{"dotted", "a.b", true},
		{"underscore service", "_dmarc", true},
		{"hyphen", "my-host", true},
		{"empty", "", false},
		{"space", "bad name", false},
		{"slash", "a/b", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsRecordName(tt.input))
		})
	}
}

func TestIsServiceName(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{"sip tcp", "_sip._tcp", true},
		{"xmpp udp", "_xmpp-client._udp", true},
		{"uppercase proto", "_sip._TCP", true},
		{"missing leading underscore", "sip._tcp", false},
		{"unknown proto", "_sip._sctp", false},
		{"no proto", "_sip", false},
		{"plain name", "www", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsServiceName(tt.input))
		})
	}
}

func TestIsReverseName(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{"ipv4 reverse", "1.2.0.192.in-addr.arpa", true},
		{"ipv4 partial reverse", "2.0.192.in-addr.arpa", true},
		{"uppercase suffix", "1.2.0.192.IN-ADDR.ARPA", true},
		{"ipv6 reverse", "b.a.9.8.7.6.5.0.0.0.0.0.0.0.0.0.0.0.0.0.0.0.0.0.8.b.d.0.1.0.0.2.ip6.arpa", true},
		{"forward name", "example.com", false},
		{"bare suffix", "in-addr.arpa", false},
		{"empty", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsReverseName(tt.input))
		})
	}
}

func TestIsEmail(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{"simple", "admin@example.com", true},
		{"plus tag", "admin+dns@example.com", true},
		{"no at", "admin.example.com", false},
		{"no tld dot", "admin@example", false},
		{"space", "ad min@example.com", false},
		{"empty", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsEmail(tt.input))
		})
	}
}

func TestRangeValidators(t *testing.T) {
	assert.True(t, IsValidTTL(MinTTL))
	assert.True(t, IsValidTTL(MaxTTL))
	assert.True(t, IsValidTTL(3600))
	assert.False(t, IsValidTTL(MinTTL-1))
	assert.False(t, IsValidTTL(MaxTTL+1))

	assert.True(t, IsValidPriority(0))
	assert.True(t, IsValidPriority(65535))
	assert.False(t, IsValidPriority(-1))
	assert.False(t, IsValidPriority(65536))

	assert.True(t, IsValidPort(1))
	assert.True(t, IsValidPort(65535))
	assert.False(t, IsValidPort(0))
	assert.False(t, IsValidPort(65536))
}
