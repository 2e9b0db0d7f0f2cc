package record

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/zonekit/zonekit/pkg/model"
)

var caaTags = map[string]bool{
	"issue":     true,
	"issuewild": true,
	"iodef":     true,
}

// Compose validates the type-specific fields of a payload and produces the
// canonical value string stored for the record, plus the separately stored
// priority where the type carries one. Parse is its exact inverse.
func Compose(rt model.RecordType, name string, p model.RecordPayload) (string, *int, error) {
	switch rt {
	case model.RecordTypeA:
		if !IsIPv4(p.Value) {
			return "", nil, model.InvalidInput("value", "must be a valid IPv4 address")
		}
		return p.Value, nil, nil

	case model.RecordTypeAAAA:
		if !IsIPv6(p.Value) {
			return "", nil, model.InvalidInput("value", "must be a valid IPv6 address")
		}
		return p.Value, nil, nil

	case model.RecordTypeCname:
		if IsApex(name) {
			return "", nil, model.InvalidInput("name", "apex cannot be a CNAME")
		}
		if !IsFQDN(p.Value) {
			return "", nil, model.InvalidInput("value", "must be a fully-qualified domain name")
		}
		return p.Value, nil, nil

	case model.RecordTypeNs:
		if !IsFQDN(p.Value) {
			return "", nil, model.InvalidInput("value", "must be a fully-qualified domain name")
		}
		return p.Value, nil, nil

	case model.RecordTypeMx:
		if IsIPv4(p.Value) || IsIPv6(p.Value) {
			return "", nil, model.InvalidInput("value", "MX value must be a hostname, not an IP address")
		}
		if !IsFQDN(p.Value) {
			return "", nil, model.InvalidInput("value", "must be a fully-qualified domain name")
		}
		if p.Priority == nil || !IsValidPriority(*p.Priority) {
			return "", nil, model.InvalidInput("priority", "priority 0-65535 is required for MX records")
		}
		return p.Value, p.Priority, nil

	case model.RecordTypeTxt:
		if len(p.Value) < 1 || len(p.Value) > 255 {
			return "", nil, model.InvalidInput("value", "must be 1-255 characters")
		}
		return p.Value, nil, nil

	case model.RecordTypePtr:
		if !IsReverseName(p.Value) {
			return "", nil, model.InvalidInput("value", "must be an in-addr.arpa or ip6.arpa reverse-zone name")
		}
		return p.Value, nil, nil

	case model.RecordTypeSrv:
		return composeSRV(name, p)

	case model.RecordTypeSoa:
		return composeSOA(p)

	case model.RecordTypeCaa:
		return composeCAA(p)
	}

	return "", nil, model.InvalidInput("type", "invalid record type %q", string(rt))
}

func composeSRV(name string, p model.RecordPayload) (string, *int, error) {
	if !IsServiceName(name) {
		return "", nil, model.InvalidInput("name", "must match _<service>._tcp or _<service>._udp")
	}
	if p.Priority == nil || !IsValidPriority(*p.Priority) {
		return "", nil, model.InvalidInput("priority", "must be 0-65535")
	}
	if p.Weight == nil || !IsValidPriority(*p.Weight) {
		return "", nil, model.InvalidInput("weight", "must be 0-65535")
	}
	if p.Port == nil || !IsValidPort(*p.Port) {
		return "", nil, model.InvalidInput("port", "must be 1-65535")
	}
	if !IsFQDN(p.Target) {
		return "", nil, model.InvalidInput("target", "must be a fully-qualified domain name")
	}

	value := fmt.Sprintf("%d %d %d %s", *p.Priority, *p.Weight, *p.Port, p.Target)
	return value, p.Priority, nil
}

// composeSOA stores the admin email exactly as given; the value is
// space-separated and an email can never contain a space, so the roundtrip
// back out of storage is lossless.
func composeSOA(p model.RecordPayload) (string, *int, error) {
	if !IsFQDN(p.Primary) {
		return "", nil, model.InvalidInput("primary", "must be a fully-qualified domain name")
	}
	if !IsEmail(p.Admin) {
		return "", nil, model.InvalidInput("admin", "must be a valid email address")
	}
	for _, f := range []struct {
		name string
		val  *int64
	}{
		{"serial", p.Serial},
		{"refresh", p.Refresh},
		{"retry", p.Retry},
		{"expire", p.Expire},
		{"minimum", p.Minimum},
	} {
		if f.val == nil || *f.val < 0 {
			return "", nil, model.InvalidInput(f.name, "must be a non-negative integer")
		}
	}

	value := fmt.Sprintf("%s %s %d %d %d %d %d",
		p.Primary, p.Admin, *p.Serial, *p.Refresh, *p.Retry, *p.Expire, *p.Minimum)
	return value, nil, nil
}

func composeCAA(p model.RecordPayload) (string, *int, error) {
	if p.Flags == nil || *p.Flags < 0 || *p.Flags > 255 {
		return "", nil, model.InvalidInput("flags", "must be 0-255")
	}
	if !caaTags[p.Tag] {
		return "", nil, model.InvalidInput("tag", "must be one of issue, issuewild, iodef")
	}
	if len(p.Value) < 1 || len(p.Value) > 255 {
		return "", nil, model.InvalidInput("value", "must be 1-255 characters")
	}

	return fmt.Sprintf("%d %s %s", *p.Flags, p.Tag, p.Value), nil, nil
}

// Parse splits a stored canonical value back into its structured fields.
func Parse(rt model.RecordType, value string) (model.RecordPayload, error) {
	p := model.RecordPayload{Type: rt}

	switch rt {
	case model.RecordTypeSrv:
		parts := strings.Split(value, " ")
		if len(parts) != 4 {
			return p, model.InvalidInput("value", "malformed SRV value %q", value)
		}
		prio, err1 := strconv.Atoi(parts[0])
		weight, err2 := strconv.Atoi(parts[1])
		port, err3 := strconv.Atoi(parts[2])
		if err1 != nil || err2 != nil || err3 != nil {
			return p, model.InvalidInput("value", "malformed SRV value %q", value)
		}
		p.Priority, p.Weight, p.Port, p.Target = &prio, &weight, &port, parts[3]
		return p, nil

	case model.RecordTypeSoa:
		parts := strings.Split(value, " ")
		if len(parts) != 7 {
			return p, model.InvalidInput("value", "malformed SOA value %q", value)
		}
		nums := make([]int64, 5)
		for i, s := range parts[2:] {
			n, err := strconv.ParseInt(s, 10, 64)
			if err != nil {
				return p, model.InvalidInput("value", "malformed SOA value %q", value)
			}
			nums[i] = n
		}
		p.Primary, p.Admin = parts[0], parts[1]
		p.Serial, p.Refresh, p.Retry, p.Expire, p.Minimum =
			&nums[0], &nums[1], &nums[2], &nums[3], &nums[4]
		return p, nil

	case model.RecordTypeCaa:
		// The CAA value may itself contain spaces, so only the first two
		// fields are split off.
		parts := strings.SplitN(value, " ", 3)
		if len(parts) != 3 {
			return p, model.InvalidInput("value", "malformed CAA value %q", value)
		}
		flags, err := strconv.Atoi(parts[0])
		if err != nil {
			return p, model.InvalidInput("value", "malformed CAA value %q", value)
		}
		p.Flags, p.Tag, p.Value = &flags, parts[1], parts[2]
		return p, nil
	}

	p.Value = value
	return p, nil
}

// SOASerial extracts the serial from a stored SOA value.
func SOASerial(value string) (int64, error) {
	p, err := Parse(model.RecordTypeSoa, value)
	if err != nil {
		return 0, err
	}
	return *p.Serial, nil
}
