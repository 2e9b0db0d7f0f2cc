package record

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zonekit/zonekit/pkg/model"
)

func intPtr(v int) *int       { return &v }
func int64Ptr(v int64) *int64 { return &v }

func assertInvalidInput(t *testing.T, err error, field string) {
	t.Helper()
	var e *model.Error
	require.True(t, errors.As(err, &e), "expected *model.Error, got %v", err)
	assert.Equal(t, model.KindInvalidInput, e.Kind)
	assert.Equal(t, field, e.Field)
}

func TestComposeAddressRecords(t *testing.T) {
	value, prio, err := Compose(model.RecordTypeA, "www", model.RecordPayload{Value: "192.0.2.10"})
	require.NoError(t, err)
	assert.Equal(t, "192.0.2.10", value)
	assert.Nil(t, prio)

	_, _, err = Compose(model.RecordTypeA, "www", model.RecordPayload{Value: "2001:db8::1"})
	assertInvalidInput(t, err, "value")

	value, _, err = Compose(model.RecordTypeAAAA, "www", model.RecordPayload{Value: "2001:db8::1"})
	require.NoError(t, err)
	assert.Equal(t, "2001:db8::1", value)

	_, _, err = Compose(model.RecordTypeAAAA, "www", model.RecordPayload{Value: "192.0.2.10"})
	assertInvalidInput(t, err, "value")
}

func TestComposeCNAME(t *testing.T) {
	value, _, err := Compose(model.RecordTypeCname, "www", model.RecordPayload{Value: "target.example.com"})
	require.NoError(t, err)
	assert.Equal(t, "target.example.com", value)

	_, _, err = Compose(model.RecordTypeCname, "@", model.RecordPayload{Value: "target.example.com"})
	assertInvalidInput(t, err, "name")

	_, _, err = Compose(model.RecordTypeCname, "", model.RecordPayload{Value: "target.example.com"})
	assertInvalidInput(t, err, "name")

	_, _, err = Compose(model.RecordTypeCname, "www", model.RecordPayload{Value: "not valid"})
	assertInvalidInput(t, err, "value")
}

func TestComposeMX(t *testing.T) {
	value, prio, err := Compose(model.RecordTypeMx, "@", model.RecordPayload{
		Value:    "mail.example.com",
		Priority: intPtr(10),
	})
	require.NoError(t, err)
	assert.Equal(t, "mail.example.com", value)
	require.NotNil(t, prio)
	assert.Equal(t, 10, *prio)

	_, _, err = Compose(model.RecordTypeMx, "@", model.RecordPayload{Value: "192.0.2.1", Priority: intPtr(10)})
	assertInvalidInput(t, err, "value")

	_, _, err = Compose(model.RecordTypeMx, "@", model.RecordPayload{Value: "mail.example.com"})
	assertInvalidInput(t, err, "priority")

	_, _, err = Compose(model.RecordTypeMx, "@", model.RecordPayload{Value: "mail.example.com", Priority: intPtr(70000)})
	assertInvalidInput(t, err, "priority")
}

func TestComposeTXT(t *testing.T) {
	value, _, err := Compose(model.RecordTypeTxt, "@", model.RecordPayload{Value: "v=spf1 -all"})
	require.NoError(t, err)
	assert.Equal(t, "v=spf1 -all", value)

	_, _, err = Compose(model.RecordTypeTxt, "@", model.RecordPayload{Value: ""})
	assertInvalidInput(t, err, "value")

	long := make([]byte, 256)
	for i := range long {
		long[i] = 'a'
	}
	_, _, err = Compose(model.RecordTypeTxt, "@", model.RecordPayload{Value: string(long)})
	assertInvalidInput(t, err, "value")
}

func TestComposePTR(t *testing.T) {
	value, _, err := Compose(model.RecordTypePtr, "10", model.RecordPayload{Value: "10.2.0.192.in-addr.arpa"})
	require.NoError(t, err)
	assert.Equal(t, "10.2.0.192.in-addr.arpa", value)

	_, _, err = Compose(model.RecordTypePtr, "10", model.RecordPayload{Value: "host.example.com"})
	assertInvalidInput(t, err, "value")
}

func TestComposeSRV(t *testing.T) {
	p := model.RecordPayload{
		Priority: intPtr(10),
		Weight:   intPtr(60),
		Port:     intPtr(5060),
		Target:   "sip.example.com",
	}

	value, prio, err := Compose(model.RecordTypeSrv, "_sip._tcp", p)
	require.NoError(t, err)
	assert.Equal(t, "10 60 5060 sip.example.com", value)
	require.NotNil(t, prio)
	assert.Equal(t, 10, *prio)

	_, _, err = Compose(model.RecordTypeSrv, "sip", p)
	assertInvalidInput(t, err, "name")

	bad := p
	bad.Weight = nil
	_, _, err = Compose(model.RecordTypeSrv, "_sip._tcp", bad)
	assertInvalidInput(t, err, "weight")

	bad = p
	bad.Port = intPtr(0)
	_, _, err = Compose(model.RecordTypeSrv, "_sip._tcp", bad)
	assertInvalidInput(t, err, "port")

	bad = p
	bad.Target = "not a host"
	_, _, err = Compose(model.RecordTypeSrv, "_sip._tcp", bad)
	assertInvalidInput(t, err, "target")
}

func TestComposeSOA(t *testing.T) {
	p := model.RecordPayload{
		Primary: "ns1.example.com",
		Admin:   "admin@example.com",
		Serial:  int64Ptr(2024010101),
		Refresh: int64Ptr(7200),
		Retry:   int64Ptr(3600),
		Expire:  int64Ptr(1209600),
		Minimum: int64Ptr(300),
	}

	value, prio, err := Compose(model.RecordTypeSoa, "@", p)
	require.NoError(t, err)
	assert.Equal(t, "ns1.example.com admin@example.com 2024010101 7200 3600 1209600 300", value)
	assert.Nil(t, prio)

	bad := p
	bad.Admin = "not-an-email"
	_, _, err = Compose(model.RecordTypeSoa, "@", bad)
	assertInvalidInput(t, err, "admin")

	bad = p
	bad.Serial = nil
	_, _, err = Compose(model.RecordTypeSoa, "@", bad)
	assertInvalidInput(t, err, "serial")

	bad = p
	bad.Retry = int64Ptr(-1)
	_, _, err = Compose(model.RecordTypeSoa, "@", bad)
	assertInvalidInput(t, err, "retry")
}

func TestComposeCAA(t *testing.T) {
	value, _, err := Compose(model.RecordTypeCaa, "@", model.RecordPayload{
		Flags: intPtr(0),
		Tag:   "issue",
		Value: "letsencrypt.org",
	})
	require.NoError(t, err)
	assert.Equal(t, "0 issue letsencrypt.org", value)

	_, _, err = Compose(model.RecordTypeCaa, "@", model.RecordPayload{Flags: intPtr(300), Tag: "issue", Value: "x"})
	assertInvalidInput(t, err, "flags")

	_, _, err = Compose(model.RecordTypeCaa, "@", model.RecordPayload{Flags: intPtr(0), Tag: "bogus", Value: "x"})
	assertInvalidInput(t, err, "tag")

	_, _, err = Compose(model.RecordTypeCaa, "@", model.RecordPayload{Flags: intPtr(0), Tag: "iodef", Value: ""})
	assertInvalidInput(t, err, "value")
}

// Composing a payload, parsing the stored value, and composing again must
// yield the identical value string for every type.
func TestComposeParseRoundTrip(t *testing.T) {
	tests := []struct {
		rt      model.RecordType
		name    string
		payload model.RecordPayload
	}{
		{model.RecordTypeA, "www", model.RecordPayload{Value: "192.0.2.10"}},
		{model.RecordTypeAAAA, "www", model.RecordPayload{Value: "2001:db8::1"}},
		{model.RecordTypeCname, "www", model.RecordPayload{Value: "target.example.com"}},
		{model.RecordTypeNs, "@", model.RecordPayload{Value: "ns1.example.com"}},
		{model.RecordTypeMx, "@", model.RecordPayload{Value: "mail.example.com", Priority: intPtr(10)}},
		{model.RecordTypeTxt, "@", model.RecordPayload{Value: "v=spf1 include:_spf.example.com -all"}},
		{model.RecordTypePtr, "10", model.RecordPayload{Value: "10.2.0.192.in-addr.arpa"}},
		{model.RecordTypeSrv, "_sip._tcp", model.RecordPayload{
			Priority: intPtr(10), Weight: intPtr(60), Port: intPtr(5060), Target: "sip.example.com",
		}},
		{model.RecordTypeSoa, "@", model.RecordPayload{
			Primary: "ns1.example.com", Admin: "hostmaster@example.com",
			Serial: int64Ptr(2024010101), Refresh: int64Ptr(7200), Retry: int64Ptr(3600),
			Expire: int64Ptr(1209600), Minimum: int64Ptr(300),
		}},
		{model.RecordTypeCaa, "@", model.RecordPayload{
			Flags: intPtr(0), Tag: "iodef", Value: "mailto:security@example.com",
		}},
	}

	for _, tt := range tests {
		t.Run(string(tt.rt), func(t *testing.T) {
			stored, _, err := Compose(tt.rt, tt.name, tt.payload)
			require.NoError(t, err)

			parsed, err := Parse(tt.rt, stored)
			require.NoError(t, err)

			again, _, err := Compose(tt.rt, tt.name, parsed)
			require.NoError(t, err)
			assert.Equal(t, stored, again)
		})
	}
}

func TestParseMalformed(t *testing.T) {
	_, err := Parse(model.RecordTypeSrv, "10 60 sip.example.com")
	assertInvalidInput(t, err, "value")

	_, err = Parse(model.RecordTypeSrv, "a b c d")
	assertInvalidInput(t, err, "value")

	_, err = Parse(model.RecordTypeSoa, "ns1.example.com admin@example.com 1 2 3")
	assertInvalidInput(t, err, "value")

	_, err = Parse(model.RecordTypeCaa, "0 issue")
	assertInvalidInput(t, err, "value")
}

func TestParseCAAValueWithSpaces(t *testing.T) {
	p, err := Parse(model.RecordTypeCaa, `0 issue letsencrypt.org; validationmethods=dns-01`)
	require.NoError(t, err)
	assert.Equal(t, "issue", p.Tag)
	assert.Equal(t, "letsencrypt.org; validationmethods=dns-01", p.Value)
}

func TestSOASerial(t *testing.T) {
	serial, err := SOASerial("ns1.example.com admin@example.com 2024010101 7200 3600 1209600 300")
	require.NoError(t, err)
	assert.Equal(t, int64(2024010101), serial)

	_, err = SOASerial("garbage")
	assert.Error(t, err)
}
