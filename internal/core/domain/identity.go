package domain

import "strings"

type IdentityKind string

const (
	KindCommunicationUser IdentityKind = "communicationUser"
	KindTeamsUser         IdentityKind = "microsoftTeamsUser"
	KindTeamsApp          IdentityKind = "microsoftTeamsApp"
	KindPhoneNumber       IdentityKind = "phoneNumber"
	KindUnknown           IdentityKind = "unknown"
)

// Identity is a principal issued by the credential service or typed in as a
// callee. RawID is the flat identifier string ("8:acs:...", "4:+1555...").
type Identity struct {
	Kind  IdentityKind
	RawID string
}

var identityPrefixes = []struct {
	prefix string
	kind   IdentityKind
}{
	{"8:acs:", KindCommunicationUser},
	{"8:spool:", KindCommunicationUser},
	{"8:dod-acs:", KindCommunicationUser},
	{"8:gcch-acs:", KindCommunicationUser},
	{"8:teamsvisitor:", KindTeamsUser},
	{"8:orgid:", KindTeamsUser},
	{"8:dod:", KindTeamsUser},
	{"8:gcch:", KindTeamsUser},
	{"28:orgid:", KindTeamsApp},
	{"28:dod:", KindTeamsApp},
	{"28:gcch:", KindTeamsApp},
	{"4:", KindPhoneNumber},
}

// ParseIdentity classifies a flat identifier. Unrecognised prefixes yield
// KindUnknown, never an error.
func ParseIdentity(raw string) Identity {
	raw = strings.TrimSpace(raw)
	for _, p := range identityPrefixes {
		if strings.HasPrefix(raw, p.prefix) {
			return Identity{Kind: p.kind, RawID: raw}
		}
	}
	return Identity{Kind: KindUnknown, RawID: raw}
}

func (i Identity) IsCommunicationUser() bool {
	return i.Kind == KindCommunicationUser && i.RawID != ""
}

func (i Identity) String() string {
	return i.RawID
}
