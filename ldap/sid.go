package ldap

import (
	"fmt"

	"github.com/bwmarrin/go-objectsid"
	"github.com/go-ldap/ldap/v3"
)

// SIDHandler provides SID operations for Active Directory.
// Active Directory stores SIDs in binary format that needs to be converted to
// human-readable strings.
type SIDHandler struct{}

// NewSIDHandler creates a new SID handler instance.
func NewSIDHandler() *SIDHandler {
	return &SIDHandler{}
}

// ConvertBinarySIDToString converts a binary SID to its string representation.
// Active Directory stores objectSid as binary data that needs conversion to
// S-1-5-21-... format.
func (s *SIDHandler) ConvertBinarySIDToString(binarySID []byte) (string, error) {
	if len(binarySID) == 0 {
		return "", fmt.Errorf("binary SID cannot be empty")
	}

	// objectsid.Decode does no bounds checking, so validate the structure
	// first: revision byte, sub-authority count byte (at most 15 per
	// SECURITY_MAX_SID_SIZE), 6-byte authority, then 4 bytes per sub-authority.
	if len(binarySID) < 8 {
		return "", fmt.Errorf("binary SID too short: %d bytes", len(binarySID))
	}
	subAuthorityCount := int(binarySID[1])
	if subAuthorityCount > 15 || len(binarySID) != 8+4*subAuthorityCount {
		return "", fmt.Errorf("malformed binary SID: %d bytes for %d sub-authorities", len(binarySID), subAuthorityCount)
	}

	sid := objectsid.Decode(binarySID)

	return sid.String(), nil
}

// ExtractSID extracts the objectSid from an LDAP entry and returns it as a string.
func (s *SIDHandler) ExtractSID(entry *ldap.Entry) (string, error) {
	if entry == nil {
		return "", fmt.Errorf("LDAP entry cannot be nil")
	}

	sidBytes := entry.GetRawAttributeValue("objectSid")
	if len(sidBytes) == 0 {
		return "", fmt.Errorf("objectSid attribute not found in entry")
	}

	return s.ConvertBinarySIDToString(sidBytes)
}

// ExtractSIDSafe extracts the objectSid from an LDAP entry, returning empty
// string if not found. This function handles both binary SID data (from real
// LDAP) and string SID data (for testing).
func (s *SIDHandler) ExtractSIDSafe(entry *ldap.Entry) string {
	if entry == nil {
		return ""
	}

	sidBytes := entry.GetRawAttributeValue("objectSid")
	if len(sidBytes) > 0 {
		if sid, err := s.ConvertBinarySIDToString(sidBytes); err == nil {
			return sid
		}
	}

	// Fallback to string SID value (for testing)
	sidString := entry.GetAttributeValue("objectSid")
	if sidString != "" && s.ValidateSIDString(sidString) == nil {
		return sidString
	}

	return ""
}

// ValidateSIDString validates that a string is a properly formatted SID.
func (s *SIDHandler) ValidateSIDString(sidString string) error {
	if sidString == "" {
		return fmt.Errorf("SID string cannot be empty")
	}

	if len(sidString) < 5 || sidString[:2] != "S-" {
		return fmt.Errorf("invalid SID format: must start with 'S-'")
	}

	return nil
}

// DecodeTokenGroupSIDs converts the raw byte values of a tokenGroups
// attribute into SID strings. Values that fail to decode are skipped.
func (s *SIDHandler) DecodeTokenGroupSIDs(entry *ldap.Entry) []string {
	if entry == nil {
		return nil
	}

	raw := entry.GetRawAttributeValues("tokenGroups")
	sids := make([]string, 0, len(raw))
	for _, b := range raw {
		sid, err := s.ConvertBinarySIDToString(b)
		if err != nil {
			continue
		}
		sids = append(sids, sid)
	}

	// Fallback to string values (for testing)
	if len(sids) == 0 {
		for _, v := range entry.GetAttributeValues("tokenGroups") {
			if s.ValidateSIDString(v) == nil {
				sids = append(sids, v)
			}
		}
	}

	return sids
}
