package directory

import "strings"

// GroupType is a bitmask over the Active Directory groupType attribute,
// used to select which of a user's group memberships are returned by a
// lookup. GroupTypeNone disables filtering; any other value requires an
// exact match on the group's own groupType attribute.
type GroupType int32

const (
	// GroupTypeNone applies no filter; every group is returned.
	GroupTypeNone GroupType = 0x00000000

	// GroupTypeSystemCreated matches built-in/system-created groups.
	GroupTypeSystemCreated GroupType = 0x00000001

	// GroupTypeGlobalScope matches groups with global scope.
	GroupTypeGlobalScope GroupType = 0x00000002

	// GroupTypeDomainLocalScope matches groups with domain-local scope.
	GroupTypeDomainLocalScope GroupType = 0x00000004

	// GroupTypeUniversalScope matches groups with universal scope.
	GroupTypeUniversalScope GroupType = 0x00000008

	// GroupTypeSecurityGroup matches security (as opposed to distribution)
	// groups. ADS_GROUP_TYPE_SECURITY_ENABLED, 0x80000000 as signed int32.
	GroupTypeSecurityGroup GroupType = -2147483648
)

// DefaultGroupType is the filter applied when a caller does not specify one:
// global-scope security groups.
const DefaultGroupType = GroupTypeSecurityGroup | GroupTypeGlobalScope

// String returns a pipe-separated list of the flags set in gt.
func (gt GroupType) String() string {
	if gt == GroupTypeNone {
		return "None"
	}

	var parts []string
	if gt&GroupTypeSystemCreated != 0 {
		parts = append(parts, "SystemCreated")
	}
	if gt&GroupTypeGlobalScope != 0 {
		parts = append(parts, "GlobalScope")
	}
	if gt&GroupTypeDomainLocalScope != 0 {
		parts = append(parts, "DomainLocalScope")
	}
	if gt&GroupTypeUniversalScope != 0 {
		parts = append(parts, "UniversalScope")
	}
	if gt&GroupTypeSecurityGroup != 0 {
		parts = append(parts, "SecurityGroup")
	}
	if len(parts) == 0 {
		return "Unknown"
	}
	return strings.Join(parts, "|")
}
