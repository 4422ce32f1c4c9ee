package directory

import (
	"context"
	"fmt"
	"time"

	goldap "github.com/go-ldap/ldap/v3"

	"github.com/go-adauth/adauth/ldap"
)

// Directory search filters, parameterized by account name / group SID.
const (
	userSearchFilter            = "(&(objectClass=user)(objectCategory=user)(sAMAccountName=%s))"
	groupSearchFilterUnfiltered = "(&(objectClass=group)(objectCategory=group)(objectSid=%s))"
	groupSearchFilterFiltered   = "(&(objectClass=group)(objectCategory=group)(objectSid=%s)(groupType=%d))"
)

var (
	userAttributes        = []string{"objectSid", "sAMAccountName", "displayName"}
	groupAttributes       = []string{"sAMAccountName", "groupType"}
	tokenGroupsAttributes = []string{"tokenGroups"}
)

// Lookup resolves directory users into identity records. It holds no state
// between calls; every FindUser dials its own connection and re-queries the
// directory.
type Lookup struct {
	dialer     ldap.Dialer
	sidHandler *ldap.SIDHandler
	baseDN     string
	timeout    time.Duration
	logger     ldap.Logger
}

// NewLookup creates a Lookup searching under the given base DN.
func NewLookup(dialer ldap.Dialer, baseDN string, logger ldap.Logger) *Lookup {
	if logger == nil {
		logger = ldap.NopLogger{}
	}
	return &Lookup{
		dialer:     dialer,
		sidHandler: ldap.NewSIDHandler(),
		baseDN:     baseDN,
		timeout:    30 * time.Second,
		logger:     logger,
	}
}

// SetTimeout sets the server-side time limit applied to each search.
func (l *Lookup) SetTimeout(timeout time.Duration) {
	l.timeout = timeout
}

// FindUser looks a user up by sAMAccountName and resolves the account's
// transitive group memberships, filtered by groupType. Pass
// DefaultGroupType for the standard global-security filter or
// GroupTypeNone for no filtering.
//
// A missing account is a normal result: FindUser returns (nil, nil). Errors
// are reserved for infrastructure failures, which propagate unmodified.
func (l *Lookup) FindUser(ctx context.Context, sAMAccountName string, groupType GroupType) (*Identity, error) {
	conn, err := l.dialer.Dial(ctx)
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	result, err := conn.Search(ctx, &ldap.SearchRequest{
		BaseDN:     l.baseDN,
		Scope:      ldap.ScopeWholeSubtree,
		Filter:     fmt.Sprintf(userSearchFilter, goldap.EscapeFilter(sAMAccountName)),
		Attributes: userAttributes,
		SizeLimit:  1,
		TimeLimit:  l.timeout,
	})
	if err != nil {
		return nil, ldap.WrapError("search_user", err)
	}

	if len(result.Entries) == 0 {
		l.logger.Debug("User not found", map[string]any{
			"sam_account_name": sAMAccountName,
		})
		return nil, nil
	}

	entry := result.Entries[0]

	groups, err := l.resolveGroups(ctx, conn, entry.DN, groupType)
	if err != nil {
		return nil, err
	}

	sid := l.sidHandler.ExtractSIDSafe(entry)
	if sid == "" {
		l.logger.Warn("User entry has no decodable objectSid", map[string]any{
			"dn":               entry.DN,
			"sam_account_name": sAMAccountName,
		})
	}

	identity := &Identity{
		SID:         sid,
		Username:    entry.GetAttributeValue("sAMAccountName"),
		DisplayName: entry.GetAttributeValue("displayName"),
		Groups:      groups,
	}

	l.logger.Debug("User resolved", map[string]any{
		"sam_account_name": identity.Username,
		"sid":              identity.SID,
		"group_count":      len(groups),
		"group_type":       groupType.String(),
	})

	return identity, nil
}

// resolveGroups re-reads the user entry's constructed tokenGroups attribute
// (a base-scoped search forces the server to compute it fresh) and resolves
// each group SID to its sAMAccountName with a secondary search. A SID that
// resolves to no group, or to a group whose type does not match the filter,
// is skipped.
func (l *Lookup) resolveGroups(ctx context.Context, conn ldap.Conn, userDN string, groupType GroupType) ([]string, error) {
	result, err := conn.Search(ctx, &ldap.SearchRequest{
		BaseDN:     userDN,
		Scope:      ldap.ScopeBaseObject,
		Filter:     "(objectClass=*)",
		Attributes: tokenGroupsAttributes,
		TimeLimit:  l.timeout,
	})
	if err != nil {
		return nil, ldap.WrapError("read_token_groups", err)
	}

	if len(result.Entries) == 0 {
		return []string{}, nil
	}

	sids := l.sidHandler.DecodeTokenGroupSIDs(result.Entries[0])

	groups := make([]string, 0, len(sids))
	for _, sid := range sids {
		var filter string
		if groupType == GroupTypeNone {
			filter = fmt.Sprintf(groupSearchFilterUnfiltered, goldap.EscapeFilter(sid))
		} else {
			filter = fmt.Sprintf(groupSearchFilterFiltered, goldap.EscapeFilter(sid), int32(groupType))
		}

		groupResult, err := conn.Search(ctx, &ldap.SearchRequest{
			BaseDN:     l.baseDN,
			Scope:      ldap.ScopeWholeSubtree,
			Filter:     filter,
			Attributes: groupAttributes,
			SizeLimit:  1,
			TimeLimit:  l.timeout,
		})
		if err != nil {
			return nil, ldap.WrapError("resolve_group", err)
		}

		if len(groupResult.Entries) == 0 {
			// Orphaned SID or group type mismatch
			continue
		}

		groups = append(groups, groupResult.Entries[0].GetAttributeValue("sAMAccountName"))
	}

	return groups, nil
}
