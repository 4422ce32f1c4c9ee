/*
Package ldap provides the directory-protocol infrastructure used by the
adauth module.

The package is deliberately small: every caller opens its own connection,
uses it synchronously, and releases it. There is no pooling, caching, or
retrying; transient failures propagate to the caller immediately.

# Connection Management

Connections are created through the Dialer interface:

  - SRV-based domain controller discovery (_ldaps, _ldap, _gc)
  - LDAPS by default, StartTLS upgrade on plain connections
  - Explicit ldap:// / ldaps:// URLs override discovery

# Error Handling

Errors are split into two families. ConnectionError and the connection
category mark infrastructure failures that callers handle themselves.
LDAPError wraps protocol results with a category (authentication,
not_found, permission, server) so callers can branch without inspecting
result codes.

# SID Handling

SIDHandler converts the binary objectSid and tokenGroups attribute values
Active Directory returns into their S-1-5-... string forms.

# Thread Safety

Dialers, handlers, and discovery are safe for concurrent use. A Conn is
private to the call sequence that dialed it.
*/
package ldap
