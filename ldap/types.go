package ldap

import (
	"context"
	"crypto/tls"
	"time"

	"github.com/go-ldap/ldap/v3"
)

// ConnectionConfig holds configuration for LDAP connections.
//
// Connections are opened per call and released when the caller is done with
// them; there is deliberately no pooling, retrying, or credential caching.
type ConnectionConfig struct {
	// Connection settings
	Domain   string        // Domain for SRV discovery
	LDAPURLs []string      // Direct LDAP URLs (overrides domain)
	Timeout  time.Duration `default:"30s"` // Network timeout per connection

	// TLS settings
	TLSConfig     *tls.Config // Custom TLS configuration
	UseTLS        bool        `default:"true"` // Upgrade plain connections via StartTLS
	SkipTLS       bool        // Skip TLS entirely (not recommended)
	TLSServerName string      // Override server name for certificate verification
}

// DefaultConfig returns a secure default configuration.
func DefaultConfig() *ConnectionConfig {
	return &ConnectionConfig{
		Timeout: 30 * time.Second,
		UseTLS:  true,
		TLSConfig: &tls.Config{
			MinVersion: tls.VersionTLS12,
		},
	}
}

// ServerInfo contains information about an LDAP server.
type ServerInfo struct {
	Host     string
	Port     int
	UseTLS   bool
	Priority int
	Weight   int
	Source   string // "srv", "config", "fallback"
}

// SearchRequest encapsulates LDAP search parameters.
type SearchRequest struct {
	BaseDN       string
	Scope        SearchScope
	Filter       string
	Attributes   []string
	SizeLimit    int
	TimeLimit    time.Duration
	DerefAliases DerefAliases
}

// SearchResult contains search results and metadata.
type SearchResult struct {
	Entries []*ldap.Entry
	Total   int
}

// SearchScope defines LDAP search scope.
type SearchScope int

const (
	ScopeBaseObject SearchScope = iota
	ScopeSingleLevel
	ScopeWholeSubtree
)

// String returns the string representation of the search scope.
func (s SearchScope) String() string {
	switch s {
	case ScopeBaseObject:
		return "base"
	case ScopeSingleLevel:
		return "one"
	case ScopeWholeSubtree:
		return "sub"
	default:
		return "unknown"
	}
}

// DerefAliases defines alias dereferencing behavior.
type DerefAliases int

const (
	NeverDerefAliases DerefAliases = iota
	DerefInSearching
	DerefFindingBaseObj
	DerefAlways
)

// Conn is a single directory connection. It is private to one call sequence
// and must be closed on every exit path.
type Conn interface {
	// Bind authenticates the connection with the supplied credentials.
	Bind(username, password string) error

	// Search performs an LDAP search over this connection.
	Search(ctx context.Context, req *SearchRequest) (*SearchResult, error)

	// Close releases the underlying network connection.
	Close() error
}

// Dialer opens directory connections.
type Dialer interface {
	// Dial opens a connection using the dialer's configured domain or URLs.
	Dial(ctx context.Context) (Conn, error)

	// DialDomain opens a connection to a specific domain, discovered via SRV
	// records, ignoring the configured domain/URLs.
	DialDomain(ctx context.Context, domain string) (Conn, error)
}
