package ldap

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"time"

	"github.com/creasty/defaults"
	"github.com/go-ldap/ldap/v3"
)

// dialer implements the Dialer interface. One connection is created per Dial
// call and never reused.
type dialer struct {
	config    *ConnectionConfig
	discovery *SRVDiscovery
	logger    Logger
}

// NewDialer creates a Dialer from the given configuration. Zero-valued config
// fields are filled from their declared defaults.
func NewDialer(config *ConnectionConfig, logger Logger) (Dialer, error) {
	if config == nil {
		config = DefaultConfig()
	}
	if logger == nil {
		logger = NopLogger{}
	}

	if err := defaults.Set(config); err != nil {
		return nil, fmt.Errorf("failed to apply config defaults: %w", err)
	}
	if config.TLSConfig == nil {
		config.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
	}
	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &dialer{
		config:    config,
		discovery: NewSRVDiscovery(logger),
		logger:    logger,
	}, nil
}

// Dial opens a connection using the configured domain or URLs.
func (d *dialer) Dial(ctx context.Context) (Conn, error) {
	servers, err := d.resolveServers(ctx, d.config.Domain)
	if err != nil {
		return nil, err
	}
	return d.dialServers(ctx, servers)
}

// DialDomain opens a connection to the given domain via SRV discovery.
func (d *dialer) DialDomain(ctx context.Context, domain string) (Conn, error) {
	if domain == "" {
		return nil, errors.New("domain cannot be empty")
	}

	servers, err := d.discovery.DiscoverServers(ctx, domain)
	if err != nil {
		return nil, fmt.Errorf("server discovery failed: %w", err)
	}
	return d.dialServers(ctx, servers)
}

// resolveServers determines the candidate servers for a connection attempt.
func (d *dialer) resolveServers(ctx context.Context, domain string) ([]*ServerInfo, error) {
	if len(d.config.LDAPURLs) > 0 {
		servers := make([]*ServerInfo, 0, len(d.config.LDAPURLs))
		for _, url := range d.config.LDAPURLs {
			server, err := ParseLDAPURL(url)
			if err != nil {
				return nil, fmt.Errorf("invalid LDAP URL %s: %w", url, err)
			}
			servers = append(servers, server)
		}
		return servers, nil
	}

	if domain == "" {
		return nil, errors.New("either domain or LDAP URLs must be specified")
	}

	servers, err := d.discovery.DiscoverServers(ctx, domain)
	if err != nil {
		return nil, fmt.Errorf("server discovery failed: %w", err)
	}
	return servers, nil
}

// dialServers attempts each candidate server in priority order and returns the
// first connection that succeeds. Failures propagate immediately once all
// servers are exhausted; there is no retry.
func (d *dialer) dialServers(ctx context.Context, servers []*ServerInfo) (Conn, error) {
	if len(servers) == 0 {
		return nil, errors.New("no servers available")
	}

	var lastErr error
	for _, server := range servers {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		c, err := d.dialServer(server)
		if err != nil {
			lastErr = err
			d.logger.Debug("Connection attempt failed", map[string]any{
				"server": ServerInfoToURL(server),
				"error":  err.Error(),
			})
			continue
		}
		return c, nil
	}

	return nil, NewConnectionError("failed to connect to any server", lastErr)
}

// dialServer opens a single connection, upgrading to TLS as configured.
func (d *dialer) dialServer(server *ServerInfo) (Conn, error) {
	url := ServerInfoToURL(server)

	tlsConfig := d.config.TLSConfig
	if d.config.TLSServerName != "" {
		tlsConfig = tlsConfig.Clone()
		tlsConfig.ServerName = d.config.TLSServerName
	}

	var rawConn *ldap.Conn
	var err error

	if server.UseTLS {
		// Direct TLS connection (LDAPS)
		rawConn, err = ldap.DialURL(url, ldap.DialWithTLSConfig(tlsConfig))
	} else {
		// Plain connection, upgraded via StartTLS unless TLS is skipped
		rawConn, err = ldap.DialURL(url)
		if err == nil && d.config.UseTLS && !d.config.SkipTLS {
			err = rawConn.StartTLS(tlsConfig)
			if err != nil {
				rawConn.Close()
			}
		}
	}

	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", url, err)
	}

	rawConn.SetTimeout(d.config.Timeout)

	return &conn{conn: rawConn, logger: d.logger}, nil
}

// conn wraps a single *ldap.Conn.
type conn struct {
	conn   *ldap.Conn
	logger Logger
}

// Bind authenticates the connection with the supplied credentials. Empty
// credentials are passed through unchanged; the server decides what they mean.
func (c *conn) Bind(username, password string) error {
	return c.conn.Bind(username, password)
}

// Search performs an LDAP search over this connection.
func (c *conn) Search(ctx context.Context, req *SearchRequest) (*SearchResult, error) {
	if req == nil {
		return nil, errors.New("search request cannot be nil")
	}

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	start := time.Now()
	searchFields := map[string]any{
		"base_dn": req.BaseDN,
		"scope":   req.Scope.String(),
		"filter":  req.Filter,
	}
	c.logger.Debug("Starting search operation", searchFields)

	ldapReq := ldap.NewSearchRequest(
		req.BaseDN,
		int(req.Scope),
		int(req.DerefAliases),
		req.SizeLimit,
		int(req.TimeLimit.Seconds()),
		false, // TypesOnly
		req.Filter,
		req.Attributes,
		nil, // Controls
	)

	result, err := c.conn.Search(ldapReq)

	searchFields["duration_ms"] = time.Since(start).Milliseconds()

	if err != nil {
		LogLDAPError(c.logger, "search", err, searchFields)
		return nil, fmt.Errorf("search failed: %w", err)
	}

	searchFields["entries_found"] = len(result.Entries)
	c.logger.Debug("Search operation completed successfully", searchFields)

	return &SearchResult{
		Entries: result.Entries,
		Total:   len(result.Entries),
	}, nil
}

// Close releases the underlying network connection.
func (c *conn) Close() error {
	return c.conn.Close()
}

// validateConfig validates the connection configuration.
func validateConfig(config *ConnectionConfig) error {
	if config.Timeout <= 0 {
		return errors.New("timeout must be positive")
	}

	for _, url := range config.LDAPURLs {
		if _, err := ParseLDAPURL(url); err != nil {
			return fmt.Errorf("invalid LDAP URL %s: %w", url, err)
		}
	}

	return nil
}
