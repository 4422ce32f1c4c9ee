// Package httpauth exposes directory authentication over WWW-Authenticate /
// Basic authentication as gin middleware.
//
// The middleware decodes the Authorization header, looks the account up,
// validates the password with a directory bind, and stores the resolved
// identity on the request context. Every failed request gets the same
// generic 401 response so account existence and state never leak to the
// caller; the precise outcome is written to the audit log instead.
package httpauth

import (
	"encoding/base64"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/text/encoding/charmap"

	"github.com/go-adauth/adauth/directory"
	"github.com/go-adauth/adauth/ldap"
)

// IdentityKey is the gin context key under which the middleware stores the
// authenticated *directory.Identity.
const IdentityKey = "adauth.identity"

// Options configures the Basic-authentication middleware.
type Options struct {
	// Domain is the directory domain binds are performed against. It is also
	// the default challenge realm.
	Domain string

	// GroupType filters the group memberships attached to the identity.
	// The zero value (GroupTypeNone) returns every group; set
	// directory.DefaultGroupType for global security groups only.
	GroupType directory.GroupType

	// Realm overrides the realm announced in the WWW-Authenticate challenge.
	Realm string

	// Lookup resolves accounts to identities.
	Lookup *directory.Lookup

	// Authenticator validates credentials.
	Authenticator *directory.Authenticator

	// Logger receives audit records for every authentication attempt.
	Logger ldap.Logger
}

// Middleware returns a gin handler enforcing Basic authentication against
// the directory. Requests that fail authentication are aborted with a
// challenge; successful requests continue with the identity stored under
// IdentityKey.
func Middleware(opts Options) gin.HandlerFunc {
	logger := opts.Logger
	if logger == nil {
		logger = ldap.NopLogger{}
	}
	realm := opts.Realm
	if realm == "" {
		realm = opts.Domain
	}

	return func(c *gin.Context) {
		username, password, ok := decodeBasicCredentials(c.GetHeader("Authorization"))
		if !ok {
			challenge(c, realm)
			return
		}

		auditID := uuid.NewString()
		ctx := c.Request.Context()

		identity, err := opts.Lookup.FindUser(ctx, username, opts.GroupType)
		if err != nil {
			logger.Error("Directory lookup failed", map[string]any{
				"audit_id": auditID,
				"username": username,
				"error":    err.Error(),
			})
			c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{
				"error": "authentication unavailable",
			})
			return
		}

		if identity == nil {
			// Same response as a bad password; only the audit log knows.
			logger.Info("Authentication rejected", map[string]any{
				"audit_id": auditID,
				"username": username,
				"outcome":  directory.OutcomeNotFound.String(),
			})
			challenge(c, realm)
			return
		}

		outcome, err := opts.Authenticator.Authenticate(ctx, opts.Domain, username, password)
		if err != nil {
			logger.Error("Credential validation failed", map[string]any{
				"audit_id": auditID,
				"username": username,
				"error":    err.Error(),
			})
			c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{
				"error": "authentication unavailable",
			})
			return
		}

		if outcome != directory.OutcomeSuccess {
			logger.Info("Authentication rejected", map[string]any{
				"audit_id": auditID,
				"username": username,
				"outcome":  outcome.String(),
			})
			challenge(c, realm)
			return
		}

		logger.Info("Authentication succeeded", map[string]any{
			"audit_id": auditID,
			"username": identity.Username,
			"sid":      identity.SID,
		})

		c.Set(IdentityKey, identity)
		c.Next()
	}
}

// IdentityFrom returns the identity the middleware stored on the context.
func IdentityFrom(c *gin.Context) (*directory.Identity, bool) {
	value, exists := c.Get(IdentityKey)
	if !exists {
		return nil, false
	}
	identity, ok := value.(*directory.Identity)
	return identity, ok
}

// decodeBasicCredentials extracts a username/password pair from a Basic
// Authorization header. The credential bytes are interpreted as ISO-8859-1
// per the HTTP specification. The password may contain colons; only the
// first colon separates the pair.
func decodeBasicCredentials(header string) (username, password string, ok bool) {
	const prefix = "Basic "
	if len(header) < len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return "", "", false
	}

	raw, err := base64.StdEncoding.DecodeString(strings.TrimSpace(header[len(prefix):]))
	if err != nil {
		return "", "", false
	}

	decoded, err := charmap.ISO8859_1.NewDecoder().Bytes(raw)
	if err != nil {
		return "", "", false
	}

	return strings.Cut(string(decoded), ":")
}

// challenge aborts the request with a Basic challenge and the uniform
// failure body.
func challenge(c *gin.Context, realm string) {
	c.Header("WWW-Authenticate", fmt.Sprintf("Basic realm=%q, charset=\"UTF-8\"", realm))
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"error": "invalid credentials",
	})
}
