package directory

import (
	"context"

	goldap "github.com/go-ldap/ldap/v3"

	"github.com/go-adauth/adauth/ldap"
)

// Authenticator validates credentials with a protocol-level bind. It holds
// no state between calls; every Authenticate dials its own connection to
// the requested domain and releases it before returning.
type Authenticator struct {
	dialer ldap.Dialer
	logger ldap.Logger
}

// NewAuthenticator creates an Authenticator using the given dialer.
func NewAuthenticator(dialer ldap.Dialer, logger ldap.Logger) *Authenticator {
	if logger == nil {
		logger = ldap.NopLogger{}
	}
	return &Authenticator{
		dialer: dialer,
		logger: logger,
	}
}

// Authenticate binds to the given domain with the supplied credentials and
// reports the server's verdict. Credentials are passed through unvalidated;
// empty strings reach the server as-is.
//
// A non-nil error means infrastructure failure (unreachable domain,
// transport fault) and carries no authentication verdict. Otherwise the
// returned Outcome is authoritative: OutcomeSuccess for a successful bind,
// or the classification of the server's rejection.
//
// Note that the server may report OutcomeNotFound instead of
// OutcomeInvalidCredentials for some directory configurations, and an
// account confirmed by Lookup.FindUser can be deleted or renamed before the
// bind happens. Callers must treat that disagreement as a benign race.
func (a *Authenticator) Authenticate(ctx context.Context, domain, username, password string) (Outcome, error) {
	conn, err := a.dialer.DialDomain(ctx, domain)
	if err != nil {
		return OutcomeUnknown, err
	}
	defer conn.Close()

	select {
	case <-ctx.Done():
		return OutcomeUnknown, ctx.Err()
	default:
	}

	bindErr := ldap.LogOperation(a.logger, "bind", map[string]any{
		"domain":   domain,
		"username": username,
	}, func() error {
		return conn.Bind(username, password)
	})
	if bindErr == nil {
		return OutcomeSuccess, nil
	}

	// Transport faults during the bind are infrastructure, not a verdict.
	if goldap.IsErrorWithCode(bindErr, goldap.ErrorNetwork) {
		return OutcomeUnknown, ldap.NewConnectionError("bind transport failure", bindErr)
	}

	outcome := ClassifyBindError(bindErr)

	a.logger.Info("Bind rejected", map[string]any{
		"domain":   domain,
		"username": username,
		"outcome":  outcome.String(),
	})

	return outcome, nil
}
