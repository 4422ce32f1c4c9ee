package directory

import (
	"regexp"
	"strings"
)

// Active Directory embeds a hex sub-error in bind diagnostics, e.g.
// "80090308: LdapErr: DSID-0C09044E, comment: AcceptSecurityContext error,
// data 52e, v4563". The code after "data" carries the account state.
var bindDataCodePattern = regexp.MustCompile(`, data (\w+),`)

// bindDataCodes maps the uppercased sub-error code to its outcome.
var bindDataCodes = map[string]Outcome{
	"525": OutcomeNotFound,
	"52E": OutcomeInvalidCredentials,
	"530": OutcomeLoginNotPermittedTime,
	"531": OutcomeLoginNotPermittedWorkstation,
	"532": OutcomePasswordExpired,
	"533": OutcomeAccountDisabled,
	"701": OutcomeAccountExpired,
	"773": OutcomeResetPasswordRequired,
	"775": OutcomeAccountLocked,
}

// ClassifyDiagnostic maps a server bind diagnostic message to an Outcome.
// The mapping is total: a message that is empty, malformed, or carries an
// unrecognized code yields OutcomeUnknown, never an error.
func ClassifyDiagnostic(diagnostic string) Outcome {
	match := bindDataCodePattern.FindStringSubmatch(diagnostic)
	if match == nil {
		return OutcomeUnknown
	}

	outcome, ok := bindDataCodes[strings.ToUpper(match[1])]
	if !ok {
		return OutcomeUnknown
	}
	return outcome
}

// ClassifyBindError maps a bind rejection to an Outcome using the
// diagnostic text the server attached to the error. A nil error is a
// successful bind.
func ClassifyBindError(err error) Outcome {
	if err == nil {
		return OutcomeSuccess
	}
	return ClassifyDiagnostic(err.Error())
}
