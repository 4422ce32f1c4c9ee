package directory

// Outcome is the result of a credential-validation attempt. Exactly one
// value results from each attempt; OutcomeUnknown is the fallback when the
// server's verdict cannot be classified.
type Outcome int

const (
	// OutcomeUnknown means the bind was rejected for a reason the server did
	// not report in a recognizable form.
	OutcomeUnknown Outcome = iota

	// OutcomeSuccess means the bind succeeded with the supplied credentials.
	OutcomeSuccess

	// OutcomeNotFound means the server reported that the account does not
	// exist. Some directory configurations report this instead of
	// OutcomeInvalidCredentials, so it does not prove the account is absent.
	OutcomeNotFound

	// OutcomeInvalidCredentials means the password was wrong.
	OutcomeInvalidCredentials

	// OutcomeLoginNotPermittedTime means logon is not permitted at this time
	// of day for this account.
	OutcomeLoginNotPermittedTime

	// OutcomeLoginNotPermittedWorkstation means logon is not permitted from
	// this workstation.
	OutcomeLoginNotPermittedWorkstation

	// OutcomePasswordExpired means the account's password has expired.
	OutcomePasswordExpired

	// OutcomeAccountDisabled means the account is disabled.
	OutcomeAccountDisabled

	// OutcomeAccountExpired means the account itself has expired.
	OutcomeAccountExpired

	// OutcomeResetPasswordRequired means the user must reset the password
	// before logging on.
	OutcomeResetPasswordRequired

	// OutcomeAccountLocked means the account is locked out.
	OutcomeAccountLocked
)

// String returns the string representation of the outcome.
func (o Outcome) String() string {
	switch o {
	case OutcomeSuccess:
		return "Success"
	case OutcomeNotFound:
		return "NotFound"
	case OutcomeInvalidCredentials:
		return "InvalidCredentials"
	case OutcomeLoginNotPermittedTime:
		return "LoginNotPermittedTime"
	case OutcomeLoginNotPermittedWorkstation:
		return "LoginNotPermittedWorkstation"
	case OutcomePasswordExpired:
		return "PasswordExpired"
	case OutcomeAccountDisabled:
		return "AccountDisabled"
	case OutcomeAccountExpired:
		return "AccountExpired"
	case OutcomeResetPasswordRequired:
		return "ResetPasswordRequired"
	case OutcomeAccountLocked:
		return "AccountLocked"
	default:
		return "Unknown"
	}
}
