package directory

// Identity is a resolved directory user. It is constructed fresh on every
// lookup, never mutated, and never persisted.
type Identity struct {
	// SID is the user's Security IDentifier, assigned by the directory.
	SID string

	// Username is the user's sAMAccountName, unique within the directory.
	Username string

	// DisplayName is the user's human-readable name; not guaranteed unique.
	DisplayName string

	// Groups holds the sAMAccountName of each group the user is a transitive
	// member of, filtered by the GroupType in effect at lookup time. Order is
	// not stable across calls; treat it as a set.
	Groups []string
}
