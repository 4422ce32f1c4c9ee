/*
Package directory authenticates end-user credentials against an Active
Directory domain and resolves the authenticated account into an identity
record.

Two independent components cooperate:

  - Lookup finds a user by sAMAccountName and resolves the account's
    transitive group memberships, optionally filtered by group type.
  - Authenticator verifies a username/password pair with a protocol-level
    bind and classifies the server's verdict into a closed Outcome
    enumeration (invalid credentials, account disabled, locked, and so on).

The two components never call each other. A caller combines them: look the
account up first, then validate the password, and require both to succeed.

Both components are stateless. Every call dials its own connection,
releases it on every exit path, and re-queries the directory; nothing is
cached between calls, so they are safe for concurrent use without
coordination. Infrastructure failures (unreachable directory, TLS errors)
are returned as ordinary errors, while every protocol-level bind rejection
is converted into exactly one Outcome value.
*/
package directory
