// Package storage persists the bearer token and session-derived attributes
// on the local machine. Implementations are selected at composition time;
// nothing in the rest of the client branches on the platform.
package storage

import "errors"

// Recognized session keys. RemoveAll over SessionKeys is the complete
// logout/expiry cleanup; leaving any of these behind keeps stale privilege
// data on disk after the session is gone.
const (
	KeyToken           = "token"
	KeyUserID          = "userId"
	KeyUsername        = "username"
	KeyEmail           = "email"
	KeyPrimaryRoleID   = "primaryRoleId"
	KeyPrimaryRoleName = "primaryRoleName"
	KeyAllRoles        = "allRoles"
	KeyPermissions     = "permissions"
	KeySessionData     = "sessionData"

	// Kept for compatibility with session files written by older clients.
	KeyLegacyUserData = "userData"
	KeyLegacyUserRole = "userRole"
)

// SessionKeys lists every key a cleanup must clear.
var SessionKeys = []string{
	KeyToken,
	KeyUserID,
	KeyUsername,
	KeyEmail,
	KeyPrimaryRoleID,
	KeyPrimaryRoleName,
	KeyAllRoles,
	KeyPermissions,
	KeySessionData,
	KeyLegacyUserData,
	KeyLegacyUserRole,
}

// ErrUnrecognizedKey is returned when writing a key outside SessionKeys.
var ErrUnrecognizedKey = errors.New("unrecognized session key")

// Store is the credential store. Read reports absence via the bool, never
// as an error. Remove of an absent key is a no-op success. RemoveAll
// attempts every key regardless of individual failures; callers driving a
// logout are expected to treat its error as advisory.
type Store interface {
	Write(key, value string) error
	Read(key string) (string, bool, error)
	Remove(key string) error
	RemoveAll(keys []string) error
}

var recognized = func() map[string]struct{} {
	m := make(map[string]struct{}, len(SessionKeys))
	for _, k := range SessionKeys {
		m[k] = struct{}{}
	}
	return m
}()

func checkKey(key string) error {
	if _, ok := recognized[key]; !ok {
		return ErrUnrecognizedKey
	}
	return nil
}
