// Package session owns the client's session lifecycle: the single source
// of truth for whether a valid session exists, the at-most-once teardown
// on expiry, and the role-gated guard protecting command groups.
package session

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/tecai-sistemas/tecai/internal/authz"
	"github.com/tecai-sistemas/tecai/internal/storage"
)

// Session is a snapshot of the stored session. It is only ever replaced
// wholesale (re-login) or destroyed (logout, expiry); fields are never
// mutated in place.
type Session struct {
	Token           string                     `json:"token"`
	UserID          string                     `json:"userId"`
	Username        string                     `json:"username"`
	Email           string                     `json:"email"`
	PrimaryRoleID   int                        `json:"primaryRoleId"`
	PrimaryRoleName string                     `json:"primaryRoleName"`
	AllRoles        []int                      `json:"allRoles"`
	Permissions     []authz.PermissionRelation `json:"permissions"`
}

// Valid reports whether the snapshot represents a usable session. An
// absent token invalidates every other field, even if stale copies remain
// in storage.
func (s *Session) Valid() bool {
	return s != nil && s.Token != ""
}

// PrimaryRole returns the canonical role for coarse gating.
func (s *Session) PrimaryRole() authz.Role {
	if !s.Valid() {
		return authz.RoleUnknown
	}
	return authz.ParseRole(s.PrimaryRoleID)
}

// writeTo persists every session key, including the consolidated blob and
// the legacy compatibility keys.
func (s *Session) writeTo(store storage.Store) error {
	blob, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}

	allRoles, err := json.Marshal(s.AllRoles)
	if err != nil {
		return fmt.Errorf("failed to encode roles: %w", err)
	}

	permissions, err := json.Marshal(s.Permissions)
	if err != nil {
		return fmt.Errorf("failed to encode permissions: %w", err)
	}

	writes := []struct{ key, value string }{
		{storage.KeyToken, s.Token},
		{storage.KeyUserID, s.UserID},
		{storage.KeyUsername, s.Username},
		{storage.KeyEmail, s.Email},
		{storage.KeyPrimaryRoleID, strconv.Itoa(s.PrimaryRoleID)},
		{storage.KeyPrimaryRoleName, s.PrimaryRoleName},
		{storage.KeyAllRoles, string(allRoles)},
		{storage.KeyPermissions, string(permissions)},
		{storage.KeySessionData, string(blob)},
		{storage.KeyLegacyUserData, string(blob)},
		{storage.KeyLegacyUserRole, strconv.Itoa(s.PrimaryRoleID)},
	}

	for _, w := range writes {
		if err := store.Write(w.key, w.value); err != nil {
			return fmt.Errorf("failed to write %s: %w", w.key, err)
		}
	}

	return nil
}

// readFrom loads the snapshot from the consolidated blob. A missing or
// unreadable blob yields an invalid (empty) session, not an error, so a
// wiped or corrupted store behaves exactly like no session.
func readFrom(store storage.Store) *Session {
	blob, ok, err := store.Read(storage.KeySessionData)
	if err != nil || !ok {
		return &Session{}
	}

	var s Session
	if err := json.Unmarshal([]byte(blob), &s); err != nil {
		return &Session{}
	}

	return &s
}
