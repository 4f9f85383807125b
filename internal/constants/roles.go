package constants

import (
	"database/sql/driver"
	"fmt"
)

// ClubRole mirrors the upstream 'club_role' enum.
type ClubRole string

const (
	RoleMember ClubRole = "member"
	RoleLeader ClubRole = "leader"
	RoleStaff  ClubRole = "staff"
	RoleAdmin  ClubRole = "admin"
)

// Stringer – convenient for fmt / logs
func (r ClubRole) String() string { return string(r) }

// IsStaff reports whether the role carries staff-or-above privileges.
func (r ClubRole) IsStaff() bool {
	return r == RoleStaff || r == RoleAdmin
}

/* ---------- DB adapters so sqlx (or database/sql) scans/values cleanly ---------- */

// Scan implements the sql.Scanner interface
func (r *ClubRole) Scan(src interface{}) error {
	if src == nil {
		*r = ""
		return nil
	}
	switch v := src.(type) {
	case string:
		*r = ClubRole(v)
	case []byte:
		*r = ClubRole(v)
	default:
		return fmt.Errorf("ClubRole: cannot scan type %T", src)
	}
	return nil
}

// Value implements the driver.Valuer interface
func (r ClubRole) Value() (driver.Value, error) { return string(r), nil }
