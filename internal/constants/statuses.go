package constants

import (
	"database/sql/driver"
	"fmt"
	"strings"
)

// AttendanceStatus is the closed set of per-entry attendance tags.
type AttendanceStatus string

const (
	AttendancePresent AttendanceStatus = "present"
	AttendanceAbsent  AttendanceStatus = "absent"
	AttendanceLate    AttendanceStatus = "late"
	AttendanceExcused AttendanceStatus = "excused"
)

// DefaultAttendanceStatus is the fallback for unrecognized upstream values.
const DefaultAttendanceStatus = AttendanceAbsent

// AttendanceStatuses lists every valid attendance tag.
var AttendanceStatuses = []AttendanceStatus{
	AttendancePresent,
	AttendanceAbsent,
	AttendanceLate,
	AttendanceExcused,
}

// ParseAttendanceStatus folds an upstream value into the closed set.
// Unrecognized values map to DefaultAttendanceStatus so that aggregate
// bucket counts always reconcile with the collection total.
func ParseAttendanceStatus(raw string) AttendanceStatus {
	s := AttendanceStatus(strings.ToLower(strings.TrimSpace(raw)))
	for _, v := range AttendanceStatuses {
		if s == v {
			return v
		}
	}
	return DefaultAttendanceStatus
}

func (s AttendanceStatus) String() string { return string(s) }

// Scan implements the sql.Scanner interface
func (s *AttendanceStatus) Scan(src interface{}) error {
	if src == nil {
		*s = ""
		return nil
	}
	switch v := src.(type) {
	case string:
		*s = AttendanceStatus(v)
	case []byte:
		*s = AttendanceStatus(v)
	default:
		return fmt.Errorf("AttendanceStatus: cannot scan type %T", src)
	}
	return nil
}

// Value implements the driver.Valuer interface
func (s AttendanceStatus) Value() (driver.Value, error) { return string(s), nil }

// OrderStatus is the closed set of redemption order states.
type OrderStatus string

const (
	OrderPending           OrderStatus = "pending"
	OrderCompleted         OrderStatus = "completed"
	OrderRefunded          OrderStatus = "refunded"
	OrderPartiallyRefunded OrderStatus = "partially_refunded"
	OrderCancelled         OrderStatus = "cancelled"
)

const DefaultOrderStatus = OrderPending

var OrderStatuses = []OrderStatus{
	OrderPending,
	OrderCompleted,
	OrderRefunded,
	OrderPartiallyRefunded,
	OrderCancelled,
}

// ParseOrderStatus folds an upstream value into the closed set, falling
// back to DefaultOrderStatus.
func ParseOrderStatus(raw string) OrderStatus {
	s := OrderStatus(strings.ToLower(strings.TrimSpace(raw)))
	for _, v := range OrderStatuses {
		if s == v {
			return v
		}
	}
	return DefaultOrderStatus
}

func (s OrderStatus) String() string { return string(s) }

// ItemStatus is the lifecycle state of a catalog item.
type ItemStatus string

const (
	ItemActive   ItemStatus = "active"
	ItemInactive ItemStatus = "inactive"
	ItemArchived ItemStatus = "archived"
)

const DefaultItemStatus = ItemInactive

var ItemStatuses = []ItemStatus{ItemActive, ItemInactive, ItemArchived}

// ParseItemStatus folds an upstream value into the closed set, falling
// back to DefaultItemStatus.
func ParseItemStatus(raw string) ItemStatus {
	s := ItemStatus(strings.ToLower(strings.TrimSpace(raw)))
	for _, v := range ItemStatuses {
		if s == v {
			return v
		}
	}
	return DefaultItemStatus
}

func (s ItemStatus) String() string { return string(s) }

// ApplicationStatus covers membership and club-creation applications.
type ApplicationStatus string

const (
	ApplicationPending  ApplicationStatus = "pending"
	ApplicationApproved ApplicationStatus = "approved"
	ApplicationRejected ApplicationStatus = "rejected"
)

const DefaultApplicationStatus = ApplicationPending

var ApplicationStatuses = []ApplicationStatus{
	ApplicationPending,
	ApplicationApproved,
	ApplicationRejected,
}

// ParseApplicationStatus folds an upstream value into the closed set.
func ParseApplicationStatus(raw string) ApplicationStatus {
	s := ApplicationStatus(strings.ToLower(strings.TrimSpace(raw)))
	for _, v := range ApplicationStatuses {
		if s == v {
			return v
		}
	}
	return DefaultApplicationStatus
}

func (s ApplicationStatus) String() string { return string(s) }
