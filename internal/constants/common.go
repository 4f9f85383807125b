package constants

type (
	APIStatus   string
	CachePrefix string
)

const (
	APIStatusOk    APIStatus = "ok"
	APIStatusError APIStatus = "error"

	CachePrefixMembers     CachePrefix = "MEMBERS_"
	CachePrefixCatalog     CachePrefix = "CATALOG_"
	CachePrefixWallet      CachePrefix = "WALLET_"
	CachePrefixClubWallet  CachePrefix = "CLUB_WALLET_"
	CachePrefixActivity    CachePrefix = "ACTIVITY_"
	CachePrefixTransaction CachePrefix = "TXN_"
)

// ActivityKind discriminates the activity-history union type.
type ActivityKind string

const (
	ActivityMembershipApplication ActivityKind = "membership_application"
	ActivityClubApplication       ActivityKind = "club_application"
	ActivityRedemptionOrder       ActivityKind = "redemption_order"
	ActivityEventRegistration     ActivityKind = "event_registration"
)

// ActivityKinds lists every recognized history source.
var ActivityKinds = []ActivityKind{
	ActivityMembershipApplication,
	ActivityClubApplication,
	ActivityRedemptionOrder,
	ActivityEventRegistration,
}

func (k ActivityKind) Valid() bool {
	for _, v := range ActivityKinds {
		if k == v {
			return true
		}
	}
	return false
}

// WildcardAll is the filter value meaning "no constraint" for
// exact-match criteria fields.
const WildcardAll = "all"
