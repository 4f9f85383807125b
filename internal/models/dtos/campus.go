package dtos

import "time"

// Raw shapes returned by the campus API. These are deliberately loose:
// media arrays may be nil or hold entries without URLs, wallet payloads
// may arrive in a legacy singular form, and status strings come back in
// whatever casing the upstream stores. The normalize package is the only
// consumer; everything downstream sees the canonical models.

type MemberListResponse struct {
	Members []RawMember `json:"members"`
}

type RawMember struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	StudentCode string  `json:"studentCode"`
	AvatarURL   *string `json:"avatarUrl"` // nullable
	Role        string  `json:"role"`
	IsStaff     bool    `json:"isStaff"`
	JoinedAt    time.Time `json:"joinedAt"`
}

type RawAttendanceSession struct {
	ID      string               `json:"id"`
	ClubID  int64                `json:"clubId"`
	Date    string               `json:"date"`
	Records []RawAttendanceEntry `json:"records"`
}

type RawAttendanceEntry struct {
	MemberID int64  `json:"memberId"`
	Status   string `json:"status"` // loose casing upstream
	Note     string `json:"note"`
}

type CatalogListResponse struct {
	Items []RawCatalogItem `json:"items"`
}

type RawCatalogItem struct {
	ID          int64      `json:"id"`
	ClubID      int64      `json:"clubId"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Cost        int64      `json:"cost"`
	Stock       int64      `json:"stock"`
	Type        string     `json:"type"`
	Status      string     `json:"status"`
	Tags        []string   `json:"tags"`   // may be nil
	Media       []RawMedia `json:"media"`  // may be nil or hold URL-less entries
	CuratedAt   *time.Time `json:"curatedAt"`
	CreatedAt   time.Time  `json:"createdAt"`
}

type RawMedia struct {
	URL         *string `json:"url"` // nullable: entries without a URL are dropped
	Type        string  `json:"type"`
	IsThumbnail bool    `json:"isThumbnail"`
}

// WalletResponse carries either the plural Wallets list or, from older
// deployments, a single legacy wallet in the singular fields.
type WalletResponse struct {
	Wallets []RawWallet `json:"wallets"`

	// Legacy singular form
	WalletID *int64 `json:"walletId"`
	Balance  *int64 `json:"balance"`
}

type RawWallet struct {
	ID        int64  `json:"id"`
	OwnerID   int64  `json:"ownerId"`
	OwnerKind string `json:"ownerKind"`
	ClubID    int64  `json:"clubId"`
	ClubName  string `json:"clubName"`
	Balance   int64  `json:"balance"`
}

type TransactionListResponse struct {
	Transactions []RawTransaction `json:"transactions"`
}

type RawTransaction struct {
	ID        int64     `json:"id"`
	WalletID  int64     `json:"walletId"`
	Amount    int64     `json:"amount"`
	Reason    string    `json:"reason"`
	CreatedAt time.Time `json:"createdAt"`
}

// Activity history sources. Each arrives with its own envelope; the
// normalizer folds them into models.ActivityRecord.

type ApplicationListResponse struct {
	Applications []RawApplication `json:"applications"`
}

type RawApplication struct {
	ID        int64     `json:"id"`
	ClubID    int64     `json:"clubId"`
	ClubName  string    `json:"clubName"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
}

type OrderListResponse struct {
	Orders []RawOrder `json:"orders"`
}

type RawOrder struct {
	ID        int64     `json:"id"`
	ItemName  string    `json:"itemName"`
	ClubID    int64     `json:"clubId"`
	ClubName  string    `json:"clubName"`
	Points    int64     `json:"points"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
}

type RegistrationListResponse struct {
	Registrations []RawRegistration `json:"registrations"`
}

type RawRegistration struct {
	ID        int64     `json:"id"`
	EventName string    `json:"eventName"`
	ClubID    int64     `json:"clubId"`
	ClubName  string    `json:"clubName"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
}

// CommitAck acknowledges a successful attendance commit.
type CommitAck struct {
	SessionID string `json:"sessionId"`
	Applied   int    `json:"applied"`
}

// UpstreamError is the campus API's error envelope.
type UpstreamError struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}
