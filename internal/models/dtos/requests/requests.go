package requests

// CreateSessionRequest opens an attendance session for a club and date.
type CreateSessionRequest struct {
	Date string `json:"date"` // YYYY-MM-DD
}

// BulkMarkRequest assigns one status to every currently visible entry.
// The filter fields must match the criteria the client is rendering with,
// so the bulk action touches exactly what the user can see.
type BulkMarkRequest struct {
	Status    string `json:"status"`
	Search    string `json:"search,omitempty"`
	Filter    string `json:"filter,omitempty"` // status filter, "all" when absent
	Role      string `json:"role,omitempty"`
	StaffOnly bool   `json:"staff_only,omitempty"`
}

// MarkEntryRequest edits a single roster entry.
type MarkEntryRequest struct {
	EntryID int64  `json:"entry_id"`
	Status  string `json:"status"`
	Note    string `json:"note,omitempty"`
}

// CreateItemRequest creates a catalog item.
type CreateItemRequest struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Cost        int64    `json:"cost"`
	Stock       int64    `json:"stock"`
	Type        string   `json:"type"`
	Tags        []string `json:"tags,omitempty"`
	MediaURLs   []string `json:"media_urls,omitempty"`
}

// UpdateItemRequest patches a catalog item. Nil fields are left untouched.
type UpdateItemRequest struct {
	Name        *string   `json:"name,omitempty"`
	Description *string   `json:"description,omitempty"`
	Cost        *int64    `json:"cost,omitempty"`
	Status      *string   `json:"status,omitempty"`
	Tags        *[]string `json:"tags,omitempty"`
}

// StockDeltaRequest adjusts item stock by a signed amount.
type StockDeltaRequest struct {
	Delta int64 `json:"delta"`
}

// DistributeRequest awards points to the filtered-in members of a club.
type DistributeRequest struct {
	Amount    int64  `json:"amount"`
	Reason    string `json:"reason"`
	Search    string `json:"search,omitempty"`
	Role      string `json:"role,omitempty"`
	StaffOnly bool   `json:"staff_only,omitempty"`
}

// RedeemRequest redeems a catalog item against a wallet. UnitCost is the
// price the client is displaying; it feeds the local balance check before
// the order leaves the device. Zero skips the check.
type RedeemRequest struct {
	ItemID   int64 `json:"item_id"`
	WalletID int64 `json:"wallet_id"`
	Quantity int64 `json:"quantity"`
	UnitCost int64 `json:"unit_cost,omitempty"`
}

// SelectWalletRequest stores the client-local active wallet choice.
type SelectWalletRequest struct {
	WalletID int64 `json:"wallet_id"`
}

// SavePositionRequest persists the floating-button position.
type SavePositionRequest struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}
