package normalize

import (
	"reflect"
	"testing"
	"time"

	"campus-experiment/clubdesk/internal/constants"
	"campus-experiment/clubdesk/internal/models/dtos"
)

func strPtr(s string) *string { return &s }
func i64Ptr(v int64) *int64   { return &v }

func TestCatalogItem_DropsMediaWithoutURL(t *testing.T) {
	raw := dtos.RawCatalogItem{
		ID:   1,
		Name: "Mug",
		Cost: 50,
		Media: []dtos.RawMedia{
			{URL: strPtr("https://cdn.example.edu/mug.png"), Type: "image", IsThumbnail: true},
			{URL: nil, Type: "image"},
			{URL: strPtr("  "), Type: "image"},
			{URL: strPtr("https://cdn.example.edu/mug2.png"), Type: "image"},
		},
	}

	item := CatalogItem(raw)
	if item == nil {
		t.Fatal("Expected item, got nil")
	}
	if len(item.Media) != 2 {
		t.Fatalf("Expected 2 media entries after drop, got %d", len(item.Media))
	}
	if item.Media[0].URL != "https://cdn.example.edu/mug.png" {
		t.Errorf("Surviving media out of order: %s", item.Media[0].URL)
	}
}

func TestCatalogItem_ThumbnailInvariantRepair(t *testing.T) {
	raw := dtos.RawCatalogItem{
		ID:   2,
		Name: "Shirt",
		Media: []dtos.RawMedia{
			{URL: strPtr("a.png"), IsThumbnail: true},
			{URL: strPtr("b.png"), IsThumbnail: true},
			{URL: strPtr("c.png"), IsThumbnail: true},
		},
	}

	item := CatalogItem(raw)
	count := 0
	for _, m := range item.Media {
		if m.IsThumbnail {
			count++
		}
	}
	if count != 1 {
		t.Errorf("Expected exactly one thumbnail, got %d", count)
	}
	if !item.Media[0].IsThumbnail {
		t.Error("Expected first attachment to keep the thumbnail flag")
	}
}

func TestCatalogItems_MalformedItemDropped_OthersUnaffected(t *testing.T) {
	raw := []dtos.RawCatalogItem{
		{ID: 1, Name: "Keep A", Status: "active"},
		{ID: 0, Name: "No ID"},
		{ID: 3, Name: "", Status: "active"},
		{ID: 4, Name: "Keep B", Status: "ACTIVE"},
	}

	items := CatalogItems(raw)
	if len(items) != 2 {
		t.Fatalf("Expected 2 items, got %d", len(items))
	}
	if items[0].Name != "Keep A" || items[1].Name != "Keep B" {
		t.Error("Surviving items lost their relative order")
	}
	if items[1].Status != constants.ItemActive {
		t.Errorf("Expected case-folded status active, got %s", items[1].Status)
	}
}

func TestCatalogItems_Idempotent(t *testing.T) {
	raw := []dtos.RawCatalogItem{
		{
			ID: 1, Name: "Mug", Cost: 50, Stock: 3, Type: "Merch", Status: "Active",
			Tags:  []string{"gift"},
			Media: []dtos.RawMedia{{URL: strPtr("a.png"), IsThumbnail: true}, {URL: nil}},
		},
	}

	once := CatalogItems(raw)

	// Re-wrap the normalized output in the raw shape and normalize again;
	// a second pass must change nothing.
	rewrapped := make([]dtos.RawCatalogItem, 0, len(once))
	for _, it := range once {
		media := make([]dtos.RawMedia, 0, len(it.Media))
		for _, m := range it.Media {
			u := m.URL
			media = append(media, dtos.RawMedia{URL: &u, Type: m.Type, IsThumbnail: m.IsThumbnail})
		}
		rewrapped = append(rewrapped, dtos.RawCatalogItem{
			ID: it.ID, ClubID: it.ClubID, Name: it.Name, Description: it.Description,
			Cost: it.Cost, Stock: it.Stock, Type: it.Type, Status: string(it.Status),
			Tags: it.Tags, Media: media, CreatedAt: it.CreatedAt,
		})
	}
	twice := CatalogItems(rewrapped)

	if !reflect.DeepEqual(once, twice) {
		t.Errorf("Normalization not idempotent:\nonce:  %+v\ntwice: %+v", once, twice)
	}
}

func TestWallets_SingularLegacyFormLifted(t *testing.T) {
	raw := &dtos.WalletResponse{
		WalletID: i64Ptr(9),
		Balance:  i64Ptr(250),
	}

	wallets := Wallets(raw, 42)
	if len(wallets) != 1 {
		t.Fatalf("Expected 1 wallet, got %d", len(wallets))
	}
	w := wallets[0]
	if w.ClubName != LegacyWalletLabel {
		t.Errorf("Expected synthesized label %q, got %q", LegacyWalletLabel, w.ClubName)
	}
	if w.Balance != 250 {
		t.Errorf("Balance must be preserved exactly, got %d", w.Balance)
	}
	if w.OwnerID != 42 {
		t.Errorf("Expected owner 42, got %d", w.OwnerID)
	}
}

func TestWallets_PluralFormWinsOverSingular(t *testing.T) {
	raw := &dtos.WalletResponse{
		Wallets: []dtos.RawWallet{
			{ID: 1, OwnerID: 42, OwnerKind: "user", ClubID: 7, ClubName: "Chess Club", Balance: 100},
			{ID: 2, OwnerID: 42, OwnerKind: "user", Balance: 30},
		},
		WalletID: i64Ptr(9),
		Balance:  i64Ptr(250),
	}

	wallets := Wallets(raw, 42)
	if len(wallets) != 2 {
		t.Fatalf("Expected 2 wallets, got %d", len(wallets))
	}
	if wallets[0].ClubName != "Chess Club" {
		t.Errorf("Expected Chess Club, got %s", wallets[0].ClubName)
	}
	// Wallet without a club name gets the synthesized label
	if wallets[1].ClubName != LegacyWalletLabel {
		t.Errorf("Expected %q, got %q", LegacyWalletLabel, wallets[1].ClubName)
	}
}

func TestSession_StatusCaseFoldingAndFallback(t *testing.T) {
	raw := &dtos.RawAttendanceSession{
		ID:     "sess-1",
		ClubID: 7,
		Date:   "2026-03-02",
		Records: []dtos.RawAttendanceEntry{
			{MemberID: 1, Status: "PRESENT"},
			{MemberID: 2, Status: "Late"},
			{MemberID: 3, Status: "on-leave"}, // unrecognized
			{MemberID: 4, Status: "excused", Note: "doctor"},
		},
	}

	session := Session(raw)
	if session.Statuses[1] != constants.AttendancePresent {
		t.Errorf("Expected present, got %s", session.Statuses[1])
	}
	if session.Statuses[2] != constants.AttendanceLate {
		t.Errorf("Expected late, got %s", session.Statuses[2])
	}
	if session.Statuses[3] != constants.DefaultAttendanceStatus {
		t.Errorf("Expected fallback %s, got %s", constants.DefaultAttendanceStatus, session.Statuses[3])
	}
	if session.Notes[4] != "doctor" {
		t.Errorf("Expected note to survive, got %q", session.Notes[4])
	}
}

func TestMembers_DropsMalformedAndDefaultsRole(t *testing.T) {
	joined := time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC)
	raw := []dtos.RawMember{
		{ID: 1, Name: "Ana", Role: "LEADER", JoinedAt: joined},
		{ID: 0, Name: "Ghost"},
		{ID: 3, Name: "   "},
		{ID: 4, Name: "Ben", Role: "treasurer"}, // unknown role
	}

	entries := Members(raw)
	if len(entries) != 2 {
		t.Fatalf("Expected 2 entries, got %d", len(entries))
	}
	if entries[0].Role != constants.RoleLeader {
		t.Errorf("Expected leader, got %s", entries[0].Role)
	}
	if entries[1].Role != constants.RoleMember {
		t.Errorf("Unknown role should default to member, got %s", entries[1].Role)
	}
}

func TestOrders_StatusFolding(t *testing.T) {
	raw := []dtos.RawOrder{
		{ID: 1, ItemName: "Mug", Status: "Partially_Refunded", Points: 40, CreatedAt: time.Now()},
		{ID: 2, ItemName: "Pen", Status: "weird", CreatedAt: time.Now()},
	}

	records := Orders(raw)
	if records[0].Status != string(constants.OrderPartiallyRefunded) {
		t.Errorf("Expected partially_refunded, got %s", records[0].Status)
	}
	if records[1].Status != string(constants.DefaultOrderStatus) {
		t.Errorf("Expected fallback %s, got %s", constants.DefaultOrderStatus, records[1].Status)
	}
}
