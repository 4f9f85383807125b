package normalize

import (
	"strings"

	"campus-experiment/clubdesk/internal/constants"
	"campus-experiment/clubdesk/internal/logging"
	"campus-experiment/clubdesk/internal/models"
	"campus-experiment/clubdesk/internal/models/dtos"
)

// This package is the single normalization boundary between the campus
// API's raw shapes and the canonical models. Nothing downstream branches
// on "which shape did the API send". Malformed pieces are dropped, never
// escalated: one bad record must not block the rest of a collection.

// LegacyWalletLabel is the synthesized display label for a wallet lifted
// from the singular legacy form.
const LegacyWalletLabel = "My Wallet"

// Members maps raw membership records into roster entries. Records
// without an id or a display name are dropped.
func Members(raw []dtos.RawMember) []models.RosterEntry {
	entries := make([]models.RosterEntry, 0, len(raw))
	for _, m := range raw {
		if m.ID == 0 || strings.TrimSpace(m.Name) == "" {
			logging.Warn("dropping malformed member record", "member_id", m.ID)
			continue
		}
		avatar := ""
		if m.AvatarURL != nil {
			avatar = *m.AvatarURL
		}
		entries = append(entries, models.RosterEntry{
			ID:          m.ID,
			DisplayName: m.Name,
			StudentCode: m.StudentCode,
			AvatarURL:   avatar,
			Role:        role(m.Role),
			IsStaff:     m.IsStaff,
			JoinedAt:    m.JoinedAt,
		})
	}
	return entries
}

func role(raw string) constants.ClubRole {
	r := constants.ClubRole(strings.ToLower(strings.TrimSpace(raw)))
	switch r {
	case constants.RoleMember, constants.RoleLeader, constants.RoleStaff, constants.RoleAdmin:
		return r
	}
	return constants.RoleMember
}

// Session maps a raw attendance session, folding loose status casing into
// the closed set. Entries referencing member id 0 are dropped.
func Session(raw *dtos.RawAttendanceSession) *models.AttendanceSession {
	if raw == nil {
		return nil
	}
	session := &models.AttendanceSession{
		ID:       raw.ID,
		ClubID:   raw.ClubID,
		Date:     raw.Date,
		Statuses: make(models.StatusRecord, len(raw.Records)),
		Notes:    make(models.NoteAnnotation),
	}
	for _, rec := range raw.Records {
		if rec.MemberID == 0 {
			continue
		}
		session.Statuses[rec.MemberID] = constants.ParseAttendanceStatus(rec.Status)
		if rec.Note != "" {
			session.Notes[rec.MemberID] = rec.Note
		}
	}
	return session
}

// CatalogItems maps raw products into catalog items, applying media and
// thumbnail repair per item.
func CatalogItems(raw []dtos.RawCatalogItem) []models.CatalogItem {
	items := make([]models.CatalogItem, 0, len(raw))
	for _, r := range raw {
		item := CatalogItem(r)
		if item == nil {
			continue
		}
		items = append(items, *item)
	}
	return items
}

// CatalogItem maps one raw product. Media entries without a URL are
// dropped; if several attachments claim the thumbnail flag only the first
// keeps it. Returns nil for records missing an id or name.
func CatalogItem(raw dtos.RawCatalogItem) *models.CatalogItem {
	if raw.ID == 0 || strings.TrimSpace(raw.Name) == "" {
		logging.Warn("dropping malformed catalog record", "item_id", raw.ID)
		return nil
	}

	media := make([]models.MediaAttachment, 0, len(raw.Media))
	seenThumbnail := false
	for _, m := range raw.Media {
		if m.URL == nil || strings.TrimSpace(*m.URL) == "" {
			continue
		}
		thumb := m.IsThumbnail && !seenThumbnail
		if m.IsThumbnail {
			seenThumbnail = true
		}
		media = append(media, models.MediaAttachment{
			URL:         *m.URL,
			Type:        m.Type,
			IsThumbnail: thumb,
		})
	}

	tags := raw.Tags
	if tags == nil {
		tags = []string{}
	}

	return &models.CatalogItem{
		ID:          raw.ID,
		ClubID:      raw.ClubID,
		Name:        raw.Name,
		Description: raw.Description,
		Cost:        raw.Cost,
		Stock:       raw.Stock,
		Type:        strings.ToLower(strings.TrimSpace(raw.Type)),
		Status:      constants.ParseItemStatus(raw.Status),
		Tags:        tags,
		Media:       media,
		CreatedAt:   raw.CreatedAt,
	}
}

// Wallets maps a wallet response into the canonical list. When the plural
// list is absent or empty and the legacy singular fields are set, the
// singular wallet is lifted into a one-element list with a synthesized
// label and the balance preserved exactly.
func Wallets(raw *dtos.WalletResponse, userID int64) []models.Wallet {
	if raw == nil {
		return []models.Wallet{}
	}

	if len(raw.Wallets) > 0 {
		wallets := make([]models.Wallet, 0, len(raw.Wallets))
		for _, w := range raw.Wallets {
			name := w.ClubName
			if name == "" {
				name = LegacyWalletLabel
			}
			kind := w.OwnerKind
			if kind == "" {
				kind = "user"
			}
			wallets = append(wallets, models.Wallet{
				ID:        w.ID,
				OwnerID:   w.OwnerID,
				OwnerKind: kind,
				ClubID:    w.ClubID,
				ClubName:  name,
				Balance:   w.Balance,
			})
		}
		return wallets
	}

	if raw.WalletID != nil {
		balance := int64(0)
		if raw.Balance != nil {
			balance = *raw.Balance
		}
		return []models.Wallet{{
			ID:        *raw.WalletID,
			OwnerID:   userID,
			OwnerKind: "user",
			ClubName:  LegacyWalletLabel,
			Balance:   balance,
		}}
	}

	return []models.Wallet{}
}

// ClubWallet maps a club's own wallet. Nil or id-less input yields nil.
func ClubWallet(raw *dtos.RawWallet) *models.Wallet {
	if raw == nil || raw.ID == 0 {
		return nil
	}
	name := raw.ClubName
	if name == "" {
		name = LegacyWalletLabel
	}
	return &models.Wallet{
		ID:        raw.ID,
		OwnerID:   raw.OwnerID,
		OwnerKind: "club",
		ClubID:    raw.ClubID,
		ClubName:  name,
		Balance:   raw.Balance,
	}
}

// Transactions maps raw ledger entries, dropping records without an id.
func Transactions(raw []dtos.RawTransaction) []models.Transaction {
	txns := make([]models.Transaction, 0, len(raw))
	for _, t := range raw {
		if t.ID == 0 {
			continue
		}
		txns = append(txns, models.Transaction{
			ID:        t.ID,
			WalletID:  t.WalletID,
			Amount:    t.Amount,
			Reason:    t.Reason,
			CreatedAt: t.CreatedAt,
		})
	}
	return txns
}

// Applications maps one application source into activity records. The
// same function serves membership and club-creation applications; the
// caller supplies the kind.
func Applications(raw []dtos.RawApplication, kind constants.ActivityKind) []models.ActivityRecord {
	records := make([]models.ActivityRecord, 0, len(raw))
	for _, a := range raw {
		if a.ID == 0 {
			continue
		}
		title := a.ClubName
		if kind == constants.ActivityClubApplication {
			title = "Create " + a.ClubName
		}
		records = append(records, models.ActivityRecord{
			ID:        a.ID,
			Kind:      kind,
			Title:     title,
			Status:    string(constants.ParseApplicationStatus(a.Status)),
			ClubID:    a.ClubID,
			ClubName:  a.ClubName,
			Timestamp: a.CreatedAt,
		})
	}
	return records
}

// Orders maps redemption orders into activity records.
func Orders(raw []dtos.RawOrder) []models.ActivityRecord {
	records := make([]models.ActivityRecord, 0, len(raw))
	for _, o := range raw {
		if o.ID == 0 {
			continue
		}
		records = append(records, models.ActivityRecord{
			ID:        o.ID,
			Kind:      constants.ActivityRedemptionOrder,
			Title:     o.ItemName,
			Status:    string(constants.ParseOrderStatus(o.Status)),
			ClubID:    o.ClubID,
			ClubName:  o.ClubName,
			Points:    o.Points,
			Timestamp: o.CreatedAt,
		})
	}
	return records
}

// Registrations maps event registrations into activity records.
func Registrations(raw []dtos.RawRegistration) []models.ActivityRecord {
	records := make([]models.ActivityRecord, 0, len(raw))
	for _, r := range raw {
		if r.ID == 0 {
			continue
		}
		records = append(records, models.ActivityRecord{
			ID:        r.ID,
			Kind:      constants.ActivityEventRegistration,
			Title:     r.EventName,
			Status:    string(constants.ParseApplicationStatus(r.Status)),
			ClubID:    r.ClubID,
			ClubName:  r.ClubName,
			Timestamp: r.CreatedAt,
		})
	}
	return records
}
