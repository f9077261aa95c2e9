package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Selection is a side of a binary game market.
type Selection string

const (
	SelectionHome Selection = "home"
	SelectionAway Selection = "away"
)

// Valid reports whether s is home or away.
func (s Selection) Valid() bool {
	return s == SelectionHome || s == SelectionAway
}

// Complement returns the opposite side.
func (s Selection) Complement() Selection {
	if s == SelectionHome {
		return SelectionAway
	}
	return SelectionHome
}

// BetMode says who takes the other side of the wager.
type BetMode string

const (
	BetModeHouse BetMode = "house"
	BetModeP2P   BetMode = "p2p"
)

func (m BetMode) Valid() bool {
	return m == BetModeHouse || m == BetModeP2P
}

// BetStatus represents the status of a bet
type BetStatus string

const (
	BetStatusOpen      BetStatus = "open"
	BetStatusMatched   BetStatus = "matched"
	BetStatusActive    BetStatus = "active"
	BetStatusWon       BetStatus = "won"
	BetStatusLost      BetStatus = "lost"
	BetStatusPush      BetStatus = "push"
	BetStatusCancelled BetStatus = "cancelled"
)

// PendingBetStatuses hold reserved points.
var PendingBetStatuses = []BetStatus{BetStatusOpen, BetStatusMatched, BetStatusActive}

// HouseParty is recorded as winner or loser when the house takes the other side.
const HouseParty = "house"

var betTransitions = map[BetStatus][]BetStatus{
	BetStatusOpen:    {BetStatusMatched, BetStatusCancelled},
	BetStatusMatched: {BetStatusActive, BetStatusPush},
	BetStatusActive:  {BetStatusWon, BetStatusLost, BetStatusPush},
}

// CanTransition is the single source of truth for legal bet status changes.
func CanTransition(from, to BetStatus) bool {
	for _, next := range betTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// IsPending reports whether a bet in status s still reserves points.
func (s BetStatus) IsPending() bool {
	return s == BetStatusOpen || s == BetStatusMatched || s == BetStatusActive
}

// IsFinal reports whether no further transition is possible.
func (s BetStatus) IsFinal() bool {
	return len(betTransitions[s]) == 0
}

// Bet represents a single wager, optionally two-sided.
type Bet struct {
	ID               uuid.UUID  `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	Bettor1ID        uuid.UUID  `gorm:"column:bettor1_id;type:uuid;not null;index:idx_bets_bettor1" json:"bettor1_id"`
	Bettor2ID        *uuid.UUID `gorm:"column:bettor2_id;type:uuid;index:idx_bets_bettor2" json:"bettor2_id,omitempty"`
	GameID           uuid.UUID  `gorm:"type:uuid;not null;index:idx_bets_game" json:"game_id"`
	Bettor1Selection Selection  `gorm:"column:bettor1_selection;type:varchar(10);not null" json:"bettor1_selection"`
	Bettor2Selection *Selection `gorm:"column:bettor2_selection;type:varchar(10)" json:"bettor2_selection,omitempty"`
	Amount           int64      `gorm:"type:bigint;not null;check:amount > 0" json:"amount"`
	Bettor1Odds      int        `gorm:"column:bettor1_odds;not null" json:"bettor1_odds"`
	Bettor2Odds      *int       `gorm:"column:bettor2_odds" json:"bettor2_odds,omitempty"`
	BetMode          BetMode    `gorm:"type:varchar(10);not null" json:"bet_mode"`
	Status           BetStatus  `gorm:"type:varchar(20);not null;index" json:"status"`
	WinnerID         *string    `gorm:"type:varchar(36)" json:"winner_id,omitempty"`
	LoserID          *string    `gorm:"type:varchar(36)" json:"loser_id,omitempty"`
	Bettor1Payout    *int64     `gorm:"column:bettor1_payout;type:bigint" json:"bettor1_payout,omitempty"`
	Bettor2Payout    *int64     `gorm:"column:bettor2_payout;type:bigint" json:"bettor2_payout,omitempty"`
	ClientRequestID  *string    `gorm:"type:varchar(64)" json:"client_request_id,omitempty"`
	CreatedAt        time.Time  `gorm:"autoCreateTime;index" json:"created_at"`
	MatchedAt        *time.Time `gorm:"type:timestamptz" json:"matched_at,omitempty"`
	ResolvedAt       *time.Time `gorm:"type:timestamptz" json:"resolved_at,omitempty"`
	UpdatedAt        time.Time  `gorm:"autoUpdateTime" json:"updated_at"`

	Game *Game `gorm:"foreignKey:GameID" json:"game,omitempty"`
}

// TableName specifies the table name for Bet model
func (*Bet) TableName() string {
	return "bets"
}

// BeforeCreate sets up the model before creation
func (b *Bet) BeforeCreate(_ *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}

// TransitionTo moves the bet to next or fails with ErrInvalidBetTransition.
func (b *Bet) TransitionTo(next BetStatus) error {
	if !CanTransition(b.Status, next) {
		return ErrInvalidBetTransition
	}
	b.Status = next
	return nil
}

// Involves reports whether userID is one of the bettors.
func (b *Bet) Involves(userID uuid.UUID) bool {
	return b.Bettor1ID == userID || (b.Bettor2ID != nil && *b.Bettor2ID == userID)
}

// Bettors returns the users holding a stake in the bet.
func (b *Bet) Bettors() []uuid.UUID {
	ids := []uuid.UUID{b.Bettor1ID}
	if b.Bettor2ID != nil {
		ids = append(ids, *b.Bettor2ID)
	}
	return ids
}

// IsP2P reports whether the bet is peer-to-peer.
func (b *Bet) IsP2P() bool {
	return b.BetMode == BetModeP2P
}

// HouseWon reports whether a settled bet went to the house.
func (b *Bet) HouseWon() bool {
	return b.WinnerID != nil && *b.WinnerID == HouseParty
}

// Validate performs validation on the bet model
func (b *Bet) Validate() error {
	if b.Bettor1ID == uuid.Nil {
		return ErrInvalidUserID
	}
	if b.Amount <= 0 {
		return ErrInvalidBetAmount
	}
	if !b.Bettor1Selection.Valid() {
		return ErrInvalidSelection
	}
	if !b.BetMode.Valid() {
		return ErrInvalidBetMode
	}
	if b.Bettor1Odds == 0 {
		return ErrInvalidOdds
	}
	if b.IsP2P() {
		if b.Bettor2Selection == nil || *b.Bettor2Selection != b.Bettor1Selection.Complement() {
			return ErrInvalidSelection
		}
		if b.Bettor2Odds == nil || *b.Bettor2Odds == 0 {
			return ErrInvalidOdds
		}
	}
	joined := b.Status == BetStatusMatched || b.Status == BetStatusActive ||
		b.Status == BetStatusWon || b.Status == BetStatusLost || b.Status == BetStatusPush
	if b.IsP2P() && joined != (b.Bettor2ID != nil) {
		return ErrInvalidBetStatus
	}
	if !b.IsP2P() && b.Bettor2ID != nil {
		return ErrInvalidBetStatus
	}
	return nil
}
