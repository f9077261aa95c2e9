package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GameStatus represents where a game is in its lifecycle
type GameStatus string

const (
	GameStatusScheduled GameStatus = "scheduled"
	GameStatusLive      GameStatus = "live"
	GameStatusFinal     GameStatus = "final"
	GameStatusCancelled GameStatus = "cancelled"
)

var gameTransitions = map[GameStatus][]GameStatus{
	GameStatusScheduled: {GameStatusLive, GameStatusCancelled},
	GameStatusLive:      {GameStatusFinal, GameStatusCancelled},
}

// Game is a sporting event bets are placed on. Odds are American odds and are
// snapshotted into bets at placement time.
type Game struct {
	ID        uuid.UUID  `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	HomeTeam  string     `gorm:"type:varchar(100);not null" json:"home_team"`
	AwayTeam  string     `gorm:"type:varchar(100);not null" json:"away_team"`
	HomeOdds  int        `gorm:"not null;check:home_odds <> 0" json:"home_odds"`
	AwayOdds  int        `gorm:"not null;check:away_odds <> 0" json:"away_odds"`
	StartsAt  time.Time  `gorm:"type:timestamptz;not null;index" json:"starts_at"`
	Status    GameStatus `gorm:"type:varchar(20);not null;default:'scheduled';index" json:"status"`
	Result    *Selection `gorm:"type:varchar(10)" json:"result,omitempty"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName specifies the table name for Game model
func (*Game) TableName() string {
	return "games"
}

// BeforeCreate sets up the model before creation
func (g *Game) BeforeCreate(_ *gorm.DB) error {
	if g.ID == uuid.Nil {
		g.ID = uuid.New()
	}
	if g.Status == "" {
		g.Status = GameStatusScheduled
	}
	return nil
}

// OddsFor returns the current odds for a side.
func (g *Game) OddsFor(s Selection) int {
	if s == SelectionHome {
		return g.HomeOdds
	}
	return g.AwayOdds
}

// AcceptsBets reports whether new bets may be placed.
func (g *Game) AcceptsBets() bool {
	return g.Status == GameStatusScheduled
}

// TransitionTo moves the game to next or fails with ErrInvalidGameTransition.
func (g *Game) TransitionTo(next GameStatus) error {
	for _, allowed := range gameTransitions[g.Status] {
		if allowed == next {
			g.Status = next
			return nil
		}
	}
	return ErrInvalidGameTransition
}

// Validate performs validation on the game model
func (g *Game) Validate() error {
	if strings.TrimSpace(g.HomeTeam) == "" || strings.TrimSpace(g.AwayTeam) == "" {
		return ErrInvalidGameTeams
	}
	if g.HomeOdds == 0 || g.AwayOdds == 0 {
		return ErrInvalidOdds
	}
	if g.Result != nil && !g.Result.Valid() {
		return ErrInvalidOutcome
	}
	return nil
}
