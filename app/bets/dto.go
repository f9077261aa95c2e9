package bets

import (
	"time"

	"github.com/google/uuid"
	"github.com/joefazee/betpoints/app/odds"
	"github.com/joefazee/betpoints/internal/validator"
	"github.com/joefazee/betpoints/models"
)

type PlaceBetRequest struct {
	GameID          uuid.UUID        `json:"game_id"`
	Selection       models.Selection `json:"selection"`
	Amount          int64            `json:"amount"`
	BetMode         models.BetMode   `json:"bet_mode"`
	ClientRequestID string           `json:"client_request_id,omitempty"`
}

func (r *PlaceBetRequest) Validate(v *validator.Validator) bool {
	v.Check(r.GameID != uuid.Nil, "game_id", "must be provided")
	v.Check(r.Amount > 0, "amount", "must be greater than zero")
	v.Check(validator.In(r.Selection, models.SelectionHome, models.SelectionAway), "selection", "must be home or away")
	v.Check(validator.In(r.BetMode, models.BetModeHouse, models.BetModeP2P), "bet_mode", "must be house or p2p")
	v.Check(validator.MaxRunes(r.ClientRequestID, 64), "client_request_id", "must not be more than 64 characters")
	return v.Valid()
}

type SettleBetRequest struct {
	Outcome models.Selection `json:"outcome"`
}

func (r *SettleBetRequest) Validate(v *validator.Validator) bool {
	v.Check(validator.In(r.Outcome, models.SelectionHome, models.SelectionAway), "outcome", "must be home or away")
	return v.Valid()
}

type GameSummary struct {
	ID       uuid.UUID         `json:"id"`
	HomeTeam string            `json:"home_team"`
	AwayTeam string            `json:"away_team"`
	StartsAt time.Time         `json:"starts_at"`
	Status   models.GameStatus `json:"status"`
}

type BetResponse struct {
	ID               uuid.UUID         `json:"id"`
	GameID           uuid.UUID         `json:"game_id"`
	Game             *GameSummary      `json:"game,omitempty"`
	BetMode          models.BetMode    `json:"bet_mode"`
	Status           models.BetStatus  `json:"status"`
	Amount           int64             `json:"amount"`
	Bettor1ID        uuid.UUID         `json:"bettor1_id"`
	Bettor1Selection models.Selection  `json:"bettor1_selection"`
	Bettor1Odds      int               `json:"bettor1_odds"`
	Bettor2ID        *uuid.UUID        `json:"bettor2_id,omitempty"`
	Bettor2Selection *models.Selection `json:"bettor2_selection,omitempty"`
	Bettor2Odds      *int              `json:"bettor2_odds,omitempty"`

	// PotentialPayout is the exact decimal payout for bettor1 should their side win.
	PotentialPayout string `json:"potential_payout"`

	WinnerID        *string    `json:"winner_id,omitempty"`
	LoserID         *string    `json:"loser_id,omitempty"`
	Bettor1Payout   *int64     `json:"bettor1_payout,omitempty"`
	Bettor2Payout   *int64     `json:"bettor2_payout,omitempty"`
	ClientRequestID *string    `json:"client_request_id,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	MatchedAt       *time.Time `json:"matched_at,omitempty"`
	ResolvedAt      *time.Time `json:"resolved_at,omitempty"`
}

// BatchResult counts what a game-wide or sweeper pass did to each bet.
type BatchResult struct {
	Activated int `json:"activated"`
	Won       int `json:"won"`
	HouseWon  int `json:"house_won"`
	Pushed    int `json:"pushed"`
	Cancelled int `json:"cancelled"`
	Failed    int `json:"failed"`
}

// record counts a bet that changed state. Won counts bets a bettor won; HouseWon the rest
// of the settled bets.
func (r *BatchResult) record(bet *models.Bet) {
	switch bet.Status {
	case models.BetStatusActive:
		r.Activated++
	case models.BetStatusWon:
		if bet.HouseWon() {
			r.HouseWon++
		} else {
			r.Won++
		}
	case models.BetStatusPush:
		r.Pushed++
	case models.BetStatusCancelled:
		r.Cancelled++
	}
}

// Total is the number of bets that changed state.
func (r *BatchResult) Total() int {
	return r.Activated + r.Won + r.HouseWon + r.Pushed + r.Cancelled
}

func ToBetResponse(b *models.Bet) BetResponse {
	resp := BetResponse{
		ID:               b.ID,
		GameID:           b.GameID,
		BetMode:          b.BetMode,
		Status:           b.Status,
		Amount:           b.Amount,
		Bettor1ID:        b.Bettor1ID,
		Bettor1Selection: b.Bettor1Selection,
		Bettor1Odds:      b.Bettor1Odds,
		Bettor2ID:        b.Bettor2ID,
		Bettor2Selection: b.Bettor2Selection,
		Bettor2Odds:      b.Bettor2Odds,
		WinnerID:         b.WinnerID,
		LoserID:          b.LoserID,
		Bettor1Payout:    b.Bettor1Payout,
		Bettor2Payout:    b.Bettor2Payout,
		ClientRequestID:  b.ClientRequestID,
		CreatedAt:        b.CreatedAt,
		MatchedAt:        b.MatchedAt,
		ResolvedAt:       b.ResolvedAt,
	}
	if payout, err := odds.Payout(b.Amount, b.Bettor1Odds); err == nil {
		resp.PotentialPayout = payout.StringFixed(2)
	}
	if b.Game != nil {
		resp.Game = &GameSummary{
			ID:       b.Game.ID,
			HomeTeam: b.Game.HomeTeam,
			AwayTeam: b.Game.AwayTeam,
			StartsAt: b.Game.StartsAt,
			Status:   b.Game.Status,
		}
	}
	return resp
}

func ToBetResponses(bets []models.Bet) []BetResponse {
	out := make([]BetResponse, len(bets))
	for i := range bets {
		out[i] = ToBetResponse(&bets[i])
	}
	return out
}
