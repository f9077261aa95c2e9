package games

import (
	"time"

	"github.com/google/uuid"
	"github.com/joefazee/betpoints/app/bets"
	"github.com/joefazee/betpoints/internal/validator"
	"github.com/joefazee/betpoints/models"
)

type CreateGameRequest struct {
	HomeTeam string    `json:"home_team"`
	AwayTeam string    `json:"away_team"`
	HomeOdds int       `json:"home_odds"`
	AwayOdds int       `json:"away_odds"`
	StartsAt time.Time `json:"starts_at"`
}

func (r *CreateGameRequest) Validate(v *validator.Validator) bool {
	v.Check(validator.NotBlank(r.HomeTeam), "home_team", "must be provided")
	v.Check(validator.MaxRunes(r.HomeTeam, 100), "home_team", "must not be more than 100 characters")
	v.Check(validator.NotBlank(r.AwayTeam), "away_team", "must be provided")
	v.Check(validator.MaxRunes(r.AwayTeam, 100), "away_team", "must not be more than 100 characters")
	v.Check(r.HomeTeam != r.AwayTeam, "away_team", "must differ from home_team")
	v.Check(validator.NonZeroOdds(r.HomeOdds), "home_odds", "must be nonzero american odds")
	v.Check(validator.NonZeroOdds(r.AwayOdds), "away_odds", "must be nonzero american odds")
	v.Check(!r.StartsAt.IsZero(), "starts_at", "must be provided")
	return v.Valid()
}

type UpdateOddsRequest struct {
	HomeOdds int `json:"home_odds"`
	AwayOdds int `json:"away_odds"`
}

func (r *UpdateOddsRequest) Validate(v *validator.Validator) bool {
	v.Check(validator.NonZeroOdds(r.HomeOdds), "home_odds", "must be nonzero american odds")
	v.Check(validator.NonZeroOdds(r.AwayOdds), "away_odds", "must be nonzero american odds")
	return v.Valid()
}

type SetResultRequest struct {
	Outcome models.Selection `json:"outcome"`
}

func (r *SetResultRequest) Validate(v *validator.Validator) bool {
	v.Check(validator.In(r.Outcome, models.SelectionHome, models.SelectionAway), "outcome", "must be home or away")
	return v.Valid()
}

type GameResponse struct {
	ID        uuid.UUID         `json:"id"`
	HomeTeam  string            `json:"home_team"`
	AwayTeam  string            `json:"away_team"`
	HomeOdds  int               `json:"home_odds"`
	AwayOdds  int               `json:"away_odds"`
	StartsAt  time.Time         `json:"starts_at"`
	Status    models.GameStatus `json:"status"`
	Result    *models.Selection `json:"result,omitempty"`
	CreatedAt time.Time         `json:"created_at"`
}

// GameActionResponse is returned by status changes together with what happened to the bets.
type GameActionResponse struct {
	Game GameResponse     `json:"game"`
	Bets bets.BatchResult `json:"bets"`
}

func ToGameResponse(g *models.Game) GameResponse {
	return GameResponse{
		ID:        g.ID,
		HomeTeam:  g.HomeTeam,
		AwayTeam:  g.AwayTeam,
		HomeOdds:  g.HomeOdds,
		AwayOdds:  g.AwayOdds,
		StartsAt:  g.StartsAt,
		Status:    g.Status,
		Result:    g.Result,
		CreatedAt: g.CreatedAt,
	}
}

func ToGameResponses(games []models.Game) []GameResponse {
	out := make([]GameResponse, len(games))
	for i := range games {
		out[i] = ToGameResponse(&games[i])
	}
	return out
}
