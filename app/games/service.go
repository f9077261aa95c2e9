package games

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/joefazee/betpoints/app/bets"
	"github.com/joefazee/betpoints/internal/logger"
	"github.com/joefazee/betpoints/internal/sanitizer"
	"github.com/joefazee/betpoints/models"
	"gorm.io/gorm"
)

const (
	DefaultListLimit = 10
	MaxListLimit     = 50
)

type service struct {
	db        *gorm.DB
	repo      Repository
	settler   bets.Settler
	sanitizer sanitizer.HTMLStripperer
	logger    logger.Logger
}

func NewService(db *gorm.DB, repo Repository, settler bets.Settler, s sanitizer.HTMLStripperer, log logger.Logger) Service {
	return &service{
		db:        db,
		repo:      repo,
		settler:   settler,
		sanitizer: s,
		logger:    log,
	}
}

func (s *service) CreateGame(ctx context.Context, actorID uuid.UUID, req *CreateGameRequest) (*GameResponse, error) {
	game := &models.Game{
		ID:       uuid.New(),
		HomeTeam: s.clean(req.HomeTeam),
		AwayTeam: s.clean(req.AwayTeam),
		HomeOdds: req.HomeOdds,
		AwayOdds: req.AwayOdds,
		StartsAt: req.StartsAt.UTC(),
		Status:   models.GameStatusScheduled,
	}
	if err := game.Validate(); err != nil {
		return nil, err
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repoTx := s.repo.WithTx(tx)
		if err := repoTx.Create(ctx, game); err != nil {
			return fmt.Errorf("create game: %w", err)
		}
		return repoTx.CreateAuditLog(ctx, models.NewAuditLog(&actorID, models.AuditActionGameCreated,
			models.AuditResourceGame, game.ID, nil, map[string]interface{}{
				"home_team": game.HomeTeam,
				"away_team": game.AwayTeam,
				"home_odds": game.HomeOdds,
				"away_odds": game.AwayOdds,
			}))
	})
	if err != nil {
		return nil, err
	}

	resp := ToGameResponse(game)
	return &resp, nil
}

func (s *service) clean(name string) string {
	if s.sanitizer != nil {
		name = s.sanitizer.StripHTML(name)
	}
	return strings.TrimSpace(name)
}

func (s *service) ListGames(ctx context.Context, status *models.GameStatus, limit int, cursor *uuid.UUID) ([]GameResponse, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}
	if limit > MaxListLimit {
		limit = MaxListLimit
	}

	games, err := s.repo.List(ctx, status, limit, cursor)
	if err != nil {
		return nil, fmt.Errorf("list games: %w", err)
	}
	return ToGameResponses(games), nil
}

func (s *service) GetGame(ctx context.Context, id uuid.UUID) (*GameResponse, error) {
	game, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "get game")
	}
	resp := ToGameResponse(game)
	return &resp, nil
}

// UpdateOdds changes the odds offered to new bets. Bets already placed keep the odds
// they were placed at.
func (s *service) UpdateOdds(ctx context.Context, actorID, id uuid.UUID, req *UpdateOddsRequest) (*GameResponse, error) {
	if req.HomeOdds == 0 || req.AwayOdds == 0 {
		return nil, models.ErrInvalidOdds
	}

	var game *models.Game
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repoTx := s.repo.WithTx(tx)

		var err error
		game, err = repoTx.LockGame(ctx, id)
		if err != nil {
			return notFound(err, "lock game")
		}
		if game.Status != models.GameStatusScheduled {
			return models.ErrGameNotOpen
		}

		old := map[string]interface{}{"home_odds": game.HomeOdds, "away_odds": game.AwayOdds}
		game.HomeOdds = req.HomeOdds
		game.AwayOdds = req.AwayOdds
		if err := repoTx.Update(ctx, game); err != nil {
			return fmt.Errorf("update game: %w", err)
		}
		return repoTx.CreateAuditLog(ctx, models.NewAuditLog(&actorID, models.AuditActionOddsUpdated,
			models.AuditResourceGame, game.ID, old,
			map[string]interface{}{"home_odds": game.HomeOdds, "away_odds": game.AwayOdds}))
	})
	if err != nil {
		return nil, err
	}

	resp := ToGameResponse(game)
	return &resp, nil
}

// StartGame closes the game to new bets and activates the matched ones.
func (s *service) StartGame(ctx context.Context, actorID, id uuid.UUID) (*GameActionResponse, error) {
	game, err := s.transition(ctx, actorID, id, models.GameStatusLive, models.AuditActionGameStarted, nil)
	if err != nil {
		return nil, err
	}

	resp := &GameActionResponse{Game: ToGameResponse(game)}
	result, err := s.settler.ActivateGameBets(ctx, game.ID)
	s.merge(&resp.Bets, result, err, game.ID, "activate bets")
	return resp, nil
}

// SetResult finalizes the game and settles its bets. Calling it again with the same
// outcome retries bets that failed to settle the first time.
func (s *service) SetResult(ctx context.Context, actorID, id uuid.UUID, outcome models.Selection) (*GameActionResponse, error) {
	if !outcome.Valid() {
		return nil, models.ErrInvalidOutcome
	}

	game, err := s.transition(ctx, actorID, id, models.GameStatusFinal, models.AuditActionGameResult, &outcome)
	if err != nil {
		return nil, err
	}

	resp := &GameActionResponse{Game: ToGameResponse(game)}

	// anything still matched goes live before settlement
	activated, err := s.settler.ActivateGameBets(ctx, game.ID)
	s.merge(&resp.Bets, activated, err, game.ID, "activate bets")

	settled, err := s.settler.SettleGame(ctx, &actorID, game.ID, outcome)
	s.merge(&resp.Bets, settled, err, game.ID, "settle bets")
	return resp, nil
}

// CancelGame calls the game off and refunds every unresolved bet on it.
func (s *service) CancelGame(ctx context.Context, actorID, id uuid.UUID) (*GameActionResponse, error) {
	game, err := s.transition(ctx, actorID, id, models.GameStatusCancelled, models.AuditActionGameCancelled, nil)
	if err != nil {
		return nil, err
	}

	resp := &GameActionResponse{Game: ToGameResponse(game)}
	result, err := s.settler.VoidGameBets(ctx, game.ID)
	s.merge(&resp.Bets, result, err, game.ID, "void bets")
	return resp, nil
}

// transition moves the game to next under a row lock and records who did it. A game
// already in next (with the same result) is returned unchanged so the bet fan-out can
// be retried.
func (s *service) transition(ctx context.Context, actorID, id uuid.UUID, next models.GameStatus, action string, result *models.Selection) (*models.Game, error) {
	var game *models.Game
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repoTx := s.repo.WithTx(tx)

		var err error
		game, err = repoTx.LockGame(ctx, id)
		if err != nil {
			return notFound(err, "lock game")
		}

		if game.Status == next {
			if result != nil && (game.Result == nil || *game.Result != *result) {
				return models.ErrInvalidGameTransition
			}
			return nil
		}

		previous := game.Status
		if err := game.TransitionTo(next); err != nil {
			return err
		}
		newValues := map[string]interface{}{"status": next}
		if result != nil {
			game.Result = result
			newValues["result"] = *result
		}
		if err := repoTx.Update(ctx, game); err != nil {
			return fmt.Errorf("update game: %w", err)
		}
		return repoTx.CreateAuditLog(ctx, models.NewAuditLog(&actorID, action, models.AuditResourceGame, game.ID,
			map[string]interface{}{"status": previous}, newValues))
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("game status changed", map[string]interface{}{
		"game_id":  game.ID,
		"status":   game.Status,
		"actor_id": actorID,
	})
	return game, nil
}

// merge folds a batch into the running total. Per-bet failures are logged and show up
// in Failed; the game transition itself already committed.
func (s *service) merge(total *bets.BatchResult, result *bets.BatchResult, err error, gameID uuid.UUID, op string) {
	if result != nil {
		total.Activated += result.Activated
		total.Won += result.Won
		total.HouseWon += result.HouseWon
		total.Pushed += result.Pushed
		total.Cancelled += result.Cancelled
		total.Failed += result.Failed
	}
	if err != nil {
		if result == nil {
			total.Failed++
		}
		s.logger.Error(fmt.Errorf("%s: %w", op, err), map[string]interface{}{"game_id": gameID})
	}
}

func notFound(err error, op string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.ErrRecordNotFound
	}
	return fmt.Errorf("%s: %w", op, err)
}
