package bets

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/joefazee/betpoints/app/database"
	"github.com/joefazee/betpoints/app/ledger"
	"github.com/joefazee/betpoints/app/odds"
	"github.com/joefazee/betpoints/internal/logger"
	"github.com/joefazee/betpoints/internal/metrics"
	"github.com/joefazee/betpoints/models"
	"gorm.io/gorm"
)

const (
	DefaultListLimit = 20
	MaxListLimit     = 100
)

type service struct {
	db      *gorm.DB
	repo    Repository
	writer  ledger.Writer
	config  *Config
	logger  logger.Logger
	metrics *metrics.Metrics
	now     func() time.Time
}

// NewService wires the bet lifecycle. Every balance change goes through writer,
// bound to the same transaction as the bet row it belongs to.
func NewService(db *gorm.DB, repo Repository, writer ledger.Writer, config *Config, log logger.Logger, m *metrics.Metrics) Manager {
	return &service{
		db:      db,
		repo:    repo,
		writer:  writer,
		config:  config,
		logger:  log,
		metrics: m,
		now:     time.Now,
	}
}

// PlaceBet snapshots the game's odds into a new bet and reserves the stake. House bets
// start active; p2p bets start open with the opposite side precomputed.
func (s *service) PlaceBet(ctx context.Context, userID uuid.UUID, req *PlaceBetRequest) (*BetResponse, error) {
	if req.Amount <= 0 {
		return nil, models.ErrInvalidBetAmount
	}
	if !req.Selection.Valid() {
		return nil, models.ErrInvalidSelection
	}
	if !req.BetMode.Valid() {
		return nil, models.ErrInvalidBetMode
	}

	if req.ClientRequestID != "" {
		existing, err := s.findReplay(ctx, userID, req.ClientRequestID)
		if err != nil || existing != nil {
			return existing, err
		}
	}

	var bet *models.Bet
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repoTx := s.repo.WithTx(tx)

		game, err := repoTx.ShareLockGame(ctx, req.GameID)
		if err != nil {
			return notFound(err, "get game")
		}
		if !game.AcceptsBets() {
			return models.ErrGameNotOpen
		}

		bet = newBet(userID, game, req)
		if err := bet.Validate(); err != nil {
			return err
		}
		if _, err := s.writer.WithTx(tx).Reserve(ctx, userID, bet.Amount, bet.ID); err != nil {
			return err
		}
		if err := repoTx.CreateBet(ctx, bet); err != nil {
			return fmt.Errorf("create bet: %w", err)
		}
		bet.Game = game
		return nil
	})
	if err != nil {
		if req.ClientRequestID != "" && database.IsUniqueViolation(err) {
			if existing, findErr := s.findReplay(ctx, userID, req.ClientRequestID); findErr == nil && existing != nil {
				return existing, nil
			}
		}
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.BetsPlaced.WithLabelValues(string(bet.BetMode)).Inc()
	}
	s.logger.Info("bet placed", map[string]interface{}{
		"bet_id":  bet.ID,
		"user_id": userID,
		"game_id": bet.GameID,
		"mode":    bet.BetMode,
		"amount":  bet.Amount,
	})

	resp := ToBetResponse(bet)
	return &resp, nil
}

func newBet(userID uuid.UUID, game *models.Game, req *PlaceBetRequest) *models.Bet {
	bet := &models.Bet{
		ID:               uuid.New(),
		Bettor1ID:        userID,
		GameID:           game.ID,
		Bettor1Selection: req.Selection,
		Amount:           req.Amount,
		Bettor1Odds:      game.OddsFor(req.Selection),
		BetMode:          req.BetMode,
		Status:           models.BetStatusActive,
	}
	if req.BetMode == models.BetModeP2P {
		other := req.Selection.Complement()
		otherOdds := game.OddsFor(other)
		bet.Bettor2Selection = &other
		bet.Bettor2Odds = &otherOdds
		bet.Status = models.BetStatusOpen
	}
	if req.ClientRequestID != "" {
		id := req.ClientRequestID
		bet.ClientRequestID = &id
	}
	return bet
}

func (s *service) findReplay(ctx context.Context, userID uuid.UUID, requestID string) (*BetResponse, error) {
	bet, err := s.repo.FindByClientRequest(ctx, userID, requestID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("find bet by request id: %w", err)
	}
	resp := ToBetResponse(bet)
	return &resp, nil
}

// JoinP2PBet takes the open side of another user's p2p bet.
func (s *service) JoinP2PBet(ctx context.Context, userID, betID uuid.UUID) (*BetResponse, error) {
	var bet *models.Bet
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repoTx := s.repo.WithTx(tx)

		var err error
		bet, err = repoTx.LockBet(ctx, betID)
		if err != nil {
			return notFound(err, "lock bet")
		}
		if !bet.IsP2P() || bet.Status != models.BetStatusOpen || bet.Bettor1ID == userID {
			return models.ErrBetUnavailable
		}

		game, err := repoTx.ShareLockGame(ctx, bet.GameID)
		if err != nil {
			return notFound(err, "get game")
		}
		if !game.AcceptsBets() {
			return models.ErrBetUnavailable
		}

		if _, err := s.writer.WithTx(tx).Reserve(ctx, userID, bet.Amount, bet.ID); err != nil {
			return err
		}

		now := s.now()
		bet.Bettor2ID = &userID
		if err := bet.TransitionTo(models.BetStatusMatched); err != nil {
			return err
		}
		bet.MatchedAt = &now
		if err := repoTx.UpdateBet(ctx, bet); err != nil {
			return fmt.Errorf("update bet: %w", err)
		}
		bet.Game = game
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("p2p bet matched", map[string]interface{}{
		"bet_id":  bet.ID,
		"bettor1": bet.Bettor1ID,
		"bettor2": userID,
		"amount":  bet.Amount,
	})
	resp := ToBetResponse(bet)
	return &resp, nil
}

// CancelBet lets the owner withdraw an open p2p bet nobody has joined.
func (s *service) CancelBet(ctx context.Context, userID, betID uuid.UUID) (*BetResponse, error) {
	var bet *models.Bet
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		bet, err = s.repo.WithTx(tx).LockBet(ctx, betID)
		if err != nil {
			return notFound(err, "lock bet")
		}
		if bet.Bettor1ID != userID {
			return models.ErrForbidden
		}
		if bet.Status != models.BetStatusOpen {
			return models.ErrBetNotCancellable
		}
		return s.void(ctx, tx, bet, "Stake returned: bet cancelled")
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("bet cancelled", map[string]interface{}{"bet_id": betID, "user_id": userID})
	resp := ToBetResponse(bet)
	return &resp, nil
}

// SettleBet resolves one active bet against the game outcome. A non-nil actor marks a
// manual settlement and is written to the audit log.
func (s *service) SettleBet(ctx context.Context, actorID *uuid.UUID, betID uuid.UUID, outcome models.Selection) (*BetResponse, error) {
	if !outcome.Valid() {
		return nil, models.ErrInvalidOutcome
	}

	var bet *models.Bet
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repoTx := s.repo.WithTx(tx)

		var err error
		bet, err = repoTx.LockBet(ctx, betID)
		if err != nil {
			return notFound(err, "lock bet")
		}
		if err := s.settle(ctx, tx, bet, outcome); err != nil {
			return err
		}
		if actorID == nil {
			return nil
		}
		entry := models.NewAuditLog(actorID, models.AuditActionBetSettled, models.AuditResourceBet, bet.ID,
			map[string]interface{}{"status": models.BetStatusActive},
			map[string]interface{}{"status": bet.Status, "outcome": outcome, "winner_id": *bet.WinnerID},
		)
		return repoTx.CreateAuditLog(ctx, entry)
	})
	if err != nil {
		return nil, err
	}

	s.countSettled(bet)
	resp := ToBetResponse(bet)
	return &resp, nil
}

// settle pays the winner from their own snapshotted odds. Losers get no ledger entry;
// their stake left the balance when the bet was placed.
func (s *service) settle(ctx context.Context, tx *gorm.DB, bet *models.Bet, outcome models.Selection) error {
	if bet.Status != models.BetStatusActive {
		return models.ErrBetNotSettleable
	}

	var (
		winnerID, loserID string
		winnerUser        *uuid.UUID
		winnerOdds        int
		zero              int64
	)

	switch {
	case bet.Bettor1Selection == outcome:
		winnerUser = &bet.Bettor1ID
		winnerOdds = bet.Bettor1Odds
		winnerID = bet.Bettor1ID.String()
		loserID = models.HouseParty
		if bet.IsP2P() {
			if bet.Bettor2ID == nil {
				return models.ErrSettlementInconsistent
			}
			loserID = bet.Bettor2ID.String()
			bet.Bettor2Payout = &zero
		}
	case bet.IsP2P() && bet.Bettor2Selection != nil && *bet.Bettor2Selection == outcome:
		if bet.Bettor2ID == nil || bet.Bettor2Odds == nil {
			return models.ErrSettlementInconsistent
		}
		winnerUser = bet.Bettor2ID
		winnerOdds = *bet.Bettor2Odds
		winnerID = bet.Bettor2ID.String()
		loserID = bet.Bettor1ID.String()
		bet.Bettor1Payout = &zero
	case !bet.IsP2P():
		winnerID = models.HouseParty
		loserID = bet.Bettor1ID.String()
		bet.Bettor1Payout = &zero
	default:
		return models.ErrSettlementInconsistent
	}

	if err := bet.TransitionTo(models.BetStatusWon); err != nil {
		return err
	}

	if winnerUser != nil {
		credit, err := odds.CreditFor(bet.Amount, winnerOdds)
		if err != nil {
			return err
		}
		if _, err := s.writer.WithTx(tx).Credit(ctx, *winnerUser, credit, models.TransactionTypeBetWon, &bet.ID, "Bet won"); err != nil {
			return err
		}
		if *winnerUser == bet.Bettor1ID {
			bet.Bettor1Payout = &credit
		} else {
			bet.Bettor2Payout = &credit
		}
	}

	now := s.now()
	bet.WinnerID = &winnerID
	bet.LoserID = &loserID
	bet.ResolvedAt = &now
	if err := s.repo.WithTx(tx).UpdateBet(ctx, bet); err != nil {
		return fmt.Errorf("update bet: %w", err)
	}
	return nil
}

// void closes a bet without a winner and refunds every bettor's stake: open bets are
// cancelled, matched and active bets are pushed.
func (s *service) void(ctx context.Context, tx *gorm.DB, bet *models.Bet, reason string) error {
	target := models.BetStatusPush
	if bet.Status == models.BetStatusOpen {
		target = models.BetStatusCancelled
	}
	if err := bet.TransitionTo(target); err != nil {
		return err
	}

	w := s.writer.WithTx(tx)
	for _, bettor := range bet.Bettors() {
		if _, err := w.Credit(ctx, bettor, bet.Amount, models.TransactionTypeBetRefund, &bet.ID, reason); err != nil {
			return err
		}
	}

	if target == models.BetStatusPush {
		refund := bet.Amount
		bet.Bettor1Payout = &refund
		if bet.Bettor2ID != nil {
			bet.Bettor2Payout = &refund
		}
	}
	now := s.now()
	bet.ResolvedAt = &now
	if err := s.repo.WithTx(tx).UpdateBet(ctx, bet); err != nil {
		return fmt.Errorf("update bet: %w", err)
	}
	return nil
}

// ActivateGameBets runs when a game goes live: matched bets become active and open
// bets that nobody joined are cancelled with a refund.
func (s *service) ActivateGameBets(ctx context.Context, gameID uuid.UUID) (*BatchResult, error) {
	ids, err := s.repo.GetBetIDsByGame(ctx, gameID, []models.BetStatus{models.BetStatusOpen, models.BetStatusMatched})
	if err != nil {
		return nil, fmt.Errorf("list bets for game %s: %w", gameID, err)
	}

	result := &BatchResult{}
	err = s.forEachBet(ctx, ids, result, func(tx *gorm.DB, bet *models.Bet) error {
		switch bet.Status {
		case models.BetStatusMatched:
			if err := bet.TransitionTo(models.BetStatusActive); err != nil {
				return err
			}
			return s.repo.WithTx(tx).UpdateBet(ctx, bet)
		case models.BetStatusOpen:
			return s.void(ctx, tx, bet, "Stake returned: game started before the bet was matched")
		}
		return errSkip
	})
	return result, err
}

// SettleGame settles every active bet on the game, one transaction per bet, so one
// bad bet does not hold back the rest.
func (s *service) SettleGame(ctx context.Context, actorID *uuid.UUID, gameID uuid.UUID, outcome models.Selection) (*BatchResult, error) {
	if !outcome.Valid() {
		return nil, models.ErrInvalidOutcome
	}

	ids, err := s.repo.GetBetIDsByGame(ctx, gameID, []models.BetStatus{models.BetStatusActive})
	if err != nil {
		return nil, fmt.Errorf("list bets for game %s: %w", gameID, err)
	}

	result := &BatchResult{}
	err = s.forEachBet(ctx, ids, result, func(tx *gorm.DB, bet *models.Bet) error {
		if bet.Status != models.BetStatusActive {
			return errSkip
		}
		if err := s.settle(ctx, tx, bet, outcome); err != nil {
			return err
		}
		s.countSettled(bet)
		return nil
	})

	s.logger.Info("game settled", map[string]interface{}{
		"game_id":   gameID,
		"actor_id":  actorID,
		"outcome":   outcome,
		"won":       result.Won,
		"house_won": result.HouseWon,
		"failed":    result.Failed,
	})
	return result, err
}

// VoidGameBets refunds every unresolved bet on a cancelled game.
func (s *service) VoidGameBets(ctx context.Context, gameID uuid.UUID) (*BatchResult, error) {
	ids, err := s.repo.GetBetIDsByGame(ctx, gameID, models.PendingBetStatuses)
	if err != nil {
		return nil, fmt.Errorf("list bets for game %s: %w", gameID, err)
	}

	result := &BatchResult{}
	err = s.forEachBet(ctx, ids, result, func(tx *gorm.DB, bet *models.Bet) error {
		if !bet.Status.IsPending() {
			return errSkip
		}
		return s.void(ctx, tx, bet, "Stake returned: game cancelled")
	})
	return result, err
}

// ExpireStaleBets closes bets stuck past their deadline: open bets after OpenTTL are
// cancelled, matched or active bets after SettleTimeout are pushed. Both refund stakes.
func (s *service) ExpireStaleBets(ctx context.Context, now time.Time) (*BatchResult, error) {
	result := &BatchResult{}

	openIDs, err := s.repo.GetStaleBetIDs(ctx, []models.BetStatus{models.BetStatusOpen},
		now.Add(-s.config.OpenTTL), s.config.SweepBatchSize)
	if err != nil {
		return nil, fmt.Errorf("list expired open bets: %w", err)
	}
	stuckIDs, err := s.repo.GetStaleBetIDs(ctx, []models.BetStatus{models.BetStatusMatched, models.BetStatusActive},
		now.Add(-s.config.SettleTimeout), s.config.SweepBatchSize)
	if err != nil {
		return nil, fmt.Errorf("list unsettled bets: %w", err)
	}

	err = s.forEachBet(ctx, append(openIDs, stuckIDs...), result, func(tx *gorm.DB, bet *models.Bet) error {
		deadline := s.config.SettleTimeout
		if bet.Status == models.BetStatusOpen {
			deadline = s.config.OpenTTL
		}
		if !bet.Status.IsPending() || bet.CreatedAt.After(now.Add(-deadline)) {
			return errSkip
		}
		if err := s.void(ctx, tx, bet, "Stake returned: bet expired"); err != nil {
			return err
		}
		if s.metrics != nil {
			s.metrics.BetsExpired.WithLabelValues(string(bet.Status)).Inc()
		}
		return nil
	})
	return result, err
}

// errSkip tells forEachBet the bet moved on since it was listed; nothing is written.
var errSkip = errors.New("bet skipped")

// forEachBet locks and processes each bet in its own transaction, tallying the new
// status into result. Failures are counted and joined; they do not stop the batch.
func (s *service) forEachBet(ctx context.Context, ids []uuid.UUID, result *BatchResult, fn func(tx *gorm.DB, bet *models.Bet) error) error {
	var errs []error
	for _, id := range ids {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}

		var done *models.Bet
		err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			bet, err := s.repo.WithTx(tx).LockBet(ctx, id)
			if err != nil {
				return err
			}
			if err := fn(tx, bet); err != nil {
				return err
			}
			done = bet
			return nil
		})
		switch {
		case errors.Is(err, errSkip):
		case err != nil:
			result.Failed++
			errs = append(errs, fmt.Errorf("bet %s: %w", id, err))
			s.logger.Error(err, map[string]interface{}{"bet_id": id})
		default:
			result.record(done)
		}
	}
	return errors.Join(errs...)
}

func (s *service) countSettled(bet *models.Bet) {
	if s.metrics == nil {
		return
	}
	winner := "bettor"
	if bet.HouseWon() {
		winner = models.HouseParty
	}
	s.metrics.BetsSettled.WithLabelValues(winner).Inc()
}

func (s *service) GetBet(ctx context.Context, betID uuid.UUID) (*BetResponse, error) {
	bet, err := s.repo.GetBetByID(ctx, betID)
	if err != nil {
		return nil, notFound(err, "get bet")
	}
	resp := ToBetResponse(bet)
	return &resp, nil
}

func (s *service) GetUserBets(ctx context.Context, userID uuid.UUID, limit int, cursor *uuid.UUID) ([]BetResponse, error) {
	bets, err := s.repo.GetUserBets(ctx, userID, clampLimit(limit), cursor)
	if err != nil {
		return nil, fmt.Errorf("list user bets: %w", err)
	}
	return ToBetResponses(bets), nil
}

func (s *service) GetActiveBets(ctx context.Context, userID uuid.UUID) ([]BetResponse, error) {
	bets, err := s.repo.GetActiveBets(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list active bets: %w", err)
	}
	return ToBetResponses(bets), nil
}

// GetOpenP2PBets lists joinable bets, leaving out the caller's own.
func (s *service) GetOpenP2PBets(ctx context.Context, userID uuid.UUID, limit int) ([]BetResponse, error) {
	bets, err := s.repo.GetOpenP2PBets(ctx, userID, clampLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("list open bets: %w", err)
	}
	return ToBetResponses(bets), nil
}

func clampLimit(limit int) int {
	if limit <= 0 {
		return DefaultListLimit
	}
	if limit > MaxListLimit {
		return MaxListLimit
	}
	return limit
}

func notFound(err error, op string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.ErrRecordNotFound
	}
	return fmt.Errorf("%s: %w", op, err)
}
