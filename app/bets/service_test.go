package bets

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"

	"github.com/joefazee/betpoints/app/ledger"
	"github.com/joefazee/betpoints/internal/logger"
	"github.com/joefazee/betpoints/internal/metrics"
	"github.com/joefazee/betpoints/models"
)

type BetServiceTestSuite struct {
	suite.Suite
	ctx     context.Context
	sqlMock sqlmock.Sqlmock
	repo    *MockRepository
	writer  *ledger.MockWriter
	metrics *metrics.Metrics
	service Manager
}

func (s *BetServiceTestSuite) SetupTest() {
	db, sqlMock := newMockDB(s.T())
	s.ctx = context.Background()
	s.sqlMock = sqlMock
	s.repo = new(MockRepository)
	s.writer = new(ledger.MockWriter)
	s.metrics = metrics.NewUnregistered()
	s.service = NewService(db, s.repo, s.writer, GetDefaultConfig(), logger.NewNullLogger(), s.metrics)
}

func (s *BetServiceTestSuite) TearDownTest() {
	s.Require().NoError(s.sqlMock.ExpectationsWereMet())
}

func TestBetService(t *testing.T) {
	suite.Run(t, new(BetServiceTestSuite))
}

func scheduledGame(homeOdds, awayOdds int) *models.Game {
	return &models.Game{
		ID:       uuid.New(),
		HomeTeam: "Lions",
		AwayTeam: "Tigers",
		HomeOdds: homeOdds,
		AwayOdds: awayOdds,
		StartsAt: time.Now().Add(time.Hour),
		Status:   models.GameStatusScheduled,
	}
}

func activeHouseBet(userID uuid.UUID, amount int64, selection models.Selection, odds int) *models.Bet {
	return &models.Bet{
		ID:               uuid.New(),
		Bettor1ID:        userID,
		GameID:           uuid.New(),
		Bettor1Selection: selection,
		Amount:           amount,
		Bettor1Odds:      odds,
		BetMode:          models.BetModeHouse,
		Status:           models.BetStatusActive,
		CreatedAt:        time.Now(),
	}
}

func p2pBet(bettor1 uuid.UUID, bettor2 *uuid.UUID, amount int64, status models.BetStatus) *models.Bet {
	away := models.SelectionAway
	awayOdds := 120
	return &models.Bet{
		ID:               uuid.New(),
		Bettor1ID:        bettor1,
		Bettor2ID:        bettor2,
		GameID:           uuid.New(),
		Bettor1Selection: models.SelectionHome,
		Bettor2Selection: &away,
		Amount:           amount,
		Bettor1Odds:      -140,
		Bettor2Odds:      &awayOdds,
		BetMode:          models.BetModeP2P,
		Status:           status,
		CreatedAt:        time.Now(),
	}
}

func (s *BetServiceTestSuite) TestPlaceBet_House() {
	userID := uuid.New()
	game := scheduledGame(150, -170)
	req := &PlaceBetRequest{GameID: game.ID, Selection: models.SelectionHome, Amount: 100, BetMode: models.BetModeHouse}

	s.sqlMock.ExpectBegin()
	s.repo.On("ShareLockGame", s.ctx, game.ID).Return(game, nil)
	s.writer.On("Reserve", s.ctx, userID, int64(100), mock.Anything).Return(&models.PointsTransaction{}, nil)
	s.repo.On("CreateBet", s.ctx, mock.AnythingOfType("*models.Bet")).Return(nil)
	s.sqlMock.ExpectCommit()

	resp, err := s.service.PlaceBet(s.ctx, userID, req)

	s.Require().NoError(err)
	s.Equal(models.BetStatusActive, resp.Status)
	s.Equal(150, resp.Bettor1Odds)
	s.Equal("250.00", resp.PotentialPayout)
	s.Nil(resp.Bettor2Selection)
	s.Equal(1.0, testutil.ToFloat64(s.metrics.BetsPlaced.WithLabelValues("house")))
}

func (s *BetServiceTestSuite) TestPlaceBet_P2PSnapshotsBothSides() {
	userID := uuid.New()
	game := scheduledGame(-140, 120)
	req := &PlaceBetRequest{GameID: game.ID, Selection: models.SelectionHome, Amount: 50, BetMode: models.BetModeP2P}

	s.sqlMock.ExpectBegin()
	s.repo.On("ShareLockGame", s.ctx, game.ID).Return(game, nil)
	s.writer.On("Reserve", s.ctx, userID, int64(50), mock.Anything).Return(&models.PointsTransaction{}, nil)
	s.repo.On("CreateBet", s.ctx, mock.AnythingOfType("*models.Bet")).Return(nil)
	s.sqlMock.ExpectCommit()

	resp, err := s.service.PlaceBet(s.ctx, userID, req)

	s.Require().NoError(err)
	s.Equal(models.BetStatusOpen, resp.Status)
	s.Equal(-140, resp.Bettor1Odds)
	s.Require().NotNil(resp.Bettor2Selection)
	s.Equal(models.SelectionAway, *resp.Bettor2Selection)
	s.Equal(120, *resp.Bettor2Odds)
	s.Nil(resp.Bettor2ID)
}

func (s *BetServiceTestSuite) TestPlaceBet_InsufficientBalanceChangesNothing() {
	userID := uuid.New()
	game := scheduledGame(150, -170)
	req := &PlaceBetRequest{GameID: game.ID, Selection: models.SelectionHome, Amount: 5000, BetMode: models.BetModeHouse}

	s.sqlMock.ExpectBegin()
	s.repo.On("ShareLockGame", s.ctx, game.ID).Return(game, nil)
	s.writer.On("Reserve", s.ctx, userID, int64(5000), mock.Anything).Return(nil, models.ErrInsufficientBalance)
	s.sqlMock.ExpectRollback()

	resp, err := s.service.PlaceBet(s.ctx, userID, req)

	s.ErrorIs(err, models.ErrInsufficientBalance)
	s.Nil(resp)
	s.repo.AssertNotCalled(s.T(), "CreateBet", mock.Anything, mock.Anything)
	s.Equal(0.0, testutil.ToFloat64(s.metrics.BetsPlaced.WithLabelValues("house")))
}

func (s *BetServiceTestSuite) TestPlaceBet_GameNotScheduled() {
	game := scheduledGame(150, -170)
	game.Status = models.GameStatusLive
	req := &PlaceBetRequest{GameID: game.ID, Selection: models.SelectionAway, Amount: 10, BetMode: models.BetModeHouse}

	s.sqlMock.ExpectBegin()
	s.repo.On("ShareLockGame", s.ctx, game.ID).Return(game, nil)
	s.sqlMock.ExpectRollback()

	_, err := s.service.PlaceBet(s.ctx, uuid.New(), req)

	s.ErrorIs(err, models.ErrGameNotOpen)
	s.writer.AssertNotCalled(s.T(), "Reserve", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (s *BetServiceTestSuite) TestPlaceBet_GameMissing() {
	gameID := uuid.New()
	req := &PlaceBetRequest{GameID: gameID, Selection: models.SelectionAway, Amount: 10, BetMode: models.BetModeHouse}

	s.sqlMock.ExpectBegin()
	s.repo.On("ShareLockGame", s.ctx, gameID).Return(nil, gorm.ErrRecordNotFound)
	s.sqlMock.ExpectRollback()

	_, err := s.service.PlaceBet(s.ctx, uuid.New(), req)

	s.ErrorIs(err, models.ErrRecordNotFound)
}

func (s *BetServiceTestSuite) TestPlaceBet_RejectsBadInput() {
	cases := map[string]struct {
		req  *PlaceBetRequest
		want error
	}{
		"zero amount":    {&PlaceBetRequest{Amount: 0, Selection: models.SelectionHome, BetMode: models.BetModeHouse}, models.ErrInvalidBetAmount},
		"bad selection":  {&PlaceBetRequest{Amount: 10, Selection: "draw", BetMode: models.BetModeHouse}, models.ErrInvalidSelection},
		"bad bet mode":   {&PlaceBetRequest{Amount: 10, Selection: models.SelectionHome, BetMode: "pool"}, models.ErrInvalidBetMode},
		"negative stake": {&PlaceBetRequest{Amount: -5, Selection: models.SelectionHome, BetMode: models.BetModeP2P}, models.ErrInvalidBetAmount},
	}
	for name, tc := range cases {
		s.Run(name, func() {
			_, err := s.service.PlaceBet(s.ctx, uuid.New(), tc.req)
			s.ErrorIs(err, tc.want)
		})
	}
}

func (s *BetServiceTestSuite) TestPlaceBet_ReplayReturnsOriginal() {
	userID := uuid.New()
	existing := activeHouseBet(userID, 100, models.SelectionHome, 150)
	req := &PlaceBetRequest{GameID: existing.GameID, Selection: models.SelectionHome, Amount: 100,
		BetMode: models.BetModeHouse, ClientRequestID: "req-1"}

	s.repo.On("FindByClientRequest", s.ctx, userID, "req-1").Return(existing, nil)

	resp, err := s.service.PlaceBet(s.ctx, userID, req)

	s.Require().NoError(err)
	s.Equal(existing.ID, resp.ID)
	s.writer.AssertNotCalled(s.T(), "Reserve", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (s *BetServiceTestSuite) TestPlaceBet_ConcurrentReplayResolvesToWinner() {
	userID := uuid.New()
	game := scheduledGame(150, -170)
	winner := activeHouseBet(userID, 100, models.SelectionHome, 150)
	req := &PlaceBetRequest{GameID: game.ID, Selection: models.SelectionHome, Amount: 100,
		BetMode: models.BetModeHouse, ClientRequestID: "req-2"}

	s.repo.On("FindByClientRequest", s.ctx, userID, "req-2").Return(nil, gorm.ErrRecordNotFound).Once()
	s.sqlMock.ExpectBegin()
	s.repo.On("ShareLockGame", s.ctx, game.ID).Return(game, nil)
	s.writer.On("Reserve", s.ctx, userID, int64(100), mock.Anything).Return(&models.PointsTransaction{}, nil)
	s.repo.On("CreateBet", s.ctx, mock.AnythingOfType("*models.Bet")).Return(&pgconn.PgError{Code: "23505"})
	s.sqlMock.ExpectRollback()
	s.repo.On("FindByClientRequest", s.ctx, userID, "req-2").Return(winner, nil).Once()

	resp, err := s.service.PlaceBet(s.ctx, userID, req)

	s.Require().NoError(err)
	s.Equal(winner.ID, resp.ID)
}

func (s *BetServiceTestSuite) TestJoinP2PBet() {
	creator, joiner := uuid.New(), uuid.New()
	bet := p2pBet(creator, nil, 50, models.BetStatusOpen)
	game := scheduledGame(-140, 120)
	game.ID = bet.GameID

	s.sqlMock.ExpectBegin()
	s.repo.On("LockBet", s.ctx, bet.ID).Return(bet, nil)
	s.repo.On("ShareLockGame", s.ctx, bet.GameID).Return(game, nil)
	s.writer.On("Reserve", s.ctx, joiner, int64(50), bet.ID).Return(&models.PointsTransaction{}, nil)
	s.repo.On("UpdateBet", s.ctx, bet).Return(nil)
	s.sqlMock.ExpectCommit()

	resp, err := s.service.JoinP2PBet(s.ctx, joiner, bet.ID)

	s.Require().NoError(err)
	s.Equal(models.BetStatusMatched, resp.Status)
	s.Equal(joiner, *resp.Bettor2ID)
	s.NotNil(resp.MatchedAt)
}

func (s *BetServiceTestSuite) TestJoinP2PBet_Unavailable() {
	creator := uuid.New()
	other := uuid.New()
	cases := map[string]struct {
		bet    *models.Bet
		joiner uuid.UUID
	}{
		"already matched": {p2pBet(creator, &other, 50, models.BetStatusMatched), uuid.New()},
		"own bet":         {p2pBet(creator, nil, 50, models.BetStatusOpen), creator},
		"house bet":       {activeHouseBet(creator, 50, models.SelectionHome, 150), uuid.New()},
	}
	for name, tc := range cases {
		s.Run(name, func() {
			s.sqlMock.ExpectBegin()
			s.repo.On("LockBet", s.ctx, tc.bet.ID).Return(tc.bet, nil)
			s.sqlMock.ExpectRollback()

			resp, err := s.service.JoinP2PBet(s.ctx, tc.joiner, tc.bet.ID)

			s.ErrorIs(err, models.ErrBetUnavailable)
			s.Nil(resp)
		})
	}
	s.writer.AssertNotCalled(s.T(), "Reserve", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (s *BetServiceTestSuite) TestCancelBet() {
	creator := uuid.New()
	bet := p2pBet(creator, nil, 75, models.BetStatusOpen)

	s.sqlMock.ExpectBegin()
	s.repo.On("LockBet", s.ctx, bet.ID).Return(bet, nil)
	s.writer.On("Credit", s.ctx, creator, int64(75), models.TransactionTypeBetRefund, &bet.ID, mock.Anything).
		Return(&models.PointsTransaction{}, nil)
	s.repo.On("UpdateBet", s.ctx, bet).Return(nil)
	s.sqlMock.ExpectCommit()

	resp, err := s.service.CancelBet(s.ctx, creator, bet.ID)

	s.Require().NoError(err)
	s.Equal(models.BetStatusCancelled, resp.Status)
	s.NotNil(resp.ResolvedAt)
}

func (s *BetServiceTestSuite) TestCancelBet_Rejections() {
	creator := uuid.New()
	joiner := uuid.New()

	s.Run("not owner", func() {
		bet := p2pBet(creator, nil, 75, models.BetStatusOpen)
		s.sqlMock.ExpectBegin()
		s.repo.On("LockBet", s.ctx, bet.ID).Return(bet, nil)
		s.sqlMock.ExpectRollback()

		_, err := s.service.CancelBet(s.ctx, uuid.New(), bet.ID)
		s.ErrorIs(err, models.ErrForbidden)
	})

	s.Run("already matched", func() {
		bet := p2pBet(creator, &joiner, 75, models.BetStatusMatched)
		s.sqlMock.ExpectBegin()
		s.repo.On("LockBet", s.ctx, bet.ID).Return(bet, nil)
		s.sqlMock.ExpectRollback()

		_, err := s.service.CancelBet(s.ctx, creator, bet.ID)
		s.ErrorIs(err, models.ErrBetNotCancellable)
	})

	s.writer.AssertNotCalled(s.T(), "Credit", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (s *BetServiceTestSuite) TestSettleBet_HouseBetWon() {
	userID, actorID := uuid.New(), uuid.New()
	bet := activeHouseBet(userID, 100, models.SelectionHome, 150)

	s.sqlMock.ExpectBegin()
	s.repo.On("LockBet", s.ctx, bet.ID).Return(bet, nil)
	s.writer.On("Credit", s.ctx, userID, int64(250), models.TransactionTypeBetWon, &bet.ID, mock.Anything).
		Return(&models.PointsTransaction{Amount: 250}, nil)
	s.repo.On("UpdateBet", s.ctx, bet).Return(nil)
	s.repo.On("CreateAuditLog", s.ctx, mock.MatchedBy(func(entry *models.AuditLog) bool {
		return entry.Action == models.AuditActionBetSettled && entry.ResourceID != nil && *entry.ResourceID == bet.ID
	})).Return(nil)
	s.sqlMock.ExpectCommit()

	resp, err := s.service.SettleBet(s.ctx, &actorID, bet.ID, models.SelectionHome)

	s.Require().NoError(err)
	s.Equal(models.BetStatusWon, resp.Status)
	s.Equal(userID.String(), *resp.WinnerID)
	s.Equal(models.HouseParty, *resp.LoserID)
	s.Equal(int64(250), *resp.Bettor1Payout)
	s.Equal(1.0, testutil.ToFloat64(s.metrics.BetsSettled.WithLabelValues("bettor")))
}

func (s *BetServiceTestSuite) TestSettleBet_HouseWinIsWonWithHouseAsWinner() {
	userID := uuid.New()
	bet := activeHouseBet(userID, 100, models.SelectionHome, 150)

	s.sqlMock.ExpectBegin()
	s.repo.On("LockBet", s.ctx, bet.ID).Return(bet, nil)
	s.repo.On("UpdateBet", s.ctx, bet).Return(nil)
	s.sqlMock.ExpectCommit()

	resp, err := s.service.SettleBet(s.ctx, nil, bet.ID, models.SelectionAway)

	s.Require().NoError(err)
	s.Equal(models.BetStatusWon, resp.Status)
	s.Equal(models.HouseParty, *resp.WinnerID)
	s.Equal(userID.String(), *resp.LoserID)
	s.Equal(int64(0), *resp.Bettor1Payout)
	s.Nil(resp.Bettor2Payout)
	s.Equal(1.0, testutil.ToFloat64(s.metrics.BetsSettled.WithLabelValues(models.HouseParty)))
	s.writer.AssertNotCalled(s.T(), "Credit", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	s.repo.AssertNotCalled(s.T(), "CreateAuditLog", mock.Anything, mock.Anything)
}

func (s *BetServiceTestSuite) TestSettleBet_P2PCreditsOnlyWinner() {
	bettor1, bettor2 := uuid.New(), uuid.New()
	bet := p2pBet(bettor1, &bettor2, 50, models.BetStatusActive)

	s.sqlMock.ExpectBegin()
	s.repo.On("LockBet", s.ctx, bet.ID).Return(bet, nil)
	s.writer.On("Credit", s.ctx, bettor2, int64(110), models.TransactionTypeBetWon, &bet.ID, mock.Anything).
		Return(&models.PointsTransaction{Amount: 110}, nil)
	s.repo.On("UpdateBet", s.ctx, bet).Return(nil)
	s.sqlMock.ExpectCommit()

	resp, err := s.service.SettleBet(s.ctx, nil, bet.ID, models.SelectionAway)

	s.Require().NoError(err)
	s.Equal(models.BetStatusWon, resp.Status)
	s.Equal(bettor2.String(), *resp.WinnerID)
	s.Equal(bettor1.String(), *resp.LoserID)
	s.Equal(int64(0), *resp.Bettor1Payout)
	s.Equal(int64(110), *resp.Bettor2Payout)
	s.writer.AssertNumberOfCalls(s.T(), "Credit", 1)
}

func (s *BetServiceTestSuite) TestSettleBet_NotActive() {
	bettor1 := uuid.New()
	bet := p2pBet(bettor1, nil, 50, models.BetStatusOpen)

	s.sqlMock.ExpectBegin()
	s.repo.On("LockBet", s.ctx, bet.ID).Return(bet, nil)
	s.sqlMock.ExpectRollback()

	_, err := s.service.SettleBet(s.ctx, nil, bet.ID, models.SelectionHome)

	s.ErrorIs(err, models.ErrBetNotSettleable)
}

func (s *BetServiceTestSuite) TestSettleBet_P2PWithoutSecondBettorIsInconsistent() {
	bet := p2pBet(uuid.New(), nil, 50, models.BetStatusActive)

	s.sqlMock.ExpectBegin()
	s.repo.On("LockBet", s.ctx, bet.ID).Return(bet, nil)
	s.sqlMock.ExpectRollback()

	_, err := s.service.SettleBet(s.ctx, nil, bet.ID, models.SelectionHome)

	s.ErrorIs(err, models.ErrSettlementInconsistent)
}

func (s *BetServiceTestSuite) TestSettleBet_InvalidOutcome() {
	_, err := s.service.SettleBet(s.ctx, nil, uuid.New(), "draw")
	s.ErrorIs(err, models.ErrInvalidOutcome)
}

func (s *BetServiceTestSuite) TestActivateGameBets() {
	gameID := uuid.New()
	creator, joiner := uuid.New(), uuid.New()
	matched := p2pBet(creator, &joiner, 40, models.BetStatusMatched)
	open := p2pBet(creator, nil, 60, models.BetStatusOpen)

	s.repo.On("GetBetIDsByGame", s.ctx, gameID, []models.BetStatus{models.BetStatusOpen, models.BetStatusMatched}).
		Return([]uuid.UUID{matched.ID, open.ID}, nil)

	s.sqlMock.ExpectBegin()
	s.repo.On("LockBet", s.ctx, matched.ID).Return(matched, nil)
	s.repo.On("UpdateBet", s.ctx, matched).Return(nil)
	s.sqlMock.ExpectCommit()

	s.sqlMock.ExpectBegin()
	s.repo.On("LockBet", s.ctx, open.ID).Return(open, nil)
	s.writer.On("Credit", s.ctx, creator, int64(60), models.TransactionTypeBetRefund, &open.ID, mock.Anything).
		Return(&models.PointsTransaction{}, nil)
	s.repo.On("UpdateBet", s.ctx, open).Return(nil)
	s.sqlMock.ExpectCommit()

	result, err := s.service.ActivateGameBets(s.ctx, gameID)

	s.Require().NoError(err)
	s.Equal(1, result.Activated)
	s.Equal(1, result.Cancelled)
	s.Equal(models.BetStatusActive, matched.Status)
	s.Equal(models.BetStatusCancelled, open.Status)
}

func (s *BetServiceTestSuite) TestSettleGame_FailureDoesNotStopBatch() {
	gameID, userID := uuid.New(), uuid.New()
	broken := uuid.New()
	good := activeHouseBet(userID, 100, models.SelectionAway, -200)
	beaten := activeHouseBet(uuid.New(), 40, models.SelectionHome, 120)

	s.repo.On("GetBetIDsByGame", s.ctx, gameID, []models.BetStatus{models.BetStatusActive}).
		Return([]uuid.UUID{broken, good.ID, beaten.ID}, nil)

	s.sqlMock.ExpectBegin()
	s.repo.On("LockBet", s.ctx, broken).Return(nil, errors.New("connection reset"))
	s.sqlMock.ExpectRollback()

	s.sqlMock.ExpectBegin()
	s.repo.On("LockBet", s.ctx, good.ID).Return(good, nil)
	s.writer.On("Credit", s.ctx, userID, int64(150), models.TransactionTypeBetWon, &good.ID, mock.Anything).
		Return(&models.PointsTransaction{}, nil)
	s.repo.On("UpdateBet", s.ctx, good).Return(nil)
	s.sqlMock.ExpectCommit()

	s.sqlMock.ExpectBegin()
	s.repo.On("LockBet", s.ctx, beaten.ID).Return(beaten, nil)
	s.repo.On("UpdateBet", s.ctx, beaten).Return(nil)
	s.sqlMock.ExpectCommit()

	result, err := s.service.SettleGame(s.ctx, nil, gameID, models.SelectionAway)

	s.Error(err)
	s.Contains(err.Error(), broken.String())
	s.Equal(1, result.Won)
	s.Equal(1, result.HouseWon)
	s.Equal(1, result.Failed)
	s.Equal(models.BetStatusWon, good.Status)
	s.Equal(models.BetStatusWon, beaten.Status)
	s.Equal(models.HouseParty, *beaten.WinnerID)
}

func (s *BetServiceTestSuite) TestVoidGameBets_PushRefundsBothBettors() {
	gameID := uuid.New()
	bettor1, bettor2 := uuid.New(), uuid.New()
	bet := p2pBet(bettor1, &bettor2, 80, models.BetStatusActive)

	s.repo.On("GetBetIDsByGame", s.ctx, gameID, models.PendingBetStatuses).Return([]uuid.UUID{bet.ID}, nil)
	s.sqlMock.ExpectBegin()
	s.repo.On("LockBet", s.ctx, bet.ID).Return(bet, nil)
	s.writer.On("Credit", s.ctx, bettor1, int64(80), models.TransactionTypeBetRefund, &bet.ID, mock.Anything).
		Return(&models.PointsTransaction{}, nil)
	s.writer.On("Credit", s.ctx, bettor2, int64(80), models.TransactionTypeBetRefund, &bet.ID, mock.Anything).
		Return(&models.PointsTransaction{}, nil)
	s.repo.On("UpdateBet", s.ctx, bet).Return(nil)
	s.sqlMock.ExpectCommit()

	result, err := s.service.VoidGameBets(s.ctx, gameID)

	s.Require().NoError(err)
	s.Equal(1, result.Pushed)
	s.Equal(models.BetStatusPush, bet.Status)
	s.Equal(int64(80), *bet.Bettor1Payout)
	s.Equal(int64(80), *bet.Bettor2Payout)
}

func (s *BetServiceTestSuite) TestExpireStaleBets() {
	now := time.Now()
	creator := uuid.New()
	stale := p2pBet(creator, nil, 30, models.BetStatusOpen)
	stale.CreatedAt = now.Add(-48 * time.Hour)

	s.repo.On("GetStaleBetIDs", s.ctx, []models.BetStatus{models.BetStatusOpen}, now.Add(-24*time.Hour), 100).
		Return([]uuid.UUID{stale.ID}, nil)
	s.repo.On("GetStaleBetIDs", s.ctx, []models.BetStatus{models.BetStatusMatched, models.BetStatusActive}, now.Add(-72*time.Hour), 100).
		Return([]uuid.UUID{}, nil)

	s.sqlMock.ExpectBegin()
	s.repo.On("LockBet", s.ctx, stale.ID).Return(stale, nil)
	s.writer.On("Credit", s.ctx, creator, int64(30), models.TransactionTypeBetRefund, &stale.ID, mock.Anything).
		Return(&models.PointsTransaction{}, nil)
	s.repo.On("UpdateBet", s.ctx, stale).Return(nil)
	s.sqlMock.ExpectCommit()

	result, err := s.service.ExpireStaleBets(s.ctx, now)

	s.Require().NoError(err)
	s.Equal(1, result.Cancelled)
	s.Equal(1.0, testutil.ToFloat64(s.metrics.BetsExpired.WithLabelValues("cancelled")))
}

func (s *BetServiceTestSuite) TestExpireStaleBets_SkipsBetsThatMovedOn() {
	now := time.Now()
	bettor2 := uuid.New()
	// listed as open, but joined before the lock was taken
	moved := p2pBet(uuid.New(), &bettor2, 30, models.BetStatusMatched)
	moved.CreatedAt = now.Add(-30 * time.Hour)

	s.repo.On("GetStaleBetIDs", s.ctx, []models.BetStatus{models.BetStatusOpen}, now.Add(-24*time.Hour), 100).
		Return([]uuid.UUID{moved.ID}, nil)
	s.repo.On("GetStaleBetIDs", s.ctx, []models.BetStatus{models.BetStatusMatched, models.BetStatusActive}, now.Add(-72*time.Hour), 100).
		Return([]uuid.UUID{}, nil)

	s.sqlMock.ExpectBegin()
	s.repo.On("LockBet", s.ctx, moved.ID).Return(moved, nil)
	s.sqlMock.ExpectRollback()

	result, err := s.service.ExpireStaleBets(s.ctx, now)

	s.Require().NoError(err)
	s.Equal(0, result.Total())
	s.Equal(0, result.Failed)
	s.Equal(models.BetStatusMatched, moved.Status)
}

func (s *BetServiceTestSuite) TestGetUserBets_ClampsLimit() {
	userID := uuid.New()
	s.repo.On("GetUserBets", s.ctx, userID, MaxListLimit, (*uuid.UUID)(nil)).Return([]models.Bet{}, nil)

	bets, err := s.service.GetUserBets(s.ctx, userID, 1000, nil)

	s.Require().NoError(err)
	s.Empty(bets)
}

func (s *BetServiceTestSuite) TestGetBet_NotFound() {
	id := uuid.New()
	s.repo.On("GetBetByID", s.ctx, id).Return(nil, gorm.ErrRecordNotFound)

	_, err := s.service.GetBet(s.ctx, id)

	s.ErrorIs(err, models.ErrRecordNotFound)
}
