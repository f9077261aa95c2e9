package games

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/joefazee/betpoints/app/bets"
	"github.com/joefazee/betpoints/app/ledger"
	"github.com/joefazee/betpoints/internal/logger"
	"github.com/joefazee/betpoints/internal/metrics"
	"github.com/joefazee/betpoints/internal/sanitizer"
	"github.com/joefazee/betpoints/models"
	"github.com/joefazee/betpoints/tests/suites"
)

type GameRepositoryTestSuite struct {
	suites.RepositoryTestSuite
	repo    Repository
	bets    bets.Manager
	service Service
}

func (suite *GameRepositoryTestSuite) SetupSuite() {
	if testing.Short() {
		suite.T().Skip("Skipping database integration test")
	}

	suite.AutoMigrate = true
	suite.RepositoryTestSuite.SetupSuite()

	log := logger.NewNullLogger()
	writer := ledger.NewWriter(ledger.NewRepository(suite.DB))
	suite.bets = bets.NewService(suite.DB, bets.NewRepository(suite.DB), writer, bets.GetDefaultConfig(), log, metrics.NewUnregistered())
	suite.repo = NewRepository(suite.DB)
	suite.service = NewService(suite.DB, suite.repo, suite.bets, sanitizer.NewHTMLStripper(), log)
}

func TestGameRepository(t *testing.T) {
	suite.Run(t, new(GameRepositoryTestSuite))
}

func (suite *GameRepositoryTestSuite) TestList_NewestStartFirst() {
	ctx := context.Background()
	early := suite.CreateGame(150, -170)
	late := suite.CreateGame(-110, -110)
	suite.Require().NoError(suite.DB.Model(late).Update("starts_at", time.Now().Add(48*time.Hour)).Error)

	games, err := suite.repo.List(ctx, nil, 10, nil)
	suite.Require().NoError(err)
	suite.Require().Len(games, 2)
	suite.Equal(late.ID, games[0].ID)
	suite.Equal(early.ID, games[1].ID)

	next, err := suite.repo.List(ctx, nil, 10, &games[0].ID)
	suite.Require().NoError(err)
	suite.Require().Len(next, 1)
	suite.Equal(early.ID, next[0].ID)
}

func (suite *GameRepositoryTestSuite) TestFullGameLifecycle() {
	ctx := context.Background()
	admin := suite.CreateUser(0)
	alice := suite.CreateUser(1000)
	bob := suite.CreateUser(1000)
	carol := suite.CreateUser(1000)

	game, err := suite.service.CreateGame(ctx, admin.ID, &CreateGameRequest{
		HomeTeam: "Lions", AwayTeam: "Tigers", HomeOdds: 150, AwayOdds: -170, StartsAt: time.Now().Add(time.Hour),
	})
	suite.Require().NoError(err)

	house, err := suite.bets.PlaceBet(ctx, alice.ID, &bets.PlaceBetRequest{
		GameID: game.ID, Selection: models.SelectionHome, Amount: 100, BetMode: models.BetModeHouse,
	})
	suite.Require().NoError(err)
	matched, err := suite.bets.PlaceBet(ctx, bob.ID, &bets.PlaceBetRequest{
		GameID: game.ID, Selection: models.SelectionAway, Amount: 170, BetMode: models.BetModeP2P,
	})
	suite.Require().NoError(err)
	_, err = suite.bets.JoinP2PBet(ctx, carol.ID, matched.ID)
	suite.Require().NoError(err)
	_, err = suite.bets.PlaceBet(ctx, carol.ID, &bets.PlaceBetRequest{
		GameID: game.ID, Selection: models.SelectionHome, Amount: 50, BetMode: models.BetModeP2P,
	})
	suite.Require().NoError(err)

	started, err := suite.service.StartGame(ctx, admin.ID, game.ID)
	suite.Require().NoError(err)
	suite.Equal(1, started.Bets.Activated)
	suite.Equal(1, started.Bets.Cancelled)

	_, err = suite.bets.PlaceBet(ctx, alice.ID, &bets.PlaceBetRequest{
		GameID: game.ID, Selection: models.SelectionHome, Amount: 10, BetMode: models.BetModeHouse,
	})
	suite.ErrorIs(err, models.ErrGameNotOpen)

	final, err := suite.service.SetResult(ctx, admin.ID, game.ID, models.SelectionHome)
	suite.Require().NoError(err)
	suite.Equal(2, final.Bets.Won)
	suite.Equal(0, final.Bets.Failed)

	settled, err := suite.bets.GetBet(ctx, house.ID)
	suite.Require().NoError(err)
	suite.Equal(models.BetStatusWon, settled.Status)

	// alice: 1000 - 100 + 250; bob lost 170; carol won bob's stake at +150 and got the cancelled 50 back
	suite.Equal(int64(1150), suite.Balance(alice.ID))
	suite.Equal(int64(830), suite.Balance(bob.ID))
	suite.Equal(int64(1255), suite.Balance(carol.ID))
	suite.AssertLedgerConsistent(alice.ID, bob.ID, carol.ID)

	var audits int64
	suite.Require().NoError(suite.DB.Model(&models.AuditLog{}).Where("resource_id = ?", game.ID).Count(&audits).Error)
	suite.Equal(int64(3), audits)
}

func (suite *GameRepositoryTestSuite) TestCancelGame_RefundsAll() {
	ctx := context.Background()
	admin := suite.CreateUser(0)
	alice := suite.CreateUser(1000)
	g := suite.CreateGame(150, -170)

	_, err := suite.bets.PlaceBet(ctx, alice.ID, &bets.PlaceBetRequest{
		GameID: g.ID, Selection: models.SelectionHome, Amount: 300, BetMode: models.BetModeHouse,
	})
	suite.Require().NoError(err)

	resp, err := suite.service.CancelGame(ctx, admin.ID, g.ID)
	suite.Require().NoError(err)
	suite.Equal(1, resp.Bets.Pushed)
	suite.Equal(int64(1000), suite.Balance(alice.ID))
	suite.AssertLedgerConsistent(alice.ID)
}
