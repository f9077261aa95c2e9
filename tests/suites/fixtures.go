package suites

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/joefazee/betpoints/models"
)

// CreateUser inserts a user whose balance is backed by a single initial_balance entry,
// so balance == sum(ledger) holds from the start.
func (suite *RepositoryTestSuite) CreateUser(balance int64) *models.User {
	suite.T().Helper()

	id := uuid.New()
	user := &models.User{
		ID:           id,
		DisplayName:  "Player " + id.String()[:8],
		Email:        fmt.Sprintf("%s@example.com", id.String()[:12]),
		PasswordHash: "$2a$10$7EqJtq98hPqEX7fNZaFWoOhi5BWX4Z5e4Y6hQK7vQpmc5j5yjRm2G",
		Balance:      balance,
	}
	suite.Require().NoError(suite.DB.Create(user).Error)

	if balance > 0 {
		suite.Require().NoError(suite.DB.Create(&models.PointsTransaction{
			UserID:        id,
			Amount:        balance,
			Type:          models.TransactionTypeInitialBalance,
			BalanceBefore: 0,
			BalanceAfter:  balance,
		}).Error)
	}
	return user
}

// CreateGame inserts a scheduled game starting in an hour.
func (suite *RepositoryTestSuite) CreateGame(homeOdds, awayOdds int) *models.Game {
	suite.T().Helper()

	game := &models.Game{
		HomeTeam: "Lions",
		AwayTeam: "Tigers",
		HomeOdds: homeOdds,
		AwayOdds: awayOdds,
		StartsAt: time.Now().Add(time.Hour),
		Status:   models.GameStatusScheduled,
	}
	suite.Require().NoError(suite.DB.Create(game).Error)
	return game
}

// CreateBet inserts a bet row as-is. It does not touch balances.
func (suite *RepositoryTestSuite) CreateBet(bet *models.Bet) *models.Bet {
	suite.T().Helper()
	suite.Require().NoError(suite.DB.Create(bet).Error)
	return bet
}

// Balance reads users.balance.
func (suite *RepositoryTestSuite) Balance(userID uuid.UUID) int64 {
	suite.T().Helper()
	var balance int64
	suite.Require().NoError(suite.DB.Model(&models.User{}).Select("balance").Where("id = ?", userID).Scan(&balance).Error)
	return balance
}

// LedgerTotal sums the user's points transactions.
func (suite *RepositoryTestSuite) LedgerTotal(userID uuid.UUID) int64 {
	suite.T().Helper()
	var total int64
	suite.Require().NoError(suite.DB.Model(&models.PointsTransaction{}).
		Select("COALESCE(SUM(amount), 0)").Where("user_id = ?", userID).Scan(&total).Error)
	return total
}

// AssertLedgerConsistent checks balance == sum(ledger) for each user.
func (suite *RepositoryTestSuite) AssertLedgerConsistent(userIDs ...uuid.UUID) {
	suite.T().Helper()
	for _, id := range userIDs {
		suite.Assert().Equal(suite.LedgerTotal(id), suite.Balance(id), "ledger drift for %s", id)
	}
}
