package catalogrepo_test

import (
	"context"
	"testing"

	"orderflow/internal/adapters/out/postgres/catalogrepo"
	"orderflow/internal/adapters/out/postgres/pgtest"
	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type CatalogRepositoryIntegrationTestSuite struct {
	suite.Suite
	database   *pgtest.Database
	repository *catalogrepo.GormCatalogRepository
}

func (suite *CatalogRepositoryIntegrationTestSuite) SetupSuite() {
	database, err := pgtest.Start(context.Background())
	suite.Require().NoError(err)
	suite.database = database
}

func (suite *CatalogRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.database.Truncate())
	suite.repository = catalogrepo.NewGormCatalogRepository(suite.database.DB)
}

func (suite *CatalogRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.database != nil {
		suite.Require().NoError(suite.database.Terminate(context.Background()))
	}
}

func (suite *CatalogRepositoryIntegrationTestSuite) TestGet_ReturnsChefAndPrice() {
	itemID, chefID := kernel.NewUUID(), kernel.NewUUID()
	suite.Require().NoError(suite.database.DB.Create(&catalogrepo.MenuItemDTO{
		ItemID: itemID.Bytes(),
		ChefID: chefID.Bytes(),
		Price:  decimal.RequireFromString("12.50"),
	}).Error)

	item, err := suite.repository.Get(context.Background(), itemID)
	suite.Require().NoError(err)

	suite.Equal(itemID, item.ID())
	suite.Equal(chefID, item.ChefID())
	suite.Equal("12.50", item.Price().String())
}

func (suite *CatalogRepositoryIntegrationTestSuite) TestGet_UnknownItem_ReturnsNotFound() {
	_, err := suite.repository.Get(context.Background(), kernel.NewUUID())
	suite.ErrorIs(err, errs.ErrObjectNotFound)
}

func TestCatalogRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(CatalogRepositoryIntegrationTestSuite))
}
