package recipientrepo_test

import (
	"context"
	"testing"

	"orderflow/internal/adapters/out/postgres/pgtest"
	"orderflow/internal/adapters/out/postgres/recipientrepo"
	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/notification"

	"github.com/stretchr/testify/suite"
)

type RecipientDirectoryIntegrationTestSuite struct {
	suite.Suite
	database  *pgtest.Database
	directory *recipientrepo.GormRecipientDirectory
}

func (suite *RecipientDirectoryIntegrationTestSuite) SetupSuite() {
	database, err := pgtest.Start(context.Background())
	suite.Require().NoError(err)
	suite.database = database
}

func (suite *RecipientDirectoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.database.Truncate())
	suite.directory = recipientrepo.NewGormRecipientDirectory(suite.database.DB)
}

func (suite *RecipientDirectoryIntegrationTestSuite) TearDownSuite() {
	if suite.database != nil {
		suite.Require().NoError(suite.database.Terminate(context.Background()))
	}
}

func token(s string) *string { return &s }

func (suite *RecipientDirectoryIntegrationTestSuite) TestPushToken_ReadsTableForRecipientType() {
	ctx := context.Background()
	id := kernel.NewUUID()

	// One id in all three tables, each with its own token.
	suite.Require().NoError(suite.database.DB.Create(&recipientrepo.CustomerDTO{ID: id.Bytes(), FCMToken: token("customer-token")}).Error)
	suite.Require().NoError(suite.database.DB.Create(&recipientrepo.ChefDTO{ID: id.Bytes(), FCMToken: token("chef-token")}).Error)
	suite.Require().NoError(suite.database.DB.Create(&recipientrepo.DelivererDTO{ID: id.Bytes(), FCMToken: token("courier-token")}).Error)

	tests := map[notification.RecipientType]string{
		notification.Customer: "customer-token",
		notification.Chef:     "chef-token",
		notification.Courier:  "courier-token",
	}
	for rt, want := range tests {
		got, err := suite.directory.PushToken(ctx, rt, id)
		suite.Require().NoError(err)
		suite.Equal(want, got, rt.String())
	}
}

func (suite *RecipientDirectoryIntegrationTestSuite) TestPushToken_NullToken_ReturnsEmpty() {
	id := kernel.NewUUID()
	suite.Require().NoError(suite.database.DB.Create(&recipientrepo.ChefDTO{ID: id.Bytes()}).Error)

	got, err := suite.directory.PushToken(context.Background(), notification.Chef, id)
	suite.Require().NoError(err)
	suite.Empty(got)
}

func (suite *RecipientDirectoryIntegrationTestSuite) TestPushToken_UnknownAccount_ReturnsEmpty() {
	got, err := suite.directory.PushToken(context.Background(), notification.Customer, kernel.NewUUID())
	suite.Require().NoError(err)
	suite.Empty(got)
}

func (suite *RecipientDirectoryIntegrationTestSuite) TestPushToken_UnknownRecipientType_Fails() {
	_, err := suite.directory.PushToken(context.Background(), notification.UnknownRecipient, kernel.NewUUID())
	suite.Error(err)
}

func TestRecipientDirectoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(RecipientDirectoryIntegrationTestSuite))
}
