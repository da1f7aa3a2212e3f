package audit

import (
	"context"
	"testing"
	"time"

	"github.com/DefiantLabs/crypto-tax/config"
	testUtils "github.com/DefiantLabs/crypto-tax/test/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.mongodb.org/mongo-driver/bson"
)

type TrailTestSuite struct {
	suite.Suite
	trail *MongoTrail
	clean func()
}

func (suite *TrailTestSuite) SetupSuite() {
	conf, err := testUtils.SetupTestMongo()
	if err != nil {
		suite.T().Skipf("docker unavailable: %v", err)
	}

	suite.trail = NewMongoTrail(conf.Database)
	suite.clean = conf.Clean
	suite.Require().NoError(suite.trail.EnsureIndexes(context.Background()))
}

func (suite *TrailTestSuite) TearDownSuite() {
	if suite.clean != nil {
		suite.clean()
	}
}

func (suite *TrailTestSuite) SetupTest() {
	_, err := suite.trail.pool.Collection(eventsCollection).DeleteMany(context.Background(), bson.M{})
	suite.Require().NoError(err)
}

func (suite *TrailTestSuite) TestLatestNewestFirst() {
	ctx := context.Background()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	for i, action := range []string{ReportGenerated, ReportPersisted, WalletFetched} {
		err := suite.trail.Record(ctx, Event{
			Action:    action,
			Subject:   "out.csv",
			Details:   map[string]string{"n": action},
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		})
		suite.Require().NoError(err)
	}

	events, err := suite.trail.Latest(ctx, 2)
	suite.Require().NoError(err)
	suite.Require().Len(events, 2)
	suite.Assert().Equal(WalletFetched, events[0].Action)
	suite.Assert().Equal(ReportPersisted, events[1].Action)
	suite.Assert().Equal(ReportPersisted, events[1].Details["n"])
}

func (suite *TrailTestSuite) TestRecordSetsCreatedAt() {
	ctx := context.Background()
	suite.Require().NoError(suite.trail.Record(ctx, Event{Action: WalletFetched, Subject: "eth:0xme"}))

	events, err := suite.trail.Latest(ctx, 10)
	suite.Require().NoError(err)
	suite.Require().Len(events, 1)
	suite.Assert().False(events[0].CreatedAt.IsZero())
}

func (suite *TrailTestSuite) TestEnsureIndexesIdempotent() {
	suite.Require().NoError(suite.trail.EnsureIndexes(context.Background()))
}

func TestTrailSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping docker test in short mode")
	}
	suite.Run(t, new(TrailTestSuite))
}

func TestOpenWithoutMongo(t *testing.T) {
	trail, closeFn, err := Open(context.Background(), config.Mongo{})
	require.NoError(t, err)
	defer closeFn()

	assert.IsType(t, NopTrail{}, trail)
	assert.NoError(t, trail.Record(context.Background(), Event{Action: ReportGenerated}))

	events, err := trail.Latest(context.Background(), 5)
	assert.NoError(t, err)
	assert.Empty(t, events)
}
