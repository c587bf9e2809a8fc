package postgres_test

import (
	"context"

	"github.com/google/uuid"
	"github.com/xy-planning-network/lumber"
	"github.com/xy-planning-network/lumber/appender"
	"github.com/xy-planning-network/lumber/logger"
	"github.com/xy-planning-network/lumber/postgres"
	"gorm.io/gorm"
)

func (suite *DBTestSuite) TestMigrateUp_Idempotent() {
	// Arrange
	ran := 0
	migrations := []postgres.Migration{
		{Key: "test_count_runs", Executor: func(_ *gorm.DB) error { ran++; return nil }},
	}

	// Act
	err := postgres.MigrateUp(suite.db.DB(), "public", migrations)
	suite.Require().Nil(err)
	err = postgres.MigrateUp(suite.db.DB(), "public", migrations)

	// Assert
	suite.Require().Nil(err)
	suite.Require().Equal(1, ran)
}

func (suite *DBTestSuite) TestCreateInBatches() {
	// Arrange
	records := []appender.Record{
		{ID: uuid.New(), Level: 2, LevelName: "INFO", Text: "one"},
		{ID: uuid.New(), Level: 4, LevelName: "ERROR", Text: "two"},
		{ID: uuid.New(), Level: 4, LevelName: "ERROR", Text: "three"},
	}

	// Act
	err := suite.db.CreateInBatches(&records, 2)

	// Assert
	suite.Require().Nil(err)

	count, err := suite.db.Model(new(appender.Record)).Where("level = ?", 4).Count()
	suite.Require().Nil(err)
	suite.Require().EqualValues(2, count)
}

func (suite *DBTestSuite) TestCreateInBatches_Exists() {
	// Arrange
	id := uuid.New()
	first := []appender.Record{{ID: id, Level: 2, LevelName: "INFO", Text: "one"}}
	suite.Require().Nil(suite.db.CreateInBatches(&first, 1))
	again := []appender.Record{{ID: id, Level: 2, LevelName: "INFO", Text: "one"}}

	// Act
	err := suite.db.CreateInBatches(&again, 1)

	// Assert
	suite.Require().ErrorIs(err, lumber.ErrExists)
}

func (suite *DBTestSuite) TestFind_NotFound() {
	// Arrange
	var records []appender.Record

	// Act
	err := suite.db.Where("text = ?", "missing").Find(&records)

	// Assert
	suite.Require().ErrorIs(err, lumber.ErrNotFound)
}

func (suite *DBTestSuite) TestLimit_Negative() {
	// Arrange
	var records []appender.Record

	// Act
	err := suite.db.Limit(-1).Find(&records)

	// Assert
	suite.Require().ErrorIs(err, lumber.ErrNotValid)
}

func (suite *DBTestSuite) TestStore_Flush() {
	// Arrange
	ctx := context.Background()
	store := appender.NewStore(suite.hub, suite.db, 1)
	defer store.Unregister()

	l := suite.hub.Logger("store")
	l.Info("first %", 1)
	l.Error("second %", 2)

	// Act
	err := store.Flush(ctx)

	// Assert
	suite.Require().Nil(err)
	suite.Require().Empty(store.Pending())

	var records []appender.Record
	err = suite.db.WithContext(ctx).Order("level ASC").Find(&records)
	suite.Require().Nil(err)
	suite.Require().Len(records, 2)
	suite.Require().Equal("[store] first 1", records[0].Text)
	suite.Require().Equal("INFO", records[0].LevelName)
	suite.Require().Equal(logger.LevelError.Int(), records[1].Level)
}

func (suite *DBTestSuite) TestStore_Records() {
	// Arrange
	ctx := context.Background()
	store := appender.NewStore(suite.hub, suite.db, 0)
	defer store.Unregister()

	l := suite.hub.Logger("store")
	l.Info("first")
	l.Error("second")
	l.Fatal("third")
	suite.Require().Nil(store.Flush(ctx))

	// Act
	records, err := store.Records(ctx, appender.RecordQuery{Floor: logger.LevelError, Limit: 1})
	suite.Require().Nil(err)
	count, countErr := store.Count(ctx, logger.LevelError)

	// Assert
	suite.Require().Nil(countErr)
	suite.Require().EqualValues(2, count)
	suite.Require().Len(records, 1)
}

func (suite *DBTestSuite) TestStore_Records_None() {
	// Arrange
	store := appender.NewStore(nil, suite.db, 0)

	// Act
	records, err := store.Records(context.Background(), appender.RecordQuery{})

	// Assert
	suite.Require().Nil(err)
	suite.Require().Empty(records)
}
