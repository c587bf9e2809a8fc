package postgres_test

import (
	"errors"
	"io/fs"
	"os"
	"testing"

	"github.com/joho/godotenv"
	"github.com/stretchr/testify/suite"
	"github.com/xy-planning-network/lumber"
	"github.com/xy-planning-network/lumber/appender"
	"github.com/xy-planning-network/lumber/logger"
	"github.com/xy-planning-network/lumber/postgres"
)

type DBTestSuite struct {
	suite.Suite

	db  *postgres.DB
	hub *logger.Hub
}

func TestRunSuite(t *testing.T) {
	suite.Run(t, new(DBTestSuite))
}

func (suite *DBTestSuite) SetupSuite() {
	err := godotenv.Load("../.env")
	var pe *fs.PathError
	if err != nil && !errors.As(err, &pe) {
		suite.Require().FailNow(err.Error())
	}

	url := os.Getenv("DATABASE_TEST_URL")
	if url == "" {
		suite.T().Skip("DATABASE_TEST_URL not set")
	}

	suite.hub = logger.NewHub(logger.WithTimeFunc(logger.NoTime))
	cfg := &postgres.CxnConfig{
		IsTestDB: true,
		URL:      url,
		Logger:   suite.hub.Logger("postgres"),
	}

	suite.db, err = postgres.Connect(cfg, appender.StoreMigrations(), lumber.Testing)
	suite.Require().Nil(err)
}

func (suite *DBTestSuite) TearDownTest() {
	suite.Require().Nil(postgres.WipeDB(suite.db.DB(), "public"))
}
