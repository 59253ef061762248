package redis_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/deck-forge/internal/redis"
)

type ClientTestSuite struct {
	suite.Suite
	ctx context.Context
}

func (s *ClientTestSuite) SetupTest() {
	s.ctx = context.Background()
}

func (s *ClientTestSuite) TestNewClient() {
	s.Run("requires an endpoint", func() {
		_, err := redis.NewClient("", nil)
		s.Error(err)
	})

	s.Run("is lazy about connecting", func() {
		client, err := redis.NewClient("127.0.0.1:1", nil)
		s.Require().NoError(err)
		s.NotNil(client)
		s.NoError(client.Close())
	})
}

func (s *ClientTestSuite) TestConnect() {
	s.Run("pings a live server", func() {
		mr := miniredis.RunT(s.T())

		client, err := redis.Connect(s.ctx, mr.Addr(), nil)
		s.Require().NoError(err)
		s.NoError(client.Close())
	})

	s.Run("fails when nothing listens", func() {
		mr, err := miniredis.Run()
		s.Require().NoError(err)
		addr := mr.Addr()
		mr.Close()

		_, err = redis.Connect(s.ctx, addr, &redis.Options{DialTimeout: 200 * time.Millisecond})
		s.Error(err)
	})
}

func TestClientSuite(t *testing.T) {
	suite.Run(t, new(ClientTestSuite))
}
