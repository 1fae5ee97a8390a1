package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap/zaptest"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	ginhandler "layered-user-service/internal/adapter/gin/handler"
	grpcadapter "layered-user-service/internal/adapter/grpc"
	"layered-user-service/internal/adapter/repository/memory"
	"layered-user-service/internal/config"
	domain "layered-user-service/internal/domain/user"
	usersvc "layered-user-service/internal/service/user"
	"layered-user-service/internal/usecase/user"
)

type ServerTestSuite struct {
	suite.Suite
	server *Server
	cancel context.CancelFunc
	done   chan error
}

func (s *ServerTestSuite) SetupTest() {
	cfg, err := config.LoadConfig(s.T().TempDir())
	s.Require().NoError(err)
	cfg.App.HTTPPort = "0"
	cfg.App.GRPCPort = "0"
	cfg.App.GatewayPort = "0"
	cfg.App.GRPCEnabled = true
	cfg.App.GatewayEnabled = true
	cfg.App.ShutdownTimeoutSeconds = 2

	log := zaptest.NewLogger(s.T())
	svc := usersvc.New(user.New(memory.NewUserRepository(log), log))
	s.server = New(cfg, log, ginhandler.NewUserHandler(svc, log), svc, nil)

	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	s.Require().NoError(s.server.Listen(ctx))

	s.done = make(chan error, 1)
	go func() { s.done <- s.server.Serve(ctx) }()
}

func (s *ServerTestSuite) TearDownTest() {
	s.cancel()
	select {
	case err := <-s.done:
		s.NoError(err)
	case <-time.After(5 * time.Second):
		s.Fail("server did not shut down")
	}
}

func (s *ServerTestSuite) url(addr, path string) string {
	_, port, err := net.SplitHostPort(addr)
	s.Require().NoError(err)
	return "http://" + net.JoinHostPort("localhost", port) + path
}

func (s *ServerTestSuite) decode(resp *http.Response) domain.User {
	defer resp.Body.Close()
	var u domain.User
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(&u))
	return u
}

func (s *ServerTestSuite) TestGinCreateUser() {
	body := bytes.NewBufferString(`{"name":"Alice","email":"alice@x.com"}`)
	resp, err := http.Post(s.url(s.server.GinAddr(), "/users"), "application/json", body)
	s.Require().NoError(err)

	s.Equal(http.StatusCreated, resp.StatusCode)
	u := s.decode(resp)
	s.NotZero(u.ID)
	s.Equal("Alice", u.Name)
	s.Equal("alice@x.com", u.Email)
}

func (s *ServerTestSuite) TestGinSampleUserTwice() {
	for range 2 {
		resp, err := http.Get(s.url(s.server.GinAddr(), "/users"))
		s.Require().NoError(err)

		s.Equal(http.StatusOK, resp.StatusCode)
		u := s.decode(resp)
		s.Equal(domain.SampleName, u.Name)
		s.Equal(domain.SampleEmail, u.Email)
	}
}

func (s *ServerTestSuite) TestGatewayCreateUser() {
	body := bytes.NewBufferString(`{"name":"Alice","email":"alice@x.com"}`)
	resp, err := http.Post(s.url(s.server.GatewayAddr(), "/users"), "application/json", body)
	s.Require().NoError(err)

	s.Equal(http.StatusCreated, resp.StatusCode)
	u := s.decode(resp)
	s.Equal("Alice", u.Name)
	s.Equal("alice@x.com", u.Email)
}

func (s *ServerTestSuite) TestGRPCSampleUser() {
	_, port, err := net.SplitHostPort(s.server.GRPCAddr())
	s.Require().NoError(err)

	conn, err := grpc.NewClient(net.JoinHostPort("localhost", port),
		grpc.WithTransportCredentials(insecure.NewCredentials()))
	s.Require().NoError(err)
	defer conn.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	u, err := grpcadapter.NewClient(conn).SampleUser(ctx)
	s.Require().NoError(err)
	s.Equal(domain.SampleName, u.Name)
	s.Equal(domain.SampleEmail, u.Email)
}

func TestServerTestSuite(t *testing.T) {
	suite.Run(t, new(ServerTestSuite))
}

func TestNew_GinOnlyByDefault(t *testing.T) {
	cfg, err := config.LoadConfig(t.TempDir())
	require.NoError(t, err)

	log := zaptest.NewLogger(t)
	svc := usersvc.New(user.New(memory.NewUserRepository(log), log))
	s := New(cfg, log, ginhandler.NewUserHandler(svc, log), svc, nil)

	assert.NotNil(t, s.Gin)
	assert.Nil(t, s.GRPC)
	assert.Nil(t, s.Gateway)
	assert.Empty(t, s.GinAddr())
}

func TestListen_PortInUse(t *testing.T) {
	lis, err := net.Listen("tcp", ":0")
	require.NoError(t, err)
	defer lis.Close()
	_, port, err := net.SplitHostPort(lis.Addr().String())
	require.NoError(t, err)

	cfg, err := config.LoadConfig(t.TempDir())
	require.NoError(t, err)
	cfg.App.HTTPPort = port

	log := zaptest.NewLogger(t)
	svc := usersvc.New(user.New(memory.NewUserRepository(log), log))
	s := New(cfg, log, ginhandler.NewUserHandler(svc, log), svc, nil)

	assert.Error(t, s.Listen(context.Background()))
}
