package grpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"

	domain "layered-user-service/internal/domain/user"
)

// Client calls user.v1.UserService over a client connection.
type Client struct {
	cc grpc.ClientConnInterface
}

// NewClient creates a Client using cc.
func NewClient(cc grpc.ClientConnInterface) *Client {
	return &Client{cc: cc}
}

// CreateUser invokes user.v1.UserService/CreateUser.
func (c *Client) CreateUser(ctx context.Context, name, email string, opts ...grpc.CallOption) (*domain.User, error) {
	in, err := structpb.NewStruct(map[string]any{"name": name, "email": email})
	if err != nil {
		return nil, err
	}

	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, CreateUserFullMethod, in, out, opts...); err != nil {
		return nil, err
	}
	return UserFromStruct(out), nil
}

// SampleUser invokes user.v1.UserService/SampleUser.
func (c *Client) SampleUser(ctx context.Context, opts ...grpc.CallOption) (*domain.User, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, SampleUserFullMethod, &emptypb.Empty{}, out, opts...); err != nil {
		return nil, err
	}
	return UserFromStruct(out), nil
}
