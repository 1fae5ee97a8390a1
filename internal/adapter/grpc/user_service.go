package grpc

import (
	"context"

	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"

	domain "layered-user-service/internal/domain/user"
	usersvc "layered-user-service/internal/service/user"
	apperrors "layered-user-service/pkg/errors"
	"layered-user-service/pkg/logger"
)

// ServiceName is the fully qualified gRPC service name.
const ServiceName = "user.v1.UserService"

// Full method names, usable with grpc.ClientConn.Invoke.
const (
	CreateUserFullMethod = "/" + ServiceName + "/CreateUser"
	SampleUserFullMethod = "/" + ServiceName + "/SampleUser"
)

// UserServiceServer is the server API for user.v1.UserService.
// Messages are google.protobuf.Struct objects shaped {id, name, email}.
type UserServiceServer interface {
	CreateUser(context.Context, *structpb.Struct) (*structpb.Struct, error)
	SampleUser(context.Context, *emptypb.Empty) (*structpb.Struct, error)
}

// ServiceDesc describes user.v1.UserService for grpc.Server.RegisterService.
var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*UserServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "CreateUser", Handler: createUserHandler},
		{MethodName: "SampleUser", Handler: sampleUserHandler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "user/v1/user.proto",
}

// RegisterUserServiceServer registers srv with s.
func RegisterUserServiceServer(s grpc.ServiceRegistrar, srv UserServiceServer) {
	s.RegisterService(&ServiceDesc, srv)
}

func createUserHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(UserServiceServer).CreateUser(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: CreateUserFullMethod}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(UserServiceServer).CreateUser(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}

func sampleUserHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(emptypb.Empty)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(UserServiceServer).SampleUser(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: SampleUserFullMethod}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(UserServiceServer).SampleUser(ctx, req.(*emptypb.Empty))
	}
	return interceptor(ctx, in, info, handler)
}

// UserService implements UserServiceServer on top of the user service facade.
type UserService struct {
	svc usersvc.Service
	log *zap.Logger
}

// NewUserServiceServer creates a new gRPC user service server
func NewUserServiceServer(svc usersvc.Service, log *zap.Logger) *UserService {
	return &UserService{svc: svc, log: log}
}

// CreateUser handles gRPC CreateUser request.
// Missing or null fields are read as empty strings; other non-string values are rejected.
func (s *UserService) CreateUser(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	name, err := stringField(req, "name")
	if err != nil {
		return nil, err
	}
	email, err := stringField(req, "email")
	if err != nil {
		return nil, err
	}

	u, err := s.svc.CreateUser(ctx, name, email)
	if err != nil {
		logger.WithContext(ctx, s.log).Error("gRPC CreateUser failed", zap.Error(err))
		return nil, err
	}
	return UserToStruct(u)
}

// SampleUser handles gRPC SampleUser request
func (s *UserService) SampleUser(ctx context.Context, _ *emptypb.Empty) (*structpb.Struct, error) {
	u, err := s.svc.CreateUser(ctx, domain.SampleName, domain.SampleEmail)
	if err != nil {
		logger.WithContext(ctx, s.log).Error("gRPC SampleUser failed", zap.Error(err))
		return nil, err
	}
	return UserToStruct(u)
}

func stringField(req *structpb.Struct, key string) (string, error) {
	v, ok := req.GetFields()[key]
	if !ok {
		return "", nil
	}
	switch k := v.GetKind().(type) {
	case *structpb.Value_StringValue:
		return k.StringValue, nil
	case *structpb.Value_NullValue, nil:
		return "", nil
	default:
		return "", apperrors.NewValidationError(key, "must be a string")
	}
}

// UserToStruct encodes u as a Struct message.
func UserToStruct(u *domain.User) (*structpb.Struct, error) {
	s, err := structpb.NewStruct(map[string]any{
		"id":    u.ID,
		"name":  u.Name,
		"email": u.Email,
	})
	if err != nil {
		return nil, apperrors.NewInternalError("failed to encode user", err)
	}
	return s, nil
}

// UserFromStruct decodes a Struct message produced by UserToStruct.
func UserFromStruct(s *structpb.Struct) *domain.User {
	fields := s.GetFields()
	return &domain.User{
		ID:    int64(fields["id"].GetNumberValue()),
		Name:  fields["name"].GetStringValue(),
		Email: fields["email"].GetStringValue(),
	}
}
