// Описание сервиса carbon.CarbonCredits. Сообщения - well-known types (StringValue, Struct),
// поэтому отдельный .proto не нужен.

package grpc

import (
	context "context"

	grpc "google.golang.org/grpc"
	structpb "google.golang.org/protobuf/types/known/structpb"
	wrapperspb "google.golang.org/protobuf/types/known/wrapperspb"
)

const (
	CarbonCredits_GetBalance_FullMethodName      = "/carbon.CarbonCredits/GetBalance"
	CarbonCredits_GetTransactions_FullMethodName = "/carbon.CarbonCredits/GetTransactions"
)

// CarbonCreditsClient - клиент для других сервисов
type CarbonCreditsClient interface {
	GetBalance(ctx context.Context, in *wrapperspb.StringValue, opts ...grpc.CallOption) (*structpb.Struct, error)
	GetTransactions(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
}

type carbonCreditsClient struct {
	cc grpc.ClientConnInterface
}

func NewCarbonCreditsClient(cc grpc.ClientConnInterface) CarbonCreditsClient {
	return &carbonCreditsClient{cc}
}

func (c *carbonCreditsClient) GetBalance(ctx context.Context, in *wrapperspb.StringValue, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	err := c.cc.Invoke(ctx, CarbonCredits_GetBalance_FullMethodName, in, out, opts...)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (c *carbonCreditsClient) GetTransactions(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	err := c.cc.Invoke(ctx, CarbonCredits_GetTransactions_FullMethodName, in, out, opts...)
	if err != nil {
		return nil, err
	}
	return out, nil
}

// CarbonCreditsServer - серверная часть
type CarbonCreditsServer interface {
	GetBalance(context.Context, *wrapperspb.StringValue) (*structpb.Struct, error)
	GetTransactions(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

func RegisterCarbonCreditsServer(s grpc.ServiceRegistrar, srv CarbonCreditsServer) {
	s.RegisterService(&CarbonCredits_ServiceDesc, srv)
}

func _CarbonCredits_GetBalance_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(wrapperspb.StringValue)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(CarbonCreditsServer).GetBalance(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: CarbonCredits_GetBalance_FullMethodName,
	}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(CarbonCreditsServer).GetBalance(ctx, req.(*wrapperspb.StringValue))
	}
	return interceptor(ctx, in, info, handler)
}

func _CarbonCredits_GetTransactions_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(CarbonCreditsServer).GetTransactions(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: CarbonCredits_GetTransactions_FullMethodName,
	}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(CarbonCreditsServer).GetTransactions(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}

var CarbonCredits_ServiceDesc = grpc.ServiceDesc{
	ServiceName: "carbon.CarbonCredits",
	HandlerType: (*CarbonCreditsServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "GetBalance",
			Handler:    _CarbonCredits_GetBalance_Handler,
		},
		{
			MethodName: "GetTransactions",
			Handler:    _CarbonCredits_GetTransactions_Handler,
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "carbon.proto",
}
