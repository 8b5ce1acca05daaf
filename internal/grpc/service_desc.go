package grpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
)

const (
	FeedbackReportServiceName = "feedback.v1.FeedbackReportService"
	getReportFullMethod       = "/" + FeedbackReportServiceName + "/GetReport"
)

// FeedbackReportServer is the server API for the feedback report service.
type FeedbackReportServer interface {
	GetReport(ctx context.Context, req *emptypb.Empty) (*structpb.Struct, error)
}

func getReportHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(emptypb.Empty)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(FeedbackReportServer).GetReport(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: getReportFullMethod,
	}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(FeedbackReportServer).GetReport(ctx, req.(*emptypb.Empty))
	}
	return interceptor(ctx, in, info, handler)
}

// FeedbackReportServiceDesc describes the service using well-known protobuf
// types, so no generated code is needed on either side.
var FeedbackReportServiceDesc = grpc.ServiceDesc{
	ServiceName: FeedbackReportServiceName,
	HandlerType: (*FeedbackReportServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "GetReport",
			Handler:    getReportHandler,
		},
	},
	Streams: []grpc.StreamDesc{},
}

func RegisterFeedbackReportServer(s grpc.ServiceRegistrar, srv FeedbackReportServer) {
	s.RegisterService(&FeedbackReportServiceDesc, srv)
}

// GetReport calls the GetReport RPC over cc.
func GetReport(ctx context.Context, cc grpc.ClientConnInterface, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := cc.Invoke(ctx, getReportFullMethod, &emptypb.Empty{}, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
