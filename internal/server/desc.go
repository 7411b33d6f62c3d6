package server

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// ServiceName is the fully-qualified gRPC service name. Request and response
// messages are protobuf well-known types, so no generated code is involved.
const ServiceName = "textstruct.v1.AnalysisService"

const (
	analyzeMethod    = "/" + ServiceName + "/Analyze"
	exportXLSXMethod = "/" + ServiceName + "/ExportXLSX"
)

// AnalysisServer is the server API for AnalysisService.
type AnalysisServer interface {
	// Analyze takes {"text": "..."} and returns the analysis result.
	Analyze(context.Context, *structpb.Struct) (*structpb.Struct, error)
	// ExportXLSX takes {"text": "..."} and returns the result as a workbook.
	ExportXLSX(context.Context, *structpb.Struct) (*wrapperspb.BytesValue, error)
}

func RegisterAnalysisServer(s grpc.ServiceRegistrar, srv AnalysisServer) {
	s.RegisterService(&AnalysisServiceDesc, srv)
}

var AnalysisServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*AnalysisServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Analyze", Handler: analyzeHandler},
		{MethodName: "ExportXLSX", Handler: exportXLSXHandler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "textstruct/v1/analysis.proto",
}

func analyzeHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(AnalysisServer).Analyze(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: analyzeMethod}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(AnalysisServer).Analyze(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}

func exportXLSXHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(AnalysisServer).ExportXLSX(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: exportXLSXMethod}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(AnalysisServer).ExportXLSX(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}

// AnalysisClient is the client API for AnalysisService.
type AnalysisClient struct {
	cc grpc.ClientConnInterface
}

func NewAnalysisClient(cc grpc.ClientConnInterface) *AnalysisClient {
	return &AnalysisClient{cc: cc}
}

func (c *AnalysisClient) Analyze(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, analyzeMethod, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *AnalysisClient) ExportXLSX(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*wrapperspb.BytesValue, error) {
	out := new(wrapperspb.BytesValue)
	if err := c.cc.Invoke(ctx, exportXLSXMethod, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

// TextRequest builds the {"text": ...} request message.
func TextRequest(text string) *structpb.Struct {
	return &structpb.Struct{Fields: map[string]*structpb.Value{
		"text": structpb.NewStringValue(text),
	}}
}
