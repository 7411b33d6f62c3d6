package server

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"github.com/joseph-ayodele/text-structurer/constants"
	"github.com/joseph-ayodele/text-structurer/internal/common"
	"github.com/joseph-ayodele/text-structurer/internal/document"
	"github.com/joseph-ayodele/text-structurer/internal/export"
	"github.com/joseph-ayodele/text-structurer/internal/pipeline"
)

type AnalysisService struct {
	pipeline *pipeline.Pipeline
	export   *export.Service
	logger   *slog.Logger
}

func NewAnalysisService(p *pipeline.Pipeline, exp *export.Service, logger *slog.Logger) *AnalysisService {
	if logger == nil {
		logger = slog.Default()
	}
	if exp == nil {
		exp = export.NewService(logger)
	}
	return &AnalysisService{pipeline: p, export: exp, logger: logger}
}

var _ AnalysisServer = (*AnalysisService)(nil)

func (s *AnalysisService) Analyze(ctx context.Context, req *structpb.Struct) (out *structpb.Struct, err error) {
	start := time.Now()
	res, err := s.run(ctx, "grpc.analyze", req)
	if err != nil {
		return nil, err
	}
	out, err = document.ToStructPB(res.Document())
	if err != nil {
		s.logger.Error("grpc.analyze.encode_failed", "req_id", res.RequestID, "error", err)
		return nil, common.InternalErrorf("encode result: %v", err)
	}
	s.logger.Info("grpc.analyze.ok", "req_id", res.RequestID, "elapsed_ms", time.Since(start).Milliseconds())
	return out, nil
}

func (s *AnalysisService) ExportXLSX(ctx context.Context, req *structpb.Struct) (*wrapperspb.BytesValue, error) {
	res, err := s.run(ctx, "grpc.export", req)
	if err != nil {
		return nil, err
	}
	b, err := s.export.ResultXLSX(res)
	if err != nil {
		s.logger.Error("grpc.export.failed", "req_id", res.RequestID, "error", err)
		return nil, status.Error(codes.Internal, "export failed")
	}
	return wrapperspb.Bytes(b), nil
}

// run executes the pipeline for the request's "text" field and maps errors
// onto gRPC statuses. A missing field counts as empty text.
func (s *AnalysisService) run(ctx context.Context, event string, req *structpb.Struct) (res *pipeline.Result, err error) {
	rid := uuid.NewString()
	ctx = common.WithRequestID(ctx, rid)

	defer func() {
		if r := recover(); r != nil {
			s.logger.Error(event+".panic", "req_id", rid, "panic", fmt.Sprint(r))
			res, err = nil, common.ToStatus(common.NewAppError(common.CodeInternal, constants.MsgUnexpected, common.ErrInternal))
		}
	}()

	text := req.GetFields()["text"].GetStringValue()
	res, err = s.pipeline.Run(ctx, text)
	if err != nil {
		s.logger.Warn(event+".failed", "req_id", rid, "error", err)
		return nil, common.ToStatus(err)
	}
	return res, nil
}
