package grpc

import (
	context "context"
	"errors"
	"fmt"
	"strings"
	"time"

	auth "github.com/glkeru/carbon/internal/api/auth"
	interf "github.com/glkeru/carbon/internal/interfaces"
	model "github.com/glkeru/carbon/internal/models"
	services "github.com/glkeru/carbon/internal/services"
	"go.uber.org/zap"
	grpc "google.golang.org/grpc"
	codes "google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	status "google.golang.org/grpc/status"
	structpb "google.golang.org/protobuf/types/known/structpb"
	wrapperspb "google.golang.org/protobuf/types/known/wrapperspb"
)

type CarbonServer struct {
	service interf.CarbonCredits
	logger  *zap.Logger
	dev     bool
}

func NewCarbonServer(service interf.CarbonCredits, logger *zap.Logger, dev bool) *CarbonServer {
	return &CarbonServer{service, logger, dev}
}

// Код gRPC для ошибки сервиса
func StatusError(err error, dev bool) error {
	var code codes.Code
	switch {
	case errors.Is(err, model.ErrUnauthorized):
		code = codes.Unauthenticated
	case errors.Is(err, model.ErrForbidden):
		code = codes.PermissionDenied
	case errors.Is(err, model.ErrNotFound):
		code = codes.NotFound
	case errors.Is(err, model.ErrValidation):
		code = codes.InvalidArgument
	case errors.Is(err, model.ErrInsufficientBalance):
		code = codes.FailedPrecondition
	case errors.Is(err, model.ErrDuplicate):
		code = codes.AlreadyExists
	default:
		if !dev {
			return status.Error(codes.Internal, "internal error")
		}
		code = codes.Internal
	}
	return status.Error(code, err.Error())
}

func (s *CarbonServer) fail(method string, err error) error {
	st := StatusError(err, s.dev)
	if status.Code(st) == codes.Internal {
		s.logger.Error("gRPC",
			zap.String("service", method),
			zap.Error(err),
		)
	}
	return st
}

// Баланс
func (s *CarbonServer) GetBalance(ctx context.Context, in *wrapperspb.StringValue) (*structpb.Struct, error) {
	balance, err := s.service.GetBalance(ctx, auth.IdentityFromContext(ctx), in.GetValue())
	if err != nil {
		return nil, s.fail("GetBalance", err)
	}
	resp, err := structpb.NewStruct(map[string]any{
		"userId":      balance.UserID,
		"balance":     balance.Balance.String(),
		"totalEarned": balance.TotalEarned.String(),
		"totalSpent":  balance.TotalSpent.String(),
	})
	if err != nil {
		return nil, s.fail("GetBalance", err)
	}
	return resp, nil
}

// История транзакций: {userId?, type?, limit?}
func (s *CarbonServer) GetTransactions(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	caller := auth.IdentityFromContext(ctx)
	filter, err := txFilter(in)
	if err != nil {
		return nil, s.fail("GetTransactions", err)
	}

	// админ видит всех, пользователь - только себя
	var tnxs []model.Transaction
	if caller.IsAdmin() {
		tnxs, err = s.service.ListTransactions(ctx, caller, filter)
	} else {
		tnxs, err = s.service.ListOwnTransactions(ctx, caller, filter)
	}
	if err != nil {
		return nil, s.fail("GetTransactions", err)
	}

	// сформировать ответ
	list := make([]any, len(tnxs))
	for i, v := range tnxs {
		tnx := map[string]any{
			"id":          v.ID,
			"userId":      v.UserID,
			"type":        string(v.Type),
			"amount":      v.Amount.String(),
			"reason":      v.Reason,
			"description": v.Description,
			"createdAt":   v.CreatedAt.Format(time.RFC3339Nano),
		}
		if len(v.Metadata) > 0 {
			tnx["metadata"] = map[string]any(v.Metadata)
		}
		if v.UserName != "" {
			tnx["userName"] = v.UserName
		}
		if v.UserEmail != "" {
			tnx["userEmail"] = v.UserEmail
		}
		list[i] = tnx
	}
	resp, err := structpb.NewStruct(map[string]any{"transactions": list})
	if err != nil {
		return nil, s.fail("GetTransactions", err)
	}
	return resp, nil
}

func txFilter(in *structpb.Struct) (filter model.TxFilter, err error) {
	fields := in.GetFields()
	filter.UserID = fields["userId"].GetStringValue()
	filter.Type, err = model.ParseTxType(fields["type"].GetStringValue())
	if err != nil {
		return filter, err
	}

	filter.Limit = model.DefaultTxLimit
	limit, ok := fields["limit"]
	if !ok {
		return filter, nil
	}
	switch v := limit.GetKind().(type) {
	case *structpb.Value_NumberValue:
		if v.NumberValue != float64(int(v.NumberValue)) {
			return filter, fmt.Errorf("limit %v is not an integer: %w", v.NumberValue, model.ErrValidation)
		}
		filter.Limit = int(v.NumberValue)
	case *structpb.Value_StringValue:
		filter.Limit, err = services.ParseLimit(v.StringValue)
	case *structpb.Value_NullValue:
	default:
		err = fmt.Errorf("limit must be a number: %w", model.ErrValidation)
	}
	return filter, err
}

// UnaryAuthInterceptor - authorization: Bearer <token> в metadata, health без проверки
func UnaryAuthInterceptor(authn *auth.Authenticator) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		if strings.HasPrefix(info.FullMethod, "/grpc.health.v1.Health/") {
			return handler(ctx, req)
		}
		var header string
		if md, ok := metadata.FromIncomingContext(ctx); ok {
			if values := md.Get("authorization"); len(values) > 0 {
				header = values[0]
			}
		}
		identity, err := authn.BearerIdentity(header)
		if err != nil {
			return nil, status.Error(codes.Unauthenticated, err.Error())
		}
		return handler(auth.WithIdentity(ctx, identity), req)
	}
}

// время ответа по методам
func UnaryLogInterceptor(logger *zap.Logger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		start := time.Now()
		resp, err := handler(ctx, req)
		logger.Debug("gRPC call",
			zap.String("method", info.FullMethod),
			zap.String("code", status.Code(err).String()),
			zap.Duration("duration", time.Since(start)),
		)
		return resp, err
	}
}
