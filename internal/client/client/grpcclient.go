package client

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/technotes/internal/common"
	pb "github.com/dmitrijs2005/technotes/internal/proto"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
)

type GRPCClient struct {
	endpointURL string
	conn        *grpc.ClientConn
	cc          grpc.ClientConnInterface
}

func withRequestID(ctx context.Context, id string) context.Context {
	md, _ := metadata.FromOutgoingContext(ctx)
	md = md.Copy()
	if len(md.Get(common.RequestIDHeaderName)) == 0 {
		md.Set(common.RequestIDHeaderName, id)
	}

	return metadata.NewOutgoingContext(ctx, md)
}

func (s *GRPCClient) requestIDInterceptor(
	ctx context.Context,
	method string,
	req, reply interface{},
	cc *grpc.ClientConn,
	invoker grpc.UnaryInvoker,
	opts ...grpc.CallOption,
) error {
	ctx = withRequestID(ctx, common.NewRequestID())
	return invoker(ctx, method, req, reply, cc, opts...)
}

func NewTechNotesClient(endpointURL string) (*GRPCClient, error) {
	c := &GRPCClient{endpointURL: endpointURL}
	err := c.InitGRPCClient()
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (s *GRPCClient) InitGRPCClient() error {

	conn, err := grpc.NewClient(s.endpointURL, grpc.WithTransportCredentials(insecure.NewCredentials()), grpc.WithUnaryInterceptor(s.requestIDInterceptor))
	if err != nil {
		return err
	}
	s.conn = conn
	s.cc = conn
	return nil
}

func (s *GRPCClient) Close() error {
	if s.conn == nil {
		return nil
	}
	return s.conn.Close()
}

func (s *GRPCClient) call(ctx context.Context, method string, req map[string]any) (*structpb.Struct, error) {
	in, err := structpb.NewStruct(req)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	out := &structpb.Struct{}
	if err := s.cc.Invoke(ctx, pb.FullMethod(method), in, out); err != nil {
		return nil, s.mapError(err)
	}
	return out, nil
}

func (s *GRPCClient) message(ctx context.Context, method string, req map[string]any) (string, error) {
	out, err := s.call(ctx, method, req)
	if err != nil {
		return "", err
	}
	return pb.String(out, pb.FieldMessage), nil
}

func (s *GRPCClient) Ping(ctx context.Context) error {
	resp, err := s.call(ctx, pb.Ping, nil)
	if err != nil {
		return err
	}
	if pb.String(resp, pb.FieldStatus) != "OK" {
		return ErrUnavailable
	}
	return nil
}

func (s *GRPCClient) ListAccounts(ctx context.Context) ([]Account, error) {
	resp, err := s.call(ctx, pb.ListAccounts, nil)
	if err != nil {
		return nil, err
	}
	var out struct {
		Users []Account `json:"users"`
	}
	if err := pb.Decode(resp, &out); err != nil {
		return nil, err
	}
	return out.Users, nil
}

func (s *GRPCClient) GetAccount(ctx context.Context, id string) (*Account, error) {
	resp, err := s.call(ctx, pb.GetAccount, map[string]any{pb.FieldID: id})
	if err != nil {
		return nil, err
	}
	var out struct {
		User *Account `json:"user"`
	}
	if err := pb.Decode(resp, &out); err != nil {
		return nil, err
	}
	return out.User, nil
}

func (s *GRPCClient) CreateAccount(ctx context.Context, username string, password []byte, roles []string) (string, error) {
	return s.message(ctx, pb.CreateAccount, map[string]any{
		pb.FieldUsername: username,
		pb.FieldPassword: string(password),
		pb.FieldRoles:    toList(roles),
	})
}

func (s *GRPCClient) UpdateAccount(ctx context.Context, u AccountUpdate) (string, error) {
	req := map[string]any{
		pb.FieldID:       u.ID,
		pb.FieldUsername: u.Username,
		pb.FieldRoles:    toList(u.Roles),
		pb.FieldActive:   u.Active,
	}
	if len(u.Password) > 0 {
		req[pb.FieldPassword] = string(u.Password)
	}
	return s.message(ctx, pb.UpdateAccount, req)
}

func (s *GRPCClient) DeleteAccount(ctx context.Context, id string) (string, error) {
	return s.message(ctx, pb.DeleteAccount, map[string]any{pb.FieldID: id})
}

func (s *GRPCClient) ListNotes(ctx context.Context) ([]Note, error) {
	resp, err := s.call(ctx, pb.ListNotes, nil)
	if err != nil {
		return nil, err
	}
	var out struct {
		Notes []Note `json:"notes"`
	}
	if err := pb.Decode(resp, &out); err != nil {
		return nil, err
	}
	return out.Notes, nil
}

func (s *GRPCClient) GetNote(ctx context.Context, id string) (*Note, error) {
	resp, err := s.call(ctx, pb.GetNote, map[string]any{pb.FieldID: id})
	if err != nil {
		return nil, err
	}
	var out struct {
		Note *Note `json:"note"`
	}
	if err := pb.Decode(resp, &out); err != nil {
		return nil, err
	}
	return out.Note, nil
}

func (s *GRPCClient) CreateNote(ctx context.Context, owner, title, text string) (string, error) {
	return s.message(ctx, pb.CreateNote, map[string]any{
		pb.FieldOwner: owner,
		pb.FieldTitle: title,
		pb.FieldText:  text,
	})
}

func (s *GRPCClient) UpdateNote(ctx context.Context, u NoteUpdate) (string, error) {
	return s.message(ctx, pb.UpdateNote, map[string]any{
		pb.FieldID:        u.ID,
		pb.FieldOwner:     u.Owner,
		pb.FieldTitle:     u.Title,
		pb.FieldText:      u.Text,
		pb.FieldCompleted: u.Completed,
	})
}

func (s *GRPCClient) DeleteNote(ctx context.Context, id string) (string, error) {
	return s.message(ctx, pb.DeleteNote, map[string]any{pb.FieldID: id})
}

func (s *GRPCClient) mapError(err error) error {
	if err == nil {
		return nil
	}
	st, _ := status.FromError(err)
	switch st.Code() {
	case codes.InvalidArgument:
		return fmt.Errorf("%w: %s", ErrInvalidInput, st.Message())
	case codes.NotFound:
		return fmt.Errorf("%w: %s", ErrNotFound, st.Message())
	case codes.AlreadyExists, codes.FailedPrecondition:
		return fmt.Errorf("%w: %s", ErrConflict, st.Message())
	case codes.Unavailable, codes.DeadlineExceeded:
		return ErrUnavailable
	default:
		return fmt.Errorf("rpc error: %w", err)
	}
}

// toList converts roles for structpb, which only accepts []any.
func toList(ss []string) []any {
	out := make([]any, len(ss))
	for i, s := range ss {
		out[i] = s
	}
	return out
}
