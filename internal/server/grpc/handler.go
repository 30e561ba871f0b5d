package grpc

import (
	"context"

	"github.com/dmitrijs2005/technotes/internal/common"
	pb "github.com/dmitrijs2005/technotes/internal/proto"
	"github.com/dmitrijs2005/technotes/internal/server/services"
	"google.golang.org/protobuf/types/known/structpb"
)

func (s *GRPCServer) Ping(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	return &structpb.Struct{Fields: map[string]*structpb.Value{
		pb.FieldStatus: structpb.NewStringValue("OK"),
	}}, nil
}

func (s *GRPCServer) ListAccounts(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	list, err := s.accounts.List(ctx)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return s.encode(ctx, map[string]any{pb.FieldUsers: list})
}

func (s *GRPCServer) GetAccount(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	acc, err := s.accounts.Get(ctx, pb.String(req, pb.FieldID))
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return s.encode(ctx, map[string]any{pb.FieldUser: acc})
}

func (s *GRPCServer) CreateAccount(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	secret := []byte(pb.String(req, pb.FieldPassword))
	defer common.WipeByteArray(secret)

	msg, err := s.accounts.Create(ctx, services.CreateAccountInput{
		Username: pb.String(req, pb.FieldUsername),
		Secret:   secret,
		Roles:    pb.Strings(req, pb.FieldRoles),
	})
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return pb.Message(msg), nil
}

func (s *GRPCServer) UpdateAccount(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	secret := []byte(pb.String(req, pb.FieldPassword))
	defer common.WipeByteArray(secret)

	msg, err := s.accounts.Update(ctx, services.UpdateAccountInput{
		ID:       pb.String(req, pb.FieldID),
		Username: pb.String(req, pb.FieldUsername),
		Roles:    pb.Strings(req, pb.FieldRoles),
		Active:   pb.Bool(req, pb.FieldActive),
		Secret:   secret,
	})
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return pb.Message(msg), nil
}

func (s *GRPCServer) DeleteAccount(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	msg, err := s.accounts.Delete(ctx, pb.String(req, pb.FieldID))
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return pb.Message(msg), nil
}

func (s *GRPCServer) ListNotes(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	list, err := s.notes.List(ctx)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return s.encode(ctx, map[string]any{pb.FieldNotes: list})
}

func (s *GRPCServer) GetNote(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	note, err := s.notes.Get(ctx, pb.String(req, pb.FieldID))
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return s.encode(ctx, map[string]any{pb.FieldNote: note})
}

func (s *GRPCServer) CreateNote(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	msg, err := s.notes.Create(ctx, services.CreateNoteInput{
		Owner: pb.String(req, pb.FieldOwner),
		Title: pb.String(req, pb.FieldTitle),
		Body:  pb.String(req, pb.FieldText),
	})
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return pb.Message(msg), nil
}

func (s *GRPCServer) UpdateNote(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	msg, err := s.notes.Update(ctx, services.UpdateNoteInput{
		ID:        pb.String(req, pb.FieldID),
		Owner:     pb.String(req, pb.FieldOwner),
		Title:     pb.String(req, pb.FieldTitle),
		Body:      pb.String(req, pb.FieldText),
		Completed: pb.Bool(req, pb.FieldCompleted),
	})
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return pb.Message(msg), nil
}

func (s *GRPCServer) DeleteNote(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	msg, err := s.notes.Delete(ctx, pb.String(req, pb.FieldID))
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return pb.Message(msg), nil
}

func (s *GRPCServer) encode(ctx context.Context, v any) (*structpb.Struct, error) {
	out, err := pb.Encode(v)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return out, nil
}
