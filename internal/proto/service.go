// Package proto describes the technotes.v1.TechNotes gRPC service. Requests
// and responses are google.protobuf.Struct documents whose keys mirror the
// REST JSON bodies, so no generated code is needed on either side.
package proto

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

const ServiceName = "technotes.v1.TechNotes"

// Method names.
const (
	Ping          = "Ping"
	ListAccounts  = "ListAccounts"
	GetAccount    = "GetAccount"
	CreateAccount = "CreateAccount"
	UpdateAccount = "UpdateAccount"
	DeleteAccount = "DeleteAccount"
	ListNotes     = "ListNotes"
	GetNote       = "GetNote"
	CreateNote    = "CreateNote"
	UpdateNote    = "UpdateNote"
	DeleteNote    = "DeleteNote"
)

// FullMethod returns the invoke path of a method, e.g. "/technotes.v1.TechNotes/Ping".
func FullMethod(method string) string {
	return "/" + ServiceName + "/" + method
}

// TechNotesServer is implemented by the server transport.
type TechNotesServer interface {
	Ping(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ListAccounts(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetAccount(context.Context, *structpb.Struct) (*structpb.Struct, error)
	CreateAccount(context.Context, *structpb.Struct) (*structpb.Struct, error)
	UpdateAccount(context.Context, *structpb.Struct) (*structpb.Struct, error)
	DeleteAccount(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ListNotes(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetNote(context.Context, *structpb.Struct) (*structpb.Struct, error)
	CreateNote(context.Context, *structpb.Struct) (*structpb.Struct, error)
	UpdateNote(context.Context, *structpb.Struct) (*structpb.Struct, error)
	DeleteNote(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

type unaryFunc func(TechNotesServer, context.Context, *structpb.Struct) (*structpb.Struct, error)

func unary(name string, call unaryFunc) grpc.MethodDesc {
	return grpc.MethodDesc{
		MethodName: name,
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			in := new(structpb.Struct)
			if err := dec(in); err != nil {
				return nil, err
			}
			if interceptor == nil {
				return call(srv.(TechNotesServer), ctx, in)
			}
			info := &grpc.UnaryServerInfo{Server: srv, FullMethod: FullMethod(name)}
			handler := func(ctx context.Context, req any) (any, error) {
				return call(srv.(TechNotesServer), ctx, req.(*structpb.Struct))
			}
			return interceptor(ctx, in, info, handler)
		},
	}
}

// ServiceDesc is passed to grpc.Server.RegisterService.
var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*TechNotesServer)(nil),
	Methods: []grpc.MethodDesc{
		unary(Ping, TechNotesServer.Ping),
		unary(ListAccounts, TechNotesServer.ListAccounts),
		unary(GetAccount, TechNotesServer.GetAccount),
		unary(CreateAccount, TechNotesServer.CreateAccount),
		unary(UpdateAccount, TechNotesServer.UpdateAccount),
		unary(DeleteAccount, TechNotesServer.DeleteAccount),
		unary(ListNotes, TechNotesServer.ListNotes),
		unary(GetNote, TechNotesServer.GetNote),
		unary(CreateNote, TechNotesServer.CreateNote),
		unary(UpdateNote, TechNotesServer.UpdateNote),
		unary(DeleteNote, TechNotesServer.DeleteNote),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "technotes/v1/technotes.proto",
}

// RegisterTechNotesServer registers srv on s.
func RegisterTechNotesServer(s grpc.ServiceRegistrar, srv TechNotesServer) {
	s.RegisterService(&ServiceDesc, srv)
}
