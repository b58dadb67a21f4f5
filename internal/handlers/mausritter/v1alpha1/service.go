// Package v1alpha1 serves the Mausritter character service over gRPC. The
// service has no generated stubs; every request and response is a JSON
// object carried in a google.protobuf.Struct.
package v1alpha1

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

// ServiceName is the fully qualified gRPC service name
const ServiceName = "mausritter.api.v1alpha1.CharacterService"

// Method names
const (
	MethodGetSession        = "GetSession"
	MethodRenameSession     = "RenameSession"
	MethodUpdateGMNotes     = "UpdateGMNotes"
	MethodExportSession     = "ExportSession"
	MethodImportSession     = "ImportSession"
	MethodResetSession      = "ResetSession"
	MethodListCharacters    = "ListCharacters"
	MethodCreateCharacter   = "CreateCharacter"
	MethodGetCharacter      = "GetCharacter"
	MethodUpdateCharacter   = "UpdateCharacter"
	MethodDeleteCharacter   = "DeleteCharacter"
	MethodJoinCharacter     = "JoinCharacter"
	MethodProposeCharacter  = "ProposeCharacter"
	MethodAcceptProposal    = "AcceptProposal"
	MethodUpdateInventory   = "UpdateInventory"
	MethodIgnoreCondition   = "IgnoreCondition"
	MethodUnignoreCondition = "UnignoreCondition"
	MethodAddHireling       = "AddHireling"
	MethodRemoveHireling    = "RemoveHireling"
	MethodRollDice          = "RollDice"
	MethodRollSave          = "RollSave"
	MethodGetRollLog        = "GetRollLog"
)

// FullMethod returns the gRPC path of a method
func FullMethod(method string) string {
	return "/" + ServiceName + "/" + method
}

// CharacterServiceServer is the server API of the character service
type CharacterServiceServer interface {
	GetSession(context.Context, *structpb.Struct) (*structpb.Struct, error)
	RenameSession(context.Context, *structpb.Struct) (*structpb.Struct, error)
	UpdateGMNotes(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ExportSession(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ImportSession(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ResetSession(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ListCharacters(context.Context, *structpb.Struct) (*structpb.Struct, error)
	CreateCharacter(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetCharacter(context.Context, *structpb.Struct) (*structpb.Struct, error)
	UpdateCharacter(context.Context, *structpb.Struct) (*structpb.Struct, error)
	DeleteCharacter(context.Context, *structpb.Struct) (*structpb.Struct, error)
	JoinCharacter(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ProposeCharacter(context.Context, *structpb.Struct) (*structpb.Struct, error)
	AcceptProposal(context.Context, *structpb.Struct) (*structpb.Struct, error)
	UpdateInventory(context.Context, *structpb.Struct) (*structpb.Struct, error)
	IgnoreCondition(context.Context, *structpb.Struct) (*structpb.Struct, error)
	UnignoreCondition(context.Context, *structpb.Struct) (*structpb.Struct, error)
	AddHireling(context.Context, *structpb.Struct) (*structpb.Struct, error)
	RemoveHireling(context.Context, *structpb.Struct) (*structpb.Struct, error)
	RollDice(context.Context, *structpb.Struct) (*structpb.Struct, error)
	RollSave(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetRollLog(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

type unaryCall func(CharacterServiceServer, context.Context, *structpb.Struct) (*structpb.Struct, error)

func unary(name string, call unaryCall) grpc.MethodDesc {
	return grpc.MethodDesc{
		MethodName: name,
		Handler: func(
			srv any,
			ctx context.Context,
			dec func(any) error,
			interceptor grpc.UnaryServerInterceptor,
		) (any, error) {
			in := new(structpb.Struct)
			if err := dec(in); err != nil {
				return nil, err
			}
			server := srv.(CharacterServiceServer)
			if interceptor == nil {
				return call(server, ctx, in)
			}
			info := &grpc.UnaryServerInfo{Server: srv, FullMethod: FullMethod(name)}
			handler := func(ctx context.Context, req any) (any, error) {
				return call(server, ctx, req.(*structpb.Struct))
			}
			return interceptor(ctx, in, info, handler)
		},
	}
}

// CharacterServiceDesc describes the service for grpc.Server.RegisterService
var CharacterServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*CharacterServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		unary(MethodGetSession, CharacterServiceServer.GetSession),
		unary(MethodRenameSession, CharacterServiceServer.RenameSession),
		unary(MethodUpdateGMNotes, CharacterServiceServer.UpdateGMNotes),
		unary(MethodExportSession, CharacterServiceServer.ExportSession),
		unary(MethodImportSession, CharacterServiceServer.ImportSession),
		unary(MethodResetSession, CharacterServiceServer.ResetSession),
		unary(MethodListCharacters, CharacterServiceServer.ListCharacters),
		unary(MethodCreateCharacter, CharacterServiceServer.CreateCharacter),
		unary(MethodGetCharacter, CharacterServiceServer.GetCharacter),
		unary(MethodUpdateCharacter, CharacterServiceServer.UpdateCharacter),
		unary(MethodDeleteCharacter, CharacterServiceServer.DeleteCharacter),
		unary(MethodJoinCharacter, CharacterServiceServer.JoinCharacter),
		unary(MethodProposeCharacter, CharacterServiceServer.ProposeCharacter),
		unary(MethodAcceptProposal, CharacterServiceServer.AcceptProposal),
		unary(MethodUpdateInventory, CharacterServiceServer.UpdateInventory),
		unary(MethodIgnoreCondition, CharacterServiceServer.IgnoreCondition),
		unary(MethodUnignoreCondition, CharacterServiceServer.UnignoreCondition),
		unary(MethodAddHireling, CharacterServiceServer.AddHireling),
		unary(MethodRemoveHireling, CharacterServiceServer.RemoveHireling),
		unary(MethodRollDice, CharacterServiceServer.RollDice),
		unary(MethodRollSave, CharacterServiceServer.RollSave),
		unary(MethodGetRollLog, CharacterServiceServer.GetRollLog),
	},
	Streams: []grpc.StreamDesc{},
}

// RegisterCharacterServiceServer registers srv with s
func RegisterCharacterServiceServer(s grpc.ServiceRegistrar, srv CharacterServiceServer) {
	s.RegisterService(&CharacterServiceDesc, srv)
}
