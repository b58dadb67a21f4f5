package errors

import (
	"fmt"

	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
)

// ToGRPCError converts err to a status error for the wire. Status errors
// pass through, metadata travels as a structpb.Struct detail, and uncoded
// errors become Internal with their text.
func ToGRPCError(err error) error {
	if err == nil {
		return nil
	}
	if _, ok := status.FromError(err); ok {
		return err
	}

	var e *Error
	if !As(err, &e) {
		return status.Error(GetCode(err).GRPCCode(), err.Error())
	}

	st := status.New(e.Code.GRPCCode(), e.Message)
	if len(e.Meta) > 0 {
		if details, err := metaToStruct(e.Meta); err == nil {
			if withDetails, err := st.WithDetails(details); err == nil {
				st = withDetails
			}
		}
	}
	return st.Err()
}

// FromGRPCError turns a status error back into an *Error, restoring the
// metadata detail. Non status errors are returned unchanged.
func FromGRPCError(err error) error {
	if err == nil {
		return nil
	}
	st, ok := status.FromError(err)
	if !ok {
		return err
	}

	out := New(codeFromGRPC(st.Code()), st.Message())
	for _, detail := range st.Details() {
		if s, ok := detail.(*structpb.Struct); ok {
			out.Meta = s.AsMap()
			break
		}
	}
	return out
}

// metaToStruct converts metadata into a structpb detail. Values structpb
// cannot represent are stringified.
func metaToStruct(meta map[string]any) (*structpb.Struct, error) {
	fields := make(map[string]any, len(meta))
	for k, v := range meta {
		switch typed := v.(type) {
		case string, bool, int, int32, int64, float32, float64, nil:
			fields[k] = typed
		case map[string][]string:
			nested := make(map[string]any, len(typed))
			for field, msgs := range typed {
				list := make([]any, len(msgs))
				for i, m := range msgs {
					list[i] = m
				}
				nested[field] = list
			}
			fields[k] = nested
		default:
			fields[k] = fmt.Sprintf("%v", typed)
		}
	}
	return structpb.NewStruct(fields)
}
