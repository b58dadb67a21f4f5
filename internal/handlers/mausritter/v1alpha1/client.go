package v1alpha1

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"
	"google.golang.org/protobuf/types/known/structpb"
)

// Client calls the character service. Requests are any JSON-encodable
// value; responses come back as decoded JSON objects.
type Client struct {
	conn  grpc.ClientConnInterface
	token string
}

// NewClient creates a client over conn. When token is set every call
// carries it as a bearer token.
func NewClient(conn grpc.ClientConnInterface, token string) *Client {
	return &Client{conn: conn, token: token}
}

// Call invokes method with req
func (c *Client) Call(ctx context.Context, method string, req any) (map[string]any, error) {
	if req == nil {
		req = struct{}{}
	}
	in, err := Encode(req)
	if err != nil {
		return nil, err
	}
	if c.token != "" {
		ctx = metadata.AppendToOutgoingContext(ctx, "authorization", "Bearer "+c.token)
	}

	out := new(structpb.Struct)
	if err := c.conn.Invoke(ctx, FullMethod(method), in, out); err != nil {
		return nil, err
	}
	return out.AsMap(), nil
}
