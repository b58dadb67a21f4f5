// Package errors is the error taxonomy shared by every layer of the
// mausritter-api service.
//
// Errors carry a Code, a user facing message, an optional cause and
// free-form metadata. Codes map onto gRPC status codes at the transport
// boundary and back again on the client side.
//
// # Basic Usage
//
//	err := errors.NotFound("character not found").
//	    WithMeta("character_id", id)
//
//	if err := repo.Get(ctx, id); err != nil {
//	    return errors.Wrap(err, "failed to load character")
//	}
//
// # Sentinels
//
// Domain packages declare package level sentinels such as
//
//	var ErrGritExhausted = errors.FailedPrecondition("no grit remaining")
//
// and callers test them with the standard library errors.Is. A sentinel
// only matches errors with the same code and message, or errors that wrap it.
//
// # Validation
//
//	vb := errors.NewValidationBuilder()
//	errors.ValidateRequired("name", input.Name, vb)
//	errors.ValidateRange("pips", input.Pips, 0, 250, vb)
//	if err := vb.Build(); err != nil {
//	    return err
//	}
//
// # Layer Guidelines
//
// Repositories return NotFound and AlreadyExists and include ids in the
// metadata. Orchestrators validate inputs with the builder and report rule
// violations such as grit exhaustion as FailedPrecondition. Handlers convert
// with ToGRPCError and log anything that comes out as Internal.
package errors
