// Package common provides the input pipeline shared by every math operation.
//
// A call moves through three stages, each with its own typed failure:
//   - Coerce: raw arguments become Values (number, sequence or text)
//   - Validate: ordered Checks enforce domain preconditions
//   - Compute: the operation's pure function runs on validated Args
//
// Coercion is strict. Numeric strings are accepted after trimming, but
// booleans, null, NaN, infinities and partially numeric strings are
// rejected. Strings are never iterated as character sequences.
//
// Failures are *Error values carrying a types.ErrorKind, a message and the
// offending raw input. Failure converts them into the ErrorReport that the
// transports return to the caller.
//
// Example Usage:
//
//	spec := common.Spec{
//	    Name:    "sqrt",
//	    Params:  []common.Param{common.Number("x", "Radicand")},
//	    Checks:  []common.Check{common.NonNegative("x")},
//	    Compute: func(args common.Args) (interface{}, error) {
//	        return math.Sqrt(args.Number("x")), nil
//	    },
//	}
package common
