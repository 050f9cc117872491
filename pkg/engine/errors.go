package engine

import "errors"

// Rule violations are ordinary failure values: the board is left untouched
// and the caller is expected to re-query legal moves. They are never
// panics.
var (
	ErrOutOfRange       = errors.New("point index out of range")
	ErrMustEnterFromBar = errors.New("a checker on the bar must enter first")
	ErrNoChecker        = errors.New("no checker of the moving color at the source")
	ErrWrongDirection   = errors.New("move runs against the player's direction")
	ErrNoMatchingDie    = errors.New("no remaining die matches the required distance")
	ErrCheckerBehind    = errors.New("cannot bear off with a higher die while a checker sits behind")
	ErrPointBlocked     = errors.New("destination point is blocked")
	ErrCannotBearOff    = errors.New("cannot bear off until all checkers are home")
)

// Doubling cube violations.
var (
	ErrCubeAlreadyOffered = errors.New("a double is already pending")
	ErrCubeDead           = errors.New("the cube has reached its maximum value")
	ErrCubeNotOwned       = errors.New("only the cube owner may redouble")
	ErrNoCubeOffer        = errors.New("no double is pending")
)
