package cancel

import "context"

// FromContext creates a Token that fires when parent is done or when
// Cancel is called, whichever happens first.
//
// This is the bridge from context-based code (signal.NotifyContext,
// request scopes) into a Token.
func FromContext(parent context.Context) *Token {
	ctx, cancel := context.WithCancel(parent)
	return &Token{
		ctx:    ctx,
		cancel: cancel,
	}
}
