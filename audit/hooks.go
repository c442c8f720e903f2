package audit

import "context"

// Stamper is a record that pre-save hooks may stamp with the acting user.
type Stamper interface {
	SetCreatedBy(user *string)
}

// PreSaveFunc runs right before a head or revision row is inserted.
type PreSaveFunc func(s Stamper)

type preSaveKey struct{}

// WithPreSave returns a context carrying hook in addition to any hooks
// already bound. Hooks live as long as the context, so a hook bound by a
// request middleware is dropped when the request ends.
func WithPreSave(ctx context.Context, hook PreSaveFunc) context.Context {
	if hook == nil {
		return ctx
	}
	existing := preSaveHooks(ctx)
	hooks := make([]PreSaveFunc, 0, len(existing)+1)
	hooks = append(hooks, existing...)
	hooks = append(hooks, hook)
	return context.WithValue(ctx, preSaveKey{}, hooks)
}

// RunPreSave runs every hook bound to ctx against s, in binding order.
func RunPreSave(ctx context.Context, s Stamper) {
	for _, hook := range preSaveHooks(ctx) {
		hook(s)
	}
}

// StampCreatedBy returns a hook that stamps user as the creator.
// A nil user stamps an anonymous (NULL) creator.
func StampCreatedBy(user *string) PreSaveFunc {
	return func(s Stamper) {
		s.SetCreatedBy(user)
	}
}

func preSaveHooks(ctx context.Context) []PreSaveFunc {
	hooks, _ := ctx.Value(preSaveKey{}).([]PreSaveFunc)
	return hooks
}
