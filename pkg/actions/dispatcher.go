package actions

import (
	"context"

	"github.com/arthur-debert/pkgactions/pkg/errors"
	"github.com/arthur-debert/pkgactions/pkg/logging"
	"github.com/arthur-debert/pkgactions/pkg/manifest"
)

// handlers is the closed set of action implementations
var handlers = map[ActionType]Handler{
	ActionCopy:    copyHandler{},
	ActionRemove:  removeHandler{},
	ActionCreate:  createHandler{},
	ActionSymlink: symlinkHandler{},
}

// Dispatcher routes manifest entries to their handler
type Dispatcher struct {
	handlers map[ActionType]Handler
}

// NewDispatcher creates a dispatcher over the built-in handlers
func NewDispatcher() *Dispatcher {
	return &Dispatcher{handlers: handlers}
}

// Dispatch runs entry. Unknown action names fail with ErrUnknownAction
// before anything is touched.
func (d *Dispatcher) Dispatch(ctx context.Context, env *Env, entry manifest.Entry) error {
	logger := logging.GetLogger("actions.dispatcher").With().
		Str("action", entry.Action).
		Str("package", entry.Package).
		Bool("dry_run", env.DryRun).
		Logger()

	actionType, ok := ParseActionType(entry.Action)
	if !ok {
		logger.Debug().Msg("Unknown action")
		return errors.Newf(errors.ErrUnknownAction, "unknown action %q", entry.Action).
			WithDetail("action", entry.Action).
			WithDetail("package", entry.Package)
	}

	handler, ok := d.handlers[actionType]
	if !ok {
		return errors.Newf(errors.ErrInternal, "no handler registered for %s", actionType)
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	logger.Debug().Msg("Dispatching action")
	if err := handler.Apply(ctx, env, entry); err != nil {
		logger.Debug().Err(err).Msg("Action failed")
		return err
	}
	return nil
}
