package inquiry

import (
	"context"
	"errors"
	"fmt"

	"github.com/alzentdigital/website/pkg/dispatch"
)

var _ dispatch.Dispatcher = (*Service)(nil)

// Dispatch lets the site deliver form payloads in-process instead of over
// HTTP. Failures carry the dispatch sentinels the form guard classifies:
// rejected payloads wrap dispatch.ErrValidation, everything else
// dispatch.ErrServer.
func (s *Service) Dispatch(ctx context.Context, p dispatch.Payload) (dispatch.Response, error) {
	res, err := s.Handle(ctx, p)

	var valErr ValidationError
	switch {
	case err == nil:
		return dispatch.Response{
			Success:          true,
			Message:          MsgEmailsSent,
			NotificationSent: res.NotificationSent,
			ConfirmationSent: res.ConfirmationSent,
		}, nil
	case errors.As(err, &valErr):
		return dispatch.Response{Error: MsgValidation, Errors: valErr}, fmt.Errorf("%w: %w", dispatch.ErrValidation, err)
	default:
		return dispatch.Response{Error: MsgInternal, Message: publicMessage(err)}, fmt.Errorf("%w: %w", dispatch.ErrServer, err)
	}
}
