package validations

import (
	"context"

	domainPresence "github.com/AzielCF/az-presence/domains/presence"
	pkgError "github.com/AzielCF/az-presence/pkg/error"
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

func ValidateHeartbeat(ctx context.Context, request domainPresence.HeartbeatRequest) error {
	err := validation.ValidateStructWithContext(ctx, &request,
		validation.Field(&request.Room, validation.Required),
		validation.Field(&request.User, validation.Required),
		validation.Field(&request.Session, validation.Required),
		validation.Field(&request.IntervalMs, validation.Required, validation.Min(int64(1))),
	)

	if err != nil {
		return pkgError.ValidationError(err.Error())
	}

	return nil
}

func ValidateLeave(ctx context.Context, request domainPresence.LeaveRequest) error {
	err := validation.ValidateStructWithContext(ctx, &request,
		validation.Field(&request.Room, validation.Required),
		validation.Field(&request.User, validation.Required),
		validation.Field(&request.Session, validation.Required),
	)

	if err != nil {
		return pkgError.ValidationError(err.Error())
	}

	return nil
}

func ValidateSetStatus(ctx context.Context, request domainPresence.SetStatusRequest) error {
	err := validation.ValidateStructWithContext(ctx, &request,
		validation.Field(&request.User, validation.Required),
		validation.Field(&request.Status, validation.Required, validation.In(domainPresence.Statuses()...)),
		validation.Field(&request.CustomMessage, validation.Length(0, domainPresence.MaxCustomMessageLength)),
	)

	if err != nil {
		return pkgError.ValidationError(err.Error())
	}

	return nil
}
