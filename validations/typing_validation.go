package validations

import (
	"context"

	domainTyping "github.com/AzielCF/az-presence/domains/typing"
	pkgError "github.com/AzielCF/az-presence/pkg/error"
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

func ValidateMarkTyping(ctx context.Context, request domainTyping.MarkRequest) error {
	err := validation.ValidateStructWithContext(ctx, &request,
		validation.Field(&request.Channel, validation.Required),
		validation.Field(&request.Member, validation.Required),
	)

	if err != nil {
		return pkgError.ValidationError(err.Error())
	}

	return nil
}

func ValidateClearTyping(ctx context.Context, request domainTyping.ClearRequest) error {
	err := validation.ValidateStructWithContext(ctx, &request,
		validation.Field(&request.Channel, validation.Required),
		validation.Field(&request.Member, validation.Required),
	)

	if err != nil {
		return pkgError.ValidationError(err.Error())
	}

	return nil
}
