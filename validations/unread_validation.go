package validations

import (
	"context"

	domainUnread "github.com/AzielCF/az-presence/domains/unread"
	pkgError "github.com/AzielCF/az-presence/pkg/error"
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

func ValidateMessageInserted(ctx context.Context, request domainUnread.MessageInsertedRequest) error {
	err := validation.ValidateStructWithContext(ctx, &request,
		validation.Field(&request.Channel, validation.Required),
		validation.Field(&request.AuthorMember, validation.Required),
		validation.Field(&request.MemberIDs, validation.Required),
		validation.Field(&request.MessageID, validation.Required),
		validation.Field(&request.MessageSeq, validation.Required, validation.Min(int64(1))),
	)

	if err != nil {
		return pkgError.ValidationError(err.Error())
	}

	return nil
}

func ValidateMarkRead(ctx context.Context, request domainUnread.MarkReadRequest) error {
	err := validation.ValidateStructWithContext(ctx, &request,
		validation.Field(&request.Channel, validation.Required),
		validation.Field(&request.Member, validation.Required),
		validation.Field(&request.UptoMessage, validation.Required),
		validation.Field(&request.UptoSeq, validation.Required, validation.Min(int64(1))),
	)

	if err != nil {
		return pkgError.ValidationError(err.Error())
	}

	return nil
}
