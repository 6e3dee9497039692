package usecase

import (
	"context"

	"github.com/AzielCF/az-presence/domains/common"
	domainUnread "github.com/AzielCF/az-presence/domains/unread"
	"github.com/AzielCF/az-presence/pkg/metrics"
	"github.com/sirupsen/logrus"
)

type unreadService struct {
	repo domainUnread.IUnreadRepository
	sink common.EventSink
}

func NewUnreadService(repo domainUnread.IUnreadRepository) domainUnread.IUnreadUsecase {
	return &unreadService{repo: repo}
}

func (s *unreadService) SetEventSink(sink common.EventSink) {
	s.sink = sink
}

func (s *unreadService) emit(code, message string, result any) {
	if s.sink != nil {
		s.sink(code, message, result)
	}
}

func (s *unreadService) OnMessageInserted(ctx context.Context, request domainUnread.MessageInsertedRequest) error {
	seen := make(map[string]struct{}, len(request.MemberIDs))
	bumped := make([]string, 0, len(request.MemberIDs))

	for _, member := range request.MemberIDs {
		if member == "" || member == request.AuthorMember {
			continue
		}
		if _, dup := seen[member]; dup {
			continue
		}
		seen[member] = struct{}{}

		if err := s.repo.Increment(ctx, request.Channel, member, request.MessageID, request.MessageSeq); err != nil {
			return storeErr(err)
		}
		metrics.UnreadIncrementsTotal.Inc()
		bumped = append(bumped, member)
	}

	// Fan-out strictly after the counter increments committed, so the
	// durability of the bump never depends on any push consumer.
	if len(bumped) > 0 {
		s.emit(common.EventUnreadBump, "message inserted", map[string]any{
			"channel": request.Channel, "message_id": request.MessageID, "members": bumped,
		})
	}
	return nil
}

func (s *unreadService) MarkRead(ctx context.Context, request domainUnread.MarkReadRequest) error {
	applied, err := s.repo.MarkRead(ctx, request.Channel, request.Member, request.UptoMessage, request.UptoSeq)
	if err != nil {
		return storeErr(err)
	}
	if !applied {
		// The recorded watermark is already past uptoMessage; silently
		// keeping the newer one is the contract.
		metrics.WatermarkRejectionsTotal.Inc()
		logrus.Debugf("[UNREAD] markRead ignored for %s/%s (watermark would regress)", request.Channel, request.Member)
		return nil
	}

	s.emit(common.EventUnreadRead, "channel read", map[string]any{
		"channel": request.Channel, "member": request.Member, "upto_message": request.UptoMessage,
	})
	return nil
}

func (s *unreadService) Get(ctx context.Context, channel, member string) (domainUnread.Counter, error) {
	counter, err := s.repo.Get(ctx, channel, member)
	if err != nil {
		return domainUnread.Counter{}, storeErr(err)
	}
	if counter == nil {
		return domainUnread.Counter{Channel: channel, Member: member}, nil
	}
	return *counter, nil
}
