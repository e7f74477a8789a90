package publisher

//go:generate go run go.uber.org/mock/mockgen -source=./publisher.go -destination=../mocks/publisher_mock.go -package=mocks

import (
	"context"
	"fmt"

	"roomdesk/config"
	"roomdesk/infras/kafka"
	"roomdesk/infras/otel"
	"roomdesk/internal/domains/approval/model/dto"
	"roomdesk/shared/constant"
)

// Decision publishes booking decision events for downstream consumers
// (notification senders, reporting pipelines). Publishing happens after the
// decision has committed, so a dropped event never implies a dropped decision.
type Decision interface {
	PublishDecision(ctx context.Context, event dto.DecisionEvent) error
}

type publisherImpl struct {
	client kafka.Client
	cfg    *config.Config
	otel   otel.Otel
}

func New(client kafka.Client, cfg *config.Config, otel otel.Otel) Decision {
	return &publisherImpl{
		client: client,
		cfg:    cfg,
		otel:   otel,
	}
}

func (p *publisherImpl) PublishDecision(ctx context.Context, event dto.DecisionEvent) (err error) {
	ctx, scope := p.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".publisher.PublishDecision")
	defer scope.End()
	defer scope.TraceIfError(err)

	if !p.cfg.Kafka.Enable {
		return nil
	}

	message := kafka.Message{
		Key:   event.RequestID,
		Value: event,
	}

	err = p.client.SendMessages(ctx, p.cfg.Kafka.DecisionTopic, message)
	if err != nil {
		return fmt.Errorf("failed to publish decision event: %w", err)
	}

	return nil
}
