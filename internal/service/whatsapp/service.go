package whatsapp

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/mamadbah2/herd/internal/config"
	"github.com/mamadbah2/herd/internal/domain/models"
	"github.com/mamadbah2/herd/internal/service/commands"
	client "github.com/mamadbah2/herd/pkg/clients/whatsapp"
)

const sendTimeout = 10 * time.Second

// MessagingService describes the operations the HTTP layer can perform.
type MessagingService interface {
	VerifyWebhookToken(mode, verifyToken, challenge string) (string, error)
	HandleWebhook(ctx context.Context, payload models.WebhookPayload) error
	SendOutbound(ctx context.Context, req models.OutboundMessageRequest) error
}

// MetaWhatsAppService is the production implementation backed by WhatsApp Cloud API.
type MetaWhatsAppService struct {
	cfg        config.WhatsAppConfig
	client     client.Client
	dispatcher commands.Dispatcher
	deliveries *DeliveryLog
	logger     *zap.Logger
}

// NewMetaWhatsAppService wires a new service instance.
func NewMetaWhatsAppService(cfg config.WhatsAppConfig, client client.Client, dispatcher commands.Dispatcher, logger *zap.Logger) *MetaWhatsAppService {
	svc := &MetaWhatsAppService{
		cfg:        cfg,
		client:     client,
		dispatcher: dispatcher,
		deliveries: NewDeliveryLog(time.Hour),
		logger:     logger,
	}
	if svc.logger == nil {
		svc.logger = zap.NewNop()
	}
	return svc
}

// VerifyWebhookToken validates the callback verification token.
func (s *MetaWhatsAppService) VerifyWebhookToken(mode, verifyToken, challenge string) (string, error) {
	if mode == "" || verifyToken == "" {
		return "", errors.New("missing mode or verify token")
	}

	if !strings.EqualFold(mode, "subscribe") {
		return "", fmt.Errorf("unsupported hub.mode %s", mode)
	}

	if verifyToken != s.cfg.VerifyToken {
		return "", errors.New("invalid verify token")
	}

	return challenge, nil
}

// HandleWebhook answers every message of a callback. All messages are
// attempted; the first failure is returned.
func (s *MetaWhatsAppService) HandleWebhook(ctx context.Context, payload models.WebhookPayload) error {
	if n := payload.Receipts(); n > 0 {
		s.logger.Debug("delivery receipts received", zap.Int("count", n))
	}

	var firstErr error
	for _, msg := range payload.Messages() {
		if err := s.handleInboundMessage(ctx, msg); err != nil {
			s.logger.Error("failed to handle inbound message", zap.Error(err), zap.String("message_id", msg.ID))
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	return firstErr
}

func (s *MetaWhatsAppService) handleInboundMessage(ctx context.Context, msg models.InboundMessage) error {
	if !s.deliveries.MarkHandled(msg.ID) {
		s.logger.Debug("skipping redelivered message", zap.String("message_id", msg.ID))
		return nil
	}

	reply, err := s.reply(ctx, msg)
	if err != nil {
		s.deliveries.Forget(msg.ID)
		return err
	}

	ctxWithTimeout, cancel := context.WithTimeout(ctx, sendTimeout)
	defer cancel()

	_, err = s.client.SendTextMessage(ctxWithTimeout, client.SendTextMessageRequest{
		To:   msg.From,
		Body: reply,
	})
	if err != nil {
		s.deliveries.Forget(msg.ID)
	}
	return err
}

// reply runs the command in msg. Messages without text, unknown commands
// and bad arguments are answered with the command list.
func (s *MetaWhatsAppService) reply(ctx context.Context, msg models.InboundMessage) (string, error) {
	text := strings.TrimSpace(msg.Body())
	if text == "" {
		s.logger.Info("non-text message received", zap.String("from", msg.From), zap.String("type", msg.Type))
		return s.dispatcher.Help(), nil
	}

	cmd := models.ParseCommand(text)
	s.logger.Info("parsed inbound command",
		zap.String("from", msg.From),
		zap.String("command", string(cmd.Type)),
		zap.Strings("args", cmd.Args))

	reply, err := s.dispatcher.HandleCommand(ctx, cmd, msg.From)
	switch {
	case errors.Is(err, commands.ErrUnsupportedCommand), errors.Is(err, commands.ErrInvalidArguments):
		return s.dispatcher.Help(), nil
	case err != nil:
		return "", fmt.Errorf("handle %s command: %w", cmd.Type, err)
	}
	return reply, nil
}

// SendOutbound lets internal operators and the reminder job push notifications.
func (s *MetaWhatsAppService) SendOutbound(ctx context.Context, req models.OutboundMessageRequest) error {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, sendTimeout)
	defer cancel()

	_, err := s.client.SendTextMessage(ctxWithTimeout, client.SendTextMessageRequest{
		To:         req.To,
		Body:       req.Message,
		PreviewURL: req.PreviewURL,
	})
	return err
}
