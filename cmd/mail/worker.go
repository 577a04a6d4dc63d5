package main

import (
	"context"
	"encoding/json"
	"log/slog"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sysu-ecnc-dev/timetabler/backend/internal/domain"
	"github.com/wneessen/go-mail"
)

type sender interface {
	DialAndSend(messages ...*mail.Msg) error
}

type worker struct {
	logger *slog.Logger
	client sender
	from   string
}

// run 持续消费消息，直到 ctx 结束或者通道被关闭
func (w *worker) run(ctx context.Context, deliveries <-chan amqp.Delivery) {
	for {
		select {
		case <-ctx.Done():
			return
		case d, ok := <-deliveries:
			if !ok {
				w.logger.Error("消息通道已关闭")
				return
			}
			w.handle(d)
		}
	}
}

// handle 处理一条消息
// 消息本身有问题时直接丢弃，发送失败时重新入队
func (w *worker) handle(d amqp.Delivery) {
	// 消息中可能包含初始密码，不能直接打印正文
	w.logger.Info("收到消息", slog.String("message_id", d.MessageId), slog.Int("size", len(d.Body)))

	var mailMessage domain.MailMessage
	if err := json.Unmarshal(d.Body, &mailMessage); err != nil {
		w.logger.Error("邮件信息反序列化失败", slog.String("error", err.Error()))
		_ = d.Nack(false, false)
		return
	}

	msg, err := buildMessage(w.from, mailMessage)
	if err != nil {
		w.logger.Error("无法构建邮件", slog.String("type", mailMessage.Type), slog.String("error", err.Error()))
		_ = d.Nack(false, false)
		return
	}

	if err := w.client.DialAndSend(msg); err != nil {
		w.logger.Error("邮件发送失败", slog.String("type", mailMessage.Type), slog.String("error", err.Error()))
		_ = d.Nack(false, true)
		return
	}

	_ = d.Ack(false)
	w.logger.Info("邮件已发送", slog.String("type", mailMessage.Type))
}
