package main

import (
	"embed"
	"fmt"
	"html/template"

	"github.com/sysu-ecnc-dev/timetabler/backend/internal/domain"
	"github.com/wneessen/go-mail"
)

//go:embed templates/*.html
var templateFS embed.FS

type mailKind struct {
	template string
	subject  string
}

var mailKinds = map[string]mailKind{
	domain.MailTypeCreateUser: {
		template: "templates/new_account_email.html",
		subject:  "排课系统 - 账户信息",
	},
	domain.MailTypeTimetableGenerated: {
		template: "templates/timetable_generated_email.html",
		subject:  "排课系统 - 排课完成",
	},
}

// buildMessage 根据邮件类型选择模板并构建邮件
func buildMessage(from string, mailMessage domain.MailMessage) (*mail.Msg, error) {
	kind, ok := mailKinds[mailMessage.Type]
	if !ok {
		return nil, fmt.Errorf("不支持的邮件类型 %q", mailMessage.Type)
	}

	msg := mail.NewMsg()
	if err := msg.From(from); err != nil {
		return nil, fmt.Errorf("无法设置邮件发件人: %w", err)
	}
	if err := msg.To(mailMessage.To); err != nil {
		return nil, fmt.Errorf("无法设置邮件收件人: %w", err)
	}

	tmpl, err := template.ParseFS(templateFS, kind.template)
	if err != nil {
		return nil, fmt.Errorf("无法解析邮件模板: %w", err)
	}
	if err := msg.SetBodyHTMLTemplate(tmpl, mailMessage.Data); err != nil {
		return nil, fmt.Errorf("无法设置邮件正文: %w", err)
	}
	msg.Subject(kind.subject)

	return msg, nil
}
