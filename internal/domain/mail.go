package domain

// MailQueue 是 api 服务发布邮件、mail worker 消费邮件的队列
const MailQueue = "email_queue"

const (
	MailTypeCreateUser         = "create_user"
	MailTypeTimetableGenerated = "timetable_generated"
)

type MailMessage struct {
	Type string `json:"type"`
	To   string `json:"to"`
	Data any    `json:"data"`
}

type CreateUserMailData struct {
	FullName string `json:"fullName"`
	Username string `json:"username"`
	Password string `json:"password"`
}

type TimetableVariantSummary struct {
	Variant   string `json:"variant"`
	Fitness   int    `json:"fitness"`
	GeneCount int    `json:"geneCount"`
}

type TimetableGeneratedMailData struct {
	FullName    string                    `json:"fullName"`
	CatalogName string                    `json:"catalogName"`
	Variants    []TimetableVariantSummary `json:"variants"`
}
