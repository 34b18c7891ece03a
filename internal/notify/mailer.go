package notify

import (
	"fmt"

	"gopkg.in/gomail.v2"

	"estate-api/internal/domain"
)

// Message 一封待发邮件
type Message struct {
	To      []string
	Cc      []string
	Subject string
	HTML    string
}

type Sender interface {
	Send(m Message) error
}

// SMTPSender 进程级资源：拨号参数在启动时固定，每次发送各自建连
type SMTPSender struct {
	Host string
	Port int
	User string
	Pass string
	From string
}

func (s *SMTPSender) Send(m Message) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", s.From)
	msg.SetHeader("To", m.To...)
	if len(m.Cc) > 0 {
		msg.SetHeader("Cc", m.Cc...)
	}
	msg.SetHeader("Subject", m.Subject)
	msg.SetBody("text/html", m.HTML)

	d := gomail.NewDialer(s.Host, s.Port, s.User, s.Pass)
	return d.DialAndSend(msg)
}

// ---------- 邮件内容 ----------

// NewListingSubmitted 新房源提交 → 通知平台管理员，抄送业主
func NewListingSubmitted(l *domain.Listing, adminTo string) Message {
	html := fmt.Sprintf(`<h2>New Property Submission</h2>
<p>A new property has been submitted for listing.</p>
<ul>
<li>Title: %s</li>
<li>Type: %s</li>
<li>BHK: %s BHK</li>
<li>Bathrooms: %d</li>
<li>Area: %d sq ft</li>
<li>Price: %d</li>
<li>Location: %s</li>
<li>Status: For %s</li>
</ul>
<h3>Owner</h3>
<p>%s — %s / %s</p>`,
		l.Title, l.Type, l.BHK, l.Bathrooms, l.Area, l.Price, l.Location, l.Status,
		l.OwnerName, l.OwnerPhone, l.OwnerEmail)
	m := Message{
		To:      []string{adminTo},
		Subject: "New Property Listing Submitted",
		HTML:    html,
	}
	if l.OwnerEmail != "" {
		m.Cc = []string{l.OwnerEmail}
	}
	return m
}

// NewListingConfirmation 给业主的提交成功确认
func NewListingConfirmation(l *domain.Listing) Message {
	html := fmt.Sprintf(`<h2>Property Submitted Successfully</h2>
<p>Dear %s,</p>
<p>Your property "<strong>%s</strong>" has been successfully submitted and is now live.</p>
<p>Interested buyers and tenants will contact you directly.</p>`,
		l.OwnerName, l.Title)
	return Message{
		To:      []string{l.OwnerEmail},
		Subject: "Property Listing Submitted Successfully",
		HTML:    html,
	}
}

// NewInquiryReceived 新询盘 → 通知业主
func NewInquiryReceived(l *domain.Listing, q *domain.Inquiry) Message {
	html := fmt.Sprintf(`<h2>New Property Inquiry</h2>
<p>Dear %s,</p>
<p>You have received a new inquiry for your property "<strong>%s</strong>".</p>
<ul>
<li>Name: %s</li>
<li>Email: %s</li>
<li>Phone: %s</li>
</ul>
<blockquote>%s</blockquote>
<p>Please contact the inquirer directly to discuss further.</p>`,
		l.OwnerName, l.Title, q.Name, q.Email, q.Phone, q.Message)
	return Message{
		To:      []string{l.OwnerEmail},
		Subject: fmt.Sprintf("New Inquiry for %q", l.Title),
		HTML:    html,
	}
}
