package domain

import "fmt"

const (
	TopicAdmin     = "rol_admin"
	TopicReportero = "rol_reportero"

	ChannelNoticias = "tvc_noticias_high"
	ChannelCitas    = "tvc_citas_high"
)

func TopicForReportero(id int64) string {
	return fmt.Sprintf("reportero_%d", id)
}

func TopicForRole(role Role) string {
	if role == RoleAdmin {
		return TopicAdmin
	}
	return TopicReportero
}

// PushMessage targets exactly one of Topic or Token.
type PushMessage struct {
	ID       string            `json:"id"`
	Topic    string            `json:"topic,omitempty"`
	Token    string            `json:"token,omitempty"`
	Title    string            `json:"title"`
	Body     string            `json:"body"`
	Data     map[string]string `json:"data,omitempty"`
	Channel  string            `json:"channel,omitempty"`
	Attempts int               `json:"attempts"`
}

func (m PushMessage) Target() string {
	if m.Topic != "" {
		return "topic:" + m.Topic
	}
	return "token"
}

// PushResult is the raw outcome of one gateway call. Err holds transport or
// credential failures; StatusCode is zero when no response was received.
type PushResult struct {
	StatusCode int    `json:"code"`
	Body       string `json:"resp"`
	Err        string `json:"err,omitempty"`
}

func (r PushResult) OK() bool {
	return r.Err == "" && r.StatusCode >= 200 && r.StatusCode < 300
}

// Retryable reports failures worth another attempt: no response, throttling
// or a server side error.
func (r PushResult) Retryable() bool {
	if r.OK() {
		return false
	}
	return r.StatusCode == 0 || r.StatusCode == 429 || r.StatusCode >= 500
}
