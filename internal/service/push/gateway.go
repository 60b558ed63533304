package push

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"firebase.google.com/go/v4/messaging"
	"github.com/sirupsen/logrus"

	"seguimiento-noticias/internal/domain"
	"seguimiento-noticias/internal/pkg/logger"
)

const maxResponseBody = 64 << 10

// Gateway delivers a single push message. Send never returns an error or
// panics: every failure is reported inside the result.
type Gateway interface {
	Send(ctx context.Context, msg domain.PushMessage) domain.PushResult
}

type fcmGateway struct {
	creds    CredentialSource
	endpoint string
	client   *http.Client
	log      *logrus.Entry
}

// NewGateway builds an HTTP v1 messaging gateway. creds may be nil, in which
// case every send reports a credential failure.
func NewGateway(creds CredentialSource, endpoint string, client *http.Client) Gateway {
	if client == nil {
		client = &http.Client{Timeout: 20 * time.Second}
	}
	return &fcmGateway{
		creds:    creds,
		endpoint: strings.TrimRight(endpoint, "/"),
		client:   client,
		log:      logger.WithComponent("push"),
	}
}

type sendRequest struct {
	Message *messaging.Message `json:"message"`
}

// BuildMessage converts a domain message into the messaging API shape.
// Android gets high priority on the message channel; iOS gets an immediate
// alert with the default sound.
func BuildMessage(msg domain.PushMessage) *messaging.Message {
	channel := msg.Channel
	if channel == "" {
		channel = domain.ChannelNoticias
	}

	return &messaging.Message{
		Topic: msg.Topic,
		Token: msg.Token,
		Notification: &messaging.Notification{
			Title: msg.Title,
			Body:  msg.Body,
		},
		Data: msg.Data,
		Android: &messaging.AndroidConfig{
			Priority: "high",
			Notification: &messaging.AndroidNotification{
				ChannelID: channel,
				Sound:     "default",
			},
		},
		APNS: &messaging.APNSConfig{
			Headers: map[string]string{"apns-priority": "10"},
			Payload: &messaging.APNSPayload{
				Aps: &messaging.Aps{Sound: "default"},
			},
		},
	}
}

func (g *fcmGateway) Send(ctx context.Context, msg domain.PushMessage) (result domain.PushResult) {
	defer func() {
		if r := recover(); r != nil {
			result = domain.PushResult{Err: fmt.Sprintf("panic: %v", r)}
		}
	}()

	if msg.Topic == "" && msg.Token == "" {
		return domain.PushResult{Err: "message has no topic or token"}
	}
	if g.creds == nil {
		return domain.PushResult{Err: "push credentials unavailable"}
	}

	token, err := g.creds.AccessToken(ctx)
	if err != nil {
		return domain.PushResult{Err: err.Error()}
	}

	payload, err := json.Marshal(sendRequest{Message: BuildMessage(msg)})
	if err != nil {
		return domain.PushResult{Err: fmt.Sprintf("failed to encode message: %v", err)}
	}

	url := fmt.Sprintf("%s/v1/projects/%s/messages:send", g.endpoint, g.creds.ProjectID())
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return domain.PushResult{Err: err.Error()}
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json; charset=UTF-8")

	resp, err := g.client.Do(req)
	if err != nil {
		return domain.PushResult{Err: err.Error()}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBody))
	result = domain.PushResult{StatusCode: resp.StatusCode, Body: string(body)}
	if err != nil {
		result.Err = err.Error()
	}

	g.log.WithFields(logrus.Fields{
		"target": msg.Target(),
		"status": resp.StatusCode,
	}).Debug("push sent")

	return result
}
