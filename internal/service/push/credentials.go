package push

import (
	"context"
	"errors"
	"fmt"
	"os"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

const messagingScope = "https://www.googleapis.com/auth/firebase.messaging"

var ErrNoProjectID = errors.New("project_id not found in service account")

// CredentialSource yields a bearer token for the messaging API and the
// project the messages are sent under.
type CredentialSource interface {
	AccessToken(ctx context.Context) (string, error)
	ProjectID() string
}

type serviceAccount struct {
	tokens    oauth2.TokenSource
	projectID string
}

// NewServiceAccountCredentials reads a service account JSON file. A non-empty
// projectID overrides the project_id found in the file.
func NewServiceAccountCredentials(ctx context.Context, path, projectID string) (CredentialSource, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read service account %s: %w", path, err)
	}

	creds, err := google.CredentialsFromJSON(ctx, raw, messagingScope)
	if err != nil {
		return nil, fmt.Errorf("failed to parse service account: %w", err)
	}

	if projectID == "" {
		projectID = creds.ProjectID
	}
	if projectID == "" {
		return nil, ErrNoProjectID
	}

	return &serviceAccount{
		tokens:    oauth2.ReuseTokenSource(nil, creds.TokenSource),
		projectID: projectID,
	}, nil
}

func (s *serviceAccount) AccessToken(_ context.Context) (string, error) {
	token, err := s.tokens.Token()
	if err != nil {
		return "", fmt.Errorf("failed to obtain access token: %w", err)
	}
	return token.AccessToken, nil
}

func (s *serviceAccount) ProjectID() string {
	return s.projectID
}
