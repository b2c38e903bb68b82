package port

import (
	"context"

	"github.com/Wyydra/calling/internal/core/domain"
)

type CredentialIssuer interface {
	IssueCredentials(ctx context.Context) (domain.Credentials, error)
}
