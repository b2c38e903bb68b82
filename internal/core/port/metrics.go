package port

import "github.com/Wyydra/calling/internal/core/domain"

type Metrics interface {
	CredentialsFetched(ok bool)
	RoomProvisioned(ok bool)
	Resolved(kind domain.TargetKind)
	JoinFailed(reason string)
	PageTransition(from, to domain.PageState)
}
