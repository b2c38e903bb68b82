package domain

type ViewKind string

const (
	ViewUnsupported ViewKind = "unsupported"
	ViewHome        ViewKind = "home"
	ViewError       ViewKind = "error"
	ViewLoading     ViewKind = "loading"
	ViewCall        ViewKind = "call"
)

// Handoff is everything the calling SDK needs to take over the session.
type Handoff struct {
	Token       string
	User        Identity
	DisplayName string
	Target      CallTarget
}

type View struct {
	Kind                ViewKind
	Title               string
	JoiningExistingCall bool
	Handoff             *Handoff
}

// ViewFor picks the screen for a session. The platform check wins over any
// page state.
func ViewFor(snap SessionSnapshot, hints URLHints, supported bool, appTitle string) View {
	if !supported {
		return View{Kind: ViewUnsupported, Title: appTitle}
	}
	switch snap.Page {
	case PageHome:
		return View{
			Kind:                ViewHome,
			Title:               "home - " + appTitle,
			JoiningExistingCall: hints.JoiningExistingCall(),
		}
	case PageCall:
		if snap.CredentialsFailed {
			return View{Kind: ViewError, Title: "error - " + appTitle}
		}
		if snap.Credentials == nil || !snap.Credentials.Valid() || snap.DisplayName == "" || snap.Target == nil {
			return View{Kind: ViewLoading, Title: "credentials - " + appTitle}
		}
		return View{
			Kind:  ViewCall,
			Title: appTitle,
			Handoff: &Handoff{
				Token:       snap.Credentials.Token,
				User:        snap.Credentials.User,
				DisplayName: snap.DisplayName,
				Target:      snap.Target,
			},
		}
	default:
		return View{Kind: ViewError, Title: "error - " + appTitle}
	}
}
