package mfaflow

import "strings"

// MfaRedirectPath is where a gated navigation gets sent when the
// session still needs to pass a step-up challenge.
const MfaRedirectPath = "/mfa-verify"

// defaultAllowedPathPrefixes lists destinations reachable without a
// step-up: the challenge and setup pages themselves, the entry pages,
// and the public privacy-guide content.
var defaultAllowedPathPrefixes = []string{
	"/mfa-verify",
	"/mfa-setup",
	"/login",
	"/signup",
	"/platforms",
	"/privacy",
}

type GateOpts struct {
	Provider Provider

	// AllowedPathPrefixes overrides the default allow-list when
	// non-empty
	AllowedPathPrefixes []string

	// OnError receives level lookup failures before the gate fails
	// open, callers typically log them
	OnError func(err error)
}

// Gate decides whether a navigation may proceed given the session's
// current authentication level. The level is fetched from the provider
// on every Check so a challenge passed elsewhere takes effect on the
// next navigation. A session that has factors enrolled but has not yet
// answered a challenge gets redirected to the challenge page; anything
// on the allow-list passes untouched. A failed level lookup fails open
// since the controller re-checks the level on every protected call
// anyway.
type Gate struct {
	provider Provider
	allowed  []string
	onError  func(err error)
}

func NewGate(opts GateOpts) *Gate {
	allowed := opts.AllowedPathPrefixes
	if len(allowed) == 0 {
		allowed = defaultAllowedPathPrefixes
	}
	return &Gate{
		provider: opts.Provider,
		allowed:  allowed,
		onError:  opts.OnError,
	}
}

type GateDecision struct {
	IsAllowed  bool
	RedirectTo string
}

// Check evaluates a navigation to the given path.
func (g *Gate) Check(path string) GateDecision {
	if g.isAllowedPath(path) {
		return GateDecision{IsAllowed: true}
	}
	aal, err := g.provider.GetAal()
	if err != nil {
		if g.onError != nil {
			g.onError(err)
		}
		return GateDecision{IsAllowed: true}
	}
	if aal.NextLevel == AalMultiFactor && aal.CurrentLevel != AalMultiFactor {
		return GateDecision{
			IsAllowed:  false,
			RedirectTo: MfaRedirectPath,
		}
	}
	return GateDecision{IsAllowed: true}
}

func (g *Gate) isAllowedPath(path string) bool {
	if path == "/" || path == "" {
		return true
	}
	for _, prefix := range g.allowed {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}
