package calendar

import (
	"context"
	"encoding/json"
	"sync"

	log "github.com/sirupsen/logrus"
	"golang.org/x/oauth2"
)

// persistingTokenSource writes refreshed tokens back to the user's profile,
// so a refresh survives beyond the current request.
type persistingTokenSource struct {
	ctx    context.Context
	userID string
	base   oauth2.TokenSource
	tokens tokenStore

	mu          sync.Mutex
	lastPersist string
}

func newPersistingTokenSource(
	ctx context.Context,
	userID string,
	current *oauth2.Token,
	base oauth2.TokenSource,
	tokens tokenStore,
) *persistingTokenSource {
	return &persistingTokenSource{
		ctx:         ctx,
		userID:      userID,
		base:        base,
		tokens:      tokens,
		lastPersist: current.AccessToken,
	}
}

func (s *persistingTokenSource) Token() (*oauth2.Token, error) {
	tok, err := s.base.Token()
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if tok.AccessToken == s.lastPersist {
		return tok, nil
	}

	data, err := json.Marshal(tok)
	if err != nil {
		log.Errorf("marshal refreshed google token for [%s]: %s", s.userID, err)
		return tok, nil
	}
	if err := s.tokens.SaveGoogleAuthCreds(s.ctx, s.userID, data); err != nil {
		log.Errorf("persist refreshed google token for [%s]: %s", s.userID, err)
		return tok, nil
	}

	log.Debugf("refreshed google token persisted for [%s]", s.userID)
	s.lastPersist = tok.AccessToken
	return tok, nil
}
