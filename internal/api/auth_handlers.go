// Copyright 2026 The QuickFactChecker Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package api

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"github.com/quickfactchecker/quickfactchecker/internal/auth"
)

// sessionCookieMaxAge is one week, matching the front end's expectation
// of a persistent login.
const sessionCookieMaxAge = 7 * 24 * 60 * 60

// handleLogin redirects the user to GitHub's authorization page.
func (s *Server) handleLogin(c *gin.Context) {
	if !s.github.Enabled() {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": errLoginDisabled})
		return
	}
	url, _ := s.github.AuthURL()
	c.Redirect(http.StatusFound, url)
}

// handleCallback completes the OAuth flow: it validates the state,
// exchanges the code, fetches the user profile, and issues a session
// cookie.
func (s *Server) handleCallback(c *gin.Context) {
	if !s.github.Enabled() {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": errLoginDisabled})
		return
	}
	if !s.github.ConsumeState(c.Query("state")) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid OAuth state"})
		return
	}
	code := c.Query("code")
	if code == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing OAuth code"})
		return
	}

	token, err := s.github.Exchange(c.Request.Context(), code)
	if err != nil {
		log.WithField("request_id", requestID(c)).Warnf("OAuth exchange failed: %v", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "GitHub login failed"})
		return
	}

	user, err := s.github.FetchUser(c.Request.Context(), token)
	if err != nil {
		log.WithField("request_id", requestID(c)).Warnf("OAuth user fetch failed: %v", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "GitHub login failed"})
		return
	}

	id := s.github.Sessions().Create(user)
	c.SetCookie(auth.SessionCookieName, s.signSession(id), sessionCookieMaxAge, "/", "", false, true)
	c.Redirect(http.StatusFound, "/")
}

// handleMe reports the logged-in user.
func (s *Server) handleMe(c *gin.Context) {
	user, _, ok := s.currentSession(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": errNotLoggedIn})
		return
	}
	c.JSON(http.StatusOK, user)
}

// handleLogout drops the session and clears the cookie.
func (s *Server) handleLogout(c *gin.Context) {
	if _, id, ok := s.currentSession(c); ok {
		s.github.Sessions().Delete(id)
	}
	c.SetCookie(auth.SessionCookieName, "", -1, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}

// currentSession resolves the request's session cookie into a user.
func (s *Server) currentSession(c *gin.Context) (*auth.User, string, bool) {
	value, err := c.Cookie(auth.SessionCookieName)
	if err != nil {
		return nil, "", false
	}
	id, ok := s.verifySession(value)
	if !ok {
		return nil, "", false
	}
	user, ok := s.github.Sessions().Get(id)
	if !ok {
		return nil, "", false
	}
	return user, id, true
}

// signSession binds the session id to the configured secret. Without a
// secret the id travels unsigned, which is acceptable for local
// development only.
func (s *Server) signSession(id string) string {
	if s.cfg.SessionSecret == "" {
		return id
	}
	mac := hmac.New(sha256.New, []byte(s.cfg.SessionSecret))
	mac.Write([]byte(id))
	return id + "." + hex.EncodeToString(mac.Sum(nil))
}

// verifySession validates a cookie value and returns the session id.
func (s *Server) verifySession(value string) (string, bool) {
	if s.cfg.SessionSecret == "" {
		return value, value != ""
	}
	id, sig, found := strings.Cut(value, ".")
	if !found || id == "" {
		return "", false
	}
	mac := hmac.New(sha256.New, []byte(s.cfg.SessionSecret))
	mac.Write([]byte(id))
	expected := hex.EncodeToString(mac.Sum(nil))
	if !hmac.Equal([]byte(sig), []byte(expected)) {
		return "", false
	}
	return id, true
}
