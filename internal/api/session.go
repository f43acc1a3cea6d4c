package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
)

type sessionFile struct {
	BaseURL string         `json:"base_url"`
	Cookies []*http.Cookie `json:"cookies"`
}

func (c *Client) jarURL() (*url.URL, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid backend url %q: %w", c.baseURL, err)
	}
	return u, nil
}

// SaveSession writes the backend session cookies to path so a later process can reuse them.
func (c *Client) SaveSession(path string) error {
	jar := c.rest.GetClient().Jar
	if jar == nil || path == "" {
		return nil
	}
	u, err := c.jarURL()
	if err != nil {
		return err
	}
	data, err := json.MarshalIndent(sessionFile{BaseURL: c.baseURL, Cookies: jar.Cookies(u)}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("failed to create session directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write session: %w", err)
	}
	return nil
}

// LoadSession restores cookies saved by SaveSession. A missing file or a
// session saved for another backend is ignored.
func (c *Client) LoadSession(path string) error {
	jar := c.rest.GetClient().Jar
	if jar == nil || path == "" {
		return nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read session: %w", err)
	}
	var s sessionFile
	if err := json.Unmarshal(raw, &s); err != nil {
		return fmt.Errorf("failed to decode session: %w", err)
	}
	if s.BaseURL != c.baseURL {
		return nil
	}
	u, err := c.jarURL()
	if err != nil {
		return err
	}
	jar.SetCookies(u, s.Cookies)
	return nil
}

// ClearSession removes the saved session file.
func (c *Client) ClearSession(path string) error {
	if path == "" {
		return nil
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove session: %w", err)
	}
	return nil
}
