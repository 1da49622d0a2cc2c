package client

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

const demoSessionTTL = 24 * time.Hour

// Login authenticates and stores the token and profile. In frontend mode any
// credentials open a demo session.
func (c *Client) Login(ctx context.Context, username, password string) (*Session, error) {
	if username == "" || password == "" {
		return nil, errors.New("username and password are required")
	}

	var sess *Session
	if c.Mode() == ModeFrontend {
		sess = c.demoSession()
	} else {
		resp, err := c.fetchRemote(ctx, "/api/auth/login", RequestOptions{
			Method: http.MethodPost,
			Body:   map[string]string{"username": username, "password": password},
		})
		switch {
		case err == nil:
			sess = &Session{}
			if err := resp.Decode(sess); err != nil {
				return nil, err
			}
		case IsNetworkError(err) && c.degrade(ctx, err):
			sess = c.demoSession()
		default:
			return nil, err
		}
	}

	st, err := c.store.Load()
	if err != nil {
		return nil, err
	}
	st.Token = sess.Token
	st.User = sess.User
	if err := c.store.Save(st); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}
	c.cache.clear()
	return sess, nil
}

func (c *Client) demoSession() *Session {
	user := DemoUser
	return &Session{Token: "demo", ExpiresAt: c.now().Add(demoSessionTTL), User: &user}
}

// Logout revokes the session on the API when reachable and always forgets it
// locally.
func (c *Client) Logout(ctx context.Context) error {
	st, err := c.store.Load()
	if err != nil {
		return err
	}
	if st.Token != "" && c.Mode() != ModeFrontend {
		_, err := c.fetchRemote(ctx, "/api/auth/logout", RequestOptions{Method: http.MethodPost})
		if err != nil && !IsUnauthorized(err) {
			c.logg.Warn(c.logg.WithField(ctx, "error", err.Error()), "remote logout failed, clearing local session")
		}
	}
	st.Token = ""
	st.User = nil
	c.cache.clear()
	return c.store.Save(st)
}

// Me returns the signed-in user.
func (c *Client) Me(ctx context.Context) (*User, Source, error) {
	var user User
	src, err := c.get(ctx, EndpointMe, nil, &user)
	if err != nil {
		return nil, "", err
	}
	return &user, src, nil
}

func (c *Client) Dashboard(ctx context.Context) (*DashboardSummary, Source, error) {
	var summary DashboardSummary
	src, err := c.get(ctx, EndpointDashboard, nil, &summary)
	if err != nil {
		return nil, "", err
	}
	return &summary, src, nil
}

// Products lists active products, or only those at or under their minimum
// stock when lowStock is set.
func (c *Client) Products(ctx context.Context, lowStock bool, limit int) ([]Product, Source, error) {
	endpoint := EndpointProducts
	var query url.Values
	if lowStock {
		endpoint = EndpointLowStock
	} else if limit > 0 {
		query = url.Values{"limit": []string{strconv.Itoa(limit)}}
	}
	var products []Product
	src, err := c.get(ctx, endpoint, query, &products)
	if err != nil {
		return nil, "", err
	}
	return products, src, nil
}

func (c *Client) get(ctx context.Context, endpoint Endpoint, query url.Values, out any) (Source, error) {
	resp, err := c.FetchWithCache(ctx, endpoint, RequestOptions{Query: query})
	if err != nil {
		return "", err
	}
	if err := resp.Decode(out); err != nil {
		return "", err
	}
	return resp.Source, nil
}
