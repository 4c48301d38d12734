// Package instagram implements the PlatformClient capability interface
// against the Instagram Graph API (Meta Graph v21.0).
package instagram

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"

	"creatorkit/config"
	"creatorkit/internal/domain/entity"
	domainerrors "creatorkit/internal/domain/errors"
	"creatorkit/internal/domain/service"

	"golang.org/x/sync/errgroup"
)

const (
	defaultGraphURL   = "https://graph.instagram.com/v21.0"
	defaultGraphFBURL = "https://graph.facebook.com/v21.0"

	// Long-lived tokens last about 60 days; Meta occasionally omits
	// expires_in on the exchange response.
	fallbackExpiresIn = 5184000

	recentMediaLimit = 25
	topPostsLimit    = 5
	captionMaxRunes  = 100
)

var oauthScopes = []string{
	"instagram_basic",
	"instagram_manage_insights",
	"pages_show_list",
	"pages_read_engagement",
}

// Client is a stateless Instagram Graph API client. Every method issues one
// or more outbound requests under the configured timeout; no mutable state is
// shared between calls.
type Client struct {
	appID       string
	appSecret   string
	redirectURI string

	graphURL   string
	graphFBURL string
	httpClient *http.Client
}

// NewClient is the constructor for the Instagram platform client.
func NewClient(cfg *config.Config) (service.PlatformClient, error) {
	if cfg.Instagram == nil || cfg.Instagram.AppID == "" || cfg.Instagram.AppSecret == "" {
		return nil, domainerrors.ErrUnsupportedPlatform.WrapMessage("instagram app credentials are not configured")
	}

	return &Client{
		appID:       cfg.Instagram.AppID,
		appSecret:   cfg.Instagram.AppSecret,
		redirectURI: cfg.Instagram.RedirectURI,
		graphURL:    defaultGraphURL,
		graphFBURL:  defaultGraphFBURL,
		httpClient:  &http.Client{Timeout: cfg.Sync.RequestTimeout},
	}, nil
}

// Platform identifies which platform this client serves.
func (c *Client) Platform() entity.Platform {
	return entity.PlatformInstagram
}

// AuthorizationURL builds the Meta consent-screen URL embedding the CSRF
// state token and the requested scopes.
func (c *Client) AuthorizationURL(state string) string {
	params := url.Values{}
	params.Set("client_id", c.appID)
	params.Set("redirect_uri", c.redirectURI)
	params.Set("scope", strings.Join(oauthScopes, ","))
	params.Set("response_type", "code")
	params.Set("state", state)

	return c.graphFBURL + "/dialog/oauth?" + params.Encode()
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int64  `json:"expires_in"`
}

// ExchangeCode trades an authorization code for a long-lived access token.
// Meta requires two round trips: code to short-lived token, then short-lived
// to long-lived via fb_exchange_token.
func (c *Client) ExchangeCode(ctx context.Context, code string) (*service.TokenGrant, error) {
	var shortLived tokenResponse
	if err := c.get(ctx, c.graphFBURL+"/oauth/access_token", url.Values{
		"client_id":     {c.appID},
		"client_secret": {c.appSecret},
		"redirect_uri":  {c.redirectURI},
		"code":          {code},
	}, &shortLived); err != nil {
		return nil, err
	}

	var longLived tokenResponse
	if err := c.get(ctx, c.graphFBURL+"/oauth/access_token", url.Values{
		"grant_type":        {"fb_exchange_token"},
		"client_id":         {c.appID},
		"client_secret":     {c.appSecret},
		"fb_exchange_token": {shortLived.AccessToken},
	}, &longLived); err != nil {
		return nil, err
	}

	expiresIn := longLived.ExpiresIn
	if expiresIn == 0 {
		expiresIn = fallbackExpiresIn
	}

	return &service.TokenGrant{
		AccessToken: longLived.AccessToken,
		ExpiresIn:   expiresIn,
	}, nil
}

// ResolveIdentity resolves the Instagram Business account behind an OAuth
// grant. The grant is scoped to a Facebook page, so the chain is: enumerate
// pages, read the page's linked instagram_business_account, fetch its
// username. The page access token is the one usable for data calls.
func (c *Client) ResolveIdentity(ctx context.Context, accessToken string) (*service.PlatformIdentity, error) {
	var pages struct {
		Data []struct {
			ID          string `json:"id"`
			AccessToken string `json:"access_token"`
		} `json:"data"`
	}
	if err := c.get(ctx, c.graphFBURL+"/me/accounts", url.Values{
		"access_token": {accessToken},
	}, &pages); err != nil {
		return nil, err
	}
	if len(pages.Data) == 0 {
		return nil, c.rejected(http.StatusBadRequest, "no Facebook page found for this user")
	}
	page := pages.Data[0]

	var linked struct {
		InstagramBusinessAccount *struct {
			ID string `json:"id"`
		} `json:"instagram_business_account"`
	}
	if err := c.get(ctx, c.graphFBURL+"/"+page.ID, url.Values{
		"fields":       {"instagram_business_account"},
		"access_token": {page.AccessToken},
	}, &linked); err != nil {
		return nil, err
	}
	if linked.InstagramBusinessAccount == nil {
		return nil, c.rejected(http.StatusBadRequest, "no Instagram Business account linked to the page")
	}
	igUserID := linked.InstagramBusinessAccount.ID

	var profile struct {
		Username string `json:"username"`
	}
	if err := c.get(ctx, c.graphURL+"/"+igUserID, url.Values{
		"fields":       {"username"},
		"access_token": {page.AccessToken},
	}, &profile); err != nil {
		return nil, err
	}

	return &service.PlatformIdentity{
		PlatformUserID: igUserID,
		Username:       profile.Username,
		EffectiveToken: page.AccessToken,
	}, nil
}

type igProfile struct {
	FollowersCount int    `json:"followers_count"`
	FollowsCount   int    `json:"follows_count"`
	MediaCount     int    `json:"media_count"`
	Username       string `json:"username"`
}

type igMedia struct {
	ID            string `json:"id"`
	Caption       string `json:"caption"`
	LikeCount     int    `json:"like_count"`
	CommentsCount int    `json:"comments_count"`
	Timestamp     string `json:"timestamp"`
	MediaType     string `json:"media_type"`
	Permalink     string `json:"permalink"`
}

type igInsights struct {
	Data []struct {
		Name         string `json:"name"`
		TotalValue   *struct {
			Breakdowns []struct {
				Results []struct {
					DimensionValues []string `json:"dimension_values"`
					Value           float64  `json:"value"`
				} `json:"results"`
			} `json:"breakdowns"`
		} `json:"total_value"`
	} `json:"data"`
}

// FetchInsights retrieves profile counters, recent media and audience
// insights concurrently, and computes the derived snapshot metrics. The
// insights sub-call is best effort: its failure leaves the demographics
// field absent. Profile or media failure fails the whole fetch.
func (c *Client) FetchInsights(ctx context.Context, platformUserID, accessToken string) (*entity.InsightBundle, error) {
	var (
		profile  igProfile
		media    struct {
			Data []igMedia `json:"data"`
		}
		insights *igInsights
	)

	eg, egCtx := errgroup.WithContext(ctx)

	eg.Go(func() error {
		return c.get(egCtx, c.graphURL+"/"+platformUserID, url.Values{
			"fields":       {"followers_count,follows_count,media_count,username"},
			"access_token": {accessToken},
		}, &profile)
	})

	eg.Go(func() error {
		return c.get(egCtx, c.graphURL+"/"+platformUserID+"/media", url.Values{
			"fields":       {"id,caption,like_count,comments_count,timestamp,media_type,permalink"},
			"limit":        {"25"},
			"access_token": {accessToken},
		}, &media)
	})

	eg.Go(func() error {
		var result igInsights
		if err := c.get(egCtx, c.graphURL+"/"+platformUserID+"/insights", url.Values{
			"metric":        {"follower_demographics"},
			"period":        {"lifetime"},
			"metric_type":   {"total_value"},
			"breakdown":     {"age,gender"},
			"access_token":  {accessToken},
		}, &result); err != nil {
			// Demographics need an extra permission tier; degrade.
			return nil
		}
		insights = &result

		return nil
	})

	if err := eg.Wait(); err != nil {
		return nil, err
	}

	bundle := deriveBundle(&profile, media.Data)
	bundle.Demographics = demographicsFrom(insights)

	return bundle, nil
}

// RefreshToken exchanges the current long-lived token for a fresh one.
func (c *Client) RefreshToken(ctx context.Context, currentToken string) (*service.TokenGrant, error) {
	var refreshed tokenResponse
	if err := c.get(ctx, c.graphURL+"/refresh_access_token", url.Values{
		"grant_type":   {"ig_refresh_token"},
		"access_token": {currentToken},
	}, &refreshed); err != nil {
		return nil, err
	}

	return &service.TokenGrant{
		AccessToken: refreshed.AccessToken,
		ExpiresIn:   refreshed.ExpiresIn,
	}, nil
}

// get issues one GET request and decodes the JSON answer. 4xx answers map to
// UpstreamRejected carrying the platform payload; transport errors and 5xx
// answers map to UpstreamUnavailable.
func (c *Client) get(ctx context.Context, endpoint string, params url.Values, target any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return &domainerrors.UpstreamError{
			Kind:     domainerrors.UpstreamUnavailable,
			Platform: entity.PlatformInstagram.String(),
			Err:      err,
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &domainerrors.UpstreamError{
			Kind:     domainerrors.UpstreamUnavailable,
			Platform: entity.PlatformInstagram.String(),
			Err:      err,
		}
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		kind := domainerrors.UpstreamRejected
		if resp.StatusCode >= http.StatusInternalServerError {
			kind = domainerrors.UpstreamUnavailable
		}

		return &domainerrors.UpstreamError{
			Kind:       kind,
			Platform:   entity.PlatformInstagram.String(),
			StatusCode: resp.StatusCode,
			Payload:    strings.TrimSpace(string(body)),
		}
	}

	if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
		return &domainerrors.UpstreamError{
			Kind:     domainerrors.UpstreamUnavailable,
			Platform: entity.PlatformInstagram.String(),
			Err:      err,
		}
	}

	return nil
}

func (c *Client) rejected(status int, payload string) error {
	return &domainerrors.UpstreamError{
		Kind:       domainerrors.UpstreamRejected,
		Platform:   entity.PlatformInstagram.String(),
		StatusCode: status,
		Payload:    payload,
	}
}
