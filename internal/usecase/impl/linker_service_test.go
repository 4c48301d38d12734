package impl

import (
	"context"
	"strings"
	"testing"

	"creatorkit/internal/domain/entity"
	domainerrors "creatorkit/internal/domain/errors"
	"creatorkit/internal/domain/service"
	"creatorkit/internal/errors"
	"creatorkit/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLinkerForTest(accountRepo *stubAccountRepo, client service.PlatformClient) usecase.LinkerUsecase {
	return NewLinkerService(LinkerServiceParams{
		Registry:    newStubRegistry(client),
		Vault:       &stubVault{},
		AccountRepo: accountRepo,
		Logger:      testLogger(),
	})
}

func happyInstagramClient() *stubPlatformClient {
	return &stubPlatformClient{
		platform: entity.PlatformInstagram,
		exchangeFn: func(_ context.Context, code string) (*service.TokenGrant, error) {
			return &service.TokenGrant{AccessToken: "granted-" + code, ExpiresIn: 5184000}, nil
		},
		identityFn: func(_ context.Context, _ string) (*service.PlatformIdentity, error) {
			return &service.PlatformIdentity{
				PlatformUserID: "ig-77",
				Username:       "creator",
				EffectiveToken: "page-token",
			}, nil
		},
	}
}

func TestLinker_Initiate(t *testing.T) {
	ownerID := uuid.New()
	repo := newStubAccountRepo()

	redirectURL, state, err := newLinkerForTest(repo, happyInstagramClient()).
		Initiate(context.Background(), ownerID, entity.PlatformInstagram)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(state, ownerID.String()+":"))
	assert.Contains(t, redirectURL, "state="+state)
}

func TestLinker_Initiate_UnknownPlatform(t *testing.T) {
	_, _, err := newLinkerForTest(newStubAccountRepo(), happyInstagramClient()).
		Initiate(context.Background(), uuid.New(), entity.PlatformTikTok)

	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrUnsupportedPlatform))
}

func TestLinker_Complete_StoresEncryptedEffectiveToken(t *testing.T) {
	ownerID := uuid.New()
	repo := newStubAccountRepo()
	state := newStateToken(ownerID)

	account, err := newLinkerForTest(repo, happyInstagramClient()).Complete(context.Background(), usecase.CompleteLinkInput{
		Platform:    entity.PlatformInstagram,
		Code:        "auth-code",
		State:       state,
		CookieState: state,
	})
	require.NoError(t, err)

	assert.Equal(t, ownerID, account.OwnerID)
	assert.Equal(t, "ig-77", account.PlatformUserID)
	assert.Equal(t, "creator", account.PlatformUsername)
	// The effective (page) token is stored, as ciphertext, not the grant.
	assert.Equal(t, "enc:page-token", account.AccessToken)
	assert.True(t, account.IsConnected)
	require.NotNil(t, account.TokenExpiresAt)
	assert.Equal(t, 1, repo.upsertCalls)
}

func TestLinker_Complete_StateMismatchLeavesRepoUntouched(t *testing.T) {
	ownerID := uuid.New()
	repo := newStubAccountRepo()

	_, err := newLinkerForTest(repo, happyInstagramClient()).Complete(context.Background(), usecase.CompleteLinkInput{
		Platform:    entity.PlatformInstagram,
		Code:        "auth-code",
		State:       newStateToken(ownerID),
		CookieState: newStateToken(ownerID), // Fresh nonce, so it never matches.
	})

	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrInvalidOAuthState))
	assert.Equal(t, 0, repo.upsertCalls)
}

func TestLinker_Complete_MissingCookieState(t *testing.T) {
	state := newStateToken(uuid.New())

	_, err := newLinkerForTest(newStubAccountRepo(), happyInstagramClient()).Complete(context.Background(), usecase.CompleteLinkInput{
		Platform: entity.PlatformInstagram,
		Code:     "auth-code",
		State:    state,
	})

	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrInvalidOAuthState))
}

func TestLinker_Complete_ProviderErrorIsAuthorizationDenied(t *testing.T) {
	repo := newStubAccountRepo()
	state := newStateToken(uuid.New())

	_, err := newLinkerForTest(repo, happyInstagramClient()).Complete(context.Background(), usecase.CompleteLinkInput{
		Platform:      entity.PlatformInstagram,
		ProviderError: "access_denied",
		State:         state,
		CookieState:   state,
	})

	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrAuthorizationDenied))
	assert.Equal(t, 0, repo.upsertCalls)
}

func TestLinker_Complete_ExchangeFailureLeavesNoRecord(t *testing.T) {
	client := happyInstagramClient()
	client.exchangeFn = func(_ context.Context, _ string) (*service.TokenGrant, error) {
		return nil, &domainerrors.UpstreamError{Kind: domainerrors.UpstreamRejected, Platform: "instagram"}
	}
	repo := newStubAccountRepo()
	state := newStateToken(uuid.New())

	_, err := newLinkerForTest(repo, client).Complete(context.Background(), usecase.CompleteLinkInput{
		Platform:    entity.PlatformInstagram,
		Code:        "auth-code",
		State:       state,
		CookieState: state,
	})

	require.Error(t, err)
	assert.True(t, domainerrors.IsUpstreamRejected(err))
	assert.Equal(t, 0, repo.upsertCalls)
}

func TestLinker_Complete_RelinkKeepsRowIdentity(t *testing.T) {
	ownerID := uuid.New()
	existing := &entity.SocialAccount{
		OwnerID:     ownerID,
		Platform:    entity.PlatformInstagram,
		IsConnected: false,
	}
	repo := newStubAccountRepo(existing)
	state := newStateToken(ownerID)

	account, err := newLinkerForTest(repo, happyInstagramClient()).Complete(context.Background(), usecase.CompleteLinkInput{
		Platform:    entity.PlatformInstagram,
		Code:        "auth-code",
		State:       state,
		CookieState: state,
	})
	require.NoError(t, err)

	assert.Equal(t, existing.ID, account.ID)
	assert.True(t, account.IsConnected)
}

func TestLinker_Disconnect(t *testing.T) {
	ownerID := uuid.New()
	repo := newStubAccountRepo(&entity.SocialAccount{
		OwnerID:     ownerID,
		Platform:    entity.PlatformInstagram,
		IsConnected: true,
	})
	linker := newLinkerForTest(repo, happyInstagramClient())

	require.NoError(t, linker.Disconnect(context.Background(), ownerID, entity.PlatformInstagram))

	err := linker.Disconnect(context.Background(), ownerID, entity.PlatformInstagram)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrAccountNotFound))
}

func TestStateToken_RoundTrip(t *testing.T) {
	ownerID := uuid.New()

	parsed, err := parseStateToken(newStateToken(ownerID))
	require.NoError(t, err)
	assert.Equal(t, ownerID, parsed)
}

func TestParseStateToken_Malformed(t *testing.T) {
	cases := []string{
		"",
		"no-separator",
		"not-a-uuid:nonce",
		uuid.NewString(), // Missing nonce segment.
		uuid.NewString() + ":",
	}
	for _, raw := range cases {
		_, err := parseStateToken(raw)
		assert.Error(t, err, "state %q should not parse", raw)
	}
}
