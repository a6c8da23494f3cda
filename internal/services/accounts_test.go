package services

import (
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/ecovate/internal/common"
	"github.com/dmitrijs2005/ecovate/internal/cryptox"
	"github.com/dmitrijs2005/ecovate/internal/dbx"
	"github.com/dmitrijs2005/ecovate/internal/logging"
	"github.com/dmitrijs2005/ecovate/internal/models"
	"github.com/dmitrijs2005/ecovate/internal/store"
)

// ---- helpers ----

var cheapParams = cryptox.Params{Memory: 64, Iterations: 1, Parallelism: 1, KeyLength: 16, SaltLength: 8}

func testOptions() AccountOptions {
	return AccountOptions{
		SessionSecret: []byte("test-secret"),
		SessionTTL:    time.Hour,
		HashParams:    cheapParams,
	}
}

func setupStore(t *testing.T) *store.Store {
	t.Helper()
	ctx := context.Background()
	db, err := store.InitDatabase(ctx, dbx.SQLite, filepath.Join(t.TempDir(), "ecovate.db"), logging.Discard())
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return store.New(db, dbx.SQLite, logging.Discard())
}

// fakeListener records session changes.
type fakeListener struct {
	mu        sync.Mutex
	calls     int
	last      *models.Account
	ReturnErr error
}

func (f *fakeListener) SessionChanged(_ context.Context, acc *models.Account) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.last = acc
	return f.ReturnErr
}

func newAccounts(t *testing.T, st *store.Store, l SessionListener) AccountService {
	t.Helper()
	return NewAccountService(st, testOptions(), l, logging.Discard())
}

// ---- tests ----

func TestAccounts_Scenario(t *testing.T) {
	ctx := context.Background()
	st := setupStore(t)
	l := &fakeListener{}
	svc := newAccounts(t, st, l)

	acc, err := svc.Register(ctx, "alice@example.com", []byte("pw1"), "Alice", "")
	require.NoError(t, err)
	assert.Equal(t, "Alice", acc.DisplayName)
	assert.NotEmpty(t, acc.ID)

	cur, ok := svc.Current()
	require.True(t, ok)
	assert.Equal(t, "Alice", cur.DisplayName)
	assert.Equal(t, 1, l.calls)
	require.NotNil(t, l.last)
	assert.Equal(t, acc.ID, l.last.ID)

	_, err = svc.Register(ctx, "ALICE@example.com", []byte("anything"), "Other", "")
	assert.ErrorIs(t, err, common.ErrAlreadyExists)

	_, err = svc.Login(ctx, "alice@example.com", []byte("wrong"))
	assert.ErrorIs(t, err, common.ErrInvalidCredentials)

	got, err := svc.Login(ctx, "alice@example.com", []byte("pw1"))
	require.NoError(t, err)
	assert.Equal(t, acc.ID, got.ID)
}

func TestAccounts_LoginIsCaseInsensitiveOnEmailOnly(t *testing.T) {
	ctx := context.Background()
	svc := newAccounts(t, setupStore(t), nil)

	_, err := svc.Register(ctx, "Bob@Example.com", []byte("Secret"), "Bob", "")
	require.NoError(t, err)

	_, err = svc.Login(ctx, "  BOB@example.COM ", []byte("Secret"))
	require.NoError(t, err)

	_, err = svc.Login(ctx, "bob@example.com", []byte("secret"))
	assert.ErrorIs(t, err, common.ErrInvalidCredentials)

	_, err = svc.Login(ctx, "nobody@example.com", []byte("Secret"))
	assert.ErrorIs(t, err, common.ErrInvalidCredentials)
}

func TestAccounts_RegisterValidation(t *testing.T) {
	ctx := context.Background()
	svc := newAccounts(t, setupStore(t), nil)

	tests := []struct {
		name, email, pw, display string
	}{
		{"bad email", "not-an-email", "pw", "X"},
		{"blank name", "x@example.com", "pw", "   "},
		{"empty secret", "x@example.com", "", "X"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Register(ctx, tt.email, []byte(tt.pw), tt.display, "")
			assert.ErrorIs(t, err, common.ErrInvalidAccount)
		})
	}
	_, ok := svc.Current()
	assert.False(t, ok)
}

func TestAccounts_SecretIsNotStoredInPlaintext(t *testing.T) {
	ctx := context.Background()
	st := setupStore(t)
	svc := newAccounts(t, st, nil)

	_, err := svc.Register(ctx, "carol@example.com", []byte("plain-pw"), "Carol", "")
	require.NoError(t, err)

	dump, err := st.Dump(ctx)
	require.NoError(t, err)
	for key, raw := range dump {
		assert.NotContains(t, string(raw), "plain-pw", "key %s", key)
	}

	var sess models.Session
	found, err := st.Load(ctx, store.KeySession, &sess)
	require.NoError(t, err)
	require.True(t, found)
	assert.NotContains(t, string(dump[store.KeySession]), "secretHash")
}

func TestAccounts_Logout(t *testing.T) {
	ctx := context.Background()
	st := setupStore(t)
	l := &fakeListener{}
	svc := newAccounts(t, st, l)

	_, err := svc.Register(ctx, "dan@example.com", []byte("pw"), "Dan", "")
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx))
	_, ok := svc.Current()
	assert.False(t, ok)
	assert.Nil(t, l.last)

	var sess models.Session
	found, err := st.Load(ctx, store.KeySession, &sess)
	require.NoError(t, err)
	assert.False(t, found)

	// logging out twice is fine
	require.NoError(t, svc.Logout(ctx))
}

func TestAccounts_UpdateProfileRoundTrip(t *testing.T) {
	ctx := context.Background()
	st := setupStore(t)
	svc := newAccounts(t, st, nil)

	_, err := svc.Register(ctx, "erin@example.com", []byte("pw"), "Erin", "")
	require.NoError(t, err)
	require.NoError(t, svc.UpdateProfile(ctx, "Erin B", "https://img.example.com/e.png"))

	// simulate a reload
	reloaded := newAccounts(t, st, nil)
	ok, err := reloaded.RestoreSession(ctx)
	require.NoError(t, err)
	require.True(t, ok)

	cur, ok := reloaded.Current()
	require.True(t, ok)
	assert.Equal(t, "Erin B", cur.DisplayName)
	assert.Equal(t, "https://img.example.com/e.png", cur.ProfileImage)

	// the mapping was updated too
	require.NoError(t, reloaded.Logout(ctx))
	acc, err := reloaded.Login(ctx, "erin@example.com", []byte("pw"))
	require.NoError(t, err)
	assert.Equal(t, "Erin B", acc.DisplayName)
}

func TestAccounts_UpdateProfileWithoutSessionIsNoop(t *testing.T) {
	ctx := context.Background()
	st := setupStore(t)
	svc := newAccounts(t, st, nil)

	require.NoError(t, svc.UpdateProfile(ctx, "Ghost", ""))

	dump, err := st.Dump(ctx)
	require.NoError(t, err)
	assert.Empty(t, dump)
}

func TestAccounts_RestoreSession(t *testing.T) {
	ctx := context.Background()

	t.Run("nothing persisted", func(t *testing.T) {
		svc := newAccounts(t, setupStore(t), nil)
		ok, err := svc.RestoreSession(ctx)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("corrupt session is dropped", func(t *testing.T) {
		st := setupStore(t)
		require.NoError(t, st.PutRaw(ctx, store.KeySession, []byte(`{"account":{}}`)))

		svc := newAccounts(t, st, nil)
		ok, err := svc.RestoreSession(ctx)
		require.NoError(t, err)
		assert.False(t, ok)

		dump, err := st.Dump(ctx)
		require.NoError(t, err)
		assert.NotContains(t, dump, store.KeySession)
	})

	t.Run("token signed with another secret", func(t *testing.T) {
		st := setupStore(t)
		_, err := newAccounts(t, st, nil).Register(ctx, "fay@example.com", []byte("pw"), "Fay", "")
		require.NoError(t, err)

		opts := testOptions()
		opts.SessionSecret = []byte("rotated")
		svc := NewAccountService(st, opts, nil, logging.Discard())

		ok, err := svc.RestoreSession(ctx)
		require.NoError(t, err)
		assert.False(t, ok)
		_, active := svc.Current()
		assert.False(t, active)
	})

	t.Run("account removed from mapping", func(t *testing.T) {
		st := setupStore(t)
		_, err := newAccounts(t, st, nil).Register(ctx, "gil@example.com", []byte("pw"), "Gil", "")
		require.NoError(t, err)
		require.NoError(t, st.Remove(ctx, store.KeyAccounts))

		svc := newAccounts(t, st, nil)
		ok, err := svc.RestoreSession(ctx)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("account is resolved by token subject", func(t *testing.T) {
		st := setupStore(t)
		acc, err := newAccounts(t, st, nil).Register(ctx, "ida@example.com", []byte("pw"), "Ida", "")
		require.NoError(t, err)

		var sess models.Session
		found, err := st.Load(ctx, store.KeySession, &sess)
		require.NoError(t, err)
		require.True(t, found)
		sess.Account.DisplayName = "Stale"
		require.NoError(t, st.Save(ctx, store.KeySession, sess))

		svc := newAccounts(t, st, nil)
		ok, err := svc.RestoreSession(ctx)
		require.NoError(t, err)
		require.True(t, ok)
		cur, _ := svc.Current()
		assert.Equal(t, acc.ID, cur.ID)
		assert.Equal(t, "Ida", cur.DisplayName)
	})

	t.Run("valid session notifies listener", func(t *testing.T) {
		st := setupStore(t)
		acc, err := newAccounts(t, st, nil).Register(ctx, "hal@example.com", []byte("pw"), "Hal", "")
		require.NoError(t, err)

		l := &fakeListener{}
		svc := newAccounts(t, st, l)
		ok, err := svc.RestoreSession(ctx)
		require.NoError(t, err)
		assert.True(t, ok)
		require.NotNil(t, l.last)
		assert.Equal(t, acc.ID, l.last.ID)
	})
}

func TestAccounts_LoginThrottle(t *testing.T) {
	ctx := context.Background()
	opts := testOptions()
	opts.LoginAttemptsPerMinute = 2
	svc := NewAccountService(setupStore(t), opts, nil, logging.Discard())

	_, err := svc.Register(ctx, "ivy@example.com", []byte("pw"), "Ivy", "")
	require.NoError(t, err)

	_, err = svc.Login(ctx, "ivy@example.com", []byte("x"))
	assert.ErrorIs(t, err, common.ErrInvalidCredentials)
	_, err = svc.Login(ctx, "IVY@example.com", []byte("y"))
	assert.ErrorIs(t, err, common.ErrInvalidCredentials)

	_, err = svc.Login(ctx, "ivy@example.com", []byte("pw"))
	assert.ErrorIs(t, err, common.ErrTooManyAttempts)

	// other emails have their own bucket
	_, err = svc.Login(ctx, "other@example.com", []byte("pw"))
	assert.ErrorIs(t, err, common.ErrInvalidCredentials)
}

func TestAccounts_ListenerErrorDoesNotFailLogin(t *testing.T) {
	ctx := context.Background()
	l := &fakeListener{ReturnErr: assert.AnError}
	svc := newAccounts(t, setupStore(t), l)

	_, err := svc.Register(ctx, "jay@example.com", []byte("pw"), "Jay", "")
	require.NoError(t, err)
	_, ok := svc.Current()
	assert.True(t, ok)
}

func TestAccounts_CorruptCredentialIsRepairedNotFatal(t *testing.T) {
	ctx := context.Background()
	st := setupStore(t)
	raw := `{"kay@example.com":{"id":"k-1","email":"kay@example.com","displayName":"Kay",` +
		`"secretHash":"$argon2id$v=19$m=64,t=0,p=1$c2FsdA$aGFzaA"}}`
	require.NoError(t, st.PutRaw(ctx, store.KeyAccounts, []byte(raw)))

	svc := newAccounts(t, st, nil)
	require.NotPanics(t, func() {
		_, err := svc.Login(ctx, "kay@example.com", []byte("pw"))
		assert.ErrorIs(t, err, common.ErrInvalidCredentials)
	})

	dump, err := st.Dump(ctx)
	require.NoError(t, err)
	assert.NotContains(t, dump, store.KeyAccounts)

	// the email can be registered again afterwards
	_, err = svc.Register(ctx, "kay@example.com", []byte("pw"), "Kay", "")
	require.NoError(t, err)
}
