package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oxysheet/oxysheet-cli/internal/core/domain"
)

// fakeSource returns canned samples and can simulate a mid-request token
// rotation by mutating the credentials it is handed.
type fakeSource struct {
	samples []domain.SpO2Sample
	err     error
	rotate  bool

	gotStart, gotEnd time.Time
	calls            int
}

func (f *fakeSource) SpO2Range(_ context.Context, creds *domain.Credentials, start, end time.Time) ([]domain.SpO2Sample, error) {
	f.calls++
	f.gotStart, f.gotEnd = start, end
	if f.rotate {
		creds.SetTokens("rotated-access", "rotated-refresh")
	}
	return f.samples, f.err
}

type fakeCredsStore struct {
	creds   *domain.Credentials
	loadErr error
	saveErr error

	saved *domain.Credentials
}

func (f *fakeCredsStore) Load(_ context.Context) (*domain.Credentials, error) {
	if f.loadErr != nil {
		return nil, f.loadErr
	}
	return f.creds, nil
}

func (f *fakeCredsStore) Save(_ context.Context, creds *domain.Credentials) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	copied := *creds
	f.saved = &copied
	return nil
}

func (f *fakeCredsStore) Exists() bool { return f.creds != nil }

type fakeSheet struct {
	err      error
	appended []domain.SpO2Sample
	calls    int
}

func (f *fakeSheet) Append(_ context.Context, samples []domain.SpO2Sample) error {
	f.calls++
	if f.err != nil {
		return f.err
	}
	f.appended = append(f.appended, samples...)
	return nil
}

func testRange(t *testing.T) (time.Time, time.Time) {
	t.Helper()
	start, err := time.Parse("2006-01-02", "2024-01-01")
	require.NoError(t, err)
	end, err := time.Parse("2006-01-02", "2024-01-31")
	require.NoError(t, err)
	return start, end
}

func TestExport_AppendsSamples(t *testing.T) {
	samples := []domain.SpO2Sample{
		{Date: "2024-01-01", Avg: 94.2, Min: 89.0, Max: 98.1},
		{Date: "2024-01-02", Avg: 95.0, Min: 90.5, Max: 98.9},
	}
	source := &fakeSource{samples: samples}
	store := &fakeCredsStore{creds: &domain.Credentials{ClientID: "A", ClientSecret: "B"}}
	sheet := &fakeSheet{}
	svc := NewExportService(source, store, sheet)
	start, end := testRange(t)

	n, err := svc.Export(context.Background(), start, end)

	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, samples, sheet.appended)
	assert.Equal(t, start, source.gotStart)
	assert.Equal(t, end, source.gotEnd)
}

func TestExport_PersistsRotatedCredentials(t *testing.T) {
	source := &fakeSource{rotate: true, samples: []domain.SpO2Sample{{Date: "2024-01-01"}}}
	store := &fakeCredsStore{creds: &domain.Credentials{
		ClientID: "A", ClientSecret: "B", AccessToken: "old", RefreshToken: "old-r",
	}}
	svc := NewExportService(source, store, &fakeSheet{})
	start, end := testRange(t)

	_, err := svc.Export(context.Background(), start, end)

	require.NoError(t, err)
	require.NotNil(t, store.saved)
	assert.Equal(t, "rotated-access", store.saved.AccessToken)
	assert.Equal(t, "rotated-refresh", store.saved.RefreshToken)
}

func TestExport_SavesCredentialsEvenWhenFetchFails(t *testing.T) {
	// A refresh can rotate the single-use refresh token and still be
	// followed by a failed retry; the rotated pair must not be lost.
	fetchErr := &domain.CredentialsError{Reason: "retry after refresh failed"}
	source := &fakeSource{rotate: true, err: fetchErr}
	store := &fakeCredsStore{creds: &domain.Credentials{ClientID: "A", ClientSecret: "B", RefreshToken: "old-r"}}
	sheet := &fakeSheet{}
	svc := NewExportService(source, store, sheet)
	start, end := testRange(t)

	_, err := svc.Export(context.Background(), start, end)

	require.Error(t, err)
	assert.True(t, domain.IsCredentialsError(err))
	require.NotNil(t, store.saved)
	assert.Equal(t, "rotated-refresh", store.saved.RefreshToken)
	assert.Equal(t, 0, sheet.calls, "nothing appended on fetch failure")
}

func TestExport_NoSamples(t *testing.T) {
	sheet := &fakeSheet{}
	svc := NewExportService(
		&fakeSource{},
		&fakeCredsStore{creds: &domain.Credentials{ClientID: "A", ClientSecret: "B"}},
		sheet,
	)
	start, end := testRange(t)

	n, err := svc.Export(context.Background(), start, end)

	require.NoError(t, err)
	assert.Zero(t, n)
	assert.Equal(t, 0, sheet.calls, "empty fetch skips the sheet entirely")
}

func TestExport_LoadError(t *testing.T) {
	source := &fakeSource{}
	svc := NewExportService(source, &fakeCredsStore{loadErr: errors.New("boom")}, &fakeSheet{})
	start, end := testRange(t)

	_, err := svc.Export(context.Background(), start, end)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "load credentials")
	assert.Equal(t, 0, source.calls)
}

func TestExport_AppendError(t *testing.T) {
	svc := NewExportService(
		&fakeSource{samples: []domain.SpO2Sample{{Date: "2024-01-01"}}},
		&fakeCredsStore{creds: &domain.Credentials{ClientID: "A", ClientSecret: "B"}},
		&fakeSheet{err: errors.New("quota")},
	)
	start, end := testRange(t)

	_, err := svc.Export(context.Background(), start, end)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "append to sheet")
}
