package db

import (
	"context"
	"encoding/json"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSQLite(t *testing.T) *SQLite {
	t.Helper()
	ctx := context.Background()

	store, err := OpenSQLite(ctx, filepath.Join(t.TempDir(), "leads.db"))
	require.NoError(t, err)
	t.Cleanup(store.Close)

	require.NoError(t, store.EnsureSchema(ctx))
	return store
}

func TestSQLite_SaveAndGet(t *testing.T) {
	ctx := context.Background()
	store := newTestSQLite(t)

	lead := &Lead{
		Kind:    LeadContact,
		Name:    "Priya Patel",
		Email:   "priya@example.com",
		Payload: json.RawMessage(`{"interestedService":"Cloud & DevOps Services"}`),
	}
	require.NoError(t, store.SaveLead(ctx, lead))
	assert.NotEqual(t, uuid.Nil, lead.ID)
	assert.False(t, lead.CreatedAt.IsZero())

	got, err := store.GetLead(ctx, lead.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, lead.ID, got.ID)
	assert.Equal(t, LeadContact, got.Kind)
	assert.Equal(t, "priya@example.com", got.Email)
	assert.JSONEq(t, `{"interestedService":"Cloud & DevOps Services"}`, string(got.Payload))
	assert.WithinDuration(t, lead.CreatedAt, got.CreatedAt, time.Microsecond)
}

func TestSQLite_GetMissing(t *testing.T) {
	got, err := newTestSQLite(t).GetLead(context.Background(), uuid.New())
	assert.NoError(t, err)
	assert.Nil(t, got)
}

func TestSQLite_ListLeads(t *testing.T) {
	ctx := context.Background()
	store := newTestSQLite(t)

	base := time.Date(2025, 9, 1, 9, 0, 0, 0, time.UTC)
	leads := []*Lead{
		{Kind: LeadContact, Name: "A", Email: "a@example.com", CreatedAt: base},
		{Kind: LeadApplication, Name: "B", Email: "b@example.com", CreatedAt: base.Add(time.Minute)},
		{Kind: LeadContact, Name: "C", Email: "c@example.com", CreatedAt: base.Add(2 * time.Minute)},
		{Kind: LeadResumeReview, Name: "D", Email: "d@example.com", CreatedAt: base.Add(90 * time.Second)},
	}
	for _, l := range leads {
		require.NoError(t, store.SaveLead(ctx, l))
	}

	all, err := store.ListLeads(ctx, "", 0)
	require.NoError(t, err)
	require.Len(t, all, 4)
	assert.Equal(t, []string{"C", "D", "B", "A"}, []string{all[0].Name, all[1].Name, all[2].Name, all[3].Name})

	contacts, err := store.ListLeads(ctx, LeadContact, 10)
	require.NoError(t, err)
	require.Len(t, contacts, 2)
	assert.Equal(t, "C", contacts[0].Name)

	limited, err := store.ListLeads(ctx, "", 1)
	require.NoError(t, err)
	assert.Len(t, limited, 1)
}

func TestSQLite_EmptyList(t *testing.T) {
	leads, err := newTestSQLite(t).ListLeads(context.Background(), LeadApplication, 5)
	require.NoError(t, err)
	assert.NotNil(t, leads)
	assert.Empty(t, leads)
}

func TestOpen_Schemes(t *testing.T) {
	ctx := context.Background()

	store, err := Open(ctx, "sqlite://"+filepath.Join(t.TempDir(), "nested", "leads.db"))
	require.NoError(t, err)
	store.Close()

	_, err = Open(ctx, "mysql://localhost/leads")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"mysql"`)
}

func TestLeadKind_Valid_SQLiteFile(t *testing.T) {
	assert.True(t, LeadContact.Valid())
	assert.True(t, LeadApplication.Valid())
	assert.True(t, LeadResumeReview.Valid())
	assert.False(t, LeadKind("newsletter").Valid())
}

func TestNormalizeLimit_SQLiteFile(t *testing.T) {
	assert.Equal(t, DefaultListLimit, normalizeLimit(0))
	assert.Equal(t, DefaultListLimit, normalizeLimit(-3))
	assert.Equal(t, 7, normalizeLimit(7))
	assert.Equal(t, MaxListLimit, normalizeLimit(10_000))
}
