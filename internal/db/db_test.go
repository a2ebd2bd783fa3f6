package db

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLeadKind_Valid(t *testing.T) {
	for _, k := range []LeadKind{LeadContact, LeadApplication, LeadResumeReview} {
		assert.True(t, k.Valid(), k)
	}
	assert.False(t, LeadKind("").Valid())
	assert.False(t, LeadKind("newsletter").Valid())
}

func TestNormalizeLimit(t *testing.T) {
	tests := []struct {
		in, want int
	}{
		{0, DefaultListLimit},
		{-3, DefaultListLimit},
		{10, 10},
		{MaxListLimit + 1, MaxListLimit},
	}
	for _, tt := range tests {
		if got := normalizeLimit(tt.in); got != tt.want {
			t.Errorf("normalizeLimit(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestOpen_SQLiteURL(t *testing.T) {
	ctx := context.Background()
	store, err := Open(ctx, "sqlite://"+filepath.Join(t.TempDir(), "leads.db"))
	require.NoError(t, err)
	defer store.Close()

	_, ok := store.(*SQLite)
	assert.True(t, ok, "sqlite:// should open the SQLite store")
	assert.NoError(t, store.EnsureSchema(ctx))
}

func TestOpen_UnsupportedScheme(t *testing.T) {
	store, err := Open(context.Background(), "mysql://localhost/leads")
	require.Error(t, err)
	assert.Nil(t, store)
	assert.Contains(t, err.Error(), `"mysql"`)
}
