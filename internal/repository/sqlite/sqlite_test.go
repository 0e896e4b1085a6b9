package sqlite_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"upkeep/internal/domain"
	"upkeep/internal/port"
	"upkeep/internal/repository/sqlite"
)

func newRepo(t *testing.T) (context.Context, port.VendorRepository) {
	t.Helper()
	db, err := sqlite.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return context.Background(), sqlite.NewVendorRepo(db)
}

func TestVendorRepo_CreateAndList(t *testing.T) {
	ctx, repo := newRepo(t)
	rating := 4
	rec := domain.NewParsedVendorRecord("Acme Plumbing")
	rec.Email = "acme@example.com"
	rec.VendorType = domain.VendorTypeContractor
	rec.Rating = &rating

	require.NoError(t, repo.CreateVendor(ctx, &rec))
	bolt := domain.NewParsedVendorRecord("Bolt Electric")
	require.NoError(t, repo.CreateVendor(ctx, &bolt))

	vendors, total, err := repo.List(ctx, 0, 10)
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	require.Len(t, vendors, 2)

	var acme *domain.Vendor
	for i := range vendors {
		if vendors[i].Name == "Acme Plumbing" {
			acme = &vendors[i]
		}
	}
	require.NotNil(t, acme)
	assert.Equal(t, "acme@example.com", acme.Email)
	assert.Equal(t, domain.VendorTypeContractor, acme.VendorType)
	assert.Equal(t, domain.VendorStatusActive, acme.Status)
	require.NotNil(t, acme.Rating)
	assert.Equal(t, 4, *acme.Rating)
}

func TestVendorRepo_DuplicateNameIsCaseInsensitive(t *testing.T) {
	ctx, repo := newRepo(t)
	first := domain.NewParsedVendorRecord("Acme")
	second := domain.NewParsedVendorRecord("ACME")

	require.NoError(t, repo.CreateVendor(ctx, &first))
	err := repo.CreateVendor(ctx, &second)

	assert.ErrorIs(t, err, domain.ErrDuplicateVendor)
}

func TestVendorRepo_ListPaginates(t *testing.T) {
	ctx, repo := newRepo(t)
	for _, name := range []string{"A1", "B2", "C3"} {
		rec := domain.NewParsedVendorRecord(name)
		require.NoError(t, repo.CreateVendor(ctx, &rec))
	}

	vendors, total, err := repo.List(ctx, 1, 1)
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	assert.Len(t, vendors, 1)
}

func TestVendorRepo_Ping(t *testing.T) {
	ctx, repo := newRepo(t)
	assert.NoError(t, repo.Ping(ctx))
}
