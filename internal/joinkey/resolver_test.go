package joinkey

import (
	"testing"

	"github.com/go-faster/errors"
	"github.com/stretchr/testify/require"

	"github.com/ryabkov82/xlsx-join/internal/table"
)

func TestResolve(t *testing.T) {
	for _, tt := range []struct {
		name   string
		main   table.Schema
		vendor table.Schema
		want   Pair
	}{
		{
			name:   "Exact",
			main:   table.Schema{"name", "ID", "id"},
			vendor: table.Schema{"id", "ID"},
			want:   Pair{Main: "id", Vendor: "id", Tier: TierExact},
		},
		{
			name:   "ExactLaterSpelling",
			main:   table.Schema{"customer_id", "x"},
			vendor: table.Schema{"customer_id", "y"},
			want:   Pair{Main: "customer_id", Vendor: "customer_id", Tier: TierExact},
		},
		{
			name:   "CaseInsensitive",
			main:   table.Schema{"id", "name"},
			vendor: table.Schema{"ID", "price"},
			want:   Pair{Main: "id", Vendor: "ID", Tier: TierCaseInsensitive},
		},
		{
			name:   "CaseInsensitiveCustomer",
			main:   table.Schema{"CUSTOMER_ID"},
			vendor: table.Schema{"Customer_Id"},
			want:   Pair{Main: "CUSTOMER_ID", Vendor: "Customer_Id", Tier: TierCaseInsensitive},
		},
		{
			name:   "ContainsID",
			main:   table.Schema{"amount", "cust_id", "order_id"},
			vendor: table.Schema{"region", "VendorID"},
			want:   Pair{Main: "cust_id", Vendor: "VendorID", Tier: TierContainsID},
		},
		{
			name:   "ContainsName",
			main:   table.Schema{"Full Name", "amt"},
			vendor: table.Schema{"amt", "client_name"},
			want:   Pair{Main: "Full Name", Vendor: "client_name", Tier: TierContainsName},
		},
		{
			name:   "Common",
			main:   table.Schema{"sku", "amt", "qty"},
			vendor: table.Schema{"qty", "amt"},
			want:   Pair{Main: "amt", Vendor: "amt", Tier: TierCommon},
		},
	} {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Resolve(tt.main, tt.vendor)
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestResolve_NotFound(t *testing.T) {
	_, err := Resolve(table.Schema{"a", "b"}, table.Schema{"x", "y"})
	require.True(t, errors.Is(err, ErrNotFound))

	_, err = Resolve(nil, table.Schema{"id"})
	require.ErrorIs(t, err, ErrNotFound)
}

func TestResolve_SkipsUnnamedColumns(t *testing.T) {
	// Колонка-индекс без заголовка есть в обеих таблицах.
	got, err := Resolve(table.Schema{"", "Product", "Qty"}, table.Schema{"", "Product", "Price"})
	require.NoError(t, err)
	require.Equal(t, Pair{Main: "Product", Vendor: "Product", Tier: TierCommon}, got)

	_, err = Resolve(table.Schema{"", "  ", "a"}, table.Schema{"", "  ", "b"})
	require.ErrorIs(t, err, ErrNotFound)

	got, err = NewResolver([]string{"", "sku"}).Resolve(table.Schema{"", "sku"}, table.Schema{"", "SKU"})
	require.NoError(t, err)
	require.Equal(t, Pair{Main: "sku", Vendor: "SKU", Tier: TierCaseInsensitive}, got)
}

func TestResolve_Deterministic(t *testing.T) {
	main := table.Schema{"b_id", "a_id", "name", "c"}
	vendor := table.Schema{"z_id", "y_id", "c"}
	first, err := Resolve(main, vendor)
	require.NoError(t, err)
	for i := 0; i < 100; i++ {
		got, err := Resolve(main, vendor)
		require.NoError(t, err)
		require.Equal(t, first, got)
	}
	require.Equal(t, Pair{Main: "b_id", Vendor: "z_id", Tier: TierContainsID}, first)
}

func TestResolver_CustomPreferred(t *testing.T) {
	r := NewResolver([]string{"sku"})
	got, err := r.Resolve(table.Schema{"SKU", "id"}, table.Schema{"sku", "id"})
	require.NoError(t, err)
	// "id" не входит в приоритетный список, побеждает регистронезависимое "sku".
	require.Equal(t, Pair{Main: "SKU", Vendor: "sku", Tier: TierCaseInsensitive}, got)
	require.Equal(t, "case-insensitive", got.Tier.String())
}
