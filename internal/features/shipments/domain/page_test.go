package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPageParams(t *testing.T) {
	tests := []struct {
		name       string
		page, size int
		want       PageParams
		wantErr    bool
	}{
		{name: "First page", page: 1, size: 20, want: PageParams{Page: 1, PageSize: 20}},
		{name: "Size capped", page: 3, size: 500, want: PageParams{Page: 3, PageSize: MaxPageSize}},
		{name: "Zero page", page: 0, size: 20, wantErr: true},
		{name: "Zero size", page: 1, size: 0, wantErr: true},
		{name: "Negative size", page: 1, size: -4, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewPageParams(tt.page, tt.size)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrValidation)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPageParams_Offset(t *testing.T) {
	assert.Equal(t, 0, PageParams{Page: 1, PageSize: 10}.Offset())
	assert.Equal(t, 20, PageParams{Page: 3, PageSize: 10}.Offset())
}
