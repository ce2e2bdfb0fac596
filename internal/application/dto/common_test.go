package dto_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/stock-ledger/internal/application/dto"
)

func TestPageRequest_Normalize(t *testing.T) {
	tests := []struct {
		name string
		in   dto.PageRequest
		want dto.PageRequest
	}{
		{"SinLimite", dto.PageRequest{}, dto.PageRequest{}},
		{"Valido", dto.PageRequest{Limit: 20, Offset: 40}, dto.PageRequest{Limit: 20, Offset: 40}},
		{"AcotaAlMaximo", dto.PageRequest{Limit: 10000}, dto.PageRequest{Limit: dto.MaxPageLimit}},
		{"NegativosACero", dto.PageRequest{Limit: -1, Offset: -5}, dto.PageRequest{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := tt.in
			p.Normalize()
			assert.Equal(t, tt.want, p)
		})
	}
}
