package middleware

import (
	"testing"

	"github.com/danielgtaylor/huma/v2"
	"github.com/stretchr/testify/assert"
)

func TestContainer_GetAllAndClear(t *testing.T) {
	noop := func(ctx huma.Context, next func(huma.Context)) { next(ctx) }

	tests := []struct {
		name      string
		base      int
		added     int
		wantFirst int
		wantNext  int
	}{
		{name: "empty"},
		{name: "only added", added: 2, wantFirst: 2, wantNext: 0},
		{name: "only base", base: 1, wantFirst: 1, wantNext: 1},
		{name: "base and added", base: 1, added: 2, wantFirst: 3, wantNext: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			base := make([]Middleware, tt.base)
			for i := range base {
				base[i] = noop
			}
			c := NewContainer(base...)
			for i := 0; i < tt.added; i++ {
				c.Add(noop)
			}

			assert.Len(t, c.GetAllAndClear(), tt.wantFirst)
			assert.Len(t, c.GetAllAndClear(), tt.wantNext)
		})
	}
}
