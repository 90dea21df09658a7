package idgen

import (
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewID_Format(t *testing.T) {
	g := NewGenerator()

	tests := []struct {
		prefix  string
		pattern string
	}{
		{OrderPrefix, `^order_[A-Za-z0-9]{16}$`},
		{PaymentPrefix, `^pay_[A-Za-z0-9]{16}$`},
	}

	for _, tt := range tests {
		t.Run(tt.prefix, func(t *testing.T) {
			id, err := g.NewID(tt.prefix)
			require.NoError(t, err)
			assert.Regexp(t, regexp.MustCompile(tt.pattern), id)
			assert.True(t, strings.HasPrefix(id, tt.prefix))
		})
	}
}

func TestNewID_Unique(t *testing.T) {
	g := NewGenerator()
	seen := make(map[string]struct{}, 1000)

	for i := 0; i < 1000; i++ {
		id, err := g.NewID(OrderPrefix)
		require.NoError(t, err)
		_, dup := seen[id]
		assert.False(t, dup, "duplicate id %s", id)
		seen[id] = struct{}{}
	}
}
