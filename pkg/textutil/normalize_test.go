package textutil_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/comercio-api/pkg/textutil"
)

func TestNormalize(t *testing.T) {
	casos := []struct {
		in   string
		want string
	}{
		{"Café con Leche", "cafe con leche"},
		{"AZÚCAR", "azucar"},
		{"  Ñame  ", "name"},
		{"pan integral", "pan integral"},
		{"", ""},
	}
	for _, c := range casos {
		assert.Equal(t, c.want, textutil.Normalize(c.in), c.in)
	}
}
