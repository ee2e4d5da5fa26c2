package account_test

import (
	"testing"

	"github.com/kasuganosora/clientauth/account"
	"github.com/stretchr/testify/assert"
)

func TestNormalizeEmail(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"User@EXAMPLE.COM", "User@example.com"},
		{"user@example.com", "user@example.com"},
		{"  spaced@Example.Org  ", "spaced@example.org"},
		{"noAtSign", "noAtSign"},
		{"  noAtSign  ", "noAtSign"},
		{"", ""},
		{"a@b@C.COM", "a@b@c.com"}, // split on the last @
		{"MiXeD.Local+tag@SUB.Example.COM", "MiXeD.Local+tag@sub.example.com"},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, account.NormalizeEmail(c.in), "input %q", c.in)
	}
}

func TestNormalizeEmailIdempotent(t *testing.T) {
	for _, in := range []string{"User@EXAMPLE.COM", "noAtSign", " x@Y.Z ", "a@b@C.D"} {
		once := account.NormalizeEmail(in)
		assert.Equal(t, once, account.NormalizeEmail(once), "input %q", in)
	}
}
