package fctest

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEnv(t *testing.T) {
	e := NewEnv().Set("B", "2").Set("A", "1=one")
	assert.Equal(t, []string{"A=1=one", "B=2"}, e.Vars())

	c := e.Clone().Unset("A").Set("C", "3")
	assert.Equal(t, []string{"B=2", "C=3"}, c.Vars())
	assert.Equal(t, "1=one", e.Get("A"), "clone is independent")

	_, ok := e.Lookup("C")
	assert.False(t, ok)
	assert.Equal(t, "", e.Get("C"))
}

func TestCloneEnv(t *testing.T) {
	t.Setenv("FCTEST_ENV_SAMPLE", "a=b")
	e := CloneEnv()
	v, ok := e.Lookup("FCTEST_ENV_SAMPLE")
	assert.True(t, ok)
	assert.Equal(t, "a=b", v)
}
