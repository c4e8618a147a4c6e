package endpoint

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNew_DefaultsWhenEmpty(t *testing.T) {
	assert.Equal(t, Default, New("").Get())
	assert.Equal(t, "http://localhost:8080/", New("http://localhost:8080/").Get())
}

func TestSet_ReplacesValue(t *testing.T) {
	e := New("")
	e.Set("http://other/")
	assert.Equal(t, "http://other/", e.Get())
}

func TestConcurrentAccess(t *testing.T) {
	e := New("")
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func() { defer wg.Done(); e.Set("http://a/") }()
		go func() { defer wg.Done(); _ = e.Get() }()
	}
	wg.Wait()
	assert.Equal(t, "http://a/", e.Get())
}
