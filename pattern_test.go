package re2

import (
	"bytes"
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// captureLog installs a debug logger writing to the returned buffer.
func captureLog(t *testing.T) *syncBuffer {
	t.Helper()

	buf := &syncBuffer{}
	SetLogger(zerolog.New(buf).Level(zerolog.DebugLevel))
	t.Cleanup(func() { SetLogger(zerolog.Nop()) })

	return buf
}

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.buf.Write(p)
}

func (b *syncBuffer) count(msg string) int {
	b.mu.Lock()
	defer b.mu.Unlock()

	return strings.Count(b.buf.String(), `"message":"`+msg+`"`)
}

func mustCompile(t *testing.T, c *Client, pattern string, opts CompileOptions) *Pattern {
	t.Helper()

	p, err := c.Compile(context.Background(), []byte(pattern), opts)
	require.NoError(t, err)

	return p
}

func TestPatternAccessors(t *testing.T) {
	p := mustCompile(t, New(), `(?P<year>\d+)-(\d+)`, CompileOptions{Caseless: true})
	defer p.Release()

	assert.Equal(t, 3, p.NumGroups())
	assert.Equal(t, []string{"", "year", ""}, p.SubexpNames())
	assert.Equal(t, `(?P<year>\d+)-(\d+)`, p.String())
	assert.True(t, p.Caseless())
}

func TestDeadHandlesAreRejected(t *testing.T) {
	c := New()

	released := mustCompile(t, c, "a", CompileOptions{})
	require.NoError(t, released.Release())

	var nilPattern *Pattern
	handles := map[string]*Pattern{
		"nil":      nilPattern,
		"zero":     {},
		"released": released,
	}

	for name, p := range handles {
		t.Run(name, func(t *testing.T) {
			_, err := c.Match(context.Background(), []byte("a"), p, MatchOptions{})
			assert.ErrorIs(t, err, ErrBadArgument)

			_, err = c.Replace(context.Background(), []byte("a"), p, []byte("b"), ReplaceOptions{})
			assert.ErrorIs(t, err, ErrBadArgument)

			_, err = p.Clone()
			assert.ErrorIs(t, err, ErrBadArgument)

			assert.ErrorIs(t, p.Release(), ErrBadArgument)
			assert.Zero(t, p.NumGroups())
			assert.Nil(t, p.SubexpNames())
			assert.Empty(t, p.String())
		})
	}
}

func TestCloneKeepsPatternAlive(t *testing.T) {
	c := New()
	p := mustCompile(t, c, "a+", CompileOptions{})

	q, err := p.Clone()
	require.NoError(t, err)
	require.NoError(t, p.Release())

	res, err := c.Match(context.Background(), []byte("baa"), q, MatchOptions{Capture: CaptureFirst, Type: TypeIndex})
	require.NoError(t, err)
	assert.Equal(t, []CaptureValue{IndexPair{1, 2}}, res.Values)

	require.NoError(t, q.Release())
	_, err = c.Match(context.Background(), []byte("baa"), q, MatchOptions{})
	assert.ErrorIs(t, err, ErrBadArgument)
}

func TestTeardownExactlyOnce(t *testing.T) {
	logs := captureLog(t)
	c := New(WithBlocking(false))

	const refs = 64
	p := mustCompile(t, c, "a", CompileOptions{})
	for range refs - 1 {
		_, err := p.Clone()
		require.NoError(t, err)
	}

	var wg sync.WaitGroup
	for range refs * 2 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = p.Release()
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, logs.count("pattern released"))
	assert.ErrorIs(t, p.Release(), ErrBadArgument)
}

func TestAdHocPatternIsReleased(t *testing.T) {
	logs := captureLog(t)
	c := New(WithBlocking(false))

	_, err := c.Match(context.Background(), []byte("abc"), Text("b"), MatchOptions{})
	require.NoError(t, err)

	_, err = c.Replace(context.Background(), []byte("abc"), Text("b"), []byte("x"), ReplaceOptions{})
	require.NoError(t, err)

	assert.Equal(t, 2, logs.count("pattern released"))
}

func TestConcurrentMatchMatchesSequential(t *testing.T) {
	c := New(WithBlocking(true), WithWorkers(4))
	p := mustCompile(t, c, `(\w+)@(\w+)\.com`, CompileOptions{})
	defer p.Release()

	subjects := [][]byte{
		[]byte("mail me@example.com now"),
		[]byte("nothing here"),
		[]byte("a@b.com"),
		[]byte("x y@z.com q@r.com"),
	}
	opts := MatchOptions{Type: TypeIndex}

	want := make([]MatchResult, len(subjects))
	for i, s := range subjects {
		res, err := c.Match(context.Background(), s, p, opts)
		require.NoError(t, err)
		want[i] = res
	}

	var wg sync.WaitGroup
	for g := range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()

			for i := range 50 {
				k := (g + i) % len(subjects)
				res, err := c.Match(context.Background(), subjects[k], p, opts)
				if assert.NoError(t, err) {
					assert.Equal(t, want[k], res)
				}
			}
		}()
	}
	wg.Wait()
}
