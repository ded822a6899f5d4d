package session

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"backend_architect/internal/types"
)

type call struct {
	prompt    string
	framework types.Framework
}

type fakeGenerator struct {
	mu      sync.Mutex
	calls   []call
	respond func(c call) (*types.GeneratedCode, error)
}

func (f *fakeGenerator) GenerateBackendCode(ctx context.Context, prompt string, framework types.Framework) (*types.GeneratedCode, error) {
	c := call{prompt: prompt, framework: framework}
	f.mu.Lock()
	f.calls = append(f.calls, c)
	respond := f.respond
	f.mu.Unlock()
	if respond == nil {
		return oneFile(string(framework)), nil
	}
	return respond(c)
}

func (f *fakeGenerator) Calls() []call {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]call(nil), f.calls...)
}

func oneFile(marker string) *types.GeneratedCode {
	return &types.GeneratedCode{
		Files:        []types.CodeFile{{Path: "app/main.py", Content: marker}},
		Explanation:  "explanation " + marker,
		Dependencies: []string{"fastapi"},
		SetupSteps:   []string{"uvicorn app.main:app"},
	}
}

func newSession(gen Generator, policy Policy, prompt string) *Session {
	return New("test", gen, policy, State{Prompt: prompt, Framework: types.FastAPI})
}

func TestSubmitEmptyPromptIssuesNoCall(t *testing.T) {
	for _, prompt := range []string{"", "   ", "\n\t"} {
		gen := &fakeGenerator{}
		sess := newSession(gen, DefaultPolicy(), prompt)
		before := sess.Snapshot()

		assert.False(t, sess.Submit(context.Background()))
		assert.False(t, sess.SubmitAsync(context.Background()))
		sess.Wait()

		assert.Empty(t, gen.Calls())
		assert.Equal(t, before, sess.Snapshot())
	}
}

func TestSubmitSuccess(t *testing.T) {
	var sess *Session
	var busyDuringCall bool
	gen := &fakeGenerator{respond: func(c call) (*types.GeneratedCode, error) {
		busyDuringCall = sess.Snapshot().IsGenerating
		return oneFile("ok"), nil
	}}
	sess = newSession(gen, DefaultPolicy(), "Add a GET /time route")

	require.True(t, sess.Submit(context.Background()))

	assert.Equal(t, []call{{prompt: "Add a GET /time route", framework: types.FastAPI}}, gen.Calls())
	assert.True(t, busyDuringCall)

	st := sess.Snapshot()
	assert.False(t, st.IsGenerating)
	require.NotNil(t, st.Result)
	assert.Len(t, st.Result.Files, 1)
	assert.Empty(t, st.Error)
}

func TestSubmitFailureClearsResultByDefault(t *testing.T) {
	fail := false
	gen := &fakeGenerator{respond: func(c call) (*types.GeneratedCode, error) {
		if fail {
			return nil, errors.New("network down")
		}
		return oneFile("first"), nil
	}}
	sess := newSession(gen, DefaultPolicy(), "p")
	require.True(t, sess.Submit(context.Background()))
	require.NotNil(t, sess.Snapshot().Result)

	fail = true
	require.True(t, sess.Submit(context.Background()))

	st := sess.Snapshot()
	assert.False(t, st.IsGenerating)
	assert.Nil(t, st.Result)
	assert.Equal(t, FailureMessage, st.Error)
}

func TestSubmitFailureKeepsResultWhenConfigured(t *testing.T) {
	fail := false
	gen := &fakeGenerator{respond: func(c call) (*types.GeneratedCode, error) {
		if fail {
			return nil, errors.New("provider rejected key")
		}
		return oneFile("kept"), nil
	}}
	sess := newSession(gen, Policy{ClearResultOnError: false, RegenerateOnFrameworkChange: true}, "p")
	require.True(t, sess.Submit(context.Background()))

	fail = true
	require.True(t, sess.Submit(context.Background()))

	st := sess.Snapshot()
	assert.False(t, st.IsGenerating)
	require.NotNil(t, st.Result)
	assert.Equal(t, "kept", st.Result.Files[0].Content)
	assert.Equal(t, FailureMessage, st.Error)
}

func TestSuccessClearsPreviousError(t *testing.T) {
	fail := true
	gen := &fakeGenerator{respond: func(c call) (*types.GeneratedCode, error) {
		if fail {
			return nil, errors.New("boom")
		}
		return oneFile("ok"), nil
	}}
	sess := newSession(gen, DefaultPolicy(), "p")
	sess.Submit(context.Background())
	require.Equal(t, FailureMessage, sess.Snapshot().Error)

	fail = false
	sess.Submit(context.Background())
	assert.Empty(t, sess.Snapshot().Error)
	assert.NotNil(t, sess.Snapshot().Result)
}

func TestNilResultCountsAsFailure(t *testing.T) {
	gen := &fakeGenerator{respond: func(c call) (*types.GeneratedCode, error) { return nil, nil }}
	sess := newSession(gen, DefaultPolicy(), "p")
	sess.Submit(context.Background())
	assert.Equal(t, FailureMessage, sess.Snapshot().Error)
}

func TestSelectFrameworkTriggersExactlyOneCall(t *testing.T) {
	gen := &fakeGenerator{}
	sess := newSession(gen, DefaultPolicy(), "Add a GET /time route")

	require.True(t, sess.SelectFramework(context.Background(), types.Django))
	assert.Equal(t, []call{{prompt: "Add a GET /time route", framework: types.Django}}, gen.Calls())
	assert.Equal(t, types.Django, sess.Snapshot().Framework)
	assert.Equal(t, "Django", sess.Snapshot().Result.Files[0].Content)

	// Re-selecting the current framework is not a change.
	assert.False(t, sess.SelectFramework(context.Background(), types.Django))
	assert.Len(t, gen.Calls(), 1)
}

func TestSelectFrameworkWithoutCall(t *testing.T) {
	t.Run("empty prompt", func(t *testing.T) {
		gen := &fakeGenerator{}
		sess := newSession(gen, DefaultPolicy(), " ")
		assert.False(t, sess.SelectFramework(context.Background(), types.Firebase))
		assert.Equal(t, types.Firebase, sess.Snapshot().Framework)
		assert.Empty(t, gen.Calls())
	})
	t.Run("policy off", func(t *testing.T) {
		gen := &fakeGenerator{}
		sess := newSession(gen, Policy{ClearResultOnError: true}, "p")
		assert.False(t, sess.SelectFramework(context.Background(), types.Firebase))
		assert.Equal(t, types.Firebase, sess.Snapshot().Framework)
		assert.Empty(t, gen.Calls())
	})
	t.Run("invalid framework", func(t *testing.T) {
		gen := &fakeGenerator{}
		sess := newSession(gen, DefaultPolicy(), "p")
		assert.False(t, sess.SelectFramework(context.Background(), types.Framework("Rails")))
		assert.Equal(t, types.FastAPI, sess.Snapshot().Framework)
		assert.Empty(t, gen.Calls())
	})
}

func TestSubmitWhileBusyIsDisabled(t *testing.T) {
	release := make(chan struct{})
	gen := &fakeGenerator{respond: func(c call) (*types.GeneratedCode, error) {
		<-release
		return oneFile("done"), nil
	}}
	sess := newSession(gen, DefaultPolicy(), "p")

	require.True(t, sess.SubmitAsync(context.Background()))
	assert.True(t, sess.Snapshot().IsGenerating)
	assert.False(t, sess.SubmitAsync(context.Background()))
	assert.False(t, sess.Submit(context.Background()))

	close(release)
	sess.Wait()

	assert.Len(t, gen.Calls(), 1)
	assert.False(t, sess.Snapshot().IsGenerating)
}

func TestStaleResponseIsDiscarded(t *testing.T) {
	release := make(chan struct{})
	gen := &fakeGenerator{respond: func(c call) (*types.GeneratedCode, error) {
		if c.framework == types.FastAPI {
			<-release
			return oneFile("stale"), nil
		}
		return oneFile("latest"), nil
	}}
	sess := newSession(gen, DefaultPolicy(), "p")

	require.True(t, sess.SubmitAsync(context.Background()))
	// The framework change supersedes the in-flight FastAPI call.
	require.True(t, sess.SelectFramework(context.Background(), types.Django))

	st := sess.Snapshot()
	assert.False(t, st.IsGenerating)
	assert.Equal(t, "latest", st.Result.Files[0].Content)

	close(release)
	sess.Wait()

	st = sess.Snapshot()
	assert.False(t, st.IsGenerating)
	assert.Equal(t, "latest", st.Result.Files[0].Content)
	assert.Len(t, gen.Calls(), 2)
}

func TestStaleFailureDoesNotClearBusy(t *testing.T) {
	releaseFirst := make(chan struct{})
	releaseSecond := make(chan struct{})
	gen := &fakeGenerator{respond: func(c call) (*types.GeneratedCode, error) {
		if c.framework == types.FastAPI {
			<-releaseFirst
			return nil, errors.New("old failure")
		}
		<-releaseSecond
		return oneFile("new"), nil
	}}
	sess := newSession(gen, DefaultPolicy(), "p")

	require.True(t, sess.SubmitAsync(context.Background()))
	require.True(t, sess.SelectFrameworkAsync(context.Background(), types.Firebase))

	close(releaseFirst)
	assert.Eventually(t, func() bool { return len(gen.Calls()) == 2 }, timeout, tick)
	// The superseded failure must not end the busy state or set an error.
	st := sess.Snapshot()
	assert.True(t, st.IsGenerating)
	assert.Empty(t, st.Error)

	close(releaseSecond)
	sess.Wait()
	st = sess.Snapshot()
	assert.False(t, st.IsGenerating)
	assert.Equal(t, "new", st.Result.Files[0].Content)
}
