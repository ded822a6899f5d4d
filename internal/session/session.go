// Package session holds the per-browser view state and the prompt submission handler.
//
// A Session is the single mutable record the page renders: prompt, framework, busy flag,
// last result and last error. Every generation is one outbound call; only the response to
// the most recent call is applied.
package session

import (
	"context"
	"log"
	"strings"
	"sync"

	"backend_architect/internal/ai"
	"backend_architect/internal/types"
)

// FailureMessage is shown for every failed generation, whatever the cause.
const FailureMessage = "Failed to generate architecture. Please verify your specifications."

// Generator is the outbound call a session makes.
type Generator interface {
	GenerateBackendCode(ctx context.Context, prompt string, framework types.Framework) (*types.GeneratedCode, error)
}

// Policy selects between the behaviours the UI variants disagree on.
type Policy struct {
	// ClearResultOnError drops the previous result when a generation fails.
	ClearResultOnError bool
	// RegenerateOnFrameworkChange issues a new call when the framework changes.
	RegenerateOnFrameworkChange bool
}

func DefaultPolicy() Policy {
	return Policy{ClearResultOnError: true, RegenerateOnFrameworkChange: true}
}

// State is the view-state record. Result is nil or a complete result, never partial.
type State struct {
	Prompt       string               `json:"prompt"`
	Framework    types.Framework      `json:"framework"`
	IsGenerating bool                 `json:"isGenerating"`
	Result       *types.GeneratedCode `json:"result"`
	Error        string               `json:"error,omitempty"`
}

type Session struct {
	ID string

	gen    Generator
	policy Policy

	mu    sync.Mutex
	state State
	seq   uint64

	inflight sync.WaitGroup
}

type request struct {
	seq       uint64
	prompt    string
	framework types.Framework
}

func New(id string, gen Generator, policy Policy, initial State) *Session {
	if !initial.Framework.Valid() {
		initial.Framework = types.DefaultFramework
	}
	initial.IsGenerating = false
	return &Session{ID: id, gen: gen, policy: policy, state: initial}
}

// Snapshot returns a copy of the current state.
func (s *Session) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *Session) SetPrompt(prompt string) {
	s.mu.Lock()
	s.state.Prompt = prompt
	s.mu.Unlock()
}

// Submit runs one generation with the current prompt and framework and blocks until it is
// applied. It reports whether a call was issued: an empty prompt or a submit already in
// flight issues nothing and leaves the state unchanged.
func (s *Session) Submit(ctx context.Context) bool {
	s.mu.Lock()
	req, ok := s.begin(false)
	s.mu.Unlock()
	if !ok {
		return false
	}
	s.run(ctx, req)
	return true
}

// SubmitAsync is Submit with the call running in the background. The busy flag is set
// before it returns.
func (s *Session) SubmitAsync(ctx context.Context) bool {
	s.mu.Lock()
	req, ok := s.begin(false)
	s.mu.Unlock()
	if !ok {
		return false
	}
	s.spawn(ctx, req)
	return true
}

// SelectFramework changes the framework and, when the policy says so and the prompt is
// non-empty, issues exactly one new call even if another is still in flight. The newer
// call supersedes the older one.
func (s *Session) SelectFramework(ctx context.Context, framework types.Framework) bool {
	req, ok := s.selectFramework(framework)
	if !ok {
		return false
	}
	s.run(ctx, req)
	return true
}

func (s *Session) SelectFrameworkAsync(ctx context.Context, framework types.Framework) bool {
	req, ok := s.selectFramework(framework)
	if !ok {
		return false
	}
	s.spawn(ctx, req)
	return true
}

// Wait blocks until background generations started by the async variants finish.
func (s *Session) Wait() {
	s.inflight.Wait()
}

func (s *Session) selectFramework(framework types.Framework) (request, bool) {
	if !framework.Valid() {
		return request{}, false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if framework == s.state.Framework {
		return request{}, false
	}
	s.state.Framework = framework
	if !s.policy.RegenerateOnFrameworkChange {
		return request{}, false
	}
	return s.begin(true)
}

// begin must be called with s.mu held.
func (s *Session) begin(force bool) (request, bool) {
	if strings.TrimSpace(s.state.Prompt) == "" {
		return request{}, false
	}
	if s.state.IsGenerating && !force {
		return request{}, false
	}
	s.seq++
	s.state.IsGenerating = true
	s.state.Error = ""
	return request{seq: s.seq, prompt: s.state.Prompt, framework: s.state.Framework}, true
}

func (s *Session) spawn(ctx context.Context, req request) {
	s.inflight.Add(1)
	go func() {
		defer s.inflight.Done()
		s.run(ctx, req)
	}()
}

func (s *Session) run(ctx context.Context, req request) {
	result, err := s.gen.GenerateBackendCode(ctx, req.prompt, req.framework)
	if err == nil && result == nil {
		err = ai.ErrNoResult
	}
	s.finish(req, result, err)
}

func (s *Session) finish(req request, result *types.GeneratedCode, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if req.seq != s.seq {
		log.Printf("Info: session %s discarding %s response #%d, superseded by #%d", s.ID, req.framework, req.seq, s.seq)
		return
	}

	s.state.IsGenerating = false
	if err != nil {
		log.Printf("WARN: generation failed for session %s (%s): %v", s.ID, req.framework, err)
		s.state.Error = FailureMessage
		if s.policy.ClearResultOnError {
			s.state.Result = nil
		}
		return
	}
	s.state.Result = result
	s.state.Error = ""
}
