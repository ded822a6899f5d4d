// Package render maps session state to the page view model and the embedded templates.
package render

import (
	"html/template"
	"strconv"
	"time"

	"backend_architect/internal/session"
	"backend_architect/internal/types"
	"backend_architect/internal/utils"
)

type Variant string

const (
	VariantEmpty     Variant = "empty"
	VariantLoading   Variant = "loading"
	VariantPopulated Variant = "populated"
)

const (
	DefaultCopyAck        = 2 * time.Second
	DefaultRefreshSeconds = 2
)

type Options struct {
	// CopyAck is how long a file panel shows "Copied!" after a copy.
	CopyAck time.Duration
	// RefreshSeconds is the reload interval while a generation is in flight.
	RefreshSeconds int
}

type FrameworkOption struct {
	Name     types.Framework
	Selected bool
}

type Feature struct {
	Icon  string
	Label string
}

type PipelineStep struct {
	Icon  string
	Label string
	Done  bool
}

type GuideCard struct {
	Icon        string
	Title       string
	Description string
}

type FileView struct {
	ID       string
	Path     string
	Language string
	Content  string
}

type SetupStep struct {
	Number  int
	Command string
}

// Page is everything the template needs; it holds no behaviour.
type Page struct {
	Variant      Variant
	Prompt       string
	Framework    types.Framework
	Theme        string
	IsGenerating bool
	Error        string

	Frameworks []FrameworkOption
	Features   []Feature
	Pipeline   []PipelineStep
	Guide      []GuideCard

	Files           []FileView
	ExplanationHTML template.HTML
	Dependencies    []string
	SetupSteps      []SetupStep

	CopyAckMillis  int64
	RefreshSeconds int
}

var guide = []GuideCard{
	{Icon: "🏗️", Title: "Select Strategy", Description: "Use Python (FastAPI/Django) for complex logic or Firebase for lightning-fast serverless development."},
	{Icon: "⚡", Title: "Generate Logic", Description: "Define your data models and security requirements. We generate the full boilerplate and config."},
	{Icon: "🚀", Title: "Provision Resources", Description: "Follow the setup guide to launch your Docker containers or initialize your Firebase project."},
	{Icon: "🛡️", Title: "Secure & Deploy", Description: "Use the generated environment templates and security rules to go live safely."},
}

// NewPage maps a state snapshot to the view model.
func NewPage(st session.State, opts Options) Page {
	if opts.CopyAck <= 0 {
		opts.CopyAck = DefaultCopyAck
	}
	if opts.RefreshSeconds <= 0 {
		opts.RefreshSeconds = DefaultRefreshSeconds
	}

	p := Page{
		Variant:        VariantOf(st),
		Prompt:         st.Prompt,
		Framework:      st.Framework,
		Theme:          Theme(st.Framework),
		IsGenerating:   st.IsGenerating,
		Error:          st.Error,
		Features:       features(st.Framework),
		Pipeline:       pipeline(st.Framework),
		Guide:          guide,
		CopyAckMillis:  opts.CopyAck.Milliseconds(),
		RefreshSeconds: opts.RefreshSeconds,
	}
	for _, f := range types.Frameworks() {
		p.Frameworks = append(p.Frameworks, FrameworkOption{Name: f, Selected: f == st.Framework})
	}

	if st.Result == nil {
		return p
	}
	for i, f := range st.Result.Files {
		p.Files = append(p.Files, FileView{
			ID:       fileID(i),
			Path:     f.Path,
			Language: utils.DetermineFileType(f.Path),
			Content:  f.Content,
		})
	}
	p.ExplanationHTML = Markdown(st.Result.Explanation)
	p.Dependencies = st.Result.Dependencies
	for i, cmd := range st.Result.SetupSteps {
		p.SetupSteps = append(p.SetupSteps, SetupStep{Number: i + 1, Command: cmd})
	}
	return p
}

// VariantOf picks the view variant. A result stays on screen during a re-generation.
func VariantOf(st session.State) Variant {
	switch {
	case st.Result != nil:
		return VariantPopulated
	case st.IsGenerating:
		return VariantLoading
	default:
		return VariantEmpty
	}
}

// Theme is the accent colour family for a framework.
func Theme(f types.Framework) string {
	switch f {
	case types.Django:
		return "emerald"
	case types.Firebase:
		return "amber"
	default:
		return "indigo"
	}
}

func features(f types.Framework) []Feature {
	if f == types.Firebase {
		return []Feature{
			{Icon: "🔥", Label: "Serverless Architecture"},
			{Icon: "🚀", Label: "Cloud-Ready CI/CD"},
			{Icon: "🔑", Label: "Secure Env Management"},
			{Icon: "🗄️", Label: "Real-time DB (Firestore)"},
		}
	}
	return []Feature{
		{Icon: "🐳", Label: "Containerized (Docker)"},
		{Icon: "🚀", Label: "Cloud-Ready CI/CD"},
		{Icon: "🔑", Label: "Secure Env Management"},
		{Icon: "🗄️", Label: "SQL Persistence"},
	}
}

func pipeline(f types.Framework) []PipelineStep {
	third := PipelineStep{Icon: "🐳", Label: "Container", Done: true}
	if f == types.Firebase {
		third = PipelineStep{Icon: "🛡️", Label: "Rules", Done: true}
	}
	return []PipelineStep{
		{Icon: "🎨", Label: "Design", Done: true},
		{Icon: "📝", Label: "Code", Done: true},
		third,
		{Icon: "🚀", Label: "Deploy", Done: false},
	}
}

func fileID(i int) string {
	return "file-" + strconv.Itoa(i)
}
