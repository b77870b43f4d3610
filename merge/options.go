package merge

import (
	"github.com/google/uuid"

	"github.com/plasmerge/plasmerge/assembler"
)

// Options holds MergeFiles's configurable collaborators and defaults.
type Options struct {
	Parser        Parser
	PrettyPrinter assembler.PrettyPrinter
	Formatter     assembler.Formatter
	Markers       assembler.Markers

	// Helper overrides the helper-object name discovered by Parser (e.g.
	// when every file in a batch is known to use the same non-default
	// helper). Empty means use the Helper discovered in the component's
	// new file, or in its edited file when the new file names none; that
	// one name applies to all three versions of the component.
	Helper string

	Logger Logger

	onReport func(uuid.UUID, Report)
}

func (o *Options) reportSink(id uuid.UUID, r Report) {
	if o.onReport != nil {
		o.onReport(id, r)
	}
}

// Option configures a MergeFiles call.
type Option func(*Options)

// WithParser supplies the Parser used to read the edited, new, and base
// source for every component in the batch.
func WithParser(p Parser) Option {
	return func(o *Options) { o.Parser = p }
}

// WithPrettyPrinter supplies the renderer assembler.Assemble uses to
// print the merged file root back to text.
func WithPrettyPrinter(pp assembler.PrettyPrinter) Option {
	return func(o *Options) { o.PrettyPrinter = pp }
}

// WithFormatter supplies an optional post-render formatting pass.
func WithFormatter(f assembler.Formatter) Option {
	return func(o *Options) { o.Formatter = f }
}

// WithMarkers overrides the default plasmic-managed-start/-end marker
// pair bounding the region assembler.Assemble copies verbatim from the
// new file into the merged output.
func WithMarkers(m assembler.Markers) Option {
	return func(o *Options) { o.Markers = m }
}

// WithHelper forces every component in the batch to use helper as its
// managed-call helper-object name, instead of the name discovered in
// the component's files.
func WithHelper(helper string) Option {
	return func(o *Options) { o.Helper = helper }
}

// WithLogger supplies the logger MergeFiles reports per-component
// progress and skips to. The default is a no-op logger.
func WithLogger(l Logger) Option {
	return func(o *Options) { o.Logger = l }
}

// WithReportCollector registers a callback MergeFiles invokes with each
// successfully merged component's Report, in the same order the
// component was processed in.
func WithReportCollector(f func(uuid.UUID, Report)) Option {
	return func(o *Options) { o.onReport = f }
}

func resolveOptions(opts []Option) *Options {
	o := &Options{
		Markers: assembler.DefaultMarkers,
		Logger:  noopLogger{},
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}
