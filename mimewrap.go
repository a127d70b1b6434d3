package mimewrap

import (
	"io"
	"log/slog"
	"os"

	"github.com/zostay/mimewrap/envelope"
	"github.com/zostay/mimewrap/sidecar"
)

// Job names the files of a single run.
type Job struct {
	// Input is the file to wrap.
	Input string

	// Sidecar is the sidecar to read header fields from. When empty, the
	// document is built without user header fields.
	Sidecar string

	// Output is where the document is written. When empty, DefaultOutput is
	// used.
	Output string

	// MediaType overrides the media type of the input. A Content-Type entry
	// in the sidecar still takes precedence.
	MediaType string
}

// Wrapper runs jobs.
type Wrapper struct {
	assembler *envelope.Assembler
	logger    *slog.Logger
}

// Option configures a Wrapper.
type Option func(*Wrapper)

// WithAssembler sets the assembler used to build documents.
func WithAssembler(a *envelope.Assembler) Option {
	return func(w *Wrapper) {
		w.assembler = a
	}
}

// WithLogger sets the logger used for diagnostics. Nothing is logged by
// default.
func WithLogger(l *slog.Logger) Option {
	return func(w *Wrapper) {
		w.logger = l
	}
}

// New returns a Wrapper with the given options applied.
func New(opts ...Option) *Wrapper {
	w := &Wrapper{}
	for _, opt := range opts {
		opt(w)
	}

	if w.logger == nil {
		w.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	if w.assembler == nil {
		w.assembler = envelope.New(envelope.WithLogger(w.logger))
	}

	return w
}

// Run reads the sidecar and the input, assembles the document, and writes it
// to the output. It fails with a *sidecar.ReadError, an *InputReadError, an
// *envelope.BuildError, or an *OutputWriteError. The output is only touched
// once the document has been fully built.
func (w *Wrapper) Run(job Job) error {
	output := job.Output
	if output == "" {
		output = DefaultOutput(job.Input, DefaultOutputExtension)
	}

	logger := w.logger.With("input", job.Input, "output", output)

	headers := sidecar.List{}
	if job.Sidecar != "" {
		var err error
		headers, err = sidecar.Parse(job.Sidecar)
		if err != nil {
			return err
		}
		logger.Debug("read sidecar", "sidecar", job.Sidecar, "fields", len(headers))
	} else {
		logger.Debug("no sidecar, wrapping without header fields")
	}

	content, err := os.ReadFile(job.Input)
	if err != nil {
		return &InputReadError{job.Input, err}
	}

	if sameFile(job.Input, output) {
		return &OutputWriteError{output, ErrOutputIsInput}
	}

	doc, err := w.assembler.Assemble(headers, envelope.Attachment{
		Filename:  job.Input,
		MediaType: job.MediaType,
		Content:   content,
	})
	if err != nil {
		return err
	}

	if err := writeFile(output, doc); err != nil {
		return &OutputWriteError{output, err}
	}

	logger.Info("wrapped file", "bytes", len(doc))

	return nil
}

// Run runs the job with a default Wrapper.
func Run(job Job) error {
	return New().Run(job)
}
