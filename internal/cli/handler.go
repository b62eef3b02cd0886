package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"smartrecipe/internal/logger"
	"smartrecipe/internal/platform/imageinfo"
	"smartrecipe/internal/recognition"
)

// Exit codes.
const (
	ExitOK      = 0
	ExitFailure = 1
)

// ErrPathNotProvided is returned when the command is not given exactly one argument.
var ErrPathNotProvided = errors.New("Image path not provided")

// NotFoundError is returned when the image path does not exist.
type NotFoundError struct {
	Path string
}

func (e *NotFoundError) Error() string {
	return "Image not found at " + e.Path
}

// MetadataReader defines the interface for reading image headers.
type MetadataReader interface {
	Read(ctx context.Context, path string) (*imageinfo.Metadata, error)
}

// DishRecognizer defines the interface for turning image metadata into dish names.
type DishRecognizer interface {
	Recognize(meta *imageinfo.Metadata) []string
}

// Handler runs a single recognition from command line arguments.
type Handler struct {
	Reader     MetadataReader
	Recognizer DishRecognizer
	Logger     *logger.Logger
}

// NewHandler creates a new Handler. A nil log discards diagnostics.
func NewHandler(reader MetadataReader, recognizer DishRecognizer, log *logger.Logger) *Handler {
	if log == nil {
		log = logger.Discard()
	}
	return &Handler{Reader: reader, Recognizer: recognizer, Logger: log.WithComponent("recognize")}
}

// Run validates args (program name first), recognizes the image and writes exactly one JSON
// value to stdout. It returns the process exit code.
func (h *Handler) Run(ctx context.Context, args []string, stdout io.Writer) int {
	start := time.Now()

	dishes, err := h.recognize(ctx, args)
	if err != nil {
		h.logFailure(err)
		if werr := WriteError(stdout, err.Error()); werr != nil {
			h.Logger.WithError(werr).Error("failed to write error result")
		}
		return ExitFailure
	}

	if err := WriteDishes(stdout, dishes); err != nil {
		h.Logger.WithError(err).Error("failed to write result")
		return ExitFailure
	}

	h.Logger.WithFields(logger.Fields{
		logger.FieldCount:      len(dishes),
		logger.FieldDurationMs: time.Since(start).Milliseconds(),
	}).Debug("recognition complete")
	return ExitOK
}

// recognize performs validation and sampling. Panics are turned into errors so that the
// caller always has a result to report.
func (h *Handler) recognize(ctx context.Context, args []string) (dishes []string, err error) {
	defer func() {
		if r := recover(); r != nil {
			h.Logger.WithField("panic", r).Error("recovered from panic during recognition")
			dishes = nil
			err = fmt.Errorf("%v", r)
		}
	}()

	path, err := validate(args)
	if err != nil {
		return nil, err
	}

	meta, err := h.Reader.Read(ctx, path)
	if err != nil {
		return nil, err
	}

	seed := recognition.Seed(meta)
	h.Logger.WithFields(logger.Fields{
		logger.FieldPath:   path,
		logger.FieldWidth:  meta.Width,
		logger.FieldHeight: meta.Height,
		logger.FieldFormat: meta.Format,
		logger.FieldSeed:   seed,
	}).Debug("image metadata read")

	return h.Recognizer.Recognize(meta), nil
}

// validate requires exactly one argument after the program name and that it exists.
func validate(args []string) (string, error) {
	if len(args) != 2 {
		return "", ErrPathNotProvided
	}
	path := args[1]
	if _, err := os.Stat(path); err != nil {
		return "", &NotFoundError{Path: path}
	}
	return path, nil
}

func (h *Handler) logFailure(err error) {
	log := h.Logger.WithError(err)
	var notFound *NotFoundError
	switch {
	case errors.Is(err, ErrPathNotProvided):
		log.Info("image path not provided")
	case errors.As(err, &notFound):
		log.WithField(logger.FieldPath, notFound.Path).Info("image not found")
	case errors.Is(err, imageinfo.ErrUnknownFormat):
		log.Info("unrecognized image format")
	default:
		log.Warn("recognition failed")
	}
}
