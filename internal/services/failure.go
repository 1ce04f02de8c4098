package services

import (
	"context"
	"errors"
	"fmt"

	errs "github.com/fotolog/fotolog-backend/internal/pkg/errors"
)

// Stage names the ingestion pipeline step that produced a failure.
type Stage string

const (
	StageAuth      Stage = "auth"
	StageProvision Stage = "provision"
	StageUpload    Stage = "upload"
	StageRegister  Stage = "register"
)

// StageError is the single failure shape the pipeline reports: which stage
// failed and why. ObjectURL is populated when an object had already been
// stored by the time the failure happened, so the caller can decide what to
// do with the orphan.
type StageError struct {
	Stage     Stage
	ObjectURL string
	Err       error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s stage failed: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}

func stageFail(stage Stage, err error) *StageError {
	if errors.Is(err, context.DeadlineExceeded) {
		err = fmt.Errorf("%w: %v", errs.ErrTimedOut, err)
	}
	return &StageError{Stage: stage, Err: err}
}
